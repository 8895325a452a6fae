package sql

import (
	"context"

	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/fsdevblog/shortlink/internal/repositories"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type LinkRepo struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewLinkRepo(db *gorm.DB, logger *logrus.Logger) *LinkRepo {
	return &LinkRepo{
		db:     db,
		logger: logger.WithField("module", "repository/sql/link"),
	}
}

// Create сохраняет запись. Уникальность кода гарантирует индекс: вставка и
// проверка существования не разделены, при дубликате вернется
// repositories.ErrDuplicateKey.
func (l *LinkRepo) Create(ctx context.Context, link *models.Link) error {
	if err := l.db.WithContext(ctx).Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return repositories.ErrDuplicateKey
		}
		l.logger.WithError(err).Errorf("failed to create record %+v", *link)
		return repositories.ErrUnknown
	}
	return nil
}

func (l *LinkRepo) GetByCode(ctx context.Context, code string) (*models.Link, error) {
	var link models.Link
	if err := l.db.WithContext(ctx).Where("code = ?", code).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		l.logger.WithError(err).Errorf("failed to get record by code %s", code)
		return nil, repositories.ErrUnknown
	}
	return &link, nil
}

// IncrementClicks увеличивает счетчик переходов прямо на стороне базы,
// поэтому конкурентные переходы по одному коду не теряются.
func (l *LinkRepo) IncrementClicks(ctx context.Context, code string) error {
	res := l.db.WithContext(ctx).
		Model(&models.Link{}).
		Where("code = ?", code).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1))
	if res.Error != nil {
		l.logger.WithError(res.Error).Errorf("failed to increment clicks for code %s", code)
		return repositories.ErrUnknown
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// GetAll возвращает все записи, свежие первыми.
func (l *LinkRepo) GetAll(ctx context.Context) ([]models.Link, error) {
	var links []models.Link
	if err := l.db.WithContext(ctx).Order("created_at DESC").Find(&links).Error; err != nil {
		l.logger.WithError(err).Error("failed to get all records")
		return nil, repositories.ErrUnknown
	}
	return links, nil
}
