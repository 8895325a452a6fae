package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/fsdevblog/shortlink/internal/db"
	"github.com/fsdevblog/shortlink/internal/db/memory"
	"github.com/fsdevblog/shortlink/internal/models"
)

// LinkRepo представляет собой репозиторий для работы со ссылками в памяти.
type LinkRepo struct {
	s  *db.MemoryStorage
	mu sync.Mutex
}

// NewLinkRepo создает новый экземпляр репозитория ссылок.
//
// Параметры:
//   - store: экземпляр хранилища в памяти
//
// Возвращает:
//   - *LinkRepo: инициализированный репозиторий
func NewLinkRepo(store *db.MemoryStorage) *LinkRepo {
	return &LinkRepo{
		s: store,
	}
}

// Create создает новую запись ссылки. Ключом служит короткий код, запись
// выполняется без перезаписи, так что дубликат кода вернет
// repositories.ErrDuplicateKey.
//
// Параметры:
//   - ctx: контекст выполнения
//   - link: данные ссылки для создания
//
// Возвращает:
//   - error: ошибка создания (преобразованная через convertErrorType)
func (l *LinkRepo) Create(ctx context.Context, link *models.Link) error {
	if err := memory.Set[models.Link](ctx, link.Code, link, l.s.MStorage); err != nil {
		return convertErrorType(err)
	}
	return nil
}

// GetByCode получает ссылку по короткому коду.
//
// Параметры:
//   - ctx: контекст выполнения
//   - code: короткий код ссылки
//
// Возвращает:
//   - *models.Link: найденная запись
//   - error: ошибка поиска (преобразованная через convertErrorType)
func (l *LinkRepo) GetByCode(ctx context.Context, code string) (*models.Link, error) {
	link, err := memory.Get[models.Link](ctx, code, l.s.MStorage)
	if err != nil {
		return nil, convertErrorType(err)
	}
	return link, nil
}

// IncrementClicks увеличивает счетчик переходов на единицу. Чтение и
// перезапись выполняются под мьютексом репозитория, поэтому конкурентные
// инкременты по одному коду не теряются.
//
// Параметры:
//   - ctx: контекст выполнения
//   - code: короткий код ссылки
//
// Возвращает:
//   - error: ошибка обновления (преобразованная через convertErrorType)
func (l *LinkRepo) IncrementClicks(ctx context.Context, code string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	link, err := memory.Get[models.Link](ctx, code, l.s.MStorage)
	if err != nil {
		return convertErrorType(err)
	}
	link.Clicks++
	if setErr := memory.Set[models.Link](ctx, code, link, l.s.MStorage, memory.WithOverwrite()); setErr != nil {
		return convertErrorType(setErr)
	}
	return nil
}

// GetAll получает все сохраненные записи, свежие первыми.
//
// Параметры:
//   - ctx: контекст выполнения
//
// Возвращает:
//   - []models.Link: все записи
//   - error: ошибка получения (преобразованная через convertErrorType)
func (l *LinkRepo) GetAll(ctx context.Context) ([]models.Link, error) {
	links, err := memory.GetAll[models.Link](ctx, l.s.MStorage)
	if err != nil {
		return nil, convertErrorType(err)
	}
	sort.Slice(links, func(i, j int) bool {
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})
	return links, nil
}
