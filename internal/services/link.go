package services

import (
	"context"
	"regexp"
	"time"

	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/fsdevblog/shortlink/internal/repositories"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// codeRegex допустимый формат короткого кода.
var codeRegex = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// maxAllocateAttempts количество попыток подобрать уникальный код длины
// models.CodeLength. После исчерпания берется единственный кандидат длины
// models.CodeLengthExtended.
const maxAllocateAttempts = 10

// LinkRepository описывает репозиторий коротких ссылок.
type LinkRepository interface {
	// Create сохраняет запись. Код обязан быть уникальным, при дубликате
	// вернется repositories.ErrDuplicateKey.
	Create(ctx context.Context, link *models.Link) error
	// GetByCode находит в хранилище запись по короткому коду.
	GetByCode(ctx context.Context, code string) (*models.Link, error)
	// IncrementClicks атомарно увеличивает счетчик переходов.
	IncrementClicks(ctx context.Context, code string) error
	// GetAll возвращает все записи, свежие первыми.
	GetAll(ctx context.Context) ([]models.Link, error)
}

// CreatorMeta метаданные создателя ссылки. Пишутся один раз при создании.
type CreatorMeta struct {
	IP        string
	UserAgent string
}

// Resolution результат разрешения короткого кода. Fallback означает редирект
// на главную страницу сервиса: запись существует, но сохраненная ссылка
// больше не проходит проверки.
type Resolution struct {
	Target   string
	Fallback bool
}

// LinkService ядро сервиса: конвейер проверок, выделение кода и разрешение
// коротких ссылок.
type LinkService struct {
	repo       LinkRepository
	validator  *URLValidator
	classifier *RiskClassifier
	allocator  *CodeAllocator
	reputation ReputationChecker
	failClosed bool
	logger     *logrus.Entry
}

// LinkServiceParams параметры создания LinkService. Reputation может быть
// nil, тогда внешняя проверка репутации пропускается.
type LinkServiceParams struct {
	Repo       LinkRepository
	Reputation ReputationChecker
	FailClosed bool
	Logger     *logrus.Logger
}

func NewLinkService(params LinkServiceParams) *LinkService {
	return &LinkService{
		repo:       params.Repo,
		validator:  NewURLValidator(),
		classifier: NewRiskClassifier(RiskClassifierConfig{}),
		allocator:  NewCodeAllocator(),
		reputation: params.Reputation,
		failClosed: params.FailClosed,
		logger:     params.Logger.WithField("module", "service/link"),
	}
}

// Shorten проводит ссылку через конвейер проверок и сохраняет ее под новым
// кодом. Сохраняется исходная строка rawURL как есть, без нормализации.
func (s *LinkService) Shorten(ctx context.Context, rawURL string, meta CreatorMeta) (*models.Link, error) {
	if _, validateErr := s.validator.Validate(rawURL); validateErr != nil {
		return nil, validateErr
	}

	report := s.classifier.Classify(rawURL)
	switch report.Verdict {
	case VerdictBlocked:
		s.logger.WithField("reasons", report.Reasons).Warnf("blocked url %s", rawURL)
		return nil, ErrBlocked
	case VerdictSuspicious:
		// Подозрительные, но не заблокированные ссылки пропускаем с пометкой в логе.
		s.logger.WithField("reasons", report.Reasons).Warnf("suspicious url %s", rawURL)
	case VerdictClean:
	}

	if repErr := s.checkReputation(ctx, rawURL); repErr != nil {
		return nil, repErr
	}

	return s.allocate(ctx, rawURL, meta)
}

// checkReputation опрашивает внешний сервис репутации. Ошибка или таймаут
// внешнего вызова по умолчанию трактуется как чистый результат (fail-open).
// Флаг failClosed меняет политику на обратную.
func (s *LinkService) checkReputation(ctx context.Context, rawURL string) error {
	if s.reputation == nil {
		return nil
	}

	threat, err := s.reputation.Check(ctx, rawURL)
	if err != nil {
		s.logger.WithError(err).Warn("reputation check failed")
		if s.failClosed {
			return ErrBlocked
		}
		return nil
	}
	if threat != "" {
		s.logger.Warnf("url %s flagged by reputation service: %s", rawURL, threat)
		return ErrBlocked
	}
	return nil
}

// allocate подбирает свободный код и сохраняет запись. Отдельного шага
// резервирования нет: вставка с уникальным ключом сама отбивает занятые
// коды, по repositories.ErrDuplicateKey берем следующего кандидата.
func (s *LinkService) allocate(ctx context.Context, rawURL string, meta CreatorMeta) (*models.Link, error) {
	length := models.CodeLength
	for attempt := 1; ; attempt++ {
		if attempt > maxAllocateAttempts {
			length = models.CodeLengthExtended
		}
		code, genErr := s.allocator.Generate(length)
		if genErr != nil {
			s.logger.WithError(genErr).Error("failed to generate code")
			return nil, ErrUnknown
		}

		link := models.Link{
			Code:      code,
			URL:       rawURL,
			CreatedAt: time.Now().UTC(),
			CreatorIP: meta.IP,
			UserAgent: meta.UserAgent,
		}
		createErr := s.repo.Create(ctx, &link)
		if createErr == nil {
			return &link, nil
		}
		if errors.Is(createErr, repositories.ErrDuplicateKey) && length == models.CodeLength {
			continue
		}
		s.logger.WithError(createErr).Errorf("failed to persist link with code %s", code)
		return nil, ErrStoreUnavailable
	}
}

// Resolve находит запись по коду, учитывает переход и решает, куда
// направить клиента.
func (s *LinkService) Resolve(ctx context.Context, code string) (*Resolution, error) {
	if !codeRegex.MatchString(code) {
		// На границе это неотличимо от отсутствующей записи: сырой код
		// наружу не отражаем.
		return nil, ErrInvalidCodeFormat
	}

	link, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "code %s not found", code)
		}
		// Недоступность хранилища наружу не отличаем от отсутствия записи.
		s.logger.WithError(err).Errorf("failed to get record by code %s", code)
		return nil, errors.Wrapf(ErrRecordNotFound, "code %s not found", code)
	}

	if incErr := s.repo.IncrementClicks(ctx, code); incErr != nil {
		s.logger.WithError(incErr).Errorf("failed to increment clicks for code %s", code)
	}

	// Повторная проверка сохраненной ссылки: правила могли ужесточиться
	// после записи. Внешнюю репутацию на пути редиректа не опрашиваем.
	if _, validateErr := s.validator.Validate(link.URL); validateErr != nil {
		s.logger.Warnf("stored url for code %s no longer passes validation", code)
		return &Resolution{Fallback: true}, nil
	}
	if report := s.classifier.Classify(link.URL); report.Verdict == VerdictBlocked {
		s.logger.WithField("reasons", report.Reasons).Warnf("stored url for code %s is blocked", code)
		return &Resolution{Fallback: true}, nil
	}

	return &Resolution{Target: link.URL}, nil
}

// List возвращает все сохраненные ссылки, свежие первыми.
func (s *LinkService) List(ctx context.Context) ([]models.Link, error) {
	links, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to list records")
		return nil, ErrStoreUnavailable
	}
	return links, nil
}
