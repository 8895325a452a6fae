package smocks

import (
	"context"

	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/fsdevblog/shortlink/internal/services"
	"github.com/stretchr/testify/mock"
)

type LinkMock struct {
	mock.Mock
}

func (l *LinkMock) Shorten(ctx context.Context, rawURL string, meta services.CreatorMeta) (*models.Link, error) {
	args := l.Called(ctx, rawURL, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinkMock) Resolve(ctx context.Context, code string) (*services.Resolution, error) {
	args := l.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*services.Resolution), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinkMock) List(ctx context.Context) ([]models.Link, error) {
	args := l.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).([]models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}
