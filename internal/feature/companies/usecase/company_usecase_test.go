package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"earningsnerd_backend/internal/feature/companies/domain/entity"
)

// mockCompanyRepository is a mock implementation of the CompanyRepository interface.
type mockCompanyRepository struct {
	FindByTickerFunc func(ctx context.Context, ticker string) (*entity.Company, error)
	FindByIDFunc     func(ctx context.Context, id uint) (*entity.Company, error)
	SearchFunc       func(ctx context.Context, query string, limit int) ([]entity.Company, error)
	UpsertBatchFunc  func(ctx context.Context, companies []entity.Company) error
	MarkFetchedFunc  func(ctx context.Context, companyID uint, at time.Time) error
}

func (m *mockCompanyRepository) FindByTicker(ctx context.Context, ticker string) (*entity.Company, error) {
	if m.FindByTickerFunc != nil {
		return m.FindByTickerFunc(ctx, ticker)
	}
	return nil, ErrCompanyNotFound
}

func (m *mockCompanyRepository) FindByID(ctx context.Context, id uint) (*entity.Company, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrCompanyNotFound
}

func (m *mockCompanyRepository) Search(ctx context.Context, query string, limit int) ([]entity.Company, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, limit)
	}
	return nil, nil
}

func (m *mockCompanyRepository) UpsertBatch(ctx context.Context, companies []entity.Company) error {
	if m.UpsertBatchFunc != nil {
		return m.UpsertBatchFunc(ctx, companies)
	}
	return nil
}

func (m *mockCompanyRepository) MarkFetched(ctx context.Context, companyID uint, at time.Time) error {
	if m.MarkFetchedFunc != nil {
		return m.MarkFetchedFunc(ctx, companyID, at)
	}
	return nil
}

// mockTickerDirectory is a mock implementation of the TickerDirectory interface.
type mockTickerDirectory struct {
	ListCompaniesFunc func(ctx context.Context) ([]entity.Company, error)
}

func (m *mockTickerDirectory) ListCompanies(ctx context.Context) ([]entity.Company, error) {
	if m.ListCompaniesFunc != nil {
		return m.ListCompaniesFunc(ctx)
	}
	return nil, nil
}

func TestCompanyUsecase_GetByTicker(t *testing.T) {
	ctx := context.Background()
	apple := &entity.Company{ID: 1, Ticker: "AAPL", CIK: "0000320193", Name: "Apple Inc."}

	t.Run("ticker is normalized before lookup", func(t *testing.T) {
		mockRepo := &mockCompanyRepository{
			FindByTickerFunc: func(ctx context.Context, ticker string) (*entity.Company, error) {
				assert.Equal(t, "AAPL", ticker)
				return apple, nil
			},
		}

		uc := NewCompanyUsecase(mockRepo, &mockTickerDirectory{})
		got, err := uc.GetByTicker(ctx, "  aapl ")

		assert.NoError(t, err)
		assert.Same(t, apple, got)
	})

	t.Run("blank ticker is not found", func(t *testing.T) {
		uc := NewCompanyUsecase(&mockCompanyRepository{}, &mockTickerDirectory{})
		_, err := uc.GetByTicker(ctx, "   ")
		assert.ErrorIs(t, err, ErrCompanyNotFound)
	})
}

func TestCompanyUsecase_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("empty query returns empty slice without hitting the repository", func(t *testing.T) {
		mockRepo := &mockCompanyRepository{
			SearchFunc: func(ctx context.Context, query string, limit int) ([]entity.Company, error) {
				t.Fatal("repository must not be called for an empty query")
				return nil, nil
			},
		}

		uc := NewCompanyUsecase(mockRepo, &mockTickerDirectory{})
		got, err := uc.Search(ctx, "  ", 10)

		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("out-of-range limit falls back to the default", func(t *testing.T) {
		mockRepo := &mockCompanyRepository{
			SearchFunc: func(ctx context.Context, query string, limit int) ([]entity.Company, error) {
				assert.Equal(t, 20, limit)
				return []entity.Company{}, nil
			},
		}

		uc := NewCompanyUsecase(mockRepo, &mockTickerDirectory{})
		_, err := uc.Search(ctx, "app", 9999)
		assert.NoError(t, err)
	})
}

func TestCompanyUsecase_SyncFromDirectory(t *testing.T) {
	ctx := context.Background()

	t.Run("upserts every directory entry", func(t *testing.T) {
		directory := &mockTickerDirectory{
			ListCompaniesFunc: func(ctx context.Context) ([]entity.Company, error) {
				return []entity.Company{
					{Ticker: "AAPL", CIK: "0000320193", Name: "Apple Inc."},
					{Ticker: "MSFT", CIK: "0000789019", Name: "Microsoft Corp"},
				}, nil
			},
		}
		var upserted []entity.Company
		mockRepo := &mockCompanyRepository{
			UpsertBatchFunc: func(ctx context.Context, companies []entity.Company) error {
				upserted = companies
				return nil
			},
		}

		uc := NewCompanyUsecase(mockRepo, directory)
		n, err := uc.SyncFromDirectory(ctx)

		assert.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Len(t, upserted, 2)
	})

	t.Run("empty directory is a no-op", func(t *testing.T) {
		mockRepo := &mockCompanyRepository{
			UpsertBatchFunc: func(ctx context.Context, companies []entity.Company) error {
				t.Fatal("upsert must not run for an empty directory")
				return nil
			},
		}

		uc := NewCompanyUsecase(mockRepo, &mockTickerDirectory{})
		n, err := uc.SyncFromDirectory(ctx)

		assert.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("directory failure propagates", func(t *testing.T) {
		directory := &mockTickerDirectory{
			ListCompaniesFunc: func(ctx context.Context) ([]entity.Company, error) {
				return nil, errors.New("edgar http 503")
			},
		}

		uc := NewCompanyUsecase(&mockCompanyRepository{}, directory)
		_, err := uc.SyncFromDirectory(ctx)
		assert.Error(t, err)
	})
}
