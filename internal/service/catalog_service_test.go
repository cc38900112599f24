package service

import (
	"testing"

	"go-stock-opname/internal/model"
	"go-stock-opname/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCatalogService_CreateProduct(t *testing.T) {
	t.Run("rejects duplicate kode_produk", func(t *testing.T) {
		productRepo := new(mocks.MockProductRepository)
		sessionRepo := new(mocks.MockSessionRepository)
		svc := NewCatalogService(productRepo, sessionRepo, nil)

		existing := &model.Product{KodeProduk: "P001", NamaProduk: "Widget", SaldoAwal: 100}
		existing.ID = uuid.New()
		productRepo.On("FindByCode", "P001").Return(existing, nil).Once()

		err := svc.CreateProduct(&model.Product{KodeProduk: "P001", NamaProduk: "Widget Baru", SaldoAwal: 50})
		assert.ErrorIs(t, err, ErrDuplicateCode)
		productRepo.AssertNotCalled(t, "Create")
		productRepo.AssertExpectations(t)
	})

	t.Run("creates product when code is free", func(t *testing.T) {
		productRepo := new(mocks.MockProductRepository)
		sessionRepo := new(mocks.MockSessionRepository)
		svc := NewCatalogService(productRepo, sessionRepo, nil)

		productRepo.On("FindByCode", "P001").Return(nil, gorm.ErrRecordNotFound).Once()
		productRepo.On("Create", matchProductCode("P001")).Return(nil).Once()

		err := svc.CreateProduct(&model.Product{KodeProduk: "P001", NamaProduk: "Widget", SaldoAwal: 100})
		require.NoError(t, err)
		productRepo.AssertExpectations(t)
	})

	t.Run("maps unique violation on the create race to ErrDuplicateCode", func(t *testing.T) {
		productRepo := new(mocks.MockProductRepository)
		sessionRepo := new(mocks.MockSessionRepository)
		svc := NewCatalogService(productRepo, sessionRepo, nil)

		productRepo.On("FindByCode", "P001").Return(nil, gorm.ErrRecordNotFound).Once()
		productRepo.On("Create", matchProductCode("P001")).Return(gorm.ErrDuplicatedKey).Once()

		err := svc.CreateProduct(&model.Product{KodeProduk: "P001", NamaProduk: "Widget", SaldoAwal: 100})
		assert.ErrorIs(t, err, ErrDuplicateCode)
		productRepo.AssertExpectations(t)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		productRepo := new(mocks.MockProductRepository)
		sessionRepo := new(mocks.MockSessionRepository)
		svc := NewCatalogService(productRepo, sessionRepo, nil)

		err := svc.CreateProduct(&model.Product{NamaProduk: "Widget", SaldoAwal: 100})
		assert.ErrorIs(t, err, ErrValidation)
		productRepo.AssertNotCalled(t, "FindByCode")
		productRepo.AssertNotCalled(t, "Create")
	})
}

func TestCatalogService_ListProducts(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	sessionRepo := new(mocks.MockSessionRepository)
	svc := NewCatalogService(productRepo, sessionRepo, nil)

	products := []model.Product{
		{KodeProduk: "P001", NamaProduk: "Widget", SaldoAwal: 100},
		{KodeProduk: "P002", NamaProduk: "Gadget", SaldoAwal: 10},
	}

	t.Run("applies pagination defaults", func(t *testing.T) {
		productRepo.On("List", 1, 10, "").Return(products, int64(25), nil).Once()

		got, pagination, err := svc.ListProducts(0, 0, "")
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, 1, pagination.Page)
		assert.Equal(t, 10, pagination.PerPage)
		assert.Equal(t, int64(25), pagination.Total)
		assert.Equal(t, 3, pagination.Pages)
		productRepo.AssertExpectations(t)
	})

	t.Run("passes the search filter through", func(t *testing.T) {
		productRepo.On("List", 2, 5, "wid").Return(products[:1], int64(1), nil).Once()

		got, pagination, err := svc.ListProducts(2, 5, "wid")
		require.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, 1, pagination.Pages)
		productRepo.AssertExpectations(t)
	})
}

func TestCatalogService_GetProductByCode(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	sessionRepo := new(mocks.MockSessionRepository)
	svc := NewCatalogService(productRepo, sessionRepo, nil)

	t.Run("found", func(t *testing.T) {
		productRepo.On("FindByCode", "P001").Return(&model.Product{KodeProduk: "P001"}, nil).Once()

		got, err := svc.GetProductByCode("P001")
		require.NoError(t, err)
		assert.Equal(t, "P001", got.KodeProduk)
	})

	t.Run("not found", func(t *testing.T) {
		productRepo.On("FindByCode", "P404").Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.GetProductByCode("P404")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestCatalogService_SearchProducts(t *testing.T) {
	productRepo := new(mocks.MockProductRepository)
	sessionRepo := new(mocks.MockSessionRepository)
	svc := NewCatalogService(productRepo, sessionRepo, nil)

	t.Run("empty keyword short-circuits", func(t *testing.T) {
		got, err := svc.SearchProducts("", 10)
		require.NoError(t, err)
		assert.Empty(t, got)
		productRepo.AssertNotCalled(t, "Search")
	})

	t.Run("defaults the limit", func(t *testing.T) {
		productRepo.On("Search", "wid", 10).Return([]model.Product{{KodeProduk: "P001"}}, nil).Once()

		got, err := svc.SearchProducts("wid", 0)
		require.NoError(t, err)
		assert.Len(t, got, 1)
		productRepo.AssertExpectations(t)
	})
}

func TestCatalogService_DeleteAllProducts(t *testing.T) {
	t.Run("blocked while a session is active", func(t *testing.T) {
		productRepo := new(mocks.MockProductRepository)
		sessionRepo := new(mocks.MockSessionRepository)
		svc := NewCatalogService(productRepo, sessionRepo, nil)

		sessionRepo.On("CountActive").Return(int64(1), nil).Once()

		_, err := svc.DeleteAllProducts()
		assert.ErrorIs(t, err, ErrActiveSessionExists)
		productRepo.AssertNotCalled(t, "DeleteAll")
		sessionRepo.AssertExpectations(t)
	})

	t.Run("deletes everything when no session is active", func(t *testing.T) {
		productRepo := new(mocks.MockProductRepository)
		sessionRepo := new(mocks.MockSessionRepository)
		svc := NewCatalogService(productRepo, sessionRepo, nil)

		sessionRepo.On("CountActive").Return(int64(0), nil).Once()
		productRepo.On("DeleteAll").Return(int64(7), nil).Once()

		deleted, err := svc.DeleteAllProducts()
		require.NoError(t, err)
		assert.Equal(t, int64(7), deleted)
		productRepo.AssertExpectations(t)
		sessionRepo.AssertExpectations(t)
	})
}
