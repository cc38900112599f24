package service

import (
	"testing"

	"go-stock-opname/internal/model"
	"go-stock-opname/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOpnameFixture() (*mocks.MockSessionRepository, *mocks.MockProductRepository, *mocks.MockDetailRepository, OpnameService) {
	sessionRepo := new(mocks.MockSessionRepository)
	productRepo := new(mocks.MockProductRepository)
	detailRepo := new(mocks.MockDetailRepository)
	svc := NewOpnameService(sessionRepo, productRepo, detailRepo, nil)
	return sessionRepo, productRepo, detailRepo, svc
}

func matchDetail(sessionID, productID uuid.UUID, jumlah int) interface{} {
	return mock.MatchedBy(func(d *model.StockOpnameDetail) bool {
		return d.SessionID == sessionID && d.ProductID == productID && d.JumlahBarang == jumlah
	})
}

func TestOpnameService_RecordCount(t *testing.T) {
	sessionID := uuid.New()
	productID := uuid.New()

	activeSession := func() *model.StockOpnameSession {
		return &model.StockOpnameSession{Lokasi: "Warehouse A", Status: model.SessionStatusActive}
	}
	product := func() *model.Product {
		return &model.Product{KodeProduk: "P001", NamaProduk: "Widget", SaldoAwal: 100}
	}

	t.Run("unknown session", func(t *testing.T) {
		sessionRepo, _, detailRepo, svc := newOpnameFixture()
		sessionRepo.On("FindByID", sessionID).Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.RecordCount(sessionID, productID, 95, "")
		assert.ErrorIs(t, err, ErrSessionNotFound)
		detailRepo.AssertNotCalled(t, "Upsert")
	})

	t.Run("completed session rejects new counts", func(t *testing.T) {
		sessionRepo, _, detailRepo, svc := newOpnameFixture()
		completed := &model.StockOpnameSession{Lokasi: "Warehouse A", Status: model.SessionStatusCompleted}
		sessionRepo.On("FindByID", sessionID).Return(completed, nil).Once()

		_, err := svc.RecordCount(sessionID, productID, 95, "")
		assert.ErrorIs(t, err, ErrSessionNotActive)
		detailRepo.AssertNotCalled(t, "Upsert")
	})

	t.Run("unknown product", func(t *testing.T) {
		sessionRepo, productRepo, detailRepo, svc := newOpnameFixture()
		sessionRepo.On("FindByID", sessionID).Return(activeSession(), nil).Once()
		productRepo.On("FindByID", productID).Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.RecordCount(sessionID, productID, 95, "")
		assert.ErrorIs(t, err, ErrProductNotFound)
		detailRepo.AssertNotCalled(t, "Upsert")
	})

	t.Run("records a first count", func(t *testing.T) {
		sessionRepo, productRepo, detailRepo, svc := newOpnameFixture()
		sessionRepo.On("FindByID", sessionID).Return(activeSession(), nil).Once()
		productRepo.On("FindByID", productID).Return(product(), nil).Once()
		detailRepo.On("Upsert", matchDetail(sessionID, productID, 95)).Return(nil).Once()

		saved := &model.StockOpnameDetail{
			SessionID:    sessionID,
			ProductID:    productID,
			JumlahBarang: 95,
			Catatan:      "short 5",
			Product:      product(),
		}
		detailRepo.On("FindBySessionAndProduct", sessionID, productID).Return(saved, nil).Once()

		detail, err := svc.RecordCount(sessionID, productID, 95, "short 5")
		require.NoError(t, err)
		assert.Equal(t, 95, detail.JumlahBarang)
		assert.Equal(t, "short 5", detail.Catatan)
		require.NotNil(t, detail.Product)
		assert.Equal(t, "P001", detail.Product.KodeProduk)
		detailRepo.AssertExpectations(t)
	})

	t.Run("second submission overwrites the first", func(t *testing.T) {
		sessionRepo, productRepo, detailRepo, svc := newOpnameFixture()
		sessionRepo.On("FindByID", sessionID).Return(activeSession(), nil).Twice()
		productRepo.On("FindByID", productID).Return(product(), nil).Twice()

		detailRepo.On("Upsert", matchDetail(sessionID, productID, 95)).Return(nil).Once()
		detailRepo.On("Upsert", matchDetail(sessionID, productID, 90)).Return(nil).Once()

		firstID := uuid.New()
		first := &model.StockOpnameDetail{SessionID: sessionID, ProductID: productID, JumlahBarang: 95, Product: product()}
		first.ID = firstID
		second := &model.StockOpnameDetail{SessionID: sessionID, ProductID: productID, JumlahBarang: 90, Catatan: "recount", Product: product()}
		second.ID = firstID // same surviving row
		detailRepo.On("FindBySessionAndProduct", sessionID, productID).Return(first, nil).Once()
		detailRepo.On("FindBySessionAndProduct", sessionID, productID).Return(second, nil).Once()

		d1, err := svc.RecordCount(sessionID, productID, 95, "")
		require.NoError(t, err)
		d2, err := svc.RecordCount(sessionID, productID, 90, "recount")
		require.NoError(t, err)

		assert.Equal(t, d1.ID, d2.ID)
		assert.Equal(t, 90, d2.JumlahBarang)
		assert.Equal(t, "recount", d2.Catatan)
		detailRepo.AssertExpectations(t)
	})
}

func TestOpnameService_ListDetails(t *testing.T) {
	sessionID := uuid.New()

	t.Run("unknown session", func(t *testing.T) {
		sessionRepo, _, _, svc := newOpnameFixture()
		sessionRepo.On("FindByID", sessionID).Return(nil, gorm.ErrRecordNotFound).Once()

		_, _, err := svc.ListDetails(sessionID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("returns details with products inlined", func(t *testing.T) {
		sessionRepo, _, detailRepo, svc := newOpnameFixture()
		session := &model.StockOpnameSession{Lokasi: "Warehouse A", Status: model.SessionStatusActive}
		sessionRepo.On("FindByID", sessionID).Return(session, nil).Once()

		details := []model.StockOpnameDetail{
			{SessionID: sessionID, JumlahBarang: 95, Product: &model.Product{KodeProduk: "P001"}},
			{SessionID: sessionID, JumlahBarang: 3, Product: &model.Product{KodeProduk: "P002"}},
		}
		detailRepo.On("ListBySession", sessionID).Return(details, nil).Once()

		gotSession, gotDetails, err := svc.ListDetails(sessionID)
		require.NoError(t, err)
		assert.Equal(t, "Warehouse A", gotSession.Lokasi)
		require.Len(t, gotDetails, 2)
		assert.Equal(t, "P001", gotDetails[0].Product.KodeProduk)
	})
}
