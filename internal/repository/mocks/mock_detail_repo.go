package mocks

import (
	"go-stock-opname/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockDetailRepository struct {
	mock.Mock
}

func (m *MockDetailRepository) Upsert(detail *model.StockOpnameDetail) error {
	args := m.Called(detail)
	return args.Error(0)
}

func (m *MockDetailRepository) FindBySessionAndProduct(sessionID, productID uuid.UUID) (*model.StockOpnameDetail, error) {
	args := m.Called(sessionID, productID)
	if res := args.Get(0); res != nil {
		return res.(*model.StockOpnameDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDetailRepository) ListBySession(sessionID uuid.UUID) ([]model.StockOpnameDetail, error) {
	args := m.Called(sessionID)
	if res := args.Get(0); res != nil {
		return res.([]model.StockOpnameDetail), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDetailRepository) AggregateBySession(sessionID uuid.UUID) ([]model.SessionReportRow, error) {
	args := m.Called(sessionID)
	if res := args.Get(0); res != nil {
		return res.([]model.SessionReportRow), args.Error(1)
	}
	return nil, args.Error(1)
}
