package mocks

import (
	"time"

	"go-stock-opname/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(session *model.StockOpnameSession) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindByID(id uuid.UUID) (*model.StockOpnameSession, error) {
	args := m.Called(id)
	if res := args.Get(0); res != nil {
		return res.(*model.StockOpnameSession), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSessionRepository) List(page, perPage int) ([]model.StockOpnameSession, int64, error) {
	args := m.Called(page, perPage)
	if res := args.Get(0); res != nil {
		return res.([]model.StockOpnameSession), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *MockSessionRepository) Complete(id uuid.UUID, finishedAt time.Time) (int64, error) {
	args := m.Called(id, finishedAt)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) Delete(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockSessionRepository) CountActive() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) CountDetails(sessionID uuid.UUID) (int64, error) {
	args := m.Called(sessionID)
	return args.Get(0).(int64), args.Error(1)
}
