package mocks

import (
	"go-stock-opname/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(product *model.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) FindAll() ([]model.Product, error) {
	args := m.Called()
	if res := args.Get(0); res != nil {
		return res.([]model.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) FindByID(id uuid.UUID) (*model.Product, error) {
	args := m.Called(id)
	if res := args.Get(0); res != nil {
		return res.(*model.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) FindByCode(code string) (*model.Product, error) {
	args := m.Called(code)
	if res := args.Get(0); res != nil {
		return res.(*model.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) Search(keyword string, limit int) ([]model.Product, error) {
	args := m.Called(keyword, limit)
	if res := args.Get(0); res != nil {
		return res.([]model.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductRepository) List(page, perPage int, search string) ([]model.Product, int64, error) {
	args := m.Called(page, perPage, search)
	if res := args.Get(0); res != nil {
		return res.([]model.Product), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) UpsertByCode(tx *gorm.DB, product *model.Product) (bool, error) {
	args := m.Called(tx, product)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) DeleteAll() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}
