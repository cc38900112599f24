package service

import (
	"errors"
	"fmt"

	"go-stock-opname/internal/model"
	"go-stock-opname/internal/repository"
	"go-stock-opname/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogService interface {
	CreateProduct(req *model.Product) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	GetProductByCode(code string) (*model.Product, error)
	SearchProducts(keyword string, limit int) ([]model.Product, error)
	ListProducts(page, perPage int, search string) ([]model.Product, *model.Pagination, error)
	DeleteAllProducts() (int64, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	sessionRepo repository.SessionRepository
	hub         Broadcaster
}

func NewCatalogService(pRepo repository.ProductRepository, sRepo repository.SessionRepository, hub Broadcaster) CatalogService {
	return &catalogService{
		productRepo: pRepo,
		sessionRepo: sRepo,
		hub:         hub,
	}
}

func (s *catalogService) CreateProduct(req *model.Product) error {
	// 1. Validasi Struct Dasar
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	// 2. Cek Duplikasi Kode Produk
	existing, err := s.productRepo.FindByCode(req.KodeProduk)
	if err == nil && existing != nil && existing.ID != uuid.Nil {
		return ErrDuplicateCode
	}

	// 3. Simpan ke Database. Unique index pada kode_produk adalah penjaga
	// terakhir kalau dua request membuat kode yang sama bersamaan.
	if err := s.productRepo.Create(req); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateCode
		}
		return err
	}

	// 4. Broadcast ke WebSocket
	if s.hub != nil {
		go s.hub.BroadcastJSON(map[string]interface{}{
			"type":   "catalog_update",
			"action": "product_created",
			"product": map[string]interface{}{
				"id":          req.ID,
				"kode_produk": req.KodeProduk,
				"nama_produk": req.NamaProduk,
				"saldo_awal":  req.SaldoAwal,
			},
		})
	}

	return nil
}

func (s *catalogService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) GetProductByCode(code string) (*model.Product, error) {
	product, err := s.productRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) SearchProducts(keyword string, limit int) ([]model.Product, error) {
	if keyword == "" {
		return []model.Product{}, nil
	}
	if limit <= 0 {
		limit = 10
	}
	return s.productRepo.Search(keyword, limit)
}

func (s *catalogService) ListProducts(page, perPage int, search string) ([]model.Product, *model.Pagination, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 10
	}

	products, total, err := s.productRepo.List(page, perPage, search)
	if err != nil {
		return nil, nil, err
	}
	return products, model.NewPagination(page, perPage, total), nil
}

// DeleteAllProducts wipes the catalog. Blocked while any counting session
// is still active; details go first so no orphan rows survive a failure.
func (s *catalogService) DeleteAllProducts() (int64, error) {
	active, err := s.sessionRepo.CountActive()
	if err != nil {
		return 0, err
	}
	if active > 0 {
		return 0, ErrActiveSessionExists
	}
	return s.productRepo.DeleteAll()
}
