package service

import (
	"errors"

	"go-stock-opname/internal/model"
	"go-stock-opname/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OpnameService interface {
	RecordCount(sessionID, productID uuid.UUID, jumlahBarang int, catatan string) (*model.StockOpnameDetail, error)
	ListDetails(sessionID uuid.UUID) (*model.StockOpnameSession, []model.StockOpnameDetail, error)
}

type opnameService struct {
	sessionRepo repository.SessionRepository
	productRepo repository.ProductRepository
	detailRepo  repository.DetailRepository
	hub         Broadcaster
}

func NewOpnameService(sRepo repository.SessionRepository, pRepo repository.ProductRepository, dRepo repository.DetailRepository, hub Broadcaster) OpnameService {
	return &opnameService{
		sessionRepo: sRepo,
		productRepo: pRepo,
		detailRepo:  dRepo,
		hub:         hub,
	}
}

// RecordCount upserts the counted quantity for a product within an active
// session. The composite unique index on (session_id, product_id) keeps the
// upsert atomic; repeated submissions overwrite quantity and notes.
func (s *opnameService) RecordCount(sessionID, productID uuid.UUID, jumlahBarang int, catatan string) (*model.StockOpnameDetail, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if !session.IsActive() {
		return nil, ErrSessionNotActive
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	detail := &model.StockOpnameDetail{
		SessionID:    sessionID,
		ProductID:    productID,
		JumlahBarang: jumlahBarang,
		Catatan:      catatan,
	}
	if err := s.detailRepo.Upsert(detail); err != nil {
		return nil, err
	}

	// Reload so the caller gets the surviving row (the upsert may have
	// landed on a pre-existing detail with a different id) with the
	// product denormalized in.
	saved, err := s.detailRepo.FindBySessionAndProduct(sessionID, productID)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		go s.hub.BroadcastJSON(map[string]interface{}{
			"type":   "opname_update",
			"action": "count_recorded",
			"detail": map[string]interface{}{
				"session_id":    sessionID,
				"product_id":    productID,
				"kode_produk":   product.KodeProduk,
				"nama_produk":   product.NamaProduk,
				"jumlah_barang": jumlahBarang,
			},
		})
	}

	return saved, nil
}

func (s *opnameService) ListDetails(sessionID uuid.UUID) (*model.StockOpnameSession, []model.StockOpnameDetail, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}

	details, err := s.detailRepo.ListBySession(sessionID)
	if err != nil {
		return nil, nil, err
	}
	return session, details, nil
}
