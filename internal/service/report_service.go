package service

import (
	"errors"

	"go-stock-opname/internal/model"
	"go-stock-opname/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportService interface {
	AggregateBySession(sessionID uuid.UUID) (*model.SessionReport, error)
}

type reportService struct {
	sessionRepo repository.SessionRepository
	detailRepo  repository.DetailRepository
}

func NewReportService(sRepo repository.SessionRepository, dRepo repository.DetailRepository) ReportService {
	return &reportService{
		sessionRepo: sRepo,
		detailRepo:  dRepo,
	}
}

// AggregateBySession joins the session's details to the catalog, sums
// counted quantities per product, and returns the rows sorted by product
// code so exports come out deterministic.
func (s *reportService) AggregateBySession(sessionID uuid.UUID) (*model.SessionReport, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	rows, err := s.detailRepo.AggregateBySession(sessionID)
	if err != nil {
		return nil, err
	}

	return &model.SessionReport{
		Session: session,
		Rows:    rows,
	}, nil
}
