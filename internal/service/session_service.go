package service

import (
	"errors"
	"fmt"
	"time"

	"go-stock-opname/internal/model"
	"go-stock-opname/internal/repository"
	"go-stock-opname/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionService interface {
	StartSession(lokasi, createdBy string) (*model.StockOpnameSession, error)
	CompleteSession(id uuid.UUID) (*model.StockOpnameSession, error)
	ListSessions(page, perPage int) ([]model.StockOpnameSession, *model.Pagination, error)
	GetSession(id uuid.UUID) (*model.StockOpnameSession, error)
	DeleteSession(id uuid.UUID) error
}

type sessionService struct {
	sessionRepo repository.SessionRepository
	hub         Broadcaster
}

func NewSessionService(sRepo repository.SessionRepository, hub Broadcaster) SessionService {
	return &sessionService{
		sessionRepo: sRepo,
		hub:         hub,
	}
}

func (s *sessionService) StartSession(lokasi, createdBy string) (*model.StockOpnameSession, error) {
	if createdBy == "" {
		createdBy = "system"
	}

	session := &model.StockOpnameSession{
		Lokasi:     lokasi,
		Status:     model.SessionStatusActive,
		CreatedBy:  createdBy,
		WaktuMulai: time.Now(),
	}

	if errs := validator.ValidateStruct(session); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	if err := s.sessionRepo.Create(session); err != nil {
		return nil, err
	}

	if s.hub != nil {
		go s.hub.BroadcastJSON(map[string]interface{}{
			"type":   "opname_update",
			"action": "session_started",
			"session": map[string]interface{}{
				"id":          session.ID,
				"lokasi":      session.Lokasi,
				"created_by":  session.CreatedBy,
				"waktu_mulai": session.WaktuMulai,
			},
		})
	}

	return session, nil
}

// CompleteSession moves a session to its terminal state. The repository
// runs a conditional UPDATE guarded on status=active, so two concurrent
// completions cannot both succeed.
func (s *sessionService) CompleteSession(id uuid.UUID) (*model.StockOpnameSession, error) {
	session, err := s.sessionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if session.Status == model.SessionStatusCompleted {
		return nil, ErrSessionCompleted
	}

	now := time.Now()
	affected, err := s.sessionRepo.Complete(id, now)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// Lost the race against another completion
		return nil, ErrSessionCompleted
	}

	session.Status = model.SessionStatusCompleted
	session.WaktuSelesai = &now

	if s.hub != nil {
		go s.hub.BroadcastJSON(map[string]interface{}{
			"type":   "opname_update",
			"action": "session_completed",
			"session": map[string]interface{}{
				"id":            session.ID,
				"lokasi":        session.Lokasi,
				"waktu_selesai": session.WaktuSelesai,
			},
		})
	}

	return session, nil
}

func (s *sessionService) ListSessions(page, perPage int) ([]model.StockOpnameSession, *model.Pagination, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 10
	}

	sessions, total, err := s.sessionRepo.List(page, perPage)
	if err != nil {
		return nil, nil, err
	}
	return sessions, model.NewPagination(page, perPage, total), nil
}

func (s *sessionService) GetSession(id uuid.UUID) (*model.StockOpnameSession, error) {
	session, err := s.sessionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}

func (s *sessionService) DeleteSession(id uuid.UUID) error {
	if _, err := s.sessionRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return s.sessionRepo.Delete(id)
}
