package service

import (
	"testing"
	"time"

	"go-stock-opname/internal/model"
	"go-stock-opname/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSessionService_StartSession(t *testing.T) {
	t.Run("rejects empty lokasi", func(t *testing.T) {
		sessionRepo := new(mocks.MockSessionRepository)
		svc := NewSessionService(sessionRepo, nil)

		_, err := svc.StartSession("", "budi")
		assert.ErrorIs(t, err, ErrValidation)
		sessionRepo.AssertNotCalled(t, "Create")
	})

	t.Run("creates an active session", func(t *testing.T) {
		sessionRepo := new(mocks.MockSessionRepository)
		svc := NewSessionService(sessionRepo, nil)

		sessionRepo.On("Create", mock.AnythingOfType("*model.StockOpnameSession")).Return(nil).Once()

		session, err := svc.StartSession("Warehouse A", "budi")
		require.NoError(t, err)
		assert.Equal(t, "Warehouse A", session.Lokasi)
		assert.Equal(t, model.SessionStatusActive, session.Status)
		assert.Equal(t, "budi", session.CreatedBy)
		assert.False(t, session.WaktuMulai.IsZero())
		assert.Nil(t, session.WaktuSelesai)
		sessionRepo.AssertExpectations(t)
	})

	t.Run("defaults created_by to system", func(t *testing.T) {
		sessionRepo := new(mocks.MockSessionRepository)
		svc := NewSessionService(sessionRepo, nil)

		sessionRepo.On("Create", mock.AnythingOfType("*model.StockOpnameSession")).Return(nil).Once()

		session, err := svc.StartSession("Warehouse A", "")
		require.NoError(t, err)
		assert.Equal(t, "system", session.CreatedBy)
	})
}

func TestSessionService_CompleteSession(t *testing.T) {
	sessionID := uuid.New()

	t.Run("unknown session", func(t *testing.T) {
		sessionRepo := new(mocks.MockSessionRepository)
		svc := NewSessionService(sessionRepo, nil)

		sessionRepo.On("FindByID", sessionID).Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.CompleteSession(sessionID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("already completed sessions always fail", func(t *testing.T) {
		sessionRepo := new(mocks.MockSessionRepository)
		svc := NewSessionService(sessionRepo, nil)

		done := time.Now()
		completed := &model.StockOpnameSession{
			Lokasi:       "Warehouse A",
			Status:       model.SessionStatusCompleted,
			WaktuSelesai: &done,
		}
		sessionRepo.On("FindByID", sessionID).Return(completed, nil).Twice()

		_, err := svc.CompleteSession(sessionID)
		assert.ErrorIs(t, err, ErrSessionCompleted)

		// Repeat calls never silently succeed
		_, err = svc.CompleteSession(sessionID)
		assert.ErrorIs(t, err, ErrSessionCompleted)
		sessionRepo.AssertNotCalled(t, "Complete")
	})

	t.Run("completes an active session", func(t *testing.T) {
		sessionRepo := new(mocks.MockSessionRepository)
		svc := NewSessionService(sessionRepo, nil)

		active := &model.StockOpnameSession{Lokasi: "Warehouse A", Status: model.SessionStatusActive}
		sessionRepo.On("FindByID", sessionID).Return(active, nil).Once()
		sessionRepo.On("Complete", sessionID, mock.AnythingOfType("time.Time")).Return(int64(1), nil).Once()

		session, err := svc.CompleteSession(sessionID)
		require.NoError(t, err)
		assert.Equal(t, model.SessionStatusCompleted, session.Status)
		require.NotNil(t, session.WaktuSelesai)
		sessionRepo.AssertExpectations(t)
	})

	t.Run("losing the completion race fails", func(t *testing.T) {
		sessionRepo := new(mocks.MockSessionRepository)
		svc := NewSessionService(sessionRepo, nil)

		active := &model.StockOpnameSession{Lokasi: "Warehouse A", Status: model.SessionStatusActive}
		sessionRepo.On("FindByID", sessionID).Return(active, nil).Once()
		sessionRepo.On("Complete", sessionID, mock.AnythingOfType("time.Time")).Return(int64(0), nil).Once()

		_, err := svc.CompleteSession(sessionID)
		assert.ErrorIs(t, err, ErrSessionCompleted)
	})
}

func TestSessionService_ListSessions(t *testing.T) {
	sessionRepo := new(mocks.MockSessionRepository)
	svc := NewSessionService(sessionRepo, nil)

	sessions := []model.StockOpnameSession{
		{Lokasi: "Warehouse B", Status: model.SessionStatusActive},
		{Lokasi: "Warehouse A", Status: model.SessionStatusCompleted},
	}
	sessionRepo.On("List", 1, 10).Return(sessions, int64(12), nil).Once()

	got, pagination, err := svc.ListSessions(0, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(12), pagination.Total)
	assert.Equal(t, 2, pagination.Pages)
	sessionRepo.AssertExpectations(t)
}

func TestSessionService_DeleteSession(t *testing.T) {
	sessionID := uuid.New()

	t.Run("unknown session", func(t *testing.T) {
		sessionRepo := new(mocks.MockSessionRepository)
		svc := NewSessionService(sessionRepo, nil)

		sessionRepo.On("FindByID", sessionID).Return(nil, gorm.ErrRecordNotFound).Once()

		err := svc.DeleteSession(sessionID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
		sessionRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("deletes session with its details", func(t *testing.T) {
		sessionRepo := new(mocks.MockSessionRepository)
		svc := NewSessionService(sessionRepo, nil)

		session := &model.StockOpnameSession{Lokasi: "Warehouse A", Status: model.SessionStatusCompleted}
		sessionRepo.On("FindByID", sessionID).Return(session, nil).Once()
		sessionRepo.On("Delete", sessionID).Return(nil).Once()

		err := svc.DeleteSession(sessionID)
		require.NoError(t, err)
		sessionRepo.AssertExpectations(t)
	})
}
