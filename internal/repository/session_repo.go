package repository

import (
	"time"

	"go-stock-opname/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *model.StockOpnameSession) error
	FindByID(id uuid.UUID) (*model.StockOpnameSession, error)
	List(page, perPage int) ([]model.StockOpnameSession, int64, error)

	// Complete flips active -> completed in a single conditional UPDATE.
	// Returns the number of rows affected; 0 means the session was already
	// completed (or gone) by the time the update ran.
	Complete(id uuid.UUID, finishedAt time.Time) (int64, error)

	Delete(id uuid.UUID) error
	CountActive() (int64, error)
	CountDetails(sessionID uuid.UUID) (int64, error)
}

type sessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db}
}

func (r *sessionRepo) Create(session *model.StockOpnameSession) error {
	return r.db.Create(session).Error
}

func (r *sessionRepo) FindByID(id uuid.UUID) (*model.StockOpnameSession, error) {
	var session model.StockOpnameSession
	if err := r.db.First(&session, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) List(page, perPage int) ([]model.StockOpnameSession, int64, error) {
	var sessions []model.StockOpnameSession
	var total int64

	if err := r.db.Model(&model.StockOpnameSession{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.
		Order("waktu_mulai DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&sessions).Error
	if err != nil {
		return nil, 0, err
	}

	// Fill total_items per session in one grouped query
	if len(sessions) > 0 {
		ids := make([]uuid.UUID, len(sessions))
		for i, s := range sessions {
			ids[i] = s.ID
		}

		type detailCount struct {
			SessionID uuid.UUID
			Cnt       int64
		}
		var counts []detailCount
		if err := r.db.Model(&model.StockOpnameDetail{}).
			Select("session_id, COUNT(*) AS cnt").
			Where("session_id IN ?", ids).
			Group("session_id").
			Scan(&counts).Error; err != nil {
			return nil, 0, err
		}

		byID := make(map[uuid.UUID]int64, len(counts))
		for _, c := range counts {
			byID[c.SessionID] = c.Cnt
		}
		for i := range sessions {
			sessions[i].TotalItems = byID[sessions[i].ID]
		}
	}

	return sessions, total, nil
}

func (r *sessionRepo) Complete(id uuid.UUID, finishedAt time.Time) (int64, error) {
	res := r.db.Model(&model.StockOpnameSession{}).
		Where("id = ? AND status = ?", id, model.SessionStatusActive).
		Updates(map[string]interface{}{
			"status":        model.SessionStatusCompleted,
			"waktu_selesai": finishedAt,
		})
	return res.RowsAffected, res.Error
}

func (r *sessionRepo) Delete(id uuid.UUID) error {
	// Session exclusively owns its details
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&model.StockOpnameDetail{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.StockOpnameSession{}, "id = ?", id).Error
	})
}

func (r *sessionRepo) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&model.StockOpnameSession{}).
		Where("status = ?", model.SessionStatusActive).
		Count(&count).Error
	return count, err
}

func (r *sessionRepo) CountDetails(sessionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.StockOpnameDetail{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}
