package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel handles ID (UUID) and standard timestamps
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Hook Before Create untuk generate UUID otomatis
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	return
}

// Pagination metadata untuk list endpoints
type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
}

// NewPagination computes page count from the total row count
func NewPagination(page, perPage int, total int64) *Pagination {
	pages := int(total) / perPage
	if int(total)%perPage != 0 {
		pages++
	}
	return &Pagination{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
	}
}
