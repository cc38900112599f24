package model

import "time"

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
)

// StockOpnameSession represents one physical counting pass at a location.
// Status moves active -> completed exactly once and is never reopened.
type StockOpnameSession struct {
	BaseModel
	Lokasi       string     `gorm:"type:varchar(200);not null" json:"lokasi" validate:"required"`
	Status       string     `gorm:"type:varchar(20);not null;default:active" json:"status"`
	CreatedBy    string     `gorm:"type:varchar(100);not null;default:system" json:"created_by"`
	WaktuMulai   time.Time  `json:"waktu_mulai"`
	WaktuSelesai *time.Time `json:"waktu_selesai"`

	// Relasi (details ikut terhapus bersama sesinya)
	Details []StockOpnameDetail `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"details,omitempty"`

	// Jumlah baris detail, diisi saat listing
	TotalItems int64 `gorm:"-" json:"total_items"`
}

func (s *StockOpnameSession) IsActive() bool {
	return s.Status == SessionStatusActive
}
