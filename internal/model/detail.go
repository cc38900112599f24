package model

import "github.com/google/uuid"

// StockOpnameDetail is one counted-quantity record for one product within
// one session. The composite unique index keeps at most one row per
// (session, product) pair; repeat submissions overwrite quantity and notes.
type StockOpnameDetail struct {
	BaseModel
	SessionID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_session_product" json:"session_id"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_session_product" json:"product_id"`
	JumlahBarang int       `gorm:"not null" json:"jumlah_barang"`
	Catatan      string    `gorm:"type:text" json:"catatan"`

	// Relasi
	Session *StockOpnameSession `gorm:"foreignKey:SessionID" json:"-"`
	Product *Product            `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// SessionReportRow is one aggregated line of a session report: counted
// quantities summed per product, joined with catalog data.
type SessionReportRow struct {
	KodeProduk  string `json:"kode_produk"`
	NamaProduk  string `json:"nama_produk"`
	SaldoAwal   int    `json:"saldo_awal"`
	TotalJumlah int    `json:"total_jumlah"`
}

// SessionReport bundles the aggregated rows with session metadata for
// reporting and tabular export.
type SessionReport struct {
	Session *StockOpnameSession `json:"session"`
	Rows    []SessionReportRow  `json:"rows"`
}
