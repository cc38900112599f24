package model

type Product struct {
	BaseModel
	KodeProduk string `gorm:"type:varchar(50);uniqueIndex;not null" json:"kode_produk" validate:"required"`
	NamaProduk string `gorm:"type:varchar(200);not null" json:"nama_produk" validate:"required"`
	SaldoAwal  int    `gorm:"not null" json:"saldo_awal" validate:"required"`

	// Relasi
	Details []StockOpnameDetail `gorm:"foreignKey:ProductID" json:"details,omitempty"`
}
