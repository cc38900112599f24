package repository

import (
	"go-stock-opname/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DetailRepository interface {
	// Upsert inserts the detail or, when a row for the same
	// (session_id, product_id) already exists, overwrites its quantity and
	// notes. Backed by the composite unique index so the operation stays
	// atomic under concurrent submissions.
	Upsert(detail *model.StockOpnameDetail) error

	FindBySessionAndProduct(sessionID, productID uuid.UUID) (*model.StockOpnameDetail, error)
	ListBySession(sessionID uuid.UUID) ([]model.StockOpnameDetail, error)
	AggregateBySession(sessionID uuid.UUID) ([]model.SessionReportRow, error)
}

type detailRepo struct {
	db *gorm.DB
}

func NewDetailRepo(db *gorm.DB) DetailRepository {
	return &detailRepo{db}
}

func (r *detailRepo) Upsert(detail *model.StockOpnameDetail) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"jumlah_barang", "catatan", "updated_at"}),
	}).Create(detail).Error
}

func (r *detailRepo) FindBySessionAndProduct(sessionID, productID uuid.UUID) (*model.StockOpnameDetail, error) {
	var detail model.StockOpnameDetail
	err := r.db.Preload("Product").
		First(&detail, "session_id = ? AND product_id = ?", sessionID, productID).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *detailRepo) ListBySession(sessionID uuid.UUID) ([]model.StockOpnameDetail, error) {
	var details []model.StockOpnameDetail
	err := r.db.Preload("Product").
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&details).Error
	return details, err
}

// AggregateBySession sums counted quantities per product across the
// session's details. With the composite upsert in place each product has a
// single row, but the SUM keeps the report correct should the model ever be
// relaxed to multiple counting passes.
func (r *detailRepo) AggregateBySession(sessionID uuid.UUID) ([]model.SessionReportRow, error) {
	var rows []model.SessionReportRow
	err := r.db.Model(&model.StockOpnameDetail{}).
		Select("products.kode_produk, products.nama_produk, products.saldo_awal, SUM(stock_opname_details.jumlah_barang) AS total_jumlah").
		Joins("JOIN products ON products.id = stock_opname_details.product_id").
		Where("stock_opname_details.session_id = ?", sessionID).
		Group("products.kode_produk, products.nama_produk, products.saldo_awal").
		Order("products.kode_produk ASC").
		Scan(&rows).Error
	return rows, err
}
