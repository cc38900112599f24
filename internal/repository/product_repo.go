package repository

import (
	"errors"

	"go-stock-opname/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByCode(code string) (*model.Product, error)
	Search(keyword string, limit int) ([]model.Product, error)
	List(page, perPage int, search string) ([]model.Product, int64, error)

	// UpsertByCode menerima *gorm.DB (tx) agar bisa berjalan dalam transaksi
	// import batch. Returns true when a new row was inserted.
	UpsertByCode(tx *gorm.DB, product *model.Product) (bool, error)

	// DeleteAll removes every detail first, then every product, in one
	// transaction. Returns the number of products deleted.
	DeleteAll() (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("created_at ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByCode(code string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "kode_produk = ?", code).Error
	return &product, err
}

func (r *productRepo) Search(keyword string, limit int) ([]model.Product, error) {
	var products []model.Product
	pattern := "%" + keyword + "%"
	err := r.db.
		Where("kode_produk ILIKE ? OR nama_produk ILIKE ?", pattern, pattern).
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (r *productRepo) List(page, perPage int, search string) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.db.Model(&model.Product{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("kode_produk ILIKE ? OR nama_produk ILIKE ?", pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&products).Error
	return products, total, err
}

func (r *productRepo) UpsertByCode(tx *gorm.DB, product *model.Product) (bool, error) {
	if tx == nil {
		tx = r.db
	}

	existing, err := r.findByCodeTx(tx, product.KodeProduk)
	if err == nil {
		// Refresh name and baseline, keep id/created_at stable
		return false, tx.Model(existing).Updates(map[string]interface{}{
			"nama_produk": product.NamaProduk,
			"saldo_awal":  product.SaldoAwal,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	// Unique index on kode_produk resolves the concurrent-create race.
	// DO NOTHING keeps RowsAffected honest: 0 means another tx inserted
	// the code first, so the row is applied as an update instead.
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kode_produk"}},
		DoNothing: true,
	}).Create(product)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, tx.Model(&model.Product{}).
			Where("kode_produk = ?", product.KodeProduk).
			Updates(map[string]interface{}{
				"nama_produk": product.NamaProduk,
				"saldo_awal":  product.SaldoAwal,
			}).Error
	}
	return true, nil
}

func (r *productRepo) findByCodeTx(tx *gorm.DB, code string) (*model.Product, error) {
	var product model.Product
	err := tx.First(&product, "kode_produk = ?", code).Error
	return &product, err
}

func (r *productRepo) DeleteAll() (int64, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.StockOpnameDetail{}).Error; err != nil {
			return err
		}
		res := tx.Where("1 = 1").Delete(&model.Product{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	return deleted, err
}
