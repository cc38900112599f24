package service

import (
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go-stock-opname/internal/model"
	"go-stock-opname/internal/repository"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Expected template headers for the product import sheet
const (
	importHeaderKode   = "kode"
	importHeaderNama   = "nama barang"
	importHeaderJumlah = "jumlah"
)

type ImportResult struct {
	SuccessCount int      `json:"success_count"`
	UpdateCount  int      `json:"update_count"`
	ErrorCount   int      `json:"error_count"`
	Errors       []string `json:"errors"`
}

type ImportService interface {
	// ImportProducts upserts products from an Excel sheet. Bad rows are
	// collected into the result and skipped; all valid rows commit in one
	// transaction, so a database failure rolls the whole batch back.
	ImportProducts(r io.Reader) (*ImportResult, error)
}

// TxRunner is the slice of *gorm.DB the import batch needs
type TxRunner interface {
	Transaction(fn func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

type importService struct {
	db          TxRunner
	productRepo repository.ProductRepository
}

func NewImportService(db TxRunner, pRepo repository.ProductRepository) ImportService {
	return &importService{
		db:          db,
		productRepo: pRepo,
	}
}

func (s *importService) ImportProducts(r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("file excel tidak bisa dibaca: %w", err)
	}
	defer f.Close()

	products, rowErrors, err := parseProductRows(f)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		ErrorCount: len(rowErrors),
		Errors:     rowErrors,
	}

	if len(products) > 0 {
		err = s.db.Transaction(func(tx *gorm.DB) error {
			for i := range products {
				created, err := s.productRepo.UpsertByCode(tx, &products[i])
				if err != nil {
					return err
				}
				if created {
					result.SuccessCount++
				} else {
					result.UpdateCount++
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// parseProductRows reads the first sheet, locates the template columns by
// header name, and converts each data row into a product. Row-level
// problems land in the returned error list; only a broken file or missing
// header aborts the parse.
func parseProductRows(f *excelize.File) ([]model.Product, []string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("file excel tidak punya sheet")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("sheet tidak bisa dibaca: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("file excel kosong")
	}

	kodeCol, namaCol, jumlahCol := -1, -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case importHeaderKode:
			kodeCol = i
		case importHeaderNama:
			namaCol = i
		case importHeaderJumlah:
			jumlahCol = i
		}
	}
	if kodeCol < 0 || namaCol < 0 || jumlahCol < 0 {
		return nil, nil, fmt.Errorf("header tidak sesuai template (Kode, Nama Barang, Jumlah)")
	}

	var products []model.Product
	errs := []string{}

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based plus header row

		kode := cellAt(row, kodeCol)
		nama := cellAt(row, namaCol)
		jumlahStr := cellAt(row, jumlahCol)

		if kode == "" || nama == "" || jumlahStr == "" {
			errs = append(errs, fmt.Sprintf("Row %d: missing or empty required fields (kode_produk, nama_produk, saldo_awal)", rowNum))
			continue
		}

		jumlah, err := strconv.Atoi(jumlahStr)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: saldo_awal '%s' is not a number", rowNum, jumlahStr))
			continue
		}

		products = append(products, model.Product{
			KodeProduk: kode,
			NamaProduk: nama,
			SaldoAwal:  jumlah,
		})
	}

	return products, errs, nil
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
