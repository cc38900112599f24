package service

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go-stock-opname/internal/model"
	"go-stock-opname/internal/repository"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	exportTimeLayout     = "2006-01-02 15:04:05"
	exportFilenameLayout = "20060102_150405"
)

type ExportService interface {
	ProductsCSV() ([]byte, string, error)
	ProductsExcel() ([]byte, string, error)
	SessionCSV(sessionID uuid.UUID) ([]byte, string, error)
	SessionExcel(sessionID uuid.UUID) ([]byte, string, error)
	ProductTemplate() ([]byte, string, error)
}

type exportService struct {
	productRepo repository.ProductRepository
	sessionRepo repository.SessionRepository
	detailRepo  repository.DetailRepository
}

func NewExportService(pRepo repository.ProductRepository, sRepo repository.SessionRepository, dRepo repository.DetailRepository) ExportService {
	return &exportService{
		productRepo: pRepo,
		sessionRepo: sRepo,
		detailRepo:  dRepo,
	}
}

func (s *exportService) ProductsCSV() ([]byte, string, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"kode_produk", "nama_produk", "saldo_awal", "created_at"}); err != nil {
		return nil, "", err
	}
	for _, p := range products {
		record := []string{
			p.KodeProduk,
			p.NamaProduk,
			strconv.Itoa(p.SaldoAwal),
			p.CreatedAt.Format(exportTimeLayout),
		}
		if err := w.Write(record); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("products_%s.csv", time.Now().Format(exportFilenameLayout))
	return buf.Bytes(), filename, nil
}

func (s *exportService) ProductsExcel() ([]byte, string, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Products"
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
		return nil, "", err
	}

	header := []interface{}{"Kode Produk", "Nama Produk", "Saldo Awal", "Tanggal Dibuat"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, "", err
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", err
		}
		row := []interface{}{
			p.KodeProduk,
			p.NamaProduk,
			p.SaldoAwal,
			p.CreatedAt.Format(exportTimeLayout),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("products_%s.xlsx", time.Now().Format(exportFilenameLayout))
	return buf.Bytes(), filename, nil
}

func (s *exportService) SessionCSV(sessionID uuid.UUID) ([]byte, string, error) {
	session, details, err := s.sessionExportData(sessionID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"kode_produk", "nama_produk", "saldo_awal", "jumlah_barang", "catatan", "created_at"}); err != nil {
		return nil, "", err
	}
	for _, d := range details {
		if err := w.Write(sessionExportRecord(d)); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("stock_opname_%s_%s_%s.csv", session.Lokasi, session.ID, time.Now().Format(exportFilenameLayout))
	return buf.Bytes(), filename, nil
}

func (s *exportService) SessionExcel(sessionID uuid.UUID) ([]byte, string, error) {
	session, details, err := s.sessionExportData(sessionID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Stock Opname"
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
		return nil, "", err
	}

	header := []interface{}{"Kode Produk", "Nama Produk", "Saldo Awal", "Jumlah Barang", "Catatan", "Waktu Input"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, "", err
	}

	for i, d := range details {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, "", err
		}
		record := sessionExportRecord(d)
		row := make([]interface{}, len(record))
		for j, v := range record {
			row[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, "", err
		}
	}

	if err := writeSummarySheet(f, session, len(details)); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("stock_opname_%s_%s_%s.xlsx", session.Lokasi, session.ID, time.Now().Format(exportFilenameLayout))
	return buf.Bytes(), filename, nil
}

// ProductTemplate returns an empty sheet carrying only the import headers
func (s *exportService) ProductTemplate() ([]byte, string, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Products Template"
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
		return nil, "", err
	}

	header := []interface{}{"Kode", "Nama Barang", "Jumlah"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), "template_products.xlsx", nil
}

func (s *exportService) sessionExportData(sessionID uuid.UUID) (*model.StockOpnameSession, []model.StockOpnameDetail, error) {
	session, err := s.sessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}

	details, err := s.detailRepo.ListBySession(sessionID)
	if err != nil {
		return nil, nil, err
	}
	return session, details, nil
}

func sessionExportRecord(d model.StockOpnameDetail) []string {
	kode, nama, saldo := "", "", ""
	if d.Product != nil {
		kode = d.Product.KodeProduk
		nama = d.Product.NamaProduk
		saldo = strconv.Itoa(d.Product.SaldoAwal)
	}
	return []string{
		kode,
		nama,
		saldo,
		strconv.Itoa(d.JumlahBarang),
		d.Catatan,
		d.CreatedAt.Format(exportTimeLayout),
	}
}

func writeSummarySheet(f *excelize.File, session *model.StockOpnameSession, totalItems int) error {
	if _, err := f.NewSheet("Summary"); err != nil {
		return err
	}

	waktuSelesai := "Belum selesai"
	if session.WaktuSelesai != nil {
		waktuSelesai = session.WaktuSelesai.Format(exportTimeLayout)
	}

	summary := [][]interface{}{
		{"Informasi", "Detail"},
		{"Lokasi", session.Lokasi},
		{"Waktu Mulai", session.WaktuMulai.Format(exportTimeLayout)},
		{"Waktu Selesai", waktuSelesai},
		{"Status", session.Status},
		{"Total Item", totalItems},
	}
	for i := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow("Summary", cell, &summary[i]); err != nil {
			return err
		}
	}
	return nil
}
