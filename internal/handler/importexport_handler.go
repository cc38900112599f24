package handler

import (
	"fmt"
	"strings"

	"go-stock-opname/internal/service"

	"github.com/gofiber/fiber/v2"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ImportExportHandler struct {
	importer service.ImportService
	exporter service.ExportService
}

func NewImportExportHandler(importer service.ImportService, exporter service.ExportService) *ImportExportHandler {
	return &ImportExportHandler{
		importer: importer,
		exporter: exporter,
	}
}

func (h *ImportExportHandler) ImportProducts(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "No file uploaded"})
	}

	name := strings.ToLower(fileHeader.Filename)
	if !strings.HasSuffix(name, ".xlsx") && !strings.HasSuffix(name, ".xls") {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "File must be Excel format (.xlsx or .xls)"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Uploaded file could not be opened"})
	}
	defer file.Close()

	result, err := h.importer.ImportProducts(file)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Import completed. %d products imported, %d products updated, %d errors",
			result.SuccessCount, result.UpdateCount, result.ErrorCount),
		"success_count": result.SuccessCount,
		"update_count":  result.UpdateCount,
		"error_count":   result.ErrorCount,
		"errors":        result.Errors,
	})
}

func (h *ImportExportHandler) ExportProductsCSV(c *fiber.Ctx) error {
	data, filename, err := h.exporter.ProductsCSV()
	if err != nil {
		return fail(c, err)
	}
	return sendFile(c, data, filename, "text/csv")
}

func (h *ImportExportHandler) ExportProductsExcel(c *fiber.Ctx) error {
	data, filename, err := h.exporter.ProductsExcel()
	if err != nil {
		return fail(c, err)
	}
	return sendFile(c, data, filename, excelContentType)
}

func (h *ImportExportHandler) ExportSessionCSV(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid session ID"})
	}

	data, filename, err := h.exporter.SessionCSV(id)
	if err != nil {
		return fail(c, err)
	}
	return sendFile(c, data, filename, "text/csv")
}

func (h *ImportExportHandler) ExportSessionExcel(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid session ID"})
	}

	data, filename, err := h.exporter.SessionExcel(id)
	if err != nil {
		return fail(c, err)
	}
	return sendFile(c, data, filename, excelContentType)
}

func (h *ImportExportHandler) DownloadProductTemplate(c *fiber.Ctx) error {
	data, filename, err := h.exporter.ProductTemplate()
	if err != nil {
		return fail(c, err)
	}
	return sendFile(c, data, filename, excelContentType)
}

func sendFile(c *fiber.Ctx, data []byte, filename, contentType string) error {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(data)
}
