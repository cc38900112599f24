package handler

import (
	"fmt"

	"go-stock-opname/internal/model"
	"go-stock-opname/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 10)
	search := c.Query("search")

	products, pagination, err := h.service.ListProducts(page, perPage, search)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       products,
		"pagination": pagination,
	})
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}

	if err := h.service.CreateProduct(&product); err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Produk berhasil ditambahkan",
		"data":    product,
	})
}

func (h *CatalogHandler) SearchProducts(c *fiber.Ctx) error {
	keyword := c.Query("q")
	limit := c.QueryInt("limit", 10)

	products, err := h.service.SearchProducts(keyword, limit)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
	})
}

func (h *CatalogHandler) DeleteAllProducts(c *fiber.Ctx) error {
	deleted, err := h.service.DeleteAllProducts()
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"message":       fmt.Sprintf("Berhasil menghapus %d produk", deleted),
		"deleted_count": deleted,
	})
}
