package handler

import (
	"go-stock-opname/internal/service"
	"go-stock-opname/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SessionHandler struct {
	sessions service.SessionService
	opname   service.OpnameService
	reports  service.ReportService
}

func NewSessionHandler(sessions service.SessionService, opname service.OpnameService, reports service.ReportService) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		opname:   opname,
		reports:  reports,
	}
}

func (h *SessionHandler) GetSessions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 10)

	sessions, pagination, err := h.sessions.ListSessions(page, perPage)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       sessions,
		"pagination": pagination,
	})
}

func (h *SessionHandler) StartSession(c *fiber.Ctx) error {
	var req struct {
		Lokasi    string `json:"lokasi"`
		CreatedBy string `json:"created_by"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}

	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = getUserName(c)
	}

	session, err := h.sessions.StartSession(req.Lokasi, createdBy)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Sesi stock opname berhasil dibuat",
		"data":    session,
	})
}

func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid session ID"})
	}

	session, err := h.sessions.GetSession(id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    session,
	})
}

func (h *SessionHandler) CompleteSession(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid session ID"})
	}

	session, err := h.sessions.CompleteSession(id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Sesi stock opname berhasil diselesaikan",
		"data":    session,
	})
}

func (h *SessionHandler) DeleteSession(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid session ID"})
	}

	if err := h.sessions.DeleteSession(id); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Sesi stock opname berhasil dihapus",
	})
}

func (h *SessionHandler) GetSessionDetails(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid session ID"})
	}

	session, details, err := h.opname.ListDetails(id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"session": session,
		"data":    details,
	})
}

type recordCountRequest struct {
	ProductID    uuid.UUID `json:"product_id" validate:"uuid_required"`
	JumlahBarang *int      `json:"jumlah_barang" validate:"required"`
	Catatan      string    `json:"catatan"`
}

func (h *SessionHandler) AddSessionDetail(c *fiber.Ctx) error {
	sessionID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid session ID"})
	}

	var req recordCountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid JSON"})
	}
	if errs := validator.ValidateStruct(&req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "product_id and jumlah_barang are required",
		})
	}

	detail, err := h.opname.RecordCount(sessionID, req.ProductID, *req.JumlahBarang, req.Catatan)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Data berhasil direkam",
		"data":    detail,
	})
}

func (h *SessionHandler) GetSessionReport(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "message": "Invalid session ID"})
	}

	report, err := h.reports.AggregateBySession(id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"session": report.Session,
		"data":    report.Rows,
	})
}
