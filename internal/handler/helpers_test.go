package handler

import (
	"errors"
	"fmt"
	"testing"

	"go-stock-opname/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"product not found", service.ErrProductNotFound, fiber.StatusNotFound},
		{"session not found", service.ErrSessionNotFound, fiber.StatusNotFound},
		{"active session blocks delete-all", service.ErrActiveSessionExists, fiber.StatusConflict},
		{"bad credentials", service.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{"duplicate code", service.ErrDuplicateCode, fiber.StatusBadRequest},
		{"session not active", service.ErrSessionNotActive, fiber.StatusBadRequest},
		{"session already completed", service.ErrSessionCompleted, fiber.StatusBadRequest},
		{"validation failure", service.ErrValidation, fiber.StatusBadRequest},
		{
			"wrapped validation failure keeps the field detail",
			fmt.Errorf("%w: field 'Product.KodeProduk' failed on tag 'required'", service.ErrValidation),
			fiber.StatusBadRequest,
		},
		{"unexpected error", errors.New("koneksi database putus"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, statusForError(tc.err))
		})
	}
}
