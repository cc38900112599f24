package service

import (
	"go-stock-opname/internal/model"

	"github.com/stretchr/testify/mock"
)

// matchProductCode matches *model.Product arguments by kode_produk
func matchProductCode(code string) interface{} {
	return mock.MatchedBy(func(p *model.Product) bool {
		return p.KodeProduk == code
	})
}
