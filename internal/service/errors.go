package service

import "errors"

// Domain errors surfaced to the API layer. Handlers map these to HTTP
// statuses with errors.Is; messages follow the original Indonesian wording.
var (
	ErrValidation          = errors.New("validasi gagal")
	ErrDuplicateCode       = errors.New("kode produk sudah ada")
	ErrProductNotFound     = errors.New("produk tidak ditemukan")
	ErrSessionNotFound     = errors.New("sesi tidak ditemukan")
	ErrSessionNotActive    = errors.New("sesi sudah selesai")
	ErrSessionCompleted    = errors.New("sesi sudah diselesaikan")
	ErrActiveSessionExists = errors.New("masih ada sesi stock opname yang aktif")
)

// Broadcaster pushes advisory events to connected websocket clients.
// Implemented by ws.Hub; services tolerate a nil broadcaster.
type Broadcaster interface {
	BroadcastJSON(payload interface{})
}
