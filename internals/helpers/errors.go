package helper

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// DefaultErrorMessage dipakai kalau error dari store tidak punya pesan.
const DefaultErrorMessage = "Terjadi kesalahan"

// ErrorMessage: pesan mentah dari store, atau fallback generik.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return DefaultErrorMessage
}

// IsDuplicateKey mendeteksi pelanggaran unique constraint, baik yang sudah
// diterjemahkan GORM, PgError 23505, maupun pesan driver lain (sqlite).
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") || strings.Contains(low, "unique constraint")
}
