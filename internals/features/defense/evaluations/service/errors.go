// file: internals/features/defense/evaluations/service/errors.go
package service

import "errors"

// Sentinel error scoring engine. Controller yang memetakan ke kode HTTP.
var (
	ErrEvaluationNotFound = errors.New("evaluation tidak ditemukan")
	ErrScheduleNotFound   = errors.New("jadwal sidang tidak ditemukan")
	ErrEvaluationLocked   = errors.New("evaluation terkunci; nilai tidak bisa diubah sebelum di-unlock")
	ErrInvalidStatus      = errors.New("status evaluation tidak dikenal")
	ErrScoreNotFinite     = errors.New("score harus berupa angka finite")
)

// ItemError: kegagalan satu item dalam batch (multi-status), diberi index + alasan.
type ItemError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

/* =========================
   Klasifikasi error PG di boundary store
   23505 = unique_violation
   23503 = foreign_key_violation
   ========================= */

type pgSQLErr interface {
	SQLState() string
	Error() string
}

func IsUniqueViolation(err error) bool {
	var pgErr pgSQLErr
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23505"
}

func IsForeignKeyViolation(err error) bool {
	var pgErr pgSQLErr
	return errors.As(err, &pgErr) && pgErr.SQLState() == "23503"
}
