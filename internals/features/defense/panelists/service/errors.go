// file: internals/features/defense/panelists/service/errors.go
package service

import "errors"

// --- Klasifikasi error PG di boundary store ---
// 23505 = unique_violation, 23503 = foreign_key_violation

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
