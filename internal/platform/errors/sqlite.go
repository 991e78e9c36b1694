package errors

import (
	"context"
	"database/sql"
	stderrs "errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

func sqliteCode(err error) (int, bool) {
	var se *sqlite.Error
	if !stderrs.As(err, &se) {
		return 0, false
	}
	return se.Code(), true
}

// busy or locked, compared on the primary result code
func sqliteRetryable(code int) bool {
	switch code & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}

// SQLiteErrorCode classifies a modernc sqlite error; ok is false for anything else
func SQLiteErrorCode(err error) (ErrorCode, bool) {
	code, ok := sqliteCode(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return ErrorCodeDuplicateKey, true
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ErrorCodeInvalidArgument, true
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL, sqlite3.SQLITE_CONSTRAINT_CHECK:
		return ErrorCodeValidation, true
	}
	if sqliteRetryable(code) {
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromSQL wraps a store error from either backend; no rows becomes NotFound
func FromSQL(err error, msg string) error {
	if err == nil {
		return nil
	}
	if stderrs.Is(err, sql.ErrNoRows) || IsCode(err, ErrorCodeNotFound) {
		return Wrap(err, ErrorCodeNotFound, msg)
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	if code, ok := SQLiteErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeDB, msg)
}

// IsRetryable reports lock contention from either backend. Cancellation never retries.
func IsRetryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if code, ok := sqliteCode(err); ok {
		return sqliteRetryable(code)
	}
	if pe, ok := pgError(err); ok {
		return pgRetryable(pe)
	}
	return false
}
