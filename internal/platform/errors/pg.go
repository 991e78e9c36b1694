package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes the minutes store can raise
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
	pgStringTruncation    = "22001"
	pgInvalidText         = "22P02"
	pgSerialization       = "40001"
	pgDeadlock            = "40P01"
	pgLockNotAvailable    = "55P03"
	pgReadOnlyTx          = "25006"
	pgCannotConnectNow    = "57P03"
)

var pgCodes = map[string]ErrorCode{
	pgUniqueViolation:     ErrorCodeDuplicateKey,
	pgForeignKeyViolation: ErrorCodeInvalidArgument,
	pgStringTruncation:    ErrorCodeInvalidArgument,
	pgInvalidText:         ErrorCodeInvalidArgument,
	pgNotNullViolation:    ErrorCodeValidation,
	pgCheckViolation:      ErrorCodeValidation,
	pgReadOnlyTx:          ErrorCodeUnavailable,
	pgCannotConnectNow:    ErrorCodeUnavailable,
}

func pgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	ok := stderrs.As(err, &pe)
	return pe, ok
}

// DBErrorCode classifies a postgres error; ok is false for anything else
func DBErrorCode(err error) (ErrorCode, bool) {
	pe, ok := pgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	if c, known := pgCodes[pe.Code]; known {
		return c, true
	}
	return ErrorCodeDB, true
}

func pgRetryable(pe *pgconn.PgError) bool {
	switch pe.Code {
	case pgSerialization, pgDeadlock, pgLockNotAvailable:
		return true
	}
	return false
}
