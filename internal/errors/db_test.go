package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError_NilError(t *testing.T) {
	if err := MapDBError(nil); err != nil {
		t.Errorf("MapDBError(nil) = %v, want nil", err)
	}
}

func TestMapDBError_ContextErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
	}{
		{name: "deadline exceeded", err: context.DeadlineExceeded, wantCode: ErrCodeTimeout},
		{name: "canceled", err: context.Canceled, wantCode: ErrCodeCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.err)
			if !IsAppError(err, tt.wantCode) {
				t.Errorf("MapDBError() code = %v, want %v", GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestMapDBError_NoRows(t *testing.T) {
	err := MapDBError(pgx.ErrNoRows)
	if !IsNotFound(err) {
		t.Errorf("MapDBError(pgx.ErrNoRows) should be NotFound, got %v", GetCode(err))
	}
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	tests := []struct {
		name      string
		pgErr     *pgconn.PgError
		wantField string
	}{
		{
			name: "column name metadata",
			pgErr: &pgconn.PgError{
				Code:       pgerrcode.UniqueViolation,
				ColumnName: "id",
			},
			wantField: "id",
		},
		{
			name: "detail message",
			pgErr: &pgconn.PgError{
				Code:   pgerrcode.UniqueViolation,
				Detail: `Key (id)=(42) already exists.`,
			},
			wantField: "id",
		},
		{
			name: "primary key constraint",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "queue_items_pkey",
			},
			wantField: "id",
		},
		{
			name: "unique constraint on underscored table",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "queue_items_key_key",
			},
			wantField: "key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.pgErr)
			if !IsConflict(err) {
				t.Errorf("MapDBError() should be Conflict, got %v", GetCode(err))
			}
			if field := GetField(err); field != tt.wantField {
				t.Errorf("MapDBError() field = %v, want %v", field, tt.wantField)
			}
		})
	}
}

func TestMapDBError_ValueViolations(t *testing.T) {
	codes := []string{
		pgerrcode.NotNullViolation,
		pgerrcode.CheckViolation,
		pgerrcode.StringDataRightTruncationDataException,
		pgerrcode.NumericValueOutOfRange,
		pgerrcode.InvalidDatetimeFormat,
	}
	for _, code := range codes {
		t.Run(code, func(t *testing.T) {
			err := MapDBError(&pgconn.PgError{Code: code, ColumnName: "run_duration"})
			if !IsValidation(err) {
				t.Errorf("MapDBError(%s) should be Validation, got %v", code, GetCode(err))
			}
			if field := GetField(err); field != "run_duration" {
				t.Errorf("field = %q, want run_duration", field)
			}
		})
	}
}

func TestMapDBError_ConnectionException(t *testing.T) {
	err := MapDBError(&pgconn.PgError{Code: pgerrcode.ConnectionFailure})
	if !IsInternal(err) {
		t.Errorf("MapDBError(connection failure) should be Internal, got %v", GetCode(err))
	}
}

func TestMapDBError_UnknownPgError(t *testing.T) {
	err := MapDBError(&pgconn.PgError{Code: "99999", Message: "unknown error"})
	if !IsInternal(err) {
		t.Errorf("MapDBError() should be Internal for unknown pg error, got %v", GetCode(err))
	}
}

func TestMapDBError_StandardError(t *testing.T) {
	stdErr := errors.New("standard error")
	err := MapDBError(stdErr)
	if !errors.Is(err, stdErr) {
		t.Errorf("MapDBError() should return original error for non-db errors, got %v", err)
	}
}

func TestInferFieldFromConstraint(t *testing.T) {
	tests := []struct {
		constraintName string
		want           string
	}{
		{"jobs_pkey", "id"},
		{"queue_items_key_key", "key"},
		{"uipath_configuration_tenant_unique", "tenant"},
		{"table_lower_key", ""},
		{"key", ""},
		{"", ""},
		{"something_else", ""},
	}

	for _, tt := range tests {
		t.Run(tt.constraintName, func(t *testing.T) {
			if got := inferFieldFromConstraint(tt.constraintName); got != tt.want {
				t.Errorf("inferFieldFromConstraint(%q) = %q, want %q", tt.constraintName, got, tt.want)
			}
		})
	}
}

// IsAppError checks if an error is an AppError with the given code.
func IsAppError(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
