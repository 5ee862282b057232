// Package gateway classifies failures coming back from the database and the
// object store into a small set of kinds that handlers can switch on.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Kind string

const (
	KindUnknown     Kind = "unknown"
	KindValidation  Kind = "validation"
	KindPermission  Kind = "permission"
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
	KindUnavailable Kind = "unavailable"
)

var (
	// ErrForbidden is returned when the caller does not own the row it tries to change.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned by stores that have no native not-found error.
	ErrNotFound = errors.New("not found")
)

type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap classifies err and tags it with the operation that produced it.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var ge *Error
	if errors.As(err, &ge) {
		return err
	}
	return &Error{Kind: classify(err), Op: op, Err: err}
}

// KindOf reports the kind of err, classifying it on the fly when it was not wrapped.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return classify(err)
}

func IsPermission(err error) bool { return KindOf(err) == KindPermission }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }

func classify(err error) Kind {
	switch {
	case errors.Is(err, ErrForbidden):
		return KindPermission
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return KindNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return KindUnavailable
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPostgres(pgErr.Code)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return classifyStorage(apiErr.ErrorCode())
	}

	return KindUnknown
}

// See https://www.postgresql.org/docs/current/errcodes-appendix.html
func classifyPostgres(code string) Kind {
	switch code {
	case "42501": // insufficient_privilege, raised by row-level security policies
		return KindPermission
	case "23505", "23503": // unique_violation, foreign_key_violation
		return KindConflict
	case "23502", "23514", "22001", "22P02":
		return KindValidation
	}
	if len(code) >= 2 {
		switch code[:2] {
		case "08", "53", "57":
			return KindUnavailable
		case "28":
			return KindPermission
		}
	}
	return KindUnknown
}

func classifyStorage(code string) Kind {
	switch code {
	case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch", "AllAccessDisabled":
		return KindPermission
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return KindNotFound
	case "PreconditionFailed", "ConditionalRequestConflict":
		return KindConflict
	case "EntityTooLarge", "InvalidArgument", "KeyTooLongError":
		return KindValidation
	case "SlowDown", "ServiceUnavailable", "RequestTimeout", "InternalError":
		return KindUnavailable
	}
	return KindUnknown
}
