package db

import (
	"errors"
	"fmt"
)

// Kind categorizes a database-layer failure so the UI can decide where to
// surface it.
type Kind int

const (
	KindGeneral Kind = iota
	KindConnection
	KindQuery
	KindTransaction
	KindImport
	KindExport
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindConnection:
		return "connection"
	case KindQuery:
		return "query"
	case KindTransaction:
		return "transaction"
	case KindImport:
		return "import"
	case KindExport:
		return "export"
	case KindConfig:
		return "config"
	default:
		return "general"
	}
}

// Error wraps a driver or session failure with its kind. It supports
// errors.As and errors.Is chains through Unwrap.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func connectionErr(message string, err error) *Error {
	return newError(KindConnection, message, err)
}

func queryErr(err error) *Error {
	return newError(KindQuery, "", err)
}

func txErr(message string, err error) *Error {
	return newError(KindTransaction, message, err)
}

func configErr(message string) *Error {
	return newError(KindConfig, message, nil)
}

// KindOf extracts the Kind from err, or KindGeneral when err does not carry
// one.
func KindOf(err error) Kind {
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return dbErr.Kind
	}
	return KindGeneral
}
