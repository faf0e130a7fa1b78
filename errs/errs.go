// Package errs defines the two error kinds shared by every package in
// this module: a DomainError is caller-visible misuse (a bad parameter, a
// zero-frequency symbol, an oversized history), a LogicError is an
// internal invariant violation that indicates a bug in this module
// itself. Both are terminal; neither is caught and recovered internally.
//
// Callers that need to tell them apart - a cmd/ driver choosing a
// diagnostic, a test asserting which kind a failure is - use IsDomain/
// IsLogic rather than matching on message text.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

type kind int

const (
	domainKind kind = iota
	logicKind
)

type codedError struct {
	kind kind
	msg  string
}

func (e *codedError) Error() string { return e.msg }

// Domainf reports caller misuse.
func Domainf(format string, args ...interface{}) error {
	return errors.WithStack(&codedError{kind: domainKind, msg: fmt.Sprintf(format, args...)})
}

// Logicf reports an internal invariant violation.
func Logicf(format string, args ...interface{}) error {
	return errors.WithStack(&codedError{kind: logicKind, msg: fmt.Sprintf(format, args...)})
}

// IsDomain reports whether err (or its cause) is a DomainError.
func IsDomain(err error) bool {
	ce, ok := errors.Cause(err).(*codedError)
	return ok && ce.kind == domainKind
}

// IsLogic reports whether err (or its cause) is a LogicError.
func IsLogic(err error) bool {
	ce, ok := errors.Cause(err).(*codedError)
	return ok && ce.kind == logicKind
}

// Diagnose formats err for a driver's top-level stderr diagnostic,
// distinguishing caller misuse from an internal error so an operator
// knows which side to fix.
func Diagnose(err error) string {
	switch {
	case IsDomain(err):
		return fmt.Sprintf("invalid usage: %v", err)
	case IsLogic(err):
		return fmt.Sprintf("internal error: %+v", err)
	default:
		return fmt.Sprintf("%v", err)
	}
}
