package arithcode

import "github.com/nayuki/arithmetic-coding/errs"

// domainError reports caller misuse: a bad numStateBits, a zero-frequency
// symbol, a total exceeding maximumTotal, and the like.
func domainError(format string, args ...interface{}) error {
	return errs.Domainf(format, args...)
}

// logicError reports an internal invariant violation: the coder detected
// state it should never be able to reach if both the caller and this
// package are behaving correctly.
func logicError(format string, args ...interface{}) error {
	return errs.Logicf(format, args...)
}

// IsDomainError reports whether err (or its cause) is a DomainError.
func IsDomainError(err error) bool { return errs.IsDomain(err) }

// IsLogicError reports whether err (or its cause) is a LogicError.
func IsLogicError(err error) bool { return errs.IsLogic(err) }
