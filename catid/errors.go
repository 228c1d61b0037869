package catid

import "errors"

// Kind is a stable category for programmatic error handling.
//
// Callers should branch on Kind/RuleID rather than matching error strings.
type Kind string

const (
	KindInvalidDigit   Kind = "InvalidDigit"
	KindLengthMismatch Kind = "LengthMismatch"
	KindOverflow       Kind = "Overflow"
)

// Stable rule identifiers carried by *Error.
const (
	RuleBase16Digit    = "CATID-B16-001"
	RuleBase16Overflow = "CATID-B16-002"
	RuleBase62Digit    = "CATID-B62-001"
	RuleBase62Overflow = "CATID-B62-002"
	RuleRawLength      = "CATID-RAW-001"
	RuleNonASCII       = "CATID-ASCII-001"
	RuleContentLength  = "CATID-CONTENT-001"
	RuleContentDigit   = "CATID-CONTENT-002"
	RuleParseLength    = "CATID-PARSE-001"
)

// Error is the package's structured error type.
//
// Offset is the byte offset of the offending character for InvalidDigit and
// Overflow errors, and -1 otherwise.
type Error struct {
	Kind    Kind
	RuleID  string
	Offset  int
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

// Is lets errors.Is match a structured error against the Err* sentinels,
// which compare by Kind only.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	if t.RuleID != "" {
		return t.RuleID == e.RuleID
	}
	return t.Kind == e.Kind
}

var (
	ErrInvalidDigit   = &Error{Kind: KindInvalidDigit, Offset: -1, Message: "catid: invalid digit"}
	ErrLengthMismatch = &Error{Kind: KindLengthMismatch, Offset: -1, Message: "catid: length mismatch"}
	ErrOverflow       = &Error{Kind: KindOverflow, Offset: -1, Message: "catid: value exceeds 128 bits"}
)

func newError(kind Kind, ruleID string, offset int, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Offset: offset, Message: msg}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}
