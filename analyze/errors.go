package analyze

import (
	"errors"
	"fmt"

	"github.com/frozendustbunny/Magic4/span"
)

// Diagnostic kinds reported during name analysis. Matched with errors.Is;
// the exact wording is not a compatibility surface.
var (
	ErrMultiplyDeclared   = errors.New("multiply declared identifier")
	ErrUndeclared         = errors.New("undeclared identifier")
	ErrVoidDecl           = errors.New("non-function declared void")
	ErrBadStructType      = errors.New("invalid name of struct type")
	ErrDotAccessNonStruct = errors.New("dot-access of non-struct type")
	ErrBadStructField     = errors.New("invalid struct field name")
)

// Diagnostic kinds reported during type analysis.
var (
	ErrArithOperand      = errors.New("arithmetic operator applied to non-numeric operand")
	ErrLogicalOperand    = errors.New("logical operator applied to non-bool operand")
	ErrRelationalOperand = errors.New("relational operator applied to non-numeric operand")
	ErrEqMismatch        = errors.New("equality operands are of different types")
	ErrEqBadOperand      = errors.New("equality operator applied to an incomparable type")
	ErrAssignTarget      = errors.New("invalid assignment target")
	ErrAssignMismatch    = errors.New("assignment type mismatch")
	ErrCallNonFunc       = errors.New("attempt to call a non-function")
	ErrCallArity         = errors.New("function call with wrong number of args")
	ErrCallArgType       = errors.New("type of actual does not match type of formal")
	ErrReturnVoidValue   = errors.New("return with a value in a void function")
	ErrReturnMissingVal  = errors.New("missing return value")
	ErrReturnBadValue    = errors.New("bad return value")
	ErrReturnMissing     = errors.New("missing return statement")
	ErrCondNonBool       = errors.New("non-bool expression used as a condition")
	ErrReadOperand       = errors.New("invalid read operand")
	ErrWriteOperand      = errors.New("invalid write operand")
)

// Diagnostic is one reported user error, tagged with the analyzed file's
// name and the position of the offending construct.
type Diagnostic struct {
	Fn      string
	Pos     span.Pos
	Wrapped error
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%s: %s", d.Fn, d.Pos, d.Wrapped)
}

func (d *Diagnostic) Unwrap() error {
	return d.Wrapped
}

// Sink accumulates the diagnostics of one compilation. The log is
// append-only; the failed flag is what the driver consults between phases,
// and Reset clears only the flag so a later phase's verdict is not polluted
// by an earlier phase's reports.
type Sink struct {
	fn     string
	diags  []*Diagnostic
	failed bool
}

func NewSink(fn string) *Sink {
	return &Sink{fn: fn}
}

// Report appends one diagnostic and marks the sink failed.
func (s *Sink) Report(pos span.Pos, err error) {
	s.diags = append(s.diags, &Diagnostic{Fn: s.fn, Pos: pos, Wrapped: err})
	s.failed = true
}

// Failed reports whether anything has been reported since the last Reset.
func (s *Sink) Failed() bool {
	return s.failed
}

// Reset clears the failed flag. The diagnostic log survives.
func (s *Sink) Reset() {
	s.failed = false
}

func (s *Sink) Diagnostics() []*Diagnostic {
	return s.diags
}
