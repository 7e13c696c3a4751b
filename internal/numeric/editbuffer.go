package numeric

import (
	"regexp"
	"strconv"
	"strings"
)

// unsigned decimal, both halves optional so "1.", ".5" and "" survive typing
var editPattern = regexp.MustCompile(`^\d*\.?\d*$`)

// EditBuffer holds a numeric field while it is being edited interactively.
// While typing, the raw string is preserved verbatim (including interim states
// like "1." or "") so no keystroke is lost; only Commit coerces it into a
// committed float. This keeps the unvalidated edit string and the committed
// value in two explicit representations instead of one shape-shifting field.
type EditBuffer struct {
	raw   string
	value float64
}

// NewEditBuffer seeds a buffer from a committed value.
func NewEditBuffer(value float64) *EditBuffer {
	return &EditBuffer{
		raw:   strconv.FormatFloat(value, 'f', -1, 64),
		value: value,
	}
}

// Set applies one edit. A decimal comma is normalized to a decimal point;
// input that then fails the unsigned-decimal pattern is rejected and the
// previous raw string kept.
func (e *EditBuffer) Set(input string) {
	normalized := strings.Replace(input, ",", ".", 1)
	if editPattern.MatchString(normalized) {
		e.raw = normalized
	}
}

// Raw returns the in-progress edit string.
func (e *EditBuffer) Raw() string {
	return e.raw
}

// Commit canonicalizes the buffer, as on focus loss: the raw string is parsed
// (unparseable input commits as 0), the committed value updated, and the raw
// string rewritten in canonical form.
func (e *EditBuffer) Commit() float64 {
	v, err := strconv.ParseFloat(e.raw, 64)
	if err != nil {
		v = 0
	}
	e.value = v
	e.raw = strconv.FormatFloat(v, 'f', -1, 64)
	return v
}

// Value returns the last committed value.
func (e *EditBuffer) Value() float64 {
	return e.value
}
