package ir

import (
	"strconv"
	"strings"
)

// Sign is the sign of a selected component, +1 or -1.
type Sign int8

const (
	Positive Sign = 1
	Negative Sign = -1
)

// Valid reports whether s is one of Positive or Negative.
func (s Sign) Valid() bool {
	return s == Positive || s == Negative
}

// Selector identifies one component slot of a multivector or vector
// by index, with a sign applied when the component is read or written.
// Whether Index is inside the algebra's basis is checked by consumers.
type Selector struct {
	Index int  `json:"index"`
	Sign  Sign `json:"sign"`
}

// Sel creates a selector. A negative index yields a Negative selector
// for its absolute value, mirroring the textual "-i" form.
func Sel(index int) Selector {
	if index < 0 {
		return Selector{Index: -index, Sign: Negative}
	}
	return Selector{Index: index, Sign: Positive}
}

// String renders the selector in its textual form: "3" or "-3".
func (s Selector) String() string {
	if s.Sign == Negative {
		return "-" + strconv.Itoa(s.Index)
	}
	return strconv.Itoa(s.Index)
}

// Selectorset is an ordered sequence of selectors. Order is significant:
// it pairs positionally with another Selectorset or a Variableset.
type Selectorset []Selector

// Sels builds a Selectorset from signed indices, see Sel.
func Sels(indices ...int) Selectorset {
	set := make(Selectorset, len(indices))
	for i, idx := range indices {
		set[i] = Sel(idx)
	}
	return set
}

// Clone returns a copy that shares no storage with s.
// A nil set stays nil.
func (s Selectorset) Clone() Selectorset {
	if s == nil {
		return nil
	}
	out := make(Selectorset, len(s))
	copy(out, s)
	return out
}

// String renders the comma separated selector list without brackets.
func (s Selectorset) String() string {
	parts := make([]string, len(s))
	for i, sel := range s {
		parts[i] = sel.String()
	}
	return strings.Join(parts, ",")
}
