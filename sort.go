package sdk

import (
	"fmt"
	"strings"
)

// SortDirection is the direction of a single sort field.
type SortDirection int

const (
	// Ascending sorts smallest first. This is the default for unprefixed
	// sort tokens.
	Ascending SortDirection = iota
	// Descending sorts largest first, requested with a '-' token prefix.
	Descending
)

// String returns the string representation of the direction.
func (d SortDirection) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

// SortField is one (field, direction) pair within a SortCriteria.
type SortField struct {
	Name      string
	Direction SortDirection
}

// token renders the field back into its compact wire form.
func (f SortField) token() string {
	if f.Direction == Descending {
		return "-" + f.Name
	}
	return f.Name
}

// SortCriteria is an ordered list of sort fields, applied left to right as
// tie-break precedence. The zero value, also available as SortNone, requests
// no sorting and serializes to nothing.
//
// Example:
//
//	sort, err := sdk.NewSort().ParseSortField("-creation").Build()
//	// newest first
type SortCriteria struct {
	fields []SortField
}

// SortNone requests no sorting.
var SortNone = SortCriteria{}

// Fields returns the sort fields in precedence order. The returned slice is
// a copy; mutating it does not affect the criteria.
func (s SortCriteria) Fields() []SortField {
	out := make([]SortField, len(s.fields))
	copy(out, s.fields)
	return out
}

// IsNone reports whether the criteria carries no fields.
func (s SortCriteria) IsNone() bool { return len(s.fields) == 0 }

// tokens renders all fields into their wire tokens, in precedence order.
func (s SortCriteria) tokens() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.token()
	}
	return out
}

// SortBuilder accumulates sort fields by parsing compact tokens. The first
// parse error is remembered and reported by Build; later calls after an error
// are no-ops, so call chains stay linear.
type SortBuilder struct {
	fields []SortField
	err    error
}

// NewSort starts an empty sort builder.
func NewSort() *SortBuilder {
	return &SortBuilder{}
}

// ParseSortField parses one token of the form "field" (ascending) or
// "-field" (descending) and appends it. Tokens are applied in call order,
// which defines the sort precedence. An empty field name fails validation.
func (b *SortBuilder) ParseSortField(token string) *SortBuilder {
	if b.err != nil {
		return b
	}

	direction := Ascending
	name := token
	if strings.HasPrefix(token, "-") {
		direction = Descending
		name = token[1:]
	}
	if name == "" {
		b.err = newValidationError(StatusInvalidSort, fmt.Sprintf("sort token %q has no field name", token))
		return b
	}

	b.fields = append(b.fields, SortField{Name: name, Direction: direction})
	return b
}

// Build returns the accumulated criteria, or the first parse error.
func (b *SortBuilder) Build() (SortCriteria, error) {
	if b.err != nil {
		return SortNone, b.err
	}
	fields := make([]SortField, len(b.fields))
	copy(fields, b.fields)
	return SortCriteria{fields: fields}, nil
}
