package workflow

import (
	"strings"
)

// Field is one named, editable value of a draft
type Field struct {
	Name     string
	Label    string
	Value    string
	Required bool
}

// Draft is an ordered scratch copy of an entity's fields. It is a value type:
// With returns a new draft and never changes the receiver.
type Draft struct {
	fields []Field
}

// NewDraft builds a draft from field definitions, copying them
func NewDraft(fields ...Field) Draft {
	return Draft{fields: append([]Field(nil), fields...)}
}

// Fields returns a copy of the draft's fields in display order
func (d Draft) Fields() []Field {
	return append([]Field(nil), d.fields...)
}

// Len returns the number of fields
func (d Draft) Len() int {
	return len(d.fields)
}

// Get returns the value of the named field, or "" when there is no such field
func (d Draft) Get(name string) string {
	for _, f := range d.fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// With returns a copy of d with the named field set to value
func (d Draft) With(name, value string) Draft {
	out := d.Fields()
	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
		}
	}
	return Draft{fields: out}
}

// Missing returns the labels of required fields that are blank
func (d Draft) Missing() []string {
	var missing []string
	for _, f := range d.fields {
		if f.Required && strings.TrimSpace(f.Value) == "" {
			missing = append(missing, f.Label)
		}
	}
	return missing
}

// Equal reports whether both drafts hold the same fields and values
func (d Draft) Equal(other Draft) bool {
	if len(d.fields) != len(other.fields) {
		return false
	}
	for i := range d.fields {
		if d.fields[i] != other.fields[i] {
			return false
		}
	}
	return true
}
