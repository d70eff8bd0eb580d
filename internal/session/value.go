package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Kind tags which variant a Value holds.
type Kind int

const (
	// KindPlainText is an opaque string value, masked and revealed as a unit.
	KindPlainText Kind = iota
	// KindStructured is a decoded JSON object with per-field visibility.
	KindStructured
)

func (k Kind) String() string {
	switch k {
	case KindPlainText:
		return "plaintext"
	case KindStructured:
		return "structured"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Field is one key/value pair of a structured secret.
type Field struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Value is the decoded value of one secret: either Structured or PlainText.
type Value struct {
	kind   Kind
	fields []Field
	text   string
}

// Structured builds a structured value. Field order is kept as given.
func Structured(fields []Field) Value {
	copied := make([]Field, len(fields))
	copy(copied, fields)
	return Value{kind: KindStructured, fields: copied}
}

// PlainText builds a plain text value.
func PlainText(text string) Value {
	return Value{kind: KindPlainText, text: text}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind {
	return v.kind
}

// Fields returns a copy of the structured fields in decode order; nil for plain text.
func (v Value) Fields() []Field {
	if v.kind != KindStructured {
		return nil
	}
	fields := make([]Field, len(v.fields))
	copy(fields, v.fields)
	return fields
}

// Text returns the plain text value; "" for structured values.
func (v Value) Text() string {
	return v.text
}

func (v Value) field(key string) (string, bool) {
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Classify decodes a raw secret payload. A JSON object becomes a Structured
// value with its fields in document order; anything else is PlainText.
func Classify(raw string) Value {
	fields, err := decodeObject(raw)
	if err != nil {
		return PlainText(raw)
	}
	return Structured(fields)
}

// decodeError marks a payload that is not a single JSON object. It only
// selects the PlainText variant and never leaves this package.
type decodeError struct {
	reason string
	err    error
}

func (e *decodeError) Error() string {
	if e.err != nil {
		return e.reason + ": " + e.err.Error()
	}
	return e.reason
}

func decodeObject(raw string) ([]Field, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, &decodeError{reason: "invalid json", err: err}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &decodeError{reason: "not an object"}
	}

	var fields []Field
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &decodeError{reason: "invalid key", err: err}
		}
		key, ok := tok.(string)
		if !ok {
			return nil, &decodeError{reason: "invalid key"}
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, &decodeError{reason: "invalid value for " + key, err: err}
		}
		text, err := fieldText(raw)
		if err != nil {
			return nil, &decodeError{reason: "invalid value for " + key, err: err}
		}

		// duplicate keys keep their first position and last value
		if i, seen := index[key]; seen {
			fields[i].Value = text
			continue
		}
		index[key] = len(fields)
		fields = append(fields, Field{Key: key, Value: text})
	}

	if _, err := dec.Token(); err != nil {
		return nil, &decodeError{reason: "unterminated object", err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &decodeError{reason: "trailing data"}
	}

	if fields == nil {
		fields = []Field{}
	}
	return fields, nil
}

// fieldText renders a JSON value for display: strings unquoted, everything
// else as compact JSON.
func fieldText(raw json.RawMessage) (string, error) {
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", err
	}
	return buf.String(), nil
}
