// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"strconv"
)

// Text is a loosely typed JSON scalar. Menu rows written by hand through a
// table editor carry the same column as a string in one row and as a number
// or boolean in the next, so every optional field decodes into Text.
//
// Arrays and objects decode as absent rather than failing the whole row.
type Text struct {
	Value  string
	Valid  bool
	truthy bool
}

// NewText returns a present Text holding s.
func NewText(s string) Text {
	return Text{Value: s, Valid: true, truthy: s != ""}
}

// TextFromNull converts a nullable column into a Text.
func TextFromNull(ns sql.NullString) Text {
	if !ns.Valid {
		return Text{}
	}
	return NewText(ns.String)
}

// String returns the raw value, or "" when the field is absent.
func (t Text) String() string { return t.Value }

// Truthy reports whether the value would count as set: a non-empty string,
// a non-zero number or boolean true.
func (t Text) Truthy() bool { return t.Valid && t.truthy }

// Float parses the value as a number.
func (t Text) Float() (float64, bool) {
	if !t.Valid || t.Value == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(t.Value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (t *Text) UnmarshalJSON(b []byte) error {
	*t = Text{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = NewText(s)
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*t = Text{Value: strconv.FormatBool(v), Valid: true, truthy: v}
	case '[', '{':
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		f, _ := n.Float64()
		*t = Text{Value: n.String(), Valid: true, truthy: f != 0}
	}
	return nil
}

// MarshalJSON writes absent values as null and everything else as a string.
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

// TextList is a list column. Elements of any scalar type decode as text;
// nulls and empty strings are skipped. A non-array value decodes as absent.
type TextList []string

// UnmarshalJSON accepts arrays of scalars and ignores everything else.
func (l *TextList) UnmarshalJSON(b []byte) error {
	*l = nil
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '[' {
		return nil
	}

	var raw []Text
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	for _, t := range raw {
		if t.Value != "" {
			*l = append(*l, t.Value)
		}
	}
	return nil
}
