// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package menu turns raw product and category rows into the language-aware
// menu model: category resolution and ordering, per-dish projection and
// grouping of dishes into menu sections. Everything here is pure and safe
// for concurrent use.
package menu

import (
	"strings"

	"golang.org/x/text/language"
)

// Lang is a display language code.
type Lang string

// Supported display languages. Uzbek is the default.
const (
	UZ Lang = "uz"
	RU Lang = "ru"
	EN Lang = "en"

	DefaultLang = UZ
)

// Langs lists the display languages in fallback order.
var Langs = []Lang{UZ, RU, EN}

// ParseLang maps a language code or BCP 47 tag ("ru", "ru-RU", "uz-Latn")
// to a display language.
func ParseLang(s string) (Lang, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLang, false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return DefaultLang, false
	}
	base, _ := tag.Base()
	switch Lang(base.String()) {
	case UZ:
		return UZ, true
	case RU:
		return RU, true
	case EN:
		return EN, true
	}
	return DefaultLang, false
}

// Normalize maps anything outside the supported set to the default language.
func (l Lang) Normalize() Lang {
	switch l {
	case RU, EN:
		return l
	}
	return UZ
}

// Tag returns the language tag used for number formatting.
func (l Lang) Tag() language.Tag {
	switch l.Normalize() {
	case RU:
		return language.Russian
	case EN:
		return language.English
	}
	return language.Uzbek
}

// Localized holds one string per display language.
type Localized struct {
	UZ string `json:"uz"`
	RU string `json:"ru"`
	EN string `json:"en"`
}

// Get returns the value for lang, falling back to Uzbek when it is empty.
func (l Localized) Get(lang Lang) string {
	var v string
	switch lang.Normalize() {
	case RU:
		v = l.RU
	case EN:
		v = l.EN
	default:
		v = l.UZ
	}
	if v == "" {
		return l.UZ
	}
	return v
}

// IsZero reports whether no language has a value.
func (l Localized) IsZero() bool {
	return l.UZ == "" && l.RU == "" && l.EN == ""
}

func same(s string) Localized {
	return Localized{UZ: s, RU: s, EN: s}
}
