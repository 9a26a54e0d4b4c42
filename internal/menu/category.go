// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package menu

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Key is a canonical menu section identifier, independent of language.
type Key string

// Canonical section keys, in display order.
const (
	KeySalads     Key = "salads"
	KeySoups      Key = "soups"
	KeyMainDishes Key = "mainDishes"
	KeyKebabs     Key = "kebabs"
	KeyLunchboxes Key = "lunchboxes"
	KeySets       Key = "sets"
	KeySauces     Key = "sauces"
	KeyBreads     Key = "breads"
	KeyDesserts   Key = "desserts"
	KeyBeverages  Key = "beverages"
	KeyAppetizers Key = "appetizers"
	KeyOther      Key = "other"
)

// PriorityUnknown is the display priority of labels that match no section.
// It sorts after every canonical key, Other included.
const PriorityUnknown = 999

// sections lists every canonical key in display order; priority is the
// position in this list plus one.
var sections = []struct {
	key   Key
	names Localized
}{
	{KeySalads, Localized{UZ: "Salatlar", RU: "Салаты", EN: "Salads"}},
	{KeySoups, Localized{UZ: "Birinchi taomlar", RU: "Первые блюда", EN: "First Courses"}},
	{KeyMainDishes, Localized{UZ: "Ikkinchi taomlar", RU: "Вторые блюда", EN: "Main Dishes"}},
	{KeyKebabs, Localized{UZ: "Shashliklar", RU: "Шашлыки", EN: "Kebabs"}},
	{KeyLunchboxes, Localized{UZ: "Lanchboks", RU: "Ланчбокс", EN: "Lunchbox"}},
	{KeySets, Localized{UZ: "Setlar", RU: "Сеты", EN: "Sets"}},
	{KeySauces, Localized{UZ: "Souslar", RU: "Соусы", EN: "Sauces"}},
	{KeyBreads, Localized{UZ: "Nonlar", RU: "Хлеб", EN: "Bread"}},
	{KeyDesserts, Localized{UZ: "Shirinliklar", RU: "Десерты", EN: "Desserts"}},
	{KeyBeverages, Localized{UZ: "Ichimliklar", RU: "Напитки", EN: "Beverages"}},
	{KeyAppetizers, Localized{UZ: "Gazaklar", RU: "Закуски", EN: "Appetizers"}},
	{KeyOther, Localized{UZ: "Boshqa", RU: "Другое", EN: "Other"}},
}

// exactLabels maps every known lowercase label variant to its key.
var exactLabels = map[string]Key{
	// Uzbek
	"salat":            KeySalads,
	"salatlar":         KeySalads,
	"birinchi taomlar": KeySoups,
	"birinchi ovqat":   KeySoups,
	"ikkinchi taomlar": KeyMainDishes,
	"ikkinchi ovqat":   KeyMainDishes,
	"shashliklar":      KeyKebabs,
	"kabob":            KeyKebabs,
	"kaboblar":         KeyKebabs,
	"lanchboks":        KeyLunchboxes,
	"lanch boks":       KeyLunchboxes,
	"lunch boks":       KeyLunchboxes,
	"setlar":           KeySets,
	"souslar":          KeySauces,
	"nonlar":           KeyBreads,
	"non":              KeyBreads,
	"shirinliklar":     KeyDesserts,
	"desertlar":        KeyDesserts,
	"ichimliklar":      KeyBeverages,
	"gazaklar":         KeyAppetizers,
	"boshqa":           KeyOther,

	// Russian
	"салаты":       KeySalads,
	"первые блюда": KeySoups,
	"вторые блюда": KeyMainDishes,
	"шашлыки":      KeyKebabs,
	"ланчбокс":     KeyLunchboxes,
	"сеты":         KeySets,
	"соусы":        KeySauces,
	"хлеб":         KeyBreads,
	"десерты":      KeyDesserts,
	"напитки":      KeyBeverages,
	"закуски":      KeyAppetizers,
	"другое":       KeyOther,

	// English
	"salads":        KeySalads,
	"first courses": KeySoups,
	"soups":         KeySoups,
	"main dishes":   KeyMainDishes,
	"kebabs":        KeyKebabs,
	"lunchbox":      KeyLunchboxes,
	"sets":          KeySets,
	"sauces":        KeySauces,
	"bread":         KeyBreads,
	"desserts":      KeyDesserts,
	"beverages":     KeyBeverages,
	"drinks":        KeyBeverages,
	"appetizers":    KeyAppetizers,
	"other":         KeyOther,

	// Legacy static keys (lowercased)
	"maindishes":   KeyMainDishes,
	"main_courses": KeyMainDishes,
	"lunchboxes":   KeyLunchboxes,
	"breads":       KeyBreads,
}

// keywords is scanned top to bottom and the first key with a contained
// substring wins. The order is the tie-break for labels that contain
// keywords of two sections ("salat set" resolves to salads).
var keywords = []struct {
	key  Key
	subs []string
}{
	{KeySalads, []string{"salat", "салат", "salad"}},
	{KeySoups, []string{"birinchi", "первы", "soup", "суп", "first", "shorva", "шурпа", "шорва"}},
	{KeyMainDishes, []string{"ikkinchi", "втор", "main", "second", "asosiy"}},
	{KeyKebabs, []string{"shashlik", "шашлык", "kebab", "kabob", "кебаб"}},
	{KeyLunchboxes, []string{"lanch", "ланч", "lunch"}},
	{KeySets, []string{"set", "сет"}},
	{KeySauces, []string{"sous", "соус", "sauce"}},
	{KeyBreads, []string{"non", "хлеб", "bread", "лепёшк", "лепешк"}},
	{KeyDesserts, []string{"desert", "десерт", "dessert", "shirin", "ширин", "сладк", "sweet"}},
	{KeyBeverages, []string{"ichimlik", "напит", "beverage", "drink", "чай", "choy", "кофе", "kofe"}},
	{KeyAppetizers, []string{"gazak", "закуск", "appetiz", "snack"}},
}

// Match tells which resolver phase produced a Resolution.
type Match int

const (
	MatchNone Match = iota
	MatchExact
	MatchKeyword
)

func (m Match) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchKeyword:
		return "keyword"
	}
	return "none"
}

// Resolution is the outcome of resolving a free-text category label.
// When nothing matched, Key is empty, Names holds the label itself in every
// language and Priority is PriorityUnknown.
type Resolution struct {
	Label    string    `json:"label"`
	Key      Key       `json:"key,omitempty"`
	Priority int       `json:"priority"`
	Names    Localized `json:"names"`
	Matched  Match     `json:"-"`
}

// Known reports whether the label resolved to a canonical key.
func (r Resolution) Known() bool { return r.Matched != MatchNone }

// Resolve maps a category label of any language or origin to its canonical
// section. It never fails: unknown labels resolve to themselves.
func Resolve(label string) Resolution {
	needle := normalizeLabel(label)

	if key, ok := exactLabels[needle]; ok {
		return resolution(label, key, MatchExact)
	}

	for _, kw := range keywords {
		for _, sub := range kw.subs {
			if strings.Contains(needle, sub) {
				return resolution(label, kw.key, MatchKeyword)
			}
		}
	}

	return Resolution{
		Label:    label,
		Priority: PriorityUnknown,
		Names:    same(label),
		Matched:  MatchNone,
	}
}

// Lookup returns the names and priority of a canonical key.
func Lookup(key Key) (Localized, int, bool) {
	for i, s := range sections {
		if s.key == key {
			return s.names, i + 1, true
		}
	}
	return Localized{}, PriorityUnknown, false
}

// Keys returns every canonical key in display order.
func Keys() []Key {
	keys := make([]Key, len(sections))
	for i, s := range sections {
		keys[i] = s.key
	}
	return keys
}

// Priority returns the display priority of a label; lower sorts first.
func Priority(label string) int {
	return Resolve(label).Priority
}

// SortLabels returns the labels ordered by display priority. Labels with
// equal priority keep their input order.
func SortLabels(labels []string) []string {
	out := slices.Clone(labels)
	prio := make(map[string]int, len(out))
	for _, l := range out {
		if _, ok := prio[l]; !ok {
			prio[l] = Priority(l)
		}
	}
	slices.SortStableFunc(out, func(a, b string) int {
		return prio[a] - prio[b]
	})
	return out
}

// Title renders a category label for lang. A translation stored on the
// category row wins, then the resolver tables, then the label verbatim.
func Title(label string, lang Lang, stored Localized) string {
	if !stored.IsZero() {
		if v := stored.Get(lang); v != "" {
			return v
		}
	}
	if r := Resolve(label); r.Known() {
		return r.Names.Get(lang)
	}
	return label
}

func resolution(label string, key Key, m Match) Resolution {
	names, prio, _ := Lookup(key)
	return Resolution{
		Label:    label,
		Key:      key,
		Priority: prio,
		Names:    names,
		Matched:  m,
	}
}

// normalizeLabel trims, lowercases and composes a label so that equal
// labels typed on different keyboards compare equal.
func normalizeLabel(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return norm.NFC.String(cases.Lower(language.Und).String(s))
}
