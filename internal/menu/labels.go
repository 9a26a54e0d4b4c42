// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package menu

// Weight units as stored in the weight_unit column.
const (
	UnitGram     = "g"
	UnitKilogram = "kg"
	UnitPiece    = "piece"
)

// unitNames maps a weight_unit value to its localized abbreviation. Any
// unrecognized or missing unit is treated as grams.
var unitNames = map[string]Localized{
	UnitGram:     {UZ: "gr", RU: "гр", EN: "g"},
	UnitKilogram: {UZ: "kg", RU: "кг", EN: "kg"},
	UnitPiece:    {UZ: "dona", RU: "шт", EN: "pcs"},
}

// Badge kinds.
const (
	BadgeNew     = "new"
	BadgeSpecial = "special"
)

// Labels are the static interface strings a menu client needs next to the
// data itself.
type Labels struct {
	New          Localized `json:"new"`
	Special      Localized `json:"special"`
	Persons      Localized `json:"persons"`
	Currency     Localized `json:"currency"`
	LoadError    Localized `json:"load_error"`
	NotFound     Localized `json:"not_found"`
	EmptyMenu    Localized `json:"empty_menu"`
	MoreItems    Localized `json:"more_items"`
	SetContents  Localized `json:"set_contents"`
	Ingredients  Localized `json:"ingredients"`
	Weight       Localized `json:"weight"`
	CategoryMenu Localized `json:"category_menu"`
}

// DefaultLabels returns the built-in interface strings.
func DefaultLabels() Labels {
	return Labels{
		New:          Localized{UZ: "Yangi", RU: "Новинка", EN: "New"},
		Special:      Localized{UZ: "Maxsus", RU: "Особое", EN: "Special"},
		Persons:      Localized{UZ: "kishi", RU: "чел.", EN: "pers."},
		Currency:     Localized{UZ: "so'm", RU: "сум", EN: "sum"},
		LoadError:    Localized{UZ: "Menyuni yuklab bo'lmadi", RU: "Не удалось загрузить меню", EN: "Failed to load the menu"},
		NotFound:     Localized{UZ: "Taom topilmadi", RU: "Блюдо не найдено", EN: "Dish not found"},
		EmptyMenu:    Localized{UZ: "Menyu hozircha bo'sh", RU: "Меню пока пусто", EN: "The menu is empty"},
		MoreItems:    Localized{UZ: "...", RU: "...", EN: "..."},
		SetContents:  Localized{UZ: "Set tarkibi", RU: "Состав сета", EN: "Set includes"},
		Ingredients:  Localized{UZ: "Tarkibi", RU: "Состав", EN: "Ingredients"},
		Weight:       Localized{UZ: "Og'irligi", RU: "Вес", EN: "Weight"},
		CategoryMenu: Localized{UZ: "Menyu", RU: "Меню", EN: "Menu"},
	}
}

// Localize flattens the labels into a single language.
func (l Labels) Localize(lang Lang) map[string]string {
	return map[string]string{
		"new":           l.New.Get(lang),
		"special":       l.Special.Get(lang),
		"persons":       l.Persons.Get(lang),
		"currency":      l.Currency.Get(lang),
		"load_error":    l.LoadError.Get(lang),
		"not_found":     l.NotFound.Get(lang),
		"empty_menu":    l.EmptyMenu.Get(lang),
		"more_items":    l.MoreItems.Get(lang),
		"set_contents":  l.SetContents.Get(lang),
		"ingredients":   l.Ingredients.Get(lang),
		"weight":        l.Weight.Get(lang),
		"category_menu": l.CategoryMenu.Get(lang),
	}
}
