// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// UnnamedCategory labels category rows stored without a name.
const UnnamedCategory = "Без названия"

// Category is one row of the category table. Name is the Uzbek label;
// the optional per-language overrides come from the same row.
type Category struct {
	ID        Text   `json:"id"`
	Name      Text   `json:"name"`
	NameRu    Text   `json:"name_ru"`
	NameEn    Text   `json:"name_en"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Label returns the display label used to group dishes.
func (c *Category) Label() string {
	if c.Name.Value != "" {
		return c.Name.Value
	}
	return UnnamedCategory
}

// HasTranslations reports whether the row carries its own translations.
func (c *Category) HasTranslations() bool {
	return c.NameRu.Value != "" || c.NameEn.Value != ""
}
