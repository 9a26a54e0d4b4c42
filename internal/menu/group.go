// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package menu

import (
	"slices"

	"bukhara/internal/models"
)

// UncategorizedID stands in for a dish stored without a category.
const UncategorizedID = "other"

// Group is one menu section: every dish whose category resolves to Label.
type Group struct {
	Label       string
	CategoryIDs []string
	Category    Resolution
	Stored      Localized
	Dishes      []models.Product
}

// Title renders the section title for lang.
func (g Group) Title(lang Lang) string {
	return Title(g.Label, lang, g.Stored)
}

// CategoryIndex maps category ids to labels and stored translations.
type CategoryIndex struct {
	labels map[string]string
	stored map[string]Localized
}

// NewCategoryIndex indexes category rows. A later row replaces what an
// earlier row stored for the same id or label, so for rows returned newest
// first the oldest row's translations win.
func NewCategoryIndex(categories []models.Category) *CategoryIndex {
	idx := &CategoryIndex{
		labels: make(map[string]string, len(categories)),
		stored: make(map[string]Localized),
	}
	for i := range categories {
		c := &categories[i]
		label := c.Label()
		idx.labels[c.ID.String()] = label
		if c.HasTranslations() {
			idx.stored[label] = Localized{
				UZ: label,
				RU: firstNonEmpty(c.NameRu.String(), label),
				EN: firstNonEmpty(c.NameEn.String(), label),
			}
		}
	}
	return idx
}

// Label returns the label of a category id, or the id itself when no row
// carries it (a dish that still points at a deleted category).
func (idx *CategoryIndex) Label(id string) string {
	if id == "" {
		id = UncategorizedID
	}
	if l, ok := idx.labels[id]; ok {
		return l
	}
	return id
}

// Stored returns the translations stored for a label, if any.
func (idx *CategoryIndex) Stored(label string) Localized {
	return idx.stored[label]
}

// GroupDishes groups dishes by resolved category label and orders the
// groups by display priority. Dishes keep their input order inside a
// group; groups of equal priority keep first-seen order. Dish and category
// slices may come from independent fetches; a category that is missing
// only changes the label, never fails the grouping.
func GroupDishes(dishes []models.Product, categories []models.Category) []Group {
	idx := NewCategoryIndex(categories)

	var groups []*Group
	byLabel := make(map[string]*Group)
	for _, d := range dishes {
		id := d.Category.String()
		label := idx.Label(id)

		g, ok := byLabel[label]
		if !ok {
			g = &Group{
				Label:    label,
				Category: Resolve(label),
				Stored:   idx.Stored(label),
			}
			byLabel[label] = g
			groups = append(groups, g)
		}
		if id == "" {
			id = UncategorizedID
		}
		if !slices.Contains(g.CategoryIDs, id) {
			g.CategoryIDs = append(g.CategoryIDs, id)
		}
		g.Dishes = append(g.Dishes, d)
	}

	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		if len(g.Dishes) == 0 {
			continue
		}
		out = append(out, *g)
	}
	slices.SortStableFunc(out, func(a, b Group) int {
		return a.Category.Priority - b.Category.Priority
	})
	return out
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
