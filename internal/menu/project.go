// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package menu

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"bukhara/internal/models"
)

// SetPreviewLimit caps the set contents shown on a menu card.
const SetPreviewLimit = 3

// View selects how much detail a projection carries.
type View int

const (
	// ViewCard is the compact menu card: card-size image, at most
	// SetPreviewLimit set items.
	ViewCard View = iota
	// ViewDetail is the dish modal: large image, full set contents.
	ViewDetail
)

// Badge is the single highlight shown on a dish.
type Badge struct {
	Kind  string    `json:"kind"`
	Text  string    `json:"text"`
	Names Localized `json:"names"`
}

// DisplayDish is a dish ready to render in one language.
type DisplayDish struct {
	ID          string   `json:"id"`
	Category    string   `json:"category,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Weight      string   `json:"weight,omitempty"`
	Portions    string   `json:"portions,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	PriceText   string   `json:"price_text,omitempty"`
	ImageURL    string   `json:"image_url"`
	Placeholder string   `json:"placeholder_url"`

	// Detail view only.
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	HeroURL      string `json:"hero_url,omitempty"`

	IsSet             bool     `json:"is_set"`
	SetItems          []string `json:"set_items,omitempty"`
	SetItemsTruncated bool     `json:"set_items_truncated,omitempty"`
	Persons           string   `json:"persons,omitempty"`
	PersonsText       string   `json:"persons_text,omitempty"`

	Badge *Badge `json:"badge,omitempty"`
}

// Projector converts raw products into DisplayDish values.
type Projector struct {
	images      *ImageResolver
	labels      Labels
	priceLocale language.Tag
}

// DefaultPriceLocale groups digits the way the restaurant prints prices.
var DefaultPriceLocale = language.Russian

// NewProjector creates a Projector. A nil resolver resolves local paths
// against the site root; language.Und selects DefaultPriceLocale.
func NewProjector(images *ImageResolver, labels Labels, priceLocale language.Tag) *Projector {
	if images == nil {
		images = NewImageResolver(ImageOptions{})
	}
	if priceLocale == language.Und {
		priceLocale = DefaultPriceLocale
	}
	return &Projector{images: images, labels: labels, priceLocale: priceLocale}
}

// Project converts one product into its display form for lang. It accepts
// any row shape; missing elements are left empty.
func (pr *Projector) Project(p *models.Product, lang Lang, view View) DisplayDish {
	lang = lang.Normalize()

	d := DisplayDish{
		ID:          p.Field("id"),
		Category:    p.Field("category"),
		Name:        ResolveLocalizedField(p, "name", lang),
		Weight:      pr.weight(p, lang),
		Portions:    ResolveLocalizedField(p, "portions", lang),
		Placeholder: pr.images.Placeholder(),
		IsSet:       IsSet(p),
		Badge:       pr.badge(p, lang),
	}

	ref := ImageRef(p)
	if view == ViewDetail {
		d.ImageURL = pr.images.Resolve(ref, VariantModal)
		d.ThumbnailURL = pr.images.Resolve(ref, VariantThumbnail)
		d.HeroURL = pr.images.Resolve(ref, VariantHero)
	} else {
		d.ImageURL = pr.images.Resolve(ref, VariantCard)
	}

	if price, ok := p.Price.Float(); ok && price != 0 {
		d.Price = &price
		d.PriceText = FormatPrice(price, pr.priceLocale) + " " + pr.labels.Currency.Get(lang)
	}

	if d.IsSet {
		d.Persons = persons(p, lang)
		if d.Persons != "" {
			d.PersonsText = d.Persons + " " + pr.labels.Persons.Get(lang)
		}
		items := ResolveLocalizedList(p, "items", lang)
		if view == ViewCard && len(items) > SetPreviewLimit {
			items = items[:SetPreviewLimit]
			d.SetItemsTruncated = true
		}
		if len(items) > 0 {
			d.SetItems = append([]string(nil), items...)
		}
	} else {
		d.Description = description(p, lang)
	}

	return d
}

// IsSet reports whether a product is a set sized by number of persons.
func IsSet(p *models.Product) bool {
	return p.Has("persons") || p.Has("persons_ru") || p.Has("persons_uz") || p.Has("persons_en")
}

// description prefers ingredients over description in the same language.
func description(p *models.Product, lang Lang) string {
	if v := p.Field(localizedName("ingredients", lang)); v != "" {
		return v
	}
	return ResolveLocalizedField(p, "description", lang)
}

// persons is a head count, so a value stored for another language is
// still correct when the active language has none.
func persons(p *models.Product, lang Lang) string {
	if v := ResolveLocalizedField(p, "persons", lang); v != "" {
		return v
	}
	for _, l := range Langs {
		if v := p.Field(localizedName("persons", l)); v != "" {
			return v
		}
	}
	return ""
}

func (pr *Projector) weight(p *models.Product, lang Lang) string {
	if lang == UZ {
		if v := p.Field("weight_uz"); v != "" {
			return v
		}
	}
	w := strings.TrimSpace(p.Field("weight"))
	if w == "" {
		return ""
	}
	return w + " " + WeightUnit(p.Field("weight_unit"), lang)
}

// WeightUnit returns the localized abbreviation for a weight_unit value.
func WeightUnit(unit string, lang Lang) string {
	names, ok := unitNames[strings.ToLower(strings.TrimSpace(unit))]
	if !ok {
		names = unitNames[UnitGram]
	}
	return names.Get(lang)
}

func (pr *Projector) badge(p *models.Product, lang Lang) *Badge {
	switch {
	case p.Has("new"):
		return &Badge{Kind: BadgeNew, Text: pr.labels.New.Get(lang), Names: pr.labels.New}
	case p.Has("special"):
		return &Badge{Kind: BadgeSpecial, Text: pr.labels.Special.Get(lang), Names: pr.labels.Special}
	}
	return nil
}

// ImageRef returns the stored image reference of a product: the images
// column when set, else the legacy image column.
func ImageRef(p *models.Product) string {
	if v := p.Field("images"); v != "" {
		return v
	}
	return p.Field("image")
}

// FormatPrice renders a price as an integer grouped for locale.
func FormatPrice(price float64, locale language.Tag) string {
	return message.NewPrinter(locale).Sprintf("%d", int64(math.Round(price)))
}
