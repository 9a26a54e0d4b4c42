// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Product is one row of the products table as the data source returns it.
// Any language-suffixed column may be missing, so all of them are optional.
type Product struct {
	ID       Text `json:"id"`
	Category Text `json:"category"`

	Name   Text `json:"name"`
	NameRu Text `json:"name_ru"`
	NameUz Text `json:"name_uz"`
	NameEn Text `json:"name_en"`

	Description   Text `json:"description"`
	DescriptionRu Text `json:"description_ru"`
	DescriptionUz Text `json:"description_uz"`
	DescriptionEn Text `json:"description_en"`

	IngredientsRu Text `json:"ingredients_ru"`
	IngredientsUz Text `json:"ingredients_uz"`
	IngredientsEn Text `json:"ingredients_en"`

	Price      Text `json:"price"`
	Weight     Text `json:"weight"`
	WeightUnit Text `json:"weight_unit"`
	WeightUz   Text `json:"weight_uz"`

	Persons   Text `json:"persons"`
	PersonsRu Text `json:"persons_ru"`
	PersonsUz Text `json:"persons_uz"`
	PersonsEn Text `json:"persons_en"`

	Portions   Text `json:"portions"`
	PortionsRu Text `json:"portions_ru"`
	PortionsUz Text `json:"portions_uz"`
	PortionsEn Text `json:"portions_en"`

	Items   TextList `json:"items"`
	ItemsRu TextList `json:"items_ru"`
	ItemsUz TextList `json:"items_uz"`
	ItemsEn TextList `json:"items_en"`

	Images Text `json:"images"`
	Image  Text `json:"image"`

	Special Text `json:"special"`
	New     Text `json:"new"`

	CreatedAt string `json:"created_at,omitempty"`
}

// Field returns a scalar column by its data-source name, or "" when the
// column is unknown or absent.
func (p *Product) Field(name string) string {
	if t, ok := p.text(name); ok {
		return t.String()
	}
	return ""
}

// Has reports whether a scalar column is present and truthy.
func (p *Product) Has(name string) bool {
	t, ok := p.text(name)
	return ok && t.Truthy()
}

// List returns a list column by its data-source name.
func (p *Product) List(name string) []string {
	switch name {
	case "items":
		return p.Items
	case "items_ru":
		return p.ItemsRu
	case "items_uz":
		return p.ItemsUz
	case "items_en":
		return p.ItemsEn
	}
	return nil
}

func (p *Product) text(name string) (Text, bool) {
	switch name {
	case "id":
		return p.ID, true
	case "category":
		return p.Category, true
	case "name":
		return p.Name, true
	case "name_ru":
		return p.NameRu, true
	case "name_uz":
		return p.NameUz, true
	case "name_en":
		return p.NameEn, true
	case "description":
		return p.Description, true
	case "description_ru":
		return p.DescriptionRu, true
	case "description_uz":
		return p.DescriptionUz, true
	case "description_en":
		return p.DescriptionEn, true
	case "ingredients_ru":
		return p.IngredientsRu, true
	case "ingredients_uz":
		return p.IngredientsUz, true
	case "ingredients_en":
		return p.IngredientsEn, true
	case "price":
		return p.Price, true
	case "weight":
		return p.Weight, true
	case "weight_unit":
		return p.WeightUnit, true
	case "weight_uz":
		return p.WeightUz, true
	case "persons":
		return p.Persons, true
	case "persons_ru":
		return p.PersonsRu, true
	case "persons_uz":
		return p.PersonsUz, true
	case "persons_en":
		return p.PersonsEn, true
	case "portions":
		return p.Portions, true
	case "portions_ru":
		return p.PortionsRu, true
	case "portions_uz":
		return p.PortionsUz, true
	case "portions_en":
		return p.PortionsEn, true
	case "images":
		return p.Images, true
	case "image":
		return p.Image, true
	case "special":
		return p.Special, true
	case "new":
		return p.New, true
	}
	return Text{}, false
}
