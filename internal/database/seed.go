package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

type seedCategory struct {
	name, nameRu, nameEn string
	dishes               []seedDish
}

type seedDish struct {
	name, nameRu, nameEn string
	ingredientsRu        string
	price                float64
	weight, unit         string
	persons              string
	items                []string
	image                string
	isNew, special       bool
}

// demoMenu is a small menu that exercises every display rule: sets,
// badges, weight units, and a category without translations.
var demoMenu = []seedCategory{
	{name: "Salatlar", nameRu: "Салаты", nameEn: "Salads", dishes: []seedDish{
		{name: "Achchiq-chuchuk", nameRu: "Ачичук", nameEn: "Achichuk", ingredientsRu: "Помидоры, лук, перец", price: 18000, weight: "250", unit: "g", image: "/bukhara/salads/achichuk.jpg", isNew: true},
		{name: "Sezar", nameRu: "Цезарь", nameEn: "Caesar", price: 45000, weight: "300", unit: "g", image: "salads/caesar.jpg"},
	}},
	{name: "Sho'rvalar", nameRu: "Супы", nameEn: "Soups", dishes: []seedDish{
		{name: "Mastava", nameRu: "Мастава", nameEn: "Mastava", price: 32000, weight: "400", unit: "g", special: true},
	}},
	{name: "Setlar", nameRu: "Сеты", nameEn: "Sets", dishes: []seedDish{
		{name: "Oilaviy set", nameRu: "Семейный сет", nameEn: "Family set", price: 320000, persons: "4",
			items: []string{"Osh", "Shashlik", "Non", "Choy"}},
	}},
	{name: "Ichimliklar", nameRu: "Напитки", nameEn: "Beverages", dishes: []seedDish{
		{name: "Ko'k choy", nameRu: "Зелёный чай", nameEn: "Green tea", price: 8000, weight: "1", unit: "piece"},
	}},
	{name: "Chef tavsiyasi", dishes: []seedDish{
		{name: "Qazi", nameRu: "Казы", price: 95000, weight: "0.5", unit: "kg"},
	}},
}

// Seed populates the database with a demo menu. It does nothing when any
// category already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM category").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	dishes := 0
	for _, c := range demoMenu {
		var catID int64
		err := tx.QueryRow(`
			INSERT INTO category (name, name_ru, name_en)
			VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))
			RETURNING id
		`, c.name, c.nameRu, c.nameEn).Scan(&catID)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.name, err)
		}

		for _, d := range c.dishes {
			var items any
			if len(d.items) > 0 {
				items = d.items
			}
			_, err := tx.Exec(`
				INSERT INTO products (category, name, name_ru, name_en, ingredients_ru,
					price, weight, weight_unit, persons, items, image, new, special)
				VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''),
					$6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10, NULLIF($11, ''), $12, $13)
			`, catID, d.name, d.nameRu, d.nameEn, d.ingredientsRu,
				d.price, d.weight, d.unit, d.persons, items, d.image, d.isNew, d.special)
			if err != nil {
				return fmt.Errorf("seed insert product %q: %w", d.name, err)
			}
			dishes++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo menu",
		"categories", len(demoMenu),
		"dishes", dishes,
	)
	return nil
}
