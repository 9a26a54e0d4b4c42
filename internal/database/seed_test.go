package database

import (
	"testing"
)

func TestSeedIdempotent(t *testing.T) {
	db, err := Connect(testDSN())
	if err != nil {
		t.Skipf("skipping: DB not available: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	// Seed only writes into an empty menu. Other test packages may be
	// using the same database, so nothing is cleared first.
	if err := Seed(db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	var catCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM category").Scan(&catCount); err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if catCount < 1 {
		t.Errorf("expected at least 1 category, got %d", catCount)
	}

	var dishCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM products").Scan(&dishCount); err != nil {
		t.Fatalf("count products: %v", err)
	}
	if dishCount < 1 {
		t.Errorf("expected at least 1 product, got %d", dishCount)
	}
}

func TestDemoMenuShape(t *testing.T) {
	var sets, untranslated int
	for _, c := range demoMenu {
		if c.nameRu == "" && c.nameEn == "" {
			untranslated++
		}
		if len(c.dishes) == 0 {
			t.Errorf("category %q has no dishes", c.name)
		}
		for _, d := range c.dishes {
			if d.name == "" {
				t.Errorf("dish in %q has no name", c.name)
			}
			if len(d.items) > 0 {
				sets++
			}
		}
	}
	if sets == 0 {
		t.Error("demo menu should contain a set")
	}
	if untranslated == 0 {
		t.Error("demo menu should contain a category without translations")
	}
}
