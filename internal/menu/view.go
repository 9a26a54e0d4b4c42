package menu

import (
	"slices"
	"strconv"
	"time"

	"bukhara/internal/models"
	"bukhara/internal/slug"
)

// Section is a rendered menu section.
type Section struct {
	Key         Key           `json:"key,omitempty"`
	Label       string        `json:"label"`
	Title       string        `json:"title"`
	Anchor      string        `json:"anchor"`
	Priority    int           `json:"priority"`
	CategoryIDs []string      `json:"category_ids"`
	Dishes      []DisplayDish `json:"dishes"`
}

// Menu is the full grouped menu in one language.
type Menu struct {
	Lang        Lang      `json:"lang"`
	Sections    []Section `json:"sections"`
	DishCount   int       `json:"dish_count"`
	GeneratedAt time.Time `json:"generated_at"`
}

// CategoryView is one entry of the category listing.
type CategoryView struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Title    string `json:"title"`
	Key      Key    `json:"key,omitempty"`
	Anchor   string `json:"anchor"`
	Priority int    `json:"priority"`
}

// Build projects grouped dishes into a Menu for lang.
func (pr *Projector) Build(groups []Group, lang Lang, view View) Menu {
	lang = lang.Normalize()
	m := Menu{
		Lang:        lang,
		Sections:    make([]Section, 0, len(groups)),
		GeneratedAt: time.Now().UTC(),
	}
	anchors := newAnchorSet()
	for _, g := range groups {
		s := Section{
			Key:         g.Category.Key,
			Label:       g.Label,
			Title:       g.Title(lang),
			Anchor:      anchors.assign(g.Label),
			Priority:    g.Category.Priority,
			CategoryIDs: g.CategoryIDs,
			Dishes:      make([]DisplayDish, 0, len(g.Dishes)),
		}
		for i := range g.Dishes {
			s.Dishes = append(s.Dishes, pr.Project(&g.Dishes[i], lang, view))
		}
		m.DishCount += len(s.Dishes)
		m.Sections = append(m.Sections, s)
	}
	return m
}

// Categories lists category rows with resolved titles, ordered by display
// priority.
func Categories(categories []models.Category, lang Lang) []CategoryView {
	idx := NewCategoryIndex(categories)
	out := make([]CategoryView, 0, len(categories))
	for i := range categories {
		c := &categories[i]
		label := c.Label()
		r := Resolve(label)
		out = append(out, CategoryView{
			ID:       c.ID.String(),
			Label:    label,
			Title:    Title(label, lang, idx.Stored(label)),
			Key:      r.Key,
			Priority: r.Priority,
		})
	}
	slices.SortStableFunc(out, func(a, b CategoryView) int {
		return a.Priority - b.Priority
	})

	// Rows sharing a label are one section and share its anchor.
	anchors := newAnchorSet()
	for i := range out {
		out[i].Anchor = anchors.assign(out[i].Label)
	}
	return out
}

// Anchor returns the in-page anchor of a section label. Known sections
// anchor on their canonical key so links survive renames.
func Anchor(label string) string {
	if r := Resolve(label); r.Known() {
		return slug.Generate(string(r.Key))
	}
	if a := slug.Generate(label); a != "" {
		return a
	}
	return "section"
}

// anchorSet hands out anchors that are unique within one page. Labels
// resolving to the same section key fall back to their own slug, then to
// a numeric suffix. The same label always gets the same anchor.
type anchorSet struct {
	used    map[string]bool
	byLabel map[string]string
}

func newAnchorSet() *anchorSet {
	return &anchorSet{used: make(map[string]bool), byLabel: make(map[string]string)}
}

func (as *anchorSet) assign(label string) string {
	if a, ok := as.byLabel[label]; ok {
		return a
	}
	a := Anchor(label)
	if as.used[a] {
		if alt := slug.Generate(label); alt != "" && !as.used[alt] {
			a = alt
		} else {
			base := a
			for n := 2; as.used[a]; n++ {
				a = base + "-" + strconv.Itoa(n)
			}
		}
	}
	as.used[a] = true
	as.byLabel[label] = a
	return a
}
