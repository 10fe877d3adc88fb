// Package shopping derives shopping lists from scheduled calendar entries.
//
// Aggregation is a pure function over the planner's snapshot: it performs
// no I/O and its output depends only on its input, never on call order.
package shopping

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"forkcast/internal/models"
)

// Item is one aggregated shopping-list row.
type Item struct {
	// Name is the ingredient name with the casing of its first occurrence.
	Name string

	// Quantity is the summed quantity across all matching lines.
	Quantity float64

	// Unit is the measurement unit. Lines with the same name but
	// different units never merge; they produce separate rows.
	Unit models.Unit
}

// Key identifies an aggregation group: lowercased name plus unit.
// Whitespace is preserved — "soy sauce" and "soysauce" are different
// ingredients.
func (i Item) Key() string {
	return strings.ToLower(i.Name) + "_" + string(i.Unit)
}

// Aggregate produces the shopping list for the closed date interval
// [start, end]. Entries outside the interval and entries without a food
// are skipped. Within the interval, ingredient lines group by
// (case-insensitive name, unit) and quantities sum; display keeps the
// first-seen casing. Rows come back sorted by name with a locale-aware
// comparison.
//
// Quantities are not interpreted: zero and negative values pass through,
// since validating them is a recipe-editing concern.
func Aggregate(entries []models.EntryWithFood, start, end models.Date) []Item {
	byKey := make(map[string]*Item)
	var order []string

	for _, entry := range entries {
		if !entry.Date.Within(start, end) || entry.Food == nil {
			continue
		}
		for _, ing := range entry.Food.Ingredients {
			key := strings.ToLower(ing.Name) + "_" + string(ing.Unit)
			if item, ok := byKey[key]; ok {
				item.Quantity += ing.Quantity
				continue
			}
			byKey[key] = &Item{Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit}
			order = append(order, key)
		}
	}

	items := make([]Item, 0, len(order))
	for _, key := range order {
		items = append(items, *byKey[key])
	}

	c := collate.New(language.Und)
	sort.SliceStable(items, func(a, b int) bool {
		return c.CompareString(items[a].Name, items[b].Name) < 0
	})
	return items
}
