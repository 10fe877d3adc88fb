package shopping

import (
	"math/rand"
	"reflect"
	"testing"

	"forkcast/internal/models"
)

// entry builds a hydrated calendar entry whose food has the given
// ingredient lines.
func entry(date models.Date, ings ...models.Ingredient) models.EntryWithFood {
	return models.EntryWithFood{
		Entry: models.Entry{ID: "e-" + string(date), Date: date, FoodID: "f"},
		Food:  &models.FoodDetails{Ingredients: ings},
	}
}

func ing(name string, qty float64, unit models.Unit) models.Ingredient {
	return models.Ingredient{Name: name, Quantity: qty, Unit: unit}
}

func TestAggregate_Empty(t *testing.T) {
	got := Aggregate(nil, "2024-06-10", "2024-06-16")
	if len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}

func TestAggregate_SkipsEntriesWithoutFood(t *testing.T) {
	entries := []models.EntryWithFood{
		{Entry: models.Entry{ID: "leftover", Date: "2024-06-10"}}, // no food
		entry("2024-06-10"), // food with zero ingredients
	}
	got := Aggregate(entries, "2024-06-10", "2024-06-16")
	if len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}

func TestAggregate_GroupsCaseInsensitively(t *testing.T) {
	entries := []models.EntryWithFood{
		entry("2024-06-10", ing("Tomato", 2, models.UnitGrams)),
		entry("2024-06-11", ing("tomato", 3, models.UnitGrams)),
	}

	got := Aggregate(entries, "2024-06-10", "2024-06-16")
	want := []Item{{Name: "Tomato", Quantity: 5, Unit: models.UnitGrams}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestAggregate_UnitsNeverMerge(t *testing.T) {
	entries := []models.EntryWithFood{
		entry("2024-06-10", ing("Milk", 1, models.UnitMillilitre)),
		entry("2024-06-11", ing("Milk", 1, models.UnitCount)),
	}

	got := Aggregate(entries, "2024-06-10", "2024-06-16")
	if len(got) != 2 {
		t.Fatalf("expected 2 rows for Milk, got %d: %v", len(got), got)
	}
	for _, item := range got {
		if item.Name != "Milk" || item.Quantity != 1 {
			t.Errorf("unexpected row %v", item)
		}
	}
	if got[0].Unit == got[1].Unit {
		t.Errorf("rows should have distinct units, got %v", got)
	}
}

func TestAggregate_DateBoundaries(t *testing.T) {
	entries := []models.EntryWithFood{
		entry("2024-06-09", ing("Before", 1, models.UnitCount)),
		entry("2024-06-10", ing("Start", 1, models.UnitCount)),
		entry("2024-06-16", ing("End", 1, models.UnitCount)),
		entry("2024-06-17", ing("After", 1, models.UnitCount)),
	}

	got := Aggregate(entries, "2024-06-10", "2024-06-16")
	names := make(map[string]bool)
	for _, item := range got {
		names[item.Name] = true
	}

	if !names["Start"] || !names["End"] {
		t.Errorf("interval endpoints must be included, got %v", got)
	}
	if names["Before"] || names["After"] {
		t.Errorf("entries outside the interval must be excluded, got %v", got)
	}
}

func TestAggregate_SortedByName(t *testing.T) {
	entries := []models.EntryWithFood{
		entry("2024-06-10",
			ing("zucchini", 1, models.UnitCount),
			ing("Apple", 2, models.UnitCount),
			ing("milk", 200, models.UnitMillilitre),
		),
	}

	got := Aggregate(entries, "2024-06-10", "2024-06-16")
	want := []string{"Apple", "milk", "zucchini"}
	if len(got) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("row %d: got %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestAggregate_PermutationInvariant(t *testing.T) {
	entries := []models.EntryWithFood{
		entry("2024-06-10", ing("Rice", 100, models.UnitGrams), ing("Soy Sauce", 2, models.UnitTablespoon)),
		entry("2024-06-11", ing("Rice", 50, models.UnitGrams)),
		entry("2024-06-12", ing("Egg", 3, models.UnitCount)),
		entry("2024-06-13", ing("Soy Sauce", 1, models.UnitTablespoon)),
	}

	want := Aggregate(entries, "2024-06-10", "2024-06-16")

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := append([]models.EntryWithFood(nil), entries...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := Aggregate(shuffled, "2024-06-10", "2024-06-16")
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("permutation %d changed the result:\ngot  %v\nwant %v", i, got, want)
		}
	}
}

func TestAggregate_NegativeAndZeroQuantitiesPassThrough(t *testing.T) {
	entries := []models.EntryWithFood{
		entry("2024-06-10", ing("Salt", 0, models.UnitTeaspoon)),
		entry("2024-06-11", ing("Flour", -100, models.UnitGrams)),
	}

	got := Aggregate(entries, "2024-06-10", "2024-06-16")
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %v", got)
	}
	for _, item := range got {
		switch item.Name {
		case "Salt":
			if item.Quantity != 0 {
				t.Errorf("Salt quantity: got %f, want 0", item.Quantity)
			}
		case "Flour":
			if item.Quantity != -100 {
				t.Errorf("Flour quantity: got %f, want -100", item.Quantity)
			}
		}
	}
}
