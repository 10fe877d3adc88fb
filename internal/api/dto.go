package api

import (
	"forkcast/internal/models"
	"forkcast/internal/planner"
	"forkcast/internal/shopping"
)

// Response shapes. Domain models stay JSON-free; the wire format is an
// API concern.

type userDTO struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	HouseholdID string `json:"household_id,omitempty"`
}

func toUserDTO(u *models.User) userDTO {
	return userDTO{ID: u.ID, Email: u.Email, Name: u.Name, Color: u.Color, HouseholdID: u.HouseholdID}
}

type tagDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Color string `json:"color,omitempty"`
}

type ingredientDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type favoriteDTO struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

type foodDTO struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	RecipeMarkdown string          `json:"recipe_markdown,omitempty"`
	ImageURL       string          `json:"image_url,omitempty"`
	Tags           []tagDTO        `json:"tags"`
	Ingredients    []ingredientDTO `json:"ingredients"`
	Favorites      []favoriteDTO   `json:"favorites"`
	CreatedAt      int64           `json:"created_at"`
	UpdatedAt      int64           `json:"updated_at"`
}

func toFoodDTO(f *models.FoodDetails) foodDTO {
	dto := foodDTO{
		ID:             f.ID,
		Name:           f.Name,
		RecipeMarkdown: f.RecipeMarkdown,
		ImageURL:       f.ImageURL,
		Tags:           make([]tagDTO, 0, len(f.Tags)),
		Ingredients:    make([]ingredientDTO, 0, len(f.Ingredients)),
		Favorites:      make([]favoriteDTO, 0, len(f.Favorites)),
		CreatedAt:      f.CreatedAt,
		UpdatedAt:      f.UpdatedAt,
	}
	for _, t := range f.Tags {
		dto.Tags = append(dto.Tags, tagDTO{ID: t.ID, Name: t.Name, Type: string(t.Type), Color: t.Color})
	}
	for _, ing := range f.Ingredients {
		dto.Ingredients = append(dto.Ingredients, ingredientDTO{
			ID: ing.ID, Name: ing.Name, Quantity: ing.Quantity, Unit: string(ing.Unit),
		})
	}
	for _, fav := range f.Favorites {
		dto.Favorites = append(dto.Favorites, favoriteDTO{ID: fav.ID, UserID: fav.UserID})
	}
	return dto
}

type slotDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	IsVisible bool   `json:"is_visible"`
}

func toSlotDTO(s *models.MealSlot) slotDTO {
	return slotDTO{ID: s.ID, Name: s.Name, SortOrder: s.SortOrder, IsVisible: s.IsVisible}
}

type entryDTO struct {
	ID         string `json:"id"`
	FoodID     string `json:"food_id,omitempty"`
	MealSlotID string `json:"meal_slot_id"`
	Date       string `json:"date"`
	IsLeftover bool   `json:"is_leftover"`
	CreatedBy  string `json:"created_by"`
	CreatedAt  int64  `json:"created_at"`
}

func toEntryDTO(e *models.EntryWithFood) entryDTO {
	return entryDTO{
		ID:         e.ID,
		FoodID:     e.FoodID,
		MealSlotID: e.MealSlotID,
		Date:       string(e.Date),
		IsLeftover: e.IsLeftover,
		CreatedBy:  e.CreatedBy,
		CreatedAt:  e.CreatedAt,
	}
}

type snapshotDTO struct {
	Foods   []foodDTO  `json:"foods"`
	Entries []entryDTO `json:"entries"`
	Slots   []slotDTO  `json:"slots"`
	Loading bool       `json:"is_loading"`
}

func toSnapshotDTO(snap planner.Snapshot) snapshotDTO {
	dto := snapshotDTO{
		Foods:   make([]foodDTO, 0, len(snap.Foods)),
		Entries: make([]entryDTO, 0, len(snap.Entries)),
		Slots:   make([]slotDTO, 0, len(snap.Slots)),
		Loading: snap.Loading,
	}
	for i := range snap.Foods {
		dto.Foods = append(dto.Foods, toFoodDTO(&snap.Foods[i]))
	}
	for i := range snap.Entries {
		dto.Entries = append(dto.Entries, toEntryDTO(&snap.Entries[i]))
	}
	for i := range snap.Slots {
		dto.Slots = append(dto.Slots, toSlotDTO(&snap.Slots[i]))
	}
	return dto
}

type shoppingItemDTO struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

func toShoppingDTO(items []shopping.Item) []shoppingItemDTO {
	out := make([]shoppingItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, shoppingItemDTO{Name: it.Name, Quantity: it.Quantity, Unit: string(it.Unit)})
	}
	return out
}

// Request shapes.

type tagRefReq struct {
	// ID of an existing tag, or Name+Type for a tag to create.
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
}

type ingredientReq struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type foodReq struct {
	Name           string          `json:"name"`
	RecipeMarkdown string          `json:"recipe_markdown"`
	Tags           []tagRefReq     `json:"tags"`
	Ingredients    []ingredientReq `json:"ingredients"`
}

func (r *foodReq) toDraft() planner.FoodDraft {
	draft := planner.FoodDraft{
		Name:           r.Name,
		RecipeMarkdown: r.RecipeMarkdown,
	}
	for _, t := range r.Tags {
		if t.ID != "" {
			draft.Tags = append(draft.Tags, models.TagRef{ID: t.ID})
		} else {
			draft.Tags = append(draft.Tags, models.TagRef{
				Pending: &models.TagDraft{Name: t.Name, Type: models.TagType(t.Type)},
			})
		}
	}
	for _, ing := range r.Ingredients {
		draft.Ingredients = append(draft.Ingredients, models.Ingredient{
			Name: ing.Name, Quantity: ing.Quantity, Unit: models.Unit(ing.Unit),
		})
	}
	return draft
}
