// Package planner implements the calendar assignment engine: the state
// transitions that happen when a food or an existing entry is dropped
// onto a (date, slot) cell, plus the snapshot the UI renders from.
//
// Each household gets one Planner. The planner owns an in-memory snapshot
// of the household's foods, entries and slots, and reconciles it with the
// store after every mutation. The consistency strategy is deliberately
// blunt: creates and relocations refetch everything, so the snapshot only
// ever reflects store-confirmed state and no optimistic-merge logic
// exists anywhere. Deletions are the one exception — they prune the
// snapshot immediately without a refetch.
//
// A mutex serializes mutations per household, so two rapid drops cannot
// interleave their store round trips.
package planner

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"forkcast/internal/models"
	"forkcast/internal/shopping"
	"forkcast/internal/storage"
)

// Session identifies the acting user. It is threaded explicitly through
// every operation so the engine has no ambient current-user state.
type Session struct {
	UserID      string
	HouseholdID string
}

// DragSource is what was picked up: a food from the library or an entry
// already on the calendar. Exactly one field is set.
type DragSource struct {
	FoodID  string
	EntryID string
}

// DropTarget is the (date, slot) cell a drag resolved to. The planner
// trusts the pair verbatim; drop-coordinate resolution happens upstream.
type DropTarget struct {
	Date   models.Date
	SlotID string
}

// Snapshot is the read-only view handed to the UI layer.
type Snapshot struct {
	Foods   []models.FoodDetails
	Entries []models.EntryWithFood
	Slots   []models.MealSlot
	Loading bool
}

// Notifier receives a nudge after every successful mutation so other
// household members can refetch. The realtime hub implements it.
type Notifier interface {
	HouseholdChanged(householdID string)
}

type noopNotifier struct{}

func (noopNotifier) HouseholdChanged(string) {}

// Planner is the per-household assignment engine.
type Planner struct {
	store       storage.Store
	householdID string
	notify      Notifier

	mu   sync.Mutex
	snap Snapshot
}

// New creates a planner for one household and loads the initial snapshot.
func New(ctx context.Context, store storage.Store, householdID string, notify Notifier) (*Planner, error) {
	if notify == nil {
		notify = noopNotifier{}
	}
	p := &Planner{store: store, householdID: householdID, notify: notify}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.refreshLocked(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

// Snapshot returns an independent copy of the current snapshot. Nested
// slices are cloned and entry hydration pointers are re-linked into the
// copy, so later mutations never reach through a snapshot a caller is
// still reading.
func (p *Planner) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	foods := make([]models.FoodDetails, len(p.snap.Foods))
	for i, f := range p.snap.Foods {
		f.Tags = append([]models.Tag(nil), f.Tags...)
		f.Ingredients = append([]models.Ingredient(nil), f.Ingredients...)
		f.Favorites = append([]models.Favorite(nil), f.Favorites...)
		foods[i] = f
	}
	slots := append([]models.MealSlot(nil), p.snap.Slots...)

	foodByID := make(map[string]*models.FoodDetails, len(foods))
	for i := range foods {
		foodByID[foods[i].ID] = &foods[i]
	}
	slotByID := make(map[string]*models.MealSlot, len(slots))
	for i := range slots {
		slotByID[slots[i].ID] = &slots[i]
	}

	entries := make([]models.EntryWithFood, len(p.snap.Entries))
	for i, e := range p.snap.Entries {
		e.Food = nil
		if e.FoodID != "" {
			e.Food = foodByID[e.FoodID]
		}
		e.Slot = slotByID[e.MealSlotID]
		entries[i] = e
	}

	return Snapshot{Foods: foods, Entries: entries, Slots: slots, Loading: p.snap.Loading}
}

// ShoppingList aggregates ingredients over the snapshot's entries for the
// closed interval [start, end].
func (p *Planner) ShoppingList(start, end models.Date) []shopping.Item {
	snap := p.Snapshot()
	return shopping.Aggregate(snap.Entries, start, end)
}

// Assign handles a drag release. A nil target means the drop landed
// outside any slot cell and is silently ignored. On success the snapshot
// is fully resynchronized from the store before Assign returns.
func (p *Planner) Assign(ctx context.Context, sess Session, src DragSource, target *DropTarget) error {
	if target == nil {
		return nil
	}
	if err := p.checkSession(sess); err != nil {
		return err
	}
	if (src.FoodID == "") == (src.EntryID == "") {
		return validationf("drag source must name exactly one of food or entry")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.slotInHousehold(target.SlotID) {
		return validationf("meal slot %s is not in this household", target.SlotID)
	}

	if src.FoodID != "" {
		if p.findFood(src.FoodID) == nil {
			return &NotFoundError{Kind: "food", ID: src.FoodID}
		}
		entry := &models.Entry{
			HouseholdID: p.householdID,
			FoodID:      src.FoodID,
			MealSlotID:  target.SlotID,
			Date:        target.Date,
			CreatedBy:   sess.UserID,
		}
		if err := p.store.CreateEntry(ctx, entry); err != nil {
			slog.Error("assign: create entry failed", "food_id", src.FoodID, "error", err)
			return &StoreError{Op: "create entry", Err: err}
		}
	} else {
		if p.findEntry(src.EntryID) == nil {
			return &NotFoundError{Kind: "entry", ID: src.EntryID}
		}
		if err := p.store.UpdateEntryPlacement(ctx, src.EntryID, target.Date, target.SlotID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return &NotFoundError{Kind: "entry", ID: src.EntryID}
			}
			slog.Error("assign: relocate entry failed", "entry_id", src.EntryID, "error", err)
			return &StoreError{Op: "update entry placement", Err: err}
		}
	}

	if err := p.refreshLocked(ctx); err != nil {
		return err
	}
	p.notify.HouseholdChanged(p.householdID)
	return nil
}

// Remove deletes a calendar entry. The snapshot is pruned immediately
// without a refetch — deletion is intentionally asymmetric with create
// and relocate. The referenced food is never touched.
func (p *Planner) Remove(ctx context.Context, sess Session, entryID string) error {
	if err := p.checkSession(sess); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.store.DeleteEntry(ctx, entryID); err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.Error("remove entry failed", "entry_id", entryID, "error", err)
		return &StoreError{Op: "delete entry", Err: err}
	}

	kept := make([]models.EntryWithFood, 0, len(p.snap.Entries))
	for _, e := range p.snap.Entries {
		if e.ID != entryID {
			kept = append(kept, e)
		}
	}
	p.snap.Entries = kept
	p.notify.HouseholdChanged(p.householdID)
	return nil
}

// AddSlot creates a meal slot at the end of the display order.
func (p *Planner) AddSlot(ctx context.Context, sess Session, name string) (*models.MealSlot, error) {
	if err := p.checkSession(sess); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, validationf("slot name is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	order := 1
	for _, s := range p.snap.Slots {
		if s.SortOrder >= order {
			order = s.SortOrder + 1
		}
	}

	slot := &models.MealSlot{
		HouseholdID: p.householdID,
		Name:        name,
		SortOrder:   order,
		IsVisible:   true,
	}
	if err := p.store.CreateSlot(ctx, slot); err != nil {
		slog.Error("add slot failed", "name", name, "error", err)
		return nil, &StoreError{Op: "create slot", Err: err}
	}

	p.snap.Slots = append(p.snap.Slots, *slot)
	p.rehydrateLocked()
	p.notify.HouseholdChanged(p.householdID)
	return slot, nil
}

// RemoveSlot deletes a meal slot. The store cascades the slot's entries;
// the snapshot is pruned locally to match.
func (p *Planner) RemoveSlot(ctx context.Context, sess Session, slotID string) error {
	if err := p.checkSession(sess); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.store.DeleteSlot(ctx, slotID); err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.Error("remove slot failed", "slot_id", slotID, "error", err)
		return &StoreError{Op: "delete slot", Err: err}
	}

	slots := make([]models.MealSlot, 0, len(p.snap.Slots))
	for _, s := range p.snap.Slots {
		if s.ID != slotID {
			slots = append(slots, s)
		}
	}
	p.snap.Slots = slots

	entries := make([]models.EntryWithFood, 0, len(p.snap.Entries))
	for _, e := range p.snap.Entries {
		if e.MealSlotID != slotID {
			entries = append(entries, e)
		}
	}
	p.snap.Entries = entries
	p.rehydrateLocked()

	p.notify.HouseholdChanged(p.householdID)
	return nil
}

// FoodDraft is the payload of a food create or update.
type FoodDraft struct {
	Name           string
	RecipeMarkdown string
	Tags           []models.TagRef
	Ingredients    []models.Ingredient
}

func (d *FoodDraft) validate() error {
	if d.Name == "" {
		return validationf("food name is required")
	}
	for _, ing := range d.Ingredients {
		if ing.Name == "" {
			return validationf("ingredient name is required")
		}
		if !models.ValidUnit(ing.Unit) {
			return validationf("unknown unit %q", ing.Unit)
		}
	}
	for _, ref := range d.Tags {
		if ref.ID == "" && ref.Pending == nil {
			return validationf("tag ref must name an existing tag or a draft")
		}
		if ref.Pending != nil && !models.ValidTagType(ref.Pending.Type) {
			return validationf("unknown tag type %q", ref.Pending.Type)
		}
	}
	return nil
}

// AddFood creates a food with its tags and ingredients, then resyncs.
func (p *Planner) AddFood(ctx context.Context, sess Session, draft FoodDraft) (string, error) {
	if err := p.checkSession(sess); err != nil {
		return "", err
	}
	if err := draft.validate(); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	w := &storage.FoodWrite{
		Food: models.Food{
			HouseholdID:    p.householdID,
			Name:           draft.Name,
			RecipeMarkdown: draft.RecipeMarkdown,
		},
		Tags:        draft.Tags,
		Ingredients: draft.Ingredients,
	}
	if err := p.store.CreateFood(ctx, w); err != nil {
		slog.Error("add food failed", "name", draft.Name, "error", err)
		return "", &StoreError{Op: "create food", Err: err}
	}

	if err := p.refreshLocked(ctx); err != nil {
		return "", err
	}
	p.notify.HouseholdChanged(p.householdID)
	return w.Food.ID, nil
}

// UpdateFood rewrites a food's fields, tags and ingredients, then
// resyncs. The rewrite is transactional in the store.
func (p *Planner) UpdateFood(ctx context.Context, sess Session, foodID string, draft FoodDraft) error {
	if err := p.checkSession(sess); err != nil {
		return err
	}
	if err := draft.validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.findFood(foodID) == nil {
		return &NotFoundError{Kind: "food", ID: foodID}
	}

	w := &storage.FoodWrite{
		Food: models.Food{
			ID:             foodID,
			HouseholdID:    p.householdID,
			Name:           draft.Name,
			RecipeMarkdown: draft.RecipeMarkdown,
		},
		Tags:        draft.Tags,
		Ingredients: draft.Ingredients,
	}
	if err := p.store.ReplaceFoodDetails(ctx, w); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &NotFoundError{Kind: "food", ID: foodID}
		}
		slog.Error("update food failed", "food_id", foodID, "error", err)
		return &StoreError{Op: "replace food details", Err: err}
	}

	if err := p.refreshLocked(ctx); err != nil {
		return err
	}
	p.notify.HouseholdChanged(p.householdID)
	return nil
}

// DeleteFood removes a food from the library. Calendar entries that
// referenced it survive with the reference cleared — a planned meal stays
// on the calendar as leftovers even if its recipe is gone. Prunes the
// snapshot locally without a refetch.
func (p *Planner) DeleteFood(ctx context.Context, sess Session, foodID string) error {
	if err := p.checkSession(sess); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.store.DeleteFood(ctx, foodID); err != nil && !errors.Is(err, storage.ErrNotFound) {
		slog.Error("delete food failed", "food_id", foodID, "error", err)
		return &StoreError{Op: "delete food", Err: err}
	}

	foods := make([]models.FoodDetails, 0, len(p.snap.Foods))
	for _, f := range p.snap.Foods {
		if f.ID != foodID {
			foods = append(foods, f)
		}
	}
	p.snap.Foods = foods

	for i := range p.snap.Entries {
		if p.snap.Entries[i].FoodID == foodID {
			p.snap.Entries[i].FoodID = ""
		}
	}
	p.rehydrateLocked()

	p.notify.HouseholdChanged(p.householdID)
	return nil
}

// SetFoodImage records an uploaded photo URL on a food, then resyncs.
func (p *Planner) SetFoodImage(ctx context.Context, sess Session, foodID, url string) error {
	if err := p.checkSession(sess); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.findFood(foodID) == nil {
		return &NotFoundError{Kind: "food", ID: foodID}
	}
	if err := p.store.UpdateFoodImage(ctx, foodID, url); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &NotFoundError{Kind: "food", ID: foodID}
		}
		slog.Error("set food image failed", "food_id", foodID, "error", err)
		return &StoreError{Op: "update food image", Err: err}
	}

	if err := p.refreshLocked(ctx); err != nil {
		return err
	}
	p.notify.HouseholdChanged(p.householdID)
	return nil
}

// ToggleFavorite flips the acting user's favorite on a food. Two calls
// return to the original state. The snapshot is patched locally.
func (p *Planner) ToggleFavorite(ctx context.Context, sess Session, foodID string) error {
	if err := p.checkSession(sess); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	food := p.findFood(foodID)
	if food == nil {
		return &NotFoundError{Kind: "food", ID: foodID}
	}

	// The favorites slice is replaced rather than mutated in place so
	// snapshots handed out earlier keep reading their own copy.
	for i, fav := range food.Favorites {
		if fav.UserID == sess.UserID {
			if err := p.store.DeleteFavorite(ctx, fav.ID); err != nil && !errors.Is(err, storage.ErrNotFound) {
				slog.Error("remove favorite failed", "favorite_id", fav.ID, "error", err)
				return &StoreError{Op: "delete favorite", Err: err}
			}
			favs := make([]models.Favorite, 0, len(food.Favorites)-1)
			favs = append(favs, food.Favorites[:i]...)
			favs = append(favs, food.Favorites[i+1:]...)
			food.Favorites = favs
			p.notify.HouseholdChanged(p.householdID)
			return nil
		}
	}

	fav := &models.Favorite{UserID: sess.UserID, FoodID: foodID}
	if err := p.store.CreateFavorite(ctx, fav); err != nil {
		slog.Error("add favorite failed", "food_id", foodID, "error", err)
		return &StoreError{Op: "create favorite", Err: err}
	}
	favs := make([]models.Favorite, 0, len(food.Favorites)+1)
	favs = append(favs, food.Favorites...)
	food.Favorites = append(favs, *fav)
	p.notify.HouseholdChanged(p.householdID)
	return nil
}

// CopyWeek copies every entry in the 7-day window starting at from to the
// same weekday offset and slot in the window starting at to, with the
// acting user as creator.
//
// Policy: the copy is refused when the destination week already contains
// any entry. Re-running CopyWeek is therefore an error rather than a
// silent duplication.
func (p *Planner) CopyWeek(ctx context.Context, sess Session, from, to models.Date) error {
	if err := p.checkSession(sess); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	fromEnd := from.AddDays(6)
	toEnd := to.AddDays(6)

	for _, e := range p.snap.Entries {
		if e.Date.Within(to, toEnd) {
			return validationf("destination week starting %s already has entries", to)
		}
	}

	copied := 0
	for _, e := range p.snap.Entries {
		if !e.Date.Within(from, fromEnd) {
			continue
		}
		entry := &models.Entry{
			HouseholdID: p.householdID,
			FoodID:      e.FoodID,
			MealSlotID:  e.MealSlotID,
			Date:        to.AddDays(e.Date.DaysSince(from)),
			IsLeftover:  e.IsLeftover,
			CreatedBy:   sess.UserID,
		}
		if err := p.store.CreateEntry(ctx, entry); err != nil {
			slog.Error("copy week: create entry failed", "source_entry", e.ID, "error", err)
			return &StoreError{Op: "copy week", Err: err}
		}
		copied++
	}

	if copied == 0 {
		return nil
	}
	if err := p.refreshLocked(ctx); err != nil {
		return err
	}
	p.notify.HouseholdChanged(p.householdID)
	return nil
}

// Refresh refetches the whole snapshot from the store.
func (p *Planner) Refresh(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refreshLocked(ctx)
}

// refreshLocked rebuilds the snapshot wholesale: slots, hydrated foods,
// then entries hydrated against the fresh foods and slots. An entry whose
// food or slot vanished keeps a nil reference rather than failing the
// refresh. Caller holds p.mu.
func (p *Planner) refreshLocked(ctx context.Context) error {
	p.snap.Loading = true
	defer func() { p.snap.Loading = false }()

	slots, err := p.store.ListSlots(ctx, p.householdID)
	if err != nil {
		slog.Error("refresh: list slots failed", "household_id", p.householdID, "error", err)
		return &StoreError{Op: "list slots", Err: err}
	}

	foods, err := p.store.ListFoods(ctx, p.householdID)
	if err != nil {
		slog.Error("refresh: list foods failed", "household_id", p.householdID, "error", err)
		return &StoreError{Op: "list foods", Err: err}
	}

	rows, err := p.store.ListEntries(ctx, p.householdID)
	if err != nil {
		slog.Error("refresh: list entries failed", "household_id", p.householdID, "error", err)
		return &StoreError{Op: "list entries", Err: err}
	}

	entries := make([]models.EntryWithFood, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.EntryWithFood{Entry: row})
	}

	p.snap.Slots = slots
	p.snap.Foods = foods
	p.snap.Entries = entries
	p.rehydrateLocked()
	return nil
}

// rehydrateLocked re-links every entry's Food and Slot pointers against
// the current snapshot slices. Must run after any change that replaces
// the Foods or Slots slices: the old pointers reference the previous
// backing arrays and would otherwise read stale or shifted rows. An
// entry whose food or slot is gone gets a nil reference. Caller holds
// p.mu.
func (p *Planner) rehydrateLocked() {
	foodByID := make(map[string]*models.FoodDetails, len(p.snap.Foods))
	for i := range p.snap.Foods {
		foodByID[p.snap.Foods[i].ID] = &p.snap.Foods[i]
	}
	slotByID := make(map[string]*models.MealSlot, len(p.snap.Slots))
	for i := range p.snap.Slots {
		slotByID[p.snap.Slots[i].ID] = &p.snap.Slots[i]
	}
	for i := range p.snap.Entries {
		e := &p.snap.Entries[i]
		e.Food = nil
		if e.FoodID != "" {
			e.Food = foodByID[e.FoodID]
		}
		e.Slot = slotByID[e.MealSlotID]
	}
}

func (p *Planner) checkSession(sess Session) error {
	if sess.UserID == "" || sess.HouseholdID == "" {
		return validationf("session must carry a user and a household")
	}
	if sess.HouseholdID != p.householdID {
		return validationf("session household does not match planner household")
	}
	return nil
}

// slotInHousehold reports whether the snapshot contains the slot; caller
// holds p.mu.
func (p *Planner) slotInHousehold(id string) bool {
	for i := range p.snap.Slots {
		if p.snap.Slots[i].ID == id {
			return true
		}
	}
	return false
}

// findFood returns a pointer into the snapshot; caller holds p.mu.
func (p *Planner) findFood(id string) *models.FoodDetails {
	for i := range p.snap.Foods {
		if p.snap.Foods[i].ID == id {
			return &p.snap.Foods[i]
		}
	}
	return nil
}

// findEntry returns a pointer into the snapshot; caller holds p.mu.
func (p *Planner) findEntry(id string) *models.EntryWithFood {
	for i := range p.snap.Entries {
		if p.snap.Entries[i].ID == id {
			return &p.snap.Entries[i]
		}
	}
	return nil
}
