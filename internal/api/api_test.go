package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"forkcast/internal/auth"
	"forkcast/internal/planner"
	"forkcast/internal/realtime"
	"forkcast/internal/storage/sqlite"
)

type testAPI struct {
	router *gin.Engine
	token  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tempDir, err := os.MkdirTemp("", "forkcast-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	hub := realtime.NewHub()
	srv := New(store,
		auth.NewPasswordAuthenticator(store),
		auth.NewJWTManager("test-secret", time.Hour),
		planner.NewManager(store, hub),
		hub,
		nil,
	)
	return &testAPI{router: srv.Router()}
}

// do sends a JSON request, attaching the stored token when present, and
// decodes the response body into out (when out is non-nil).
func (a *testAPI) do(t *testing.T, method, path string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	if out != nil && w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to decode %s %s response %q: %v", method, path, w.Body.String(), err)
		}
	}
	return w.Code
}

// register creates an account and stores its token for later requests.
func (a *testAPI) register(t *testing.T, email string) {
	t.Helper()
	var resp struct {
		Token string `json:"token"`
	}
	code := a.do(t, http.MethodPost, "/auth/register", gin.H{
		"email": email, "name": "Alice", "password": "hunter2hunter2",
	}, &resp)
	if code != http.StatusCreated {
		t.Fatalf("register: got status %d", code)
	}
	a.token = resp.Token
}

type snapshotResp struct {
	Foods []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Ingredients []struct {
			Name     string  `json:"name"`
			Quantity float64 `json:"quantity"`
			Unit     string  `json:"unit"`
		} `json:"ingredients"`
		Favorites []struct {
			UserID string `json:"user_id"`
		} `json:"favorites"`
	} `json:"foods"`
	Entries []struct {
		ID         string `json:"id"`
		FoodID     string `json:"food_id"`
		MealSlotID string `json:"meal_slot_id"`
		Date       string `json:"date"`
	} `json:"entries"`
	Slots []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"slots"`
}

func (a *testAPI) snapshot(t *testing.T) snapshotResp {
	t.Helper()
	var snap snapshotResp
	if code := a.do(t, http.MethodGet, "/api/snapshot", nil, &snap); code != http.StatusOK {
		t.Fatalf("snapshot: got status %d", code)
	}
	return snap
}

func TestPlanningFlow(t *testing.T) {
	a := newTestAPI(t)
	a.register(t, "alice@example.com")

	if code := a.do(t, http.MethodPost, "/api/household", gin.H{"name": "Chez Nous"}, nil); code != http.StatusCreated {
		t.Fatalf("create household: got status %d", code)
	}

	var slot struct {
		ID string `json:"id"`
	}
	if code := a.do(t, http.MethodPost, "/api/slots", gin.H{"name": "Dinner"}, &slot); code != http.StatusCreated {
		t.Fatalf("add slot: got status %d", code)
	}

	var food struct {
		ID string `json:"id"`
	}
	code := a.do(t, http.MethodPost, "/api/foods", gin.H{
		"name": "Lasagna",
		"tags": []gin.H{{"name": "pasta", "type": "specific"}},
		"ingredients": []gin.H{
			{"name": "Tomato", "quantity": 400, "unit": "gr"},
			{"name": "Pasta", "quantity": 250, "unit": "gr"},
		},
	}, &food)
	if code != http.StatusCreated {
		t.Fatalf("add food: got status %d", code)
	}

	t.Run("assign food to a slot", func(t *testing.T) {
		code := a.do(t, http.MethodPost, "/api/entries", gin.H{
			"food_id": food.ID,
			"target":  gin.H{"date": "2024-06-10", "slot_id": slot.ID},
		}, nil)
		if code != http.StatusNoContent {
			t.Fatalf("assign: got status %d", code)
		}

		snap := a.snapshot(t)
		if len(snap.Entries) != 1 {
			t.Fatalf("expected 1 entry, got %+v", snap.Entries)
		}
		e := snap.Entries[0]
		if e.FoodID != food.ID || e.MealSlotID != slot.ID || e.Date != "2024-06-10" {
			t.Errorf("unexpected entry: %+v", e)
		}
	})

	t.Run("null target is a silent no-op", func(t *testing.T) {
		code := a.do(t, http.MethodPost, "/api/entries", gin.H{"food_id": food.ID}, nil)
		if code != http.StatusNoContent {
			t.Fatalf("got status %d", code)
		}
		if snap := a.snapshot(t); len(snap.Entries) != 1 {
			t.Errorf("no entry may be created, got %+v", snap.Entries)
		}
	})

	t.Run("relocate the entry", func(t *testing.T) {
		entryID := a.snapshot(t).Entries[0].ID
		code := a.do(t, http.MethodPost, "/api/entries", gin.H{
			"entry_id": entryID,
			"target":   gin.H{"date": "2024-06-11", "slot_id": slot.ID},
		}, nil)
		if code != http.StatusNoContent {
			t.Fatalf("relocate: got status %d", code)
		}

		snap := a.snapshot(t)
		if len(snap.Entries) != 1 || snap.Entries[0].ID != entryID {
			t.Fatalf("relocation must keep identity, got %+v", snap.Entries)
		}
		if snap.Entries[0].Date != "2024-06-11" {
			t.Errorf("date not updated: %+v", snap.Entries[0])
		}
	})

	t.Run("shopping list aggregates the week", func(t *testing.T) {
		var resp struct {
			Items []struct {
				Name     string  `json:"name"`
				Quantity float64 `json:"quantity"`
				Unit     string  `json:"unit"`
			} `json:"items"`
		}
		code := a.do(t, http.MethodGet, "/api/shopping?start=2024-06-10&end=2024-06-16", nil, &resp)
		if code != http.StatusOK {
			t.Fatalf("shopping: got status %d", code)
		}
		if len(resp.Items) != 2 {
			t.Fatalf("expected 2 items, got %+v", resp.Items)
		}
		if resp.Items[0].Name != "Pasta" || resp.Items[0].Quantity != 250 || resp.Items[0].Unit != "gr" {
			t.Errorf("unexpected first item: %+v", resp.Items[0])
		}
	})

	t.Run("invalid shopping dates are rejected", func(t *testing.T) {
		if code := a.do(t, http.MethodGet, "/api/shopping?start=bogus&end=2024-06-16", nil, nil); code != http.StatusBadRequest {
			t.Errorf("got status %d, want 400", code)
		}
	})

	t.Run("toggle favorite twice", func(t *testing.T) {
		path := "/api/foods/" + food.ID + "/favorite"
		if code := a.do(t, http.MethodPost, path, nil, nil); code != http.StatusNoContent {
			t.Fatalf("first toggle: got status %d", code)
		}
		if n := len(a.snapshot(t).Foods[0].Favorites); n != 1 {
			t.Fatalf("expected 1 favorite, got %d", n)
		}
		if code := a.do(t, http.MethodPost, path, nil, nil); code != http.StatusNoContent {
			t.Fatalf("second toggle: got status %d", code)
		}
		if n := len(a.snapshot(t).Foods[0].Favorites); n != 0 {
			t.Errorf("expected favorites cleared, got %d", n)
		}
	})

	t.Run("remove the entry", func(t *testing.T) {
		entryID := a.snapshot(t).Entries[0].ID
		if code := a.do(t, http.MethodDelete, "/api/entries/"+entryID, nil, nil); code != http.StatusNoContent {
			t.Fatalf("remove: got status %d", code)
		}
		snap := a.snapshot(t)
		if len(snap.Entries) != 0 {
			t.Errorf("entry should be gone, got %+v", snap.Entries)
		}
		if len(snap.Foods) != 1 {
			t.Errorf("food must survive entry removal, got %+v", snap.Foods)
		}
	})
}

func TestCopyWeekEndpoint(t *testing.T) {
	a := newTestAPI(t)
	a.register(t, "alice@example.com")
	a.do(t, http.MethodPost, "/api/household", gin.H{"name": "Chez Nous"}, nil)

	var slot struct {
		ID string `json:"id"`
	}
	a.do(t, http.MethodPost, "/api/slots", gin.H{"name": "Dinner"}, &slot)
	var food struct {
		ID string `json:"id"`
	}
	a.do(t, http.MethodPost, "/api/foods", gin.H{"name": "Curry"}, &food)
	a.do(t, http.MethodPost, "/api/entries", gin.H{
		"food_id": food.ID,
		"target":  gin.H{"date": "2024-06-12", "slot_id": slot.ID},
	}, nil)

	body := gin.H{"from": "2024-06-10", "to": "2024-06-17"}
	if code := a.do(t, http.MethodPost, "/api/planner/copy-week", body, nil); code != http.StatusNoContent {
		t.Fatalf("copy week: got status %d", code)
	}

	snap := a.snapshot(t)
	if len(snap.Entries) != 2 {
		t.Fatalf("expected 2 entries after copy, got %+v", snap.Entries)
	}

	// Second copy into the now-occupied week is refused.
	var errResp struct {
		Error string `json:"error"`
	}
	if code := a.do(t, http.MethodPost, "/api/planner/copy-week", body, &errResp); code != http.StatusBadRequest {
		t.Fatalf("rerun: got status %d, want 400", code)
	}
	if errResp.Error == "" {
		t.Errorf("rejection should carry a message")
	}
	if n := len(a.snapshot(t).Entries); n != 2 {
		t.Errorf("rejected rerun must not duplicate entries, got %d", n)
	}
}

func TestAuthRequired(t *testing.T) {
	a := newTestAPI(t)

	if code := a.do(t, http.MethodGet, "/api/snapshot", nil, nil); code != http.StatusUnauthorized {
		t.Errorf("no token: got status %d, want 401", code)
	}

	a.token = "not-a-jwt"
	if code := a.do(t, http.MethodGet, "/api/snapshot", nil, nil); code != http.StatusUnauthorized {
		t.Errorf("garbage token: got status %d, want 401", code)
	}
}

func TestHouseholdRequired(t *testing.T) {
	a := newTestAPI(t)
	a.register(t, "alice@example.com")

	if code := a.do(t, http.MethodGet, "/api/snapshot", nil, nil); code != http.StatusBadRequest {
		t.Errorf("no household: got status %d, want 400", code)
	}
}

func TestLogin(t *testing.T) {
	a := newTestAPI(t)
	a.register(t, "alice@example.com")
	a.token = ""

	var resp struct {
		Token string `json:"token"`
	}
	code := a.do(t, http.MethodPost, "/auth/login", gin.H{
		"email": "alice@example.com", "password": "hunter2hunter2",
	}, &resp)
	if code != http.StatusOK || resp.Token == "" {
		t.Fatalf("login: got status %d, token %q", code, resp.Token)
	}

	if code := a.do(t, http.MethodPost, "/auth/login", gin.H{
		"email": "alice@example.com", "password": "wrong-password",
	}, nil); code != http.StatusUnauthorized {
		t.Errorf("bad password: got status %d, want 401", code)
	}
}

func TestImageUploadUnconfigured(t *testing.T) {
	a := newTestAPI(t)
	a.register(t, "alice@example.com")
	a.do(t, http.MethodPost, "/api/household", gin.H{"name": "Chez Nous"}, nil)

	var food struct {
		ID string `json:"id"`
	}
	a.do(t, http.MethodPost, "/api/foods", gin.H{"name": "Curry"}, &food)

	code := a.do(t, http.MethodPost, "/api/foods/"+food.ID+"/image",
		gin.H{"image_base64": "data:image/png;base64,aGk="}, nil)
	if code != http.StatusNotImplemented {
		t.Errorf("got status %d, want 501", code)
	}
}
