package players

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tamarside/rounders/internal/config"
	appdb "github.com/tamarside/rounders/internal/db"
	"github.com/tamarside/rounders/internal/models"
	"github.com/tamarside/rounders/internal/testutil"
)

func setup(t *testing.T) *appdb.DB {
	t.Helper()

	database := testutil.NewTestDB(t)
	cfg := &config.Config{
		Pagination: config.PaginationConfig{DefaultPageSize: 30, MaxPageSize: 100},
	}
	InitHandlers(database, cfg)
	return database
}

func apiMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/players", HandlePlayersList)
	mux.HandleFunc("GET /api/players/{id}", HandlePlayerGet)
	return mux
}

func TestPlayersList(t *testing.T) {
	database := setup(t)
	mux := apiMux()
	ctx := context.Background()

	for _, name := range [][2]string{{"Alice", "Adams"}, {"Bob", "Brown"}, {"Cara", "Clark"}} {
		if _, err := database.Queries.CreatePlayer(ctx, name[0], name[1]); err != nil {
			t.Fatalf("seed player: %v", err)
		}
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/players?per_page=2", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp struct {
		Data       []models.Player `json:"data"`
		Pagination struct {
			Next *int `json:"next"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Errorf("got %d players, want 2", len(resp.Data))
	}
	if resp.Pagination.Next == nil || *resp.Pagination.Next != 2 {
		t.Errorf("next = %v, want 2", resp.Pagination.Next)
	}
}

func TestPlayerGet(t *testing.T) {
	database := setup(t)
	mux := apiMux()
	ctx := context.Background()

	player, err := database.Queries.CreatePlayer(ctx, "Alice", "Adams")
	if err != nil {
		t.Fatalf("seed player: %v", err)
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/players/1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var got models.Player
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != player.ID || got.NameFirst != "Alice" {
		t.Errorf("got %+v", got)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/players/99", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", w.Code)
	}
}
