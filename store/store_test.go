package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopcanvas/shopcanvas/errors"
	"github.com/shopcanvas/shopcanvas/storeconfig"
	"github.com/shopcanvas/shopcanvas/supabase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, handler http.HandlerFunc) *Repository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := supabase.New(supabase.Config{URL: srv.URL, APIKey: "test-key"})
	require.NoError(t, err)
	return NewRepository(client, "store-assets")
}

func TestGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/rest/v1/stores", r.URL.Path)
			assert.Equal(t, "eq.s1", r.URL.Query().Get("id"))
			w.Write([]byte(`{"id":"s1","name":"Acme","subdomain":"acme","template":"minimal","template_config":{"hero":{"showHero":true,"title":"Hi"}}}`))
		})

		s, err := repo.GetByID(context.Background(), "s1")
		require.NoError(t, err)
		assert.Equal(t, "Acme", s.Name)

		cfg, err := s.Config()
		require.NoError(t, err)
		require.NotNil(t, cfg.Hero)
		assert.Equal(t, "Hi", cfg.Hero.Title)
	})

	t.Run("missing row maps to store not found", func(t *testing.T) {
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := repo.GetByID(context.Background(), "nope")
		assert.True(t, errors.Is(err, errors.ErrCodeStoreNotFound))
	})
}

func TestGetBySubdomain(t *testing.T) {
	t.Run("published only filter applied", func(t *testing.T) {
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "eq.acme", r.URL.Query().Get("subdomain"))
			assert.Equal(t, "is.true", r.URL.Query().Get("is_published"))
			w.Write([]byte(`{"id":"s1","subdomain":"acme","is_published":true}`))
		})

		s, err := repo.GetBySubdomain(context.Background(), "acme", true)
		require.NoError(t, err)
		assert.True(t, s.IsPublished)
	})

	t.Run("draft lookup omits the filter", func(t *testing.T) {
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.URL.Query().Get("is_published"))
			w.Write([]byte(`{"id":"s1","subdomain":"acme"}`))
		})

		_, err := repo.GetBySubdomain(context.Background(), "acme", false)
		require.NoError(t, err)
	})
}

func TestCreate(t *testing.T) {
	cfg, err := storeconfig.DefaultTemplate("minimal")
	require.NoError(t, err)

	t.Run("inserts full config blob", func(t *testing.T) {
		var gotRow map[string]any
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &gotRow))
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"s-new","name":"Acme","subdomain":"acme"}`))
		})

		s, err := repo.Create(context.Background(), CreateParams{
			UserID:    "u1",
			Name:      "Acme",
			Subdomain: "acme",
			Template:  "minimal",
			Config:    cfg,
		})
		require.NoError(t, err)
		assert.Equal(t, "s-new", s.ID)

		tc, ok := gotRow["template_config"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, tc, "hero")
		assert.Contains(t, tc, "categories")
	})

	t.Run("invalid subdomain aborts before any remote call", func(t *testing.T) {
		called := false
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		_, err := repo.Create(context.Background(), CreateParams{Subdomain: "-bad", Config: cfg})
		assert.True(t, errors.Is(err, errors.ErrCodeSubdomainInvalid))
		assert.False(t, called)
	})

	t.Run("conflict maps to subdomain taken", func(t *testing.T) {
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"duplicate key value"}`))
		})

		_, err := repo.Create(context.Background(), CreateParams{Subdomain: "acme", Config: cfg})
		assert.True(t, errors.Is(err, errors.ErrCodeSubdomainTaken))
	})
}

func TestUpdate(t *testing.T) {
	t.Run("partial update writes only set fields", func(t *testing.T) {
		var gotRow map[string]any
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &gotRow))
			w.Write([]byte(`{"id":"s1","name":"Renamed"}`))
		})

		name := "Renamed"
		_, err := repo.Update(context.Background(), "s1", UpdateParams{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "Renamed"}, gotRow)
	})

	t.Run("config update replaces the whole blob", func(t *testing.T) {
		var gotRow map[string]any
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &gotRow))
			w.Write([]byte(`{"id":"s1"}`))
		})

		cfg, err := storeconfig.DefaultTemplate("boutique")
		require.NoError(t, err)
		_, err = repo.Update(context.Background(), "s1", UpdateParams{Config: &cfg})
		require.NoError(t, err)

		tc, ok := gotRow["template_config"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, tc, "branding")
	})

	t.Run("no fields falls back to read", func(t *testing.T) {
		var gotMethod string
		repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			w.Write([]byte(`{"id":"s1"}`))
		})

		_, err := repo.Update(context.Background(), "s1", UpdateParams{})
		require.NoError(t, err)
		assert.Equal(t, http.MethodGet, gotMethod)
	})
}

func TestSeedMockProducts(t *testing.T) {
	var gotRows []map[string]any
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/products", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotRows))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`[]`))
	})

	require.NoError(t, repo.SeedMockProducts(context.Background(), "s1", "electronics"))
	require.NotEmpty(t, gotRows)
	for _, row := range gotRows {
		assert.Equal(t, "s1", row["store_id"])
	}
}
