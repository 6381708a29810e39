package storeconfig

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("round trip preserves the tree", func(t *testing.T) {
		cfg, err := DefaultTemplate("boutique")
		require.NoError(t, err)

		blob, err := Marshal(cfg)
		require.NoError(t, err)

		back, err := Normalize(blob)
		require.NoError(t, err)
		assert.Equal(t, cfg, back)
	})

	t.Run("empty and null blobs yield zero config", func(t *testing.T) {
		for _, raw := range []json.RawMessage{nil, json.RawMessage("null")} {
			cfg, err := Normalize(raw)
			require.NoError(t, err)
			assert.Nil(t, cfg.Hero)
			assert.Nil(t, cfg.Branding)
		}
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		raw := json.RawMessage(`{"hero":{"showHero":true,"title":"Hi"},"futureSection":{"x":1}}`)
		cfg, err := Normalize(raw)
		require.NoError(t, err)
		require.NotNil(t, cfg.Hero)
		assert.Equal(t, "Hi", cfg.Hero.Title)
	})

	t.Run("absent sections stay nil", func(t *testing.T) {
		raw := json.RawMessage(`{"branding":{"logo":"https://cdn/x.png"}}`)
		cfg, err := Normalize(raw)
		require.NoError(t, err)
		assert.NotNil(t, cfg.Branding)
		assert.Nil(t, cfg.Hero)
		assert.Nil(t, cfg.TopBar)
		assert.Empty(t, cfg.Categories)
	})

	t.Run("missing category slugs are re-derived", func(t *testing.T) {
		raw := json.RawMessage(`{"categories":[{"name":"New Arrivals"},{"name":"Sale","slug":"sale"}]}`)
		cfg, err := Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, "new-arrivals", cfg.Categories[0].Slug)
		assert.Equal(t, "sale", cfg.Categories[1].Slug)
	})

	t.Run("legacy numeric colors decode weakly", func(t *testing.T) {
		raw := json.RawMessage(`{"branding":{"primaryColor":16711680},"colors":{"accent":255}}`)
		cfg, err := Normalize(raw)
		require.NoError(t, err)
		require.NotNil(t, cfg.Branding)
		assert.Equal(t, "16711680", cfg.Branding.PrimaryColor)
		require.NotNil(t, cfg.Colors)
		assert.Equal(t, "255", cfg.Colors.Accent)
	})

	t.Run("shape violations rejected at the boundary", func(t *testing.T) {
		raw := json.RawMessage(`{"categories":"not-a-list"}`)
		_, err := Normalize(raw)
		assert.Error(t, err)
	})

	t.Run("invalid JSON rejected", func(t *testing.T) {
		_, err := Normalize(json.RawMessage(`{"hero":`))
		assert.Error(t, err)
	})
}
