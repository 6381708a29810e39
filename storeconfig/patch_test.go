package storeconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	base, err := DefaultTemplate("minimal")
	require.NoError(t, err)

	t.Run("patch replaces only its own section", func(t *testing.T) {
		next := Apply(base, SetHero{Hero: Hero{ShowHero: true, Title: "Changed"}})
		assert.Equal(t, "Changed", next.Hero.Title)
		// Other sections untouched
		assert.Equal(t, base.Branding, next.Branding)
		assert.Equal(t, base.Categories, next.Categories)
	})

	t.Run("input tree is never mutated", func(t *testing.T) {
		orig := base.Hero.Title
		_ = Apply(base, SetHero{Hero: Hero{Title: "Other"}})
		assert.Equal(t, orig, base.Hero.Title)
	})

	t.Run("snapshots do not alias", func(t *testing.T) {
		next := Apply(base, SetBranding{Branding: *base.Branding})
		next.Branding.PrimaryColor = "hsl(0, 0%, 0%)"
		assert.NotEqual(t, base.Branding.PrimaryColor, next.Branding.PrimaryColor)

		withLinks := Apply(base, SetTopBar{TopBar: TopBar{ShowSocial: true, SocialLinks: map[string]string{"x": "https://x.com/a"}}})
		again := Apply(withLinks, SetHero{Hero: *withLinks.Hero})
		again.TopBar.SocialLinks["x"] = "https://x.com/b"
		assert.Equal(t, "https://x.com/a", withLinks.TopBar.SocialLinks["x"])
	})

	t.Run("category patch derives slugs from names", func(t *testing.T) {
		next := Apply(base, SetCategories{Categories: []Category{
			{Name: "Açúcar & Mel!"},
			{Name: "Gift Cards", Slug: "stale-slug"},
		}})
		assert.Equal(t, "acucar-mel", next.Categories[0].Slug)
		assert.Equal(t, "gift-cards", next.Categories[1].Slug)
	})

	t.Run("patch on an absent section creates it", func(t *testing.T) {
		next := Apply(Config{}, SetTopBar{TopBar: TopBar{ShowAnnouncement: true, Announcement: "Hi"}})
		require.NotNil(t, next.TopBar)
		assert.Equal(t, "Hi", next.TopBar.Announcement)
	})

	t.Run("style patch replaces selectors", func(t *testing.T) {
		next := Apply(base, SetStyle{Fonts: "serif", Layout: "masonry", CardStyle: "elevated"})
		assert.Equal(t, "serif", next.Fonts)
		assert.Equal(t, "masonry", next.Layout)
		assert.Equal(t, "elevated", next.CardStyle)
	})
}

func TestDefaultTemplate(t *testing.T) {
	t.Run("known templates load with seeds", func(t *testing.T) {
		for _, name := range TemplateNames() {
			cfg, err := DefaultTemplate(name)
			require.NoError(t, err, name)
			assert.NotNil(t, cfg.Hero, name)
			assert.NotEmpty(t, cfg.Categories, name)
			for _, cat := range cfg.Categories {
				assert.Equal(t, Slugify(cat.Name), cat.Slug, name)
			}
		}
	})

	t.Run("unknown template rejected", func(t *testing.T) {
		_, err := DefaultTemplate("brutalist")
		assert.Error(t, err)
	})
}
