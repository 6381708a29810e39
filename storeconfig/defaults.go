package storeconfig

import (
	"sort"

	"github.com/shopcanvas/shopcanvas/errors"
)

// templates holds the hard-coded seed configuration per template name. The
// editor starts from one of these when no store record exists yet.
var templates = map[string]func() Config{
	"minimal":     minimalTemplate,
	"boutique":    boutiqueTemplate,
	"electronics": electronicsTemplate,
}

// TemplateNames lists the available template names, sorted.
func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultTemplate returns the seed configuration for a template name.
func DefaultTemplate(name string) (Config, error) {
	fn, ok := templates[name]
	if !ok {
		return Config{}, errors.TemplateUnknown(name)
	}
	return fn(), nil
}

func minimalTemplate() Config {
	return Config{
		Branding: &Branding{
			PrimaryColor:   "hsl(222, 47%, 11%)",
			SecondaryColor: "hsl(210, 40%, 96%)",
			AccentColor:    "hsl(222, 89%, 55%)",
			FontFamily:     "Inter",
		},
		TopBar: &TopBar{
			ShowAnnouncement: true,
			Announcement:     "Free shipping on orders over $50",
		},
		Hero: &Hero{
			ShowHero:     true,
			Title:        "Welcome to our store",
			Subtitle:     "Quality products, honest prices",
			OverlayColor: "hsl(222, 47%, 11%)",
			TitleColor:   "hsl(0, 0%, 100%)",
			ButtonColor:  "hsl(222, 89%, 55%)",
			CTAText:      "Shop now",
			CTALink:      "#products",
		},
		Categories: []Category{
			{Name: "New Arrivals", Slug: "new-arrivals"},
			{Name: "Best Sellers", Slug: "best-sellers"},
			{Name: "Sale", Slug: "sale"},
		},
		Colors: &Colors{
			Primary:   "222 47% 11%",
			Secondary: "210 40% 96%",
			Accent:    "222 89% 55%",
		},
		Fonts:     "sans",
		Layout:    "grid",
		CardStyle: "flat",
	}
}

func boutiqueTemplate() Config {
	return Config{
		Branding: &Branding{
			PrimaryColor:   "hsl(340, 40%, 25%)",
			SecondaryColor: "hsl(30, 60%, 94%)",
			AccentColor:    "hsl(340, 65%, 55%)",
			FontFamily:     "Playfair Display",
		},
		TopBar: &TopBar{
			ShowAnnouncement: true,
			Announcement:     "Handmade with love — new collection out now",
			ShowSocial:       true,
			SocialLinks: map[string]string{
				"instagram": "https://instagram.com/yourstore",
			},
		},
		Hero: &Hero{
			ShowHero:     true,
			Title:        "Curated pieces for every occasion",
			Subtitle:     "Discover our handpicked collection",
			OverlayColor: "hsl(340, 40%, 25%)",
			TitleColor:   "hsl(30, 60%, 94%)",
			ButtonColor:  "hsl(340, 65%, 55%)",
			CTAText:      "Browse collection",
			CTALink:      "#products",
		},
		Categories: []Category{
			{Name: "Dresses", Slug: "dresses"},
			{Name: "Accessories", Slug: "accessories"},
			{Name: "Jewelry", Slug: "jewelry"},
			{Name: "Gift Cards", Slug: "gift-cards"},
		},
		Colors: &Colors{
			Primary:   "340 40% 25%",
			Secondary: "30 60% 94%",
			Accent:    "340 65% 55%",
		},
		Fonts:     "serif",
		Layout:    "masonry",
		CardStyle: "elevated",
	}
}

func electronicsTemplate() Config {
	return Config{
		Branding: &Branding{
			PrimaryColor:   "hsl(217, 33%, 17%)",
			SecondaryColor: "hsl(215, 20%, 95%)",
			AccentColor:    "hsl(160, 84%, 39%)",
			FontFamily:     "Roboto",
		},
		TopBar: &TopBar{
			ShowAnnouncement: true,
			Announcement:     "2-year warranty on all devices",
		},
		Hero: &Hero{
			ShowHero:     true,
			Title:        "Tech that keeps up with you",
			Subtitle:     "Latest gadgets at the best prices",
			OverlayColor: "hsl(217, 33%, 17%)",
			TitleColor:   "hsl(0, 0%, 100%)",
			ButtonColor:  "hsl(160, 84%, 39%)",
			CTAText:      "Explore deals",
			CTALink:      "#products",
		},
		Categories: []Category{
			{Name: "Phones", Slug: "phones"},
			{Name: "Laptops", Slug: "laptops"},
			{Name: "Audio", Slug: "audio"},
			{Name: "Smart Home", Slug: "smart-home"},
		},
		Colors: &Colors{
			Primary:   "217 33% 17%",
			Secondary: "215 20% 95%",
			Accent:    "160 84% 39%",
		},
		Fonts:     "sans",
		Layout:    "grid",
		CardStyle: "outlined",
	}
}
