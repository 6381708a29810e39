package storeconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"diacritics and punctuation", "Açúcar & Mel!", "acucar-mel"},
		{"whitespace runs collapse", "  Multi   Space ", "multi-space"},
		{"empty name", "", ""},
		{"already clean", "best-sellers", "best-sellers"},
		{"uppercase", "New Arrivals", "new-arrivals"},
		{"digits survive", "Top 10 Deals", "top-10-deals"},
		{"only punctuation", "!!!", ""},
		{"leading punctuation", "--promo--", "promo"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}
