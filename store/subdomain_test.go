package store

import (
	"testing"

	"github.com/shopcanvas/shopcanvas/errors"
	"github.com/stretchr/testify/assert"
)

func TestValidateSubdomain(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		for _, s := range []string{"my-store1", "a", "a1", "store", "a-b-c", "0start"} {
			assert.NoError(t, ValidateSubdomain(s), s)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		for _, s := range []string{"", "-leadinghyphen", "trailing-", "Has_Upper", "has_underscore", "dot.ted", "spa ce"} {
			err := ValidateSubdomain(s)
			assert.Error(t, err, s)
			assert.True(t, errors.Is(err, errors.ErrCodeSubdomainInvalid), s)
		}
	})

	t.Run("length boundary", func(t *testing.T) {
		max := make([]byte, 63)
		for i := range max {
			max[i] = 'a'
		}
		assert.NoError(t, ValidateSubdomain(string(max)))
		assert.Error(t, ValidateSubdomain(string(max)+"a"))
	})
}
