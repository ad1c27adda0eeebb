package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestUserProfile_IsComplete(t *testing.T) {
	complete := UserProfile{
		Gender:   strPtr("female"),
		Height:   f64Ptr(165),
		Weight:   f64Ptr(58),
		SkinTone: strPtr("medium"),
	}
	assert.True(t, complete.IsComplete())

	empty := UserProfile{}
	assert.False(t, empty.IsComplete())

	missingSkinTone := complete
	missingSkinTone.SkinTone = nil
	assert.False(t, missingSkinTone.IsComplete())

	zeroHeight := complete
	zeroHeight.Height = f64Ptr(0)
	assert.False(t, zeroHeight.IsComplete())

	emptyGender := complete
	emptyGender.Gender = strPtr("")
	assert.False(t, emptyGender.IsComplete())
}

func TestValidCategory(t *testing.T) {
	for _, c := range []string{CategoryTops, CategoryBottom, CategoryFullBody, CategoryLayers, CategoryShoes} {
		assert.True(t, ValidCategory(c), c)
	}
	assert.False(t, ValidCategory(""))
	assert.False(t, ValidCategory("Hats"))
	assert.False(t, ValidCategory("tops"))
}
