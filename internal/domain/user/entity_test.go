package user

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile_NormalizesBannedIngredients(t *testing.T) {
	p, err := NewProfile(uuid.New(), 34, GenderFemale, 168, 61.5, " lose weight ", []string{"Peanut", "peanut ", "", "Shrimp"})

	require.NoError(t, err)
	assert.Equal(t, []string{"peanut", "shrimp"}, p.Banned())
	assert.Equal(t, "lose weight", p.Goal)
}

func TestNewProfile_Validation(t *testing.T) {
	_, err := NewProfile(uuid.New(), 0, GenderMale, 180, 80, "", nil)
	assert.ErrorIs(t, err, ErrInvalidAge)

	_, err = NewProfile(uuid.New(), 30, GenderMale, 0, 80, "", nil)
	assert.ErrorIs(t, err, ErrInvalidBody)

	_, err = NewProfile(uuid.New(), 30, Gender("unknown"), 180, 80, "", nil)
	assert.ErrorIs(t, err, ErrInvalidGender)
}

func TestProfile_BannedOnNilProfile(t *testing.T) {
	var p *Profile
	assert.Nil(t, p.Banned())
}
