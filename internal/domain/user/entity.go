// Package user defines the diet profile the planner reads for a user
package user

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/nutriplan/v1/internal/domain/recipe"
)

var (
	ErrInvalidAge     = errors.New("age must be between 1 and 130")
	ErrInvalidBody    = errors.New("height and weight must be positive")
	ErrInvalidGender  = errors.New("invalid gender")
	ErrProfileMissing = errors.New("user profile not found")
)

// Gender is the self-reported gender used for energy estimates
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is a known gender
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// Profile holds the per-user facts the planner consumes
type Profile struct {
	ID                uuid.UUID
	Age               int
	Gender            Gender
	HeightCM          float64
	WeightKG          float64
	Goal              string
	BannedIngredients []string
}

// NewProfile creates a validated profile for the given user
func NewProfile(id uuid.UUID, age int, gender Gender, heightCM, weightKG float64, goal string, banned []string) (*Profile, error) {
	if age <= 0 || age > 130 {
		return nil, ErrInvalidAge
	}
	if heightCM <= 0 || weightKG <= 0 {
		return nil, ErrInvalidBody
	}
	if !gender.Valid() {
		return nil, ErrInvalidGender
	}
	return &Profile{
		ID:                id,
		Age:               age,
		Gender:            gender,
		HeightCM:          heightCM,
		WeightKG:          weightKG,
		Goal:              strings.TrimSpace(goal),
		BannedIngredients: normalizeBanned(banned),
	}, nil
}

// Banned returns the normalized banned ingredient names, nil-safe
func (p *Profile) Banned() []string {
	if p == nil {
		return nil
	}
	return p.BannedIngredients
}

func normalizeBanned(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = recipe.NormalizeIngredient(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
