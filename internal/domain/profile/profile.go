// Package profile holds the static per-difficulty configuration table.
//
// Profiles are immutable value records; callers receive copies and
// nothing in this package carries state between lookups.
package profile

// Tier names the four supported difficulty levels.
type Tier string

// Supported tiers, in display order.
const (
	Easy   Tier = "easy"
	Medium Tier = "medium"
	Hard   Tier = "hard"
	Expert Tier = "expert"
)

// Tiers lists every tier in the order charts are generated and emitted.
var Tiers = [4]Tier{Easy, Medium, Hard, Expert}

// Profile configures how densely and with which step kinds a difficulty
// tier is sequenced.
type Profile struct {
	Tier Tier
	// StepDensity is the target fraction of beats kept, in (0,1].
	StepDensity float64
	// MinGapSeconds is the minimum spacing between kept steps.
	MinGapSeconds float64
	JumpsEnabled  bool
	HoldsEnabled  bool
	// FeetRating is the numeric difficulty shown to players.
	FeetRating int
	// NotationTypeID names the panel layout, e.g. "dance-single".
	NotationTypeID string
}

const danceSingle = "dance-single"

var table = map[Tier]Profile{
	Easy: {
		Tier:           Easy,
		StepDensity:    0.4,
		MinGapSeconds:  0.5,
		JumpsEnabled:   false,
		HoldsEnabled:   false,
		FeetRating:     2,
		NotationTypeID: danceSingle,
	},
	Medium: {
		Tier:           Medium,
		StepDensity:    0.6,
		MinGapSeconds:  0.25,
		JumpsEnabled:   false,
		HoldsEnabled:   true,
		FeetRating:     4,
		NotationTypeID: danceSingle,
	},
	Hard: {
		Tier:           Hard,
		StepDensity:    0.8,
		MinGapSeconds:  0.125,
		JumpsEnabled:   true,
		HoldsEnabled:   true,
		FeetRating:     6,
		NotationTypeID: danceSingle,
	},
	Expert: {
		Tier:           Expert,
		StepDensity:    0.95,
		MinGapSeconds:  0.0625,
		JumpsEnabled:   true,
		HoldsEnabled:   true,
		FeetRating:     8,
		NotationTypeID: danceSingle,
	},
}

// For returns the profile for a tier. Unknown tiers fall back to the
// medium profile rather than failing.
func For(t Tier) Profile {
	if p, ok := table[t]; ok {
		return p
	}
	return table[Medium]
}

// DisplayName maps a tier to the label consuming engines expect.
// Unrecognized tiers display as Medium.
func DisplayName(t Tier) string {
	switch t {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	case Expert:
		return "Challenge"
	default:
		return "Medium"
	}
}

// Known reports whether the tier is one of the four supported levels.
func Known(t Tier) bool {
	_, ok := table[t]
	return ok
}
