package sequencer

import (
	"math/rand"
	"sort"

	"github.com/okian/stepforge/internal/domain/model"
	"github.com/okian/stepforge/internal/domain/profile"
)

// Default sequencing configuration constants.
const (
	// DefaultSeed seeds the random stream when no seed option is given.
	DefaultSeed int64 = 42

	defaultJumpChance = 0.15
	defaultHoldChance = 0.10

	// Hold durations are drawn uniformly from [minHoldBeats, maxHoldBeats]
	// beats at the song's tempo.
	minHoldBeats = 2.0
	maxHoldBeats = 4.0

	// holdClearanceSeconds is how far a hold must end before the next
	// event's start for the promotion to be accepted.
	holdClearanceSeconds = 0.5

	// holdTailGuard excludes the last events of a run from promotion.
	holdTailGuard = 2
)

// Sequencer generates step events for one difficulty run. It owns its
// random stream and last-direction state, so independent runs (one per
// tier) are safe to execute concurrently.
type Sequencer struct {
	profile    profile.Profile
	seed       int64
	jumpChance float64
	holdChance float64

	rng     *rand.Rand
	lastDir model.Direction
	hasLast bool
}

// New creates a sequencer for the given profile with configuration options.
func New(p profile.Profile, opts ...Option) *Sequencer {
	s := &Sequencer{
		profile:    p,
		seed:       DefaultSeed,
		jumpChance: defaultJumpChance,
		holdChance: defaultHoldChance,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sequence converts beat timestamps into a sorted step event list.
// It is a total function: empty or degenerate input yields an empty
// list, never an error. Beat times are expected strictly ascending;
// callers validate the analysis before sequencing.
func (s *Sequencer) Sequence(beatTimes []float64, tempoBPM float64) []model.StepEvent {
	s.rng = rand.New(rand.NewSource(s.seed)) //nolint:gosec // deterministic seed for reproducible charts
	s.hasLast = false

	if len(beatTimes) == 0 {
		return []model.StepEvent{}
	}

	selected := s.selectBeats(beatTimes)

	events := make([]model.StepEvent, 0, len(selected))
	for i, t := range selected {
		events = append(events, s.stepAt(t, i))
	}

	if s.profile.HoldsEnabled && tempoBPM > 0 {
		s.promoteHolds(events, tempoBPM)
	}

	// Promotion never changes start times, but keep the output contract
	// explicit with a stable re-sort.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].TimeSeconds < events[j].TimeSeconds
	})
	return events
}

// selectBeats thins the beat list to the profile's density, honoring
// the minimum gap. The first beat is always kept.
func (s *Sequencer) selectBeats(beatTimes []float64) []float64 {
	selected := make([]float64, 0, len(beatTimes))
	var lastKept float64

	for _, t := range beatTimes {
		if len(selected) == 0 {
			selected = append(selected, t)
			lastKept = t
			continue
		}
		if t-lastKept < s.profile.MinGapSeconds {
			continue
		}
		if s.rng.Float64() < s.profile.StepDensity {
			selected = append(selected, t)
			lastKept = t
		}
	}
	return selected
}

// stepAt builds the event for one kept beat.
func (s *Sequencer) stepAt(t float64, index int) model.StepEvent {
	if s.profile.JumpsEnabled {
		// The jump draw is consumed whenever jumps are enabled, even for
		// the first step, which is never a jump.
		if s.rng.Float64() < s.jumpChance && index > 0 {
			return s.jumpStep(t)
		}
	}
	return s.tapStep(t)
}

// tapStep emits a single-panel tap, steering direction choice off the
// previous step.
func (s *Sequencer) tapStep(t float64) model.StepEvent {
	var dir model.Direction
	switch {
	case !s.hasLast:
		dir = model.Directions[s.rng.Intn(len(model.Directions))]
	case s.profile.Tier == profile.Easy:
		// Easier play: prefer panels adjacent to the previous one.
		dir = s.pick(adjacent(s.lastDir))
	default:
		others := make([]model.Direction, 0, 3)
		for _, d := range model.Directions {
			if d != s.lastDir {
				others = append(others, d)
			}
		}
		dir = s.pick(others)
	}
	s.lastDir = dir
	s.hasLast = true

	return model.StepEvent{
		TimeSeconds: t,
		Kind:        model.Tap,
		Directions:  []model.Direction{dir},
		Pattern:     model.PatternFor(dir),
	}
}

// jumpStep emits two simultaneous panels chosen without replacement.
// Jumps do not update the last-direction state.
func (s *Sequencer) jumpStep(t float64) model.StepEvent {
	first := model.Directions[s.rng.Intn(len(model.Directions))]
	rest := make([]model.Direction, 0, 3)
	for _, d := range model.Directions {
		if d != first {
			rest = append(rest, d)
		}
	}
	second := s.pick(rest)

	return model.StepEvent{
		TimeSeconds: t,
		Kind:        model.Jump,
		Directions:  []model.Direction{first, second},
		Pattern:     model.PatternFor(first).Union(model.PatternFor(second)),
	}
}

// promoteHolds upgrades some taps to holds in place. A candidate is
// accepted only when its drawn end time clears the next event by
// holdClearanceSeconds; events near the end of the run are never
// promoted.
func (s *Sequencer) promoteHolds(events []model.StepEvent, tempoBPM float64) {
	beatLength := 60.0 / tempoBPM
	minDur := beatLength * minHoldBeats
	maxDur := beatLength * maxHoldBeats

	for i := range events {
		if events[i].Kind != model.Tap {
			continue
		}
		// The chance draw is consumed for every tap so that the stream
		// stays aligned regardless of position.
		if s.rng.Float64() >= s.holdChance || i >= len(events)-holdTailGuard {
			continue
		}
		duration := minDur + s.rng.Float64()*(maxDur-minDur)
		end := events[i].TimeSeconds + duration
		if end < events[i+1].TimeSeconds-holdClearanceSeconds {
			events[i].Kind = model.Hold
			events[i].HoldEndSeconds = end
		}
	}
}

func (s *Sequencer) pick(dirs []model.Direction) model.Direction {
	return dirs[s.rng.Intn(len(dirs))]
}

// adjacent returns the panels geometrically adjacent to d: the side
// panels pair with Down/Up, the middle panels with Left/Right.
func adjacent(d model.Direction) []model.Direction {
	switch d {
	case model.Left, model.Right:
		return []model.Direction{model.Down, model.Up}
	default:
		return []model.Direction{model.Left, model.Right}
	}
}
