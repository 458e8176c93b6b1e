// Package sequencer turns beat timestamps into a difficulty-scaled
// sequence of step events.
package sequencer

// Option applies a configuration option to the Sequencer.
type Option func(*Sequencer)

// WithSeed sets the seed for the sequencer's random stream. Every tier
// of a generation run is seeded with the same value, so tier outputs
// are reproducible but not statistically independent of each other.
func WithSeed(seed int64) Option {
	return func(s *Sequencer) {
		s.seed = seed
	}
}

// WithJumpChance overrides the probability that an eligible step
// becomes a jump.
func WithJumpChance(chance float64) Option {
	return func(s *Sequencer) {
		if chance >= 0 && chance <= 1 {
			s.jumpChance = chance
		}
	}
}

// WithHoldChance overrides the probability that a tap is considered for
// hold promotion.
func WithHoldChance(chance float64) Option {
	return func(s *Sequencer) {
		if chance >= 0 && chance <= 1 {
			s.holdChance = chance
		}
	}
}
