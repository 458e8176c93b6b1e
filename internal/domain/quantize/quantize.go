// Package quantize maps timed step events onto per-measure note grids.
//
// Two placement policies exist, bound to the two notation formats: the
// sparse policy omits empty measures (legacy single-chart files), the
// dense policy emits every measure up to the last note (modern
// multi-chart files). Both are total functions over valid input.
package quantize

import (
	"math"
	"sort"

	"github.com/okian/stepforge/internal/domain/model"
)

// Grid constants shared by both policies.
const (
	// BeatsPerMeasure fixes the 4/4 measure length of both formats.
	BeatsPerMeasure = 4

	// MinSubdivision is the coarsest grid a measure may use.
	MinSubdivision = 4

	// HoldTailLineDivisor controls hold end placement: the end marker
	// lands subdivision/HoldTailLineDivisor lines after the start line,
	// clamped to the measure. This is a deliberate approximation; the
	// hold's real end time is not mapped back onto the grid.
	HoldTailLineDivisor = 4

	// snapEpsilon is the tolerance for deciding that a beat fraction
	// lands exactly on a grid line.
	snapEpsilon = 0.001
)

// Subdivisions is the ordered candidate set of grid resolutions.
var Subdivisions = [10]int{4, 8, 12, 16, 24, 32, 48, 64, 96, 192}

// Measure is one quantized measure: Subdivision lines of column patterns.
type Measure struct {
	Index       int
	Subdivision int
	Lines       []model.ColumnPattern
}

// placed is a note annotated with its position inside its measure,
// in beats from the measure start.
type placed struct {
	beatInMeasure float64
	event         model.StepEvent
}

// Sparse quantizes notes under the legacy policy: notes are grouped by
// measure, each measure picks the coarsest subdivision covering its
// densest note, and measures with no notes are omitted entirely.
func Sparse(notes []model.StepEvent, bpm float64) []Measure {
	grouped := groupByMeasure(notes, bpm)
	indices := make([]int, 0, len(grouped))
	for idx := range grouped {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	measures := make([]Measure, 0, len(indices))
	for _, idx := range indices {
		group := grouped[idx]
		maxBeat := 0.0
		for _, p := range group {
			if p.beatInMeasure > maxBeat {
				maxBeat = p.beatInMeasure
			}
		}
		required := int(math.Ceil(maxBeat + 1))
		if required < MinSubdivision {
			required = MinSubdivision
		}
		sub := MinSubdivision
		for _, c := range Subdivisions {
			if c >= required {
				sub = c
				break
			}
		}
		measures = append(measures, buildMeasure(idx, sub, group))
	}
	return measures
}

// Dense quantizes notes under the modern policy: every measure from 0
// through the last note's measure is emitted, empty ones as four blank
// lines. Each note independently picks the smallest subdivision that
// represents its position within snapEpsilon; a measure uses the finest
// grid any of its notes demands.
func Dense(notes []model.StepEvent, bpm float64) []Measure {
	if len(notes) == 0 {
		return []Measure{emptyMeasure(0)}
	}

	grouped := groupByMeasure(notes, bpm)
	maxBeat := 0.0
	for _, n := range notes {
		if b := beatPosition(n.TimeSeconds, bpm); b > maxBeat {
			maxBeat = b
		}
	}
	total := int(maxBeat/BeatsPerMeasure) + 1

	measures := make([]Measure, 0, total)
	for idx := 0; idx < total; idx++ {
		group, ok := grouped[idx]
		if !ok {
			measures = append(measures, emptyMeasure(idx))
			continue
		}
		sub := MinSubdivision
		for _, p := range group {
			if s := snapSubdivision(p.beatInMeasure); s > sub {
				sub = s
			}
		}
		measures = append(measures, buildMeasure(idx, sub, group))
	}
	return measures
}

// beatPosition converts absolute seconds to a beat offset on the tempo grid.
func beatPosition(timeSeconds, bpm float64) float64 {
	return timeSeconds / 60.0 * bpm
}

func groupByMeasure(notes []model.StepEvent, bpm float64) map[int][]placed {
	grouped := make(map[int][]placed)
	for _, n := range notes {
		b := beatPosition(n.TimeSeconds, bpm)
		idx := int(b / BeatsPerMeasure)
		grouped[idx] = append(grouped[idx], placed{
			beatInMeasure: math.Mod(b, BeatsPerMeasure),
			event:         n,
		})
	}
	return grouped
}

// snapSubdivision returns the smallest candidate subdivision on which
// the beat offset lands within snapEpsilon of a grid line, or
// MinSubdivision when no candidate can represent it exactly.
func snapSubdivision(beatInMeasure float64) int {
	fraction := beatInMeasure / BeatsPerMeasure
	for _, c := range Subdivisions {
		pos := fraction * float64(c)
		if math.Abs(pos-math.Round(pos)) < snapEpsilon {
			return c
		}
	}
	return MinSubdivision
}

// buildMeasure places a measure's notes onto a grid of the given
// subdivision. Lines hit by multiple events merge by column-wise
// maximum digit; holds contribute a start marker and a heuristically
// offset end marker.
func buildMeasure(index, sub int, group []placed) Measure {
	lines := make([]model.ColumnPattern, sub)
	for _, p := range group {
		fraction := p.beatInMeasure / BeatsPerMeasure
		li := clampLine(int(math.Round(fraction*float64(sub))), sub)

		switch p.event.Kind {
		case model.Hold:
			lines[li] = lines[li].Union(p.event.Pattern.WithDigit(2))
			tail := clampLine(li+sub/HoldTailLineDivisor, sub)
			lines[tail] = lines[tail].Union(p.event.Pattern.WithDigit(3))
		default:
			lines[li] = lines[li].Union(p.event.Pattern)
		}
	}
	return Measure{Index: index, Subdivision: sub, Lines: lines}
}

func clampLine(li, sub int) int {
	if li < 0 {
		return 0
	}
	if li > sub-1 {
		return sub - 1
	}
	return li
}

func emptyMeasure(index int) Measure {
	return Measure{
		Index:       index,
		Subdivision: MinSubdivision,
		Lines:       make([]model.ColumnPattern, MinSubdivision),
	}
}
