// Package epidemic defines the core value types and pure progression logic
// used by epicore: disease trajectories, derived transition dates, transition
// events, and the consistency rules evaluated after every re-derivation.
package epidemic

import (
	"fmt"
	"sort"
)

// TrajectoryPoint is one day's sampled disease course.
type TrajectoryPoint struct {
	Infectivity    float64 `json:"infectivity"`
	Symptomaticity float64 `json:"symptomaticity"`
}

// Trajectory is an owned, versioned per-day sequence of trajectory points.
// Offsets are contiguous starting at 0 relative to the exposure day; every
// edit preserves contiguity and bumps the version. A trajectory belongs to
// exactly one infection and is never shared.
type Trajectory struct {
	points  []TrajectoryPoint
	strains [][]int
	version uint64
}

// NewTrajectory constructs a trajectory from per-day points. The points are
// copied; days carry no strain tags.
func NewTrajectory(points []TrajectoryPoint) *Trajectory {
	t := &Trajectory{
		points:  append([]TrajectoryPoint(nil), points...),
		strains: make([][]int, len(points)),
	}
	return t
}

// NewStrainTrajectory constructs a trajectory whose every day is tagged with
// the supplied infecting strain.
func NewStrainTrajectory(points []TrajectoryPoint, strain int) *Trajectory {
	t := NewTrajectory(points)
	for i := range t.strains {
		t.strains[i] = []int{strain}
	}
	return t
}

// Len returns the number of sampled days.
func (t *Trajectory) Len() int { return len(t.points) }

// Version returns the edit version, incremented on every successful edit.
func (t *Trajectory) Version() uint64 { return t.version }

// Point returns the sample at the given day offset. The second return value
// is false when the offset lies outside the sampled range.
func (t *Trajectory) Point(offset int) (TrajectoryPoint, bool) {
	if offset < 0 || offset >= len(t.points) {
		return TrajectoryPoint{}, false
	}
	return t.points[offset], true
}

// Points returns a copy of all samples in offset order.
func (t *Trajectory) Points() []TrajectoryPoint {
	return append([]TrajectoryPoint(nil), t.points...)
}

// Clone returns a deep copy sharing no state with the receiver.
func (t *Trajectory) Clone() *Trajectory {
	cp := &Trajectory{
		points:  append([]TrajectoryPoint(nil), t.points...),
		strains: make([][]int, len(t.strains)),
		version: t.version,
	}
	for i, tags := range t.strains {
		cp.strains[i] = append([]int(nil), tags...)
	}
	return cp
}

// ResizeSymptomaticPeriod replaces the tail of the trajectory from
// startOffset with exactly days samples. Shrinking truncates; growing repeats
// the final sample (and its strain tags). days may be zero, which removes the
// tail outright.
func (t *Trajectory) ResizeSymptomaticPeriod(startOffset, days int) error {
	if startOffset < 0 || startOffset > len(t.points) {
		return fmt.Errorf("resize symptomatic period: offset %d out of range [0,%d]", startOffset, len(t.points))
	}
	if days < 0 {
		return fmt.Errorf("resize symptomatic period: negative day count %d", days)
	}
	t.resizeTail(startOffset, days)
	t.version++
	return nil
}

// ResizeAsymptomaticPeriod replaces the span [startOffset, symptomsOffset)
// with exactly days samples, shifting the symptomatic block (and anything
// after it) intact. A symptomsOffset of Never means the span extends to the
// end of the trajectory.
func (t *Trajectory) ResizeAsymptomaticPeriod(startOffset, days, symptomsOffset int) error {
	if startOffset < 0 || startOffset > len(t.points) {
		return fmt.Errorf("resize asymptomatic period: offset %d out of range [0,%d]", startOffset, len(t.points))
	}
	if days < 0 {
		return fmt.Errorf("resize asymptomatic period: negative day count %d", days)
	}
	end := symptomsOffset
	if end == Never || end > len(t.points) {
		end = len(t.points)
	}
	if end < startOffset {
		return fmt.Errorf("resize asymptomatic period: symptoms offset %d precedes start %d", symptomsOffset, startOffset)
	}

	span := t.slice(startOffset, end)
	suffix := t.slice(end, len(t.points))
	prefix := t.slice(0, startOffset)

	resized := resizeSlice(span, days)
	if len(span.points) == 0 && days > 0 {
		// No existing span to sample from: repeat the final prefix sample.
		template := t.slice(maxInt(0, startOffset-1), startOffset)
		resized = resizeSlice(template, days)
	}

	t.points = concatPoints(prefix.points, resized.points, suffix.points)
	t.strains = concatStrains(prefix.strains, resized.strains, suffix.strains)
	t.version++
	return nil
}

// SetSymptomaticCourse rewrites the symptomaticity channel so that exactly
// days symptomatic samples begin at startOffset and every later sample is
// asymptomatic. The trajectory grows by repeating its final sample when days
// extends past the current end. Infectivity values are untouched.
func (t *Trajectory) SetSymptomaticCourse(startOffset, days int) error {
	if startOffset < 0 || startOffset > len(t.points) {
		return fmt.Errorf("set symptomatic course: offset %d out of range [0,%d]", startOffset, len(t.points))
	}
	if days < 0 {
		return fmt.Errorf("set symptomatic course: negative day count %d", days)
	}
	for len(t.points) < startOffset+days {
		t.appendLast()
	}
	for i := startOffset; i < len(t.points); i++ {
		if i < startOffset+days {
			t.points[i].Symptomaticity = 1.0
		} else {
			t.points[i].Symptomaticity = 0.0
		}
	}
	t.version++
	return nil
}

// StrainsAt returns the strain tags recorded at the given day offset.
func (t *Trajectory) StrainsAt(offset int) []int {
	if offset < 0 || offset >= len(t.strains) {
		return nil
	}
	return append([]int(nil), t.strains[offset]...)
}

// Strains returns the distinct strain identifiers recorded anywhere in the
// trajectory, in ascending order.
func (t *Trajectory) Strains() []int {
	seen := map[int]struct{}{}
	var out []int
	for _, tags := range t.strains {
		for _, s := range tags {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Ints(out)
	return out
}

// Tag records a strain identifier at the given day offset.
func (t *Trajectory) Tag(offset, strain int) error {
	if offset < 0 || offset >= len(t.strains) {
		return fmt.Errorf("tag strain: offset %d out of range [0,%d)", offset, len(t.strains))
	}
	for _, s := range t.strains[offset] {
		if s == strain {
			return nil
		}
	}
	t.strains[offset] = append(t.strains[offset], strain)
	t.version++
	return nil
}

// Mutate rewrites tags of oldStrain to newStrain at and after the given day
// offset. Strain identity does not affect derived dates, so callers need no
// re-derivation afterwards.
func (t *Trajectory) Mutate(oldStrain, newStrain, fromOffset int) error {
	if fromOffset < 0 {
		fromOffset = 0
	}
	if fromOffset >= len(t.strains) {
		return fmt.Errorf("mutate strain: offset %d out of range [0,%d)", fromOffset, len(t.strains))
	}
	for i := fromOffset; i < len(t.strains); i++ {
		for j, s := range t.strains[i] {
			if s == oldStrain {
				t.strains[i][j] = newStrain
			}
		}
	}
	t.version++
	return nil
}

// --- splice helpers ---

type segment struct {
	points  []TrajectoryPoint
	strains [][]int
}

func (t *Trajectory) slice(from, to int) segment {
	return segment{
		points:  append([]TrajectoryPoint(nil), t.points[from:to]...),
		strains: cloneStrains(t.strains[from:to]),
	}
}

// resizeTail truncates or extends the trajectory so that exactly days samples
// follow startOffset; extension repeats the final retained sample.
func (t *Trajectory) resizeTail(startOffset, days int) {
	target := startOffset + days
	if target <= len(t.points) {
		t.points = t.points[:target]
		t.strains = t.strains[:target]
		return
	}
	for len(t.points) < target {
		t.appendLast()
	}
}

func (t *Trajectory) appendLast() {
	if len(t.points) == 0 {
		t.points = append(t.points, TrajectoryPoint{})
		t.strains = append(t.strains, nil)
		return
	}
	t.points = append(t.points, t.points[len(t.points)-1])
	t.strains = append(t.strains, append([]int(nil), t.strains[len(t.strains)-1]...))
}

// resizeSlice truncates or extends a segment to exactly days samples,
// repeating the final sample on extension.
func resizeSlice(seg segment, days int) segment {
	out := segment{}
	for i := 0; i < days; i++ {
		if i < len(seg.points) {
			out.points = append(out.points, seg.points[i])
			out.strains = append(out.strains, append([]int(nil), seg.strains[i]...))
			continue
		}
		if len(seg.points) == 0 {
			out.points = append(out.points, TrajectoryPoint{})
			out.strains = append(out.strains, nil)
			continue
		}
		last := len(seg.points) - 1
		out.points = append(out.points, seg.points[last])
		out.strains = append(out.strains, append([]int(nil), seg.strains[last]...))
	}
	return out
}

func cloneStrains(in [][]int) [][]int {
	out := make([][]int, len(in))
	for i, tags := range in {
		out[i] = append([]int(nil), tags...)
	}
	return out
}

func concatPoints(segs ...[]TrajectoryPoint) []TrajectoryPoint {
	var out []TrajectoryPoint
	for _, s := range segs {
		out = append(out, s...)
	}
	return out
}

func concatStrains(segs ...[][]int) [][]int {
	var out [][]int
	for _, s := range segs {
		out = append(out, s...)
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
