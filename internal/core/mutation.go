package core

import "epicore/pkg/epidemic"

// Strain queries and mutation. Callers pass absolute simulation days; the
// trajectory itself indexes by offset from exposure.

// Strains returns the distinct strain identifiers carried anywhere in the
// course, sorted ascending.
func (i *Infection) Strains() []int {
	if i.traj == nil {
		return nil
	}
	return i.traj.Strains()
}

// StrainsAt returns the strain identifiers active on the given simulation
// day. Days outside the sampled course yield nil.
func (i *Infection) StrainsAt(day int) []int {
	if i.traj == nil {
		return nil
	}
	return i.traj.StrainsAt(day - i.exposureDay)
}

// Mutate replaces oldStrain with newStrain from the given simulation day
// through the end of the course.
func (i *Infection) Mutate(oldStrain, newStrain, day int) error {
	if i.traj == nil {
		return epidemic.ConsistencyError{Op: "mutate", Reason: "no trajectory attached"}
	}
	return i.traj.Mutate(oldStrain, newStrain, day-i.exposureDay)
}
