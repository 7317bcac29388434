package core

import (
	"fmt"

	"epicore/pkg/epidemic"
)

// chronicGraceDays is the fixed delay before a fixed-delay progression fires
// its single infectious-onset notification.
const chronicGraceDays = 3

// Infection tracks one (disease, host, exposure) triple: it owns the
// trajectory, holds the derived transition dates, and drives the daily state
// machine. Instances are mutated only by the sequential daily update loop and
// same-day intervention calls; cross-instance parallelism is safe because no
// two infections share a trajectory.
type Infection struct {
	disease  Disease
	host     Host
	infector Host
	place    Place

	exposureDay int
	traj        *Trajectory
	dates       TransitionDates
	rules       *epidemic.RuleSet

	// Today's cached course, refreshed once per Update call.
	infectivity float64
	symptoms    float64
	// infectivityMultp scales external infectivity reads only; it never
	// mutates the trajectory.
	infectivityMultp float64

	immuneResponse bool
	susceptible    bool
	fatalToday     bool
	infectees      int
}

// NewInfection constructs an infection at the given exposure day, derives the
// transition dates eagerly, and validates them against the consistency rules.
// infector and place may be nil: a nil infector marks a seed infection.
func NewInfection(disease Disease, infector Host, host Host, place Place, exposureDay int) (*Infection, error) {
	if disease == nil {
		return nil, fmt.Errorf("new infection: disease required")
	}
	if host == nil {
		return nil, fmt.Errorf("new infection: host required")
	}

	inf := &Infection{
		disease:          disease,
		host:             host,
		infector:         infector,
		place:            place,
		exposureDay:      exposureDay,
		rules:            epidemic.NewRuleSet(),
		infectivityMultp: 1.0,
		susceptible:      true,
	}
	inf.immuneResponse = disease.ImmunityOnInfection(host.RealAge())

	traj := disease.NewTrajectory(host.Age())
	if traj == nil && disease.Progression() == ProgressionTrajectory {
		return nil, fmt.Errorf("new infection: disease %s supplied no trajectory", disease.Name())
	}
	if err := inf.install(traj, exposureDay, "new_infection"); err != nil {
		return nil, err
	}
	return inf, nil
}

// install derives dates for the candidate trajectory/exposure pair, validates
// them, and commits both. Nothing is mutated when validation fails, which
// keeps every edit atomic.
func (i *Infection) install(traj *Trajectory, exposureDay int, op string) error {
	dates := epidemic.DeriveTransitionDates(traj, exposureDay, i.disease.Thresholds(), i.disease.DaysRecovered())
	if res := i.rules.Evaluate(dates, traj); res.HasBlocking() {
		return epidemic.ConsistencyError{Op: op, Result: res}
	}
	i.traj = traj
	i.exposureDay = exposureDay
	i.dates = dates
	return nil
}

// applyEditAndRederive is the single entry point for trajectory mutation:
// the edit runs on a private clone, dates are re-derived and validated, and
// only then does the clone replace the live trajectory.
func (i *Infection) applyEditAndRederive(op string, edit func(*Trajectory) error) error {
	if i.traj == nil {
		return epidemic.ConsistencyError{Op: op, Reason: "no trajectory attached"}
	}
	work := i.traj.Clone()
	if err := edit(work); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return i.install(work, i.exposureDay, op)
}

// SetTrajectory replaces the trajectory outright and re-derives all dates.
func (i *Infection) SetTrajectory(traj *Trajectory) error {
	return i.install(traj, i.exposureDay, "set_trajectory")
}

// Update advances the infection to the given simulation day and returns the
// transition events that fire on it, in dispatch order. A day with no
// qualifying transition, or an infection with no attached trajectory, yields
// no events. Update never fires the same transition twice because each event
// matches exactly one derived date.
func (i *Infection) Update(today int) []TransitionEvent {
	if i.disease.Progression() == ProgressionFixedDelay {
		return i.chronicUpdate(today)
	}
	if i.traj == nil {
		return nil
	}

	// Days outside the sampled course read as zero, so a recovered host
	// stops reporting infectivity or symptoms through the cache.
	if p, ok := i.traj.Point(today - i.exposureDay); ok {
		i.infectivity = p.Infectivity
		i.symptoms = p.Symptomaticity
	} else {
		i.infectivity = 0
		i.symptoms = 0
	}

	var events []TransitionEvent
	if i.dates.InfectiousStart != Never && today == i.dates.InfectiousStart {
		events = append(events, EventBecameInfectious)
	}
	if i.dates.SymptomsStart != Never && today == i.dates.SymptomsStart {
		events = append(events, EventBecameSymptomatic)
	}
	if i.dates.SymptomsEnd != Never && today == i.dates.SymptomsEnd {
		events = append(events, EventBecameAsymptomatic)
	}
	if i.dates.InfectiousEnd != Never && today == i.dates.InfectiousEnd {
		events = append(events, EventRecovered)
	}
	if i.dates.ImmunityEnd != Never && today == i.dates.ImmunityEnd {
		events = append(events, EventBecameImmune)
		i.susceptible = false
	}

	// Fatality short-circuits the rest of the day's processing; the events
	// already collected still fire.
	if i.disease.CaseFatalityEnabled() && i.IsSymptomaticToday() {
		daysSymptomatic := today - i.dates.SymptomsStart
		if i.disease.Fatal(i.host.FatalityAge(), i.symptoms, daysSymptomatic) {
			i.fatalToday = true
		}
	}
	return events
}

// chronicUpdate fires the single infectious-onset event once the grace
// period has elapsed; no dated transitions exist on this path.
func (i *Infection) chronicUpdate(today int) []TransitionEvent {
	if today-i.exposureDay > chronicGraceDays && !i.host.IsInfectious(i.disease.ID()) {
		return []TransitionEvent{EventBecameInfectious}
	}
	return nil
}

// Infectivity returns the trajectory infectivity for an arbitrary day scaled
// by the persistent multiplier. Days outside the sampled course read as zero.
func (i *Infection) Infectivity(day int) float64 {
	if i.traj == nil {
		return 0
	}
	p, ok := i.traj.Point(day - i.exposureDay)
	if !ok {
		return 0
	}
	return p.Infectivity * i.infectivityMultp
}

// Symptoms returns the trajectory symptomaticity for an arbitrary day.
func (i *Infection) Symptoms(day int) float64 {
	if i.traj == nil {
		return 0
	}
	p, ok := i.traj.Point(day - i.exposureDay)
	if !ok {
		return 0
	}
	return p.Symptomaticity
}

// IsInfectiousToday reports whether the cached course is above the
// infectivity threshold.
func (i *Infection) IsInfectiousToday() bool {
	return i.infectivity > i.disease.Thresholds().Infectivity
}

// IsSymptomaticToday reports whether the cached course is above the
// symptomaticity threshold.
func (i *Infection) IsSymptomaticToday() bool {
	return i.symptoms > i.disease.Thresholds().Symptomaticity
}

// Disease returns the disease parameterization.
func (i *Infection) Disease() Disease { return i.disease }

// Host returns the owning host.
func (i *Infection) Host() Host { return i.host }

// Infector returns the infecting host, nil for seed infections.
func (i *Infection) Infector() Host { return i.infector }

// ExposurePlace returns the exposure location, nil when unknown.
func (i *Infection) ExposurePlace() Place { return i.place }

// ExposureDay returns the absolute exposure day.
func (i *Infection) ExposureDay() int { return i.exposureDay }

// Dates returns a copy of the derived transition dates.
func (i *Infection) Dates() TransitionDates { return i.dates }

// WillBeSymptomatic reports whether the course ever turns symptomatic.
func (i *Infection) WillBeSymptomatic() bool { return i.dates.WillBeSymptomatic }

// ImmuneResponse reports whether this infection produced an immune response,
// decided once at construction from the host's age.
func (i *Infection) ImmuneResponse() bool { return i.immuneResponse }

// IsSusceptible reports whether the host remains susceptible through this
// infection; cleared when the immunity-acquired transition fires.
func (i *Infection) IsSusceptible() bool { return i.susceptible }

// FatalToday reports whether the case-fatality model terminated the host on
// the most recent update.
func (i *Infection) FatalToday() bool { return i.fatalToday }

// CourseComplete reports whether every dated transition has fired by today,
// so no further update can produce an event. Fixed-delay progressions never
// complete; their onset depends on host state, not on a derived date.
func (i *Infection) CourseComplete(today int) bool {
	if i.disease.Progression() == ProgressionFixedDelay {
		return false
	}
	if i.traj == nil {
		return true
	}
	last := i.dates.ImmunityEnd
	if last == Never {
		last = i.dates.InfectiousEnd
	}
	if last == Never {
		// A course that never turns infectious has no transitions; it is
		// spent once the sampled days run out.
		return today-i.exposureDay >= i.traj.Len()
	}
	return today >= last
}

// SetInfectivityMultiplier sets the persistent external infectivity scale.
func (i *Infection) SetInfectivityMultiplier(m float64) { i.infectivityMultp = m }

// InfectivityMultiplier returns the persistent external infectivity scale.
func (i *Infection) InfectivityMultiplier() float64 { return i.infectivityMultp }

// AddInfectee records a secondary case produced by this infection.
func (i *Infection) AddInfectee() { i.infectees++ }

// InfecteeCount returns the number of recorded secondary cases.
func (i *Infection) InfecteeCount() int { return i.infectees }

// PastInfections counts the host's prior infections with this disease.
func (i *Infection) PastInfections() int {
	return i.host.PastInfections(i.disease.ID())
}
