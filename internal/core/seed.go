package core

import "epicore/pkg/epidemic"

// AdvanceSeedInfection backdates a seed infection by days, as if exposure had
// happened that many days earlier, and replays the transitions that would
// already have fired by the current simulation day. epidemicOffset is the
// absolute day the caller treats as "now"; every transition dated on or
// before it is returned in dispatch order.
//
// Only true seeds can be advanced: the infection must have no infector and
// must have a bounded infectious period.
func (i *Infection) AdvanceSeedInfection(days, epidemicOffset int) ([]TransitionEvent, error) {
	if i.infector != nil {
		return nil, epidemic.ConsistencyError{
			Op:     "advance_seed_infection",
			Reason: "infection has an infector; only seeds can be advanced",
		}
	}
	if i.dates.InfectiousEnd == Never {
		return nil, epidemic.ConsistencyError{
			Op:     "advance_seed_infection",
			Reason: "infection never becomes infectious",
		}
	}

	exposure := i.exposureDay - days
	if err := i.install(i.traj, exposure, "advance_seed_infection"); err != nil {
		return nil, err
	}

	var events []TransitionEvent
	fired := func(day int) bool { return day != Never && day <= epidemicOffset }
	if fired(i.dates.InfectiousStart) {
		events = append(events, epidemic.EventBecameInfectious)
	}
	if fired(i.dates.SymptomsStart) {
		events = append(events, epidemic.EventBecameSymptomatic)
	}
	if fired(i.dates.SymptomsEnd) {
		events = append(events, epidemic.EventBecameAsymptomatic)
	}
	if fired(i.dates.InfectiousEnd) {
		events = append(events, epidemic.EventRecovered)
	}
	if fired(i.dates.ImmunityEnd) {
		events = append(events, epidemic.EventBecameImmune)
		i.susceptible = false
	}
	return events, nil
}
