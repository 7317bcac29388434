package epidemic

// Never marks a transition that does not occur in a trajectory. It is a
// sentinel, not a calendar day, and must never be compared as one.
const Never = -1

// TransitionDates is the full set of absolute day numbers and period counters
// derived from one trajectory scan. All dates are simulation days; a value of
// Never means the transition never happens.
type TransitionDates struct {
	InfectiousStart   int `json:"infectious_start"`
	InfectiousEnd     int `json:"infectious_end"`
	SymptomsStart     int `json:"symptoms_start"`
	SymptomsEnd       int `json:"symptoms_end"`
	AsymptomaticOnset int `json:"asymptomatic_onset"`
	ImmunityEnd       int `json:"immunity_end"`

	AsymptomaticDays  int  `json:"asymptomatic_days"`
	SymptomaticDays   int  `json:"symptomatic_days"`
	WillBeSymptomatic bool `json:"will_be_symptomatic"`
}

// DeriveTransitionDates scans the trajectory once in increasing offset order
// and produces the derived dates relative to the exposure day. It is pure and
// idempotent: the same trajectory, exposure day and parameters always yield
// the same result. daysRecovered is the disease's recovery-immunity period;
// a negative value means immunity never wanes.
//
// End dates are exclusive-style: one past the last qualifying day.
func DeriveTransitionDates(t *Trajectory, exposureDay int, th Thresholds, daysRecovered int) TransitionDates {
	d := TransitionDates{
		InfectiousStart:   Never,
		InfectiousEnd:     Never,
		SymptomsStart:     Never,
		SymptomsEnd:       Never,
		AsymptomaticOnset: Never,
		ImmunityEnd:       Never,
	}
	if t == nil {
		return d
	}

	wasLatent := true
	wasIncubating := true

	for offset, p := range t.Points() {
		infective := p.Infectivity > th.Infectivity
		symptomatic := p.Symptomaticity > th.Symptomaticity
		asymptomatic := infective && !symptomatic

		if infective && wasLatent {
			d.InfectiousStart = exposureDay + offset
			if asymptomatic {
				// Asymptomatic onset coincides with infectious onset and is
				// set once, on the first infective sample only.
				d.AsymptomaticOnset = d.InfectiousStart
			}
			wasLatent = false
		}
		if infective {
			d.InfectiousEnd = exposureDay + offset + 1
		}

		if symptomatic && wasIncubating {
			d.SymptomsStart = exposureDay + offset
			d.WillBeSymptomatic = true
			wasIncubating = false
		}
		if symptomatic {
			d.SymptomaticDays++
			d.SymptomsEnd = exposureDay + offset + 1
		}

		if asymptomatic {
			d.AsymptomaticDays++
		}
	}

	if daysRecovered > -1 && d.InfectiousEnd != Never {
		d.ImmunityEnd = d.InfectiousEnd + daysRecovered
	}
	return d
}
