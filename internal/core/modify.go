package core

import "epicore/pkg/epidemic"

// Intervention API. Each operation classifies today against the relevant
// derived dates — before, during, or after the period — and rescales only the
// portion that has not yet elapsed. Modifications after the window has closed
// and negative multipliers are rejected with no state change; every accepted
// edit re-derives all dates before returning.

// ModifySymptomaticPeriod rescales the planned (before onset) or remaining
// (mid-course) symptomatic days by multp. Mid-course, a rescaled remainder of
// zero is coerced to one day so the next update still observes the closing
// transition.
func (i *Infection) ModifySymptomaticPeriod(multp float64, today int) error {
	if multp < 0 {
		return epidemic.ModificationError{Op: "symptomatic period", Reason: "negative multiplier"}
	}
	if today >= i.dates.InfectiousEnd {
		return epidemic.ModificationError{Op: "symptomatic period", Reason: "past symptomatic period"}
	}

	if today < i.dates.SymptomsStart {
		// Before onset: rescale the full planned period from its start.
		days := int(float64(i.dates.SymptomaticDays) * multp)
		start := i.dates.SymptomsStart - i.exposureDay
		return i.applyEditAndRederive("modify_symptomatic_period", func(t *Trajectory) error {
			return t.ResizeSymptomaticPeriod(start, days)
		})
	}

	// Mid-course: rescale the remaining days from today onward.
	days := int(float64(i.dates.InfectiousEnd-today) * multp)
	if days == 0 {
		days = 1
	}
	start := today - i.exposureDay
	return i.applyEditAndRederive("modify_symptomatic_period", func(t *Trajectory) error {
		return t.ResizeSymptomaticPeriod(start, days)
	})
}

// ModifyAsymptomaticPeriod rescales the asymptomatic-infectious span by
// multp, preserving the symptomatic block that follows it.
func (i *Infection) ModifyAsymptomaticPeriod(multp float64, today int) error {
	if multp < 0 {
		return epidemic.ModificationError{Op: "asymptomatic period", Reason: "negative multiplier"}
	}
	if today >= i.dates.SymptomsStart {
		return epidemic.ModificationError{Op: "asymptomatic period", Reason: "past asymptomatic period"}
	}

	sympOffset := Never
	if i.dates.SymptomsStart != Never {
		sympOffset = i.dates.SymptomsStart - i.exposureDay
	}

	if today < i.dates.InfectiousStart {
		// Before onset: rescale the full planned span.
		days := int(float64(i.dates.AsymptomaticDays) * multp)
		start := i.dates.InfectiousStart - i.exposureDay
		return i.applyEditAndRederive("modify_asymptomatic_period", func(t *Trajectory) error {
			return t.ResizeAsymptomaticPeriod(start, days, sympOffset)
		})
	}

	// Mid-course: rescale only the remainder.
	days := int(float64(i.dates.SymptomsStart-today) * multp)
	if days == 0 {
		days = 1
	}
	start := today - i.exposureDay
	return i.applyEditAndRederive("modify_asymptomatic_period", func(t *Trajectory) error {
		return t.ResizeAsymptomaticPeriod(start, days, sympOffset)
	})
}

// ModifyInfectiousPeriod rescales the whole infectious course: the
// asymptomatic span when it is still ahead, then the symptomatic one.
func (i *Infection) ModifyInfectiousPeriod(multp float64, today int) error {
	if today < i.dates.SymptomsStart {
		if err := i.ModifyAsymptomaticPeriod(multp, today); err != nil {
			return err
		}
	}
	return i.ModifySymptomaticPeriod(multp, today)
}

// ModifyDevelopsSymptoms toggles whether the host develops symptoms at all.
// It fails once the symptomatic window has been entered on a course that was
// never purely asymptomatic, or after the infectious period has ended. On
// success the symptomatic length becomes either the disease's canonical
// duration or zero, and all dates are re-derived.
func (i *Infection) ModifyDevelopsSymptoms(develop bool, today int) error {
	if (today >= i.dates.SymptomsStart && i.dates.AsymptomaticOnset == Never) ||
		today >= i.dates.InfectiousEnd {
		return epidemic.ModificationError{Op: "develops symptoms", Reason: "past symptomatic period"}
	}
	if i.dates.WillBeSymptomatic == develop {
		return nil
	}

	days := 0
	if develop {
		days = i.disease.DaysSymptomatic()
	}
	start := i.dates.SymptomsStart
	if start == Never {
		// Symptoms begin where the asymptomatic-infectious span did, or
		// today when that onset is already behind us, so the onset
		// transition still has an update left to fire on.
		start = i.dates.AsymptomaticOnset
		if today > start {
			start = today
		}
	}
	startOffset := start - i.exposureDay
	return i.applyEditAndRederive("modify_develops_symptoms", func(t *Trajectory) error {
		return t.SetSymptomaticCourse(startOffset, days)
	})
}
