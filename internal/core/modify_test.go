package core

import (
	"errors"
	"testing"

	"epicore/pkg/epidemic"
)

func TestModifySymptomaticPeriodRejectsNegativeMultiplier(t *testing.T) {
	inf := mustInfection(t, testDisease(), nil, &stubHost{id: 1, age: 30}, nil, 10)
	before := inf.Dates()

	err := inf.ModifySymptomaticPeriod(-1, 11)
	var merr epidemic.ModificationError
	if !errors.As(err, &merr) {
		t.Fatalf("error = %v, want ModificationError", err)
	}
	if inf.Dates() != before {
		t.Fatal("rejected modification changed dates")
	}
}

func TestModifySymptomaticPeriodRejectsPastWindow(t *testing.T) {
	inf := mustInfection(t, testDisease(), nil, &stubHost{id: 1, age: 30}, nil, 10)
	if err := inf.ModifySymptomaticPeriod(0.5, 18); err == nil {
		t.Fatal("modification after infectious end accepted")
	}
	if err := inf.ModifySymptomaticPeriod(0.5, 25); err == nil {
		t.Fatal("modification long after course accepted")
	}
}

func TestModifySymptomaticPeriodBeforeOnsetRescalesWholePeriod(t *testing.T) {
	inf := mustInfection(t, testDisease(), nil, &stubHost{id: 1, age: 30}, nil, 10)
	if err := inf.ModifySymptomaticPeriod(0.5, 12); err != nil {
		t.Fatalf("modify: %v", err)
	}
	d := inf.Dates()
	if d.SymptomaticDays != 2 {
		t.Fatalf("symptomatic days = %d, want 2", d.SymptomaticDays)
	}
	if d.InfectiousEnd != 16 || d.SymptomsEnd != 16 {
		t.Fatalf("end dates = (%d,%d), want (16,16)", d.InfectiousEnd, d.SymptomsEnd)
	}
	if d.SymptomsStart != 14 {
		t.Fatalf("symptoms start moved to %d", d.SymptomsStart)
	}
}

func TestModifySymptomaticPeriodMidCourseCoercesRemainderToOne(t *testing.T) {
	inf := mustInfection(t, testDisease(), nil, &stubHost{id: 1, age: 30}, nil, 10)
	// Three days remain; a 0.1 multiplier would round to zero and is coerced
	// to a single day so the closing transition still fires.
	if err := inf.ModifySymptomaticPeriod(0.1, 15); err != nil {
		t.Fatalf("modify: %v", err)
	}
	d := inf.Dates()
	if d.InfectiousEnd != 16 {
		t.Fatalf("infectious end = %d, want 16", d.InfectiousEnd)
	}
	if d.SymptomaticDays != 2 {
		t.Fatalf("symptomatic days = %d, want 2 (elapsed day plus coerced remainder)", d.SymptomaticDays)
	}
}

func TestModifyAsymptomaticPeriodRejectsAfterSymptomsStart(t *testing.T) {
	inf := mustInfection(t, testDisease(), nil, &stubHost{id: 1, age: 30}, nil, 10)
	if err := inf.ModifyAsymptomaticPeriod(0.5, 14); err == nil {
		t.Fatal("modification after symptom onset accepted")
	}
}

func TestModifyAsymptomaticPeriodBeforeOnsetRescalesWholePeriod(t *testing.T) {
	inf := mustInfection(t, testDisease(), nil, &stubHost{id: 1, age: 30}, nil, 10)
	if err := inf.ModifyAsymptomaticPeriod(2, 11); err != nil {
		t.Fatalf("modify: %v", err)
	}
	d := inf.Dates()
	if d.AsymptomaticDays != 4 {
		t.Fatalf("asymptomatic days = %d, want 4", d.AsymptomaticDays)
	}
	if d.SymptomsStart != 16 {
		t.Fatalf("symptoms start = %d, want 16: symptomatic block must shift intact", d.SymptomsStart)
	}
	if d.SymptomaticDays != 4 {
		t.Fatalf("symptomatic days = %d, want 4", d.SymptomaticDays)
	}
}

func TestModifyAsymptomaticPeriodMidCourseRescalesRemainder(t *testing.T) {
	inf := mustInfection(t, testDisease(), nil, &stubHost{id: 1, age: 30}, nil, 10)
	// One asymptomatic day remains at day 13; triple it.
	if err := inf.ModifyAsymptomaticPeriod(3, 13); err != nil {
		t.Fatalf("modify: %v", err)
	}
	d := inf.Dates()
	if d.SymptomsStart != 16 {
		t.Fatalf("symptoms start = %d, want 16", d.SymptomsStart)
	}
	if d.AsymptomaticDays != 4 {
		t.Fatalf("asymptomatic days = %d, want 4", d.AsymptomaticDays)
	}
}

func TestModifyInfectiousPeriodScalesBothSpans(t *testing.T) {
	inf := mustInfection(t, testDisease(), nil, &stubHost{id: 1, age: 30}, nil, 10)
	if err := inf.ModifyInfectiousPeriod(0.5, 11); err != nil {
		t.Fatalf("modify: %v", err)
	}
	d := inf.Dates()
	if d.AsymptomaticDays != 1 {
		t.Fatalf("asymptomatic days = %d, want 1", d.AsymptomaticDays)
	}
	if d.SymptomaticDays != 2 {
		t.Fatalf("symptomatic days = %d, want 2", d.SymptomaticDays)
	}
	if d.InfectiousEnd != 15 {
		t.Fatalf("infectious end = %d, want 15", d.InfectiousEnd)
	}
}

func TestModifyDevelopsSymptomsOff(t *testing.T) {
	inf := mustInfection(t, testDisease(), nil, &stubHost{id: 1, age: 30}, nil, 10)
	if err := inf.ModifyDevelopsSymptoms(false, 12); err != nil {
		t.Fatalf("modify: %v", err)
	}
	d := inf.Dates()
	if d.WillBeSymptomatic || d.SymptomsStart != Never {
		t.Fatalf("symptoms not cleared: %+v", d)
	}
	if d.AsymptomaticDays != 6 {
		t.Fatalf("asymptomatic days = %d, want 6: infectivity must be untouched", d.AsymptomaticDays)
	}
	if d.InfectiousEnd != 18 {
		t.Fatalf("infectious end = %d, want 18", d.InfectiousEnd)
	}
}

func TestModifyDevelopsSymptomsOnFromAsymptomaticCourse(t *testing.T) {
	d := testDisease()
	d.TrajectoryFn = func(int) *Trajectory {
		return epidemic.NewTrajectory([]TrajectoryPoint{
			{}, {},
			{Infectivity: 0.5}, {Infectivity: 0.5},
			{Infectivity: 0.5}, {Infectivity: 0.5},
		})
	}
	inf := mustInfection(t, d, nil, &stubHost{id: 1, age: 30}, nil, 10)
	if inf.WillBeSymptomatic() {
		t.Fatal("setup: course must start asymptomatic")
	}

	if err := inf.ModifyDevelopsSymptoms(true, 13); err != nil {
		t.Fatalf("modify: %v", err)
	}
	got := inf.Dates()
	// The asymptomatic onset (day 12) is already behind today, so the
	// rewritten course starts today and the onset remains observable.
	if !got.WillBeSymptomatic || got.SymptomsStart != 13 {
		t.Fatalf("symptoms not developed: %+v", got)
	}
	if got.SymptomaticDays != 4 {
		t.Fatalf("symptomatic days = %d, want the canonical 4", got.SymptomaticDays)
	}
	events := inf.Update(13)
	var fired bool
	for _, ev := range events {
		if ev == epidemic.EventBecameSymptomatic {
			fired = true
		}
	}
	if !fired {
		t.Fatalf("update on the rewritten onset day fired %v, want became_symptomatic", events)
	}
}

func TestModifyDevelopsSymptomsNoopWhenAlreadyMatching(t *testing.T) {
	inf := mustInfection(t, testDisease(), nil, &stubHost{id: 1, age: 30}, nil, 10)
	before := inf.Dates()
	if err := inf.ModifyDevelopsSymptoms(true, 12); err != nil {
		t.Fatalf("modify: %v", err)
	}
	if inf.Dates() != before {
		t.Fatal("matching toggle changed dates")
	}
}

func TestModifyDevelopsSymptomsRejectsClosedWindow(t *testing.T) {
	inf := mustInfection(t, testDisease(), nil, &stubHost{id: 1, age: 30}, nil, 10)
	if err := inf.ModifyDevelopsSymptoms(false, 18); err == nil {
		t.Fatal("toggle after infectious end accepted")
	}

	// A course with no asymptomatic span cannot be toggled once symptoms
	// have begun.
	d := testDisease()
	d.TrajectoryFn = func(int) *Trajectory {
		return epidemic.NewTrajectory([]TrajectoryPoint{
			{}, {},
			{Infectivity: 1, Symptomaticity: 1},
			{Infectivity: 1, Symptomaticity: 1},
		})
	}
	inf2 := mustInfection(t, d, nil, &stubHost{id: 2, age: 30}, nil, 10)
	if err := inf2.ModifyDevelopsSymptoms(false, 12); err == nil {
		t.Fatal("toggle inside symptomatic window of purely symptomatic course accepted")
	}
}
