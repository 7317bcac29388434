package core

import (
	"errors"
	"testing"

	"epicore/pkg/epidemic"
)

func TestAdvanceSeedRejectsNonSeed(t *testing.T) {
	infector := &stubHost{id: 9, age: 40}
	inf := mustInfection(t, testDisease(), infector, &stubHost{id: 1, age: 30}, nil, 10)

	_, err := inf.AdvanceSeedInfection(5, 20)
	var cerr epidemic.ConsistencyError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want ConsistencyError", err)
	}
}

func TestAdvanceSeedRejectsNeverInfectiousCourse(t *testing.T) {
	d := testDisease()
	d.TrajectoryFn = func(int) *Trajectory {
		return epidemic.NewTrajectory([]TrajectoryPoint{{}, {}, {}})
	}
	inf := mustInfection(t, d, nil, &stubHost{id: 1, age: 30}, nil, 10)

	if _, err := inf.AdvanceSeedInfection(5, 20); err == nil {
		t.Fatal("never-infectious seed advanced")
	}
}

func TestAdvanceSeedReplaysElapsedTransitions(t *testing.T) {
	inf := mustInfection(t, testDisease(), nil, &stubHost{id: 1, age: 30}, nil, 10)

	events, err := inf.AdvanceSeedInfection(5, 9)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if inf.ExposureDay() != 5 {
		t.Fatalf("exposure day = %d, want 5", inf.ExposureDay())
	}
	d := inf.Dates()
	if d.InfectiousStart != 7 || d.SymptomsStart != 9 || d.InfectiousEnd != 13 {
		t.Fatalf("backdated dates wrong: %+v", d)
	}
	want := []TransitionEvent{EventBecameInfectious, EventBecameSymptomatic}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
	if !inf.IsSusceptible() {
		t.Fatal("immunity replayed before its date")
	}
}

func TestAdvanceSeedReplaysFullCourse(t *testing.T) {
	inf := mustInfection(t, testDisease(), nil, &stubHost{id: 1, age: 30}, nil, 10)

	events, err := inf.AdvanceSeedInfection(5, 50)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	want := []TransitionEvent{
		EventBecameInfectious,
		EventBecameSymptomatic,
		EventBecameAsymptomatic,
		EventRecovered,
		EventBecameImmune,
	}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("events = %v, want %v", events, want)
		}
	}
	if inf.IsSusceptible() {
		t.Fatal("susceptibility must clear when immunity replays")
	}
}
