package core

import "epicore/pkg/epidemic"

// stubHost records dispatched transition notifications for assertions.
type stubHost struct {
	id  int
	age float64

	infectious  bool
	symptomatic bool

	becameInfectious   int
	becameSymptomatic  int
	becameAsymptomatic int
	recovered          int
	unsusceptible      int
}

func (h *stubHost) ID() int                          { return h.id }
func (h *stubHost) Age() int                         { return int(h.age) }
func (h *stubHost) RealAge() float64                 { return h.age }
func (h *stubHost) FatalityAge() float64             { return h.age }
func (h *stubHost) IsInfectious(int) bool            { return h.infectious }
func (h *stubHost) Symptomatic() bool                { return h.symptomatic }
func (h *stubHost) SickLeaveAvailable() bool         { return false }
func (h *stubHost) ExposureDay(int) int              { return 0 }
func (h *stubHost) PastInfections(int) int           { return 0 }
func (h *stubHost) HomeLocation() (lat, lon float64) { return 41.8, -87.6 }
func (h *stubHost) Position() (x, y float64)         { return 41.8, -87.6 }
func (h *stubHost) AdminRegion() int64               { return 17031 }

func (h *stubHost) BecomeInfectious(Disease) {
	h.becameInfectious++
	h.infectious = true
}
func (h *stubHost) BecomeSymptomatic(Disease) {
	h.becameSymptomatic++
	h.symptomatic = true
}
func (h *stubHost) BecomeAsymptomatic(Disease) {
	h.becameAsymptomatic++
	h.symptomatic = false
}
func (h *stubHost) Recover(Disease) {
	h.recovered++
	h.infectious = false
	h.symptomatic = false
}
func (h *stubHost) BecomeUnsusceptible(Disease) { h.unsusceptible++ }

type stubPlace struct {
	id      int
	kind    byte
	subkind byte
	size    int
}

func (p *stubPlace) ID() int                      { return p.id }
func (p *stubPlace) Kind() byte                   { return p.kind }
func (p *stubPlace) Subkind() byte                { return p.subkind }
func (p *stubPlace) Size() int                    { return p.size }
func (p *stubPlace) Location() (lat, lon float64) { return 41.9, -87.7 }

// classicCourse mirrors a typical influenza course: two latent days, two
// asymptomatic-infectious days, four symptomatic days.
func classicCourse() []TrajectoryPoint {
	return []TrajectoryPoint{
		{}, {},
		{Infectivity: 0.5}, {Infectivity: 0.5},
		{Infectivity: 1, Symptomaticity: 1},
		{Infectivity: 1, Symptomaticity: 1},
		{Infectivity: 1, Symptomaticity: 1},
		{Infectivity: 1, Symptomaticity: 1},
	}
}

func testDisease() *Profile {
	return &Profile{
		DiseaseID:   0,
		DiseaseName: "testflu",
		Model:       epidemic.ProgressionTrajectory,
		Recovered:   30,
		Symptomatic: 4,
		TrajectoryFn: func(int) *Trajectory {
			return epidemic.NewTrajectory(classicCourse())
		},
	}
}

func mustInfection(t interface {
	Helper()
	Fatalf(string, ...any)
}, d Disease, infector Host, host Host, place Place, day int) *Infection {
	t.Helper()
	inf, err := NewInfection(d, infector, host, place, day)
	if err != nil {
		t.Fatalf("new infection: %v", err)
	}
	return inf
}
