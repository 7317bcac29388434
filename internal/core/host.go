package core

// Host is the agent that owns infections. The engine reads demographic and
// state context from it and the service dispatches transition notifications
// to it; the infection state machine itself never calls the notification
// methods directly.
type Host interface {
	ID() int
	// Age is the integer age used for trajectory selection.
	Age() int
	// RealAge is the fractional age used for immunity determination.
	RealAge() float64
	// FatalityAge is the age surrogate fed to the case-fatality model; hosts
	// with chronic conditions may report an adjusted value.
	FatalityAge() float64

	IsInfectious(diseaseID int) bool
	Symptomatic() bool
	SickLeaveAvailable() bool
	ExposureDay(diseaseID int) int
	// PastInfections counts the host's historical infections with the given
	// disease, consumed by evolutionary tracking.
	PastInfections(diseaseID int) int

	// HomeLocation is the host's household latitude/longitude.
	HomeLocation() (lat, lon float64)
	// Position is the host's current coordinates, used for the infector
	// distance metric in verbose reports.
	Position() (x, y float64)
	AdminRegion() int64

	BecomeInfectious(d Disease)
	BecomeSymptomatic(d Disease)
	BecomeAsymptomatic(d Disease)
	Recover(d Disease)
	BecomeUnsusceptible(d Disease)
}

// Place is the exposure location collaborator. A nil Place means the exposure
// site is unknown (seeded cases).
type Place interface {
	ID() int
	// Kind is the single-character place classification.
	Kind() byte
	// Subkind refines group-quarters classifications; 'X' when not
	// applicable.
	Subkind() byte
	Size() int
	Location() (lat, lon float64)
}
