package epidemic

// Thresholds are the disease-specific cutoffs above which a trajectory sample
// counts as infective or symptomatic. They are immutable for the duration of
// a simulation and safe for concurrent reads.
type Thresholds struct {
	Infectivity    float64 `json:"infectivity"`
	Symptomaticity float64 `json:"symptomaticity"`
}

// ProgressionModel selects how an infection progresses. It is decided once at
// disease configuration time; the engine never dispatches on disease names.
type ProgressionModel string

const (
	// ProgressionTrajectory drives transitions from a sampled trajectory.
	ProgressionTrajectory ProgressionModel = "trajectory"
	// ProgressionFixedDelay fires a single infectious-onset notification a
	// fixed grace period after exposure; no further dated transitions are
	// modeled. Used for chronic, lifelong conditions.
	ProgressionFixedDelay ProgressionModel = "fixed_delay"
)

// Disease supplies the read-only parameterization an infection consumes. All
// methods must be safe for concurrent use.
type Disease interface {
	ID() int
	Name() string
	Thresholds() Thresholds
	Progression() ProgressionModel

	// NewTrajectory produces the initial trajectory for a host of the given
	// integer age. Fixed-delay diseases may return nil.
	NewTrajectory(age int) *Trajectory

	// DaysRecovered is the post-recovery immunity period; negative means
	// immunity never wanes.
	DaysRecovered() int
	// DaysSymptomatic is the canonical symptomatic duration, used when an
	// intervention toggles symptom development on.
	DaysSymptomatic() int

	CaseFatalityEnabled() bool
	// Fatal evaluates the case-fatality model for the given age (or
	// chronic-condition-aware age surrogate), current symptom score, and
	// days since symptom onset.
	Fatal(age float64, symptoms float64, daysSymptomatic int) bool
	// ImmunityOnInfection reports whether an infection at the given real age
	// produces an immune response. Evaluated once, at exposure.
	ImmunityOnInfection(age float64) bool
}

// Profile is a concrete Disease built from plain fields and optional hooks.
// Zero-value hooks fall back to safe defaults: no fatality, universal immune
// response, and a nil trajectory. Set Recovered negative for immunity that
// never wanes.
type Profile struct {
	DiseaseID    int
	DiseaseName  string
	Cutoffs      Thresholds
	Model        ProgressionModel
	Recovered    int
	Symptomatic  int
	CaseFatality bool

	TrajectoryFn func(age int) *Trajectory
	FatalFn      func(age float64, symptoms float64, daysSymptomatic int) bool
	ImmunityFn   func(age float64) bool
}

// ID implements Disease.
func (p *Profile) ID() int { return p.DiseaseID }

// Name implements Disease.
func (p *Profile) Name() string { return p.DiseaseName }

// Thresholds implements Disease.
func (p *Profile) Thresholds() Thresholds { return p.Cutoffs }

// Progression implements Disease; an unset model means trajectory-driven.
func (p *Profile) Progression() ProgressionModel {
	if p.Model == "" {
		return ProgressionTrajectory
	}
	return p.Model
}

// NewTrajectory implements Disease.
func (p *Profile) NewTrajectory(age int) *Trajectory {
	if p.TrajectoryFn == nil {
		return nil
	}
	return p.TrajectoryFn(age)
}

// DaysRecovered implements Disease.
func (p *Profile) DaysRecovered() int { return p.Recovered }

// DaysSymptomatic implements Disease.
func (p *Profile) DaysSymptomatic() int { return p.Symptomatic }

// CaseFatalityEnabled implements Disease.
func (p *Profile) CaseFatalityEnabled() bool { return p.CaseFatality }

// Fatal implements Disease.
func (p *Profile) Fatal(age float64, symptoms float64, daysSymptomatic int) bool {
	if p.FatalFn == nil {
		return false
	}
	return p.FatalFn(age, symptoms, daysSymptomatic)
}

// ImmunityOnInfection implements Disease.
func (p *Profile) ImmunityOnInfection(age float64) bool {
	if p.ImmunityFn == nil {
		return true
	}
	return p.ImmunityFn(age)
}
