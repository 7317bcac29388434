package core

import "epicore/pkg/epidemic"

type (
	Disease          = epidemic.Disease
	Profile          = epidemic.Profile
	Thresholds       = epidemic.Thresholds
	ProgressionModel = epidemic.ProgressionModel
	Trajectory       = epidemic.Trajectory
	TrajectoryPoint  = epidemic.TrajectoryPoint
	TransitionDates  = epidemic.TransitionDates
	TransitionEvent  = epidemic.TransitionEvent
	InfectionRecord  = epidemic.InfectionRecord
	Result           = epidemic.Result
)

const Never = epidemic.Never

const (
	ProgressionTrajectory = epidemic.ProgressionTrajectory
	ProgressionFixedDelay = epidemic.ProgressionFixedDelay
)

const (
	EventBecameInfectious   = epidemic.EventBecameInfectious
	EventBecameSymptomatic  = epidemic.EventBecameSymptomatic
	EventBecameAsymptomatic = epidemic.EventBecameAsymptomatic
	EventRecovered          = epidemic.EventRecovered
	EventBecameImmune       = epidemic.EventBecameImmune
)
