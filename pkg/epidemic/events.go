package epidemic

// TransitionEvent identifies a state change observed by the daily update.
// Events are returned to the caller for dispatch to the host; the engine
// itself never calls back into host state.
type TransitionEvent string

// Transition events in their mandated dispatch order. A single day may carry
// more than one when derived dates coincide.
const (
	EventBecameInfectious   TransitionEvent = "became_infectious"
	EventBecameSymptomatic  TransitionEvent = "became_symptomatic"
	EventBecameAsymptomatic TransitionEvent = "became_asymptomatic"
	EventRecovered          TransitionEvent = "recovered"
	EventBecameImmune       TransitionEvent = "became_immune"
)

// TransitionOrder lists all events in dispatch order.
func TransitionOrder() []TransitionEvent {
	return []TransitionEvent{
		EventBecameInfectious,
		EventBecameSymptomatic,
		EventBecameAsymptomatic,
		EventRecovered,
		EventBecameImmune,
	}
}
