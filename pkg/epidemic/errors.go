package epidemic

import "fmt"

// ModificationError rejects an intervention requested outside its valid
// window or with invalid parameters. The infection's derived state is left
// untouched when one is returned.
type ModificationError struct {
	Op     string
	Reason string
}

func (e ModificationError) Error() string {
	return fmt.Sprintf("cannot modify %s: %s", e.Op, e.Reason)
}

// ConsistencyError signals an internal-consistency fault: either a caller
// violated an operation precondition the surrounding simulation is expected
// to uphold, or re-derivation produced dates that fail a blocking rule.
// It is not a recoverable user error.
type ConsistencyError struct {
	Op     string
	Reason string
	Result Result
}

func (e ConsistencyError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: consistency fault: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("%s: derived dates blocked by consistency rules", e.Op)
}
