package audit

import (
	"fmt"
	"strings"
)

// ReplayMismatchError indicates that strict replay detected divergence
// between the persisted decision and the recomputed one.
type ReplayMismatchError struct {
	// Expected holds the decision and confidence the payload claims.
	Expected map[string]interface{}

	// Actual holds the recomputed decision and confidence.
	Actual map[string]interface{}

	// Differences describes each diverging field.
	Differences []string
}

// Error returns the error message.
func (e *ReplayMismatchError) Error() string {
	return fmt.Sprintf("replay mismatch: %s", strings.Join(e.Differences, "; "))
}
