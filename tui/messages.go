package tui

import (
	"time"

	"github.com/bassamadnan/mailsort/classifier"
)

// classifiedMsg ends a classify request. It is sent on every path, so it is
// the one place the loading flag is cleared.
type classifiedMsg struct {
	results []classifier.Result
	err     error
}

// importedMsg carries message bodies fetched from Gmail.
type importedMsg struct {
	bodies []string
	err    error
}

// A message for timed status updates.
type StatusTickMsg struct{ Time time.Time }

// Message to clear a temporary status message after a timeout. seq names the
// status it was scheduled for.
type clearTempStatusMsg struct{ seq int }
