package sca

import (
	"slices"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// validScaTransitions lists the statuses reachable from each status.
// A self loop is a retryable attempt failure (e.g. a wrong TAN) and carries an error holder.
// Terminal statuses have no entry.
var validScaTransitions = map[xs2a.ScaStatus][]xs2a.ScaStatus{
	xs2a.ScaStatusReceived: {
		xs2a.ScaStatusReceived,
		xs2a.ScaStatusPsuIdentified,
		xs2a.ScaStatusFailed,
		xs2a.ScaStatusExempted,
	},
	xs2a.ScaStatusPsuIdentified: {
		xs2a.ScaStatusPsuIdentified,
		xs2a.ScaStatusPsuAuthenticated,
		xs2a.ScaStatusScaMethodSelected, // single SCA method is selected automatically
		xs2a.ScaStatusFailed,
		xs2a.ScaStatusExempted,
	},
	xs2a.ScaStatusPsuAuthenticated: {
		xs2a.ScaStatusPsuAuthenticated,
		xs2a.ScaStatusScaMethodSelected,
		xs2a.ScaStatusFailed,
		xs2a.ScaStatusExempted,
	},
	xs2a.ScaStatusScaMethodSelected: {
		xs2a.ScaStatusScaMethodSelected,
		xs2a.ScaStatusStarted,
		xs2a.ScaStatusFinalised,
		xs2a.ScaStatusFailed,
		xs2a.ScaStatusExempted,
	},
	xs2a.ScaStatusStarted: {
		xs2a.ScaStatusStarted,
		xs2a.ScaStatusFinalised,
		xs2a.ScaStatusFailed,
		xs2a.ScaStatusExempted,
	},
}

// IsValidScaTransition reports whether an authorisation may move from one status to another.
func IsValidScaTransition(from, to xs2a.ScaStatus) bool {
	return slices.Contains(validScaTransitions[from], to)
}
