package xs2a

import "fmt"

// ScaStatus is the status of a single SCA attempt (an authorisation).
type ScaStatus string

const (
	ScaStatusReceived          ScaStatus = "received"
	ScaStatusPsuIdentified     ScaStatus = "psuIdentified"
	ScaStatusPsuAuthenticated  ScaStatus = "psuAuthenticated"
	ScaStatusScaMethodSelected ScaStatus = "scaMethodSelected"
	ScaStatusStarted           ScaStatus = "started"
	ScaStatusFinalised         ScaStatus = "finalised"
	ScaStatusFailed            ScaStatus = "failed"
	ScaStatusExempted          ScaStatus = "exempted"
)

var scaStatuses = []ScaStatus{
	ScaStatusReceived,
	ScaStatusPsuIdentified,
	ScaStatusPsuAuthenticated,
	ScaStatusScaMethodSelected,
	ScaStatusStarted,
	ScaStatusFinalised,
	ScaStatusFailed,
	ScaStatusExempted,
}

// ScaStatuses returns every SCA status in protocol order.
func ScaStatuses() []ScaStatus {
	out := make([]ScaStatus, len(scaStatuses))
	copy(out, scaStatuses)
	return out
}

// IsFinalised reports whether the status is terminal (finalised, failed or exempted).
func (s ScaStatus) IsFinalised() bool {
	switch s {
	case ScaStatusFinalised, ScaStatusFailed, ScaStatusExempted:
		return true
	}
	return false
}

func (s ScaStatus) Validate() error {
	for _, v := range scaStatuses {
		if s == v {
			return nil
		}
	}
	return fmt.Errorf("unknown sca status %q", string(s))
}

// ScaApproach is the SCA approach used by the ASPSP.
type ScaApproach string

const (
	ScaApproachEmbedded  ScaApproach = "EMBEDDED"
	ScaApproachDecoupled ScaApproach = "DECOUPLED"
	ScaApproachRedirect  ScaApproach = "REDIRECT"
)

// ServiceType is the business domain of a request: account information, payment initiation
// or confirmation of funds.
type ServiceType string

const (
	ServiceTypeAIS  ServiceType = "AIS"
	ServiceTypePIS  ServiceType = "PIS"
	ServiceTypePIIS ServiceType = "PIIS"
)

func (s ServiceType) Validate() error {
	switch s {
	case ServiceTypeAIS, ServiceTypePIS, ServiceTypePIIS:
		return nil
	}
	return fmt.Errorf("unknown service type %q", string(s))
}
