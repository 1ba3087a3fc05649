package consent

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// DateLayout is the format of ValidUntil and of the usage counter keys.
const DateLayout = "2006-01-02"

// Type is the kind of consent.
type Type string

const (
	TypeAIS       Type = "AIS"
	TypePIISAspsp Type = "PIIS_ASPSP"
	TypePIISTpp   Type = "PIIS_TPP"
)

func (t Type) Validate() error {
	switch t {
	case TypeAIS, TypePIISAspsp, TypePIISTpp:
		return nil
	}
	return fmt.Errorf("unknown consent type %q", string(t))
}

// ServiceType returns the business domain the consent belongs to.
func (t Type) ServiceType() xs2a.ServiceType {
	if t == TypeAIS {
		return xs2a.ServiceTypeAIS
	}
	return xs2a.ServiceTypePIIS
}

// Consent is an AIS or PIIS consent.
type Consent struct {
	ID     string
	Type   Type
	Status xs2a.ConsentStatus
	TppID  string

	// PsuData lists the PSUs that take part in authorising the consent
	PsuData []xs2a.PsuIdData

	RecurringIndicator       bool
	CombinedServiceIndicator bool
	ValidUntil               time.Time
	FrequencyPerDay          int

	// TppAccess is the access requested by the TPP, AspspAccess the access granted by the ASPSP
	TppAccess   xs2a.AccountAccess
	AspspAccess xs2a.AccountAccess

	MultilevelScaRequired bool

	// Checksum seals the access grant once the consent is valid (nil before sealing)
	Checksum []byte

	// Authorisations holds the ids of the authorisations started for this consent
	Authorisations []string

	// UsageCounters maps a day (DateLayout) to the number of calls left on that day
	UsageCounters map[string]int

	CreatedAt       time.Time
	StatusChangedAt time.Time
}

// Clone returns a deep copy of the consent.
func (c *Consent) Clone() *Consent {
	if c == nil {
		return nil
	}
	out := *c
	out.PsuData = slices.Clone(c.PsuData)
	out.TppAccess = c.TppAccess.Clone()
	out.AspspAccess = c.AspspAccess.Clone()
	out.Checksum = slices.Clone(c.Checksum)
	out.Authorisations = slices.Clone(c.Authorisations)
	out.UsageCounters = maps.Clone(c.UsageCounters)
	return &out
}

// IsSealed reports whether the consent status means its access grant has been sealed.
func (c *Consent) IsSealed() bool {
	return wasSealed(c.Status)
}

// ValidUntilDate returns ValidUntil formatted as a date.
func (c *Consent) ValidUntilDate() string {
	if c.ValidUntil.IsZero() {
		return ""
	}
	return c.ValidUntil.UTC().Format(DateLayout)
}

// IsExpiredOn reports whether the consent validity ended before the given day.
func (c *Consent) IsExpiredOn(day time.Time) bool {
	if c.ValidUntil.IsZero() {
		return false
	}
	return c.ValidUntil.Before(startOfDay(day))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
