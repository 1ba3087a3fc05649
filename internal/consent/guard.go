package consent

import (
	"fmt"
	"log/slog"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

// IntegrityGuard verifies and reseals consent checksums on every write.
type IntegrityGuard struct {
	registry *Registry
	logger   *slog.Logger
}

func NewIntegrityGuard(registry *Registry, logger *slog.Logger) *IntegrityGuard {
	return &IntegrityGuard{
		registry: registry,
		logger:   logger,
	}
}

// WriteConsent prepares c for persistence. previousStatus is the status currently persisted
// (empty when the consent is being created) and c.Checksum must be the stored checksum.
//
// If the consent was sealed (previously valid or finalised) and its stored checksum was produced by a
// known algorithm, the incoming access grant is verified against it and a mismatch returns an
// integrity error. If the write moves the consent into valid from received or partially
// authorised, the checksum is recalculated with the newest algorithm.
//
// The returned consent is a copy; c is not modified.
func (g *IntegrityGuard) WriteConsent(c *Consent, previousStatus xs2a.ConsentStatus) (*Consent, error) {
	if c == nil {
		return nil, NewValidationError("consent is nil")
	}
	out := c.Clone()

	alg, found := g.registry.SelectFor(c.Checksum)

	if len(c.Checksum) > 0 && wasSealed(previousStatus) {
		switch {
		case !found:
			version, _ := ChecksumVersion(c.Checksum)
			g.logger.Warn("skipping consent checksum verification: unknown checksum version",
				slog.String("consent_id", c.ID),
				slog.String("checksum_version", version),
			)
		case !alg.Verify(c, c.Checksum):
			g.logger.Error("consent checksum mismatch",
				slog.String("consent_id", c.ID),
				slog.String("checksum_version", alg.Version()),
				slog.String("previous_status", string(previousStatus)),
				slog.String("status", string(c.Status)),
			)
			return nil, NewIntegrityError(fmt.Sprintf("consent %s access data does not match its %s checksum", c.ID, alg.Version()))
		}
	}

	if isNewlySealed(previousStatus, c.Status) {
		newest := g.registry.Newest()
		checksum, err := newest.Calculate(c)
		if err != nil {
			return nil, WrapInternalError(err, "failed to seal consent")
		}
		out.Checksum = checksum

		g.logger.Debug("consent sealed",
			slog.String("consent_id", c.ID),
			slog.String("checksum_version", newest.Version()),
		)
	}

	return out, nil
}

// wasSealed reports whether a consent in this status has a sealed access grant.
// received and partially authorised consents are still being authorised and may change their access.
func wasSealed(status xs2a.ConsentStatus) bool {
	return status == xs2a.ConsentStatusValid || status.IsFinalised()
}

func isNewlySealed(previous, next xs2a.ConsentStatus) bool {
	if next != xs2a.ConsentStatusValid {
		return false
	}
	return previous == xs2a.ConsentStatusReceived || previous == xs2a.ConsentStatusPartiallyAuthorised
}
