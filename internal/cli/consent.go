package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

var consentCmd = &cobra.Command{
	Use:   "consent",
	Short: "Consent maintenance",
}

var consentVerifyCmd = &cobra.Command{
	Use:   "verify <consent-id>",
	Short: "Verify the stored checksum of a consent",
	Long: `Recalculate the checksum of a stored consent and compare it with the stored value.

Nothing is written. The command fails when the checksum does not match; a checksum written with a
version this binary does not know is reported but not treated as a failure.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := openPool(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		report, err := newConsentService(pool).VerifyChecksum(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "consent:  %s\n", report.ConsentID)
		fmt.Fprintf(out, "status:   %s\n", report.Status)
		switch {
		case !report.Sealed:
			fmt.Fprintln(out, "checksum: none (the consent has not been authorised)")
		case !report.Known:
			fmt.Fprintf(out, "checksum: version %s is unknown, not verified\n", report.Version)
		case report.Valid:
			fmt.Fprintf(out, "checksum: %s valid\n", report.Version)
		default:
			fmt.Fprintf(out, "checksum: %s DOES NOT MATCH\n", report.Version)
			appLogger.Warn("stored consent checksum does not match",
				slog.String("consent_id", report.ConsentID),
				slog.String("version", report.Version),
			)
			return fmt.Errorf("checksum of consent %s does not match", report.ConsentID)
		}
		return nil
	},
}

var consentExpireCmd = &cobra.Command{
	Use:   "expire",
	Short: "Expire consents whose validUntil date has passed",
	Long:  `Runs one pass of the consent expiry job (the server runs it every CONSENT_EXPIRY_INTERVAL)`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := openPool(cmd.Context())
		if err != nil {
			return err
		}
		defer pool.Close()

		expired, err := newConsentService(pool).ExpireConsents(cmd.Context())
		appLogger.Info("consent expiry finished", slog.Int("expired", expired))
		return err
	},
}

func init() {
	consentCmd.AddCommand(consentVerifyCmd)
	consentCmd.AddCommand(consentExpireCmd)
}
