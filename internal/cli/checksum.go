package cli

import (
	"fmt"
	"strings"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/consent"
	"github.com/spf13/cobra"
)

var checksumCmd = &cobra.Command{
	Use:   "checksum",
	Short: "Work with consent checksum values",
}

var checksumInspectCmd = &cobra.Command{
	Use:   "inspect <checksum>",
	Short: "Show the parts of a stored consent checksum",
	Long: `Parse a checksum value as stored in the consents table (<version>;<digest>[;<aspsp digests>])
and report whether this binary knows its version.

Example:
  xs2a-cli checksum inspect 'v2;q1w2e3...;eyJpYmFuIjoi...'`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{offlineAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := consent.DefaultRegistry()
		d := registry.Describe([]byte(args[0]))

		out := cmd.OutOrStdout()
		if !d.Wellformed {
			return fmt.Errorf("not a checksum: expected <version>%s<digest>", consent.ChecksumDelimiter)
		}
		fmt.Fprintf(out, "version: %s\n", d.Version)
		fmt.Fprintf(out, "digest:  %s\n", d.Digest)
		if len(d.Extra) > 0 {
			fmt.Fprintf(out, "extra:   %s\n", strings.Join(d.Extra, consent.ChecksumDelimiter))
		}
		if d.Known {
			fmt.Fprintln(out, "known:   yes")
		} else {
			fmt.Fprintf(out, "known:   no (this binary knows %s)\n", strings.Join(registry.Versions(), ", "))
		}
		return nil
	},
}

func init() {
	checksumCmd.AddCommand(checksumInspectCmd)
}
