package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestChecksumInspect(t *testing.T) {
	tests := []struct {
		name      string
		checksum  string
		wantErr   bool
		wantLines []string
	}{
		{
			name:      "known version",
			checksum:  "v2;abc;e30=",
			wantLines: []string{"version: v2", "digest:  abc", "extra:   e30=", "known:   yes"},
		},
		{
			name:      "unknown version",
			checksum:  "v9;abc",
			wantLines: []string{"version: v9", "known:   no (this binary knows v1, v2)"},
		},
		{
			name:     "malformed",
			checksum: "abc",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetErr(&out)
			rootCmd.SetArgs([]string{"checksum", "inspect", tt.checksum})
			t.Cleanup(func() { rootCmd.SetArgs(nil) })

			err := rootCmd.Execute()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, line := range tt.wantLines {
				if !strings.Contains(out.String(), line) {
					t.Errorf("output %q does not contain %q", out.String(), line)
				}
			}
		})
	}
}
