package consent

import (
	"testing"
)

func TestRegistrySelectFor(t *testing.T) {
	registry := DefaultRegistry()

	tests := []struct {
		name        string
		stored      []byte
		wantVersion string
		wantFound   bool
	}{
		{"absent", nil, checksumV2Version, true},
		{"empty", []byte{}, checksumV2Version, true},
		{"v1", []byte("v1;deadbeef"), checksumV1Version, true},
		{"v2", []byte("v2;deadbeef"), checksumV2Version, true},
		{"v2 with aspsp segment", []byte("v2;deadbeef;e30="), checksumV2Version, true},
		{"garbage without delimiter", []byte("garbage-no-delimiter"), checksumV2Version, true},
		{"empty version segment", []byte(";deadbeef"), checksumV2Version, true},
		{"empty digest segment", []byte("v1;"), checksumV2Version, true},
		{"unknown version", []byte("v99;abc"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alg, found := registry.SelectFor(tt.stored)
			if found != tt.wantFound {
				t.Fatalf("SelectFor(%q) found = %v, want %v", tt.stored, found, tt.wantFound)
			}
			if !found {
				if alg != nil {
					t.Errorf("SelectFor(%q) returned %v for an unknown version", tt.stored, alg)
				}
				return
			}
			if alg.Version() != tt.wantVersion {
				t.Errorf("SelectFor(%q) = %s, want %s", tt.stored, alg.Version(), tt.wantVersion)
			}
		})
	}
}

func TestRegistryNewestAndVersions(t *testing.T) {
	registry := DefaultRegistry()

	if registry.Newest().Version() != checksumV2Version {
		t.Errorf("Newest() = %s, want %s", registry.Newest().Version(), checksumV2Version)
	}

	versions := registry.Versions()
	if len(versions) != 2 || versions[0] != checksumV1Version || versions[1] != checksumV2Version {
		t.Errorf("Versions() = %v", versions)
	}
}

type badVersionAlgorithm struct{ ChecksumV1 }

func (badVersionAlgorithm) Version() string { return "v;3" }

func TestNewRegistryRejectsInvalidConfigurations(t *testing.T) {
	if _, err := NewRegistry(nil); err == nil {
		t.Error("expected error for nil newest algorithm")
	}
	if _, err := NewRegistry(ChecksumV2{}, ChecksumV2{}); err == nil {
		t.Error("expected error for duplicate versions")
	}
	if _, err := NewRegistry(badVersionAlgorithm{}); err == nil {
		t.Error("expected error for a version containing the delimiter")
	}
}

func TestRegistryDescribe(t *testing.T) {
	registry := DefaultRegistry()

	tests := []struct {
		name      string
		stored    string
		want      ChecksumDescription
		wantExtra int
	}{
		{"v1", "v1;deadbeef", ChecksumDescription{Wellformed: true, Version: "v1", Digest: "deadbeef", Known: true}, 0},
		{"v2 with aspsp segment", "v2;deadbeef;e30=", ChecksumDescription{Wellformed: true, Version: "v2", Digest: "deadbeef", Known: true}, 1},
		{"unknown version", "v99;abc", ChecksumDescription{Wellformed: true, Version: "v99", Digest: "abc"}, 0},
		{"malformed", "no-delimiter", ChecksumDescription{}, 0},
		{"empty", "", ChecksumDescription{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := registry.Describe([]byte(tt.stored))
			if got.Wellformed != tt.want.Wellformed || got.Version != tt.want.Version ||
				got.Digest != tt.want.Digest || got.Known != tt.want.Known {
				t.Errorf("Describe(%q) = %+v, want %+v", tt.stored, got, tt.want)
			}
			if len(got.Extra) != tt.wantExtra {
				t.Errorf("Describe(%q) extra segments = %v, want %d", tt.stored, got.Extra, tt.wantExtra)
			}
		})
	}
}
