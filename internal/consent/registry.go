package consent

import (
	"fmt"
	"slices"
	"strings"
)

// Registry resolves the checksum algorithm that produced a stored checksum.
//
// A Registry is immutable after construction and safe for concurrent use.
type Registry struct {
	newest     ChecksumAlgorithm
	algorithms map[string]ChecksumAlgorithm
}

// NewRegistry creates a registry. newest is used to seal consents, older versions are only used to verify.
func NewRegistry(newest ChecksumAlgorithm, older ...ChecksumAlgorithm) (*Registry, error) {
	if newest == nil {
		return nil, fmt.Errorf("newest checksum algorithm is required")
	}
	r := &Registry{
		newest:     newest,
		algorithms: make(map[string]ChecksumAlgorithm, len(older)+1),
	}
	for _, alg := range append([]ChecksumAlgorithm{newest}, older...) {
		version := alg.Version()
		if version == "" || strings.Contains(version, ChecksumDelimiter) {
			return nil, fmt.Errorf("invalid checksum algorithm version %q", version)
		}
		if _, exists := r.algorithms[version]; exists {
			return nil, fmt.Errorf("duplicate checksum algorithm version %q", version)
		}
		r.algorithms[version] = alg
	}
	return r, nil
}

// DefaultRegistry returns the registry of every algorithm version this build can verify,
// with v2 used for sealing.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(ChecksumV2{}, ChecksumV1{})
	if err != nil {
		panic(fmt.Sprintf("BUG: default checksum registry: %v", err))
	}
	return r
}

// Newest returns the algorithm used to seal consents.
func (r *Registry) Newest() ChecksumAlgorithm {
	return r.newest
}

// Versions returns the known version tags in sorted order.
func (r *Registry) Versions() []string {
	versions := make([]string, 0, len(r.algorithms))
	for v := range r.algorithms {
		versions = append(versions, v)
	}
	slices.Sort(versions)
	return versions
}

// SelectFor returns the algorithm that produced the stored checksum.
//
//   - absent checksum: the newest algorithm (nothing to verify yet)
//   - malformed checksum (no delimiter, empty segments): the newest algorithm
//   - known version tag: that algorithm
//   - unknown version tag: found is false. Callers must skip verification rather than treat this
//     as an integrity failure, the value was probably written by a newer deployment.
func (r *Registry) SelectFor(stored []byte) (alg ChecksumAlgorithm, found bool) {
	version, ok := ChecksumVersion(stored)
	if !ok {
		return r.newest, true
	}
	alg, found = r.algorithms[version]
	return alg, found
}

// ChecksumVersion returns the version tag of a stored checksum.
// ok is false when the checksum is absent or malformed.
func ChecksumVersion(stored []byte) (version string, ok bool) {
	segments, ok := splitChecksum(stored)
	if !ok {
		return "", false
	}
	return segments[0], true
}

// ChecksumDescription is the parsed form of a stored checksum.
type ChecksumDescription struct {
	// Wellformed is false when the value is not in the <version>;<digest>[;...] format
	Wellformed bool
	Version    string
	Digest     string

	// Extra holds the segments after the digest (v2 writes the ASPSP account digests there)
	Extra []string

	// Known reports whether the version is in the registry
	Known bool
}

// Describe parses a stored checksum without verifying it against a consent.
func (r *Registry) Describe(stored []byte) ChecksumDescription {
	segments, ok := splitChecksum(stored)
	if !ok {
		return ChecksumDescription{}
	}
	_, known := r.algorithms[segments[0]]
	return ChecksumDescription{
		Wellformed: true,
		Version:    segments[0],
		Digest:     segments[1],
		Extra:      segments[2:],
		Known:      known,
	}
}
