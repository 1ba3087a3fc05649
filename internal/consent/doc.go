// Package consent manages AIS and PIIS consents and protects their access grants against tampering.
//
// When a consent becomes valid its access grant is sealed with a versioned checksum.
// Every later write of a sealed consent is verified against that checksum by the IntegrityGuard,
// using the algorithm version that produced it, so consents sealed by older deployments stay verifiable.
//
// Stored checksums are self-describing:
//
//	<version>;<digest>[;<aspsp access digests>]
//
// e.g "v1;3q2+7w==" or "v2;3q2+7w==;eyJpYmFuIjoi...". New versions are added by implementing
// ChecksumAlgorithm and registering the implementation in DefaultRegistry.
//
// All writes go through Store.UpdateConsent which must serialize writers of the same consent,
// so the read-verify-reseal-write sequence is atomic.
package consent
