// Package xs2a defines the vocabulary shared by the consent, payment and SCA packages:
// status values, PSU identification data, SCA methods, account references and
// the error holder that carries business rule failures back to the TPP.
//
// The string values of the status types are the values used on the XS2A interface
// (e.g. ScaStatusPsuIdentified is "psuIdentified").
package xs2a
