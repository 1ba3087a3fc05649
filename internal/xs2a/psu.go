package xs2a

import "strings"

// PsuIdData identifies the PSU. Every field is optional.
type PsuIdData struct {
	PsuID              string `json:"psuId,omitempty"`
	PsuIDType          string `json:"psuIdType,omitempty"`
	PsuCorporateID     string `json:"psuCorporateId,omitempty"`
	PsuCorporateIDType string `json:"psuCorporateIdType,omitempty"`
	PsuIPAddress       string `json:"psuIpAddress,omitempty"`
}

// IsEmpty reports whether no identifying attribute is present.
// The IP address alone does not identify a PSU.
func (p PsuIdData) IsEmpty() bool {
	return strings.TrimSpace(p.PsuID) == "" && strings.TrimSpace(p.PsuCorporateID) == ""
}

// SamePsu reports whether both values identify the same PSU.
// Type attributes are only compared when both sides carry them.
func (p PsuIdData) SamePsu(other PsuIdData) bool {
	if p.PsuID != other.PsuID || p.PsuCorporateID != other.PsuCorporateID {
		return false
	}
	if p.PsuIDType != "" && other.PsuIDType != "" && p.PsuIDType != other.PsuIDType {
		return false
	}
	return true
}
