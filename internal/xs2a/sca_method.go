package xs2a

// AuthenticationObject describes an SCA method offered to the PSU.
type AuthenticationObject struct {
	AuthenticationType     string `json:"authenticationType"`
	AuthenticationVersion  string `json:"authenticationVersion,omitempty"`
	AuthenticationMethodID string `json:"authenticationMethodId"`
	Name                   string `json:"name,omitempty"`
	Explanation            string `json:"explanation,omitempty"`

	// Decoupled methods are confirmed by the PSU out of band (e.g. in a banking app)
	Decoupled bool `json:"decoupled,omitempty"`
}

// FindMethod returns the method with the given id.
func FindMethod(methods []AuthenticationObject, methodID string) (AuthenticationObject, bool) {
	for _, m := range methods {
		if m.AuthenticationMethodID == methodID {
			return m, true
		}
	}
	return AuthenticationObject{}, false
}

// ChallengeData is returned to the PSU when an authorisation code has been sent.
type ChallengeData struct {
	Image                 []byte   `json:"image,omitempty"`
	Data                  []string `json:"data,omitempty"`
	ImageLink             string   `json:"imageLink,omitempty"`
	OtpMaxLength          int      `json:"otpMaxLength,omitempty"`
	OtpFormat             string   `json:"otpFormat,omitempty"`
	AdditionalInformation string   `json:"additionalInformation,omitempty"`
}
