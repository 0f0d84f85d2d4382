package credstore

import (
	"encoding/json"

	"github.com/spec-kit/hotel-front/internal/identity"
)

func encodeProfile(profile identity.Profile) (string, error) {
	raw, err := json.Marshal(profile)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// decodeProfile parses a stored profile, rejecting empty payloads, the
// literal "null" and any profile missing its id.
func decodeProfile(raw string) (identity.Profile, bool) {
	if raw == "" || raw == "null" {
		return identity.Profile{}, false
	}
	var profile identity.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return identity.Profile{}, false
	}
	if profile.ID == "" {
		return identity.Profile{}, false
	}
	return profile, true
}
