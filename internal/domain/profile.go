package domain

import "time"

// UserProfileID is the fixed identifier of the singleton profile record
const UserProfileID = "user-1"

// SettingOnboardingComplete marks that the first-run profile form was submitted
const SettingOnboardingComplete = "onboardingComplete"

// UserProfile is the single local user of the notebook
type UserProfile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Occupation string    `json:"occupation,omitempty"`
	Purpose    string    `json:"purpose,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Setting is a flat key/value pair. Value holds any JSON-encodable value.
type Setting struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Bool returns the setting value as a bool. Non-bool values read as false.
func (s *Setting) Bool() bool {
	if s == nil {
		return false
	}
	v, ok := s.Value.(bool)
	return ok && v
}
