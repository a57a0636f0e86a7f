package model

import "time"

// Defaults applied when the singleton settings record is absent.
const (
	DefaultPaymentEnabled       = true
	DefaultCourseDurationMonths = 5
)

// PolicySettings is the global, admin-edited policy singleton: whether paid
// checkout is active (gates the free-enrollment path) and how many calendar
// months a new grant lasts.
type PolicySettings struct {
	IsPaymentEnabled     bool      `json:"isPaymentEnabled"`
	CourseDurationMonths int       `json:"courseDurationMonths"`
	UpdatedAt            time.Time `json:"-"`
}

// DefaultPolicySettings returns the values used when no record exists yet.
func DefaultPolicySettings() PolicySettings {
	return PolicySettings{
		IsPaymentEnabled:     DefaultPaymentEnabled,
		CourseDurationMonths: DefaultCourseDurationMonths,
	}
}

// Normalize clamps out-of-range values back to usable defaults.
func (s PolicySettings) Normalize() PolicySettings {
	if s.CourseDurationMonths < 1 {
		s.CourseDurationMonths = DefaultCourseDurationMonths
	}
	return s
}
