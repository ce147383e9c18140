package entity

import "time"

// OnboardingSession is a time-limited pending creator signup created
// before payment. It is consumed exactly once by the payment webhook:
// UsedAt transitions from nil to a timestamp and never changes again.
// A session past ExpiresAt is treated as not found.
type OnboardingSession struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	UsedAt       *time.Time
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

func (s *OnboardingSession) Used() bool { return s.UsedAt != nil }
