package domain

// RoleOwner is the only account role. Owners verify joins and hand out
// rewards for their own gym.
const RoleOwner = "OWNER"

const (
	RewardStatusUnlocked = "UNLOCKED"
	RewardStatusGiven    = "GIVEN"
)

// Referral code shape: 8 characters drawn from ReferralCodeAlphabet.
const (
	ReferralCodeLength   = 8
	ReferralCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	MaxCodeAttempts      = 10
)

// SessionCookie carries the access token for browser clients.
const SessionCookie = "session"
