package domain

// UIMode selects how the provider presents the checkout to the payer
type UIMode string

const (
	// EMBEDDED - frontend renders the provider form inline using the client secret
	UIModeEmbedded UIMode = "embedded"
	// HOSTED - provider hosts the whole checkout page; payer is redirected to URL
	UIModeHosted UIMode = "hosted"
)

// IsValid checks if the UI mode is one we support
func (m UIMode) IsValid() bool {
	switch m {
	case UIModeEmbedded, UIModeHosted:
		return true
	default:
		return false
	}
}

// SessionStatus values reported by the provider for a checkout session
type SessionStatus string

const (
	SessionStatusOpen     SessionStatus = "open"
	SessionStatusComplete SessionStatus = "complete"
	SessionStatusExpired  SessionStatus = "expired"
)
