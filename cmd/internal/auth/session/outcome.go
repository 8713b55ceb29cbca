package session

// Outcome is the result of validating a credential.
type Outcome int

const (
	// OutcomeInvalid means the credential is absent, malformed, unknown, expired or revoked.
	OutcomeInvalid Outcome = iota
	// OutcomeValid means the store reported a currently valid session for the credential.
	OutcomeValid
	// OutcomeStoreUnavailable means the lookup could not be completed; validity is unknown.
	OutcomeStoreUnavailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeStoreUnavailable:
		return "store_unavailable"
	default:
		return "unknown"
	}
}
