package session

import (
	"context"
	"fmt"
	"time"

	"echo/cmd/security/token"
)

// Validator turns a presented credential into an Outcome.
//
// Invalid and StoreUnavailable are always distinct: a failed lookup must
// never masquerade as a revoked session, and callers deny on both.
type Validator struct {
	store   Store
	timeout time.Duration
}

// NewValidator constructs a Validator backed by store.
// A positive timeout bounds each store lookup on top of the caller's context.
func NewValidator(store Store, timeout time.Duration) *Validator {
	return &Validator{store: store, timeout: timeout}
}

// ValidateValue validates an untyped credential, as decoded from JSON.
// Anything other than a non-empty string is OutcomeInvalid without a store query.
func (v *Validator) ValidateValue(ctx context.Context, credential any) (Outcome, error) {
	s, ok := credential.(string)
	if !ok {
		return OutcomeInvalid, nil
	}
	return v.Validate(ctx, s)
}

// Validate checks credential against the store.
//
// The returned error is non-nil only with OutcomeStoreUnavailable; it wraps
// ErrStoreUnavailable and carries the underlying cause for server-side logs.
func (v *Validator) Validate(ctx context.Context, credential string) (Outcome, error) {
	if credential == "" {
		return OutcomeInvalid, nil
	}
	if v == nil || v.store == nil {
		return OutcomeStoreUnavailable, fmt.Errorf("%w: no store", ErrStoreUnavailable)
	}

	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	ok, err := v.store.ValidateSession(ctx, token.Digest(credential))
	if err != nil {
		return OutcomeStoreUnavailable, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if !ok {
		return OutcomeInvalid, nil
	}
	return OutcomeValid, nil
}
