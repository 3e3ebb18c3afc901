package guard

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonwraymond/connguard/secret"
)

// Target identifies the remote endpoint a guard connects to. It is
// resolved and stored once at Initialize and never mutated afterwards.
type Target struct {
	// Endpoint is the address of the remote service. ${VAR} references
	// are expanded from the environment; a missing variable fails
	// Initialize.
	Endpoint string

	// Credential is an optional secret presented to the remote service.
	// An "env:NAME" value resolves through the environment; anything else
	// is taken literally. A credential that parses as a JWT is rejected
	// when its expiry has already passed.
	Credential string
}

// resolve expands references and validates the result. The returned
// target is what the guard stores and hands to Connect.
func (t Target) resolve(now time.Time) (Target, error) {
	endpoint, err := secret.ExpandEnvStrict(t.Endpoint)
	if err != nil {
		return Target{}, fmt.Errorf("%w: endpoint: %v", ErrInvalidTarget, err)
	}
	if strings.TrimSpace(endpoint) == "" {
		return Target{}, fmt.Errorf("%w: endpoint is empty", ErrInvalidTarget)
	}

	cred, err := secret.ResolveRef(secret.EnvProvider{}, t.Credential)
	if err != nil {
		return Target{}, fmt.Errorf("%w: credential: %v", ErrInvalidTarget, err)
	}
	if err := checkCredentialExpiry(cred, now); err != nil {
		return Target{}, err
	}

	return Target{Endpoint: endpoint, Credential: cred}, nil
}

// checkCredentialExpiry rejects bearer tokens that are already expired.
// The signature is deliberately not verified; that is the remote
// service's job. Opaque (non-JWT) credentials pass through untouched, as
// do tokens without an exp claim.
func checkCredentialExpiry(cred string, now time.Time) error {
	if strings.Count(cred, ".") != 2 {
		return nil
	}

	tok, _, err := jwt.NewParser().ParseUnverified(cred, jwt.MapClaims{})
	if err != nil {
		// Dotted but not a JWT; treat as opaque.
		return nil
	}

	exp, err := tok.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if exp.Before(now) {
		return fmt.Errorf("%w: bearer token expired at %s", ErrCredentialExpired, exp.UTC().Format(time.RFC3339))
	}
	return nil
}
