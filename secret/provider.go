package secret

import (
	"fmt"
	"os"
	"strings"
)

// Provider looks up secret values by name.
//
// Implementations must be safe for concurrent use and must not log
// resolved values.
type Provider interface {
	Lookup(name string) (string, bool)
}

// EnvProvider resolves secrets from the process environment.
type EnvProvider struct{}

// Lookup returns the value of the named environment variable.
func (EnvProvider) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// ResolveRef resolves a credential reference of the form "env:NAME"
// through p. A string without the "env:" prefix is returned as-is: it is
// a literal credential, not a reference.
func ResolveRef(p Provider, ref string) (string, error) {
	name, ok := strings.CutPrefix(ref, "env:")
	if !ok {
		return ref, nil
	}
	if name == "" {
		return "", fmt.Errorf("empty env reference")
	}
	val, ok := p.Lookup(name)
	if !ok {
		return "", fmt.Errorf("environment variable %s is not set", name)
	}
	return val, nil
}
