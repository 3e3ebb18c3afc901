package secret

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var braceRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandEnvStrict expands ${VAR} references in s from the environment.
//
// Unlike os.ExpandEnv, a reference to a variable that is not set is an
// error rather than a silent empty string: a connection string with a
// missing variable should fail startup, not dial a mangled endpoint.
// `$$` emits a literal `$`.
func ExpandEnvStrict(s string) (string, error) {
	return expandStrict(s, EnvProvider{})
}

func expandStrict(s string, p Provider) (string, error) {
	// Hide escaped dollars from the reference scan.
	const escaped = "\x00connguard-dollar\x00"
	masked := strings.ReplaceAll(s, "$$", escaped)

	var missing []string
	out := braceRefPattern.ReplaceAllStringFunc(masked, func(ref string) string {
		name := ref[2 : len(ref)-1]
		val, ok := p.Lookup(name)
		if !ok {
			missing = append(missing, name)
			return ref
		}
		return val
	})

	if len(missing) > 0 {
		sort.Strings(missing)
		missing = dedupe(missing)
		return "", fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return strings.ReplaceAll(out, escaped, "$"), nil
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
