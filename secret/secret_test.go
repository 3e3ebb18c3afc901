package secret

import (
	"strings"
	"testing"
)

type mapProvider map[string]string

func (m mapProvider) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

func TestExpandStrict(t *testing.T) {
	p := mapProvider{"HOST": "db.internal", "PORT": "9400"}

	got, err := expandStrict("${HOST}:${PORT}", p)
	if err != nil {
		t.Fatalf("expandStrict() error = %v", err)
	}
	if got != "db.internal:9400" {
		t.Errorf("expandStrict() = %q, want %q", got, "db.internal:9400")
	}
}

func TestExpandStrict_Missing(t *testing.T) {
	p := mapProvider{"HOST": "db.internal"}

	_, err := expandStrict("${HOST}:${PORT}", p)
	if err == nil {
		t.Fatal("expandStrict() error = nil, want missing-variable error")
	}
	if !strings.Contains(err.Error(), "PORT") {
		t.Errorf("error %q does not name the missing variable", err)
	}
}

func TestExpandStrict_EscapedDollar(t *testing.T) {
	got, err := expandStrict("pass$$word", mapProvider{})
	if err != nil {
		t.Fatalf("expandStrict() error = %v", err)
	}
	if got != "pass$word" {
		t.Errorf("expandStrict() = %q, want %q", got, "pass$word")
	}
}

func TestExpandStrict_NoReferences(t *testing.T) {
	got, err := expandStrict("plain-endpoint:42", mapProvider{})
	if err != nil {
		t.Fatalf("expandStrict() error = %v", err)
	}
	if got != "plain-endpoint:42" {
		t.Errorf("expandStrict() = %q, want input unchanged", got)
	}
}

func TestResolveRef(t *testing.T) {
	p := mapProvider{"API_TOKEN": "s3cret"}

	got, err := ResolveRef(p, "env:API_TOKEN")
	if err != nil {
		t.Fatalf("ResolveRef() error = %v", err)
	}
	if got != "s3cret" {
		t.Errorf("ResolveRef() = %q, want %q", got, "s3cret")
	}
}

func TestResolveRef_Literal(t *testing.T) {
	got, err := ResolveRef(mapProvider{}, "literal-credential")
	if err != nil {
		t.Fatalf("ResolveRef() error = %v", err)
	}
	if got != "literal-credential" {
		t.Errorf("ResolveRef() = %q, want literal passthrough", got)
	}
}

func TestResolveRef_Missing(t *testing.T) {
	if _, err := ResolveRef(mapProvider{}, "env:NOPE"); err == nil {
		t.Error("ResolveRef() error = nil, want error for unset variable")
	}
}

func TestResolveRef_EmptyName(t *testing.T) {
	if _, err := ResolveRef(mapProvider{}, "env:"); err == nil {
		t.Error("ResolveRef() error = nil, want error for empty reference")
	}
}

func TestExpandEnvStrict_UsesEnvironment(t *testing.T) {
	t.Setenv("CONNGUARD_TEST_HOST", "example.test")

	got, err := ExpandEnvStrict("${CONNGUARD_TEST_HOST}:7000")
	if err != nil {
		t.Fatalf("ExpandEnvStrict() error = %v", err)
	}
	if got != "example.test:7000" {
		t.Errorf("ExpandEnvStrict() = %q, want %q", got, "example.test:7000")
	}
}
