package version

import "testing"

func TestResolve_UnknownModule(t *testing.T) {
	if got := Resolve("example.com/does/not/exist"); got != Fallback {
		t.Errorf("expected fallback %q for unknown module, got %q", Fallback, got)
	}
}

func TestResolve_DependencyModule(t *testing.T) {
	// testify is a dependency of this test binary, so build info should
	// carry a concrete version for it
	if got := Resolve("github.com/stretchr/testify"); got == Fallback {
		t.Skip("build info unavailable in this environment")
	}
}

func TestResolve_MainModule(t *testing.T) {
	// test binaries report the main module as (devel), which must map to
	// the fallback rather than leak into the User-Agent header
	got := Resolve("github.com/kkirsche/restmon")
	if got == "(devel)" || got == "" {
		t.Errorf("Resolve must never return %q", got)
	}
}
