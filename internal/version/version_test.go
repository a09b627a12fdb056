package version

import (
	"strings"
	"testing"
)

func TestString_CarriesBuildMetadata(t *testing.T) {
	s := String()

	for _, want := range []string{"naveeka", Version, Commit, Date} {
		if !strings.Contains(s, want) {
			t.Errorf("banner %q missing %q", s, want)
		}
	}
}
