package shared

import (
	"errors"
	"testing"
)

func TestOpenBrowser(t *testing.T) {
	t.Run("unknown platform", func(t *testing.T) {
		orig := getRuntime
		defer func() { getRuntime = orig }()
		getRuntime = func() string { return "plan9" }

		err := OpenBrowser("https://example.com")
		if !errors.Is(err, ErrCapabilityUnavailable) {
			t.Errorf("expected ErrCapabilityUnavailable, got %v", err)
		}
	})

	t.Run("known platforms have a launcher", func(t *testing.T) {
		for _, rt := range []string{"darwin", "linux", "windows"} {
			if args := browserCommands[rt]; len(args) == 0 {
				t.Errorf("no launcher for %s", rt)
			}
		}
	})
}
