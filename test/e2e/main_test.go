package e2e

import (
	"os"
	"os/exec"
	"testing"
)

var dreamspaceBin string

func TestMain(m *testing.M) {
	dreamspaceBin = envOrLookPath("DREAMSPACE_BIN", "dreamspace")
	os.Exit(m.Run())
}

func envOrLookPath(envVar, name string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	if path, err := exec.LookPath(name); err == nil {
		return path
	}
	return ""
}
