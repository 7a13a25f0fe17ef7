package testutil

import (
	"os"
	"testing"
)

const envLongTests = "HASHCORE_LONG"

// SkipLong skips t unless long running tests are enabled through the
// HASHCORE_LONG environment variable, or when running with -short.
func SkipLong(t *testing.T) {
	if testing.Short() || os.Getenv(envLongTests) == "" {
		t.Skip("Skip long test, set " + envLongTests + " to run")
	}
}
