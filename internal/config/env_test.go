package config_test

import (
	"os"
	"testing"
)

// unsetenv removes key for the duration of the test and restores it after.
// t.Setenv registers the restore; os.Unsetenv then removes the variable.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}
