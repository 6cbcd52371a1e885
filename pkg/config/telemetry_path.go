package config

import (
	"os"
	"path/filepath"
	"strings"

	"vkclient/pkg/vkerrors"
)

// validateTelemetryFileParent enforces spec.md §4.4: a `file://` telemetry
// endpoint must resolve to an existing parent directory, failing fast
// rather than discovering the problem on the first flush attempt.
func validateTelemetryFileParent(endpoint string) error {
	path := strings.TrimPrefix(endpoint, "file://")
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return &vkerrors.ValidationError{Msg: "telemetry file parent directory does not exist: " + dir}
	}
	if !info.IsDir() {
		return &vkerrors.ValidationError{Msg: "telemetry file parent is not a directory: " + dir}
	}
	return nil
}
