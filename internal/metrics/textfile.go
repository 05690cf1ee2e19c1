package metrics

import (
	"os"
	"path/filepath"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/seekinject/internal/foundation/errors"
)

// WriteTextfile writes every metric gathered from g to path in the
// Prometheus text exposition format. The parent directory is created if needed.
func WriteTextfile(path string, g prom.Gatherer) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create metrics directory").
				WithContext("path", dir).
				Build()
		}
	}
	if err := prom.WriteToTextfile(path, g); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write metrics textfile").
			WithContext("path", path).
			Build()
	}
	return nil
}
