package inject

import (
	"encoding/json"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/seekinject/internal/foundation/errors"
)

// WriteReport stores res as indented JSON at path.
func WriteReport(path string, res *Result) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode report").Build()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to create report directory").
			WithContext("path", path).
			Build()
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write report").
			WithContext("path", path).
			Build()
	}
	return nil
}
