package ops

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DetectFormat returns format when set, otherwise guesses from the
// extension of path, defaulting to JSON.
func DetectFormat(path, format string) (string, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case "":
		// guess below
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "format: %s", format)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatJSON, nil
	}
}
