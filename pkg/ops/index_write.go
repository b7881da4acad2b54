package ops

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"lab47.dev/boardindex/pkg/data"
	"lab47.dev/boardindex/pkg/lockfile"
)

type IndexWrite struct {
	common

	// Format is FormatJSON or FormatYAML; empty picks by file extension.
	Format string
}

// Encode writes v to w, indented by two spaces. Descriptor fields keep
// their declared order.
func (w *IndexWrite) Encode(out io.Writer, v interface{}) error {
	format, err := DetectFormat("", w.Format)
	if err != nil {
		return err
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)

		err = enc.Encode(v)
		if err != nil {
			return track(err)
		}

		return enc.Close()
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)

		return track(enc.Encode(v))
	}
}

// Write replaces the index at path, holding path's lock file while the
// new contents are written and renamed into place.
func (w *IndexWrite) Write(ctx context.Context, path string, idx *data.Index) error {
	format, err := DetectFormat(path, w.Format)
	if err != nil {
		return err
	}

	release, err := lockfile.Take(ctx, lockfile.For(path), func() {
		w.L().Info("index locked, waiting", "path", path)
	})
	if err != nil {
		return errors.Wrapf(err, "locking %s", path)
	}

	defer release()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}

	defer os.Remove(tmp.Name())

	enc := IndexWrite{common: w.common, Format: format}

	err = enc.Encode(tmp, idx)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	err = os.Chmod(tmp.Name(), 0644)
	if err != nil {
		return err
	}

	err = os.Rename(tmp.Name(), path)
	if err != nil {
		return track(err)
	}

	w.L().Info("wrote index", "path", path, "packages", len(idx.Packages))

	return nil
}
