package ops

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"lab47.dev/boardindex/pkg/data"
	"lab47.dev/boardindex/pkg/progress"
	"lab47.dev/boardindex/pkg/sumfile"
)

const (
	SumsFile     = ".sums"
	ChecksumAlgo = "SHA-256"
)

// ArchiveSum computes the checksum and size of archives in Dir, caching
// results in Dir/.sums keyed on archive size and modification time.
type ArchiveSum struct {
	common
	Dir string

	sums  *sumfile.Sumfile
	dirty bool
}

func (a *ArchiveSum) load() error {
	if a.sums != nil {
		return nil
	}

	a.sums = &sumfile.Sumfile{}

	f, err := os.Open(filepath.Join(a.Dir, SumsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}

	defer f.Close()

	return errors.Wrapf(a.sums.Load(f), "reading %s", SumsFile)
}

// Sum returns the board manager checksum (SHA-256:<hex>) and size of the
// archive called name. ErrNoArchive is returned when it doesn't exist.
func (a *ArchiveSum) Sum(ctx context.Context, name string) (string, int64, error) {
	path := filepath.Join(a.Dir, name)

	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", 0, errors.Wrapf(ErrNoArchive, "path: %s", path)
		}

		return "", 0, err
	}

	if err := a.load(); err != nil {
		return "", 0, err
	}

	size, modTime := fi.Size(), fi.ModTime().UnixNano()

	if ent, ok := a.sums.Lookup(name); ok && ent.Algo == ChecksumAlgo && ent.Matches(size, modTime) {
		a.L().Trace("using cached sum", "archive", name)
		return checksum(ent.Sum), size, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}

	defer f.Close()

	h := sha256.New()

	pg := progress.Bytes(ctx, size, name)
	defer pg.Close()

	_, err = io.Copy(io.MultiWriter(h, pg), &ctxReader{ctx: ctx, r: f})
	if err != nil {
		return "", 0, errors.Wrapf(err, "summing %s", name)
	}

	sum := h.Sum(nil)

	a.sums.Set(sumfile.Entry{
		Name:    name,
		Algo:    ChecksumAlgo,
		Sum:     sum,
		Size:    size,
		ModTime: modTime,
	})

	a.dirty = true

	a.L().Debug("summed archive", "archive", name, "size", size)

	return checksum(sum), size, nil
}

func checksum(sum []byte) string {
	return ChecksumAlgo + ":" + hex.EncodeToString(sum)
}

// FillPlatform sets the platform checksum and size when its archive is
// present. A missing archive leaves the placeholders in place.
func (a *ArchiveSum) FillPlatform(ctx context.Context, pl *data.Platform) error {
	sum, size, err := a.Sum(ctx, pl.ArchiveFileName)
	if err != nil {
		if errors.Is(err, ErrNoArchive) {
			a.L().Warn("platform archive missing, keeping placeholder checksum", "archive", pl.ArchiveFileName)
			return nil
		}

		return err
	}

	pl.Checksum = sum
	pl.Size = strconv.FormatInt(size, 10)

	return nil
}

func (a *ArchiveSum) FillTool(ctx context.Context, t *data.Tool) error {
	for i := range t.Systems {
		sys := &t.Systems[i]

		sum, size, err := a.Sum(ctx, sys.ArchiveFileName)
		if err != nil {
			if errors.Is(err, ErrNoArchive) {
				a.L().Warn("tool archive missing", "host", sys.Host, "archive", sys.ArchiveFileName)
				continue
			}

			return err
		}

		sys.Checksum = sum
		sys.Size = strconv.FormatInt(size, 10)
	}

	return nil
}

// Close writes the sum cache if anything new was summed.
func (a *ArchiveSum) Close() error {
	if !a.dirty {
		return nil
	}

	tmp := filepath.Join(a.Dir, SumsFile+".tmp")

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	err = a.sums.Save(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		os.Remove(tmp)
		return track(err)
	}

	a.dirty = false

	return os.Rename(tmp, filepath.Join(a.Dir, SumsFile))
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(b []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}

	return c.r.Read(b)
}
