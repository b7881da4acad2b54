package ops

import (
	"archive/tar"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/ulikunitz/xz"
)

// ArchiveInspect reads the layout of a published archive. Board managers
// unpack an archive into a single root folder.
type ArchiveInspect struct {
	common
}

type ArchiveLayout struct {
	Roots []string
	Files int
	Size  int64
}

// SingleRoot reports whether every entry lives under one folder.
func (l *ArchiveLayout) SingleRoot() bool {
	return len(l.Roots) == 1
}

func (a *ArchiveInspect) Inspect(path string) (*ArchiveLayout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	return a.Read(f, filepath.Base(path))
}

// Read decompresses r according to the extension of name and walks the tar
// stream inside.
func (a *ArchiveInspect) Read(r io.Reader, name string) (*ArchiveLayout, error) {
	var in io.Reader

	switch {
	case strings.HasSuffix(name, ".tar.bz2"):
		in = bzip2.NewReader(r)
	case strings.HasSuffix(name, ".tar.xz"):
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, errors.Wrapf(err, "open xz %s", name)
		}

		in = xr
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrapf(err, "open gzip %s", name)
		}

		defer gr.Close()

		in = gr
	default:
		return nil, errors.Wrapf(ErrUnsupportedArchive, "name: %s", name)
	}

	var (
		layout ArchiveLayout
		seen   = map[string]struct{}{}
	)

	tr := tar.NewReader(in)

	for {
		hdr, err := tr.Next()
		if err != nil {
			if err == io.EOF {
				break
			}

			return nil, errors.Wrapf(err, "read tar %s", name)
		}

		root := topLevel(hdr.Name)
		if root == "" {
			continue
		}

		if _, ok := seen[root]; !ok {
			seen[root] = struct{}{}
			layout.Roots = append(layout.Roots, root)
		}

		if hdr.Typeflag == tar.TypeReg {
			layout.Files++
			layout.Size += hdr.Size
		}
	}

	a.L().Trace("inspected archive", "archive", name, "roots", layout.Roots, "files", layout.Files)

	return &layout, nil
}

func topLevel(name string) string {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	name = strings.TrimLeft(name, "/")

	if idx := strings.IndexByte(name, '/'); idx != -1 {
		return name[:idx]
	}

	return name
}
