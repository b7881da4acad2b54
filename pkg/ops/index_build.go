package ops

import (
	"context"
	"path/filepath"

	"github.com/pkg/errors"
	"lab47.dev/boardindex/pkg/config"
	"lab47.dev/boardindex/pkg/data"
	"lab47.dev/boardindex/pkg/metadata"
)

// IndexBuild assembles the package entry for one platform release and its
// toolchain. When Sums is set, archives found in Sums.Dir are summed and
// their layout checked.
type IndexBuild struct {
	common

	Config *config.Config
	Sums   *ArchiveSum
}

func (b *IndexBuild) Build(ctx context.Context, opts metadata.Options) (*data.Package, error) {
	cfg := b.Config

	pl := metadata.Platform(opts, cfg.BaseURL)
	tool := metadata.Tools(opts, cfg.BaseURL)

	if b.Sums != nil {
		b.Sums.SetLogger(b.L())

		err := b.Sums.FillPlatform(ctx, pl)
		if err != nil {
			return nil, err
		}

		err = b.Sums.FillTool(ctx, tool)
		if err != nil {
			return nil, err
		}

		b.checkLayout(pl.ArchiveFileName)
	}

	b.L().Info("built package entry",
		"package", cfg.PackageName,
		"architecture", pl.Architecture,
		"version", pl.Version,
		"tool", tool.Name,
		"tool-version", tool.Version,
	)

	return &data.Package{
		Name:       cfg.PackageName,
		Maintainer: cfg.Maintainer,
		WebsiteURL: cfg.WebsiteURL,
		Email:      cfg.Email,
		Help:       data.Help{Online: cfg.HelpURL},
		Platforms:  []*data.Platform{pl},
		Tools:      []*data.Tool{tool},
	}, nil
}

func (b *IndexBuild) checkLayout(archive string) {
	var ai ArchiveInspect
	ai.SetLogger(b.L())

	layout, err := ai.Inspect(filepath.Join(b.Sums.Dir, archive))
	if err != nil {
		if !errors.Is(err, ErrUnsupportedArchive) {
			b.L().Debug("unable to inspect archive", "archive", archive, "error", err)
		}

		return
	}

	if !layout.SingleRoot() {
		b.L().Warn("archive should contain a single root folder", "archive", archive, "roots", layout.Roots)
	}
}
