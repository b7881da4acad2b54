package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/mitchellh/cli"
	"github.com/pkg/errors"
	"lab47.dev/boardindex/pkg/cmd"
	"lab47.dev/boardindex/pkg/config"
	"lab47.dev/boardindex/pkg/humanize"
	"lab47.dev/boardindex/pkg/metadata"
	"lab47.dev/boardindex/pkg/ops"
)

func main() {
	c := cli.NewCLI("energia-index", "0.1.0")
	c.Args = os.Args[1:]
	c.Commands = map[string]cli.CommandFactory{
		"compiler-name": func() (cli.Command, error) {
			return cmd.New(
				"compiler-name",
				"Print the name of the compiler tool",
				compilerNameF,
			), nil
		},
		"platform": func() (cli.Command, error) {
			return cmd.New(
				"platform",
				"Print the board platform descriptor",
				platformF,
			), nil
		},
		"tools": func() (cli.Command, error) {
			return cmd.New(
				"tools",
				"Print the compiler toolchain descriptor",
				toolsF,
			), nil
		},
		"index": func() (cli.Command, error) {
			return cmd.New(
				"index",
				"Build the package entry and write or merge it into an index",
				indexF,
			), nil
		},
		"inspect": func() (cli.Command, error) {
			return cmd.New(
				"inspect",
				"Show the top level layout of an archive",
				inspectF,
			), nil
		},
		"debug": func() (cli.Command, error) {
			return cmd.New(
				"debug",
				"Dump the loaded config and built descriptors",
				debugF,
			), nil
		},
	}

	exitStatus, err := c.Run()
	if err != nil {
		log.Println(err)
	}

	os.Exit(exitStatus)
}

type releaseOpts struct {
	Arch     string `short:"a" long:"arch" default:"cc13xx" description:"platform architecture"`
	Version  string `short:"V" long:"version" description:"platform version"`
	CName    string `long:"cname" default:"gcc-arm-none-eabi" description:"compiler archive name"`
	CVersion string `long:"cversion" description:"compiler version"`
	URL      string `short:"u" long:"url" description:"base download url, overrides config"`
}

func (r releaseOpts) options() metadata.Options {
	return metadata.Options{
		Arch:            r.Arch,
		Version:         r.Version,
		CompilerName:    r.CName,
		CompilerVersion: r.CVersion,
	}
}

func loadConfig(path, url string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.LoadConfig()
	}

	if err != nil {
		return nil, errors.Wrapf(err, "unable to load configuration")
	}

	if url != "" {
		cfg.BaseURL = url
	}

	return cfg, nil
}

func compilerNameF(ctx context.Context, opts struct{}) error {
	fmt.Println(metadata.CompilerToolName(metadata.Options{}))
	return nil
}

func platformF(ctx context.Context, opts struct {
	Arch    string `short:"a" long:"arch" default:"cc13xx" description:"platform architecture"`
	Version string `short:"V" long:"version" description:"platform version"`
	URL     string `short:"u" long:"url" description:"base download url, overrides config"`
	Format  string `short:"f" long:"format" default:"json" description:"output format: json or yaml"`
	Config  string `short:"c" long:"config" description:"config file to use"`
}) error {
	cfg, err := loadConfig(opts.Config, opts.URL)
	if err != nil {
		return err
	}

	pl := metadata.Platform(metadata.Options{Arch: opts.Arch, Version: opts.Version}, cfg.BaseURL)

	iw := ops.IndexWrite{Format: opts.Format}
	iw.SetLogger(cmd.Logger(ctx))

	return iw.Encode(os.Stdout, pl)
}

func toolsF(ctx context.Context, opts struct {
	CName    string `long:"cname" default:"gcc-arm-none-eabi" description:"compiler archive name"`
	CVersion string `long:"cversion" description:"compiler version"`
	URL      string `short:"u" long:"url" description:"base download url, overrides config"`
	Format   string `short:"f" long:"format" default:"json" description:"output format: json or yaml"`
	Config   string `short:"c" long:"config" description:"config file to use"`
}) error {
	cfg, err := loadConfig(opts.Config, opts.URL)
	if err != nil {
		return err
	}

	tool := metadata.Tools(metadata.Options{
		CompilerName:    opts.CName,
		CompilerVersion: opts.CVersion,
	}, cfg.BaseURL)

	iw := ops.IndexWrite{Format: opts.Format}
	iw.SetLogger(cmd.Logger(ctx))

	return iw.Encode(os.Stdout, tool)
}

func indexF(ctx context.Context, opts struct {
	Release  releaseOpts `group:"Release Options"`
	Archives string      `long:"archives" description:"directory holding the published archives to sum"`
	Output   string      `short:"o" long:"output" description:"index file to create or merge into"`
	Format   string      `short:"f" long:"format" description:"output format: json or yaml (default by extension)"`
	Config   string      `short:"c" long:"config" description:"config file to use"`
}) error {
	L := cmd.Logger(ctx)

	cfg, err := loadConfig(opts.Config, opts.Release.URL)
	if err != nil {
		return err
	}

	if opts.Archives != "" {
		cfg.ArchivesDir = opts.Archives
	}

	ib := ops.IndexBuild{Config: cfg}
	ib.SetLogger(L)

	if cfg.ArchivesDir != "" {
		ib.Sums = &ops.ArchiveSum{Dir: cfg.ArchivesDir}

		defer func() {
			if err := ib.Sums.Close(); err != nil {
				L.Error("unable to save archive sums", "error", err)
			}
		}()
	}

	pkg, err := ib.Build(ctx, opts.Release.options())
	if err != nil {
		return err
	}

	iw := ops.IndexWrite{Format: opts.Format}
	iw.SetLogger(L)

	if opts.Output == "" {
		return iw.Encode(os.Stdout, pkg)
	}

	var ir ops.IndexRead
	ir.SetLogger(L)

	idx, err := ir.Read(opts.Output)
	if err != nil {
		return err
	}

	idx.Merge(pkg)

	return iw.Write(ctx, opts.Output, idx)
}

func inspectF(ctx context.Context, opts struct {
	Args struct {
		Files []string `positional-arg-name:"archive" required:"1"`
	} `positional-args:"yes"`
}) error {
	var ai ops.ArchiveInspect
	ai.SetLogger(cmd.Logger(ctx))

	tw := tabwriter.NewWriter(os.Stdout, 4, 2, 1, ' ', 0)
	defer tw.Flush()

	for _, path := range opts.Args.Files {
		layout, err := ai.Inspect(path)
		if err != nil {
			return err
		}

		ok := "ok"
		if !layout.SingleRoot() {
			ok = "multiple roots"
		}

		fmt.Fprintf(tw, "%s\t%d files\t%s\t%s\t%s\n",
			path, layout.Files, humanize.Format(layout.Size), strings.Join(layout.Roots, ","), ok)
	}

	return nil
}

func debugF(ctx context.Context, opts struct {
	Release releaseOpts `group:"Release Options"`
	Config  string      `short:"c" long:"config" description:"config file to use"`
}) error {
	cfg, err := loadConfig(opts.Config, opts.Release.URL)
	if err != nil {
		return err
	}

	spew.Dump(cfg)

	mo := opts.Release.options()

	spew.Dump(metadata.Platform(mo, cfg.BaseURL))
	spew.Dump(metadata.Tools(mo, cfg.BaseURL))

	return nil
}
