// Package metadata builds the platform and toolchain descriptors for the
// Energia CC13xx board manager package.
//
// The builders do no validation: empty or malformed options produce
// empty or malformed strings in the result.
package metadata

import "lab47.dev/boardindex/pkg/data"

const (
	CompilerTool = "arm-none-eabi-gcc"

	PlatformName = "Energia CC13xx boards"
	Category     = "Energia"

	ArchiveExt = ".tar.bz2"

	// Checksum and size placeholders written until an archive is summed.
	UnsetChecksum = "0"
	UnsetSize     = ""
)

// Options carries the values normally supplied on the command line.
type Options struct {
	Arch    string
	Version string

	CompilerName    string
	CompilerVersion string
}

var boardNames = [...]string{
	"LAUNCHXL_CC1310",
	"LAUNCHXL_CC1350",
	"CC1350STK",
}

type hostSystem struct {
	host   string
	dir    string
	suffix string
}

var hostSystems = [...]hostSystem{
	{host: "i686-mingw32", dir: "windows/", suffix: "windows"},
	{host: "x86_64-apple-darwin", dir: "macosx/", suffix: "mac"},
	{host: "x86_64-pc-linux-gnu", dir: "linux64/", suffix: "x86_64-pc-linux-gnu"},
}

// BoardNames returns the boards the platform package supports.
func BoardNames() []string {
	return append([]string(nil), boardNames[:]...)
}

// Hosts returns the host triples a toolchain is published for, in index order.
func Hosts() []string {
	hosts := make([]string, len(hostSystems))
	for i, hs := range hostSystems {
		hosts[i] = hs.host
	}

	return hosts
}

func CompilerToolName(opts Options) string {
	return CompilerTool
}

// PlatformArchive is the archive name of the platform package, for
// example cc13xx-1.0.0.tar.bz2.
func PlatformArchive(opts Options) string {
	return opts.Arch + "-" + opts.Version + ArchiveExt
}

func Platform(opts Options, baseURL string) *data.Platform {
	archive := PlatformArchive(opts)

	boards := make([]data.Board, len(boardNames))
	for i, name := range boardNames {
		boards[i] = data.Board{Name: name}
	}

	return &data.Platform{
		Name:              PlatformName,
		Architecture:      opts.Arch,
		Version:           opts.Version,
		Category:          Category,
		URL:               baseURL + archive,
		ArchiveFileName:   archive,
		Checksum:          UnsetChecksum,
		Size:              UnsetSize,
		Boards:            boards,
		ToolsDependencies: []data.ToolDependency{},
	}
}

func Tools(opts Options, baseURL string) *data.Tool {
	systems := make([]data.ToolSystem, len(hostSystems))

	for i, hs := range hostSystems {
		archive := opts.CompilerName + "-" + opts.CompilerVersion + "-" + hs.suffix + ArchiveExt

		systems[i] = data.ToolSystem{
			Host:            hs.host,
			URL:             baseURL + hs.dir + archive,
			ArchiveFileName: archive,
		}
	}

	return &data.Tool{
		Name:    CompilerToolName(opts),
		Version: opts.CompilerVersion,
		Systems: systems,
	}
}
