package metadata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilerToolName(t *testing.T) {
	assert.Equal(t, "arm-none-eabi-gcc", CompilerToolName(Options{}))
	assert.Equal(t, "arm-none-eabi-gcc", CompilerToolName(Options{CompilerName: "clang"}))
}

func TestPlatform(t *testing.T) {
	opts := Options{Arch: "cc13xx", Version: "2.2.0"}

	t.Run("derives archive and url", func(t *testing.T) {
		pl := Platform(opts, "https://x/")

		assert.Equal(t, "Energia CC13xx boards", pl.Name)
		assert.Equal(t, "cc13xx", pl.Architecture)
		assert.Equal(t, "2.2.0", pl.Version)
		assert.Equal(t, "Energia", pl.Category)
		assert.Equal(t, "cc13xx-2.2.0.tar.bz2", pl.ArchiveFileName)
		assert.Equal(t, "https://x/cc13xx-2.2.0.tar.bz2", pl.URL)
		assert.Equal(t, "0", pl.Checksum)
		assert.Equal(t, "", pl.Size)
		assert.Empty(t, pl.ToolsDependencies)
	})

	t.Run("url is the base plus archive for any input", func(t *testing.T) {
		cases := []Options{
			{Arch: "cc13xx", Version: "1.0.0"},
			{Arch: "msp432", Version: "5.29.1"},
			{Arch: "", Version: ""},
			{Arch: "a b", Version: "../x"},
		}

		for _, o := range cases {
			pl := Platform(o, "http://energia.nu/")
			assert.Equal(t, "http://energia.nu/"+o.Arch+"-"+o.Version+".tar.bz2", pl.URL)
		}
	})

	t.Run("boards are fixed", func(t *testing.T) {
		for _, o := range []Options{opts, {}, {Arch: "cc26xx", Version: "9"}} {
			pl := Platform(o, "")

			require.Equal(t, 3, len(pl.Boards))
			assert.Equal(t, "LAUNCHXL_CC1310", pl.Boards[0].Name)
			assert.Equal(t, "LAUNCHXL_CC1350", pl.Boards[1].Name)
			assert.Equal(t, "CC1350STK", pl.Boards[2].Name)
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		a := Platform(opts, "https://x/")
		b := Platform(opts, "https://x/")

		assert.Equal(t, a, b)

		ja, err := json.Marshal(a)
		require.NoError(t, err)

		jb, err := json.Marshal(b)
		require.NoError(t, err)

		assert.Equal(t, string(ja), string(jb))
	})

	t.Run("results do not share board storage", func(t *testing.T) {
		a := Platform(opts, "")
		a.Boards[0].Name = "changed"

		b := Platform(opts, "")
		assert.Equal(t, "LAUNCHXL_CC1310", b.Boards[0].Name)
	})

	t.Run("serializes like the index example", func(t *testing.T) {
		pl := Platform(Options{Arch: "cc13xx", Version: "1.0.0"}, "https://example.com/")

		out, err := json.Marshal(pl)
		require.NoError(t, err)

		expected := `{"name":"Energia CC13xx boards","architecture":"cc13xx","version":"1.0.0",` +
			`"category":"Energia","url":"https://example.com/cc13xx-1.0.0.tar.bz2",` +
			`"archiveFileName":"cc13xx-1.0.0.tar.bz2","checksum":"0","size":"",` +
			`"boards":[{"name":"LAUNCHXL_CC1310"},{"name":"LAUNCHXL_CC1350"},{"name":"CC1350STK"}],` +
			`"toolsDependencies":[]}`

		assert.Equal(t, expected, string(out))
	})
}

func TestTools(t *testing.T) {
	opts := Options{CompilerName: "gcc-arm", CompilerVersion: "9.1"}

	t.Run("builds one system per host", func(t *testing.T) {
		tool := Tools(opts, "https://x/")

		assert.Equal(t, "arm-none-eabi-gcc", tool.Name)
		assert.Equal(t, "9.1", tool.Version)

		require.Equal(t, 3, len(tool.Systems))

		win := tool.Systems[0]
		assert.Equal(t, "i686-mingw32", win.Host)
		assert.Equal(t, "gcc-arm-9.1-windows.tar.bz2", win.ArchiveFileName)
		assert.Equal(t, "https://x/windows/gcc-arm-9.1-windows.tar.bz2", win.URL)

		mac := tool.Systems[1]
		assert.Equal(t, "x86_64-apple-darwin", mac.Host)
		assert.Equal(t, "gcc-arm-9.1-mac.tar.bz2", mac.ArchiveFileName)
		assert.Equal(t, "https://x/macosx/gcc-arm-9.1-mac.tar.bz2", mac.URL)

		linux := tool.Systems[2]
		assert.Equal(t, "x86_64-pc-linux-gnu", linux.Host)
		assert.Equal(t, "gcc-arm-9.1-x86_64-pc-linux-gnu.tar.bz2", linux.ArchiveFileName)
		assert.Equal(t, "https://x/linux64/gcc-arm-9.1-x86_64-pc-linux-gnu.tar.bz2", linux.URL)
	})

	t.Run("host order is fixed", func(t *testing.T) {
		tool := Tools(Options{}, "")

		var hosts []string
		for _, s := range tool.Systems {
			hosts = append(hosts, s.Host)
		}

		assert.Equal(t, Hosts(), hosts)
		assert.Equal(t, []string{"i686-mingw32", "x86_64-apple-darwin", "x86_64-pc-linux-gnu"}, hosts)
	})

	t.Run("systems serialize without sums", func(t *testing.T) {
		tool := Tools(opts, "https://x/")

		out, err := json.Marshal(tool.Systems[0])
		require.NoError(t, err)

		assert.Equal(t,
			`{"host":"i686-mingw32","url":"https://x/windows/gcc-arm-9.1-windows.tar.bz2","archiveFileName":"gcc-arm-9.1-windows.tar.bz2"}`,
			string(out))
	})

	t.Run("is deterministic", func(t *testing.T) {
		assert.Equal(t, Tools(opts, "https://x/"), Tools(opts, "https://x/"))
	})
}

func TestBoardNames(t *testing.T) {
	names := BoardNames()
	names[0] = "changed"

	assert.Equal(t, []string{"LAUNCHXL_CC1310", "LAUNCHXL_CC1350", "CC1350STK"}, BoardNames())
}
