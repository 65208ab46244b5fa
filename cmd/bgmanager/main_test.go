package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkawower/bgmanager/internal/colors"
	"github.com/darkawower/bgmanager/internal/config"
	"github.com/darkawower/bgmanager/internal/platform"
	"github.com/darkawower/bgmanager/internal/platform/platformtest"
	"github.com/darkawower/bgmanager/internal/settings"
	"github.com/darkawower/bgmanager/internal/ui"
)

// testEnv points the CLI at a fake two-monitor platform and a temp directory.
type testEnv struct {
	svc *platformtest.Service
	dir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	svc, topo := platformtest.TwoMonitors()
	svc.Color = colors.Packed(0x00332211)
	platform.SetPlatform(&platformtest.Platform{Service: svc, Topo: topo, Supported: true})
	t.Cleanup(platform.ResetPlatform)

	return &testEnv{svc: svc, dir: t.TempDir()}
}

func (e *testEnv) settingsPath() string {
	return filepath.Join(e.dir, settings.FileName)
}

func (e *testEnv) configPath() string {
	return filepath.Join(e.dir, "config.toml")
}

// run executes the CLI with colour disabled and the env's config and
// settings file.
func (e *testEnv) run(args ...string) (int, string) {
	var buf bytes.Buffer
	args = append(args, "--no-color", "--config", e.configPath(), "--file", e.settingsPath())
	code := run(args, ui.NewOutput(&buf))
	return code, buf.String()
}

func TestRun_NoArgs(t *testing.T) {
	env := newTestEnv(t)

	code, out := env.run()
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "bgmanager save")
	assert.Contains(t, out, "status | show")
	assert.Contains(t, out, "--verbose")
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "#112233")
	assert.Contains(t, out, "Fill")
	assert.Contains(t, out, "State: none")
	assert.Empty(t, env.svc.Calls)
	assert.Equal(t, 1, env.svc.Closed)
}

func TestRun_UnknownCommand(t *testing.T) {
	env := newTestEnv(t)

	code, out := env.run("frobnicate")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Unknown command: frobnicate")
	assert.Contains(t, out, "Usage:")
	assert.NotContains(t, out, "Current Settings")
	assert.Equal(t, 0, env.svc.Closed, "service must not be opened")
}

func TestRun_UnknownFlag(t *testing.T) {
	env := newTestEnv(t)

	code, out := env.run("save", "--bogus")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "unknown flag: --bogus")
	assert.Contains(t, out, "Usage:")
	assert.NoFileExists(t, env.settingsPath())
}

func TestRun_Help(t *testing.T) {
	for _, arg := range []string{"help", "?", "/?", "-help", "--help", "-h", "HELP"} {
		t.Run(arg, func(t *testing.T) {
			env := newTestEnv(t)

			code, out := env.run(arg)
			assert.Equal(t, 0, code)
			assert.Contains(t, out, "Usage:")
			assert.Contains(t, out, "Restore saved wallpaper settings")
			assert.NotContains(t, out, "Current Settings")
			assert.Equal(t, 0, env.svc.Closed)
		})
	}
}

func TestRun_SaveWhiteRestore(t *testing.T) {
	env := newTestEnv(t)

	code, out := env.run("save")
	require.Equal(t, 0, code, out)
	assert.FileExists(t, env.settingsPath())
	assert.Contains(t, out, "Settings saved to:")
	assert.Contains(t, out, "Background Color: #112233")
	assert.Contains(t, out, "Monitors: 2")
	assert.Contains(t, out, "Monitor 0 (Primary): 1920x1080 at (0,0)")
	assert.Contains(t, out, "Monitor 1: 1280x1024 at (1920,0)")
	assert.Contains(t, out, `Wallpaper: C:\Wallpapers\a.jpg`)

	code, out = env.run("white")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Background set to solid color #FFFFFF")
	assert.Contains(t, out, "2 of 2 cleared")
	assert.Equal(t, colors.White.Packed(), env.svc.Color)
	assert.Empty(t, env.svc.Monitors[0].Wallpaper)
	assert.Empty(t, env.svc.Monitors[1].Wallpaper)

	code, out = env.run("restore")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Restored Monitor 0: a.jpg")
	assert.Contains(t, out, "Restored Monitor 1: b.png")
	assert.Contains(t, out, "Settings restored for 2 monitor(s)!")
	assert.Contains(t, out, "Position: Fill")
	assert.Equal(t, colors.Packed(0x00332211), env.svc.Color)
	assert.Equal(t, `C:\Wallpapers\a.jpg`, env.svc.Monitors[0].Wallpaper)
	assert.Equal(t, `C:\Wallpapers\b.png`, env.svc.Monitors[1].Wallpaper)

	assert.Equal(t, 3, env.svc.Closed, "every command releases the service")
}

func TestRun_NormalizesCommandName(t *testing.T) {
	for _, arg := range []string{"/SAVE", "-save", "--Save", "Save"} {
		t.Run(arg, func(t *testing.T) {
			env := newTestEnv(t)

			code, out := env.run(arg)
			assert.Equal(t, 0, code, out)
			assert.FileExists(t, env.settingsPath())
		})
	}
}

func TestRun_RestoreWithoutBackup(t *testing.T) {
	env := newTestEnv(t)

	code, out := env.run("restore")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "No saved settings found at:")
	assert.Contains(t, out, "Run with 'save' first")
	assert.Empty(t, env.svc.Calls, "nothing may be applied without a backup")
	assert.Equal(t, 1, env.svc.Closed)
}

func TestRun_RestorePartialFailure(t *testing.T) {
	env := newTestEnv(t)

	code, _ := env.run("save")
	require.Equal(t, 0, code)

	env.svc.Monitors[1].FailSet = true

	code, out := env.run("restore")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Restored Monitor 0: a.jpg")
	assert.Contains(t, out, "Could not restore Monitor 1")
	assert.Contains(t, out, "Settings restored for 1 monitor(s)!")
}

func TestRun_RestoreSolidColorMonitor(t *testing.T) {
	env := newTestEnv(t)
	env.svc.Monitors[1].FailWallpaper = true

	code, _ := env.run("save")
	require.Equal(t, 0, code)

	code, out := env.run("restore")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Restored Monitor 1: (solid color)")
}

func TestRun_RestoreNullBackup(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.settingsPath(), []byte("null"), 0644))

	code, out := env.run("restore")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "No saved settings found at:")
	assert.Empty(t, env.svc.Calls, "a null backup must not touch the desktop")

	code, out = env.run("status")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "State: empty")
}

func TestRun_RestoreEmptyObjectBackup(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.settingsPath(), []byte("{}"), 0644))

	code, out := env.run("restore")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, `missing "position"`)
	assert.Empty(t, env.svc.Calls)
}

func TestRun_VerboseShowsPaths(t *testing.T) {
	env := newTestEnv(t)

	code, out := env.run("status", "-v")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Config: "+env.configPath())
	assert.Contains(t, out, "Settings file: "+env.settingsPath())
}

func TestRun_RestoreMalformedBackup(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.settingsPath(), []byte("{not json"), 0644))

	code, out := env.run("restore")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "failed to parse settings file")
	assert.Empty(t, env.svc.Calls)
}

func TestRun_Status(t *testing.T) {
	env := newTestEnv(t)

	code, _ := env.run("save")
	require.Equal(t, 0, code)

	for _, name := range []string{"status", "show"} {
		t.Run(name, func(t *testing.T) {
			code, out := env.run(name)
			assert.Equal(t, 0, code)
			assert.Contains(t, out, "Current Settings")
			assert.Contains(t, out, "Primary")
			assert.Contains(t, out, "1280x1024")
			assert.Contains(t, out, "missing", "fake wallpaper files do not exist")
			assert.Contains(t, out, "matches current settings")
		})
	}

	env.svc.Color = colors.White.Packed()
	code, out := env.run("status")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "differs from current settings")
}

func TestRun_StatusDegraded(t *testing.T) {
	env := newTestEnv(t)
	platform.SetPlatform(&platformtest.Platform{Service: env.svc, Supported: true})
	env.svc.Monitors[1].FailBounds = true

	code, out := env.run("status")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "1920x1080*")
	assert.Contains(t, out, "placeholder")
}

func TestRun_Quiet(t *testing.T) {
	env := newTestEnv(t)

	code, out := env.run("save", "-q")
	assert.Equal(t, 0, code)
	assert.Empty(t, out)
	assert.FileExists(t, env.settingsPath())
}

func TestRun_FallbackColorFromConfig(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.configPath(), []byte("[fallback]\ncolor = \"#000000\"\n"), 0644))

	code, out := env.run("white")
	assert.Equal(t, 0, code, out)
	assert.Contains(t, out, "#000000")
	assert.Equal(t, colors.Packed(0), env.svc.Color)
}

func TestRun_InvalidConfig(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.configPath(), []byte("[fallback]\ncolor = \"chartreuse\"\n"), 0644))

	code, out := env.run("save")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "failed to load config")
	assert.Equal(t, 0, env.svc.Closed)
}

func TestRun_UnsupportedPlatform(t *testing.T) {
	env := newTestEnv(t)
	platform.SetPlatform(&platformtest.Platform{
		OpenErr: fmt.Errorf("wallpaper service not available on plan9: %w", platform.ErrUnsupported),
	})

	code, out := env.run("save")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "failed to open wallpaper service")
	assert.Contains(t, out, "Hint:")
	assert.Contains(t, out, "Windows 8")
}

func TestRun_VerboseErrorTrace(t *testing.T) {
	env := newTestEnv(t)
	platform.SetPlatform(&platformtest.Platform{
		OpenErr: platform.NewAdapterError("CoCreateInstance", "", platformtest.ErrInjected),
	})

	code, out := env.run("save")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "injected failure")
	assert.NotContains(t, out, "main_test.go")

	code, out = env.run("save", "--verbose")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "injected failure")
	assert.Contains(t, out, "main_test.go", "verbose output carries the origin stack")
}

func TestRun_Init(t *testing.T) {
	env := newTestEnv(t)

	code, out := env.run("init")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "bgmanager initialized")
	require.FileExists(t, env.configPath())

	cfg, err := config.Load(env.configPath())
	require.NoError(t, err)
	assert.Equal(t, env.settingsPath(), cfg.Backup.Path)
	assert.Equal(t, "#FFFFFF", cfg.Fallback.Color)

	code, out = env.run("init")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "already exists")

	code, out = env.run("init", "--force")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "bgmanager initialized")
}

func TestRun_Version(t *testing.T) {
	env := newTestEnv(t)

	code, out := env.run("version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "bgmanager version "+version)
}

func TestNormalizeArgs(t *testing.T) {
	root := (&app{out: ui.NewOutput(io.Discard)}).rootCmd()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"empty", nil, nil},
		{"dash", []string{"-SAVE"}, []string{"save"}},
		{"slash with flags", []string{"/Restore", "-v"}, []string{"restore", "-v"}},
		{"alias", []string{"SHOW"}, []string{"show"}},
		{"question mark", []string{"/?"}, []string{"?"}},
		{"flag", []string{"-v"}, []string{"-v"}},
		{"flag before command", []string{"--verbose", "save"}, []string{"--verbose", "save"}},
		{"unknown", []string{"Bogus"}, []string{"Bogus"}},
		{"only dashes", []string{"--"}, []string{"--"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeArgs(root, tt.args))
		})
	}
}

func TestShortenPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"home path", filepath.Join(home, "bg.json"), "~" + string(filepath.Separator) + "bg.json"},
		{"home itself", home, home},
		{"non-home path", "/var/log/test.log", "/var/log/test.log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shortenPath(tt.path))
		})
	}
}

func TestWallpaperName(t *testing.T) {
	assert.Equal(t, "(solid color)", wallpaperName(""))
	assert.Equal(t, "a.jpg", wallpaperName(`C:\Wallpapers\a.jpg`))
	assert.Equal(t, "b.png", wallpaperName("/home/me/b.png"))
	assert.Equal(t, "c.bmp", wallpaperName("c.bmp"))
}

func TestMonitorTable(t *testing.T) {
	records := []settings.MonitorRecord{
		{Index: 0, IsPrimary: true, Width: 1920, Height: 1080},
		{Index: 1, Left: -1280, Width: 1280, Height: 1024, WallpaperPath: "/nowhere/b.png"},
	}

	headers, rows := monitorTable(records, []int{1})
	require.Len(t, rows, 2)
	assert.Len(t, headers, 6)
	assert.Equal(t, []string{"0", "yes", "1920x1080", "(0,0)", "(none)", "-"}, rows[0])
	assert.Equal(t, []string{"1", "", "1280x1024*", "(-1280,0)", "/nowhere/b.png", "missing"}, rows[1])
}
