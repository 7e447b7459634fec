package launcher

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/newsview/internal/config"
)

const articleURL = "https://www.theguardian.com/environment/2023/may/01/climate"

func lookPathFor(installed ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, i := range installed {
			if i == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func testLauncher(t *testing.T, installed ...string) (*Launcher, *[]*exec.Cmd) {
	t.Helper()
	switch runtime.GOOS {
	case "linux", "darwin", "windows":
	default:
		t.Skipf("no browser definitions for %s", runtime.GOOS)
	}
	t.Setenv("HOME", t.TempDir())

	cfg := config.TestConfig()
	browsers := []string{"chromium", "firefox"}
	cfg.Popup.Darwin = browsers
	cfg.Popup.Linux = browsers
	cfg.Popup.Windows = browsers
	cfg.Popup.DefaultOpener = "xdg-open"

	l := newLauncher(cfg, lookPathFor(installed...))
	var started []*exec.Cmd
	l.start = func(cmd *exec.Cmd) error {
		started = append(started, cmd)
		return nil
	}
	return l, &started
}

func TestCenteredPopup(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		expect Geometry
	}{
		{"full hd", 1920, 1080, Geometry{Width: 1200, Height: 900, Left: 360, Top: 45}},
		{"1440p", 2560, 1440, Geometry{Width: 1200, Height: 900, Left: 680, Top: 135}},
		{"smaller than popup", 1024, 768, Geometry{Width: 1200, Height: 900, Left: 0, Top: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, CenteredPopup(tt.w, tt.h))
		})
	}
}

func TestGeometry_Features(t *testing.T) {
	g := CenteredPopup(1920, 1080)
	assert.Equal(t,
		"toolbar=no, location=no, directories=no, status=no, menubar=no, scrollbars=no, resizable=no, copyhistory=no, width=1200, height=900, top=45, left=360",
		g.Features())
}

func TestLauncher_OpenPopupWithBrowser(t *testing.T) {
	l, started := testLauncher(t, "firefox", "chromium")
	assert.Equal(t, "chromium", l.Browser(), "first installed candidate wins")

	require.NoError(t, l.OpenPopup(articleURL, CenteredPopup(1920, 1080)))
	require.Len(t, *started, 1, "exactly one window per open")

	cmd := (*started)[0]
	assert.Equal(t, []string{
		"chromium",
		"--new-window",
		"--app=" + articleURL,
		"--window-size=1200,900",
		"--window-position=360,45",
	}, cmd.Args)
}

func TestLauncher_FallsBackToDefaultOpener(t *testing.T) {
	l, started := testLauncher(t)
	assert.Equal(t, "xdg-open", l.Browser())

	require.NoError(t, l.OpenPopup(articleURL, CenteredPopup(1920, 1080)))
	require.Len(t, *started, 1)
	// xdg-open only knows the URL
	assert.Equal(t, articleURL, (*started)[0].Args[len((*started)[0].Args)-1])
}

func TestLauncher_RejectsBadLinks(t *testing.T) {
	l, started := testLauncher(t, "chromium")

	for _, link := range []string{"", "javascript:alert(1)", "--headless", "file:///etc/passwd"} {
		err := l.OpenPopup(link, CenteredPopup(1920, 1080))
		assert.Error(t, err, link)
	}
	assert.Empty(t, *started)
}

func TestLauncher_StartFailure(t *testing.T) {
	l, _ := testLauncher(t, "chromium")
	l.start = func(*exec.Cmd) error { return errors.New("exec format error") }

	err := l.OpenPopup(articleURL, CenteredPopup(1920, 1080))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start chromium")
}

func TestRegistry_Args(t *testing.T) {
	r := &Registry{programs: map[string]ProgramDefinition{
		"firefox": {Platforms: []string{"linux", "darwin", "windows"}, Args: []string{"--new-window", "{url}", "--width", "{width}", "--height", "{height}"}},
		"nowhere": {Platforms: []string{"plan9"}, Args: []string{"{url}"}},
	}}
	g := Geometry{Width: 1200, Height: 900, Left: 10, Top: 20}

	args, err := r.Args("unknown", articleURL, g)
	require.NoError(t, err)
	assert.Equal(t, []string{articleURL}, args)

	if runtime.GOOS == "linux" || runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		args, err = r.Args("firefox", articleURL, g)
		require.NoError(t, err)
		assert.Equal(t, []string{"--new-window", articleURL, "--width", "1200", "--height", "900"}, args)
	}

	_, err = r.Args("nowhere", articleURL, g)
	assert.Error(t, err)
}

func TestRegistry_Builtin(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r, err := NewRegistry()
	require.NoError(t, err)

	for _, name := range []string{"chromium", "google-chrome", "firefox", "xdg-open", "rundll32"} {
		_, ok := r.programs[name]
		assert.True(t, ok, "missing built-in definition for %s", name)
	}
}

func TestRegistry_Merge(t *testing.T) {
	r := &Registry{programs: map[string]ProgramDefinition{
		"chromium": {Args: []string{"{url}"}},
	}}

	path := filepath.Join(t.TempDir(), "browsers.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[programs.chromium]
args = ["--app={url}", "--kiosk"]

[programs.vivaldi]
description = "Vivaldi"
args = ["--app={url}"]
`), 0o644))

	require.NoError(t, r.Merge(path))
	assert.Equal(t, []string{"--app={url}", "--kiosk"}, r.programs["chromium"].Args)
	assert.Contains(t, r.programs, "vivaldi")

	assert.NoError(t, r.Merge(filepath.Join(t.TempDir(), "missing.toml")))

	require.NoError(t, os.WriteFile(path, []byte("not = [valid"), 0o644))
	assert.Error(t, r.Merge(path))
}
