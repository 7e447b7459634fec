// Package launcher opens article links in a sized, chrome-less browser window.
package launcher

import (
	"fmt"
	"os/exec"

	"github.com/pders01/newsview/internal/config"
	"github.com/pders01/newsview/internal/debuglog"
	"github.com/pders01/newsview/internal/validation"
)

// Opener opens url in a new window placed at g.
type Opener interface {
	OpenPopup(url string, g Geometry) error
}

type Launcher struct {
	browser       string
	defaultOpener string
	registry      *Registry
	validator     *validation.LinkValidator
	start         func(*exec.Cmd) error
}

func New(cfg *config.Config) *Launcher {
	return newLauncher(cfg, exec.LookPath)
}

func newLauncher(cfg *config.Config, lookPath func(string) (string, error)) *Launcher {
	registry, err := NewRegistry()
	if err != nil {
		debuglog.Warnf("browser registry unavailable, using bare URLs: %v", err)
		registry = &Registry{programs: make(map[string]ProgramDefinition)}
	}

	return &Launcher{
		browser:       findCommand(lookPath, cfg.Popup.Browsers()...),
		defaultOpener: cfg.Popup.DefaultOpener,
		registry:      registry,
		validator:     validation.NewLinkValidator(),
		start:         startDetached,
	}
}

// Browser reports the program used for popups, or the default opener when no
// candidate browser is installed.
func (l *Launcher) Browser() string {
	if l.browser != "" {
		return l.browser
	}
	return l.defaultOpener
}

// Command builds the process that opens url.
func (l *Launcher) Command(url string, g Geometry) (*exec.Cmd, error) {
	clean, err := l.validator.Validate(url)
	if err != nil {
		return nil, fmt.Errorf("refusing to open link: %w", err)
	}

	program := l.Browser()
	if program == "" {
		return nil, fmt.Errorf("no application found to open URL")
	}

	args, err := l.registry.Args(program, clean, g)
	if err != nil {
		args = []string{clean}
	}
	return exec.Command(program, args...), nil
}

// OpenPopup starts the browser detached and returns once it is running.
func (l *Launcher) OpenPopup(url string, g Geometry) error {
	cmd, err := l.Command(url, g)
	if err != nil {
		return err
	}

	debuglog.Debugf("opening %s with %s (%s)", url, cmd.Path, g.Features())

	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", l.Browser(), err)
	}
	return nil
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func findCommand(lookPath func(string) (string, error), commands ...string) string {
	for _, cmd := range commands {
		if _, err := lookPath(cmd); err == nil {
			return cmd
		}
	}
	return ""
}
