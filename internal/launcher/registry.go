package launcher

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed browsers.toml
var browsersTOML []byte

// ProgramDefinition describes how to start one browser or opener.
type ProgramDefinition struct {
	Description string   `toml:"description"`
	Platforms   []string `toml:"platforms"`
	Args        []string `toml:"args"`
}

type programsFile struct {
	Programs map[string]ProgramDefinition `toml:"programs"`
}

// Registry maps program names to argument templates.
type Registry struct {
	programs map[string]ProgramDefinition
}

// NewRegistry loads the built-in definitions and merges
// ~/.config/newsview/browsers.toml over them when present.
func NewRegistry() (*Registry, error) {
	var builtin programsFile
	if err := toml.Unmarshal(browsersTOML, &builtin); err != nil {
		return nil, fmt.Errorf("parsing browsers.toml: %w", err)
	}

	r := &Registry{programs: builtin.Programs}
	if r.programs == nil {
		r.programs = make(map[string]ProgramDefinition)
	}

	if home, err := os.UserHomeDir(); err == nil {
		if err := r.Merge(filepath.Join(home, ".config", "newsview", "browsers.toml")); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Merge overrides definitions with those found in path. A missing file is ignored.
func (r *Registry) Merge(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var user programsFile
	if err := toml.Unmarshal(data, &user); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	for name, def := range user.Programs {
		r.programs[name] = def
	}
	return nil
}

// Args expands the argument template of program for url and g. Unknown
// programs get the bare URL.
func (r *Registry) Args(program, url string, g Geometry) ([]string, error) {
	def, ok := r.programs[program]
	if !ok || len(def.Args) == 0 {
		return []string{url}, nil
	}

	if len(def.Platforms) > 0 && !supports(def.Platforms, runtime.GOOS) {
		return nil, fmt.Errorf("%s not supported on %s", program, runtime.GOOS)
	}

	replacer := strings.NewReplacer(
		"{url}", url,
		"{width}", strconv.Itoa(g.Width),
		"{height}", strconv.Itoa(g.Height),
		"{left}", strconv.Itoa(g.Left),
		"{top}", strconv.Itoa(g.Top),
	)

	args := make([]string, 0, len(def.Args))
	for _, a := range def.Args {
		args = append(args, replacer.Replace(a))
	}
	return args, nil
}

func supports(platforms []string, goos string) bool {
	for _, p := range platforms {
		if p == goos {
			return true
		}
	}
	return false
}
