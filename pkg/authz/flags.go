package authz

import (
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Mode is the global enforcement mode. Shadow evaluates policies and logs
// denials without blocking; disabled skips evaluation.
type Mode string

const (
	ModeDisabled Mode = "disabled"
	ModeShadow   Mode = "shadow"
	ModeEnforce  Mode = "enforce"
)

// ParseMode is lenient: anything unrecognised enforces.
func ParseMode(s string) Mode {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeDisabled, ModeShadow:
		return m
	default:
		return ModeEnforce
	}
}

type FlagProvider interface {
	Mode() Mode
}

type staticFlags Mode

func (s staticFlags) Mode() Mode { return Mode(s) }

func StaticFlags(mode Mode) FlagProvider {
	return staticFlags(ParseMode(string(mode)))
}

// FileFlagProvider reads `mode:` from a YAML file, re-parsing only when the
// file's modification time changes. A missing or unreadable file keeps the
// last mode it saw.
type FileFlagProvider struct {
	path string

	mu      sync.Mutex
	mode    Mode
	modTime time.Time
}

func NewFileFlagProvider(path string, fallback Mode) FlagProvider {
	return &FileFlagProvider{path: path, mode: ParseMode(string(fallback))}
}

func (p *FileFlagProvider) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()

	info, err := os.Stat(p.path)
	if err != nil || info.ModTime().Equal(p.modTime) {
		return p.mode
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return p.mode
	}
	var flags struct {
		Mode string `yaml:"mode"`
	}
	if err := yaml.Unmarshal(data, &flags); err != nil {
		return p.mode
	}
	p.mode = ParseMode(flags.Mode)
	p.modTime = info.ModTime()
	return p.mode
}
