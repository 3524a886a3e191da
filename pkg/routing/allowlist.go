// Package routing classifies portal routes (ui, authn, api, ops, static)
// from a YAML allowlist so error handlers and guards can treat them apart.
package routing

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type RouteClass string

const (
	RouteClassUI     RouteClass = "ui"
	RouteClassAuthn  RouteClass = "authn"
	RouteClassAPI    RouteClass = "api"
	RouteClassOps    RouteClass = "ops"
	RouteClassStatic RouteClass = "static"
)

func (c RouteClass) Valid() bool {
	switch c {
	case RouteClassUI, RouteClassAuthn, RouteClassAPI, RouteClassOps, RouteClassStatic:
		return true
	}
	return false
}

var ErrAllowlistNotFound = errors.New("routing allowlist not found")

//go:embed allowlist.default.yaml
var defaultAllowlist []byte

const allowlistFile = "config/routing/allowlist.yaml"

type AllowlistRule struct {
	Prefix string     `yaml:"prefix"`
	Class  RouteClass `yaml:"class"`
}

func (r AllowlistRule) validate() error {
	switch {
	case r.Prefix == "":
		return errors.New("empty prefix")
	case !strings.HasPrefix(r.Prefix, "/"):
		return fmt.Errorf("prefix must start with '/': %q", r.Prefix)
	case !r.Class.Valid():
		return fmt.Errorf("unknown class: %q", r.Class)
	}
	return nil
}

// DefaultAllowlistPath is ROUTING_ALLOWLIST_PATH when set, else
// config/routing/allowlist.yaml under the nearest go.mod root.
func DefaultAllowlistPath() string {
	if p := strings.TrimSpace(os.Getenv("ROUTING_ALLOWLIST_PATH")); p != "" {
		return p
	}
	if wd, err := os.Getwd(); err == nil {
		if root, ok := moduleRoot(wd); ok {
			abs := filepath.Join(root, filepath.FromSlash(allowlistFile))
			if _, err := os.Stat(abs); err == nil {
				return abs
			}
		}
	}
	return filepath.FromSlash(allowlistFile)
}

// LoadAllowlist reads the rules for entrypoint from path (or the default path).
func LoadAllowlist(path, entrypoint string) ([]AllowlistRule, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultAllowlistPath()
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrAllowlistNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	return ParseAllowlist(raw, entrypoint)
}

// LoadAllowlistOrDefault falls back to the embedded rules when no file is found.
func LoadAllowlistOrDefault(path, entrypoint string) ([]AllowlistRule, error) {
	rules, err := LoadAllowlist(path, entrypoint)
	if errors.Is(err, ErrAllowlistNotFound) {
		return ParseAllowlist(defaultAllowlist, entrypoint)
	}
	return rules, err
}

// ParseAllowlist decodes a version 1 allowlist and returns the rules of
// entrypoint ("server" when empty).
func ParseAllowlist(raw []byte, entrypoint string) ([]AllowlistRule, error) {
	var doc struct {
		Version     int                        `yaml:"version"`
		Entrypoints map[string][]AllowlistRule `yaml:"entrypoints"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc.Version != 1 {
		return nil, fmt.Errorf("unsupported allowlist version: %d", doc.Version)
	}
	if entrypoint = strings.TrimSpace(entrypoint); entrypoint == "" {
		entrypoint = "server"
	}
	rules, ok := doc.Entrypoints[entrypoint]
	if !ok {
		return nil, fmt.Errorf("entrypoint %q not found in allowlist", entrypoint)
	}
	for i := range rules {
		rules[i].Prefix = strings.TrimSpace(rules[i].Prefix)
		if err := rules[i].validate(); err != nil {
			return nil, fmt.Errorf("allowlist rule[%d]: %w", i, err)
		}
	}
	return rules, nil
}

func moduleRoot(dir string) (string, bool) {
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
