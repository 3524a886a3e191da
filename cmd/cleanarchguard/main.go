// Command cleanarchguard fails when a module's layers import each other in
// the wrong direction (domain ← services/handlers ← presentation,
// infrastructure).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/roblaszczak/go-cleanarch/cleanarch"
	"gopkg.in/yaml.v3"
)

type layerAliases struct {
	Domain         []string `yaml:"domain"`
	Application    []string `yaml:"application"`
	Interfaces     []string `yaml:"interfaces"`
	Infrastructure []string `yaml:"infrastructure"`
}

type config struct {
	Version           int          `yaml:"version"`
	Root              string       `yaml:"root"`
	IgnoreTests       bool         `yaml:"ignore_tests"`
	IgnorePackages    []string     `yaml:"ignore_packages"`
	SharedModules     []string     `yaml:"shared_modules"`
	AllowedViolations []string     `yaml:"allow_violations"`
	Aliases           layerAliases `yaml:"aliases"`
}

var defaultAliases = layerAliases{
	Domain:         []string{"domain", "entities"},
	Application:    []string{"services", "handlers"},
	Interfaces:     []string{"presentation", "controllers"},
	Infrastructure: []string{"infrastructure"},
}

func main() {
	configPath := flag.String("config", ".gocleanarch.yml", "path to the layering config")
	debug := flag.Bool("debug", false, "print go-cleanarch debug output")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("read config: %v", err)
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		log.Fatalf("resolve root: %v", err)
	}
	if *debug {
		cleanarch.Log.SetOutput(os.Stderr)
	}

	ok, errs, err := cleanarch.NewValidator(cfg.layers()).Validate(root, cfg.IgnoreTests, cfg.IgnorePackages)
	if err != nil {
		log.Fatalf("run go-cleanarch: %v", err)
	}
	violations := cfg.filter(errs)
	if !ok && len(violations) > 0 {
		for _, v := range violations {
			log.Println(v.Error())
		}
		log.Printf("layering check failed: %d violations", len(violations))
		os.Exit(1)
	}
	log.Println("layering check passed")
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Version != 1 {
		return nil, fmt.Errorf("unsupported config version: %d", cfg.Version)
	}
	if cfg.Root == "" {
		cfg.Root = "modules"
	}
	return cfg, nil
}

// layers maps directory names to layers; a group left empty in the file
// keeps its defaults.
func (c *config) layers() map[string]cleanarch.Layer {
	out := map[string]cleanarch.Layer{}
	add := func(names, fallback []string, layer cleanarch.Layer) {
		if len(names) == 0 {
			names = fallback
		}
		for _, n := range names {
			if n != "" {
				out[n] = layer
			}
		}
	}
	add(c.Aliases.Domain, defaultAliases.Domain, cleanarch.LayerDomain)
	add(c.Aliases.Application, defaultAliases.Application, cleanarch.LayerApplication)
	add(c.Aliases.Interfaces, defaultAliases.Interfaces, cleanarch.LayerInterfaces)
	add(c.Aliases.Infrastructure, defaultAliases.Infrastructure, cleanarch.LayerInfrastructure)
	return out
}

func (c *config) filter(errs []cleanarch.ValidationError) []cleanarch.ValidationError {
	var out []cleanarch.ValidationError
	for _, e := range errs {
		msg := e.Error()
		if c.sharedModuleImport(msg) || c.allowed(msg) {
			continue
		}
		out = append(out, e)
	}
	return out
}

var crossModulePattern = regexp.MustCompile(`between ([\w-]+) and ([\w-]+) modules`)

// sharedModuleImport reports a cross-module violation that involves one of
// the shared modules.
func (c *config) sharedModuleImport(msg string) bool {
	m := crossModulePattern.FindStringSubmatch(msg)
	if m == nil {
		return false
	}
	return slices.Contains(c.SharedModules, m[1]) || slices.Contains(c.SharedModules, m[2])
}

func (c *config) allowed(msg string) bool {
	return slices.ContainsFunc(c.AllowedViolations, func(p string) bool {
		return p != "" && strings.Contains(msg, p)
	})
}
