package authz

import (
	_ "embed"

	"github.com/sirupsen/logrus"

	"github.com/ati-intranet/portal/pkg/configuration"
)

//go:embed policy/model.conf
var defaultModel string

//go:embed policy/policy.csv
var defaultPolicy string

// Config captures all inputs necessary to initialize the Casbin enforcer.
type Config struct {
	Model        string
	Policy       string
	Logger       *logrus.Logger
	FlagProvider FlagProvider
}

func (c Config) normalized() Config {
	if c.Model == "" {
		c.Model = defaultModel
	}
	if c.Policy == "" {
		c.Policy = defaultPolicy
	}
	if c.FlagProvider == nil {
		c.FlagProvider = StaticFlags(ModeEnforce)
	}
	return c
}

// DefaultConfig builds a Config using the global configuration singleton.
func DefaultConfig() Config {
	conf := configuration.Use()
	mode := ParseMode(conf.Authz.Mode)
	provider := StaticFlags(mode)
	if conf.Authz.FlagConfigPath != "" {
		provider = NewFileFlagProvider(conf.Authz.FlagConfigPath, mode)
	}
	return Config{
		Logger:       conf.Logger(),
		FlagProvider: provider,
	}
}
