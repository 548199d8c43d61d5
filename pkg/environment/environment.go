package environment

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEnvironment is returned for names that are not a known environment or alias.
var ErrUnknownEnvironment = errors.New("unknown environment")

// Environment is the deployment stage a process runs in.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

var aliases = map[string]Environment{
	"":            Development,
	"dev":         Development,
	"development": Development,
	"local":       Development,
	"stage":       Staging,
	"staging":     Staging,
	"prod":        Production,
	"production":  Production,
}

// Parse resolves s case-insensitively, accepting the short aliases dev, stage
// and prod. An empty string is Development.
func Parse(s string) (Environment, error) {
	env, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEnvironment, s)
	}
	return env, nil
}

// IsDeployed reports whether e is a shared environment (staging or production).
func (e Environment) IsDeployed() bool { return e == Staging || e == Production }

func (e Environment) IsProduction() bool { return e == Production }

func (e Environment) String() string { return string(e) }

// UnmarshalText implements encoding.TextUnmarshaler so that config loading
// rejects misspelled environments.
func (e *Environment) UnmarshalText(text []byte) error {
	env, err := Parse(string(text))
	if err != nil {
		return err
	}
	*e = env
	return nil
}
