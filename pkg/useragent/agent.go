package useragent

import "fmt"

// Agent is a single name/version pair of a user agent string.
// The zero value is not a valid agent; use NewAgent.
type Agent struct {
	name    string
	version string
}

// NewAgent validates name and returns an Agent. The version is kept verbatim;
// it is judged only when the agent is formatted or parsed as part of a UserAgent.
func NewAgent(name, version string) (Agent, error) {
	if !IsValidName(name) {
		return Agent{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return Agent{name: name, version: version}, nil
}

// MustAgent is like NewAgent but panics on an invalid name.
func MustAgent(name, version string) Agent {
	a, err := NewAgent(name, version)
	if err != nil {
		panic(err)
	}
	return a
}

// Name returns the agent name.
func (a Agent) Name() string { return a.name }

// Version returns the version exactly as it was supplied.
func (a Agent) Version() string { return a.version }

// String returns name/version without version defaulting.
func (a Agent) String() string { return a.name + "/" + a.version }
