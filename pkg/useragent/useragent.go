package useragent

import (
	"fmt"
	"slices"
)

// UserAgent is an immutable primary agent, the informational agents that
// relayed the request, and an optional node id of the origin.
type UserAgent struct {
	primary       Agent
	informational []Agent
	nodeID        string
}

// New returns a UserAgent with the given primary agent and no node id.
func New(primary Agent) UserAgent {
	return UserAgent{primary: primary}
}

// NewWithNodeID returns a UserAgent carrying nodeID, which must match the node id grammar.
func NewWithNodeID(primary Agent, nodeID string) (UserAgent, error) {
	if !IsValidNodeID(nodeID) {
		return UserAgent{}, fmt.Errorf("%w: %q", ErrInvalidNodeID, nodeID)
	}
	return UserAgent{primary: primary, nodeID: nodeID}, nil
}

// Unknown returns the fallback used by best-effort parsing.
func Unknown() UserAgent {
	return UserAgent{primary: Agent{name: UnknownName, version: DefaultVersion}}
}

// AddAgent returns a copy of ua with a appended to the informational agents.
// The receiver is not modified.
func (ua UserAgent) AddAgent(a Agent) UserAgent {
	informational := make([]Agent, len(ua.informational), len(ua.informational)+1)
	copy(informational, ua.informational)
	return UserAgent{
		primary:       ua.primary,
		informational: append(informational, a),
		nodeID:        ua.nodeID,
	}
}

// Primary returns the agent that originated the request.
func (ua UserAgent) Primary() Agent { return ua.primary }

// Informational returns a copy of the informational agents in order.
func (ua UserAgent) Informational() []Agent { return slices.Clone(ua.informational) }

// NodeID returns the node id and whether one is set.
func (ua UserAgent) NodeID() (string, bool) { return ua.nodeID, ua.nodeID != "" }

// IsZero reports whether ua is the zero value.
func (ua UserAgent) IsZero() bool {
	return ua.primary == Agent{} && len(ua.informational) == 0 && ua.nodeID == ""
}

// Equal reports structural equality.
func (ua UserAgent) Equal(other UserAgent) bool {
	return ua.primary == other.primary &&
		ua.nodeID == other.nodeID &&
		slices.Equal(ua.informational, other.informational)
}

// String returns the canonical header value, see Format.
func (ua UserAgent) String() string { return Format(ua) }

// MarshalText implements encoding.TextMarshaler.
func (ua UserAgent) MarshalText() ([]byte, error) {
	return []byte(Format(ua)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using strict parsing,
// so that misconfigured values fail loudly.
func (ua *UserAgent) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*ua = parsed
	return nil
}
