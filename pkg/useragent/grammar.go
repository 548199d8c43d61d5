package useragent

import "regexp"

const (
	// DefaultVersion replaces any version that does not satisfy the version grammar.
	DefaultVersion = "0.0.0"
	// UnknownName is the primary agent name used when best-effort parsing finds nothing.
	UnknownName = "unknown"

	nodeIDCommentPrefix = "nodeId:"
)

// Grammars are anchored so that partial matches never validate a field.
var (
	nameRegex    = regexp.MustCompile(`^[A-Za-z0-9.-]+$`)
	nodeIDRegex  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.-]*$`)
	versionRegex = regexp.MustCompile(`^[0-9]+(\.[0-9]+)+([-+][0-9A-Za-z][0-9A-Za-z.+-]*)?$`)
)

// IsValidName reports whether name is an acceptable agent name.
func IsValidName(name string) bool { return nameRegex.MatchString(name) }

// IsValidNodeID reports whether id is an acceptable node id.
func IsValidNodeID(id string) bool { return nodeIDRegex.MatchString(id) }

// IsValidVersion reports whether version is orderable: at least two numeric
// components, optionally followed by a pre-release or build qualifier.
func IsValidVersion(version string) bool { return versionRegex.MatchString(version) }

// isNameByte mirrors nameRegex for a single byte and is used by the scanner
// to find the name portion of a candidate without regex backtracking.
func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '.' || c == '-'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func effectiveVersion(version string) string {
	if IsValidVersion(version) {
		return version
	}
	return DefaultVersion
}
