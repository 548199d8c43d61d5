package useragent

import "strings"

// Format renders ua in the canonical wire format:
//
//	primary/version (nodeId:id) info1/version info2/version
//
// Versions that do not satisfy the version grammar are rendered as 0.0.0,
// for informational agents as well as the primary. Parse drops an
// informational agent whose version is invalid but keeps it once it reads
// 0.0.0, so Parse(Format(ua)) equals ua only when every agent, the primary
// included, carries a valid version.
func Format(ua UserAgent) string {
	var b strings.Builder
	b.Grow(32 + 16*len(ua.informational))

	writeAgent(&b, ua.primary)
	if ua.nodeID != "" {
		b.WriteString(" (")
		b.WriteString(nodeIDCommentPrefix)
		b.WriteString(ua.nodeID)
		b.WriteByte(')')
	}
	for _, a := range ua.informational {
		b.WriteByte(' ')
		writeAgent(&b, a)
	}
	return b.String()
}

func writeAgent(b *strings.Builder, a Agent) {
	b.WriteString(a.name)
	b.WriteByte('/')
	b.WriteString(effectiveVersion(a.version))
}
