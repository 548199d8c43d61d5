package useragent

import (
	"fmt"
	"strings"
)

// Parse strictly parses a user agent string. It fails with ErrParse only when
// no primary agent can be located; malformed fragments elsewhere are skipped.
func Parse(s string) (UserAgent, error) {
	return parse(s, func(s string) (UserAgent, error) {
		return UserAgent{}, fmt.Errorf("%w: %q", ErrParse, s)
	})
}

// TryParse parses s with best effort and never fails. Input without a usable
// primary agent yields Unknown().
func TryParse(s string) UserAgent {
	ua, _ := parse(s, func(string) (UserAgent, error) {
		return Unknown(), nil
	})
	return ua
}

type scanState int

const (
	seekingPrimary scanState = iota
	afterPrimary
	seekingInformational
)

// parse runs the scanner once over s. onMissing decides what happens when
// no primary agent is found.
func parse(s string, onMissing func(string) (UserAgent, error)) (UserAgent, error) {
	var (
		ua    UserAgent
		found bool
		state = seekingPrimary
		sc    = scanner{s: s}
	)

	for {
		sc.skipSpace()
		if sc.done() {
			break
		}

		switch state {
		case seekingPrimary:
			var (
				name, version string
				ok            bool
			)
			if sc.atComment() {
				if content, closed := sc.readComment(); closed {
					name, version, ok = candidateInComment(content)
				}
			} else {
				name, version, ok = splitCandidate(sc.readWord())
			}
			if !ok {
				continue
			}
			ua.primary = Agent{name: name, version: effectiveVersion(version)}
			found = true
			state = afterPrimary

		case afterPrimary:
			// Only a comment directly attached to the primary may carry the node id.
			state = seekingInformational
			if sc.atComment() {
				if content, closed := sc.readComment(); closed {
					if id, ok := nodeIDFromComment(content); ok {
						ua.nodeID = id
					}
				}
			}

		case seekingInformational:
			if sc.atComment() {
				sc.readComment()
				continue
			}
			name, version, ok := splitCandidate(sc.readWord())
			if ok && IsValidVersion(version) {
				ua.informational = append(ua.informational, Agent{name: name, version: version})
			}
		}
	}

	if !found {
		return onMissing(s)
	}
	return ua, nil
}

// splitCandidate extracts name/version from a word. The name is the longest
// run of name characters directly before a slash, so junk glued to the front
// of a word is dropped the same way leading words are. A slash without name
// characters before it is skipped in favour of the next one.
func splitCandidate(word string) (name, version string, ok bool) {
	for offset := 0; offset < len(word); {
		i := strings.IndexByte(word[offset:], '/')
		if i < 0 {
			return "", "", false
		}
		slash := offset + i
		if slash == len(word)-1 {
			return "", "", false
		}
		start := slash
		for start > 0 && isNameByte(word[start-1]) {
			start--
		}
		if start < slash {
			return word[start:slash], word[slash+1:], true
		}
		offset = slash + 1
	}
	return "", "", false
}

// candidateInComment finds the first candidate inside comment content.
// Nested parentheses only separate words here.
func candidateInComment(content string) (name, version string, ok bool) {
	words := strings.FieldsFunc(content, func(r rune) bool {
		return r < 0x80 && isSpace(byte(r)) || r == '(' || r == ')'
	})
	for _, word := range words {
		if name, version, ok = splitCandidate(word); ok {
			return name, version, true
		}
	}
	return "", "", false
}

func nodeIDFromComment(comment string) (string, bool) {
	id, ok := strings.CutPrefix(strings.TrimSpace(comment), nodeIDCommentPrefix)
	if !ok || !IsValidNodeID(id) {
		return "", false
	}
	return id, true
}

// scanner walks the input once; every method advances pos monotonically.
type scanner struct {
	s      string
	pos    int
	pairs  map[int]int
	paired bool
}

func (sc *scanner) done() bool { return sc.pos >= len(sc.s) }

func (sc *scanner) atComment() bool { return !sc.done() && sc.s[sc.pos] == '(' }

func (sc *scanner) skipSpace() {
	for !sc.done() && isSpace(sc.s[sc.pos]) {
		sc.pos++
	}
}

// readWord consumes a run of characters up to whitespace or an opening parenthesis.
func (sc *scanner) readWord() string {
	start := sc.pos
	for !sc.done() && !isSpace(sc.s[sc.pos]) && sc.s[sc.pos] != '(' {
		sc.pos++
	}
	return sc.s[start:sc.pos]
}

// readComment consumes a parenthesised comment, honouring nesting, and
// returns its content. An opening parenthesis that is never closed is a
// stray byte: only it is consumed and closed is false.
func (sc *scanner) readComment() (content string, closed bool) {
	if !sc.paired {
		sc.pairs = matchParens(sc.s)
		sc.paired = true
	}
	end, ok := sc.pairs[sc.pos]
	if !ok {
		sc.pos++
		return "", false
	}
	content = sc.s[sc.pos+1 : end]
	sc.pos = end + 1
	return content, true
}

// matchParens maps the offset of every '(' to the offset of the ')' that
// closes it. Unbalanced parentheses have no entry.
func matchParens(s string) map[int]int {
	var (
		pairs map[int]int
		open  []int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			open = append(open, i)
		case ')':
			if n := len(open); n > 0 {
				if pairs == nil {
					pairs = make(map[int]int)
				}
				pairs[open[n-1]] = i
				open = open[:n-1]
			}
		}
	}
	return pairs
}
