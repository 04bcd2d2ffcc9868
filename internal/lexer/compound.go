package lexer

import "strings"

// Part is one element of a compound identifier. An omitted part (the
// literal NULL) has Valid false; "no value" and "empty-string value"
// differ in identifier resolution, so absence is never the empty string.
type Part struct {
	Value string
	Valid bool
}

// NullPart is the absent-part marker.
var NullPart = Part{}

// Compound is a parsed metadata-command line: the command word followed
// by the dot-separated identifier parts of a possibly-qualified name
// such as catalog.schema.table.
type Compound struct {
	Command string
	Parts   []Part
}

// Values returns the part values with absent parts as empty strings,
// for callers that only need the textual form.
func (c Compound) Values() []string {
	values := make([]string, len(c.Parts))
	for i, p := range c.Parts {
		values[i] = p.Value
	}
	return values
}

// splitCompound scanner states.
const (
	stSpace    = iota // between parts
	stDotSpace        // between parts, a dot has been seen
	stQuoted          // inside a quoted identifier
	stUnquoted        // inside an unquoted identifier
)

// SplitCompound parses a line of the shape
//
//	<command> <part1>[.<part2>[.<part3>...]]
//
// where parts may be quoted per the connection's convention. On Oracle,
// which quotes with double quotes,
//
//	tables "My Schema"."My Table"
//
// yields command "tables" and parts {My Schema, My Table}. A doubled
// close quote inside a quoted part is one literal quote character.
// Unquoted parts fold to upper case when the convention says so and the
// literal NULL becomes the absent-part marker; quoted parts are taken
// verbatim. A missing closing quote at end of line is tolerated: the
// partial part is still emitted so the line remains usable for
// completion and preview.
func SplitCompound(line string, q Quoting) Compound {
	// Trim trailing semicolon and whitespace before scanning.
	n := len(line)
	for n > 0 && (isSpace(line[n-1]) || line[n-1] == ';') {
		n--
	}
	line = line[:n]

	// The leading command word is kept verbatim, never folded.
	i := 0
	for i < len(line) && isSpace(line[i]) {
		i++
	}
	cmdStart := i
	for i < len(line) && !isSpace(line[i]) {
		i++
	}
	out := Compound{Command: line[cmdStart:i]}

	state := stSpace
	var b strings.Builder
	flush := func(fold bool) {
		word := b.String()
		b.Reset()
		switch {
		case fold && strings.EqualFold(word, "NULL"):
			out.Parts = append(out.Parts, NullPart)
		case fold && q.Upper:
			out.Parts = append(out.Parts, Part{Value: strings.ToUpper(word), Valid: true})
		default:
			out.Parts = append(out.Parts, Part{Value: word, Valid: true})
		}
	}

	for ; i < len(line); i++ {
		c := line[i]
		switch state {
		case stSpace, stDotSpace:
			switch {
			case isSpace(c):
			case c == '.':
				state = stDotSpace
			case c == q.Start:
				state = stQuoted
			default:
				state = stUnquoted
				b.WriteByte(c)
			}
		case stQuoted:
			if c == q.End {
				if i+1 < len(line) && line[i+1] == q.End {
					b.WriteByte(q.End)
					i++
				} else {
					flush(false)
					state = stSpace
				}
			} else {
				b.WriteByte(c)
			}
		case stUnquoted:
			switch {
			case isSpace(c):
				flush(true)
				state = stSpace
			case c == '.':
				flush(true)
				state = stDotSpace
			default:
				b.WriteByte(c)
			}
		}
	}

	// Lenient end of line: emit the partial part rather than discard it.
	switch state {
	case stQuoted:
		flush(false)
	case stUnquoted:
		flush(true)
	}
	return out
}
