// Package confline extracts key/value settings from single lines of a
// firmware-style config file.
//
// The accepted line shape is:
//
//	[space] key [space] = [space] value [space] [// comment]
//
// where "space" covers the space character and any byte outside the
// printable ASCII range (below 32 or above 127). The key is everything
// from the first non-space byte up to the first space or '='. The value
// is everything after the '=' with surrounding space trimmed. A "//"
// sequence anywhere cuts the line off at that point; a lone '/' is
// ordinary text.
//
// Scan never reports a pair with an empty key or an empty value: a line
// whose value never materializes (no '=', nothing after the '=', or a
// comment where the value would have started) is simply not a match.
package confline

// KV is a key/value pair extracted from one config line. Both fields are
// substrings of the scanned line.
type KV struct {
	Key   string
	Value string
}

// scanState tracks where in the line the scanner currently is. Each
// state owns its transition rules; there is no cross-state flag passing.
type scanState int

const (
	// Skipping space before the key.
	stateKeyLeadingSpace scanState = iota
	// Inside the key, waiting for its terminator.
	stateKeyBody
	// Key ended on a space; everything until '=' is ignored.
	stateSeekEquals
	// Skipping space between '=' and the value.
	stateValueLeadingSpace
	// Inside the value; runs to end of line.
	stateValueBody
)

// isSpecial reports whether c delimits tokens like a space does. This is
// byte-wise on purpose: multi-byte sequences are never part of a key and
// end up delimiting just like the original ASCII check intended.
func isSpecial(c byte) bool {
	return c < 32 || c > 127
}

func isBlank(c byte) bool {
	return c == ' ' || isSpecial(c)
}

// Scan runs a single left-to-right pass over one already-delimited line
// and reports the key/value pair it defines, if any.
//
// ok is false for comment-only lines, lines without a '=', lines whose
// key is empty, and lines where the value never starts before the line
// (or a comment) ends. A line ending directly after the '=' is treated
// as "no value", not as an empty value.
func Scan(line string) (kv KV, ok bool) {
	state := stateKeyLeadingSpace

	var keyStart, keyEnd int

	valStart := -1
	end := len(line)

	// A comment cut can arrive in any state, so consecutive slashes are
	// counted alongside the state machine rather than inside it.
	slashes := 0

	for i := 0; i < len(line); i++ {
		c := line[i]

		if c == '/' {
			if slashes == 1 {
				// Second slash of a "//": the line ends before the
				// first slash. A value that only "started" at that
				// first slash never really started.
				end = i - 1
				if valStart >= end {
					valStart = -1
				}

				break
			}

			slashes++
		} else {
			slashes = 0
		}

		switch state {
		case stateKeyLeadingSpace:
			if isBlank(c) {
				continue
			}

			if c == '=' {
				// '=' before any key byte: nothing to name the value.
				return KV{}, false
			}

			keyStart = i
			state = stateKeyBody

		case stateKeyBody:
			if c == '=' {
				keyEnd = i
				state = stateValueLeadingSpace
			} else if isBlank(c) {
				keyEnd = i
				state = stateSeekEquals
			}

		case stateSeekEquals:
			// Only a literal '=' leaves this state; anything else
			// between key and '=' is ignored.
			if c == '=' {
				state = stateValueLeadingSpace
			}

		case stateValueLeadingSpace:
			if !isBlank(c) {
				valStart = i
				state = stateValueBody
			}

		case stateValueBody:
			// Nothing to do per byte; the trailing-space cut is
			// applied once the end of the value is known.
		}
	}

	if state != stateValueBody || valStart < 0 || valStart >= end {
		return KV{}, false
	}

	value := trimTrailingBlank(line[valStart:end])
	if value == "" {
		return KV{}, false
	}

	return KV{Key: line[keyStart:keyEnd], Value: value}, true
}

func trimTrailingBlank(s string) string {
	i := len(s)
	for i > 0 && isBlank(s[i-1]) {
		i--
	}

	return s[:i]
}
