package term

// SpaceFunc reports how many bytes at the head of s form one delimiter unit,
// or 0 when s does not start with a delimiter.
type SpaceFunc func(s string) int

// asciiSpace is the default SpaceFunc.
func asciiSpace(s string) int {
	if len(s) > 0 && s[0] == ' ' {
		return 1
	}
	return 0
}

// SplitBySpace splits a command line into arguments.
//
// Runs of delimiters separate arguments. Double quotes group delimiters into
// one argument and a backslash escapes the next byte, inside or outside
// quotes. A line holding at least one argument and ending with a delimiter
// yields a trailing empty argument, which is what completers see while the
// user starts typing a new argument.
//
// An unterminated quote makes the call fail (ok == false) unless
// ignoreUnmatchedQuote is set, in which case the open argument is kept.
func SplitBySpace(in string, ignoreUnmatchedQuote bool, isSpace SpaceFunc) (args []string, ok bool) {
	if isSpace == nil {
		isSpace = asciiSpace
	}
	args = []string{}

	skipSpaces := func(i int) int {
		for i < len(in) {
			n := isSpace(in[i:])
			if n <= 0 {
				break
			}
			i += n
		}
		return i
	}

	i := skipSpaces(0)
	for i < len(in) {
		var cur []byte
		escaped := false
		for i < len(in) {
			if !escaped && isSpace(in[i:]) > 0 {
				break
			}
			c := in[i]
			switch {
			case escaped:
				cur = append(cur, c)
				escaped = false
				i++
			case c == '\\':
				escaped = true
				i++
			case c == '"':
				i++
				closed := false
				for i < len(in) {
					c = in[i]
					if escaped {
						cur = append(cur, c)
						escaped = false
					} else if c == '\\' {
						escaped = true
					} else if c == '"' {
						closed = true
						i++
						break
					} else {
						cur = append(cur, c)
					}
					i++
				}
				if !closed {
					if !ignoreUnmatchedQuote {
						return nil, false
					}
					return append(args, string(cur)), true
				}
			default:
				cur = append(cur, c)
				i++
			}
		}
		args = append(args, string(cur))
		if i < len(in) {
			i = skipSpaces(i)
			if i == len(in) {
				args = append(args, "")
			}
		}
	}
	return args, true
}

// trimTrailingEmpty drops the empty argument SplitBySpace adds for a line
// ending with a delimiter. A quoted empty last argument is kept.
func trimTrailingEmpty(args []string, line string, isSpace SpaceFunc) []string {
	n := len(args)
	if n < 2 || args[n-1] != "" || !endsWithSpace(line, isSpace) {
		return args
	}
	return args[:n-1]
}

// endsWithSpace reports whether the last delimiter unit of s reaches its end.
func endsWithSpace(s string, isSpace SpaceFunc) bool {
	for i := len(s) - 1; i >= 0; i-- {
		if n := isSpace(s[i:]); n > 0 {
			return i+n == len(s)
		}
	}
	return false
}

// quoteIfNeeded wraps s in double quotes when it is empty or contains a
// delimiter, a quote or a backslash, escaping embedded quotes and
// backslashes so that SplitBySpace gives s back as a single argument.
func quoteIfNeeded(s string, isSpace SpaceFunc) string {
	if isSpace == nil {
		isSpace = asciiSpace
	}
	need := s == ""
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' || isSpace(s[i:]) > 0 {
			need = true
			break
		}
	}
	if !need {
		return s
	}
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	out = append(out, '"')
	return string(out)
}
