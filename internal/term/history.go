package term

import (
	"strconv"
	"strings"
)

// EventError reports a history reference that does not resolve.
type EventError struct {
	Fragment string
}

func (e *EventError) Error() string { return "no such event: " + e.Fragment }

// historyRef is one parsed back-reference. back counts from the most recent
// entry (1), arg is a 0-based argument index or -1 for the whole line.
type historyRef struct {
	back int
	arg  int
	rest bool // !-N:* form
}

// maxRefNumber bounds parsed numbers; anything that large never resolves.
const maxRefNumber = 1 << 24

func (r historyRef) expand(history []string, isSpace SpaceFunc, escape bool) (string, bool) {
	if r.back < 1 || r.back > len(history) {
		return "", false
	}
	line := history[len(history)-r.back]
	if r.arg < 0 && !r.rest {
		if escape {
			return quoteIfNeeded(line, isSpace), true
		}
		return line, true
	}

	args, _ := SplitBySpace(line, true, isSpace)
	args = trimTrailingEmpty(args, line, isSpace)
	if r.rest {
		if len(args) <= 1 {
			return "", true
		}
		rest := make([]string, 0, len(args)-1)
		for _, a := range args[1:] {
			if escape {
				a = quoteIfNeeded(a, isSpace)
			}
			rest = append(rest, a)
		}
		return strings.Join(rest, " "), true
	}
	if r.arg >= len(args) {
		return "", false
	}
	if escape {
		return quoteIfNeeded(args[r.arg], isSpace), true
	}
	return args[r.arg], true
}

type refState int

const (
	refNone  refState = iota
	refBang           // saw '!'
	refDash           // saw "!-"
	refBack           // reading N of "!-N"
	refColon          // saw ':'
	refArg            // reading M of "!-N:M"
)

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func accumulate(n int, c byte) int {
	n = n*10 + int(c-'0')
	if n > maxRefNumber {
		n = maxRefNumber
	}
	return n
}

// ResolveHistoryReferences expands the shell-like history references of in
// against history (oldest first):
//
//	!!      most recent line
//	!-N     N-th most recent line
//	!-N:M   M-th argument (0-based) of that line
//	!-N:*   every argument of that line but the first
//	!:M !:* same as !-1:M and !-1:*
//
// A '!' that starts none of these is kept literally. Substituted text is
// quoted when it holds delimiters, with three exceptions: a reference that
// makes up the whole input, a !-N or !-N:M reference still open at the end
// of the input, and the arguments of !-N:* when it is the whole input. The
// first reference that does not resolve aborts the whole expansion with an
// *EventError.
func ResolveHistoryReferences(in string, history []string, isSpace SpaceFunc) (out string, modified bool, err error) {
	if isSpace == nil {
		isSpace = asciiSpace
	}
	if strings.IndexByte(in, '!') < 0 {
		return in, false, nil
	}

	var b strings.Builder
	b.Grow(len(in))

	st := refNone
	start, back, arg := 0, 0, 0

	fail := func(end int) error {
		return &EventError{Fragment: in[start:end]}
	}
	emit := func(ref historyRef, end int, escape bool) error {
		s, ok := ref.expand(history, isSpace, escape)
		if !ok {
			return fail(end)
		}
		b.WriteString(s)
		modified = true
		return nil
	}
	whole := func(end int) bool { return start == 0 && end == len(in) }

	for i := 0; i < len(in); i++ {
		c := in[i]
		switch st {
		case refNone:
			if c == '!' {
				st, start = refBang, i
				continue
			}
			b.WriteByte(c)

		case refBang:
			switch c {
			case '!':
				if err := emit(historyRef{back: 1, arg: -1}, i+1, !whole(i+1)); err != nil {
					return "", false, err
				}
				st = refNone
			case '-':
				st = refDash
			case ':':
				back, st = 1, refColon
			default:
				b.WriteByte('!')
				st = refNone
				i--
			}

		case refDash:
			if !isDigit(c) {
				return "", false, fail(i + 1)
			}
			back, st = int(c-'0'), refBack

		case refBack:
			switch {
			case isDigit(c):
				back = accumulate(back, c)
			case c == ':':
				st = refColon
			default:
				if err := emit(historyRef{back: back, arg: -1}, i, true); err != nil {
					return "", false, err
				}
				st = refNone
				i--
			}

		case refColon:
			switch {
			case isDigit(c):
				arg, st = int(c-'0'), refArg
			case c == '*':
				if err := emit(historyRef{back: back, arg: -1, rest: true}, i+1, !whole(i+1)); err != nil {
					return "", false, err
				}
				st = refNone
			default:
				return "", false, fail(i + 1)
			}

		case refArg:
			if isDigit(c) {
				arg = accumulate(arg, c)
				continue
			}
			if err := emit(historyRef{back: back, arg: arg}, i, true); err != nil {
				return "", false, err
			}
			st = refNone
			i--
		}
	}

	// A reference still open at the end of the line is substituted verbatim.
	switch st {
	case refBang:
		b.WriteByte('!')
	case refDash, refColon:
		return "", false, fail(len(in))
	case refBack:
		if err := emit(historyRef{back: back, arg: -1}, len(in), false); err != nil {
			return "", false, err
		}
	case refArg:
		if err := emit(historyRef{back: back, arg: arg}, len(in), false); err != nil {
			return "", false, err
		}
	}
	return b.String(), modified, nil
}

// parseHistoryRef parses text that must consist of exactly one reference.
func parseHistoryRef(s string) (historyRef, bool) {
	if s == "!!" {
		return historyRef{back: 1, arg: -1}, true
	}
	if !strings.HasPrefix(s, "!") || len(s) < 2 {
		return historyRef{}, false
	}
	body := s[1:]
	ref := historyRef{back: 1, arg: -1}
	if strings.HasPrefix(body, "-") {
		num := body[1:]
		if i := strings.IndexByte(num, ':'); i >= 0 {
			num, body = num[:i], num[i:]
		} else {
			body = ""
		}
		n, ok := parseRefNumber(num)
		if !ok {
			return historyRef{}, false
		}
		ref.back = n
	}
	if body == "" {
		return ref, true
	}
	if !strings.HasPrefix(body, ":") {
		return historyRef{}, false
	}
	body = body[1:]
	if body == "*" {
		ref.rest = true
		return ref, true
	}
	n, ok := parseRefNumber(body)
	if !ok {
		return historyRef{}, false
	}
	ref.arg = n
	return ref, true
}

func parseRefNumber(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > maxRefNumber {
		return maxRefNumber, true
	}
	return n, true
}

// ResolveHistoryReference expands ref, which must be exactly one history
// reference. escape quotes the result when it holds delimiters.
func ResolveHistoryReference(ref string, history []string, isSpace SpaceFunc, escape bool) (string, error) {
	if isSpace == nil {
		isSpace = asciiSpace
	}
	r, ok := parseHistoryRef(ref)
	if !ok {
		return "", &EventError{Fragment: ref}
	}
	s, ok := r.expand(history, isSpace, escape)
	if !ok {
		return "", &EventError{Fragment: ref}
	}
	return s, nil
}

// IsHistoryRef reports whether s is exactly one history reference.
func IsHistoryRef(s string) bool {
	_, ok := parseHistoryRef(s)
	return ok
}
