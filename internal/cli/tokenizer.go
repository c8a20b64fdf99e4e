package cli

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Argument prefixes. A prefix is only recognised after whitespace, so values
// such as "a/b" inside an address are left alone.
const (
	prefixRole     = "r/"
	prefixName     = "n/"
	prefixPhone    = "ph/"
	prefixEmail    = "e/"
	prefixAddress  = "a/"
	prefixSubject  = "s/"
	prefixLevel    = "l/"
	prefixPrice    = "p/"
	prefixTag      = "t/"
	prefixDay      = "d/"
	prefixTime     = "t/"
	prefixDuration = "dur/"
)

// arguments is the tokenized form of `PREAMBLE x/value y/value ...`.
type arguments struct {
	preamble string
	values   map[string][]string
	order    []string
}

type mark struct {
	pos    int
	prefix string
}

// tokenize splits input on the given prefixes. Runs of whitespace collapse to
// one space and every value is trimmed.
func tokenize(input string, prefixes ...string) arguments {
	text := " " + strings.Join(strings.Fields(input), " ")

	var marks []mark
	for _, prefix := range prefixes {
		needle := " " + prefix
		from := 0
		for {
			i := strings.Index(text[from:], needle)
			if i < 0 {
				break
			}
			marks = append(marks, mark{pos: from + i, prefix: prefix})
			from += i + len(needle)
		}
	}
	sort.Slice(marks, func(i, j int) bool { return marks[i].pos < marks[j].pos })

	args := arguments{values: make(map[string][]string)}
	if len(marks) == 0 {
		args.preamble = strings.TrimSpace(text)
		return args
	}

	args.preamble = strings.TrimSpace(text[:marks[0].pos])
	for i, m := range marks {
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1].pos
		}
		value := strings.TrimSpace(text[m.pos+1+len(m.prefix) : end])
		if _, seen := args.values[m.prefix]; !seen {
			args.order = append(args.order, m.prefix)
		}
		args.values[m.prefix] = append(args.values[m.prefix], value)
	}
	return args
}

// value returns the last value given for prefix.
func (a arguments) value(prefix string) (string, bool) {
	values := a.values[prefix]
	if len(values) == 0 {
		return "", false
	}
	return values[len(values)-1], true
}

func (a arguments) all(prefix string) []string {
	return slices.Clone(a.values[prefix])
}

func (a arguments) has(prefix string) bool {
	_, ok := a.values[prefix]
	return ok
}

// missing lists the prefixes from required that were not given.
func (a arguments) missing(required ...string) []string {
	var out []string
	for _, prefix := range required {
		if !a.has(prefix) {
			out = append(out, prefix)
		}
	}
	return out
}

// singleValued rejects prefixes that were given more than once.
func (a arguments) singleValued(prefixes ...string) error {
	var repeated []string
	for _, prefix := range prefixes {
		if len(a.values[prefix]) > 1 {
			repeated = append(repeated, prefix)
		}
	}
	if len(repeated) > 0 {
		return fmt.Errorf("%w: multiple values specified for the following single-valued field(s): %s",
			ErrInvalidFormat, strings.Join(repeated, " "))
	}
	return nil
}
