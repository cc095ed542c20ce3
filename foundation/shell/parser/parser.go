// File: parser.go
// Title: Command Invocation Parser
// Description: Parses a raw command line into an invocation: app name,
//              single-letter options (with or without values) and
//              quoted or bare arguments. Which options take values is
//              declared by the app being invoked.
// Version: v0.1.0
// Created: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial hand-rolled line scanner

package parser

import (
	"sort"
	"strings"

	gdsherror "github.com/msto63/gdsh/foundation/core/error"
)

// OptionSpec declares a single-letter option an app accepts
type OptionSpec struct {
	// HasValue indicates the option consumes the following token
	HasValue bool

	// Description is rendered by the man app
	Description string
}

// Invocation is one parsed command invocation
type Invocation struct {
	// Name is the app name, lower-cased
	Name string

	// Line is the raw argument text after the app name
	Line string

	options map[string]string
	args    []string
}

// Option returns the value of an option and whether it was supplied.
// Value-less options are present with an empty value.
func (inv *Invocation) Option(name string) (string, bool) {
	value, ok := inv.options[name]
	return value, ok
}

// OptionOr returns the value of an option, or def when absent
func (inv *Invocation) OptionOr(name, def string) string {
	if value, ok := inv.options[name]; ok {
		return value
	}
	return def
}

// HasOption reports whether an option was supplied
func (inv *Invocation) HasOption(name string) bool {
	_, ok := inv.options[name]
	return ok
}

// Args returns the positional arguments
func (inv *Invocation) Args() []string {
	return inv.args
}

// Arg returns the i-th positional argument or "" when out of range
func (inv *Invocation) Arg(i int) string {
	if i < 0 || i >= len(inv.args) {
		return ""
	}
	return inv.args[i]
}

// SplitAppName splits a raw line into the app name and the remaining
// argument text. The name is lower-cased; an empty line yields "".
func SplitAppName(line string) (name, rest string) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", ""
	}

	if i := strings.IndexAny(trimmed, " \t"); i >= 0 {
		return strings.ToLower(trimmed[:i]), strings.TrimSpace(trimmed[i+1:])
	}
	return strings.ToLower(trimmed), ""
}

// Parse parses the argument text of an invocation against the option
// declarations of the app being invoked
func Parse(name, rest string, specs map[string]OptionSpec) (*Invocation, error) {
	inv := &Invocation{
		Name:    name,
		Line:    rest,
		options: make(map[string]string),
	}

	tokens, err := tokenize(rest)
	if err != nil {
		return nil, err
	}

	for i := 0; i < len(tokens); i++ {
		token := tokens[i]

		if !token.bare || !strings.HasPrefix(token.text, "-") || len(token.text) < 2 {
			inv.args = append(inv.args, token.text)
			continue
		}

		// Option cluster: every letter is an option, only the last
		// one may consume a value
		cluster := token.text[1:]
		for j, r := range cluster {
			opt := string(r)
			spec, known := specs[opt]
			if !known {
				return nil, gdsherror.Newf("unknown option -%s to %s (may be %s)",
					opt, name, optionAlternatives(specs)).
					WithCode(gdsherror.CodeInvalidArgument).
					WithOperation("parse-invocation")
			}

			if !spec.HasValue {
				inv.options[opt] = ""
				continue
			}

			if j != lastIndex(cluster) {
				// A value-taking option inside a cluster would leave
				// trailing letters with nothing to bind to
				return nil, gdsherror.Newf("option -%s takes a value and must end its group", opt).
					WithCode(gdsherror.CodeInvalidArgument).
					WithOperation("parse-invocation")
			}

			if i+1 >= len(tokens) {
				return nil, gdsherror.Newf("option -%s to %s requires a value", opt, name).
					WithCode(gdsherror.CodeInvalidArgument).
					WithOperation("parse-invocation")
			}
			i++
			inv.options[opt] = tokens[i].text
		}
	}

	return inv, nil
}

// lastIndex returns the byte index of the last rune in s
func lastIndex(s string) int {
	last := 0
	for i := range s {
		last = i
	}
	return last
}

// optionAlternatives renders the accepted options for error feedback
func optionAlternatives(specs map[string]OptionSpec) string {
	if len(specs) == 0 {
		return "none"
	}
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, "-"+name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// token is one scanned token; bare is false for quoted tokens, which
// are never interpreted as options
type token struct {
	text string
	bare bool
}

// tokenize splits the argument text on whitespace, honoring single and
// double quotes and backslash escapes inside double quotes
func tokenize(input string) ([]token, error) {
	var tokens []token
	var current strings.Builder

	inToken := false
	quoted := false
	pos := 0

	flush := func(bare bool) {
		if inToken {
			tokens = append(tokens, token{text: current.String(), bare: bare && !quoted})
			current.Reset()
			inToken = false
			quoted = false
		}
	}

	for pos < len(input) {
		ch := input[pos]

		switch ch {
		case ' ', '\t':
			flush(true)
			pos++

		case '"':
			inToken = true
			quoted = true
			pos++
			closed := false
			for pos < len(input) {
				if input[pos] == '\\' && pos+1 < len(input) {
					current.WriteByte(input[pos+1])
					pos += 2
					continue
				}
				if input[pos] == '"' {
					pos++
					closed = true
					break
				}
				current.WriteByte(input[pos])
				pos++
			}
			if !closed {
				return nil, gdsherror.New("unterminated double-quoted string").
					WithCode(gdsherror.CodeSyntax).
					WithOperation("tokenize")
			}

		case '\'':
			inToken = true
			quoted = true
			pos++
			closed := false
			for pos < len(input) {
				if input[pos] == '\'' {
					pos++
					closed = true
					break
				}
				current.WriteByte(input[pos])
				pos++
			}
			if !closed {
				return nil, gdsherror.New("unterminated single-quoted string").
					WithCode(gdsherror.CodeSyntax).
					WithOperation("tokenize")
			}

		default:
			inToken = true
			current.WriteByte(ch)
			pos++
		}
	}
	flush(true)

	return tokens, nil
}
