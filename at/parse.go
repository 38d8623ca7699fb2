package at

import (
	"strings"
)

// nonStandardDelimiters may stand in for "=" between a command name and its
// arguments. Some peers use them, e.g. ATD>1; for memory dialing.
const nonStandardDelimiters = "><:!@$%&/|^~"

// Parse converts one command line, without its terminator, into a Command.
//
// The AT prefix and the command name are case-insensitive and normalised to
// upper case. Whitespace outside quoted strings is ignored. Parse never
// panics; malformed input yields a *ParseError.
func Parse(line string) (Command, error) {
	p := &parser{line: strings.TrimRight(line, " \t\r\n")}
	return p.command()
}

// MustParse is like Parse but panics if the line cannot be parsed.
// It simplifies building fixtures in tests.
func MustParse(line string) Command {
	cmd, err := Parse(line)
	if err != nil {
		panic(err)
	}
	return cmd
}

type parser struct {
	line string
	pos  int
}

func (p *parser) fail(err error) error {
	return &ParseError{Line: p.line, Offset: p.pos, Err: err}
}

func (p *parser) done() bool {
	return p.pos >= len(p.line)
}

// peek returns the current character, or 0 once the input is exhausted.
func (p *parser) peek() byte {
	if p.done() {
		return 0
	}
	return p.line[p.pos]
}

func (p *parser) skipSpace() {
	for !p.done() && isSpace(p.line[p.pos]) {
		p.pos++
	}
}

func (p *parser) command() (Command, error) {
	p.skipSpace()
	if p.done() {
		return Command{}, p.fail(ErrEmptyLine)
	}
	if len(p.line)-p.pos < len(Prefix) || !strings.EqualFold(p.line[p.pos:p.pos+len(Prefix)], Prefix) {
		return Command{}, p.fail(ErrMissingPrefix)
	}
	p.pos += len(Prefix)
	if p.done() {
		return Command{}, p.fail(ErrMissingName)
	}

	var cmd Command
	switch c := p.peek(); {
	case c == ExtensionMarker:
		cmd.Extension = true
		p.pos++
		start := p.pos
		for !p.done() && isNameChar(p.peek()) {
			p.pos++
		}
		if p.pos == start {
			return Command{}, p.fail(ErrMissingName)
		}
		cmd.Name = strings.ToUpper(p.line[start:p.pos])
	case isLetter(c):
		// Basic commands are a single letter; anything after it belongs
		// to the arguments (ATD5551234;).
		cmd.Name = strings.ToUpper(string(c))
		p.pos++
	default:
		return Command{}, p.fail(ErrUnknownExtension)
	}

	switch {
	case p.done():
		return cmd, nil
	case strings.HasPrefix(p.line[p.pos:], "=?"):
		cmd.Kind = Test
		p.pos += 2
		return cmd, p.end()
	case p.peek() == '?':
		cmd.Kind = Read
		p.pos++
		return cmd, p.end()
	}

	switch c := p.peek(); {
	case c == '=':
		cmd.Args.Delimiter = "="
		p.pos++
	case strings.IndexByte(nonStandardDelimiters, c) >= 0:
		cmd.Args.Delimiter = string(c)
		p.pos++
	case cmd.Extension:
		// Extended names run up to the delimiter, so anything else here
		// cannot be an argument.
		return Command{}, p.fail(ErrTrailingCharacters)
	}

	list, err := p.argumentList(false)
	if err != nil {
		return Command{}, err
	}
	cmd.Args.List = list

	if p.peek() == ';' {
		cmd.Args.Terminator = ";"
		p.pos++
	}
	return cmd, p.end()
}

// end verifies nothing but whitespace remains.
func (p *parser) end() error {
	p.skipSpace()
	switch {
	case p.done():
		return nil
	case p.peek() == ')':
		return p.fail(ErrUnbalancedGroup)
	default:
		return p.fail(ErrTrailingCharacters)
	}
}

// argumentList parses comma separated arguments. An empty list is only
// produced when the list ends immediately; "1," yields two arguments, the
// second one empty.
func (p *parser) argumentList(nested bool) ([]Argument, error) {
	p.skipSpace()
	if p.listEnd(nested) {
		return nil, nil
	}

	var list []Argument
	for {
		arg, err := p.argument()
		if err != nil {
			return nil, err
		}
		list = append(list, arg)

		p.skipSpace()
		if p.peek() != ',' {
			return list, nil
		}
		p.pos++
	}
}

func (p *parser) listEnd(nested bool) bool {
	if p.done() {
		return true
	}
	if nested {
		return p.peek() == ')'
	}
	return p.peek() == ';'
}

func (p *parser) argument() (Argument, error) {
	p.skipSpace()

	if p.peek() == '(' {
		open := p.pos
		p.pos++
		list, err := p.argumentList(true)
		if err != nil {
			return Argument{}, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			p.pos = open
			return Argument{}, p.fail(ErrUnbalancedGroup)
		}
		p.pos++
		return Group(list...), nil
	}

	value, quoted, err := p.primitive()
	if err != nil {
		return Argument{}, err
	}
	p.skipSpace()
	if p.peek() != '=' {
		return Argument{Value: value, Quoted: quoted}, nil
	}

	// key=value
	if quoted || value == "" {
		return Argument{}, p.fail(ErrNoMatchingRule)
	}
	p.pos++
	p.skipSpace()
	v, q, err := p.primitive()
	if err != nil {
		return Argument{}, err
	}
	return Argument{Key: value, Value: v, Quoted: q}, nil
}

func (p *parser) primitive() (string, bool, error) {
	if p.peek() == '"' {
		end := strings.IndexByte(p.line[p.pos+1:], '"')
		if end < 0 {
			return "", false, p.fail(ErrUnterminatedString)
		}
		value := p.line[p.pos+1 : p.pos+1+end]
		p.pos += end + 2
		return value, true, nil
	}

	start := p.pos
	for !p.done() && !isSeparator(p.peek()) {
		p.pos++
	}
	return p.line[start:p.pos], false, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isLetter(c) || ('0' <= c && c <= '9')
}

func isSeparator(c byte) bool {
	return isSpace(c) || strings.IndexByte(`,()=;"`, c) >= 0
}
