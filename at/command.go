package at

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the syntactic form of a command line.
type Kind int

const (
	// Execute is AT+NAME, AT+NAME=args or a basic command such as ATA.
	Execute Kind = iota
	// Read is AT+NAME?
	Read
	// Test is AT+NAME=?
	Test
)

func (k Kind) String() string {
	switch k {
	case Execute:
		return "execute"
	case Read:
		return "read"
	case Test:
		return "test"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Argument is one element of an argument list. It is a primitive value
// (bare or quoted), a key=value pair, or a parenthesized group of arguments.
type Argument struct {
	// Key is set for key=value arguments only.
	Key    string
	Value  string
	Quoted bool

	// IsGroup marks a parenthesized group; its members are in List.
	IsGroup bool
	List    []Argument
}

// Primitive returns a bare argument.
func Primitive(v string) Argument {
	return Argument{Value: v}
}

// Int returns a bare integer argument.
func Int(v int) Argument {
	return Argument{Value: strconv.Itoa(v)}
}

// Quoted returns a double-quoted string argument.
func Quoted(v string) Argument {
	return Argument{Value: v, Quoted: true}
}

// Group returns a parenthesized argument group.
func Group(args ...Argument) Argument {
	return Argument{IsGroup: true, List: args}
}

// Int parses the argument value as a decimal integer.
func (a Argument) Int() (int, error) {
	if a.IsGroup {
		return 0, fmt.Errorf("argument is a group, not an integer")
	}
	return strconv.Atoi(a.Value)
}

func (a Argument) String() string {
	var b strings.Builder
	writeArgument(&b, a)
	return b.String()
}

// Arguments holds the arguments of an execute command.
type Arguments struct {
	// Delimiter separates the command name from its arguments. It is empty
	// when the command carries none ("AT+CHUP"), "=" for conforming peers
	// and the literal character otherwise ("ATD>1;").
	Delimiter string
	List      []Argument
	// Terminator is ";" when the arguments were closed by one (dial strings).
	Terminator string
}

// Command is a single parsed command line.
type Command struct {
	Kind Kind
	// Name is the upper case command name without prefix or extension
	// marker, e.g. "BRSF" for AT+BRSF or "D" for ATD.
	Name      string
	Extension bool
	// Args is only populated for Execute commands.
	Args Arguments
}

// Arg returns the i-th argument, if present.
func (c Command) Arg(i int) (Argument, bool) {
	if i < 0 || i >= len(c.Args.List) {
		return Argument{}, false
	}
	return c.Args.List[i], true
}

// String formats the command as the hands-free unit would send it,
// without the line terminator.
func (c Command) String() string {
	var b strings.Builder
	b.WriteString(Prefix)
	if c.Extension {
		b.WriteByte(ExtensionMarker)
	}
	b.WriteString(c.Name)

	switch c.Kind {
	case Read:
		b.WriteString("?")
	case Test:
		b.WriteString("=?")
	default:
		b.WriteString(c.Args.Delimiter)
		writeArguments(&b, c.Args.List)
		b.WriteString(c.Args.Terminator)
	}
	return b.String()
}

func writeArguments(b *strings.Builder, args []Argument) {
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		writeArgument(b, arg)
	}
}

func writeArgument(b *strings.Builder, a Argument) {
	if a.IsGroup {
		b.WriteByte('(')
		writeArguments(b, a.List)
		b.WriteByte(')')
		return
	}
	if a.Key != "" {
		b.WriteString(a.Key)
		b.WriteByte('=')
	}
	if a.Quoted {
		b.WriteByte('"')
		b.WriteString(a.Value)
		b.WriteByte('"')
		return
	}
	b.WriteString(a.Value)
}
