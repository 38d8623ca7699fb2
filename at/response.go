package at

import (
	"fmt"
	"strconv"
	"strings"
)

// ResponseKind identifies the shape of a response line.
type ResponseKind int

const (
	// ResponseOk is the final result code OK.
	ResponseOk ResponseKind = iota
	// ResponseError is the final result code ERROR.
	ResponseError
	// ResponseCmeError is +CME ERROR: <code>.
	ResponseCmeError
	// ResponseSuccess is an information or unsolicited line, +NAME: args.
	ResponseSuccess
	// ResponseRaw is any other line, sent verbatim (RING).
	ResponseRaw
)

// Response is one line sent by the audio gateway.
type Response struct {
	Kind      ResponseKind
	Name      string
	Extension bool
	Args      []Argument
	// Code is the +CME ERROR code.
	Code int
	// Text is the verbatim content of a raw line.
	Text string
}

// Ok returns the OK result code.
func Ok() Response {
	return Response{Kind: ResponseOk}
}

// Error returns the ERROR result code.
func Error() Response {
	return Response{Kind: ResponseError}
}

// CmeErr returns an extended +CME ERROR result code.
func CmeErr(code int) Response {
	return Response{Kind: ResponseCmeError, Code: code}
}

// Success returns an extended information line, +NAME: args.
func Success(name string, args ...Argument) Response {
	return Response{Kind: ResponseSuccess, Name: name, Extension: true, Args: args}
}

// Raw returns a line sent as is.
func Raw(text string) Response {
	return Response{Kind: ResponseRaw, Text: text}
}

// String formats the response line without framing.
func (r Response) String() string {
	switch r.Kind {
	case ResponseOk:
		return OK
	case ResponseError:
		return ERROR
	case ResponseCmeError:
		return CmeError + " " + strconv.Itoa(r.Code)
	case ResponseSuccess:
		var b strings.Builder
		if r.Extension {
			b.WriteByte(ExtensionMarker)
		}
		b.WriteString(r.Name)
		b.WriteByte(':')
		if len(r.Args) > 0 {
			b.WriteByte(' ')
			writeArguments(&b, r.Args)
		}
		return b.String()
	default:
		return r.Text
	}
}

// FormatResponses formats each response as one line.
func FormatResponses(responses []Response) []string {
	lines := make([]string, 0, len(responses))
	for _, r := range responses {
		lines = append(lines, r.String())
	}
	return lines
}

// ParseResponse is the inverse of Response.String. Hands-free side code and
// tests use it to read what the gateway sent.
func ParseResponse(line string) (Response, error) {
	line = strings.TrimSpace(line)

	switch {
	case line == "":
		return Response{}, &ParseError{Line: line, Err: ErrEmptyLine}
	case line == OK:
		return Ok(), nil
	case line == ERROR:
		return Error(), nil
	case strings.HasPrefix(line, CmeError):
		code, err := strconv.Atoi(strings.TrimSpace(line[len(CmeError):]))
		if err != nil {
			return Response{}, &ParseError{Line: line, Offset: len(CmeError), Err: fmt.Errorf("%w: %v", ErrNoMatchingRule, err)}
		}
		return CmeErr(code), nil
	}

	colon := strings.IndexByte(line, ':')
	if line[0] != ExtensionMarker || colon < 0 {
		return Raw(line), nil
	}

	name := line[1:colon]
	if name == "" {
		return Response{}, &ParseError{Line: line, Offset: 1, Err: ErrMissingName}
	}
	for i := 0; i < len(name); i++ {
		if !isNameChar(name[i]) {
			return Raw(line), nil
		}
	}

	p := &parser{line: line, pos: colon + 1}
	args, err := p.argumentList(false)
	if err != nil {
		return Response{}, err
	}
	if err := p.end(); err != nil {
		return Response{}, err
	}
	return Success(name, args...), nil
}
