package at

import (
	"bufio"
	"bytes"
	"strings"
)

// Splitter is used for tokenizing AT command lines received from a
// hands-free unit. It uses the signature of bufio.SplitFunc so it can be
// directly used with bufio.Scanner.
//
// Hands-free units terminate commands with CR, but some send CRLF or a bare
// LF. A line is emitted as soon as its terminator is seen, so the LF of a
// CRLF pair shows up as an empty token which callers skip.
//
// The atEOF parameter indicates whether any more data will be available.
// When true, any remaining data is returned as the final token.
func Splitter(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, CR+LF); i >= 0 {
		return i + 1, data[0:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

var _ bufio.SplitFunc = Splitter

// MaxLineLength bounds a single command line. No HFP command comes close.
const MaxLineLength = 4096

// Overlong is the token LineSplitter emits in place of a line that exceeded
// its limit. It never parses as a command.
const Overlong = "\x00overlong"

// LineSplitter works like Splitter but emits Overlong for any line longer
// than limit bytes and drops the line up to its terminator. The scanner
// buffer must hold more than limit bytes. The returned function keeps state
// and belongs to a single scanner.
func LineSplitter(limit int) bufio.SplitFunc {
	discarding := false

	return func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}

		i := bytes.IndexAny(data, CR+LF)
		switch {
		case discarding && i >= 0:
			discarding = false
			return i + 1, []byte(Overlong), nil
		case discarding && atEOF:
			discarding = false
			return len(data), []byte(Overlong), nil
		case discarding:
			return len(data), nil, nil
		case i > limit:
			return i + 1, []byte(Overlong), nil
		case i >= 0:
			return i + 1, data[0:i], nil
		case len(data) > limit:
			discarding = true
			return len(data), nil, nil
		case atEOF:
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}

// Frame wraps a response line the way an audio gateway puts it on the wire.
func Frame(line string) string {
	return CRLF + line + CRLF
}

// Classify identifies the nature of a line sent by the audio gateway.
func Classify(line string) ResponseType {
	// Direct matches for final results
	switch line {
	case OK, ERROR:
		return TypeFinal
	case UrcRing:
		return TypeURC
	}

	// Prefix matches
	switch {
	case strings.HasPrefix(line, CmeError):
		return TypeFinal
	case strings.HasPrefix(line, UrcIndicator),
		strings.HasPrefix(line, UrcCallWaiting),
		strings.HasPrefix(line, UrcCallerID),
		strings.HasPrefix(line, UrcSpeakerGain),
		strings.HasPrefix(line, UrcMicrophoneGain),
		strings.HasPrefix(line, UrcInbandRing),
		strings.HasPrefix(line, UrcCodecSelection):
		return TypeURC
	default:
		return TypeData
	}
}
