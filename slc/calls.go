package slc

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"i4.energy/across/hfpag/at"
)

// resultExchange is embedded by peer started procedures whose backend reply
// maps to OK or a negative result.
type resultExchange struct {
	peerStarted
}

func (resultExchange) completion(u Update, s *State) (ProcedureRequest, error) {
	return okOrError(u, s, nil)
}

// answer accepts an incoming call (ATA).
type answer struct {
	resultExchange
}

func (answer) command(cmd at.Command, s *State) (ProcedureRequest, error) {
	if cmd.Extension || cmd.Name != "A" || cmd.Kind != at.Execute {
		return nil, wrongCommand(cmd)
	}
	if cmd.Args.Delimiter != "" || len(cmd.Args.List) > 0 {
		return nil, fmt.Errorf("%w: ATA takes no arguments", ErrInvalidArgument)
	}
	return AnswerCall{}, nil
}

// hangUp rejects or ends a call (AT+CHUP).
type hangUp struct {
	resultExchange
}

func (hangUp) command(cmd at.Command, s *State) (ProcedureRequest, error) {
	if !is(cmd, "CHUP", at.Execute) {
		return nil, wrongCommand(cmd)
	}
	if err := argCount(cmd, 0, 0); err != nil {
		return nil, err
	}
	return HangUpCall{}, nil
}

// dialChars are the characters accepted in a dial string.
const dialChars = "0123456789*#+ABCDabcd,TPWtpw!@"

// initiateCall places an outgoing call: ATD<number>; ATD><memory>; or
// AT+BLDN for the last dialed number.
type initiateCall struct {
	resultExchange
}

func (initiateCall) command(cmd at.Command, s *State) (ProcedureRequest, error) {
	if is(cmd, "BLDN", at.Execute) {
		if err := argCount(cmd, 0, 0); err != nil {
			return nil, err
		}
		return PlaceCall{Target: DialTarget{Kind: DialLastNumber}}, nil
	}
	if cmd.Extension || cmd.Name != "D" || cmd.Kind != at.Execute {
		return nil, wrongCommand(cmd)
	}
	if cmd.Args.Terminator != ";" {
		return nil, fmt.Errorf("%w: dial string must end with ';'", ErrInvalidArgument)
	}
	if err := argCount(cmd, 1, 1); err != nil {
		return nil, err
	}

	switch cmd.Args.Delimiter {
	case ">":
		location, err := intArg(cmd, 0, 0, 1<<16)
		if err != nil {
			return nil, err
		}
		return PlaceCall{Target: DialTarget{Kind: DialMemory, Location: location}}, nil
	case "":
		number := cmd.Args.List[0].Value
		if cmd.Args.List[0].IsGroup || number == "" || strings.Trim(number, dialChars) != "" {
			return nil, fmt.Errorf("%w: dial string %q", ErrInvalidArgument, number)
		}
		return PlaceCall{Target: DialTarget{Kind: DialNumber, Number: number}}, nil
	default:
		return nil, fmt.Errorf("%w: dial delimiter %q", ErrInvalidArgument, cmd.Args.Delimiter)
	}
}

// callHold handles three-way calling requests (AT+CHLD=<n>[<idx>]).
type callHold struct {
	resultExchange
}

func (callHold) command(cmd at.Command, s *State) (ProcedureRequest, error) {
	if !s.SupportsThreeWayCalling() {
		return nil, ErrFeatureNotSupported
	}
	if !is(cmd, "CHLD", at.Execute) {
		return nil, wrongCommand(cmd)
	}
	if err := argCount(cmd, 1, 1); err != nil {
		return nil, err
	}
	action, err := parseCallHold(cmd.Args.List[0].Value, s.ThreeWayCalling)
	if err != nil {
		return nil, err
	}
	return HoldCall{Action: action}, nil
}

func parseCallHold(v string, supported []string) (CallHoldAction, error) {
	if slices.Contains(supported, v) {
		return CallHoldAction{Command: v}, nil
	}
	if len(v) > 1 && slices.Contains(supported, v[:1]+"x") {
		idx, err := strconv.Atoi(v[1:])
		if err == nil && idx > 0 {
			return CallHoldAction{Command: v[:1], Call: idx}, nil
		}
	}
	return CallHoldAction{}, fmt.Errorf("%w: call hold action %q", ErrInvalidArgument, v)
}

// dtmfCodes are the tones AT+VTS may request.
const dtmfCodes = "0123456789*#ABCD"

// dtmf sends a DTMF tone on the active call (AT+VTS).
type dtmf struct {
	resultExchange
}

func (dtmf) command(cmd at.Command, s *State) (ProcedureRequest, error) {
	if !is(cmd, "VTS", at.Execute) {
		return nil, wrongCommand(cmd)
	}
	if err := argCount(cmd, 1, 1); err != nil {
		return nil, err
	}
	code := cmd.Args.List[0].Value
	if len(code) != 1 || !strings.Contains(dtmfCodes, code) {
		return nil, fmt.Errorf("%w: DTMF code %q", ErrInvalidArgument, code)
	}
	return SendDtmf{Code: code[0]}, nil
}

// queryOperatorSelection sets the operator name format (AT+COPS=3,0) and
// reports the network operator (AT+COPS?).
type queryOperatorSelection struct {
	peerStarted
}

func (queryOperatorSelection) command(cmd at.Command, s *State) (ProcedureRequest, error) {
	switch {
	case is(cmd, "COPS", at.Execute):
		if err := argCount(cmd, 2, 2); err != nil {
			return nil, err
		}
		if _, err := intArg(cmd, 0, 3, 3); err != nil {
			return nil, err
		}
		if _, err := intArg(cmd, 1, 0, 0); err != nil {
			return nil, err
		}
		s.OperatorFormat = true
		return SendMessages{at.Ok()}, nil
	case is(cmd, "COPS", at.Read):
		if !s.OperatorFormat {
			return nil, fmt.Errorf("%w: operator format not set", ErrInvalidArgument)
		}
		return GetNetworkOperatorName{}, nil
	default:
		return nil, wrongCommand(cmd)
	}
}

func (queryOperatorSelection) completion(u Update, s *State) (ProcedureRequest, error) {
	op, ok := u.(OperatorName)
	if !ok {
		return nil, wrongUpdate(u)
	}
	if op.Err != nil {
		return SendMessages{s.ErrorResponse(at.CmeNoNetworkService)}, nil
	}
	if op.Name == "" {
		return SendMessages{at.Success("COPS", at.Int(0)), at.Ok()}, nil
	}
	return SendMessages{at.Success("COPS", at.Int(0), at.Int(0), at.Quoted(op.Name)), at.Ok()}, nil
}

// subscriberNumberInformation lists the gateway's own numbers (AT+CNUM).
type subscriberNumberInformation struct {
	peerStarted
}

func (subscriberNumberInformation) command(cmd at.Command, s *State) (ProcedureRequest, error) {
	if !is(cmd, "CNUM", at.Execute) {
		return nil, wrongCommand(cmd)
	}
	if err := argCount(cmd, 0, 0); err != nil {
		return nil, err
	}
	return GetSubscriberNumbers{}, nil
}

// serviceVoice is the <service> value of +CNUM.
const serviceVoice = 4

func (subscriberNumberInformation) completion(u Update, s *State) (ProcedureRequest, error) {
	list, ok := u.(SubscriberNumberList)
	if !ok {
		return nil, wrongUpdate(u)
	}
	if list.Err != nil {
		return SendMessages{s.ErrorResponse(at.CmeAgFailure)}, nil
	}
	msgs := make(SendMessages, 0, len(list.Numbers)+1)
	for _, n := range list.Numbers {
		msgs = append(msgs, at.Success("CNUM",
			at.Primitive(""), at.Quoted(n), at.Int(NumberType(n)), at.Primitive(""), at.Int(serviceVoice)))
	}
	return append(msgs, at.Ok()), nil
}

// currentCalls lists the calls known to the gateway (AT+CLCC).
type currentCalls struct {
	peerStarted
}

func (currentCalls) command(cmd at.Command, s *State) (ProcedureRequest, error) {
	if !is(cmd, "CLCC", at.Execute) {
		return nil, wrongCommand(cmd)
	}
	if err := argCount(cmd, 0, 0); err != nil {
		return nil, err
	}
	return GetCurrentCalls{}, nil
}

// modeVoice is the <mode> value of +CLCC.
const modeVoice = 0

func (currentCalls) completion(u Update, s *State) (ProcedureRequest, error) {
	list, ok := u.(CurrentCallList)
	if !ok {
		return nil, wrongUpdate(u)
	}
	if list.Err != nil {
		return SendMessages{s.ErrorResponse(at.CmeAgFailure)}, nil
	}
	msgs := make(SendMessages, 0, len(list.Calls)+1)
	for _, c := range list.Calls {
		args := []at.Argument{
			at.Int(c.Index),
			at.Int(int(c.Direction)),
			at.Int(int(c.Status)),
			at.Int(modeVoice),
			at.Int(onOff(c.Multiparty)),
		}
		if c.Number != "" {
			args = append(args, at.Quoted(c.Number), at.Int(NumberType(c.Number)))
		}
		msgs = append(msgs, at.Success("CLCC", args...))
	}
	return append(msgs, at.Ok()), nil
}
