package slc

import (
	"fmt"
	"slices"

	"i4.energy/across/hfpag/at"
)

// nrec turns echo cancelling and noise reduction on or off (AT+NREC).
type nrec struct {
	peerStarted
	enable bool
}

func (p *nrec) command(cmd at.Command, s *State) (ProcedureRequest, error) {
	if !s.LocalFeatures.Has(AgEcnr) {
		return nil, ErrFeatureNotSupported
	}
	if !is(cmd, "NREC", at.Execute) {
		return nil, wrongCommand(cmd)
	}
	if err := argCount(cmd, 1, 1); err != nil {
		return nil, err
	}
	enable, err := boolArg(cmd, 0)
	if err != nil {
		return nil, err
	}
	p.enable = enable
	return SetNrec{Enable: enable}, nil
}

func (p *nrec) completion(u Update, s *State) (ProcedureRequest, error) {
	return okOrError(u, s, func(s *State) { s.Nrec = p.enable })
}

// callWaiting toggles +CCWA alerts and sends them when a second call
// arrives.
type callWaiting struct{}

func (callWaiting) command(cmd at.Command, s *State) (ProcedureRequest, error) {
	if !is(cmd, "CCWA", at.Execute) {
		return nil, wrongCommand(cmd)
	}
	if err := argCount(cmd, 1, 1); err != nil {
		return nil, err
	}
	enable, err := boolArg(cmd, 0)
	if err != nil {
		return nil, err
	}
	s.CallWaitingNotifications = enable
	return SendMessages{at.Ok()}, nil
}

func (callWaiting) notification(u Update, s *State) (ProcedureRequest, error) {
	cw, ok := u.(CallWaiting)
	if !ok {
		return nil, wrongUpdate(u)
	}
	if !s.CallWaitingNotifications {
		return nil, nil
	}
	return SendMessages{
		at.Success("CCWA", at.Quoted(cw.Number), at.Int(NumberType(cw.Number)), at.Int(1)),
	}, nil
}

func (callWaiting) completion(Update, *State) (ProcedureRequest, error) {
	return nil, errNotAwaiting
}

// callLineIdent toggles +CLIP after RING (AT+CLIP).
type callLineIdent struct {
	peerStarted
	synchronous
}

func (callLineIdent) command(cmd at.Command, s *State) (ProcedureRequest, error) {
	if !is(cmd, "CLIP", at.Execute) {
		return nil, wrongCommand(cmd)
	}
	if err := argCount(cmd, 1, 1); err != nil {
		return nil, err
	}
	enable, err := boolArg(cmd, 0)
	if err != nil {
		return nil, err
	}
	s.CallLineIdentNotifications = enable
	return SendMessages{at.Ok()}, nil
}

// extendedErrors toggles +CME ERROR result codes (AT+CMEE).
type extendedErrors struct {
	peerStarted
	synchronous
}

func (extendedErrors) command(cmd at.Command, s *State) (ProcedureRequest, error) {
	if !is(cmd, "CMEE", at.Execute) {
		return nil, wrongCommand(cmd)
	}
	if err := argCount(cmd, 1, 1); err != nil {
		return nil, err
	}
	enable, err := boolArg(cmd, 0)
	if err != nil {
		return nil, err
	}
	if enable && !s.LocalFeatures.Has(AgExtendedErrors) {
		return nil, ErrFeatureNotSupported
	}
	s.ExtendedErrors = enable
	return SendMessages{at.Ok()}, nil
}

// indicatorsActivation selects the indicators reported with +CIEV (AT+BIA).
// Empty positions leave an indicator unchanged.
type indicatorsActivation struct {
	peerStarted
	synchronous
}

func (indicatorsActivation) command(cmd at.Command, s *State) (ProcedureRequest, error) {
	if !is(cmd, "BIA", at.Execute) {
		return nil, wrongCommand(cmd)
	}
	if err := argCount(cmd, 0, NumIndicators); err != nil {
		return nil, err
	}

	var set, clear []Indicator
	for i, arg := range cmd.Args.List {
		ind := Indicator(i + 1)
		if !arg.IsGroup && arg.Key == "" && arg.Value == "" {
			continue
		}
		active, err := boolArg(cmd, i)
		if err != nil {
			return nil, err
		}
		switch {
		case active:
			set = append(set, ind)
		case !ind.alwaysActive():
			clear = append(clear, ind)
		}
	}

	for _, ind := range set {
		s.ActiveIndicators.Set(uint(ind))
	}
	for _, ind := range clear {
		s.ActiveIndicators.Clear(uint(ind))
	}
	return SendMessages{at.Ok()}, nil
}

// availableCodecs records the codecs the peer lists with AT+BAC after the
// service level connection is up.
type availableCodecs struct {
	peerStarted
	synchronous
}

func (availableCodecs) command(cmd at.Command, s *State) (ProcedureRequest, error) {
	if !s.SupportsCodecNegotiation() {
		return nil, ErrFeatureNotSupported
	}
	if !is(cmd, "BAC", at.Execute) {
		return nil, wrongCommand(cmd)
	}
	codecs, err := parseCodecs(cmd)
	if err != nil {
		return nil, err
	}
	s.PeerCodecs = codecs
	return SendMessages{at.Ok()}, nil
}

// parseCodecs reads an AT+BAC codec list. Unknown codec ids are skipped;
// CVSD is mandatory.
func parseCodecs(cmd at.Command) ([]Codec, error) {
	if err := argCount(cmd, 1, 16); err != nil {
		return nil, err
	}
	var codecs []Codec
	for _, arg := range cmd.Args.List {
		id, err := arg.Int()
		if err != nil {
			return nil, fmt.Errorf("%w: codec %q: %v", ErrInvalidArgument, arg.Value, err)
		}
		c := Codec(id)
		if c < CodecCVSD || c > CodecLC3SWB || slices.Contains(codecs, c) {
			continue
		}
		codecs = append(codecs, c)
	}
	if !slices.Contains(codecs, CodecCVSD) {
		return nil, fmt.Errorf("%w: codec list lacks CVSD", ErrInvalidArgument)
	}
	return codecs, nil
}

// volumeControl applies a gain the peer set with AT+VGS or AT+VGM.
type volumeControl struct {
	peerStarted
	speaker bool
	gain    int
}

// MaxGain is the highest speaker or microphone gain.
const MaxGain = 15

func (p *volumeControl) command(cmd at.Command, s *State) (ProcedureRequest, error) {
	speaker := is(cmd, "VGS", at.Execute)
	if !speaker && !is(cmd, "VGM", at.Execute) {
		return nil, wrongCommand(cmd)
	}
	if err := argCount(cmd, 1, 1); err != nil {
		return nil, err
	}
	gain, err := intArg(cmd, 0, 0, MaxGain)
	if err != nil {
		return nil, err
	}
	p.speaker, p.gain = speaker, gain
	if speaker {
		return SetSpeakerGain{Gain: gain}, nil
	}
	return SetMicrophoneGain{Gain: gain}, nil
}

func (p *volumeControl) completion(u Update, s *State) (ProcedureRequest, error) {
	return okOrError(u, s, func(s *State) {
		if p.speaker {
			s.SpeakerGain = p.gain
		} else {
			s.MicrophoneGain = p.gain
		}
	})
}

// voiceRecognition starts or stops voice recognition (AT+BVRA).
type voiceRecognition struct {
	peerStarted
	enable bool
}

func (p *voiceRecognition) command(cmd at.Command, s *State) (ProcedureRequest, error) {
	if !s.LocalFeatures.Has(AgVoiceRecognition) {
		return nil, ErrFeatureNotSupported
	}
	if !is(cmd, "BVRA", at.Execute) {
		return nil, wrongCommand(cmd)
	}
	if err := argCount(cmd, 1, 1); err != nil {
		return nil, err
	}
	enable, err := boolArg(cmd, 0)
	if err != nil {
		return nil, err
	}
	p.enable = enable
	return SetVoiceRecognition{Enable: enable}, nil
}

func (p *voiceRecognition) completion(u Update, s *State) (ProcedureRequest, error) {
	return okOrError(u, s, func(s *State) { s.VoiceRecognition = p.enable })
}

// hfIndicator forwards a value the peer reports with AT+BIEV.
type hfIndicator struct {
	peerStarted
	indicator HfIndicator
	value     int
}

func (p *hfIndicator) command(cmd at.Command, s *State) (ProcedureRequest, error) {
	if !s.SupportsHfIndicators() {
		return nil, ErrFeatureNotSupported
	}
	if !is(cmd, "BIEV", at.Execute) {
		return nil, wrongCommand(cmd)
	}
	if err := argCount(cmd, 2, 2); err != nil {
		return nil, err
	}
	id, err := intArg(cmd, 0, int(HfIndicatorEnhancedSafety), int(HfIndicatorBatteryLevel))
	if err != nil {
		return nil, err
	}
	ind := HfIndicator(id)
	if !s.EnabledHfIndicators.Test(uint(ind)) {
		return nil, fmt.Errorf("%w: indicator %d not enabled", ErrInvalidArgument, id)
	}
	value, err := intArg(cmd, 1, 0, ind.Max())
	if err != nil {
		return nil, err
	}
	p.indicator, p.value = ind, value
	return ReportHfIndicator{Indicator: ind, Value: value}, nil
}

func (p *hfIndicator) completion(u Update, s *State) (ProcedureRequest, error) {
	return okOrError(u, s, func(s *State) { s.HfIndicatorValues[p.indicator] = p.value })
}
