package slc

import (
	"fmt"

	"i4.energy/across/hfpag/at"
)

type initPhase int

const (
	initStart initPhase = iota
	initFeaturesExchanged
	initCodecsListed
	initIndicatorsDescribed
	initAwaitingStatus
	initStatusReported
	initEventsConfigured
	initCallHoldReported
	initHfIndicatorsListed
	initHfIndicatorsDescribed
	initDone
)

// slcInitialization is the capability exchange that brings the service
// level connection up:
//
//	AT+BRSF=  -> +BRSF, OK
//	AT+BAC=   -> OK                       (codec negotiation only)
//	AT+CIND=? -> +CIND, OK
//	AT+CIND?  -> +CIND, OK                (indicator values from the backend)
//	AT+CMER=  -> OK
//	AT+CHLD=? -> +CHLD, OK                (three-way calling only)
//	AT+BIND=  -> OK                       (HF indicators only)
//	AT+BIND=? -> +BIND, OK
//	AT+BIND?  -> +BIND..., OK
//
// The optional steps are skipped unless both sides advertised the feature.
type slcInitialization struct {
	phase initPhase
}

func (p *slcInitialization) Marker() Marker {
	return MarkerSlcInitialization
}

func (p *slcInitialization) Terminated() bool {
	return p.phase == initDone
}

func (p *slcInitialization) HfCommand(cmd at.Command, s *State) ProcedureRequest {
	req, err := p.command(cmd, s)
	if err != nil {
		return unexpectedHf(MarkerSlcInitialization, cmd, err)
	}
	return req
}

func (p *slcInitialization) command(cmd at.Command, s *State) (ProcedureRequest, error) {
	switch {
	case p.phase == initStart && is(cmd, "BRSF", at.Execute):
		if err := argCount(cmd, 1, 1); err != nil {
			return nil, err
		}
		features, err := intArg(cmd, 0, 0, 1<<31-1)
		if err != nil {
			return nil, err
		}
		s.PeerFeatures = HfFeatures(features)
		p.phase = initFeaturesExchanged
		return SendMessages{at.Success("BRSF", at.Int(int(s.LocalFeatures))), at.Ok()}, nil

	case p.phase == initFeaturesExchanged && s.SupportsCodecNegotiation() && is(cmd, "BAC", at.Execute):
		codecs, err := parseCodecs(cmd)
		if err != nil {
			return nil, err
		}
		s.PeerCodecs = codecs
		p.phase = initCodecsListed
		return SendMessages{at.Ok()}, nil

	case p.expectsDescription(s) && is(cmd, "CIND", at.Test):
		p.phase = initIndicatorsDescribed
		return SendMessages{indicatorDescription(), at.Ok()}, nil

	case p.phase == initIndicatorsDescribed && is(cmd, "CIND", at.Read):
		p.phase = initAwaitingStatus
		return GetIndicatorStatus{}, nil

	case p.phase == initStatusReported && is(cmd, "CMER", at.Execute):
		enable, err := parseCmer(cmd)
		if err != nil {
			return nil, err
		}
		s.IndicatorEvents = enable
		p.phase = initEventsConfigured
		p.skipOptional(s)
		return SendMessages{at.Ok()}, nil

	case p.phase == initEventsConfigured && s.SupportsThreeWayCalling() && is(cmd, "CHLD", at.Test):
		values := make([]at.Argument, 0, len(s.ThreeWayCalling))
		for _, v := range s.ThreeWayCalling {
			values = append(values, at.Primitive(v))
		}
		p.phase = initCallHoldReported
		p.skipOptional(s)
		return SendMessages{at.Success("CHLD", at.Group(values...)), at.Ok()}, nil

	case p.expectsHfIndicators(s) && is(cmd, "BIND", at.Execute):
		if err := argCount(cmd, 1, 32); err != nil {
			return nil, err
		}
		var ids []HfIndicator
		for _, arg := range cmd.Args.List {
			id, err := arg.Int()
			if err != nil || id < 0 || id > 0xffff {
				return nil, fmt.Errorf("%w: HF indicator %q", ErrInvalidArgument, arg.Value)
			}
			ids = append(ids, HfIndicator(id))
		}
		for _, id := range ids {
			s.PeerHfIndicators.Set(uint(id))
		}
		p.phase = initHfIndicatorsListed
		return SendMessages{at.Ok()}, nil

	case p.phase == initHfIndicatorsListed && is(cmd, "BIND", at.Test):
		var ids []at.Argument
		for id, ok := s.LocalHfIndicators.NextSet(0); ok; id, ok = s.LocalHfIndicators.NextSet(id + 1) {
			ids = append(ids, at.Int(int(id)))
		}
		p.phase = initHfIndicatorsDescribed
		return SendMessages{at.Success("BIND", at.Group(ids...)), at.Ok()}, nil

	case p.phase == initHfIndicatorsDescribed && is(cmd, "BIND", at.Read):
		var msgs SendMessages
		for id, ok := s.LocalHfIndicators.NextSet(0); ok; id, ok = s.LocalHfIndicators.NextSet(id + 1) {
			enabled := s.PeerHfIndicators.Test(id)
			if enabled {
				s.EnabledHfIndicators.Set(id)
			}
			msgs = append(msgs, at.Success("BIND", at.Int(int(id)), at.Int(onOff(enabled))))
		}
		p.phase = initDone
		return append(msgs, at.Ok()), nil
	}
	return nil, wrongCommand(cmd)
}

func (p *slcInitialization) expectsDescription(s *State) bool {
	return p.phase == initCodecsListed ||
		p.phase == initFeaturesExchanged && !s.SupportsCodecNegotiation()
}

func (p *slcInitialization) expectsHfIndicators(s *State) bool {
	if !s.SupportsHfIndicators() {
		return false
	}
	return p.phase == initCallHoldReported ||
		p.phase == initEventsConfigured && !s.SupportsThreeWayCalling()
}

// skipOptional finishes the exchange once no optional step remains.
func (p *slcInitialization) skipOptional(s *State) {
	switch p.phase {
	case initEventsConfigured:
		if !s.SupportsThreeWayCalling() && !s.SupportsHfIndicators() {
			p.phase = initDone
		}
	case initCallHoldReported:
		if !s.SupportsHfIndicators() {
			p.phase = initDone
		}
	}
}

func (p *slcInitialization) AgUpdate(u Update, s *State) ProcedureRequest {
	status, ok := u.(IndicatorStatus)
	if p.phase != initAwaitingStatus || !ok {
		return unexpectedAg(MarkerSlcInitialization, u, nil)
	}
	if status.Err != nil {
		p.phase = initIndicatorsDescribed
		return SendMessages{s.ErrorResponse(at.CmeAgFailure)}
	}
	if err := validIndicators(status.Values); err != nil {
		return unexpectedAg(MarkerSlcInitialization, u, err)
	}
	s.Indicators = status.Values
	p.phase = initStatusReported
	return SendMessages{indicatorValues(status.Values), at.Ok()}
}
