package slc

import (
	"fmt"

	"i4.energy/across/hfpag/at"
)

// indicatorDescription is the +CIND test response listing every indicator
// and its range.
func indicatorDescription() at.Response {
	args := make([]at.Argument, 0, NumIndicators)
	for i := IndicatorService; i <= IndicatorBatteryCharge; i++ {
		var values at.Argument
		if i.Max() == 1 {
			values = at.Group(at.Int(0), at.Int(1))
		} else {
			values = at.Group(at.Primitive(fmt.Sprintf("0-%d", i.Max())))
		}
		args = append(args, at.Group(at.Quoted(i.String()), values))
	}
	return at.Success("CIND", args...)
}

// indicatorValues is the +CIND read response.
func indicatorValues(v Indicators) at.Response {
	args := make([]at.Argument, 0, NumIndicators)
	for _, value := range v {
		args = append(args, at.Int(value))
	}
	return at.Success("CIND", args...)
}

// validIndicators checks every value of v against its range.
func validIndicators(v Indicators) error {
	var check Indicators
	for i := IndicatorService; i <= IndicatorBatteryCharge; i++ {
		if err := check.Set(i, v.Get(i)); err != nil {
			return err
		}
	}
	return nil
}

// parseCmer reads AT+CMER=3,0,0,<ind> and reports whether indicator events
// are to be sent.
func parseCmer(cmd at.Command) (bool, error) {
	if err := argCount(cmd, 4, 5); err != nil {
		return false, err
	}
	if _, err := intArg(cmd, 0, 3, 3); err != nil {
		return false, err
	}
	return boolArg(cmd, 3)
}

// phoneStatus reports indicator changes with +CIEV and answers status
// queries once the service level connection is up.
type phoneStatus struct{}

func (phoneStatus) command(cmd at.Command, s *State) (ProcedureRequest, error) {
	switch {
	case is(cmd, "CIND", at.Read):
		return SendMessages{indicatorValues(s.Indicators), at.Ok()}, nil
	case is(cmd, "CIND", at.Test):
		return SendMessages{indicatorDescription(), at.Ok()}, nil
	case is(cmd, "CMER", at.Execute):
		enable, err := parseCmer(cmd)
		if err != nil {
			return nil, err
		}
		s.IndicatorEvents = enable
		return SendMessages{at.Ok()}, nil
	default:
		return nil, wrongCommand(cmd)
	}
}

func (phoneStatus) notification(u Update, s *State) (ProcedureRequest, error) {
	iu, ok := u.(IndicatorUpdate)
	if !ok {
		return nil, wrongUpdate(u)
	}
	if err := s.Indicators.Set(iu.Indicator, iu.Value); err != nil {
		return nil, err
	}
	if !s.IndicatorEvents || !s.IndicatorActive(iu.Indicator) {
		return nil, nil
	}
	return SendMessages{at.Success("CIEV", at.Int(int(iu.Indicator)), at.Int(iu.Value))}, nil
}

func (phoneStatus) completion(Update, *State) (ProcedureRequest, error) {
	return nil, errNotAwaiting
}

// ring alerts the peer of an incoming call, followed by the caller id when
// the peer asked for it.
type ring struct {
	gatewayStarted
	synchronous
}

func (ring) notification(u Update, s *State) (ProcedureRequest, error) {
	r, ok := u.(Ring)
	if !ok {
		return nil, wrongUpdate(u)
	}
	msgs := SendMessages{at.Raw(at.UrcRing)}
	if s.CallLineIdentNotifications && r.Number != "" {
		msgs = append(msgs, at.Success("CLIP", at.Quoted(r.Number), at.Int(NumberType(r.Number))))
	}
	return msgs, nil
}

// inbandRingtone tells the peer whether the gateway plays its own ring tone.
type inbandRingtone struct {
	gatewayStarted
	synchronous
}

func (inbandRingtone) notification(u Update, s *State) (ProcedureRequest, error) {
	ir, ok := u.(InbandRingtone)
	if !ok {
		return nil, wrongUpdate(u)
	}
	if !s.LocalFeatures.Has(AgInBandRing) {
		return nil, ErrFeatureNotSupported
	}
	return SendMessages{at.Success("BSIR", at.Int(onOff(ir.Enabled)))}, nil
}

// volumeSynchronization reports local gain changes to peers that support
// remote volume control.
type volumeSynchronization struct {
	gatewayStarted
	synchronous
}

func (volumeSynchronization) notification(u Update, s *State) (ProcedureRequest, error) {
	var (
		name string
		gain int
	)
	switch g := u.(type) {
	case SpeakerGain:
		name, gain = "VGS", g.Gain
	case MicrophoneGain:
		name, gain = "VGM", g.Gain
	default:
		return nil, wrongUpdate(u)
	}
	if gain < 0 || gain > MaxGain {
		return nil, fmt.Errorf("%w: gain %d", ErrOutOfRange, gain)
	}

	if name == "VGS" {
		s.SpeakerGain = gain
	} else {
		s.MicrophoneGain = gain
	}
	if !s.PeerFeatures.Has(HfRemoteVolumeControl) {
		return nil, nil
	}
	return SendMessages{at.Success(name, at.Int(gain))}, nil
}
