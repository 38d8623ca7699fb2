package slc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"i4.energy/across/hfpag/at"
	"i4.energy/across/hfpag/slc"
)

// step is one input to a procedure and what it must produce. Exactly one
// of hf and ag is set; lines is compared for SendMessages, request for
// anything else.
type step struct {
	hf      string
	ag      slc.Update
	lines   []string
	request slc.ProcedureRequest
}

func run(t *testing.T, p slc.Procedure, s *slc.State, steps []step) {
	t.Helper()

	for i, st := range steps {
		var req slc.ProcedureRequest
		if st.hf != "" {
			req = p.HfCommand(at.MustParse(st.hf), s)
		} else {
			req = p.AgUpdate(st.ag, s)
		}
		if st.lines != nil {
			require.Equal(t, st.lines, lines(t, req), "step %d", i)
		} else {
			require.Equal(t, st.request, req, "step %d", i)
		}
	}
	require.True(t, p.Terminated())
}

func TestProcedures(t *testing.T) {
	t.Parallel()

	failure := errors.New("backend failure")

	tests := []struct {
		name   string
		marker slc.Marker
		ag     slc.AgFeatures
		hf     slc.HfFeatures
		setup  func(s *slc.State)
		steps  []step
		check  func(t *testing.T, s *slc.State)
	}{
		{
			name:   "noise reduction off",
			marker: slc.MarkerNrec,
			steps: []step{
				{hf: "AT+NREC=0", request: slc.SetNrec{Enable: false}},
				{ag: slc.Result{}, lines: []string{"OK"}},
			},
			check: func(t *testing.T, s *slc.State) { require.False(t, s.Nrec) },
		},
		{
			name:   "noise reduction backend failure with extended errors",
			marker: slc.MarkerNrec,
			setup:  func(s *slc.State) { s.ExtendedErrors = true },
			steps: []step{
				{hf: "AT+NREC=0", request: slc.SetNrec{Enable: false}},
				{ag: slc.Result{Err: failure}, lines: []string{"+CME ERROR: 0"}},
			},
			check: func(t *testing.T, s *slc.State) { require.True(t, s.Nrec) },
		},
		{
			name:   "call waiting enabled then alerted",
			marker: slc.MarkerCallWaitingNotifications,
			steps:  []step{{hf: "AT+CCWA=1", lines: []string{"OK"}}},
			check: func(t *testing.T, s *slc.State) {
				require.True(t, s.CallWaitingNotifications)

				p := slc.New(slc.MarkerCallWaitingNotifications)
				run(t, p, s, []step{{ag: slc.CallWaiting{Number: "5551234"}, lines: []string{`+CCWA: "5551234",129,1`}}})
			},
		},
		{
			name:   "call waiting alert while disabled",
			marker: slc.MarkerCallWaitingNotifications,
			steps:  []step{{ag: slc.CallWaiting{Number: "5551234"}, request: nil}},
		},
		{
			name:   "ring with caller id",
			marker: slc.MarkerRing,
			setup:  func(s *slc.State) { s.CallLineIdentNotifications = true },
			steps:  []step{{ag: slc.Ring{Number: "+15551234"}, lines: []string{"RING", `+CLIP: "+15551234",145`}}},
		},
		{
			name:   "ring without caller id",
			marker: slc.MarkerRing,
			steps:  []step{{ag: slc.Ring{Number: "+15551234"}, lines: []string{"RING"}}},
		},
		{
			name:   "caller id toggle",
			marker: slc.MarkerCallLineIdentNotifications,
			steps:  []step{{hf: "AT+CLIP=1", lines: []string{"OK"}}},
			check:  func(t *testing.T, s *slc.State) { require.True(t, s.CallLineIdentNotifications) },
		},
		{
			name:   "extended errors",
			marker: slc.MarkerExtendedErrors,
			steps:  []step{{hf: "AT+CMEE=1", lines: []string{"OK"}}},
			check: func(t *testing.T, s *slc.State) {
				require.True(t, s.ExtendedErrors)
				require.Equal(t, at.CmeErr(at.CmeInvalidIndex), s.ErrorResponse(at.CmeInvalidIndex))
			},
		},
		{
			name:   "speaker gain",
			marker: slc.MarkerVolumeControl,
			steps: []step{
				{hf: "AT+VGS=7", request: slc.SetSpeakerGain{Gain: 7}},
				{ag: slc.Result{}, lines: []string{"OK"}},
			},
			check: func(t *testing.T, s *slc.State) { require.Equal(t, 7, s.SpeakerGain) },
		},
		{
			name:   "microphone gain",
			marker: slc.MarkerVolumeControl,
			steps: []step{
				{hf: "AT+VGM=12", request: slc.SetMicrophoneGain{Gain: 12}},
				{ag: slc.Result{}, lines: []string{"OK"}},
			},
			check: func(t *testing.T, s *slc.State) { require.Equal(t, 12, s.MicrophoneGain) },
		},
		{
			name:   "speaker gain synchronized",
			marker: slc.MarkerVolumeSynchronization,
			steps:  []step{{ag: slc.SpeakerGain{Gain: 9}, lines: []string{"+VGS: 9"}}},
			check:  func(t *testing.T, s *slc.State) { require.Equal(t, 9, s.SpeakerGain) },
		},
		{
			name:   "microphone gain not synchronized without remote volume control",
			marker: slc.MarkerVolumeSynchronization,
			hf:     slc.HfCodecNegotiation,
			steps:  []step{{ag: slc.MicrophoneGain{Gain: 3}, request: nil}},
			check:  func(t *testing.T, s *slc.State) { require.Equal(t, 3, s.MicrophoneGain) },
		},
		{
			name:   "dtmf",
			marker: slc.MarkerDtmf,
			steps: []step{
				{hf: "AT+VTS=#", request: slc.SendDtmf{Code: '#'}},
				{ag: slc.Result{}, lines: []string{"OK"}},
			},
		},
		{
			name:   "indicator event",
			marker: slc.MarkerPhoneStatus,
			steps:  []step{{ag: slc.IndicatorUpdate{Indicator: slc.IndicatorSignal, Value: 3}, lines: []string{"+CIEV: 5,3"}}},
			check:  func(t *testing.T, s *slc.State) { require.Equal(t, 3, s.Indicators.Get(slc.IndicatorSignal)) },
		},
		{
			name:   "indicator event for deactivated indicator",
			marker: slc.MarkerPhoneStatus,
			setup:  func(s *slc.State) { s.ActiveIndicators.Clear(uint(slc.IndicatorSignal)) },
			steps:  []step{{ag: slc.IndicatorUpdate{Indicator: slc.IndicatorSignal, Value: 3}, request: nil}},
			check:  func(t *testing.T, s *slc.State) { require.Equal(t, 3, s.Indicators.Get(slc.IndicatorSignal)) },
		},
		{
			name:   "indicator values after connection",
			marker: slc.MarkerPhoneStatus,
			setup:  func(s *slc.State) { s.Indicators = slc.Indicators{0, 0, 0, 0, 0, 0, 4} },
			steps:  []step{{hf: "AT+CIND?", lines: []string{"+CIND: 0,0,0,0,0,0,4", "OK"}}},
		},
		{
			name:   "indicator events disabled",
			marker: slc.MarkerPhoneStatus,
			steps:  []step{{hf: "AT+CMER=3,0,0,0", lines: []string{"OK"}}},
			check:  func(t *testing.T, s *slc.State) { require.False(t, s.IndicatorEvents) },
		},
		{
			name:   "indicators activation",
			marker: slc.MarkerIndicatorsActivation,
			steps:  []step{{hf: "AT+BIA=0,0,,0,,0", lines: []string{"OK"}}},
			check: func(t *testing.T, s *slc.State) {
				require.False(t, s.IndicatorActive(slc.IndicatorService))
				require.True(t, s.IndicatorActive(slc.IndicatorCall))
				require.True(t, s.IndicatorActive(slc.IndicatorCallSetup))
				require.True(t, s.IndicatorActive(slc.IndicatorCallHeld))
				require.True(t, s.IndicatorActive(slc.IndicatorSignal))
				require.False(t, s.IndicatorActive(slc.IndicatorRoam))
				require.True(t, s.IndicatorActive(slc.IndicatorBatteryCharge))
			},
		},
		{
			name:   "hf indicator value",
			marker: slc.MarkerHfIndicator,
			steps: []step{
				{hf: "AT+BIEV=2,80", request: slc.ReportHfIndicator{Indicator: slc.HfIndicatorBatteryLevel, Value: 80}},
				{ag: slc.Result{}, lines: []string{"OK"}},
			},
			check: func(t *testing.T, s *slc.State) {
				require.Equal(t, 80, s.HfIndicatorValues[slc.HfIndicatorBatteryLevel])
			},
		},
		{
			name:   "operator format",
			marker: slc.MarkerQueryOperatorSelection,
			steps:  []step{{hf: "AT+COPS=3,0", lines: []string{"OK"}}},
			check:  func(t *testing.T, s *slc.State) { require.True(t, s.OperatorFormat) },
		},
		{
			name:   "operator name",
			marker: slc.MarkerQueryOperatorSelection,
			setup:  func(s *slc.State) { s.OperatorFormat = true },
			steps: []step{
				{hf: "AT+COPS?", request: slc.GetNetworkOperatorName{}},
				{ag: slc.OperatorName{Name: "Operator"}, lines: []string{`+COPS: 0,0,"Operator"`, "OK"}},
			},
		},
		{
			name:   "no operator",
			marker: slc.MarkerQueryOperatorSelection,
			setup:  func(s *slc.State) { s.OperatorFormat = true },
			steps: []step{
				{hf: "AT+COPS?", request: slc.GetNetworkOperatorName{}},
				{ag: slc.OperatorName{}, lines: []string{"+COPS: 0", "OK"}},
			},
		},
		{
			name:   "operator name without service",
			marker: slc.MarkerQueryOperatorSelection,
			setup:  func(s *slc.State) { s.OperatorFormat, s.ExtendedErrors = true, true },
			steps: []step{
				{hf: "AT+COPS?", request: slc.GetNetworkOperatorName{}},
				{ag: slc.OperatorName{Err: failure}, lines: []string{"+CME ERROR: 30"}},
			},
		},
		{
			name:   "subscriber numbers",
			marker: slc.MarkerSubscriberNumberInformation,
			steps: []step{
				{hf: "AT+CNUM", request: slc.GetSubscriberNumbers{}},
				{
					ag:    slc.SubscriberNumberList{Numbers: []string{"+15551234", "5550000"}},
					lines: []string{`+CNUM: ,"+15551234",145,,4`, `+CNUM: ,"5550000",129,,4`, "OK"},
				},
			},
		},
		{
			name:   "current calls",
			marker: slc.MarkerCurrentCalls,
			steps: []step{
				{hf: "AT+CLCC", request: slc.GetCurrentCalls{}},
				{
					ag: slc.CurrentCallList{Calls: []slc.Call{
						{Index: 1, Direction: slc.DirectionIncoming, Status: slc.StatusActive, Number: "5551234"},
						{Index: 2, Direction: slc.DirectionOutgoing, Status: slc.StatusHeld, Multiparty: true},
					}},
					lines: []string{`+CLCC: 1,1,0,0,0,"5551234",129`, "+CLCC: 2,0,1,0,1", "OK"},
				},
			},
		},
		{
			name:   "no current calls",
			marker: slc.MarkerCurrentCalls,
			steps: []step{
				{hf: "AT+CLCC", request: slc.GetCurrentCalls{}},
				{ag: slc.CurrentCallList{}, lines: []string{"OK"}},
			},
		},
		{
			name:   "answer",
			marker: slc.MarkerAnswer,
			steps: []step{
				{hf: "ATA", request: slc.AnswerCall{}},
				{ag: slc.Result{}, lines: []string{"OK"}},
			},
		},
		{
			name:   "hang up failure",
			marker: slc.MarkerHangUp,
			steps: []step{
				{hf: "AT+CHUP", request: slc.HangUpCall{}},
				{ag: slc.Result{Err: failure}, lines: []string{"ERROR"}},
			},
		},
		{
			name:   "dial number",
			marker: slc.MarkerInitiateCall,
			steps: []step{
				{hf: "ATD+15551234;", request: slc.PlaceCall{Target: slc.DialTarget{Kind: slc.DialNumber, Number: "+15551234"}}},
				{ag: slc.Result{}, lines: []string{"OK"}},
			},
		},
		{
			name:   "dial memory",
			marker: slc.MarkerInitiateCall,
			steps: []step{
				{hf: "ATD>3;", request: slc.PlaceCall{Target: slc.DialTarget{Kind: slc.DialMemory, Location: 3}}},
				{ag: slc.Result{}, lines: []string{"OK"}},
			},
		},
		{
			name:   "redial",
			marker: slc.MarkerInitiateCall,
			steps: []step{
				{hf: "AT+BLDN", request: slc.PlaceCall{Target: slc.DialTarget{Kind: slc.DialLastNumber}}},
				{ag: slc.Result{}, lines: []string{"OK"}},
			},
		},
		{
			name:   "release specific call",
			marker: slc.MarkerCallHold,
			ag:     slc.DefaultAgFeatures | slc.AgEnhancedCallControl,
			steps: []step{
				{hf: "AT+CHLD=12", request: slc.HoldCall{Action: slc.CallHoldAction{Command: "1", Call: 2}}},
				{ag: slc.Result{}, lines: []string{"OK"}},
			},
		},
		{
			name:   "hold and accept",
			marker: slc.MarkerCallHold,
			steps: []step{
				{hf: "AT+CHLD=2", request: slc.HoldCall{Action: slc.CallHoldAction{Command: "2"}}},
				{ag: slc.Result{}, lines: []string{"OK"}},
			},
		},
		{
			name:   "voice recognition",
			marker: slc.MarkerVoiceRecognition,
			ag:     slc.DefaultAgFeatures | slc.AgVoiceRecognition,
			steps: []step{
				{hf: "AT+BVRA=1", request: slc.SetVoiceRecognition{Enable: true}},
				{ag: slc.Result{}, lines: []string{"OK"}},
			},
			check: func(t *testing.T, s *slc.State) { require.True(t, s.VoiceRecognition) },
		},
		{
			name:   "in-band ring tone",
			marker: slc.MarkerInbandRingtone,
			steps:  []step{{ag: slc.InbandRingtone{Enabled: true}, lines: []string{"+BSIR: 1"}}},
		},
		{
			name:   "available codecs after connection",
			marker: slc.MarkerAvailableCodecs,
			steps:  []step{{hf: "AT+BAC=1,2,3,7", lines: []string{"OK"}}},
			check: func(t *testing.T, s *slc.State) {
				require.Equal(t, []slc.Codec{slc.CodecCVSD, slc.CodecMSBC, slc.CodecLC3SWB}, s.PeerCodecs)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ag, hf := tt.ag, tt.hf
			if ag == 0 {
				ag = slc.DefaultAgFeatures
			}
			if hf == 0 {
				hf = allHf
			}
			s := establishedState(ag, hf)
			if tt.setup != nil {
				tt.setup(s)
			}

			run(t, slc.New(tt.marker), s, tt.steps)
			if tt.check != nil {
				tt.check(t, s)
			}
		})
	}
}

func TestProcedures_rejectInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		marker slc.Marker
		ag     slc.AgFeatures
		line   string
		update slc.Update
		target error
	}{
		{name: "nrec without echo cancelling", marker: slc.MarkerNrec, ag: slc.AgThreeWayCalling, line: "AT+NREC=0", target: slc.ErrFeatureNotSupported},
		{name: "nrec out of range", marker: slc.MarkerNrec, line: "AT+NREC=2", target: slc.ErrInvalidArgument},
		{name: "nrec missing value", marker: slc.MarkerNrec, line: "AT+NREC=", target: slc.ErrInvalidArgument},
		{name: "gain too high", marker: slc.MarkerVolumeControl, line: "AT+VGS=16", target: slc.ErrInvalidArgument},
		{name: "gain not a number", marker: slc.MarkerVolumeControl, line: "AT+VGM=loud", target: slc.ErrInvalidArgument},
		{name: "dtmf code", marker: slc.MarkerDtmf, line: "AT+VTS=E", target: slc.ErrInvalidArgument},
		{name: "dtmf sequence", marker: slc.MarkerDtmf, line: "AT+VTS=12", target: slc.ErrInvalidArgument},
		{name: "extended errors unsupported", marker: slc.MarkerExtendedErrors, ag: slc.AgEcnr, line: "AT+CMEE=1", target: slc.ErrFeatureNotSupported},
		{name: "activation value", marker: slc.MarkerIndicatorsActivation, line: "AT+BIA=1,2", target: slc.ErrInvalidArgument},
		{name: "activation too long", marker: slc.MarkerIndicatorsActivation, line: "AT+BIA=1,1,1,1,1,1,1,1", target: slc.ErrInvalidArgument},
		{name: "cmer mode", marker: slc.MarkerPhoneStatus, line: "AT+CMER=1,0,0,1", target: slc.ErrInvalidArgument},
		{name: "hf indicator disabled", marker: slc.MarkerHfIndicator, ag: slc.AgEcnr, line: "AT+BIEV=2,10", target: slc.ErrFeatureNotSupported},
		{name: "hf indicator range", marker: slc.MarkerHfIndicator, line: "AT+BIEV=1,2", target: slc.ErrInvalidArgument},
		{name: "hf indicator unknown", marker: slc.MarkerHfIndicator, line: "AT+BIEV=9,2", target: slc.ErrInvalidArgument},
		{name: "operator read before format", marker: slc.MarkerQueryOperatorSelection, line: "AT+COPS?", target: slc.ErrInvalidArgument},
		{name: "operator format", marker: slc.MarkerQueryOperatorSelection, line: "AT+COPS=3,2", target: slc.ErrInvalidArgument},
		{name: "answer with argument", marker: slc.MarkerAnswer, line: "ATA1", target: slc.ErrInvalidArgument},
		{name: "dial without terminator", marker: slc.MarkerInitiateCall, line: "ATD5551234", target: slc.ErrInvalidArgument},
		{name: "dial garbage", marker: slc.MarkerInitiateCall, line: "ATDxyz;", target: slc.ErrInvalidArgument},
		{name: "dial memory location", marker: slc.MarkerInitiateCall, line: "ATD>x;", target: slc.ErrInvalidArgument},
		{name: "call hold unsupported", marker: slc.MarkerCallHold, ag: slc.AgEcnr, line: "AT+CHLD=1", target: slc.ErrFeatureNotSupported},
		{name: "call hold specific call without enhanced control", marker: slc.MarkerCallHold, line: "AT+CHLD=12", target: slc.ErrInvalidArgument},
		{name: "voice recognition unsupported", marker: slc.MarkerVoiceRecognition, line: "AT+BVRA=1", target: slc.ErrFeatureNotSupported},
		{name: "codecs without negotiation", marker: slc.MarkerAvailableCodecs, ag: slc.AgEcnr, line: "AT+BAC=1,2", target: slc.ErrFeatureNotSupported},
		{name: "in-band ring unsupported", marker: slc.MarkerInbandRingtone, ag: slc.AgEcnr, update: slc.InbandRingtone{Enabled: true}, target: slc.ErrFeatureNotSupported},
		{name: "indicator out of range", marker: slc.MarkerPhoneStatus, update: slc.IndicatorUpdate{Indicator: slc.IndicatorCallHeld, Value: 3}, target: slc.ErrOutOfRange},
		{name: "unknown indicator", marker: slc.MarkerPhoneStatus, update: slc.IndicatorUpdate{Indicator: 8, Value: 0}, target: slc.ErrUnknownIndicator},
		{name: "gain sync out of range", marker: slc.MarkerVolumeSynchronization, update: slc.SpeakerGain{Gain: 20}, target: slc.ErrOutOfRange},
		{name: "ring from peer", marker: slc.MarkerRing, line: "AT+CKPD=200", target: slc.ErrUnexpectedHf},
		{name: "backend reply before request", marker: slc.MarkerNrec, update: slc.Result{}, target: slc.ErrUnexpectedAg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ag := tt.ag
			if ag == 0 {
				ag = slc.DefaultAgFeatures
			}
			s := establishedState(ag, allHf)
			before := cloneState(s)
			p := slc.New(tt.marker)

			var req slc.ProcedureRequest
			if tt.update != nil {
				req = p.AgUpdate(tt.update, s)
			} else {
				req = p.HfCommand(at.MustParse(tt.line), s)
			}
			requireProcedureError(t, req, tt.target, before, s)
			require.False(t, p.Terminated())
		})
	}
}

// TestProcedures_stateMachineSafety feeds every procedure kind input that no
// state accepts, before and after it started, and after it terminated.
func TestProcedures_stateMachineSafety(t *testing.T) {
	t.Parallel()

	starters := map[slc.Marker]step{
		slc.MarkerSlcInitialization:           {hf: "AT+BRSF=406"},
		slc.MarkerNrec:                        {hf: "AT+NREC=0"},
		slc.MarkerCallWaitingNotifications:    {hf: "AT+CCWA=1"},
		slc.MarkerCallLineIdentNotifications:  {hf: "AT+CLIP=1"},
		slc.MarkerExtendedErrors:              {hf: "AT+CMEE=1"},
		slc.MarkerVolumeControl:               {hf: "AT+VGS=1"},
		slc.MarkerVolumeSynchronization:       {ag: slc.SpeakerGain{Gain: 1}},
		slc.MarkerDtmf:                        {hf: "AT+VTS=1"},
		slc.MarkerPhoneStatus:                 {hf: "AT+CIND?"},
		slc.MarkerIndicatorsActivation:        {hf: "AT+BIA=1"},
		slc.MarkerHfIndicator:                 {hf: "AT+BIEV=1,1"},
		slc.MarkerQueryOperatorSelection:      {hf: "AT+COPS=3,0"},
		slc.MarkerSubscriberNumberInformation: {hf: "AT+CNUM"},
		slc.MarkerCurrentCalls:                {hf: "AT+CLCC"},
		slc.MarkerAnswer:                      {hf: "ATA"},
		slc.MarkerHangUp:                      {hf: "AT+CHUP"},
		slc.MarkerInitiateCall:                {hf: "AT+BLDN"},
		slc.MarkerCallHold:                    {hf: "AT+CHLD=1"},
		slc.MarkerRing:                        {ag: slc.Ring{}},
		slc.MarkerVoiceRecognition:            {hf: "AT+BVRA=0"},
		slc.MarkerInbandRingtone:              {ag: slc.InbandRingtone{}},
		slc.MarkerCodecConnectionSetup:        {hf: "AT+BCC"},
		slc.MarkerAvailableCodecs:             {hf: "AT+BAC=1"},
	}
	require.Len(t, starters, len(slc.Markers()))

	bogusCommand := at.MustParse("AT+XAPL=mode=1")
	bogusUpdate := slc.OperatorName{Name: "bogus"}

	for _, m := range slc.Markers() {
		t.Run(m.String(), func(t *testing.T) {
			t.Parallel()

			s := establishedState(slc.DefaultAgFeatures|slc.AgVoiceRecognition, allHf)
			p := slc.New(m)

			before := cloneState(s)
			requireProcedureError(t, p.HfCommand(bogusCommand, s), slc.ErrUnexpectedHf, before, s)
			requireProcedureError(t, p.AgUpdate(bogusUpdate, s), slc.ErrUnexpectedAg, before, s)

			starter := starters[m]
			var req slc.ProcedureRequest
			if starter.hf != "" {
				req = p.HfCommand(at.MustParse(starter.hf), s)
			} else {
				req = p.AgUpdate(starter.ag, s)
			}
			_, rejected := req.(*slc.ProcedureError)
			require.False(t, rejected, "starter rejected: %v", req)

			// Whether mid-exchange or terminated, the procedure now rejects
			// its own starter as well as unrelated input.
			before = cloneState(s)
			requireProcedureError(t, p.HfCommand(bogusCommand, s), slc.ErrUnexpectedHf, before, s)
			requireProcedureError(t, p.AgUpdate(bogusUpdate, s), slc.ErrUnexpectedAg, before, s)
			if starter.hf != "" {
				requireProcedureError(t, p.HfCommand(at.MustParse(starter.hf), s), slc.ErrUnexpectedHf, before, s)
			} else {
				requireProcedureError(t, p.AgUpdate(starter.ag, s), slc.ErrUnexpectedAg, before, s)
			}
		})
	}
}

func TestProcedures_terminatedRejectsEverything(t *testing.T) {
	t.Parallel()

	s := establishedState(slc.DefaultAgFeatures, allHf)
	p := slc.New(slc.MarkerNrec)
	run(t, p, s, []step{
		{hf: "AT+NREC=0", request: slc.SetNrec{}},
		{ag: slc.Result{}, lines: []string{"OK"}},
	})

	before := cloneState(s)
	requireProcedureError(t, p.HfCommand(at.MustParse("AT+NREC=0"), s), slc.ErrUnexpectedHf, before, s)
	requireProcedureError(t, p.AgUpdate(slc.Result{}, s), slc.ErrUnexpectedAg, before, s)
	require.True(t, p.Terminated())
}

func TestProcedureError(t *testing.T) {
	t.Parallel()

	s := establishedState(slc.DefaultAgFeatures, allHf)
	req := slc.New(slc.MarkerVolumeControl).HfCommand(at.MustParse("AT+VGS=99"), s)

	var perr *slc.ProcedureError
	require.True(t, errors.As(req.(error), &perr))
	require.True(t, perr.FromPeer())
	require.Equal(t, slc.MarkerVolumeControl, perr.Marker)
	require.ErrorIs(t, perr, slc.ErrInvalidArgument)
	require.Contains(t, perr.Error(), `VolumeControl: unexpected hands-free command "AT+VGS=99"`)

	req = slc.New(slc.MarkerRing).AgUpdate(slc.Result{}, s)
	perr = req.(*slc.ProcedureError)
	require.False(t, perr.FromPeer())
	require.ErrorIs(t, perr, slc.ErrUnexpectedAg)
	require.NotErrorIs(t, perr, slc.ErrUnexpectedHf)
}
