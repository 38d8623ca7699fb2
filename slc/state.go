package slc

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"i4.energy/across/hfpag/at"
)

// Indicator is a 1-based audio gateway indicator index, in the order the
// gateway describes them in +CIND.
type Indicator int

const (
	IndicatorService Indicator = iota + 1
	IndicatorCall
	IndicatorCallSetup
	IndicatorCallHeld
	IndicatorSignal
	IndicatorRoam
	IndicatorBatteryCharge
)

// NumIndicators is the number of audio gateway indicators.
const NumIndicators = 7

var indicatorInfo = [NumIndicators]struct {
	name string
	max  int
}{
	{"service", 1},
	{"call", 1},
	{"callsetup", 3},
	{"callheld", 2},
	{"signal", 5},
	{"roam", 1},
	{"battchg", 5},
}

// Valid reports whether i names one of the gateway indicators.
func (i Indicator) Valid() bool {
	return i >= IndicatorService && i <= IndicatorBatteryCharge
}

func (i Indicator) String() string {
	if !i.Valid() {
		return fmt.Sprintf("Indicator(%d)", int(i))
	}
	return indicatorInfo[i-1].name
}

// Max is the highest value the indicator takes; the lowest is always 0.
func (i Indicator) Max() int {
	if !i.Valid() {
		return -1
	}
	return indicatorInfo[i-1].max
}

// alwaysActive reports whether the hands-free unit cannot deactivate i with
// AT+BIA.
func (i Indicator) alwaysActive() bool {
	return i == IndicatorCall || i == IndicatorCallSetup || i == IndicatorCallHeld
}

// Indicators holds the current value of every gateway indicator.
type Indicators [NumIndicators]int

// Get returns the value of i.
func (v Indicators) Get(i Indicator) int {
	if !i.Valid() {
		return 0
	}
	return v[i-1]
}

// Set changes the value of i after checking its range.
func (v *Indicators) Set(i Indicator, value int) error {
	if !i.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownIndicator, int(i))
	}
	if value < 0 || value > i.Max() {
		return fmt.Errorf("%w: %s=%d", ErrOutOfRange, i, value)
	}
	v[i-1] = value
	return nil
}

// HfIndicator is an assigned number of a hands-free indicator (AT+BIND).
type HfIndicator int

const (
	HfIndicatorEnhancedSafety HfIndicator = 1
	HfIndicatorBatteryLevel   HfIndicator = 2
)

// Max is the highest value a peer may report for the indicator.
func (h HfIndicator) Max() int {
	switch h {
	case HfIndicatorEnhancedSafety:
		return 1
	case HfIndicatorBatteryLevel:
		return 100
	default:
		return -1
	}
}

// State is the negotiated state of one service level connection. It is
// owned by the connection and lent to one procedure step at a time.
type State struct {
	LocalFeatures AgFeatures
	LocalCodecs   []Codec
	PeerFeatures  HfFeatures
	PeerCodecs    []Codec
	SelectedCodec Codec

	Indicators Indicators
	// IndicatorEvents is enabled by AT+CMER.
	IndicatorEvents bool
	// ActiveIndicators holds the indicators reported with +CIEV (AT+BIA).
	ActiveIndicators *bitset.BitSet

	// LocalHfIndicators are the hands-free indicators the gateway accepts.
	LocalHfIndicators *bitset.BitSet
	// PeerHfIndicators are the ones the peer listed with AT+BIND=.
	PeerHfIndicators *bitset.BitSet
	// EnabledHfIndicators are those reported enabled in +BIND: <id>,1.
	EnabledHfIndicators *bitset.BitSet
	HfIndicatorValues   map[HfIndicator]int

	CallWaitingNotifications   bool
	CallLineIdentNotifications bool
	ExtendedErrors             bool
	Nrec                       bool
	VoiceRecognition           bool
	// OperatorFormat is set once the peer selected the long alphanumeric
	// operator format with AT+COPS=3,0.
	OperatorFormat bool

	SpeakerGain    int
	MicrophoneGain int

	// ThreeWayCalling lists the AT+CHLD values reported in +CHLD.
	ThreeWayCalling []string
}

// NewState returns the state of a fresh connection for a gateway with the
// given features and codecs.
func NewState(features AgFeatures, codecs []Codec) *State {
	s := &State{
		LocalFeatures:       features,
		LocalCodecs:         slices.Clone(codecs),
		SelectedCodec:       CodecCVSD,
		ActiveIndicators:    bitset.New(NumIndicators + 1),
		LocalHfIndicators:   bitset.New(3),
		PeerHfIndicators:    bitset.New(3),
		EnabledHfIndicators: bitset.New(3),
		HfIndicatorValues:   make(map[HfIndicator]int),
		Nrec:                features.Has(AgEcnr),
	}
	for i := IndicatorService; i <= IndicatorBatteryCharge; i++ {
		s.ActiveIndicators.Set(uint(i))
	}
	if features.Has(AgHfIndicators) {
		s.LocalHfIndicators.Set(uint(HfIndicatorEnhancedSafety)).Set(uint(HfIndicatorBatteryLevel))
	}

	s.ThreeWayCalling = []string{"0", "1", "2", "3", "4"}
	if features.Has(AgEnhancedCallControl) {
		s.ThreeWayCalling = []string{"0", "1", "1x", "2", "2x", "3", "4"}
	}
	return s
}

// SupportsCodecNegotiation reports whether both sides advertised codec negotiation.
func (s *State) SupportsCodecNegotiation() bool {
	return s.LocalFeatures.Has(AgCodecNegotiation) && s.PeerFeatures.Has(HfCodecNegotiation)
}

// SupportsThreeWayCalling reports whether both sides advertised three-way calling.
func (s *State) SupportsThreeWayCalling() bool {
	return s.LocalFeatures.Has(AgThreeWayCalling) && s.PeerFeatures.Has(HfThreeWayCalling)
}

// SupportsHfIndicators reports whether both sides advertised HF indicators.
func (s *State) SupportsHfIndicators() bool {
	return s.LocalFeatures.Has(AgHfIndicators) && s.PeerFeatures.Has(HfIndicators)
}

// IndicatorActive reports whether changes of i are sent to the peer.
func (s *State) IndicatorActive(i Indicator) bool {
	return i.Valid() && s.ActiveIndicators.Test(uint(i))
}

// PreferredCodec picks the codec proposed in +BCS: the best codec both
// sides support, falling back to CVSD.
func (s *State) PreferredCodec() Codec {
	if !s.SupportsCodecNegotiation() {
		return CodecCVSD
	}
	for _, c := range []Codec{CodecLC3SWB, CodecMSBC} {
		if slices.Contains(s.LocalCodecs, c) && slices.Contains(s.PeerCodecs, c) {
			return c
		}
	}
	return CodecCVSD
}

// ErrorResponse is the negative result code for the peer: +CME ERROR once
// extended errors are enabled, plain ERROR otherwise.
func (s *State) ErrorResponse(code int) at.Response {
	if s.ExtendedErrors {
		return at.CmeErr(code)
	}
	return at.Error()
}
