package slc

import (
	"fmt"

	"i4.energy/across/hfpag/at"
)

// Marker names a procedure kind. At most one procedure per Marker is live
// on a connection.
type Marker int

const (
	MarkerSlcInitialization Marker = iota
	MarkerNrec
	MarkerCallWaitingNotifications
	MarkerCallLineIdentNotifications
	MarkerExtendedErrors
	MarkerVolumeControl
	MarkerVolumeSynchronization
	MarkerDtmf
	MarkerPhoneStatus
	MarkerIndicatorsActivation
	MarkerHfIndicator
	MarkerQueryOperatorSelection
	MarkerSubscriberNumberInformation
	MarkerCurrentCalls
	MarkerAnswer
	MarkerHangUp
	MarkerInitiateCall
	MarkerCallHold
	MarkerRing
	MarkerVoiceRecognition
	MarkerInbandRingtone
	MarkerCodecConnectionSetup
	MarkerAvailableCodecs

	numMarkers
)

var markerNames = [numMarkers]string{
	"SlcInitialization",
	"Nrec",
	"CallWaitingNotifications",
	"CallLineIdentNotifications",
	"ExtendedErrors",
	"VolumeControl",
	"VolumeSynchronization",
	"Dtmf",
	"PhoneStatus",
	"IndicatorsActivation",
	"HfIndicator",
	"QueryOperatorSelection",
	"SubscriberNumberInformation",
	"CurrentCalls",
	"Answer",
	"HangUp",
	"InitiateCall",
	"CallHold",
	"Ring",
	"VoiceRecognition",
	"InbandRingtone",
	"CodecConnectionSetup",
	"AvailableCodecs",
}

func (m Marker) String() string {
	if m < 0 || m >= numMarkers {
		return fmt.Sprintf("Marker(%d)", int(m))
	}
	return markerNames[m]
}

// Markers returns every procedure kind.
func Markers() []Marker {
	ms := make([]Marker, 0, numMarkers)
	for m := Marker(0); m < numMarkers; m++ {
		ms = append(ms, m)
	}
	return ms
}

type commandKey struct {
	name      string
	extension bool
	kind      at.Kind
}

// commandTable maps the commands accepted once the service level connection
// is established.
var commandTable = map[commandKey]Marker{
	{"NREC", true, at.Execute}: MarkerNrec,
	{"CCWA", true, at.Execute}: MarkerCallWaitingNotifications,
	{"CLIP", true, at.Execute}: MarkerCallLineIdentNotifications,
	{"CMEE", true, at.Execute}: MarkerExtendedErrors,
	{"VGS", true, at.Execute}:  MarkerVolumeControl,
	{"VGM", true, at.Execute}:  MarkerVolumeControl,
	{"VTS", true, at.Execute}:  MarkerDtmf,
	{"CIND", true, at.Read}:    MarkerPhoneStatus,
	{"CIND", true, at.Test}:    MarkerPhoneStatus,
	{"CMER", true, at.Execute}: MarkerPhoneStatus,
	{"BIA", true, at.Execute}:  MarkerIndicatorsActivation,
	{"BIEV", true, at.Execute}: MarkerHfIndicator,
	{"COPS", true, at.Execute}: MarkerQueryOperatorSelection,
	{"COPS", true, at.Read}:    MarkerQueryOperatorSelection,
	{"CNUM", true, at.Execute}: MarkerSubscriberNumberInformation,
	{"CLCC", true, at.Execute}: MarkerCurrentCalls,
	{"A", false, at.Execute}:   MarkerAnswer,
	{"CHUP", true, at.Execute}: MarkerHangUp,
	{"D", false, at.Execute}:   MarkerInitiateCall,
	{"BLDN", true, at.Execute}: MarkerInitiateCall,
	{"CHLD", true, at.Execute}: MarkerCallHold,
	{"BVRA", true, at.Execute}: MarkerVoiceRecognition,
	{"BCC", true, at.Execute}:  MarkerCodecConnectionSetup,
	{"BCS", true, at.Execute}:  MarkerCodecConnectionSetup,
	{"BAC", true, at.Execute}:  MarkerAvailableCodecs,
}

// initializationCommands are the commands of the capability exchange that
// brings the service level connection up.
var initializationCommands = map[commandKey]bool{
	{"BRSF", true, at.Execute}: true,
	{"BAC", true, at.Execute}:  true,
	{"CIND", true, at.Test}:    true,
	{"CIND", true, at.Read}:    true,
	{"CMER", true, at.Execute}: true,
	{"CHLD", true, at.Test}:    true,
	{"BIND", true, at.Execute}: true,
	{"BIND", true, at.Test}:    true,
	{"BIND", true, at.Read}:    true,
}

// MarkerFor returns the procedure kind a command belongs to. Before the
// service level connection is established every known command belongs to
// the initialization exchange, which rejects those out of its sequence.
func MarkerFor(cmd at.Command, established bool) (Marker, bool) {
	key := commandKey{name: cmd.Name, extension: cmd.Extension, kind: cmd.Kind}
	if !established {
		if initializationCommands[key] {
			return MarkerSlcInitialization, true
		}
		if _, ok := commandTable[key]; ok {
			return MarkerSlcInitialization, true
		}
		return 0, false
	}
	m, ok := commandTable[key]
	return m, ok
}

// Known reports whether any form of the named command is part of the
// protocol surface.
func Known(name string, extension bool) bool {
	for key := range commandTable {
		if key.name == name && key.extension == extension {
			return true
		}
	}
	for key := range initializationCommands {
		if key.name == name && key.extension == extension {
			return true
		}
	}
	return false
}

// New returns a fresh procedure of the given kind.
func New(m Marker) Procedure {
	switch m {
	case MarkerSlcInitialization:
		return &slcInitialization{}
	case MarkerNrec:
		return newExchange(m, &nrec{})
	case MarkerCallWaitingNotifications:
		return newExchange(m, callWaiting{})
	case MarkerCallLineIdentNotifications:
		return newExchange(m, callLineIdent{})
	case MarkerExtendedErrors:
		return newExchange(m, extendedErrors{})
	case MarkerVolumeControl:
		return newExchange(m, &volumeControl{})
	case MarkerVolumeSynchronization:
		return newExchange(m, volumeSynchronization{})
	case MarkerDtmf:
		return newExchange(m, dtmf{})
	case MarkerPhoneStatus:
		return newExchange(m, phoneStatus{})
	case MarkerIndicatorsActivation:
		return newExchange(m, indicatorsActivation{})
	case MarkerHfIndicator:
		return newExchange(m, &hfIndicator{})
	case MarkerQueryOperatorSelection:
		return newExchange(m, queryOperatorSelection{})
	case MarkerSubscriberNumberInformation:
		return newExchange(m, subscriberNumberInformation{})
	case MarkerCurrentCalls:
		return newExchange(m, currentCalls{})
	case MarkerAnswer:
		return newExchange(m, answer{})
	case MarkerHangUp:
		return newExchange(m, hangUp{})
	case MarkerInitiateCall:
		return newExchange(m, initiateCall{})
	case MarkerCallHold:
		return newExchange(m, callHold{})
	case MarkerRing:
		return newExchange(m, ring{})
	case MarkerVoiceRecognition:
		return newExchange(m, &voiceRecognition{})
	case MarkerInbandRingtone:
		return newExchange(m, inbandRingtone{})
	case MarkerCodecConnectionSetup:
		return &codecConnectionSetup{}
	case MarkerAvailableCodecs:
		return newExchange(m, availableCodecs{})
	default:
		panic(fmt.Sprintf("slc: unknown marker %d", int(m)))
	}
}
