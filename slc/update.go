package slc

// Update is a locally originated input to a procedure: either the reply to a
// BackendRequest or a Notification raised by the gateway itself.
type Update interface {
	update()
}

// Result is the reply to backend requests that only succeed or fail.
type Result struct {
	Err error
}

// IndicatorStatus is the reply to GetIndicatorStatus.
type IndicatorStatus struct {
	Values Indicators
	Err    error
}

// OperatorName is the reply to GetNetworkOperatorName.
type OperatorName struct {
	Name string
	Err  error
}

// SubscriberNumberList is the reply to GetSubscriberNumbers.
type SubscriberNumberList struct {
	Numbers []string
	Err     error
}

// CurrentCallList is the reply to GetCurrentCalls.
type CurrentCallList struct {
	Calls []Call
	Err   error
}

// CodecsChanged tells a live codec connection setup that the peer sent a
// new codec list with AT+BAC.
type CodecsChanged struct{}

func (Result) update()               {}
func (IndicatorStatus) update()      {}
func (OperatorName) update()         {}
func (SubscriberNumberList) update() {}
func (CurrentCallList) update()      {}
func (CodecsChanged) update()        {}

// Notification is an event raised by the gateway that starts or feeds a
// procedure, such as an incoming call or a signal strength change.
type Notification interface {
	Update
	Marker() Marker
}

// IndicatorUpdate reports a new value of one gateway indicator.
type IndicatorUpdate struct {
	Indicator Indicator
	Value     int
}

// Ring alerts the peer of an incoming call. Number is optional.
type Ring struct {
	Number string
}

// CallWaiting alerts the peer of a second incoming call.
type CallWaiting struct {
	Number string
}

// SpeakerGain reports a local change of the speaker volume, 0 to 15.
type SpeakerGain struct {
	Gain int
}

// MicrophoneGain reports a local change of the microphone volume, 0 to 15.
type MicrophoneGain struct {
	Gain int
}

// InbandRingtone switches the in-band ring tone on or off.
type InbandRingtone struct {
	Enabled bool
}

// AudioConnection asks for an audio connection to the peer.
type AudioConnection struct{}

func (IndicatorUpdate) update() {}
func (Ring) update()            {}
func (CallWaiting) update()     {}
func (SpeakerGain) update()     {}
func (MicrophoneGain) update()  {}
func (InbandRingtone) update()  {}
func (AudioConnection) update() {}

func (IndicatorUpdate) Marker() Marker { return MarkerPhoneStatus }
func (Ring) Marker() Marker            { return MarkerRing }
func (CallWaiting) Marker() Marker     { return MarkerCallWaitingNotifications }
func (SpeakerGain) Marker() Marker     { return MarkerVolumeSynchronization }
func (MicrophoneGain) Marker() Marker  { return MarkerVolumeSynchronization }
func (InbandRingtone) Marker() Marker  { return MarkerInbandRingtone }
func (AudioConnection) Marker() Marker { return MarkerCodecConnectionSetup }
