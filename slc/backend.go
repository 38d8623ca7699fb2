package slc

import (
	"context"
	"strings"
)

// Backend performs the telephony and audio operations procedures ask for.
// Every method may block and must honour ctx.
type Backend interface {
	GetIndicatorStatus(ctx context.Context) (Indicators, error)
	SetNrec(ctx context.Context, enable bool) error
	SetSpeakerGain(ctx context.Context, gain int) error
	SetMicrophoneGain(ctx context.Context, gain int) error
	SendDtmf(ctx context.Context, code byte) error
	ReportHfIndicator(ctx context.Context, indicator HfIndicator, value int) error
	NetworkOperatorName(ctx context.Context) (string, error)
	SubscriberNumbers(ctx context.Context) ([]string, error)
	CurrentCalls(ctx context.Context) ([]Call, error)
	Answer(ctx context.Context) error
	HangUp(ctx context.Context) error
	Dial(ctx context.Context, target DialTarget) error
	Hold(ctx context.Context, action CallHoldAction) error
	SetVoiceRecognition(ctx context.Context, enable bool) error
	SetupAudio(ctx context.Context, codec Codec) error
}

// BackendRequest is a ProcedureRequest that needs the backend. Run performs
// it and turns the outcome into the Update fed back to the procedure.
type BackendRequest interface {
	ProcedureRequest
	Run(ctx context.Context, b Backend) Update
}

// CallDirection is the direction of a call listed in +CLCC.
type CallDirection int

const (
	DirectionOutgoing CallDirection = 0
	DirectionIncoming CallDirection = 1
)

// CallStatus is the status of a call listed in +CLCC.
type CallStatus int

const (
	StatusActive CallStatus = iota
	StatusHeld
	StatusDialing
	StatusAlerting
	StatusIncoming
	StatusWaiting
	StatusHeldByResponseAndHold
)

// Call is one entry of the current call list.
type Call struct {
	Index      int
	Direction  CallDirection
	Status     CallStatus
	Multiparty bool
	Number     string
}

// NumberType is the type of address octet for a phone number: 145 for
// international numbers, 129 otherwise.
func NumberType(number string) int {
	if strings.HasPrefix(number, "+") {
		return 145
	}
	return 129
}

// DialKind selects how the peer addressed the call to place.
type DialKind int

const (
	DialNumber DialKind = iota
	DialMemory
	DialLastNumber
)

// DialTarget is the call AT+BLDN or ATD asked for.
type DialTarget struct {
	Kind     DialKind
	Number   string
	Location int
}

// CallHoldAction is an AT+CHLD request. Command is the action, "0" to "4",
// and Call the index given with the "1x" and "2x" forms, or 0.
type CallHoldAction struct {
	Command string
	Call    int
}

type (
	GetIndicatorStatus     struct{}
	SetNrec                struct{ Enable bool }
	SetSpeakerGain         struct{ Gain int }
	SetMicrophoneGain      struct{ Gain int }
	SendDtmf               struct{ Code byte }
	GetNetworkOperatorName struct{}
	GetSubscriberNumbers   struct{}
	GetCurrentCalls        struct{}
	AnswerCall             struct{}
	HangUpCall             struct{}
	PlaceCall              struct{ Target DialTarget }
	HoldCall               struct{ Action CallHoldAction }
	SetVoiceRecognition    struct{ Enable bool }
	SetupAudio             struct{ Codec Codec }
)

// ReportHfIndicator forwards an AT+BIEV value to the backend.
type ReportHfIndicator struct {
	Indicator HfIndicator
	Value     int
}

func (GetIndicatorStatus) procedureRequest()     {}
func (SetNrec) procedureRequest()                {}
func (SetSpeakerGain) procedureRequest()         {}
func (SetMicrophoneGain) procedureRequest()      {}
func (SendDtmf) procedureRequest()               {}
func (ReportHfIndicator) procedureRequest()      {}
func (GetNetworkOperatorName) procedureRequest() {}
func (GetSubscriberNumbers) procedureRequest()   {}
func (GetCurrentCalls) procedureRequest()        {}
func (AnswerCall) procedureRequest()             {}
func (HangUpCall) procedureRequest()             {}
func (PlaceCall) procedureRequest()              {}
func (HoldCall) procedureRequest()               {}
func (SetVoiceRecognition) procedureRequest()    {}
func (SetupAudio) procedureRequest()             {}

func (GetIndicatorStatus) Run(ctx context.Context, b Backend) Update {
	v, err := b.GetIndicatorStatus(ctx)
	return IndicatorStatus{Values: v, Err: err}
}

func (r SetNrec) Run(ctx context.Context, b Backend) Update {
	return Result{Err: b.SetNrec(ctx, r.Enable)}
}

func (r SetSpeakerGain) Run(ctx context.Context, b Backend) Update {
	return Result{Err: b.SetSpeakerGain(ctx, r.Gain)}
}

func (r SetMicrophoneGain) Run(ctx context.Context, b Backend) Update {
	return Result{Err: b.SetMicrophoneGain(ctx, r.Gain)}
}

func (r SendDtmf) Run(ctx context.Context, b Backend) Update {
	return Result{Err: b.SendDtmf(ctx, r.Code)}
}

func (r ReportHfIndicator) Run(ctx context.Context, b Backend) Update {
	return Result{Err: b.ReportHfIndicator(ctx, r.Indicator, r.Value)}
}

func (GetNetworkOperatorName) Run(ctx context.Context, b Backend) Update {
	name, err := b.NetworkOperatorName(ctx)
	return OperatorName{Name: name, Err: err}
}

func (GetSubscriberNumbers) Run(ctx context.Context, b Backend) Update {
	numbers, err := b.SubscriberNumbers(ctx)
	return SubscriberNumberList{Numbers: numbers, Err: err}
}

func (GetCurrentCalls) Run(ctx context.Context, b Backend) Update {
	calls, err := b.CurrentCalls(ctx)
	return CurrentCallList{Calls: calls, Err: err}
}

func (AnswerCall) Run(ctx context.Context, b Backend) Update {
	return Result{Err: b.Answer(ctx)}
}

func (HangUpCall) Run(ctx context.Context, b Backend) Update {
	return Result{Err: b.HangUp(ctx)}
}

func (r PlaceCall) Run(ctx context.Context, b Backend) Update {
	return Result{Err: b.Dial(ctx, r.Target)}
}

func (r HoldCall) Run(ctx context.Context, b Backend) Update {
	return Result{Err: b.Hold(ctx, r.Action)}
}

func (r SetVoiceRecognition) Run(ctx context.Context, b Backend) Update {
	return Result{Err: b.SetVoiceRecognition(ctx, r.Enable)}
}

func (r SetupAudio) Run(ctx context.Context, b Backend) Update {
	return Result{Err: b.SetupAudio(ctx, r.Codec)}
}
