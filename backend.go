package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"i4.energy/across/hfpag/slc"
)

var errNoCall = errors.New("no matching call")

// MemoryBackend is a telephony backend without a phone behind it. It keeps
// a call list so that the hands-free unit sees consistent answers, and logs
// every request.
type MemoryBackend struct {
	Logger           *slog.Logger
	OperatorName     string
	SubscriberNumber string

	mu         sync.Mutex
	calls      []slc.Call
	lastNumber string
	phonebook  map[int]string
	indicators slc.Indicators
}

func NewMemoryBackend(logger *slog.Logger, operator, subscriber string) *MemoryBackend {
	return &MemoryBackend{
		Logger:           logger,
		OperatorName:     operator,
		SubscriberNumber: subscriber,
		phonebook:        make(map[int]string),
		indicators:       slc.Indicators{1, 0, 0, 0, 5, 0, 5},
	}
}

// Store puts a number into the memory dialled by ATD>n.
func (b *MemoryBackend) Store(location int, number string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.phonebook[location] = number
}

// Incoming registers a ringing call, as reported by RING. Repeated rings
// for the same number keep the existing entry.
func (b *MemoryBackend) Incoming(number string) slc.Call {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := slices.IndexFunc(b.calls, func(c slc.Call) bool {
		return c.Number == number && (c.Status == slc.StatusIncoming || c.Status == slc.StatusWaiting)
	}); i >= 0 {
		return b.calls[i]
	}

	status := slc.StatusIncoming
	if b.hasActiveLocked() {
		status = slc.StatusWaiting
	}
	return b.addLocked(slc.DirectionIncoming, status, number)
}

// SetIndicator records a value later returned to AT+CIND?.
func (b *MemoryBackend) SetIndicator(ind slc.Indicator, value int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.indicators.Set(ind, value)
}

// Calls returns a snapshot of the call list.
func (b *MemoryBackend) Calls() []slc.Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.calls)
}

func (b *MemoryBackend) GetIndicatorStatus(ctx context.Context) (slc.Indicators, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.indicators, nil
}

func (b *MemoryBackend) SetNrec(ctx context.Context, enable bool) error {
	b.Logger.Info("noise reduction", "enabled", enable)
	return nil
}

func (b *MemoryBackend) SetSpeakerGain(ctx context.Context, gain int) error {
	b.Logger.Info("speaker gain", "gain", gain)
	return nil
}

func (b *MemoryBackend) SetMicrophoneGain(ctx context.Context, gain int) error {
	b.Logger.Info("microphone gain", "gain", gain)
	return nil
}

func (b *MemoryBackend) SendDtmf(ctx context.Context, code byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.hasActiveLocked() {
		return errNoCall
	}
	b.Logger.Info("dtmf", "code", string(code))
	return nil
}

func (b *MemoryBackend) ReportHfIndicator(ctx context.Context, indicator slc.HfIndicator, value int) error {
	b.Logger.Info("hands-free indicator", "indicator", int(indicator), "value", value)
	return nil
}

func (b *MemoryBackend) NetworkOperatorName(ctx context.Context) (string, error) {
	return b.OperatorName, nil
}

func (b *MemoryBackend) SubscriberNumbers(ctx context.Context) ([]string, error) {
	if b.SubscriberNumber == "" {
		return nil, nil
	}
	return []string{b.SubscriberNumber}, nil
}

func (b *MemoryBackend) CurrentCalls(ctx context.Context) ([]slc.Call, error) {
	return b.Calls(), nil
}

func (b *MemoryBackend) Answer(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.findLocked(slc.StatusIncoming)
	if i < 0 {
		return errNoCall
	}
	b.calls[i].Status = slc.StatusActive
	b.Logger.Info("call answered", "index", b.calls[i].Index)
	return nil
}

func (b *MemoryBackend) HangUp(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, status := range []slc.CallStatus{slc.StatusActive, slc.StatusDialing, slc.StatusAlerting, slc.StatusIncoming} {
		if i := b.findLocked(status); i >= 0 {
			b.Logger.Info("call ended", "index", b.calls[i].Index)
			b.calls = slices.Delete(b.calls, i, i+1)
			return nil
		}
	}
	return errNoCall
}

func (b *MemoryBackend) Dial(ctx context.Context, target slc.DialTarget) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	number := target.Number
	switch target.Kind {
	case slc.DialLastNumber:
		number = b.lastNumber
	case slc.DialMemory:
		number = b.phonebook[target.Location]
	}
	if number == "" {
		return fmt.Errorf("dial %v: no number", target.Kind)
	}
	if b.hasActiveLocked() {
		return errors.New("line busy")
	}

	b.lastNumber = number
	call := b.addLocked(slc.DirectionOutgoing, slc.StatusDialing, number)
	b.Logger.Info("dialing", "index", call.Index, "number", number)
	return nil
}

func (b *MemoryBackend) Hold(ctx context.Context, action slc.CallHoldAction) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Logger.Info("call hold", "command", action.Command, "call", action.Call)
	switch action.Command {
	case "0":
		// Release held calls or reject the waiting one.
		b.calls = slices.DeleteFunc(b.calls, func(c slc.Call) bool {
			return c.Status == slc.StatusHeld || c.Status == slc.StatusWaiting
		})
	case "1":
		if action.Call > 0 {
			return b.removeLocked(action.Call)
		}
		b.calls = slices.DeleteFunc(b.calls, func(c slc.Call) bool { return c.Status == slc.StatusActive })
		b.activateOtherLocked()
	case "2":
		for i := range b.calls {
			switch b.calls[i].Status {
			case slc.StatusActive:
				b.calls[i].Status = slc.StatusHeld
			case slc.StatusHeld, slc.StatusWaiting:
				b.calls[i].Status = slc.StatusActive
			}
		}
	case "3":
		for i := range b.calls {
			if b.calls[i].Status == slc.StatusHeld || b.calls[i].Status == slc.StatusActive {
				b.calls[i].Status = slc.StatusActive
				b.calls[i].Multiparty = true
			}
		}
	case "4":
		b.calls = slices.DeleteFunc(b.calls, func(c slc.Call) bool {
			return c.Status == slc.StatusActive || c.Status == slc.StatusHeld
		})
	default:
		return fmt.Errorf("hold command %q not supported", action.Command)
	}
	return nil
}

func (b *MemoryBackend) SetVoiceRecognition(ctx context.Context, enable bool) error {
	b.Logger.Info("voice recognition", "enabled", enable)
	return nil
}

func (b *MemoryBackend) SetupAudio(ctx context.Context, codec slc.Codec) error {
	b.Logger.Info("audio connection", "codec", codec.String())
	return nil
}

func (b *MemoryBackend) addLocked(dir slc.CallDirection, status slc.CallStatus, number string) slc.Call {
	index := 1
	for slices.ContainsFunc(b.calls, func(c slc.Call) bool { return c.Index == index }) {
		index++
	}
	call := slc.Call{Index: index, Direction: dir, Status: status, Number: number}
	b.calls = append(b.calls, call)
	return call
}

func (b *MemoryBackend) removeLocked(index int) error {
	i := slices.IndexFunc(b.calls, func(c slc.Call) bool { return c.Index == index })
	if i < 0 {
		return errNoCall
	}
	b.calls = slices.Delete(b.calls, i, i+1)
	return nil
}

func (b *MemoryBackend) findLocked(status slc.CallStatus) int {
	return slices.IndexFunc(b.calls, func(c slc.Call) bool { return c.Status == status })
}

func (b *MemoryBackend) hasActiveLocked() bool {
	return b.findLocked(slc.StatusActive) >= 0
}

// activateOtherLocked picks up a waiting call, or else a held one.
func (b *MemoryBackend) activateOtherLocked() {
	for _, status := range []slc.CallStatus{slc.StatusWaiting, slc.StatusHeld} {
		if i := b.findLocked(status); i >= 0 {
			b.calls[i].Status = slc.StatusActive
			return
		}
	}
}
