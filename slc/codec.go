package slc

import (
	"fmt"

	"i4.energy/across/hfpag/at"
)

type codecPhase int

const (
	codecStart codecPhase = iota
	codecProposed
	codecAwaitingAudio
	codecDone
)

// codecConnectionSetup selects the codec for an audio connection and asks
// the backend to open it. The peer starts it with AT+BCC, the gateway with
// an AudioConnection notification. Without codec negotiation the gateway
// opens a CVSD connection right away.
type codecConnectionSetup struct {
	phase    codecPhase
	proposed Codec
	// confirm is set when the peer waits for a result code of AT+BCS.
	confirm bool
}

func (p *codecConnectionSetup) Marker() Marker {
	return MarkerCodecConnectionSetup
}

func (p *codecConnectionSetup) Terminated() bool {
	return p.phase == codecDone
}

func (p *codecConnectionSetup) HfCommand(cmd at.Command, s *State) ProcedureRequest {
	switch {
	case p.phase == codecStart && is(cmd, "BCC", at.Execute):
		if !s.SupportsCodecNegotiation() {
			return unexpectedHf(MarkerCodecConnectionSetup, cmd, ErrFeatureNotSupported)
		}
		if err := argCount(cmd, 0, 0); err != nil {
			return unexpectedHf(MarkerCodecConnectionSetup, cmd, err)
		}
		p.proposed = s.PreferredCodec()
		p.phase = codecProposed
		return SendMessages{at.Ok(), selection(p.proposed)}

	case p.phase == codecProposed && is(cmd, "BCS", at.Execute):
		if err := argCount(cmd, 1, 1); err != nil {
			return unexpectedHf(MarkerCodecConnectionSetup, cmd, err)
		}
		id, err := intArg(cmd, 0, int(CodecCVSD), int(CodecLC3SWB))
		if err != nil {
			return unexpectedHf(MarkerCodecConnectionSetup, cmd, err)
		}
		if Codec(id) != p.proposed {
			return unexpectedHf(MarkerCodecConnectionSetup, cmd,
				fmt.Errorf("%w: peer confirmed %s, proposed %s", ErrInvalidArgument, Codec(id), p.proposed))
		}
		p.confirm = true
		p.phase = codecAwaitingAudio
		return SetupAudio{Codec: p.proposed}
	}
	return unexpectedHf(MarkerCodecConnectionSetup, cmd, nil)
}

func (p *codecConnectionSetup) AgUpdate(u Update, s *State) ProcedureRequest {
	switch u := u.(type) {
	case AudioConnection:
		if p.phase != codecStart {
			break
		}
		if !s.SupportsCodecNegotiation() {
			p.proposed = CodecCVSD
			p.phase = codecAwaitingAudio
			return SetupAudio{Codec: CodecCVSD}
		}
		p.proposed = s.PreferredCodec()
		p.phase = codecProposed
		return SendMessages{selection(p.proposed)}

	case CodecsChanged:
		// The peer may answer +BCS with AT+BAC; the selection restarts
		// from the new list.
		if p.phase != codecProposed {
			break
		}
		p.proposed = s.PreferredCodec()
		return SendMessages{selection(p.proposed)}

	case Result:
		if p.phase != codecAwaitingAudio {
			break
		}
		p.phase = codecDone
		if u.Err != nil {
			if p.confirm {
				return SendMessages{s.ErrorResponse(at.CmeAgFailure)}
			}
			return nil
		}
		s.SelectedCodec = p.proposed
		if p.confirm {
			return SendMessages{at.Ok()}
		}
		return nil
	}
	return unexpectedAg(MarkerCodecConnectionSetup, u, nil)
}

func selection(c Codec) at.Response {
	return at.Success("BCS", at.Int(int(c)))
}
