package slc_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"i4.energy/across/hfpag/at"
	"i4.energy/across/hfpag/slc"
)

func TestCodecConnectionSetup_fromPeer(t *testing.T) {
	t.Parallel()

	s := establishedState(slc.DefaultAgFeatures, allHf)
	run(t, slc.New(slc.MarkerCodecConnectionSetup), s, []step{
		{hf: "AT+BCC", lines: []string{"OK", "+BCS: 2"}},
		{hf: "AT+BCS=2", request: slc.SetupAudio{Codec: slc.CodecMSBC}},
		{ag: slc.Result{}, lines: []string{"OK"}},
	})
	require.Equal(t, slc.CodecMSBC, s.SelectedCodec)
}

func TestCodecConnectionSetup_fromGateway(t *testing.T) {
	t.Parallel()

	s := establishedState(slc.DefaultAgFeatures, allHf)
	s.PeerCodecs = []slc.Codec{slc.CodecCVSD}
	run(t, slc.New(slc.MarkerCodecConnectionSetup), s, []step{
		{ag: slc.AudioConnection{}, lines: []string{"+BCS: 1"}},
		{hf: "AT+BCS=1", request: slc.SetupAudio{Codec: slc.CodecCVSD}},
		{ag: slc.Result{}, lines: []string{"OK"}},
	})
	require.Equal(t, slc.CodecCVSD, s.SelectedCodec)
}

func TestCodecConnectionSetup_withoutNegotiation(t *testing.T) {
	t.Parallel()

	s := establishedState(slc.AgEcnr, slc.HfEcnr)
	s.SelectedCodec = 0
	run(t, slc.New(slc.MarkerCodecConnectionSetup), s, []step{
		{ag: slc.AudioConnection{}, request: slc.SetupAudio{Codec: slc.CodecCVSD}},
		{ag: slc.Result{}, request: nil},
	})
	require.Equal(t, slc.CodecCVSD, s.SelectedCodec)

	p := slc.New(slc.MarkerCodecConnectionSetup)
	before := cloneState(s)
	requireProcedureError(t, p.HfCommand(at.MustParse("AT+BCC"), s), slc.ErrFeatureNotSupported, before, s)
}

func TestCodecConnectionSetup_mismatch(t *testing.T) {
	t.Parallel()

	s := establishedState(slc.DefaultAgFeatures, allHf)
	p := slc.New(slc.MarkerCodecConnectionSetup)
	require.Equal(t, []string{"OK", "+BCS: 2"}, lines(t, p.HfCommand(at.MustParse("AT+BCC"), s)))

	before := cloneState(s)
	requireProcedureError(t, p.HfCommand(at.MustParse("AT+BCS=1"), s), slc.ErrInvalidArgument, before, s)
	requireProcedureError(t, p.HfCommand(at.MustParse("AT+BCS=9"), s), slc.ErrInvalidArgument, before, s)
	require.False(t, p.Terminated())

	// The peer may still confirm the proposal.
	require.Equal(t, slc.SetupAudio{Codec: slc.CodecMSBC}, p.HfCommand(at.MustParse("AT+BCS=2"), s))
}

func TestCodecConnectionSetup_audioFailure(t *testing.T) {
	t.Parallel()

	s := establishedState(slc.DefaultAgFeatures, allHf)
	run(t, slc.New(slc.MarkerCodecConnectionSetup), s, []step{
		{hf: "AT+BCC", lines: []string{"OK", "+BCS: 2"}},
		{hf: "AT+BCS=2", request: slc.SetupAudio{Codec: slc.CodecMSBC}},
		{ag: slc.Result{Err: errors.New("sco refused")}, lines: []string{"ERROR"}},
	})
	require.Equal(t, slc.CodecCVSD, s.SelectedCodec)
}

func TestCodecConnectionSetup_codecsChanged(t *testing.T) {
	t.Parallel()

	s := establishedState(slc.DefaultAgFeatures, allHf)
	p := slc.New(slc.MarkerCodecConnectionSetup)

	require.Equal(t, []string{"+BCS: 2"}, lines(t, p.AgUpdate(slc.AudioConnection{}, s)))

	// The peer dropped mSBC and answered with AT+BAC=1.
	s.PeerCodecs = []slc.Codec{slc.CodecCVSD}
	require.Equal(t, []string{"+BCS: 1"}, lines(t, p.AgUpdate(slc.CodecsChanged{}, s)))
	require.False(t, p.Terminated())

	require.Equal(t, slc.SetupAudio{Codec: slc.CodecCVSD}, p.HfCommand(at.MustParse("AT+BCS=1"), s))
	require.Nil(t, p.AgUpdate(slc.Result{}, s))
	require.True(t, p.Terminated())
	require.Equal(t, slc.CodecCVSD, s.SelectedCodec)
}

func TestCodecConnectionSetup_codecsChangedOutsideProposal(t *testing.T) {
	t.Parallel()

	s := establishedState(slc.DefaultAgFeatures, allHf)
	p := slc.New(slc.MarkerCodecConnectionSetup)

	before := cloneState(s)
	requireProcedureError(t, p.AgUpdate(slc.CodecsChanged{}, s), slc.ErrUnexpectedAg, before, s)
}

func TestState_PreferredCodec(t *testing.T) {
	t.Parallel()

	s := establishedState(slc.DefaultAgFeatures, allHf)
	require.Equal(t, slc.CodecMSBC, s.PreferredCodec())

	s.LocalCodecs = append(s.LocalCodecs, slc.CodecLC3SWB)
	s.PeerCodecs = append(s.PeerCodecs, slc.CodecLC3SWB)
	require.Equal(t, slc.CodecLC3SWB, s.PreferredCodec())

	s.PeerFeatures = slc.HfEcnr
	require.Equal(t, slc.CodecCVSD, s.PreferredCodec())
}
