package slc_test

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
	"i4.energy/across/hfpag/at"
	"i4.energy/across/hfpag/slc"
)

// allHf is a hands-free unit supporting everything the gateway negotiates.
const allHf = slc.HfThreeWayCalling | slc.HfCliPresentation | slc.HfRemoteVolumeControl |
	slc.HfCodecNegotiation | slc.HfIndicators

// establishedState returns the state of a connection after the capability
// exchange, with both HF indicators enabled.
func establishedState(ag slc.AgFeatures, hf slc.HfFeatures) *slc.State {
	s := slc.NewState(ag, []slc.Codec{slc.CodecCVSD, slc.CodecMSBC})
	s.PeerFeatures = hf
	s.PeerCodecs = []slc.Codec{slc.CodecCVSD, slc.CodecMSBC}
	s.IndicatorEvents = true
	if s.SupportsHfIndicators() {
		s.PeerHfIndicators.Set(1).Set(2)
		s.EnabledHfIndicators.Set(1).Set(2)
	}
	return s
}

func cloneState(s *slc.State) *slc.State {
	c := *s
	c.LocalCodecs = slices.Clone(s.LocalCodecs)
	c.PeerCodecs = slices.Clone(s.PeerCodecs)
	c.ActiveIndicators = s.ActiveIndicators.Clone()
	c.LocalHfIndicators = s.LocalHfIndicators.Clone()
	c.PeerHfIndicators = s.PeerHfIndicators.Clone()
	c.EnabledHfIndicators = s.EnabledHfIndicators.Clone()
	c.HfIndicatorValues = maps.Clone(s.HfIndicatorValues)
	c.ThreeWayCalling = slices.Clone(s.ThreeWayCalling)
	return &c
}

// lines formats a SendMessages request, failing on anything else.
func lines(t *testing.T, req slc.ProcedureRequest) []string {
	t.Helper()

	msgs, ok := req.(slc.SendMessages)
	require.True(t, ok, "want SendMessages, got %#v", req)
	return at.FormatResponses(msgs)
}

// requireProcedureError checks that req rejects the input without touching
// the state.
func requireProcedureError(t *testing.T, req slc.ProcedureRequest, target error, before, after *slc.State) {
	t.Helper()

	perr, ok := req.(*slc.ProcedureError)
	require.True(t, ok, "want *ProcedureError, got %#v", req)
	require.ErrorIs(t, perr, target)
	require.Equal(t, before, after)
}
