package slc

import (
	"fmt"
	"strings"
)

// AgFeatures is the audio gateway supported features bitmap reported in +BRSF.
type AgFeatures uint32

const (
	AgThreeWayCalling AgFeatures = 1 << iota
	AgEcnr
	AgVoiceRecognition
	AgInBandRing
	AgVoiceTag
	AgRejectCall
	AgEnhancedCallStatus
	AgEnhancedCallControl
	AgExtendedErrors
	AgCodecNegotiation
	AgHfIndicators
	AgEscoS4
	AgEnhancedVoiceRecognitionStatus
	AgVoiceRecognitionText
)

// DefaultAgFeatures is what the gateway advertises unless configured otherwise.
const DefaultAgFeatures = AgThreeWayCalling | AgEcnr | AgInBandRing | AgRejectCall |
	AgEnhancedCallStatus | AgExtendedErrors | AgCodecNegotiation | AgHfIndicators

// Has reports whether all bits of x are set.
func (f AgFeatures) Has(x AgFeatures) bool {
	return f&x == x
}

var agFeatureNames = map[string]AgFeatures{
	"three-way-calling":                 AgThreeWayCalling,
	"ecnr":                              AgEcnr,
	"voice-recognition":                 AgVoiceRecognition,
	"in-band-ring":                      AgInBandRing,
	"voice-tag":                         AgVoiceTag,
	"reject-call":                       AgRejectCall,
	"enhanced-call-status":              AgEnhancedCallStatus,
	"enhanced-call-control":             AgEnhancedCallControl,
	"extended-errors":                   AgExtendedErrors,
	"codec-negotiation":                 AgCodecNegotiation,
	"hf-indicators":                     AgHfIndicators,
	"esco-s4":                           AgEscoS4,
	"enhanced-voice-recognition-status": AgEnhancedVoiceRecognitionStatus,
	"voice-recognition-text":            AgVoiceRecognitionText,
}

// ParseAgFeatures combines feature names such as "ecnr" or
// "three-way-calling" into a bitmap.
func ParseAgFeatures(names []string) (AgFeatures, error) {
	var f AgFeatures
	for _, name := range names {
		bit, ok := agFeatureNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("unknown audio gateway feature %q", name)
		}
		f |= bit
	}
	return f, nil
}

// HfFeatures is the hands-free supported features bitmap sent in AT+BRSF.
type HfFeatures uint32

const (
	HfEcnr HfFeatures = 1 << iota
	HfThreeWayCalling
	HfCliPresentation
	HfVoiceRecognition
	HfRemoteVolumeControl
	HfEnhancedCallStatus
	HfEnhancedCallControl
	HfCodecNegotiation
	HfIndicators
	HfEscoS4
	HfEnhancedVoiceRecognitionStatus
	HfVoiceRecognitionText
)

// Has reports whether all bits of x are set.
func (f HfFeatures) Has(x HfFeatures) bool {
	return f&x == x
}

// Codec is an audio codec identifier as used in AT+BAC and +BCS.
type Codec int

const (
	CodecCVSD   Codec = 1
	CodecMSBC   Codec = 2
	CodecLC3SWB Codec = 3
)

func (c Codec) String() string {
	switch c {
	case CodecCVSD:
		return "CVSD"
	case CodecMSBC:
		return "mSBC"
	case CodecLC3SWB:
		return "LC3-SWB"
	default:
		return fmt.Sprintf("Codec(%d)", int(c))
	}
}
