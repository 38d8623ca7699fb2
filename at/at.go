package at

const (
	// Terminal Control
	CR   = "\r"
	LF   = "\n"
	CRLF = "\r\n"

	// Prefix starts every command line sent by the hands-free unit.
	Prefix = "AT"
	// ExtensionMarker precedes extended command names (AT+BRSF).
	ExtensionMarker = '+'

	// Response Codes
	OK       = "OK"
	ERROR    = "ERROR"
	CmeError = "+CME ERROR:"

	// URCs (Unsolicited Result Codes)
	UrcRing           = "RING"
	UrcIndicator      = "+CIEV:"
	UrcCallWaiting    = "+CCWA:"
	UrcCallerID       = "+CLIP:"
	UrcSpeakerGain    = "+VGS:"
	UrcMicrophoneGain = "+VGM:"
	UrcInbandRing     = "+BSIR:"
	UrcCodecSelection = "+BCS:"
)

// Extended error codes reported with +CME ERROR once the hands-free unit
// enabled them with AT+CMEE=1.
const (
	CmeAgFailure             = 0
	CmeNoConnection          = 1
	CmeOperationNotAllowed   = 3
	CmeOperationNotSupported = 4
	CmeInvalidIndex          = 21
	CmeInvalidCharacters     = 25
	CmeInvalidDialString     = 27
	CmeNoNetworkService      = 30
)

type ResponseType int

const (
	TypeFinal ResponseType = iota // OK, ERROR, +CME ERROR
	TypeURC                       // Asynchronous notifications
	TypeData                      // Intermediate command output (+CIND: ...)
)
