package shield

import "encoding/json"

// message purposes of the bedrock websocket protocol (/connect)
const (
	PurposeSubscribe       = "subscribe"
	PurposeUnsubscribe     = "unsubscribe"
	PurposeCommandRequest  = "commandRequest"
	PurposeCommandResponse = "commandResponse"
	PurposeEvent           = "event"
	PurposeError           = "error"
)

const (
	ProtocolVersion    = 1
	MessageTypeRequest = "commandRequest"
)

type Header struct {
	Version        int    `json:"version"`
	RequestID      string `json:"requestId"`
	MessagePurpose string `json:"messagePurpose"`
	MessageType    string `json:"messageType,omitempty"`
	EventName      string `json:"eventName,omitempty"`
}

// Frame is one json text message exchanged with the game client.
// Body is kept raw so that the task layer decides how to decode it.
type Frame struct {
	Header Header          `json:"header"`
	Body   json.RawMessage `json:"body"`
}

type SubscribeBody struct {
	EventName string `json:"eventName"`
}

type CommandOrigin struct {
	Type string `json:"type"`
}

type CommandRequestBody struct {
	Version     int           `json:"version"`
	CommandLine string        `json:"commandLine"`
	Origin      CommandOrigin `json:"origin"`
}

func NewFrame(purpose string, requestID string, body interface{}) (*Frame, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return &Frame{
		Header: Header{
			Version:        ProtocolVersion,
			RequestID:      requestID,
			MessagePurpose: purpose,
			MessageType:    MessageTypeRequest,
		},
		Body: raw,
	}, nil
}
