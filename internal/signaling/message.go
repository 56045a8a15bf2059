// Package signaling negotiates the RTC transport with the appliance,
// either over a single legacy HTTP round-trip or over a WebSocket that
// trickles ICE candidates in both directions for the life of the session.
package signaling

import (
	"encoding/json"
	"fmt"
)

const (
	msgTypeDeviceMetadata = "device-metadata"
	msgTypeOffer          = "offer"
	msgTypeAnswer         = "answer"
	msgTypeNewICECandidate = "new-ice-candidate"
)

type deviceMetadataPayload struct {
	DeviceVersion string `json:"deviceVersion"`
}

type offerPayload struct {
	SD string `json:"sd"`
}

type iceCandidatePayload struct {
	Candidate     string `json:"candidate"`
	SDPMid        string `json:"sdpMid"`
	SDPMLineIndex uint16 `json:"sdpMLineIndex"`
}

// signalingMessage is the tagged-union envelope `{"type": ..., "data": ...}`
// the appliance speaks. Exactly one of the payload fields is populated,
// selected by Type; Answer is a bare string rather than an object.
type signalingMessage struct {
	Type            string
	DeviceMetadata  *deviceMetadataPayload
	Offer           *offerPayload
	Answer          *string
	NewICECandidate *iceCandidatePayload
}

type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func newOfferMessage(sd string) signalingMessage {
	return signalingMessage{Type: msgTypeOffer, Offer: &offerPayload{SD: sd}}
}

func newICECandidateMessage(candidate, sdpMid string, sdpMLineIndex uint16) signalingMessage {
	return signalingMessage{
		Type: msgTypeNewICECandidate,
		NewICECandidate: &iceCandidatePayload{
			Candidate:     candidate,
			SDPMid:        sdpMid,
			SDPMLineIndex: sdpMLineIndex,
		},
	}
}

func (m signalingMessage) MarshalJSON() ([]byte, error) {
	var data any
	switch m.Type {
	case msgTypeDeviceMetadata:
		data = m.DeviceMetadata
	case msgTypeOffer:
		data = m.Offer
	case msgTypeAnswer:
		data = m.Answer
	case msgTypeNewICECandidate:
		data = m.NewICECandidate
	default:
		return nil, fmt.Errorf("signaling: unknown message type %q", m.Type)
	}
	return json.Marshal(envelope{Type: m.Type, Data: data})
}

func (m *signalingMessage) UnmarshalJSON(b []byte) error {
	var raw struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	m.Type = raw.Type
	switch raw.Type {
	case msgTypeDeviceMetadata:
		var p deviceMetadataPayload
		if err := json.Unmarshal(raw.Data, &p); err != nil {
			return fmt.Errorf("signaling: decode device-metadata: %w", err)
		}
		m.DeviceMetadata = &p
	case msgTypeOffer:
		var p offerPayload
		if err := json.Unmarshal(raw.Data, &p); err != nil {
			return fmt.Errorf("signaling: decode offer: %w", err)
		}
		m.Offer = &p
	case msgTypeAnswer:
		var s string
		if err := json.Unmarshal(raw.Data, &s); err != nil {
			return fmt.Errorf("signaling: decode answer: %w", err)
		}
		m.Answer = &s
	case msgTypeNewICECandidate:
		var p iceCandidatePayload
		if err := json.Unmarshal(raw.Data, &p); err != nil {
			return fmt.Errorf("signaling: decode new-ice-candidate: %w", err)
		}
		m.NewICECandidate = &p
	default:
		return fmt.Errorf("signaling: unknown message type %q", raw.Type)
	}
	return nil
}
