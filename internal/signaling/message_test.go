package signaling

import (
	"encoding/json"
	"testing"
)

func TestDeviceMetadataWireFormat(t *testing.T) {
	msg := signalingMessage{Type: msgTypeDeviceMetadata, DeviceMetadata: &deviceMetadataPayload{DeviceVersion: "1.0.0"}}
	b, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"device-metadata","data":{"deviceVersion":"1.0.0"}}`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}
}

func TestOfferWireFormat(t *testing.T) {
	msg := newOfferMessage("offer_sd")
	b, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"offer","data":{"sd":"offer_sd"}}`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}
}

func TestAnswerWireFormat(t *testing.T) {
	answer := "answer_sd"
	msg := signalingMessage{Type: msgTypeAnswer, Answer: &answer}
	b, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"answer","data":"answer_sd"}`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}
}

func TestNewICECandidateWireFormat(t *testing.T) {
	msg := newICECandidateMessage("candidate_str", "sdp_mid_str", 1)
	b, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"type":"new-ice-candidate","data":{"candidate":"candidate_str","sdpMid":"sdp_mid_str","sdpMLineIndex":1}}`
	if string(b) != want {
		t.Fatalf("got %s, want %s", b, want)
	}
}

func TestUnmarshalRoundTripsEachVariant(t *testing.T) {
	cases := []string{
		`{"type":"device-metadata","data":{"deviceVersion":"1.0.0"}}`,
		`{"type":"offer","data":{"sd":"offer_sd"}}`,
		`{"type":"answer","data":"answer_sd"}`,
		`{"type":"new-ice-candidate","data":{"candidate":"c","sdpMid":"m","sdpMLineIndex":2}}`,
	}
	for _, in := range cases {
		var msg signalingMessage
		if err := json.Unmarshal([]byte(in), &msg); err != nil {
			t.Fatalf("unmarshal %s: %v", in, err)
		}
		out, err := json.Marshal(msg)
		if err != nil {
			t.Fatalf("remarshal %s: %v", in, err)
		}
		if string(out) != in {
			t.Fatalf("round trip mismatch: got %s, want %s", out, in)
		}
	}
}

func TestUnmarshalUnknownTypeFails(t *testing.T) {
	var msg signalingMessage
	err := json.Unmarshal([]byte(`{"type":"bogus","data":{}}`), &msg)
	if err == nil {
		t.Fatal("expected error for unknown message type")
	}
}
