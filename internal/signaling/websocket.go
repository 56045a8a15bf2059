package signaling

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v4"

	"github.com/kvm-remote/kvmrpc/internal/kvmerr"
	"github.com/kvm-remote/kvmrpc/internal/logging"
	"github.com/kvm-remote/kvmrpc/internal/rtctransport"
)

// ConnectWebSocket performs the trickled-ICE exchange: dial the signalling
// socket, require device-metadata as the first frame, exchange offer and
// answer, then keep trickling local and remote ICE candidates for the
// rest of the session's lifetime.
func ConnectWebSocket(ctx context.Context, host, authToken string) (*rtctransport.Transport, *rtctransport.Channel, error) {
	log := logging.For("signaling.websocket")

	header := http.Header{}
	if authToken != "" {
		header.Set("Cookie", authToken)
	}

	url := fmt.Sprintf("ws://%s/webrtc/signaling/client", host)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, nil, kvmerr.Wrap(kvmerr.ErrSignallingTransport, "dial websocket: %v", err)
	}

	first, err := readMessage(conn)
	if err != nil {
		conn.Close()
		return nil, nil, kvmerr.Wrap(kvmerr.ErrSignallingTransport, "read first frame: %v", err)
	}
	if first.Type != msgTypeDeviceMetadata {
		conn.Close()
		return nil, nil, kvmerr.Wrap(kvmerr.ErrSignallingProtocol, "expected device-metadata, got %q", first.Type)
	}
	log.Debug("device metadata received", "deviceVersion", first.DeviceMetadata.DeviceVersion)

	transport, err := rtctransport.New(nil)
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("create transport: %w", err)
	}

	channel, err := transport.CreateDataChannel("rpc")
	if err != nil {
		transport.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("create rpc data channel: %w", err)
	}

	var writeMu sync.Mutex
	writeJSON := func(msg signalingMessage) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(msg)
	}

	offer, err := transport.CreateOffer()
	if err != nil {
		transport.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("create offer: %w", err)
	}

	offerJSON, err := json.Marshal(offer)
	if err != nil {
		transport.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("encode local offer: %w", err)
	}
	sd := base64.StdEncoding.EncodeToString(offerJSON)

	if err := writeJSON(newOfferMessage(sd)); err != nil {
		transport.Close()
		conn.Close()
		return nil, nil, kvmerr.Wrap(kvmerr.ErrSignallingTransport, "send offer: %v", err)
	}

	// The appliance may interleave trickled candidates with the answer;
	// apply any that arrive before it and stop once the answer lands.
awaitAnswer:
	for {
		msg, err := readMessage(conn)
		if err != nil {
			transport.Close()
			conn.Close()
			return nil, nil, kvmerr.Wrap(kvmerr.ErrSignallingTransport, "read answer: %v", err)
		}
		switch msg.Type {
		case msgTypeAnswer:
			desc, err := decodeAnswer(*msg.Answer)
			if err != nil {
				transport.Close()
				conn.Close()
				return nil, nil, err
			}
			if err := transport.SetRemoteDescription(desc); err != nil {
				transport.Close()
				conn.Close()
				return nil, nil, err
			}
			break awaitAnswer
		case msgTypeNewICECandidate:
			addTrickledCandidate(transport, msg.NewICECandidate, log)
		default:
			transport.Close()
			conn.Close()
			return nil, nil, kvmerr.Wrap(kvmerr.ErrSignallingProtocol, "expected answer, got %q", msg.Type)
		}
	}

	transport.OnICECandidate(func(c *webrtc.ICECandidate) {
		if c == nil {
			return
		}
		init := c.ToJSON()
		sdpMid := ""
		if init.SDPMid != nil {
			sdpMid = *init.SDPMid
		}
		var mLine uint16
		if init.SDPMLineIndex != nil {
			mLine = *init.SDPMLineIndex
		}
		if err := writeJSON(newICECandidateMessage(init.Candidate, sdpMid, mLine)); err != nil {
			log.Warn("failed to send trickled ice candidate", logging.KeyError, err)
		}
	})

	go func() {
		for {
			msg, err := readMessage(conn)
			if err != nil {
				log.Debug("signalling reader stopped", logging.KeyError, err)
				return
			}
			if msg.Type != msgTypeNewICECandidate {
				log.Warn("unexpected post-negotiation signalling message", "type", msg.Type)
				continue
			}
			addTrickledCandidate(transport, msg.NewICECandidate, log)
		}
	}()

	log.Debug("websocket signalling complete")
	return transport, channel, nil
}

func readMessage(conn *websocket.Conn) (signalingMessage, error) {
	_, data, err := conn.ReadMessage()
	if err != nil {
		return signalingMessage{}, err
	}
	var msg signalingMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return signalingMessage{}, kvmerr.Wrap(kvmerr.ErrSignallingProtocol, "decode signalling message: %v", err)
	}
	return msg, nil
}

func decodeAnswer(encoded string) (webrtc.SessionDescription, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return webrtc.SessionDescription{}, kvmerr.Wrap(kvmerr.ErrSignallingProtocol, "base64-decode answer: %v", err)
	}
	var desc webrtc.SessionDescription
	if err := json.Unmarshal(raw, &desc); err != nil {
		return webrtc.SessionDescription{}, kvmerr.Wrap(kvmerr.ErrSignallingProtocol, "parse answer sdp: %v", err)
	}
	return desc, nil
}

func addTrickledCandidate(transport *rtctransport.Transport, payload *iceCandidatePayload, log interface {
	Warn(msg string, args ...any)
}) {
	sdpMid := payload.SDPMid
	mLineIndex := payload.SDPMLineIndex
	init := webrtc.ICECandidateInit{
		Candidate:     payload.Candidate,
		SDPMid:        &sdpMid,
		SDPMLineIndex: &mLineIndex,
	}
	if err := transport.AddICECandidate(init); err != nil {
		log.Warn("failed to add trickled ice candidate", logging.KeyError, err)
	}
}
