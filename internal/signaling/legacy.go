package signaling

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pion/webrtc/v4"

	"github.com/kvm-remote/kvmrpc/internal/kvmerr"
	"github.com/kvm-remote/kvmrpc/internal/logging"
	"github.com/kvm-remote/kvmrpc/internal/rtctransport"
)

// localOfferJSON is the SDP envelope the legacy endpoint expects before
// base64 wrapping: `{"sdp": "...", "type": "offer"}`.
type localOfferJSON struct {
	SDP  string `json:"sdp"`
	Type string `json:"type"`
}

type webRTCSessionRequest struct {
	SD string `json:"sd"`
}

type webRTCSessionResponse struct {
	SD string `json:"sd"`
}

// ConnectLegacy performs the single-shot SDP exchange: create an offer,
// POST it base64-wrapped to scheme://host+apiPath, and apply the answer
// the appliance returns in the same envelope.
func ConnectLegacy(ctx context.Context, httpClient *http.Client, scheme, host, apiPath string) (*rtctransport.Transport, *rtctransport.Channel, error) {
	transport, err := rtctransport.New(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create transport: %w", err)
	}

	channel, err := transport.CreateDataChannel("rpc")
	if err != nil {
		transport.Close()
		return nil, nil, fmt.Errorf("create rpc data channel: %w", err)
	}

	if err := exchangeLegacySDP(ctx, httpClient, scheme, host, apiPath, transport); err != nil {
		transport.Close()
		return nil, nil, err
	}

	return transport, channel, nil
}

// RenegotiateLegacy re-runs the offer/answer round over the same legacy
// endpoint against an already-open transport, used when the video
// transceiver is added after the initial connect.
func RenegotiateLegacy(ctx context.Context, httpClient *http.Client, scheme, host, apiPath string, transport *rtctransport.Transport) error {
	return exchangeLegacySDP(ctx, httpClient, scheme, host, apiPath, transport)
}

func exchangeLegacySDP(ctx context.Context, httpClient *http.Client, scheme, host, apiPath string, transport *rtctransport.Transport) error {
	log := logging.For("signaling.legacy")

	offer, err := transport.CreateOffer()
	if err != nil {
		return fmt.Errorf("create offer: %w", err)
	}

	offerJSON, err := json.Marshal(localOfferJSON{SDP: offer.SDP, Type: offer.Type.String()})
	if err != nil {
		return fmt.Errorf("encode local offer: %w", err)
	}
	sd := base64.StdEncoding.EncodeToString(offerJSON)

	reqBody, err := json.Marshal(webRTCSessionRequest{SD: sd})
	if err != nil {
		return fmt.Errorf("encode session request: %w", err)
	}

	url := fmt.Sprintf("%s://%s%s", scheme, host, apiPath)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("build legacy signalling request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	log.Debug("posting legacy offer", "url", url)
	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return kvmerr.Wrap(kvmerr.ErrSignallingTransport, "legacy signalling POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return kvmerr.Wrap(kvmerr.ErrSignallingTransport, "legacy signalling returned status %d: %s", resp.StatusCode, body)
	}

	var sessionResp webRTCSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sessionResp); err != nil {
		return kvmerr.Wrap(kvmerr.ErrSignallingProtocol, "decode session response: %v", err)
	}

	answerJSON, err := base64.StdEncoding.DecodeString(sessionResp.SD)
	if err != nil {
		return kvmerr.Wrap(kvmerr.ErrSignallingProtocol, "base64-decode answer: %v", err)
	}

	var answerFields struct {
		SDP  *string `json:"sdp"`
		Type string  `json:"type"`
	}
	if err := json.Unmarshal(answerJSON, &answerFields); err != nil {
		return kvmerr.Wrap(kvmerr.ErrSignallingProtocol, "parse answer sdp: %v", err)
	}
	if answerFields.SDP == nil {
		return kvmerr.Wrap(kvmerr.ErrSignallingProtocol, "answer missing sdp field")
	}
	if answerFields.Type == "" {
		answerFields.Type = "answer"
	}

	desc := webrtc.SessionDescription{Type: webrtc.NewSDPType(answerFields.Type), SDP: *answerFields.SDP}
	if err := transport.SetRemoteDescription(desc); err != nil {
		return err
	}

	log.Debug("legacy signalling complete")
	return nil
}
