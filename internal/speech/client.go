package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nara/thaiquest/internal/logger"
)

// ErrUnsupported signals that no recognition facility is configured. Callers
// translate it into an unmatched result rather than an error response.
var ErrUnsupported = errors.New("speech recognition not available")

// Request describes one single-shot recognition: raw audio plus the locale
// tag the service should decode against. At most one transcript comes back
// per request.
type Request struct {
	Audio  []byte
	Locale string
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Default().WithPrefix("speech"),
	}
}

type recognizeResp struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

// Recognize posts the audio to the recognition service and returns the
// decoded transcript. Returns ErrUnsupported when no service is configured.
func (c *Client) Recognize(ctx context.Context, req Request) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("speech").WithField("locale", req.Locale)

	if c.baseURL == "" {
		log.Debug("no recognition service configured")
		return "", ErrUnsupported
	}
	if len(req.Audio) == 0 {
		return "", fmt.Errorf("empty audio payload")
	}

	endpoint := fmt.Sprintf("%s/v1/recognize?locale=%s", c.baseURL, url.QueryEscape(req.Locale))
	log.Debug("sending %d bytes for recognition", len(req.Audio))
	start := time.Now()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(req.Audio))
	if err != nil {
		log.Error("failed to create request: %v", err)
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Error("recognition request failed: %v", err)
		return "", err
	}
	defer resp.Body.Close()

	log.Debug("recognition response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("recognition failed: status=%d, body=%s", resp.StatusCode, string(body))
		return "", fmt.Errorf("recognition status %d: %s", resp.StatusCode, string(body))
	}

	var out recognizeResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Error("failed to decode recognition response: %v", err)
		return "", err
	}

	log.Info("recognized transcript (%d runes, service confidence %.2f)", len([]rune(out.Transcript)), out.Confidence)
	return out.Transcript, nil
}
