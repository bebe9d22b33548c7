package capture

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrConnection marks transport-level failures reaching the subscribe
	// endpoint (DNS, refused connection, timeout).
	ErrConnection = errors.New("subscribe endpoint unreachable")

	// ErrProtocol marks a reachable endpoint answering with a body that is
	// not the expected JSON shape.
	ErrProtocol = errors.New("subscribe endpoint returned a malformed response")
)

// ApplicationError is returned when the subscribe endpoint is reachable but
// reports failure; Message carries the endpoint's own explanation when one
// was given.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "subscribe endpoint reported failure"
}

type subscribeRequest struct {
	Email string `json:"email"`
}

type subscribeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Gateway delivers addresses to the external subscription endpoint. One
// POST per call, no retries; the caller decides what a failure means.
type Gateway struct {
	endpoint   string
	httpClient *http.Client
}

// NewGateway creates a gateway for the configured endpoint. timeout bounds
// the whole call so a stalled endpoint cannot hold a submission open
// indefinitely; expiry surfaces as ErrConnection.
func NewGateway(endpoint string, timeout time.Duration) *Gateway {
	return &Gateway{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Subscribe posts {"email": ...} to the endpoint and interprets the JSON
// response's success field as the outcome.
func (g *Gateway) Subscribe(ctx context.Context, email string) error {
	if g.endpoint == "" {
		return fmt.Errorf("%w: no endpoint configured", ErrConnection)
	}

	body, err := json.Marshal(subscribeRequest{Email: email})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	var decoded subscribeResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrProtocol, err)
	}

	if !decoded.Success {
		return &ApplicationError{Message: decoded.Message}
	}
	return nil
}
