package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/userdir/user-service/internal/core/ports"
)

const (
	defaultTimeout = 5 * time.Second
	sendPath       = "/v1/send"
)

type emailPayload struct {
	Emails  []string `json:"emails"`
	Subject string   `json:"subject"`
	Message string   `json:"message"`
}

// HTTPNotifier posts notifications to the email service.
type HTTPNotifier struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
}

// NewHTTPNotifier targets <baseURL>/v1/send. A nil client uses http.DefaultClient.
func NewHTTPNotifier(baseURL string, client *http.Client, timeout time.Duration) *HTTPNotifier {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPNotifier{
		endpoint: strings.TrimRight(baseURL, "/") + sendPath,
		client:   client,
		timeout:  timeout,
	}
}

func (n *HTTPNotifier) Send(ctx context.Context, msg ports.Notification) error {
	body, err := json.Marshal(emailPayload{Emails: msg.To, Subject: msg.Subject, Message: msg.Message})
	if err != nil {
		return fmt.Errorf("encode email payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("send email: unexpected status %d", resp.StatusCode)
	}
	return nil
}
