package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

type Mail struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Sender interface {
	Send(ctx context.Context, mail Mail) error
}

// RelaySender posts mail to an HTTP relay at {baseURL}/send.
type RelaySender struct {
	baseURL    string
	httpClient *http.Client
}

func NewRelaySender(baseURL string, client *http.Client) *RelaySender {
	return &RelaySender{baseURL: baseURL, httpClient: client}
}

func (s *RelaySender) Send(ctx context.Context, mail Mail) error {
	data, err := json.Marshal(mail)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/send", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mail relay returned status %d", resp.StatusCode)
	}

	return nil
}

// LogSender only logs; used when no relay is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, mail Mail) error {
	s.logger.Info("mail", "to", mail.To, "subject", mail.Subject, "body", mail.Body)
	return nil
}
