package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notification is the JSON payload the workflow engine consumes. The field
// names are the engine's contract and must not change.
type Notification struct {
	TipoUsuario          string            `json:"tipoUsuario"`
	Archivos             []string          `json:"archivos"`
	DeseaSubirMateriales bool              `json:"deseaSubirMateriales"`
	Materiales           []string          `json:"materiales"`
	Id                   string            `json:"id"`
	Data                 map[string]string `json:"data"`
}

// Notifier tells the external workflow engine a submission is ready for
// downstream processing. Only the HTTP status is consulted; the response body
// has no schema on our side.
type Notifier interface {
	Notify(ctx context.Context, n *Notification) error
}

type HTTPNotifier struct {
	endpoint string
	client   *http.Client
}

func NewHTTPNotifier(endpoint string, timeout time.Duration) *HTTPNotifier {
	return &HTTPNotifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (n *HTTPNotifier) Notify(ctx context.Context, notification *Notification) error {
	body, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify workflow engine: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("workflow engine returned status %d", resp.StatusCode)
	}
	return nil
}
