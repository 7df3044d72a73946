// repository/notifier/notifier.go
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/vanchien2973/MidAssignment-sub000/util/httpx"
)

// Event is the payload pushed to the notification sink after a workflow
// commits. It is a side channel: delivery failures never affect the workflow.
type Event struct {
	Action    string    `json:"action"`
	ActorID   int64     `json:"actor_id"`
	RequestID int64     `json:"request_id,omitempty"`
	DetailID  int64     `json:"detail_id,omitempty"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

type Repo interface {
	Notify(ctx context.Context, ev Event) error
}

type httpRepo struct {
	url    string
	client *http.Client
}

func NewHTTP(url string) Repo { return &httpRepo{url: url, client: httpx.Client()} }

func (r *httpRepo) Notify(ctx context.Context, ev Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("notify webhook failed: %s", resp.Status)
	}
	return nil
}

type noop struct{}

// NewNoop is used when no webhook URL is configured.
func NewNoop() Repo { return noop{} }

func (noop) Notify(context.Context, Event) error { return nil }
