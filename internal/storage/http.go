package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/pkg/errors"

	"pomodoro/internal/core/timekeeper"
)

const (
	statePath  = "/state"
	updatePath = "/update"
)

// HTTPStore keeps the session on the pomodoro backend. The backend keys
// state by its session cookie, which the client jar carries between calls.
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

// NewHTTPStore creates a store targeting the given base URL
// (e.g. "http://127.0.0.1:5000/pomodoro").
func NewHTTPStore(baseURL string, timeout time.Duration) (*HTTPStore, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("http store: base url is empty")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "http store: create cookie jar")
	}
	return &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout, Jar: jar},
	}, nil
}

// Load fetches the stored session.
func (store *HTTPStore) Load(ctx context.Context) (timekeeper.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, store.baseURL+statePath, nil)
	if err != nil {
		return timekeeper.Snapshot{}, errors.Wrap(err, "build state request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := store.client.Do(req)
	if err != nil {
		return timekeeper.Snapshot{}, errors.Wrap(err, "fetch session state")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent {
		return timekeeper.Snapshot{}, timekeeper.ErrNoState
	}
	if err := checkStatus(resp); err != nil {
		return timekeeper.Snapshot{}, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return timekeeper.Snapshot{}, errors.Wrap(err, "read session state")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return timekeeper.Snapshot{}, timekeeper.ErrNoState
	}

	var record Record
	if err := json.Unmarshal(body, &record); err != nil {
		return timekeeper.Snapshot{}, errors.Wrap(err, "decode session state")
	}
	return record.Snapshot(), nil
}

// Save posts the session to the backend.
func (store *HTTPStore) Save(ctx context.Context, snapshot timekeeper.Snapshot) error {
	data, err := json.Marshal(RecordFromSnapshot(snapshot))
	if err != nil {
		return errors.Wrap(err, "encode session state")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, store.baseURL+updatePath, bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "build update request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := store.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "post session state")
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return checkStatus(resp)
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return errors.Errorf("%s %s: HTTP %d: %s", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, strings.TrimSpace(string(body)))
}
