package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tally/internal/core"
)

// DefaultTimeout bounds each remote call.
const DefaultTimeout = 5 * time.Second

// RemoteClient speaks the tally JSON API of a remote instance. It is the
// synchronous half of the mirror: callers that need the error (the mirror
// worker, the CLI) use it directly; HTTPMirror wraps it for the
// fire-and-forget path.
type RemoteClient struct {
	baseURL string
	client  *http.Client
}

func NewRemoteClient(baseURL string, timeout time.Duration) *RemoteClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RemoteClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// CreateTransaction issues the equivalent create request, carrying the
// owning user's identifier explicitly in the body.
func (c *RemoteClient) CreateTransaction(ctx context.Context, tx core.Transaction) error {
	return c.do(ctx, http.MethodPost, "/api/transactions", tx, nil)
}

// DeleteTransaction removes the mirrored transaction, again naming the
// owner explicitly so the remote can enforce ownership.
func (c *RemoteClient) DeleteTransaction(ctx context.Context, userID, txID string) error {
	body := map[string]string{"userId": userID}
	return c.do(ctx, http.MethodDelete, "/api/transactions/"+txID, body, nil)
}

// Register creates an account on the remote service.
func (c *RemoteClient) Register(ctx context.Context, name, email, password string) (core.User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var u core.User
	if err := c.do(ctx, http.MethodPost, "/api/register", body, &u); err != nil {
		return core.User{}, err
	}
	return u, nil
}

// Login authenticates against the remote service.
func (c *RemoteClient) Login(ctx context.Context, email, password string) (core.User, error) {
	body := map[string]string{"email": email, "password": password}
	var u core.User
	if err := c.do(ctx, http.MethodPost, "/api/login", body, &u); err != nil {
		return core.User{}, err
	}
	return u, nil
}

// ListTransactions fetches the remote copy of a user's ledger.
func (c *RemoteClient) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	var txs []core.Transaction
	if err := c.do(ctx, http.MethodGet, "/api/transactions/"+userID, nil, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (c *RemoteClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: %s", method, path, remoteMessage(resp))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// remoteMessage extracts the {message} body the API uses for errors,
// falling back to the HTTP status line.
func remoteMessage(resp *http.Response) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload); err == nil && payload.Message != "" {
		return fmt.Sprintf("%s (%s)", payload.Message, resp.Status)
	}
	return resp.Status
}
