package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"naturalrights/internal/domain"
)

// HTTP is a RightsService reached over the network.
type HTTP struct {
	Base string
	HTTP *http.Client
}

// NewHTTP returns a client for the server at base. A nil client means
// http.DefaultClient.
func NewHTTP(base string, client *http.Client) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{Base: strings.TrimRight(base, "/"), HTTP: client}
}

// Request submits one signed batch.
func (c *HTTP) Request(ctx context.Context, req domain.Request) (domain.Response, error) {
	var out domain.Response
	if err := c.post(ctx, "/", req, &out); err != nil {
		return domain.Response{}, err
	}
	return out, nil
}

// Health reports whether the server answers its liveness probe.
func (c *HTTP) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+"/healthz", nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(resp, http.MethodGet, req.URL.String())
}

func (c *HTTP) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp, http.MethodPost, req.URL.String()); err != nil {
		return err
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// checkStatus turns a non-2xx response into an error carrying the first line
// of the server's message.
func checkStatus(resp *http.Response, method, url string) error {
	if resp.StatusCode/100 == 2 {
		return nil
	}
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	line, _, _ := strings.Cut(strings.TrimSpace(string(msg)), "\n")
	if line == "" {
		return fmt.Errorf("%s %s: %s", method, url, resp.Status)
	}
	return fmt.Errorf("%s %s: %s: %s", method, url, resp.Status, line)
}

var _ domain.RightsService = (*HTTP)(nil)
