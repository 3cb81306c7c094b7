package rights

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"naturalrights/internal/domain"
	"naturalrights/internal/domain/types"
)

// RequestError lists every action of a batch that came back failed.
type RequestError struct {
	Failures []domain.Result
}

func (e *RequestError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, r := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %s", r.Type, r.Error))
	}
	return "rights request failed: " + strings.Join(parts, "; ")
}

// Client runs the multi-step flows of the protocol for one device.
//
// Every key it hands to the server is encrypted or transformed on this side;
// private keys only ever leave the client as ciphertext.
type Client struct {
	rights     domain.RightsService
	primitives domain.Primitives
	device     domain.DeviceKeys

	// UserID is the user this device acts for; empty until InitializeUser or
	// a Login on an authorized device.
	UserID string
}

// New returns a client that signs with device and talks to rights.
func New(rights domain.RightsService, p domain.Primitives, device domain.DeviceKeys, userID string) *Client {
	return &Client{rights: rights, primitives: p, device: device, UserID: userID}
}

// DeviceID returns the id of the signing device.
func (c *Client) DeviceID() string { return c.device.ID() }

// Sign builds the signed envelope for actions.
func (c *Client) Sign(actions []domain.Action) (domain.Request, error) {
	body, err := json.Marshal(actions)
	if err != nil {
		return domain.Request{}, err
	}
	sig, err := c.primitives.Sign(c.device.Sign, string(body))
	if err != nil {
		return domain.Request{}, fmt.Errorf("sign batch: %w", err)
	}
	return domain.Request{
		UserID:    c.UserID,
		DeviceID:  c.device.ID(),
		Signature: sig,
		Body:      string(body),
	}, nil
}

// Request signs and submits actions. Any failed action turns into a
// *RequestError.
func (c *Client) Request(ctx context.Context, actions ...domain.Action) (domain.Response, error) {
	req, err := c.Sign(actions)
	if err != nil {
		return domain.Response{}, err
	}
	resp, err := c.rights.Request(ctx, req)
	if err != nil {
		return domain.Response{}, err
	}
	var failures []domain.Result
	for _, r := range resp.Results {
		if !r.Success {
			failures = append(failures, r)
		}
	}
	if len(failures) > 0 {
		return resp, &RequestError{Failures: failures}
	}
	return resp, nil
}

// requestOne submits a single action and decodes its result into T.
func requestOne[T any](ctx context.Context, c *Client, t domain.ActionType, payload any) (T, error) {
	var out T
	a, err := types.NewAction(t, payload)
	if err != nil {
		return out, err
	}
	resp, err := c.Request(ctx, a)
	if err != nil {
		return out, err
	}
	return resultOf[T](resp, t)
}

func resultOf[T any](resp domain.Response, t domain.ActionType) (T, error) {
	var out T
	for _, r := range resp.Results {
		if r.Type == t {
			if err := json.Unmarshal(r.Payload, &out); err != nil {
				return out, fmt.Errorf("decode %s result: %w", t, err)
			}
			return out, nil
		}
	}
	return out, fmt.Errorf("no %s result", t)
}

// batch collects actions, keeping the first encoding error.
type batch struct {
	actions []domain.Action
	err     error
}

func (b *batch) add(t domain.ActionType, payload any) *batch {
	if b.err != nil {
		return b
	}
	a, err := types.NewAction(t, payload)
	if err != nil {
		b.err = err
		return b
	}
	b.actions = append(b.actions, a)
	return b
}

func (c *Client) send(ctx context.Context, b *batch) (domain.Response, error) {
	if b.err != nil {
		return domain.Response{}, b.err
	}
	return c.Request(ctx, b.actions...)
}
