package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"bakkey/internal/domain"
)

// Error is a non-2xx response from bakkeyd.
type Error struct {
	HTTPStatus int    `json:"-"`
	Code       int    `json:"code"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("bakkeyd: HTTP %d", e.HTTPStatus)
	}
	return fmt.Sprintf("bakkeyd: %s: %s", e.Status, e.Message)
}

// HTTP is a bakkeyd client.
type HTTP struct {
	Base string
	HTTP *http.Client
}

// NewHTTP returns a client for base. A nil hc means http.DefaultClient.
func NewHTTP(base string, hc *http.Client) *HTTP {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTP{Base: strings.TrimRight(base, "/"), HTTP: hc}
}

func (c *HTTP) Health(ctx context.Context) error {
	var out domain.HealthResponse
	return c.do(ctx, http.MethodGet, "/v1/health", nil, &out)
}

func (c *HTTP) PanelRecipient(ctx context.Context) (domain.AgeRecipient, error) {
	var out domain.RecipientResponse
	err := c.do(ctx, http.MethodGet, "/v1/panel/recipient", nil, &out)
	return out.AgeRecipient, err
}

func (c *HTTP) Generate(ctx context.Context, track bool) (domain.GenerateResponse, error) {
	path := "/v1/backup-keys/generate"
	if track {
		path += "?track=true"
	}
	var out domain.GenerateResponse
	err := c.do(ctx, http.MethodPost, path, nil, &out)
	return out, err
}

func (c *HTTP) Recover(ctx context.Context, phrase string) (domain.AgeRecipient, error) {
	var out domain.RecipientResponse
	err := c.do(ctx, http.MethodPost, "/v1/backup-keys/recover", domain.MnemonicRequest{Mnemonic: phrase}, &out)
	return out.AgeRecipient, err
}

func (c *HTTP) Validate(ctx context.Context, recipient string) (bool, error) {
	var out domain.ValidateResponse
	err := c.do(ctx, http.MethodPost, "/v1/backup-keys/validate", domain.ValidateRequest{AgeRecipient: recipient}, &out)
	return out.Valid, err
}

func (c *HTTP) Restore(ctx context.Context, encrypted string) (domain.RestoreResult, error) {
	var out domain.RestoreResult
	err := c.do(ctx, http.MethodPost, "/v1/backup-keys/restore",
		domain.RestoreRequest{EncryptedMnemonicPhrase: encrypted}, &out)
	return out, err
}

func (c *HTTP) ListKeys(ctx context.Context) ([]domain.KeyRecord, error) {
	var out domain.KeyListResponse
	err := c.do(ctx, http.MethodGet, "/v1/backup-keys", nil, &out)
	return out.Keys, err
}

func (c *HTTP) RegisterKey(ctx context.Context, req domain.RegisterRequest) (domain.KeyRecord, error) {
	var out domain.KeyRecord
	err := c.do(ctx, http.MethodPost, "/v1/backup-keys", req, &out)
	return out, err
}

func (c *HTTP) ConfirmKey(ctx context.Context, id domain.KeyID, phrase string) (domain.KeyRecord, error) {
	var out domain.KeyRecord
	err := c.do(ctx, http.MethodPost, "/v1/backup-keys/"+url.PathEscape(id.String())+"/confirm",
		domain.MnemonicRequest{Mnemonic: phrase}, &out)
	return out, err
}

func (c *HTTP) RemoveKey(ctx context.Context, id domain.KeyID) error {
	return c.do(ctx, http.MethodDelete, "/v1/backup-keys/"+url.PathEscape(id.String()), nil, nil)
}

func (c *HTTP) ExportKeys(ctx context.Context, format string) ([]byte, error) {
	resp, err := c.send(ctx, http.MethodGet, "/v1/backup-keys/export?format="+url.QueryEscape(format), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (c *HTTP) do(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// send performs the request and converts non-2xx responses into *Error. The
// caller closes the body on success.
func (c *HTTP) send(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return nil, err
		}
		body = buf
	}
	req, err := http.NewRequestWithContext(ctx, method, c.Base+path, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode/100 == 2 {
		return resp, nil
	}
	defer resp.Body.Close()

	apiErr := &Error{HTTPStatus: resp.StatusCode}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(b, apiErr) != nil || apiErr.Message == "" {
		apiErr.Status = resp.Status
		apiErr.Message = strings.TrimSpace(string(b))
	}
	return nil, fmt.Errorf("%s %s: %w", method, path, apiErr)
}

var _ domain.DaemonClient = (*HTTP)(nil)
