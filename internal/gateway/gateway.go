// Package gateway is the single point of contact with the remote
// storefront API. Every call returns the server's uniform
// {success, message, data} envelope normalized into a value or a typed
// error; network failures collapse into one generic localized message.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/zerodha/logf"

	"github.com/dacsanviet/storefront/internal/config"
	"github.com/dacsanviet/storefront/internal/session"
	"github.com/dacsanviet/storefront/pkg/models"
)

// MsgNetworkError is shown for timeouts, DNS failures and any response
// without a structured body.
const MsgNetworkError = "Lỗi kết nối mạng. Vui lòng thử lại."

// Kind classifies a gateway failure.
type Kind int

const (
	// KindRequest means the server responded with a structured failure
	// body; the message is passed through verbatim.
	KindRequest Kind = iota + 1

	// KindNetwork means the call never produced a structured response.
	KindNetwork
)

// Error is the failure half of the API envelope.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Config contains the gateway client settings.
type Config struct {
	// RootURL is the API base including the /api path,
	// eg: http://192.168.1.5:3001/api.
	RootURL string

	Timeout time.Duration
}

// Client wraps HTTP calls to the storefront API. Authenticated calls
// attach the session's bearer token when one is present; a missing token
// is never a local failure. Successful auth and profile-mutation calls
// persist session material via the session manager as a side effect.
type Client struct {
	cfg  Config
	sess *session.Manager
	http *http.Client
	lo   logf.Logger
}

// New returns a gateway client bound to a session manager.
func New(cfg Config, sess *session.Manager, lo logf.Logger) *Client {
	if cfg.Timeout.Seconds() < 1 {
		cfg.Timeout = config.DefaultTimeout
	}

	return &Client{
		cfg:  cfg,
		sess: sess,
		lo:   lo,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost:   2,
				ResponseHeaderTimeout: cfg.Timeout,
			},
		},
	}
}

// netError wraps err as the generic localized network failure.
func netError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: MsgNetworkError, Err: err}
}

// request performs one API call and decodes the envelope's data into T.
func request[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return out, netError(err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.RootURL+path, payload)
	if err != nil {
		return out, netError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "storefront-client")
	if tok := c.sess.AccessToken(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.lo.Error("network error", "path", path, "error", err)
		return out, netError(err)
	}
	defer func() {
		// Drain and close the body to let the Transport reuse the connection.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	// Unauthorized is logged only. No refresh rotation or forced logout
	// happens here; the caller decides how to react.
	if resp.StatusCode == http.StatusUnauthorized {
		c.lo.Error("unauthorized response", "path", path)
	}

	var env models.APIEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.lo.Error("error decoding response", "path", path, "error", err)
		return out, netError(err)
	}

	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = MsgNetworkError
		}
		return out, &Error{Kind: KindRequest, Message: msg}
	}

	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &out); err != nil {
			return out, netError(err)
		}
	}
	return out, nil
}
