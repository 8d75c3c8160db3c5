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

	"github.com/forgo/gather/internal/model"
)

// maxErrorBody bounds how much of a failed response is read for a message
const maxErrorBody = 64 << 10

// ClientConfig holds the settings shared by every backend client
type ClientConfig struct {
	BaseURL    string
	APIPrefix  string
	HTTPClient *http.Client
}

// Client issues JSON requests against one backend service
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client for the service at cfg.BaseURL
func NewClient(cfg ClientConfig) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		base: strings.TrimRight(cfg.BaseURL, "/") + "/" + strings.Trim(cfg.APIPrefix, "/"),
		http: hc,
	}
}

// do sends one request and decodes the 2xx body into out when out is non-nil.
// The session's user identifier is sent as the bare Authorization value.
func (c *Client) do(ctx context.Context, session model.Session, method, path string, query url.Values, body, out any) error {
	endpoint := strings.TrimRight(c.base, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session.Authenticated() {
		req.Header.Set("Authorization", session.AuthorizationValue())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return model.NewNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.NewNetworkError(err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return model.NewNetworkError(fmt.Errorf("decode %s %s: %w", method, path, err))
	}
	return nil
}

// responseError classifies a non-2xx response. A readable message makes it
// a server rejection; anything else is a network failure.
func responseError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return model.NewStatusError(resp.StatusCode)
	}

	if data[0] == '{' {
		var problem model.ProblemDetails
		if err := json.Unmarshal(data, &problem); err == nil && problem.Text() != "" {
			e := model.NewRejectionError(resp.StatusCode, problem.Text())
			e.Fields = problem.Errors
			return e
		}
		return model.NewStatusError(resp.StatusCode)
	}

	// Some handlers reply with plain text. HTML error pages are not messages.
	ct := resp.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "text/plain") || (ct == "" && data[0] != '<') {
		return model.NewRejectionError(resp.StatusCode, string(data))
	}
	return model.NewStatusError(resp.StatusCode)
}

// listEnvelope covers the wrappers the services put around collections
type listEnvelope struct {
	Items        json.RawMessage `json:"items"`
	Participants json.RawMessage `json:"participants"`
	Members      json.RawMessage `json:"members"`
}

// rawList accepts {items: [...]}, {participants: [...]}, {members: [...]}
// or a bare array.
type rawList struct {
	items json.RawMessage
}

func (l *rawList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		l.items = data
		return nil
	}
	var env listEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	for _, candidate := range []json.RawMessage{env.Items, env.Participants, env.Members} {
		if len(candidate) > 0 && !bytes.Equal(candidate, []byte("null")) {
			l.items = candidate
			return nil
		}
	}
	l.items = nil
	return nil
}

// decode unmarshals the list into out, leaving out untouched when empty
func (l *rawList) decode(out any) error {
	if len(l.items) == 0 {
		return nil
	}
	return json.Unmarshal(l.items, out)
}

// getList fetches a collection endpoint into out
func (c *Client) getList(ctx context.Context, session model.Session, path string, query url.Values, out any) error {
	var list rawList
	if err := c.do(ctx, session, http.MethodGet, path, query, nil, &list); err != nil {
		return err
	}
	if err := list.decode(out); err != nil {
		return model.NewNetworkError(fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}

func pathID(id model.ID) string {
	return url.PathEscape(id.String())
}
