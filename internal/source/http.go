package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JonMunkholm/committees/internal/table"
)

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 4 << 10

// HTTPSource fetches records from the data API at BaseURL.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client

	// APIKey is sent as X-API-Key when set.
	APIKey string
}

// NewHTTPSource creates a source for baseURL. A zero timeout means requests
// are bounded only by the caller's context.
func NewHTTPSource(baseURL, apiKey string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
		APIKey:  apiKey,
	}
}

func (s *HTTPSource) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return http.DefaultClient
}

func (s *HTTPSource) endpointURL(parts ...string) string {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return strings.TrimRight(s.BaseURL, "/") + "/api/" + strings.Join(escaped, "/")
}

// Fetch performs GET <base>/api/<endpoint> and decodes a JSON array of
// flat objects. Numbers are kept as json.Number.
func (s *HTTPSource) Fetch(ctx context.Context, endpoint string) ([]table.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpointURL(endpoint), nil)
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	s.authorize(req)

	resp, err := s.client().Do(req)
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Endpoint: endpoint, Status: resp.StatusCode, Err: errorBody(resp.Body)}
	}

	recs, err := decodeRecords(resp.Body)
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, Status: resp.StatusCode, Err: err}
	}
	return recs, nil
}

// decodeRecords accepts only a JSON array of objects.
func decodeRecords(r io.Reader) ([]table.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrUnexpectedPayload
	}

	inner := json.NewDecoder(bytes.NewReader(trimmed))
	inner.UseNumber()
	var items []map[string]any
	if err := inner.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedPayload, err)
	}

	recs := make([]table.Record, len(items))
	for i, item := range items {
		recs[i] = table.Record(item)
	}
	return recs, nil
}

// errorBody extracts the message of a JSON or text error response.
func errorBody(r io.Reader) error {
	body, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return fmt.Errorf("%s", payload.Message)
		}
		if payload.Error != "" {
			return fmt.Errorf("%s", payload.Error)
		}
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		text = "empty response"
	}
	return fmt.Errorf("%s", text)
}

// SetRecommendation performs
// PUT <base>/api/applicant-review/<id>/recommendation.
func (s *HTTPSource) SetRecommendation(ctx context.Context, applicationID, value string) error {
	const endpoint = "applicant-review"

	body, err := json.Marshal(map[string]string{"recommendation": value})
	if err != nil {
		return err
	}
	target := s.endpointURL(endpoint, applicationID, "recommendation")
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(body))
	if err != nil {
		return &FetchError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	s.authorize(req)

	resp, err := s.client().Do(req)
	if err != nil {
		return &FetchError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &FetchError{Endpoint: endpoint, Status: resp.StatusCode, Err: ErrNotFound}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &FetchError{Endpoint: endpoint, Status: resp.StatusCode, Err: errorBody(resp.Body)}
	}
	return nil
}

func (s *HTTPSource) authorize(req *http.Request) {
	if s.APIKey != "" {
		req.Header.Set("X-API-Key", s.APIKey)
	}
}
