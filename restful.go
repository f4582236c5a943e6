package gopinotdb

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

const (
	headerContentTypeApplicationJSON = "application/json"
	headerAcceptTypeApplicationJSON  = "application/json"
	headerRequestID                  = "X-Request-Id"

	preserveTypeOption = "OPTION(preserveType='true')"
)

// queryRequest is the body of a broker query.
type queryRequest struct {
	SQL          string `json:"sql"`
	QueryOptions string `json:"queryOptions,omitempty"`
}

// pinotRestful sends requests to the broker and the controller.
type pinotRestful struct {
	cfg     *Config
	session *session
}

// finalSQL appends the preserveType option when configured.
func (sr *pinotRestful) finalSQL(sqlText string) string {
	if sr.cfg.PreserveTypes {
		return sqlText + " " + preserveTypeOption
	}
	return sqlText
}

func (sr *pinotRestful) headers(requestID string) map[string]string {
	headers := make(map[string]string, len(sr.cfg.ExtraRequestHeaders)+4)
	for k, v := range sr.cfg.ExtraRequestHeaders {
		headers[k] = v
	}
	headers["Content-Type"] = headerContentTypeApplicationJSON
	headers["Accept"] = headerAcceptTypeApplicationJSON
	headers["User-Agent"] = userAgent
	if requestID != "" {
		headers[headerRequestID] = requestID
	}
	return headers
}

// postQuery posts sqlText to the broker and returns the status code and the
// raw body. Transport errors, timeouts included, are returned unmodified.
func (sr *pinotRestful) postQuery(ctx context.Context, requestID string, sqlText string) (int, []byte, error) {
	body, err := json.Marshal(queryRequest{
		SQL:          sqlText,
		QueryOptions: sr.cfg.joinedQueryOptions(),
	})
	if err != nil {
		return 0, nil, err
	}
	if sr.cfg.Debug {
		logger.WithContext(ctx).Debugf("POST %v: %s", sr.cfg.brokerURL(), body)
	}
	return sr.do(ctx, http.MethodPost, sr.cfg.brokerURL(), sr.headers(requestID), body)
}

// get sends a GET request, e.g. to the broker health check or a controller endpoint.
func (sr *pinotRestful) get(ctx context.Context, fullURL string) (int, []byte, error) {
	return sr.do(ctx, http.MethodGet, fullURL, sr.headers(""), nil)
}

func (sr *pinotRestful) do(ctx context.Context, method, fullURL string, headers map[string]string, body []byte) (int, []byte, error) {
	if sr.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sr.cfg.Timeout)
		defer cancel()
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return 0, nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if sr.cfg.Username != "" {
		req.SetBasicAuth(sr.cfg.Username, sr.cfg.Password)
	}
	resp, err := sr.session.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	if sr.cfg.Debug {
		logger.WithContext(ctx).Debugf("%v %v returned %v: %v", method, fullURL, resp.StatusCode, truncateForLog(string(respBody)))
	}
	return resp.StatusCode, respBody, nil
}

const maxLoggedBody = 4096

func truncateForLog(s string) string {
	if len(s) <= maxLoggedBody {
		return s
	}
	return s[:maxLoggedBody] + "..."
}
