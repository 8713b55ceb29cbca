package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// rpcMaxResponseBytes bounds how much of a store reply is read.
const rpcMaxResponseBytes = 64 << 10

// RPCStore implements Store against a PostgREST-compatible endpoint:
//
//	POST {base}/rest/v1/rpc/{procedure}   {"token_hash": "..."}
//	200  [{"is_valid": true}]
//
// The service key is sent both as "apikey" and as a bearer token.
type RPCStore struct {
	client   *http.Client
	endpoint string
	key      string
}

type rpcRequest struct {
	TokenHash string `json:"token_hash"`
}

type rpcRow struct {
	IsValid bool `json:"is_valid"`
}

// NewRPCStore builds an RPC store. client may be nil, in which case a client with
// the given timeout is used.
func NewRPCStore(client *http.Client, baseURL, procedure, key string, timeout time.Duration) (*RPCStore, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(base)
	if err != nil || base == "" || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: rpc url must be an absolute http(s) url", ErrConfig)
	}
	procedure = strings.TrimSpace(procedure)
	if procedure == "" {
		procedure = DefaultProcedure
	}
	if client == nil {
		if timeout <= 0 {
			timeout = 3 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &RPCStore{
		client:   client,
		endpoint: base + "/rest/v1/rpc/" + url.PathEscape(procedure),
		key:      strings.TrimSpace(key),
	}, nil
}

// ValidateSession implements Store.
func (s *RPCStore) ValidateSession(ctx context.Context, tokenHash string) (bool, error) {
	body, err := json.Marshal(rpcRequest{TokenHash: tokenHash})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.key != "" {
		req.Header.Set("apikey", s.key)
		req.Header.Set("Authorization", "Bearer "+s.key)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, rpcMaxResponseBytes))
		return false, fmt.Errorf("session rpc: unexpected status %d", resp.StatusCode)
	}

	var rows []rpcRow
	dec := json.NewDecoder(io.LimitReader(resp.Body, rpcMaxResponseBytes))
	if err := dec.Decode(&rows); err != nil {
		return false, fmt.Errorf("session rpc: decode: %w", err)
	}
	if len(rows) == 0 {
		return false, nil
	}
	return rows[0].IsValid, nil
}

// Ping implements Pinger by checking that the endpoint answers at all.
// Any HTTP response counts as reachable.
func (s *RPCStore) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodOptions, s.endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 500 {
		return errors.New("session rpc: endpoint unhealthy")
	}
	return nil
}
