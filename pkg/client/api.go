package client

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"drivehub/pkg/apiresult"
)

// APIService makes authenticated calls to arbitrary endpoints and hands
// back the raw data field
type APIService struct {
	client *Client
}

func (s *APIService) Get(ctx context.Context, endpoint string) apiresult.Envelope[json.RawMessage] {
	return s.send(ctx, http.MethodGet, endpoint, nil)
}

func (s *APIService) Post(ctx context.Context, endpoint string, body any) apiresult.Envelope[json.RawMessage] {
	return s.send(ctx, http.MethodPost, endpoint, body)
}

func (s *APIService) Put(ctx context.Context, endpoint string, body any) apiresult.Envelope[json.RawMessage] {
	return s.send(ctx, http.MethodPut, endpoint, body)
}

func (s *APIService) Delete(ctx context.Context, endpoint string) apiresult.Envelope[json.RawMessage] {
	return s.send(ctx, http.MethodDelete, endpoint, nil)
}

func (s *APIService) send(ctx context.Context, method, endpoint string, body any) apiresult.Envelope[json.RawMessage] {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return call[json.RawMessage](ctx, s.client, request{method: method, path: endpoint, body: body}, "Request failed")
}
