package client

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

	"drivehub/pkg/apiresult"
	"drivehub/pkg/logger"
	"drivehub/pkg/session"

	"golang.org/x/time/rate"
)

const DefaultTimeout = 15 * time.Second

var errUnexpectedResponse = errors.New("unexpected response from server")

// Config configures the storefront API client
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	// HTTPClient overrides the transport, mostly for tests
	HTTPClient *http.Client
}

// Client talks to the DriveHub API. Every call returns an apiresult.Envelope
// and never an error, so callers only ever print Envelope.Message.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	session *session.Session
	log     *logger.Logger

	Auth     *AuthService
	Cars     *CarService
	Bookings *BookingService
	Admin    *AdminService
	API      *APIService
}

func New(cfg Config, store session.Store, log *logger.Logger) *Client {
	if log == nil {
		log = logger.GetDefault()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		session: session.New(store),
		log:     log,
	}
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	c.Auth = &AuthService{client: c}
	c.Cars = &CarService{client: c}
	c.Bookings = &BookingService{client: c}
	c.Admin = &AdminService{client: c}
	c.API = &APIService{client: c}
	return c
}

// Session exposes the persisted sign-in state
func (c *Client) Session() *session.Session {
	return c.session
}

// apiResponse mirrors the server's success body
type apiResponse struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type result struct {
	status  int
	message string
	data    json.RawMessage
}

// request describes one API call. Body is JSON encoded unless it is a
// rawBody.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
}

type rawBody struct {
	contentType string
	reader      io.Reader
}

func (c *Client) do(ctx context.Context, req request) (*result, error) {
	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, apiresult.NewTransportError(req.method, endpoint, err)
		}
	}

	var body io.Reader
	contentType := ""
	switch b := req.body.(type) {
	case nil:
	case rawBody:
		body = b.reader
		contentType = b.contentType
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	token := c.session.Token(ctx)
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.LogOutgoingRequest(ctx, req.method, endpoint, 0, time.Since(start))
		return nil, apiresult.NewTransportError(req.method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	c.log.LogOutgoingRequest(ctx, req.method, endpoint, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, apiresult.NewTransportError(req.method, endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && token != "" {
			if err := c.session.Clear(ctx); err != nil {
				c.log.WarnContext(ctx, "Failed to clear session", "error", err.Error())
			}
		}
		return nil, apiresult.NewResponseError(req.method, endpoint, resp.StatusCode, resp.Header.Get("Content-Type"), raw)
	}

	out := &result{status: resp.StatusCode}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	var decoded apiResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		c.log.WarnContext(ctx, "Undecodable response body", "path", req.path, "status", resp.StatusCode, "error", err.Error())
		return nil, &apiresult.RequestError{
			Method:      req.method,
			URL:         endpoint,
			StatusCode:  resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
			Err:         errUnexpectedResponse,
		}
	}
	out.message = decoded.Message
	out.data = decoded.Data
	return out, nil
}

// call runs req and decodes the data field into T
func call[T any](ctx context.Context, c *Client, req request, fallback string) apiresult.Envelope[T] {
	res, err := c.do(ctx, req)
	if err != nil {
		return apiresult.Fail[T](err, fallback)
	}

	var data T
	if len(res.data) > 0 && string(res.data) != "null" {
		if err := json.Unmarshal(res.data, &data); err != nil {
			c.log.WarnContext(ctx, "Unexpected response data", "path", req.path, "error", err.Error())
			return apiresult.Build(false, data, fallback, res.status)
		}
	}
	return apiresult.OKWithStatus(data, res.message, res.status)
}

func idPath(format string, id uint) string {
	return fmt.Sprintf(format, id)
}
