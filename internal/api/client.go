package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tarediiran-industries.com/bus-eta-services/internal/common"
)

const (
	EndpointRoutes        = "routes"
	EndpointBusesForRoute = "buses_for_route"
	EndpointBusInfo       = "bus_info"

	DefaultTimeout = 15 * time.Second
)

// Client talks to the remote bus API. Every call is bounded by the HTTP
// client's timeout and by the caller's context.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *common.Metrics
	logger     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		client.httpClient = httpClient
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = timeout
	}
}

func WithMetrics(metrics *common.Metrics) Option {
	return func(client *Client) {
		client.metrics = metrics
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) {
		client.logger = logger
	}
}

func NewClient(baseURL string, options ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must be http or https", baseURL)
	}

	client := &Client{
		baseURL:    strings.TrimRight(parsed.String(), "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}

func (client *Client) BaseURL() string {
	return client.baseURL
}

// SearchRoutes looks up the route variants matching keyword.
func (client *Client) SearchRoutes(ctx context.Context, keyword string) (*RoutesResponse, error) {
	query := url.Values{}
	query.Set("keyword", keyword)

	response := &RoutesResponse{}
	if err := client.get(ctx, EndpointRoutes, "/api/routes", query, response); err != nil {
		return nil, err
	}
	return response, nil
}

// BusesForRoute lists the buses currently running on route. Missing UIDs and
// a missing direction are sent as empty strings.
func (client *Client) BusesForRoute(ctx context.Context, route Route) (*BusesResponse, error) {
	query := url.Values{}
	query.Set("direction", route.DirectionParam())
	query.Set("tdx_route_name_keyword", route.TdxRouteNameKeyword)
	query.Set("route_uid", route.RouteUID)
	query.Set("sub_route_uid", route.SubRouteUID)
	query.Set("display_name", route.DisplayName)

	response := &BusesResponse{}
	if err := client.get(ctx, EndpointBusesForRoute, "/api/buses_for_route", query, response); err != nil {
		return nil, err
	}
	return response, nil
}

// BusInfo fetches the position of plate and its upcoming stops.
//
// A 2xx body carrying "error" is returned together with an *ApplicationError
// so callers can still show the partial bus_details it may contain.
func (client *Client) BusInfo(ctx context.Context, plate, routeName string, direction int) (*BusInfoResponse, error) {
	query := url.Values{}
	query.Set("route_name", routeName)
	query.Set("direction", strconv.Itoa(direction))

	response := &BusInfoResponse{}
	err := client.get(ctx, EndpointBusInfo, "/api/bus_info/"+url.PathEscape(plate), query, response)
	if err != nil {
		if IsApplication(err) {
			return response, err
		}
		return nil, err
	}
	return response, nil
}

// Health issues a GET against the API root and returns the status code.
func (client *Client) Health(ctx context.Context) (int, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.baseURL+"/", nil)
	if err != nil {
		return 0, err
	}
	response, err := client.httpClient.Do(request)
	if err != nil {
		return 0, &TransportError{Endpoint: "health", Err: err}
	}
	defer response.Body.Close()
	_, _ = io.Copy(io.Discard, response.Body)
	return response.StatusCode, nil
}

func (client *Client) get(ctx context.Context, endpoint, path string, query url.Values, out errorCarrier) (err error) {
	defer func() {
		if err != nil {
			client.recordError(endpoint, err)
		}
	}()

	requestURL := client.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	request.Header.Set("Accept", "application/json")

	start := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	defer response.Body.Close()
	if client.metrics != nil {
		client.metrics.HttpTTFBSeconds.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}

	readStart := time.Now()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return &TransportError{Endpoint: endpoint, Err: fmt.Errorf("read response: %w", err)}
	}
	if client.metrics != nil {
		client.metrics.HttpReadBodySeconds.WithLabelValues(endpoint).Observe(time.Since(readStart).Seconds())
		client.metrics.HttpBytesTotal.WithLabelValues(endpoint).Add(float64(len(body)))
	}

	client.logger.Debug("bus api response",
		"endpoint", endpoint,
		"status", response.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start),
	)

	decodeErr := json.NewDecoder(bytes.NewReader(body)).Decode(out)
	ok := response.StatusCode >= 200 && response.StatusCode < 300

	if !ok {
		statusErr := &StatusError{Endpoint: endpoint, StatusCode: response.StatusCode}
		if decodeErr == nil {
			statusErr.Message = out.errorMessage()
		}
		return statusErr
	}
	if decodeErr != nil {
		return &TransportError{Endpoint: endpoint, Err: fmt.Errorf("decode %s response: %w", endpoint, decodeErr)}
	}
	if message := out.errorMessage(); message != "" {
		return &ApplicationError{Endpoint: endpoint, Message: message}
	}
	return nil
}

func (client *Client) recordError(endpoint string, err error) {
	kind := Kind(err)
	client.logger.Warn("bus api call failed", "endpoint", endpoint, "kind", kind, "error", err)
	if client.metrics != nil {
		client.metrics.HttpErrorsTotal.WithLabelValues(endpoint, kind).Inc()
	}
}
