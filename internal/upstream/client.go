// Package upstream talks to the remote booking API on behalf of gateway
// visitors. The API is an opaque collaborator: its records are passed
// through, not re-modelled.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hotel-front/internal/identity"
	apperrors "github.com/spec-kit/hotel-front/pkg/util"
)

// Client is a typed HTTP client for the booking API. All calls go through
// the Authorizer transport, so credential attachment and 401 handling are
// uniform across methods.
type Client struct {
	baseURL    string
	basePath   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a client over the given transport.
func NewClient(baseURL string, transport http.RoundTripper, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse booking api url: %w", err)
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		basePath:   strings.TrimSuffix(parsed.Path, "/"),
		httpClient: &http.Client{Transport: transport, Timeout: timeout},
		logger:     logger,
	}, nil
}

// BasePath returns the path prefix of the API base URL, for exemption
// matching in the authorizer.
func (c *Client) BasePath() string {
	return c.basePath
}

// Login authenticates against the class's login endpoint.
func (c *Client) Login(ctx context.Context, class identity.Class, req LoginRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, class.AuthPath+"/login", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account through the class's register endpoint. The
// API issues a token immediately, so registration implies login.
func (c *Client) Register(ctx context.Context, class identity.Class, req RegisterRequest) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, class.AuthPath+"/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListRooms fetches the public room catalog.
func (c *Client) ListRooms(ctx context.Context) ([]Room, error) {
	var out []Room
	if err := c.do(ctx, http.MethodGet, "/rooms", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRoom fetches one room by ID.
func (c *Client) GetRoom(ctx context.Context, id string) (*Room, error) {
	var out Room
	if err := c.do(ctx, http.MethodGet, "/rooms/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRoom registers a new room (staff only upstream).
func (c *Client) CreateRoom(ctx context.Context, req RoomCreateRequest) (*Room, error) {
	var out Room
	if err := c.do(ctx, http.MethodPost, "/rooms", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRoom applies a partial update to a room.
func (c *Client) UpdateRoom(ctx context.Context, id string, req RoomUpdateRequest) (*Room, error) {
	var out Room
	if err := c.do(ctx, http.MethodPut, "/rooms/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRoom removes a room.
func (c *Client) DeleteRoom(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/rooms/"+url.PathEscape(id), nil, nil, nil)
}

// AvailableRooms searches rooms free for the given stay.
func (c *Client) AvailableRooms(ctx context.Context, q AvailabilityQuery) ([]Room, error) {
	params := url.Values{}
	params.Set("checkInDate", q.CheckInDate)
	params.Set("checkOutDate", q.CheckOutDate)
	params.Set("numAdults", strconv.Itoa(q.NumAdults))
	if q.NumChildren > 0 {
		params.Set("numChildren", strconv.Itoa(q.NumChildren))
	}
	var out []Room
	if err := c.do(ctx, http.MethodGet, "/bookings/available-rooms", params, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBooking reserves a room.
func (c *Client) CreateBooking(ctx context.Context, req BookingCreateRequest) (*Booking, error) {
	var out Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListBookings fetches every booking (staff only upstream).
func (c *Client) ListBookings(ctx context.Context) ([]Booking, error) {
	var out []Booking
	if err := c.do(ctx, http.MethodGet, "/bookings", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BookingsByCustomer fetches one customer's bookings.
func (c *Client) BookingsByCustomer(ctx context.Context, customerID string) ([]Booking, error) {
	var out []Booking
	if err := c.do(ctx, http.MethodGet, "/bookings/by-customer/"+url.PathEscape(customerID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CancelBooking deletes a booking.
func (c *Client) CancelBooking(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/bookings/"+url.PathEscape(id), nil, nil, nil)
}

// ListCustomers fetches all customers (staff only upstream).
func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	var out []Customer
	if err := c.do(ctx, http.MethodGet, "/customers", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCustomer fetches one customer.
func (c *Client) GetCustomer(ctx context.Context, id string) (*Customer, error) {
	var out Customer
	if err := c.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCustomer applies a partial update to a customer.
func (c *Client) UpdateCustomer(ctx context.Context, id string, req CustomerUpdateRequest) (*Customer, error) {
	var out Customer
	if err := c.do(ctx, http.MethodPut, "/customers/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCustomer removes a customer.
func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/customers/"+url.PathEscape(id), nil, nil, nil)
}

// ListUsers fetches all staff accounts.
func (c *Client) ListUsers(ctx context.Context) ([]StaffUser, error) {
	var out []StaffUser
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetUser fetches one staff account.
func (c *Client) GetUser(ctx context.Context, id string) (*StaffUser, error) {
	var out StaffUser
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser applies a partial update to a staff account.
func (c *Client) UpdateUser(ctx context.Context, id string, req StaffUserUpdateRequest) (*StaffUser, error) {
	var out StaffUser
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes a staff account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, nil)
}

// do issues one request and decodes a JSON response into out (when out is
// non-nil). Failures are terminal for the attempt: nothing here retries.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// The authorizer surfaces stale sessions as a DomainError wrapped
		// in the transport error; unwrap it rather than masking it as a
		// network failure.
		if de := asDomainError(err); de != nil {
			return de
		}
		return apperrors.NewUpstreamUnavailable(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapStatus(resp, method, path)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewUpstreamUnavailable(fmt.Errorf("decode %s %s: %w", method, path, err))
	}
	return nil
}

// mapStatus converts a non-2xx response into the gateway's error taxonomy.
// 401 on an auth endpoint means rejected credentials (the authorizer only
// intercepts 401s on non-exempt calls).
func (c *Client) mapStatus(resp *http.Response, method, path string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	c.logger.Debug("booking api error",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.ByteString("body", raw))

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return apperrors.NewValidationError("booking api rejected the request", nil)
	case http.StatusUnauthorized, http.StatusForbidden:
		if strings.HasSuffix(path, "/login") || strings.HasSuffix(path, "/register") {
			return apperrors.NewInvalidCredentials()
		}
		return apperrors.NewForbidden("insufficient permission")
	case http.StatusNotFound:
		return apperrors.NewNotFound("resource")
	case http.StatusConflict:
		return apperrors.NewIdentityConflict()
	default:
		return apperrors.NewUpstreamUnavailable(fmt.Errorf("%s %s: HTTP %d", method, path, resp.StatusCode))
	}
}

func asDomainError(err error) *apperrors.DomainError {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		return de
	}
	return nil
}
