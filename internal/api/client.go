// Package api is the outbound client for the WorkSync REST API. This is the
// authoritative contract the CLI consumes:
//
//	POST  /api/v1/auth/login        {email, password}            -> {apiKey, token}
//	POST  /api/v1/auth/register     {fullName, email, password}  -> {apiKey, token}
//	GET   /api/v1/leave                                          -> {leaves: [...]} or bare array (admin)
//	GET   /api/v1/leave/my                                       -> {leaves: [...]} or bare array
//	POST  /api/v1/leave             {type?, startDate, endDate, reason} -> created record
//	PATCH /api/v1/leave/{id}/status {status, reason?}            -> updated record
//	GET   /api/v1/users                                          -> {users: [...]} (admin)
//	POST  /api/v1/users             {fullName, email, password, role} -> created account
//
// Every authenticated call carries the stored API key in x-api-key and the
// bearer token in Authorization. A 401 from any endpoint maps to
// internal.ErrSessionExpired; the session store itself is never written
// here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/worksync/worksync/internal"
	"github.com/worksync/worksync/internal/leave"
	"github.com/worksync/worksync/internal/session"
	"github.com/worksync/worksync/internal/user"
	"github.com/worksync/worksync/pkg/logger"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL  string
	timeout  time.Duration
	http     *http.Client
	sessions session.Store
	logger   *slog.Logger
}

func NewClient(cfg Config, sessions session.Store, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = internal.DefaultAPITimeout
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		timeout:  timeout,
		http:     &http.Client{Timeout: timeout},
		sessions: sessions,
		logger:   logger,
	}
}

// ----------------- AUTH -----------------

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerPayload struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	APIKey string `json:"apiKey"`
	Token  string `json:"token"`
}

// Login exchanges credentials for the credential pair. Writing the pair to
// the session store is the caller's job: the login flow is the only writer.
func (c *Client) Login(ctx context.Context, email, password string) (session.Credential, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", loginPayload{Email: email, Password: password}, false)
	if err != nil {
		return session.Credential{}, err
	}

	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return session.Credential{}, fmt.Errorf("decode login response: %w", err)
	}
	return session.Credential{APIKey: resp.APIKey, Token: resp.Token}, nil
}

func (c *Client) Register(ctx context.Context, fullName, email, password string) (session.Credential, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", registerPayload{FullName: fullName, Email: email, Password: password}, false)
	if err != nil {
		return session.Credential{}, err
	}

	var resp authResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return session.Credential{}, fmt.Errorf("decode register response: %w", err)
	}
	return session.Credential{APIKey: resp.APIKey, Token: resp.Token}, nil
}

// ----------------- LEAVES -----------------

func (c *Client) FetchAllLeaves(ctx context.Context) ([]leave.LeaveRequest, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/leave", nil, true)
	if err != nil {
		return nil, err
	}
	return leave.NormalizeList(body)
}

func (c *Client) FetchMyLeaves(ctx context.Context) ([]leave.LeaveRequest, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/leave/my", nil, true)
	if err != nil {
		return nil, err
	}
	return leave.NormalizeList(body)
}

type createLeavePayload struct {
	Type      string `json:"type,omitempty"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

func (c *Client) CreateLeave(ctx context.Context, dto leave.CreateLeaveDTO) (*leave.LeaveRequest, error) {
	payload := createLeavePayload{
		Type:      dto.Type,
		StartDate: dto.StartDate,
		EndDate:   dto.EndDate,
		Reason:    dto.TaggedReason(),
	}
	body, err := c.do(ctx, http.MethodPost, "/api/v1/leave", payload, true)
	if err != nil {
		return nil, err
	}

	var created leave.LeaveRequest
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created leave: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateLeaveStatus(ctx context.Context, id string, dto leave.UpdateStatusDTO) (*leave.LeaveRequest, error) {
	path := fmt.Sprintf("/api/v1/leave/%s/status", id)
	body, err := c.do(ctx, http.MethodPatch, path, dto, true)
	if err != nil {
		return nil, err
	}

	var updated leave.LeaveRequest
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("decode updated leave: %w", err)
	}
	return &updated, nil
}

// ----------------- USERS -----------------

type usersEnvelope struct {
	Users []user.User `json:"users"`
}

func (c *Client) ListUsers(ctx context.Context) ([]user.User, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/users", nil, true)
	if err != nil {
		return nil, err
	}

	var envelope usersEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Users != nil {
		return envelope.Users, nil
	}

	var bare []user.User
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, fmt.Errorf("decode users response: %w", err)
	}
	return bare, nil
}

func (c *Client) CreateUser(ctx context.Context, dto user.CreateUserDTO) (*user.User, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/v1/users", dto, true)
	if err != nil {
		return nil, err
	}

	var created user.User
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created user: %w", err)
	}
	return &created, nil
}

// ----------------- TRANSPORT -----------------

func (c *Client) do(ctx context.Context, method, path string, payload any, authenticated bool) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	ctx, cancel := internal.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if authenticated {
		cred, err := c.sessions.Get()
		if err != nil {
			return nil, fmt.Errorf("read session: %w", err)
		}
		if !cred.IsAuthenticated() {
			return nil, internal.ErrNotLoggedIn
		}
		req.Header.Set("x-api-key", cred.APIKey)
		req.Header.Set("Authorization", "Bearer "+cred.Token)
	}

	logger.From(ctx).Debug("api request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, internal.NewRemoteError("could not reach the WorkSync API", 0).WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, internal.NewRemoteError("failed reading API response", resp.StatusCode).WithCause(err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("api error response", "method", method, "path", path, "status", resp.StatusCode)
	}
	// A 401 only means the stored credentials went stale when the request
	// actually carried them. Login and register return 401 for bad input,
	// and that message belongs to the user.
	if authenticated && resp.StatusCode == http.StatusUnauthorized {
		return nil, internal.ErrSessionExpired
	}
	if resp.StatusCode >= 400 {
		return nil, internal.NewRemoteError(remoteMessage(body, resp.StatusCode), resp.StatusCode)
	}

	return body, nil
}

// remoteMessage digs the server-provided message out of an error body,
// accepting both {"message": ...} and {"error": {"message": ...}} shapes.
func remoteMessage(body []byte, statusCode int) string {
	var flat struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &flat); err == nil && flat.Message != "" {
		return flat.Message
	}

	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}

	return fmt.Sprintf("API returned status %d", statusCode)
}
