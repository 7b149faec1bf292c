// Package mockapi is an in-process stand-in for the WorkSync API. It serves
// the same contract internal/api consumes, which makes it both the fixture
// for client tests and a local development backend (worksync mock-server).
// Tokens are minted and verified with a throwaway HS256 secret; the real API
// owns the real keys.
package mockapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/worksync/worksync/internal/identity"
	"github.com/worksync/worksync/internal/leave"
)

type account struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash []byte
	Role         string
	APIKey       string
	CreatedAt    time.Time
}

type storedLeave struct {
	leave.LeaveRequest
	OwnerID string
}

type Server struct {
	logger   *slog.Logger
	secret   []byte
	tokenTTL time.Duration

	mu           sync.Mutex
	accountsByID map[string]*account
	emailIndex   map[string]*account
	leaves       []*storedLeave
	nextUserID   int
	nextLeaveID  int
}

func New(secret string, logger *slog.Logger) *Server {
	return &Server{
		logger:       logger,
		secret:       []byte(secret),
		tokenTTL:     24 * time.Hour,
		accountsByID: make(map[string]*account),
		emailIndex:   make(map[string]*account),
		nextUserID:   1,
		nextLeaveID:  1,
	}
}

// SeedUser registers an account directly, bypassing the register endpoint.
// Used by tests and by mock-server startup to provision the admin.
func (s *Server) SeedUser(fullName, email, password, role string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addAccountLocked(fullName, email, hash, role)
}

func (s *Server) addAccountLocked(fullName, email string, hash []byte, role string) *account {
	acc := &account{
		ID:           strconv.Itoa(s.nextUserID),
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		APIKey:       uuid.NewString(),
		CreatedAt:    time.Now(),
	}
	s.nextUserID++
	s.accountsByID[acc.ID] = acc
	s.emailIndex[acc.Email] = acc
	return acc
}

// SeedLeave inserts a leave record for the given account email, for tests
// that need existing data.
func (s *Server) SeedLeave(email string, req leave.LeaveRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.emailIndex[email]
	if !ok {
		panic("mockapi: seeding leave for unknown account " + email)
	}
	req.ID = strconv.Itoa(s.nextLeaveID)
	s.nextLeaveID++
	req.EmployeeName = acc.FullName
	req.EmployeeEmail = acc.Email
	if req.Status == "" {
		req.Status = leave.StatusPending
	}
	s.leaves = append(s.leaves, &storedLeave{LeaveRequest: req, OwnerID: acc.ID})
}

func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/register", s.handleRegister)

		r.Group(func(pr chi.Router) {
			pr.Use(s.authenticate)

			pr.Get("/leave", s.handleListLeaves)
			pr.Get("/leave/my", s.handleMyLeaves)
			pr.Post("/leave", s.handleCreateLeave)
			pr.Patch("/leave/{id}/status", s.handleUpdateStatus)

			pr.Get("/users", s.handleListUsers)
			pr.Post("/users", s.handleCreateUser)
		})
	})

	return r
}

// ----------------- TOKENS & MIDDLEWARE -----------------

func (s *Server) mintToken(acc *account) (string, error) {
	now := time.Now()
	claims := &identity.Claims{
		Role:     acc.Role,
		IsAdmin:  acc.Role == identity.RoleAdmin,
		Email:    acc.Email,
		FullName: acc.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

type ctxKey string

const accountContextKey ctxKey = "account"

func accountFromContext(ctx context.Context) (*account, bool) {
	acc, ok := ctx.Value(accountContextKey).(*account)
	return acc, ok
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractBearer(r)
		if tokenString == "" {
			s.writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims := &identity.Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.secret, nil
		})
		if err != nil || !token.Valid {
			s.writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		s.mu.Lock()
		acc, ok := s.accountsByID[claims.Subject]
		s.mu.Unlock()
		if !ok {
			s.writeError(w, http.StatusUnauthorized, "unknown account")
			return
		}
		if r.Header.Get("x-api-key") != acc.APIKey {
			s.writeError(w, http.StatusUnauthorized, "invalid api key")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), accountContextKey, acc)))
	})
}

func extractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}
	return authHeader[7:]
}

// ----------------- RESPONSE HELPERS -----------------

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("mockapi: failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]interface{}{
		"code":    status,
		"message": message,
	})
}
