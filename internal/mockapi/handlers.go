package mockapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"golang.org/x/crypto/bcrypt"

	"github.com/worksync/worksync/internal/identity"
	"github.com/worksync/worksync/internal/leave"
	"github.com/worksync/worksync/internal/user"
)

// ----------------- AUTH -----------------

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	acc, ok := s.emailIndex[body.Email]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(body.Password)) != nil {
		s.writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := s.mintToken(acc)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"apiKey": acc.APIKey,
		"token":  token,
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.FullName == "" || body.Email == "" || body.Password == "" {
		s.writeError(w, http.StatusBadRequest, "full name, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.MinCost)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	s.mu.Lock()
	if _, exists := s.emailIndex[body.Email]; exists {
		s.mu.Unlock()
		s.writeError(w, http.StatusConflict, "email already registered")
		return
	}
	acc := s.addAccountLocked(body.FullName, body.Email, hash, user.RoleUser)
	s.mu.Unlock()

	token, err := s.mintToken(acc)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]string{
		"apiKey": acc.APIKey,
		"token":  token,
	})
}

// ----------------- LEAVES -----------------

func (s *Server) handleListLeaves(w http.ResponseWriter, r *http.Request) {
	acc, _ := accountFromContext(r.Context())
	if acc.Role != identity.RoleAdmin {
		s.writeError(w, http.StatusForbidden, "administrator access required")
		return
	}

	s.mu.Lock()
	out := make([]leave.LeaveRequest, 0, len(s.leaves))
	for _, l := range s.leaves {
		out = append(out, l.LeaveRequest)
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, map[string]interface{}{"leaves": out})
}

func (s *Server) handleMyLeaves(w http.ResponseWriter, r *http.Request) {
	acc, _ := accountFromContext(r.Context())

	s.mu.Lock()
	out := make([]leave.LeaveRequest, 0)
	for _, l := range s.leaves {
		if l.OwnerID == acc.ID {
			out = append(out, l.LeaveRequest)
		}
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, map[string]interface{}{"leaves": out})
}

func (s *Server) handleCreateLeave(w http.ResponseWriter, r *http.Request) {
	acc, _ := accountFromContext(r.Context())

	var dto leave.CreateLeaveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start, _ := leave.ParseDate(dto.StartDate)
	end, _ := leave.ParseDate(dto.EndDate)

	s.mu.Lock()
	record := &storedLeave{
		LeaveRequest: leave.LeaveRequest{
			ID:            strconv.Itoa(s.nextLeaveID),
			EmployeeName:  acc.FullName,
			EmployeeEmail: acc.Email,
			Type:          dto.Type,
			StartDate:     start,
			EndDate:       end,
			Reason:        dto.Reason,
			Status:        leave.StatusPending,
		},
		OwnerID: acc.ID,
	}
	s.nextLeaveID++
	s.leaves = append(s.leaves, record)
	s.mu.Unlock()

	s.logger.Info("mockapi: leave created", "id", record.ID, "owner", acc.Email)
	s.writeJSON(w, http.StatusCreated, record.LeaveRequest)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	acc, _ := accountFromContext(r.Context())
	if acc.Role != identity.RoleAdmin {
		s.writeError(w, http.StatusForbidden, "administrator access required")
		return
	}

	var dto leave.UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.leaves {
		if l.ID != id {
			continue
		}
		if l.Status != leave.StatusPending {
			s.writeError(w, http.StatusConflict, "leave request is not pending")
			return
		}
		l.Status = dto.Status
		if dto.Status == leave.StatusRejected {
			l.RejectionReason = dto.Reason
		}
		s.writeJSON(w, http.StatusOK, l.LeaveRequest)
		return
	}

	s.writeError(w, http.StatusNotFound, "leave request not found")
}

// ----------------- USERS -----------------

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	acc, _ := accountFromContext(r.Context())
	if acc.Role != identity.RoleAdmin {
		s.writeError(w, http.StatusForbidden, "administrator access required")
		return
	}

	s.mu.Lock()
	out := make([]user.User, 0, len(s.accountsByID))
	for i := 1; i < s.nextUserID; i++ {
		if a, ok := s.accountsByID[strconv.Itoa(i)]; ok {
			out = append(out, user.User{
				ID:        a.ID,
				FullName:  a.FullName,
				Email:     a.Email,
				Role:      a.Role,
				CreatedAt: a.CreatedAt,
			})
		}
	}
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, map[string]interface{}{"users": out})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	acc, _ := accountFromContext(r.Context())
	if acc.Role != identity.RoleAdmin {
		s.writeError(w, http.StatusForbidden, "administrator access required")
		return
	}

	var dto user.CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.MinCost)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	s.mu.Lock()
	if _, exists := s.emailIndex[dto.Email]; exists {
		s.mu.Unlock()
		s.writeError(w, http.StatusConflict, "email already registered")
		return
	}
	created := s.addAccountLocked(dto.FullName, dto.Email, hash, dto.Role)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusCreated, user.User{
		ID:        created.ID,
		FullName:  created.FullName,
		Email:     created.Email,
		Role:      created.Role,
		CreatedAt: created.CreatedAt,
	})
}
