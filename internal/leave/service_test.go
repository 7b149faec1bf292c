package leave_test

import (
	"context"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/worksync/worksync/internal"
	"github.com/worksync/worksync/internal/leave"
	"github.com/worksync/worksync/internal/session"
)

// Mock remote client for testing
type mockLeaveAPI struct {
	allLeaves []leave.LeaveRequest
	myLeaves  []leave.LeaveRequest

	fetchAllError error
	fetchMyError  error
	createError   error
	updateError   error

	fetchAllCalls int
	fetchMyCalls  int
	createCalls   int
	updateCalls   int

	lastCreated  leave.CreateLeaveDTO
	lastUpdateID string
	lastUpdate   leave.UpdateStatusDTO
}

func (m *mockLeaveAPI) FetchAllLeaves(ctx context.Context) ([]leave.LeaveRequest, error) {
	m.fetchAllCalls++
	if m.fetchAllError != nil {
		return nil, m.fetchAllError
	}
	return m.allLeaves, nil
}

func (m *mockLeaveAPI) FetchMyLeaves(ctx context.Context) ([]leave.LeaveRequest, error) {
	m.fetchMyCalls++
	if m.fetchMyError != nil {
		return nil, m.fetchMyError
	}
	return m.myLeaves, nil
}

func (m *mockLeaveAPI) CreateLeave(ctx context.Context, dto leave.CreateLeaveDTO) (*leave.LeaveRequest, error) {
	m.createCalls++
	if m.createError != nil {
		return nil, m.createError
	}
	m.lastCreated = dto
	created := leave.LeaveRequest{ID: "99", Type: dto.Type, Reason: dto.Reason, Status: leave.StatusPending}
	m.myLeaves = append(m.myLeaves, created)
	return &created, nil
}

func (m *mockLeaveAPI) UpdateLeaveStatus(ctx context.Context, id string, dto leave.UpdateStatusDTO) (*leave.LeaveRequest, error) {
	m.updateCalls++
	if m.updateError != nil {
		return nil, m.updateError
	}
	m.lastUpdateID = id
	m.lastUpdate = dto
	return &leave.LeaveRequest{ID: id, Status: dto.Status}, nil
}

var _ = Describe("LeaveService", func() {
	var (
		svc                *leave.Service
		mockAPI            *mockLeaveAPI
		store              *session.MemoryStore
		unauthorizedCalls  int
		testLogger         *slog.Logger
		pendingLeave       leave.LeaveRequest
		someoneElsesLeaves []leave.LeaveRequest
	)

	BeforeEach(func() {
		pendingLeave = leave.LeaveRequest{ID: "1", Type: "annual", Reason: "trip", Status: leave.StatusPending}
		someoneElsesLeaves = []leave.LeaveRequest{
			pendingLeave,
			{ID: "2", Type: "sick", Reason: "flu", Status: leave.StatusApproved, EmployeeName: "Bob"},
		}

		mockAPI = &mockLeaveAPI{
			allLeaves: someoneElsesLeaves,
			myLeaves:  []leave.LeaveRequest{pendingLeave},
		}
		store = session.NewMemoryStore()
		Expect(store.Set(session.Credential{APIKey: "k1", Token: "t1"})).To(Succeed())

		unauthorizedCalls = 0
		testLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = leave.NewService(mockAPI, store, func() { unauthorizedCalls++ }, testLogger)
	})

	Describe("Load", func() {
		Context("endpoint selection by role", func() {
			It("queries the aggregate collection for administrators", func() {
				leaves, err := svc.Load(context.Background(), true)
				Expect(err).ToNot(HaveOccurred())
				Expect(mockAPI.fetchAllCalls).To(Equal(1))
				Expect(mockAPI.fetchMyCalls).To(Equal(0))
				Expect(leaves).To(HaveLen(2))
			})

			It("queries the caller-scoped collection for regular users", func() {
				leaves, err := svc.Load(context.Background(), false)
				Expect(err).ToNot(HaveOccurred())
				Expect(mockAPI.fetchMyCalls).To(Equal(1))
				Expect(mockAPI.fetchAllCalls).To(Equal(0))
				Expect(leaves).To(HaveLen(1))
			})
		})

		It("is idempotent: two loads with unchanged data yield the same sequence", func() {
			first, err := svc.Load(context.Background(), true)
			Expect(err).ToNot(HaveOccurred())
			second, err := svc.Load(context.Background(), true)
			Expect(err).ToNot(HaveOccurred())
			Expect(second).To(Equal(first))
		})

		It("never hands nil to the caller", func() {
			mockAPI.myLeaves = nil
			leaves, err := svc.Load(context.Background(), false)
			Expect(err).ToNot(HaveOccurred())
			Expect(leaves).ToNot(BeNil())
			Expect(leaves).To(BeEmpty())
		})

		It("keeps the cached sequence isolated from caller mutation", func() {
			_, err := svc.Load(context.Background(), false)
			Expect(err).ToNot(HaveOccurred())

			snapshot := svc.Current()
			Expect(snapshot).ToNot(BeEmpty())
			snapshot[0].Status = leave.StatusRejected

			Expect(svc.Current()[0].Status).ToNot(Equal(leave.StatusRejected))
		})

		Context("when the API rejects the session", func() {
			BeforeEach(func() {
				mockAPI.fetchMyError = internal.ErrSessionExpired
			})

			It("clears the session store and signals re-login exactly once", func() {
				_, err := svc.Load(context.Background(), false)
				Expect(err).To(MatchError(internal.ErrSessionExpired))

				cred, getErr := store.Get()
				Expect(getErr).ToNot(HaveOccurred())
				Expect(cred.IsAuthenticated()).To(BeFalse())
				Expect(unauthorizedCalls).To(Equal(1))
			})
		})

		Context("when the fetch fails for any other reason", func() {
			It("keeps the session and the last successfully loaded sequence", func() {
				_, err := svc.Load(context.Background(), false)
				Expect(err).ToNot(HaveOccurred())
				Expect(svc.Current()).To(HaveLen(1))

				mockAPI.fetchMyError = internal.NewRemoteError("boom", 500)
				_, err = svc.Load(context.Background(), false)
				Expect(err).To(HaveOccurred())

				cred, _ := store.Get()
				Expect(cred.IsAuthenticated()).To(BeTrue())
				Expect(unauthorizedCalls).To(Equal(0))
				Expect(svc.Current()).To(HaveLen(1))
			})

			It("leaves the sequence empty when nothing loaded yet", func() {
				mockAPI.fetchMyError = internal.NewRemoteError("boom", 500)
				_, err := svc.Load(context.Background(), false)
				Expect(err).To(HaveOccurred())
				Expect(svc.Current()).To(BeEmpty())
			})
		})
	})

	Describe("Create", func() {
		validDraft := leave.CreateLeaveDTO{
			Type:      "annual",
			StartDate: "2024-01-05",
			EndDate:   "2024-01-10",
			Reason:    "trip",
		}

		It("issues exactly one creation call and one reload", func() {
			created, err := svc.Create(context.Background(), validDraft, false)
			Expect(err).ToNot(HaveOccurred())
			Expect(created).ToNot(BeNil())
			Expect(mockAPI.createCalls).To(Equal(1))
			Expect(mockAPI.fetchMyCalls).To(Equal(1))
		})

		It("makes zero network calls for an inverted date range", func() {
			bad := validDraft
			bad.StartDate = "2024-01-10"
			bad.EndDate = "2024-01-05"

			_, err := svc.Create(context.Background(), bad, false)
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			Expect(mockAPI.createCalls).To(Equal(0))
			Expect(mockAPI.fetchMyCalls).To(Equal(0))
		})

		It("makes zero network calls for an empty reason", func() {
			bad := validDraft
			bad.Reason = ""
			_, err := svc.Create(context.Background(), bad, false)
			Expect(err).To(HaveOccurred())
			Expect(mockAPI.createCalls).To(Equal(0))
		})

		It("does not reload when the creation itself fails", func() {
			mockAPI.createError = internal.NewRemoteError("quota exceeded", 422)
			_, err := svc.Create(context.Background(), validDraft, false)
			Expect(err).To(HaveOccurred())
			Expect(internal.UserMessage(err)).To(Equal("quota exceeded"))
			Expect(mockAPI.fetchMyCalls).To(Equal(0))
		})
	})

	Describe("SetStatus", func() {
		It("rejects a rejection with an empty reason before any network call", func() {
			err := svc.SetStatus(context.Background(), "42", leave.StatusRejected, "", true)
			Expect(err).To(HaveOccurred())
			Expect(mockAPI.updateCalls).To(Equal(0))
			Expect(mockAPI.fetchAllCalls).To(Equal(0))
		})

		It("issues one transition call and one subsequent reload", func() {
			err := svc.SetStatus(context.Background(), "42", leave.StatusRejected, "coverage gap", true)
			Expect(err).ToNot(HaveOccurred())
			Expect(mockAPI.updateCalls).To(Equal(1))
			Expect(mockAPI.lastUpdateID).To(Equal("42"))
			Expect(mockAPI.lastUpdate.Reason).To(Equal("coverage gap"))
			Expect(mockAPI.fetchAllCalls).To(Equal(1))
		})

		It("approves without a reason", func() {
			err := svc.SetStatus(context.Background(), "1", leave.StatusApproved, "", true)
			Expect(err).ToNot(HaveOccurred())
			Expect(mockAPI.lastUpdate.Status).To(Equal(leave.StatusApproved))
		})

		It("does not touch the cached sequence when the transition fails", func() {
			_, err := svc.Load(context.Background(), true)
			Expect(err).ToNot(HaveOccurred())
			before := svc.Current()

			mockAPI.updateError = internal.NewRemoteError("conflict", 409)
			err = svc.SetStatus(context.Background(), "1", leave.StatusApproved, "", true)
			Expect(err).To(HaveOccurred())
			Expect(svc.Current()).To(Equal(before))
		})
	})
})
