package leave

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leavehr/leave-backend-go/internal/domain/leave"
	"github.com/leavehr/leave-backend-go/internal/pkg/validator"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// fakeTransactor serializes transactional sections with a mutex, giving the
// fakes the same isolation the real pool gives per-operation transactions.
type fakeTransactor struct {
	mu sync.Mutex
}

func (t *fakeTransactor) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

type fakeBalanceRepo struct {
	mu       sync.Mutex
	balances map[int64]leave.LeaveBalance
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: make(map[int64]leave.LeaveBalance)}
}

func (r *fakeBalanceRepo) Create(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	balance.ID = int64(len(r.balances) + 1)
	r.balances[balance.EmployeeID] = balance
	return balance, nil
}

func (r *fakeBalanceRepo) GetByEmployeeID(ctx context.Context, employeeID int64) (leave.LeaveBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	balance, ok := r.balances[employeeID]
	if !ok {
		return leave.LeaveBalance{}, leave.ErrBalanceNotFound
	}
	return balance, nil
}

func (r *fakeBalanceRepo) Deduct(ctx context.Context, employeeID int64, leaveType leave.LeaveType, days int) error {
	return r.adjust(employeeID, leaveType, -days)
}

func (r *fakeBalanceRepo) Restore(ctx context.Context, employeeID int64, leaveType leave.LeaveType, days int) error {
	return r.adjust(employeeID, leaveType, days)
}

func (r *fakeBalanceRepo) adjust(employeeID int64, leaveType leave.LeaveType, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	balance, ok := r.balances[employeeID]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	if balance.Available(leaveType)+delta < 0 {
		return leave.ErrInsufficientBalance
	}
	switch leaveType {
	case leave.LeaveTypeAnnual:
		balance.Annual += delta
	case leave.LeaveTypeSick:
		balance.Sick += delta
	case leave.LeaveTypeCasual:
		balance.Casual += delta
	case leave.LeaveTypeOther:
		balance.Other += delta
	}
	r.balances[employeeID] = balance
	return nil
}

func (r *fakeBalanceRepo) DeleteByEmployeeID(ctx context.Context, employeeID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.balances, employeeID)
	return nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]leave.LeaveRequest
	nextID   int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]leave.LeaveRequest)}
}

func (r *fakeRequestRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	request.ID = fmt.Sprintf("req-%d", r.nextID)
	r.requests[request.ID] = request
	return request, nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrRequestNotFound
	}
	return request, nil
}

func (r *fakeRequestRepo) UpdateStatus(ctx context.Context, id string, status leave.LeaveRequestStatus, adminRemark string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok || request.Status != leave.LeaveRequestStatusPending {
		return leave.ErrAlreadyProcessed
	}
	request.Status = status
	request.AdminRemark = &adminRemark
	r.requests[id] = request
	return nil
}

func (r *fakeRequestRepo) HasApprovedOverlap(ctx context.Context, employeeID int64, start, end time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, request := range r.requests {
		if request.EmployeeID != employeeID || request.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		if leave.RangesOverlap(start, end, request.StartDate, request.EndDate) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRequestRepo) ListByEmployee(ctx context.Context, employeeID int64) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveRequest
	for _, request := range r.requests {
		if request.EmployeeID == employeeID {
			out = append(out, request)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) ListPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []leave.LeaveRequest
	for _, request := range r.requests {
		if request.Status == leave.LeaveRequestStatusPending {
			out = append(out, request)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) ListAll(ctx context.Context) ([]leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]leave.LeaveRequest, 0, len(r.requests))
	for _, request := range r.requests {
		out = append(out, request)
	}
	return out, nil
}

func (r *fakeRequestRepo) DeleteByEmployeeID(ctx context.Context, employeeID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, request := range r.requests {
		if request.EmployeeID == employeeID {
			delete(r.requests, id)
		}
	}
	return nil
}

type workflowFixture struct {
	workflow *WorkflowImpl
	requests *fakeRequestRepo
	balances *fakeBalanceRepo
}

// today as seen by every test workflow
var testToday = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newWorkflowFixture(t *testing.T) workflowFixture {
	t.Helper()
	requests := newFakeRequestRepo()
	balances := newFakeBalanceRepo()
	workflow := NewWorkflow(&fakeTransactor{}, requests, balances, NewLedger(balances))
	workflow.now = func() time.Time { return testToday }
	return workflowFixture{workflow: workflow, requests: requests, balances: balances}
}

func (f workflowFixture) seedBalance(t *testing.T, employeeID int64, annual, sick, casual, other int) {
	t.Helper()
	_, err := f.balances.Create(context.Background(), leave.LeaveBalance{
		EmployeeID: employeeID,
		Annual:     annual,
		Sick:       sick,
		Casual:     casual,
		Other:      other,
	})
	require.NoError(t, err)
}

func submitRequest(leaveType, start, end string) leave.SubmitLeaveRequest {
	return leave.SubmitLeaveRequest{
		LeaveType: leaveType,
		StartDate: start,
		EndDate:   end,
		Reason:    "family matters",
	}
}

func TestWorkflow_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending request without touching the balance", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedBalance(t, 1, 20, 10, 5, 0)

		id, err := f.workflow.Submit(ctx, 1, submitRequest("annual", "2024-06-10", "2024-06-12"))
		require.NoError(t, err)
		require.NotEmpty(t, id)

		created, err := f.requests.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, leave.LeaveRequestStatusPending, created.Status)
		assert.Equal(t, leave.LeaveTypeAnnual, created.LeaveType)
		assert.Equal(t, 3, created.TotalDays())
		assert.Equal(t, testToday, leave.DateOnly(created.SubmittedAt))

		balance, err := f.balances.GetByEmployeeID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 20, balance.Annual)
	})

	t.Run("start date today is allowed", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedBalance(t, 1, 20, 10, 5, 0)

		_, err := f.workflow.Submit(ctx, 1, submitRequest("annual", "2024-06-01", "2024-06-01"))
		assert.NoError(t, err)
	})

	t.Run("start date in the past", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedBalance(t, 1, 20, 10, 5, 0)

		_, err := f.workflow.Submit(ctx, 1, submitRequest("annual", "2024-05-31", "2024-06-02"))
		assert.ErrorIs(t, err, leave.ErrStartDateInPast)
	})

	t.Run("end date before start date", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedBalance(t, 1, 20, 10, 5, 0)

		_, err := f.workflow.Submit(ctx, 1, submitRequest("annual", "2024-06-12", "2024-06-10"))
		assert.ErrorIs(t, err, leave.ErrEndBeforeStart)
	})

	t.Run("unknown leave type", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedBalance(t, 1, 20, 10, 5, 0)

		_, err := f.workflow.Submit(ctx, 1, submitRequest("sabbatical", "2024-06-10", "2024-06-12"))
		assert.ErrorIs(t, err, leave.ErrInvalidLeaveType)
	})

	t.Run("missing fields fail validation", func(t *testing.T) {
		f := newWorkflowFixture(t)

		_, err := f.workflow.Submit(ctx, 1, leave.SubmitLeaveRequest{LeaveType: "annual"})
		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Len(t, errs, 3)
	})

	t.Run("overlap with approved leave blocks", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedBalance(t, 1, 20, 10, 5, 0)
		_, err := f.requests.Create(ctx, leave.LeaveRequest{
			EmployeeID: 1,
			LeaveType:  leave.LeaveTypeAnnual,
			StartDate:  date("2024-06-11"),
			EndDate:    date("2024-06-14"),
			Status:     leave.LeaveRequestStatusApproved,
		})
		require.NoError(t, err)

		_, err = f.workflow.Submit(ctx, 1, submitRequest("sick", "2024-06-10", "2024-06-11"))
		assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
	})

	t.Run("pending and rejected requests never block", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedBalance(t, 1, 20, 10, 5, 0)
		for _, status := range []leave.LeaveRequestStatus{leave.LeaveRequestStatusPending, leave.LeaveRequestStatusRejected} {
			_, err := f.requests.Create(ctx, leave.LeaveRequest{
				EmployeeID: 1,
				LeaveType:  leave.LeaveTypeAnnual,
				StartDate:  date("2024-06-10"),
				EndDate:    date("2024-06-12"),
				Status:     status,
			})
			require.NoError(t, err)
		}

		_, err := f.workflow.Submit(ctx, 1, submitRequest("annual", "2024-06-10", "2024-06-12"))
		assert.NoError(t, err)
	})

	t.Run("approved leave of another employee never blocks", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedBalance(t, 1, 20, 10, 5, 0)
		_, err := f.requests.Create(ctx, leave.LeaveRequest{
			EmployeeID: 2,
			LeaveType:  leave.LeaveTypeAnnual,
			StartDate:  date("2024-06-10"),
			EndDate:    date("2024-06-12"),
			Status:     leave.LeaveRequestStatusApproved,
		})
		require.NoError(t, err)

		_, err = f.workflow.Submit(ctx, 1, submitRequest("annual", "2024-06-10", "2024-06-12"))
		assert.NoError(t, err)
	})

	t.Run("insufficient balance reports the shortfall", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedBalance(t, 1, 20, 10, 2, 0)

		_, err := f.workflow.Submit(ctx, 1, submitRequest("casual", "2024-06-10", "2024-06-12"))
		require.ErrorIs(t, err, leave.ErrInsufficientBalance)

		var insufficient *leave.InsufficientBalanceError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, leave.LeaveTypeCasual, insufficient.LeaveType)
		assert.Equal(t, 2, insufficient.Available)
		assert.Equal(t, 3, insufficient.Required)

		all, err := f.requests.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all, "no request should be recorded")
	})

	t.Run("missing balance row", func(t *testing.T) {
		f := newWorkflowFixture(t)

		_, err := f.workflow.Submit(ctx, 99, submitRequest("annual", "2024-06-10", "2024-06-12"))
		assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
	})
}

func TestWorkflow_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("deducts the inclusive day count and finalizes the request", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedBalance(t, 1, 20, 10, 5, 0)
		id, err := f.workflow.Submit(ctx, 1, submitRequest("annual", "2024-06-10", "2024-06-12"))
		require.NoError(t, err)

		require.NoError(t, f.workflow.Approve(ctx, id, "enjoy"))

		request, err := f.requests.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, leave.LeaveRequestStatusApproved, request.Status)
		require.NotNil(t, request.AdminRemark)
		assert.Equal(t, "enjoy", *request.AdminRemark)

		balance, err := f.balances.GetByEmployeeID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 17, balance.Annual)
		assert.Equal(t, 10, balance.Sick, "other categories stay untouched")
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newWorkflowFixture(t)

		err := f.workflow.Approve(ctx, "req-404", "")
		assert.ErrorIs(t, err, leave.ErrRequestNotFound)
	})

	t.Run("second decision on the same request fails", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedBalance(t, 1, 20, 10, 5, 0)
		id, err := f.workflow.Submit(ctx, 1, submitRequest("annual", "2024-06-10", "2024-06-12"))
		require.NoError(t, err)

		require.NoError(t, f.workflow.Approve(ctx, id, "ok"))

		assert.ErrorIs(t, f.workflow.Approve(ctx, id, "again"), leave.ErrAlreadyProcessed)
		assert.ErrorIs(t, f.workflow.Reject(ctx, id, "changed my mind"), leave.ErrAlreadyProcessed)

		balance, err := f.balances.GetByEmployeeID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 17, balance.Annual, "balance deducted exactly once")
	})

	t.Run("insufficient balance at approval leaves the request pending", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedBalance(t, 1, 20, 10, 3, 0)

		// Two non-overlapping casual requests pass the submit-time check
		// against the same 3 remaining days.
		first, err := f.workflow.Submit(ctx, 1, submitRequest("casual", "2024-06-10", "2024-06-12"))
		require.NoError(t, err)
		second, err := f.workflow.Submit(ctx, 1, submitRequest("casual", "2024-06-17", "2024-06-19"))
		require.NoError(t, err)

		require.NoError(t, f.workflow.Approve(ctx, first, ""))

		err = f.workflow.Approve(ctx, second, "")
		require.ErrorIs(t, err, leave.ErrInsufficientBalance)

		var insufficient *leave.InsufficientBalanceError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 0, insufficient.Available)
		assert.Equal(t, 3, insufficient.Required)

		request, err := f.requests.GetByID(ctx, second)
		require.NoError(t, err)
		assert.Equal(t, leave.LeaveRequestStatusPending, request.Status)

		balance, err := f.balances.GetByEmployeeID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, balance.Casual, "failed approval must not move the balance")
	})

	t.Run("overlap gained since submission blocks approval", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedBalance(t, 1, 20, 10, 5, 0)

		first, err := f.workflow.Submit(ctx, 1, submitRequest("annual", "2024-06-10", "2024-06-12"))
		require.NoError(t, err)
		second, err := f.workflow.Submit(ctx, 1, submitRequest("sick", "2024-06-12", "2024-06-13"))
		require.NoError(t, err)

		require.NoError(t, f.workflow.Approve(ctx, first, ""))

		assert.ErrorIs(t, f.workflow.Approve(ctx, second, ""), leave.ErrOverlappingLeave)

		request, err := f.requests.GetByID(ctx, second)
		require.NoError(t, err)
		assert.Equal(t, leave.LeaveRequestStatusPending, request.Status)

		balance, err := f.balances.GetByEmployeeID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 10, balance.Sick)
	})

	t.Run("concurrent approvals never overdraw the balance", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedBalance(t, 1, 9, 0, 0, 0)

		// Five 3-day requests in distinct weeks against 9 annual days: at
		// most three can ever be approved.
		ids := make([]string, 5)
		for i := range ids {
			start := date("2024-06-10").AddDate(0, 0, 7*i)
			end := start.AddDate(0, 0, 2)
			id, err := f.workflow.Submit(ctx, 1, submitRequest(
				"annual", start.Format("2006-01-02"), end.Format("2006-01-02")))
			require.NoError(t, err)
			ids[i] = id
		}

		var wg sync.WaitGroup
		errs := make([]error, len(ids))
		for i, id := range ids {
			wg.Add(1)
			go func(i int, id string) {
				defer wg.Done()
				errs[i] = f.workflow.Approve(ctx, id, "")
			}(i, id)
		}
		wg.Wait()

		approved := 0
		for _, err := range errs {
			if err == nil {
				approved++
			} else {
				assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
			}
		}
		assert.Equal(t, 3, approved)

		balance, err := f.balances.GetByEmployeeID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, balance.Annual)
	})
}

func TestWorkflow_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("finalizes the request and leaves the balance alone", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedBalance(t, 1, 20, 10, 5, 0)
		id, err := f.workflow.Submit(ctx, 1, submitRequest("annual", "2024-06-10", "2024-06-12"))
		require.NoError(t, err)

		before, err := f.balances.GetByEmployeeID(ctx, 1)
		require.NoError(t, err)

		require.NoError(t, f.workflow.Reject(ctx, id, "short staffed"))

		request, err := f.requests.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, leave.LeaveRequestStatusRejected, request.Status)
		require.NotNil(t, request.AdminRemark)
		assert.Equal(t, "short staffed", *request.AdminRemark)

		after, err := f.balances.GetByEmployeeID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("second decision fails", func(t *testing.T) {
		f := newWorkflowFixture(t)
		f.seedBalance(t, 1, 20, 10, 5, 0)
		id, err := f.workflow.Submit(ctx, 1, submitRequest("annual", "2024-06-10", "2024-06-12"))
		require.NoError(t, err)

		require.NoError(t, f.workflow.Reject(ctx, id, "no"))

		assert.ErrorIs(t, f.workflow.Reject(ctx, id, "still no"), leave.ErrAlreadyProcessed)
		assert.ErrorIs(t, f.workflow.Approve(ctx, id, "yes after all"), leave.ErrAlreadyProcessed)
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newWorkflowFixture(t)

		err := f.workflow.Reject(ctx, "req-404", "")
		assert.ErrorIs(t, err, leave.ErrRequestNotFound)
	})
}

func TestWorkflow_RejectedDaysStayAvailable(t *testing.T) {
	ctx := context.Background()
	f := newWorkflowFixture(t)
	f.seedBalance(t, 1, 20, 10, 3, 0)

	first, err := f.workflow.Submit(ctx, 1, submitRequest("casual", "2024-06-10", "2024-06-12"))
	require.NoError(t, err)
	require.NoError(t, f.workflow.Reject(ctx, first, "coverage"))

	// The full three days are still spendable on a later request.
	second, err := f.workflow.Submit(ctx, 1, submitRequest("casual", "2024-06-17", "2024-06-19"))
	require.NoError(t, err)
	require.NoError(t, f.workflow.Approve(ctx, second, ""))

	balance, err := f.balances.GetByEmployeeID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Casual)
}

func TestWorkflow_BalanceSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newWorkflowFixture(t)
	f.seedBalance(t, 1, 17, 10, 5, 0)

	snapshot, err := f.workflow.BalanceSnapshot(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snapshot.EmployeeID)
	assert.Equal(t, 17, snapshot.Annual)

	_, err = f.workflow.BalanceSnapshot(ctx, 99)
	assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
}

func TestWorkflow_ListByEmployee(t *testing.T) {
	ctx := context.Background()
	f := newWorkflowFixture(t)
	f.seedBalance(t, 1, 20, 10, 5, 0)
	f.seedBalance(t, 2, 20, 10, 5, 0)

	_, err := f.workflow.Submit(ctx, 1, submitRequest("annual", "2024-06-10", "2024-06-12"))
	require.NoError(t, err)
	_, err = f.workflow.Submit(ctx, 2, submitRequest("sick", "2024-06-10", "2024-06-12"))
	require.NoError(t, err)

	mine, err := f.workflow.ListByEmployee(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(1), mine[0].EmployeeID)
	assert.Equal(t, 3, mine[0].TotalDays)

	pending, err := f.workflow.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}
