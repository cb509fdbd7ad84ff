package leave_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hr-erp/internal/leave"
	leaveerrors "hr-erp/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiEnvelope struct {
	Success bool            `json:"success"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	applyFn       func(ctx context.Context, actorID string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error)
	listPendingFn func(ctx context.Context) ([]leave.LeaveResponse, error)
	approveFn     func(ctx context.Context, id string) (leave.LeaveResponse, error)
	rejectFn      func(ctx context.Context, id string) (leave.LeaveResponse, error)
	historyFn     func(ctx context.Context, actorID, role string) ([]leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Apply(ctx context.Context, actorID string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	return f.applyFn(ctx, actorID, req)
}
func (f *fakeLeaveService) ListPending(ctx context.Context) ([]leave.LeaveResponse, error) {
	return f.listPendingFn(ctx)
}
func (f *fakeLeaveService) Approve(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.approveFn(ctx, id)
}
func (f *fakeLeaveService) Reject(ctx context.Context, id string) (leave.LeaveResponse, error) {
	return f.rejectFn(ctx, id)
}
func (f *fakeLeaveService) History(ctx context.Context, actorID, role string) ([]leave.LeaveResponse, error) {
	return f.historyFn(ctx, actorID, role)
}

func TestLeaveHandler_Apply(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success returns 201 with pending record", func(t *testing.T) {
		actorID := uuid.New().String()

		svc := &fakeLeaveService{
			applyFn: func(ctx context.Context, aid string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, "Annual", req.LeaveType)
				return leave.LeaveResponse{
					ID:         uuid.New().String(),
					EmployeeID: aid,
					LeaveType:  req.LeaveType,
					StartDate:  req.StartDate,
					EndDate:    req.EndDate,
					Reason:     req.Reason,
					Status:     leave.StatusPending,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leaveType":"Annual","startDate":"2023-12-20","endDate":"2023-12-25","reason":"Family vacation"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/apply", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", actorID)

		h.Apply(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Success)
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, leave.StatusPending, got.Status)
		assert.Equal(t, actorID, got.EmployeeID)
	})

	t.Run("Medical is rejected by input validation", func(t *testing.T) {
		svc := &fakeLeaveService{
			applyFn: func(ctx context.Context, aid string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
				t.Fatal("service must not be reached")
				return leave.LeaveResponse{}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leaveType":"Medical","startDate":"2023-12-20","endDate":"2023-12-25","reason":"Surgery"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/apply", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", uuid.New().String())

		h.Apply(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Success)
		assert.NotEmpty(t, env.Error)
	})

	t.Run("missing reason is rejected", func(t *testing.T) {
		svc := &fakeLeaveService{
			applyFn: func(ctx context.Context, aid string, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
				t.Fatal("service must not be reached")
				return leave.LeaveResponse{}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"leaveType":"Annual","startDate":"2023-12-20","endDate":"2023-12-25"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leaves/apply", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", uuid.New().String())

		h.Apply(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_Pending(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeLeaveService{
		listPendingFn: func(ctx context.Context) ([]leave.LeaveResponse, error) {
			return []leave.LeaveResponse{
				{ID: uuid.New().String(), Status: leave.StatusPending},
				{ID: uuid.New().String(), Status: leave.StatusPending},
			}, nil
		},
	}

	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/leaves/pending", nil)

	h.Pending(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Success)
	assert.NotNil(t, env.Count)
	assert.Equal(t, 2, *env.Count)
}

func TestLeaveHandler_Transitions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("approve missing request returns 404 envelope", func(t *testing.T) {
		svc := &fakeLeaveService{
			approveFn: func(ctx context.Context, id string) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveNotFound
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/abc/approve", nil)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}

		h.Approve(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Success)
		assert.Equal(t, "Leave request not found", env.Error)
	})

	t.Run("reject returns updated record", func(t *testing.T) {
		id := uuid.New().String()
		svc := &fakeLeaveService{
			rejectFn: func(ctx context.Context, got string) (leave.LeaveResponse, error) {
				assert.Equal(t, id, got)
				return leave.LeaveResponse{ID: got, Status: leave.StatusRejected}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPatch, "/leaves/"+id+"/reject", nil)
		c.Params = gin.Params{{Key: "id", Value: id}}

		h.Reject(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, leave.StatusRejected, got.Status)
	})
}

func TestLeaveHandler_History(t *testing.T) {
	gin.SetMode(gin.TestMode)

	actorID := uuid.New().String()
	svc := &fakeLeaveService{
		historyFn: func(ctx context.Context, aid, role string) ([]leave.LeaveResponse, error) {
			assert.Equal(t, actorID, aid)
			assert.Equal(t, "employee", role)
			return []leave.LeaveResponse{{ID: uuid.New().String(), EmployeeID: aid}}, nil
		},
	}

	h := leave.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/leaves/history", nil)
	c.Set("employee_id", actorID)
	c.Set("role", "employee")

	h.History(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Success)
	assert.Equal(t, 1, *env.Count)
}
