package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"hr-erp/internal/employee"
	leaveerrors "hr-erp/internal/leave/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, actorID string, req ApplyLeaveRequest) (LeaveResponse, error)
	ListPending(ctx context.Context) ([]LeaveResponse, error)
	Approve(ctx context.Context, id string) (LeaveResponse, error)
	Reject(ctx context.Context, id string) (LeaveResponse, error)
	History(ctx context.Context, actorID, role string) ([]LeaveResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Apply(ctx context.Context, actorID string, req ApplyLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("apply leave requested",
		zap.String("actor_id", actorID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// The record starts Pending no matter what status the client sent.
	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: employeeUUID,
		LeaveType:  req.LeaveType,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     req.Reason,
		Status:     StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("apply leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("apply leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", actorID),
	)

	return mapToResponse(*l), nil
}

func (s *service) ListPending(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindByStatus(ctx, StatusPending)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) Approve(ctx context.Context, id string) (LeaveResponse, error) {
	return s.transitionStatus(ctx, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, id string) (LeaveResponse, error) {
	return s.transitionStatus(ctx, id, StatusRejected)
}

// transitionStatus sets the target status unconditionally. There is no guard
// against re-transitioning an already-terminal request and no row lock, so
// concurrent calls race last-write-wins at the store.
func (s *service) transitionStatus(ctx context.Context, id, targetStatus string) (LeaveResponse, error) {
	s.logger.Debug("transition leave status requested",
		zap.String("leave_id", id),
		zap.String("target_status", targetStatus),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	if err := qtx.UpdateStatus(ctx, id, targetStatus); err != nil {
		s.logger.Error("transition leave status persist failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("transition leave status commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	l.Status = targetStatus
	s.logger.Info("transition leave status success",
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*l), nil
}

func (s *service) History(ctx context.Context, actorID, role string) ([]LeaveResponse, error) {
	if role == employee.RoleAdmin {
		leaves, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		return mapToListResponse(leaves), nil
	}

	leaves, err := s.repo.FindAllByEmployee(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID.String(),
		EmployeeID: l.EmployeeID.String(),
		LeaveType:  l.LeaveType,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		Reason:     l.Reason,
		Status:     l.Status,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.EmployeeDetail = &EmployeeInfo{
			ID:         l.Employee.ID.String(),
			Name:       l.Employee.Name,
			Email:      l.Employee.Email,
			Department: l.Employee.Department,
		}
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
