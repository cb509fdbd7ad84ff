package leave

// ApplyLeaveRequest carries a status field only so that a client-supplied
// value can be ignored: the created record is always Pending.
type ApplyLeaveRequest struct {
	LeaveType string `json:"leaveType" binding:"required,oneof=Annual Sick Personal Other"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
	Status    string `json:"status"`
}

type EmployeeInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type LeaveResponse struct {
	ID             string        `json:"id"`
	EmployeeID     string        `json:"employee"`
	EmployeeDetail *EmployeeInfo `json:"employeeDetail,omitempty"`
	LeaveType      string        `json:"leaveType"`
	StartDate      string        `json:"startDate"`
	EndDate        string        `json:"endDate"`
	Reason         string        `json:"reason"`
	Status         string        `json:"status"`
	CreatedAt      string        `json:"createdAt"`
}
