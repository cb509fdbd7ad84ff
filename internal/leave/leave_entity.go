package leave

import (
	"time"

	"hr-erp/internal/employee"

	"github.com/google/uuid"
)

// LeaveRequest tracks one time-off application through the
// Pending -> Approved/Rejected lifecycle. The column check deliberately
// permits 'Medical' even though the write path does not accept it; the two
// sets have always differed and reconciling them is a product decision.
type LeaveRequest struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID          `gorm:"type:uuid;not null;index:idx_leave_requests_employee"`
	Employee   *employee.Employee `gorm:"foreignKey:EmployeeID"`

	LeaveType string    `gorm:"type:varchar(20);not null;check:leave_type IN ('Annual','Sick','Medical','Personal','Other')"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Reason    string    `gorm:"type:text;not null"`

	Status string `gorm:"type:varchar(20);not null;default:'Pending';index:idx_leave_requests_status"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
