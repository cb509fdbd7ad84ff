package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Email      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"type:varchar(255);not null" json:"-"`
	Role       string    `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	Department string    `gorm:"type:varchar(255);not null" json:"department"`
	CreatedAt  time.Time `json:"createdAt"`
}
