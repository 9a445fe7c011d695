package models

import "time"

// Teacher represents a registered teacher account.
type Teacher struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Cluster      string    `db:"cluster" json:"cluster"`
	EmployeeID   string    `db:"employee_id" json:"employeeId"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// TeacherProfile is the public view of a teacher; it has no password field at all.
type TeacherProfile struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Cluster    string     `json:"cluster"`
	EmployeeID string     `json:"employeeId"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

// Profile strips credentials from the teacher record.
func (t Teacher) Profile() TeacherProfile {
	p := TeacherProfile{
		ID:         t.ID,
		Name:       t.Name,
		Email:      t.Email,
		Cluster:    t.Cluster,
		EmployeeID: t.EmployeeID,
	}
	if !t.CreatedAt.IsZero() {
		created := t.CreatedAt
		p.CreatedAt = &created
	}
	return p
}

// LoginRequest holds teacher credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest holds the fields needed to create a teacher account.
type RegisterRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	Cluster    string `json:"cluster" validate:"required"`
	EmployeeID string `json:"employeeId" validate:"required"`
}
