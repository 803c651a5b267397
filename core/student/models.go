package student

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradebook/core"
)

type (
	Student struct {
		ID        int    `json:"sid"`
		FirstName string `json:"firstname"`
		LastName  string `json:"lastname"`
		Phone     string `json:"phone"`
	}

	// Repository is the remote store of students.
	Repository interface {
		QueryAllStudents(ctx context.Context) ([]Student, error)
		CreateStudent(ctx context.Context, ns NewStudent) (Student, error)
		UpdateStudent(ctx context.Context, us UpdateStudent) (Student, error)
	}
)

func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// Matches reports whether the first name, last name or ID of `s` contains `query`.
// `query` must already be lowered.
func (s Student) Matches(query string) bool {
	return strings.Contains(strings.ToLower(s.FirstName), query) ||
		strings.Contains(strings.ToLower(s.LastName), query) ||
		strings.Contains(strconv.Itoa(s.ID), query)
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone" validate:"required,phone"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Phone = core.CleanString(ns.Phone)
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
type UpdateStudent struct {
	ID        int    `json:"student_id" validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone" validate:"required,phone"`
}

// NewUpdateStudent returns an UpdateStudent prefilled with the current values of `s`.
func NewUpdateStudent(s Student) UpdateStudent {
	return UpdateStudent{
		ID:        s.ID,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		Phone:     s.Phone,
	}
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.FirstName = core.CleanString(us.FirstName)
	us.LastName = core.CleanString(us.LastName)
	us.Phone = core.CleanString(us.Phone)
	return validate.Struct(us)
}
