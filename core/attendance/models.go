package attendance

import (
	"context"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradebook/core"
)

type Status string

const (
	Absent  Status = "Absent"
	Late    Status = "Late"
	Present Status = "Present"
)

var Statuses = []Status{Absent, Late, Present}

func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

var (
	statusTag  = "attstatus"
	statusText = "status must be one of Absent, Late or Present"
)

// InitValidators registers the attendance validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(validate, translator, statusTag, statusText)
}

func statusValidation(fl validator.FieldLevel) bool {
	return Status(fl.Field().String()).Valid()
}

type (
	Record struct {
		ID         int    `json:"attendanceid"`
		Date       string `json:"attendancedate"` // ISO date
		Status     Status `json:"status"`
		CourseName string `json:"coursename"`
		Weekday    string `json:"weekday"`
		RoomNumber string `json:"roomnumber"`
	}

	// Repository is the remote store of attendance records.
	Repository interface {
		QueryRecords(ctx context.Context, studentID int) ([]Record, error)
		UpdateStatus(ctx context.Context, upd StatusUpdate) (StatusUpdate, error)
	}
)

// StatusUpdate sets the status of a Record.
type StatusUpdate struct {
	AttendanceID int    `json:"attendance_id" validate:"required"`
	Status       Status `json:"status" validate:"required,attstatus"`
}

func (u *StatusUpdate) Validate(validate *validator.Validate) error {
	u.Status = Status(core.CleanString(string(u.Status)))
	for _, st := range Statuses {
		if strings.EqualFold(string(u.Status), string(st)) {
			u.Status = st
		}
	}
	return validate.Struct(u)
}

// Apply sets the confirmed status on the matching record of `records`, in place.
// Returns false if no record matches.
func Apply(records []Record, upd StatusUpdate) bool {
	for i := range records {
		if records[i].ID == upd.AttendanceID {
			records[i].Status = upd.Status
			return true
		}
	}
	return false
}
