package grade

import (
	"context"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gradebook/core"
)

// Grade is a letter grade.
type Grade string

const (
	A Grade = "A"
	B Grade = "B"
	C Grade = "C"
	D Grade = "D"
	F Grade = "F"
)

var Grades = []Grade{A, B, C, D, F}

func (g Grade) Valid() bool {
	for _, grd := range Grades {
		if g == grd {
			return true
		}
	}
	return false
}

var (
	gradeTag  = "grade"
	gradeText = "grade must be one of A, B, C, D or F"
)

// InitValidators registers the grade validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(gradeTag, gradeValidation)
	core.RegisterCustomTranslation(validate, translator, gradeTag, gradeText)
}

func gradeValidation(fl validator.FieldLevel) bool {
	return Grade(fl.Field().String()).Valid()
}

type (
	// Lesson is a student's grade in a course.
	Lesson struct {
		ID         int    `json:"gradeid"`
		Grade      Grade  `json:"grade"`
		CourseName string `json:"coursename"`
	}

	// Repository is the remote store of grades.
	Repository interface {
		QueryLessons(ctx context.Context, studentID int) ([]Lesson, error)
		UpdateGrade(ctx context.Context, upd Update) (Update, error)
	}
)

// Update sets the grade of a Lesson.
type Update struct {
	GradeID int   `json:"grade_id" validate:"required"`
	Grade   Grade `json:"grade" validate:"required,grade"`
}

func (u *Update) Validate(validate *validator.Validate) error {
	u.Grade = Grade(strings.ToUpper(core.CleanString(string(u.Grade))))
	return validate.Struct(u)
}

// Apply sets the confirmed grade on the matching lesson of `lessons`, in place.
// Returns false if no lesson matches.
func Apply(lessons []Lesson, upd Update) bool {
	for i := range lessons {
		if lessons[i].ID == upd.GradeID {
			lessons[i].Grade = upd.Grade
			return true
		}
	}
	return false
}
