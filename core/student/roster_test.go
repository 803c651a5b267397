package student_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/student"
)

var students = []student.Student{
	{ID: 3, FirstName: "Amani", LastName: "Kabila", Phone: "243810000001"},
	{ID: 14, FirstName: "Grace", LastName: "Mbuyi", Phone: "243810000002"},
	{ID: 7, FirstName: "Joel", LastName: "Grace", Phone: "243810000003"},
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "blank", query: "", want: []int{3, 14, 7}},
		{name: "whitespace", query: " \t ", want: []int{3, 14, 7}},
		{name: "first or last name, keeps order", query: "grace", want: []int{14, 7}},
		{name: "case insensitive", query: "KaBi", want: []int{3}},
		{name: "surrounding spaces are matched", query: "grace ", want: []int{}},
		{name: "leading space", query: " kabi", want: []int{}},
		{name: "identifier", query: "14", want: []int{14}},
		{name: "identifier substring", query: "4", want: []int{14}},
		{name: "phone is not searched", query: "2438", want: []int{}},
		{name: "no match", query: "zzz", want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := student.Filter(students, tt.query)
			ids := make([]int, 0, len(got))
			for _, s := range got {
				ids = append(ids, s.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestRoster(t *testing.T) {
	var r student.Roster
	assert.False(t, r.Loaded())

	r.Set(students)
	assert.True(t, r.Loaded())
	assert.Equal(t, 3, r.Len())

	t.Run("Add appends", func(t *testing.T) {
		assert.True(t, r.Add(student.Student{ID: 20, FirstName: "Ruth", LastName: "Ilunga"}))
		assert.Equal(t, 4, r.Len())
		s, ok := r.Get(20)
		require.True(t, ok)
		assert.Equal(t, "Ruth", s.FirstName)
	})

	t.Run("Add twice keeps one entry", func(t *testing.T) {
		assert.False(t, r.Add(student.Student{ID: 20, FirstName: "Ruthie", LastName: "Ilunga"}))
		assert.Equal(t, 4, r.Len())
		s, _ := r.Get(20)
		assert.Equal(t, "Ruthie", s.FirstName)
	})

	t.Run("Replace in place", func(t *testing.T) {
		assert.True(t, r.Replace(student.Student{ID: 14, FirstName: "Gracia", LastName: "Mbuyi"}))
		all := r.All()
		require.Len(t, all, 4)
		assert.Equal(t, "Gracia", all[1].FirstName)
	})

	t.Run("Replace unknown", func(t *testing.T) {
		assert.False(t, r.Replace(student.Student{ID: 99}))
		assert.Equal(t, 4, r.Len())
	})

	t.Run("All is a copy", func(t *testing.T) {
		all := r.All()
		all[0].FirstName = "changed"
		s, _ := r.Get(3)
		assert.Equal(t, "Amani", s.FirstName)
	})

	t.Run("Set copies its input", func(t *testing.T) {
		in := []student.Student{{ID: 1, FirstName: "A"}}
		var r2 student.Roster
		r2.Set(in)
		in[0].FirstName = "B"
		s, _ := r2.Get(1)
		assert.Equal(t, "A", s.FirstName)
	})
}

func TestNewStudent_Validate(t *testing.T) {
	validate, translator := core.NewValidator()

	tests := []struct {
		name    string
		ns      student.NewStudent
		wantErr map[string]string
	}{
		{name: "valid", ns: student.NewStudent{FirstName: " Amani ", LastName: "Kabila", Phone: "1234567"}},
		{
			name:    "blank names",
			ns:      student.NewStudent{FirstName: "  ", LastName: "", Phone: "123456789012345"},
			wantErr: map[string]string{"first_name": "this field is required", "last_name": "this field is required"},
		},
		{
			name:    "letters in phone",
			ns:      student.NewStudent{FirstName: "A", LastName: "B", Phone: "abc"},
			wantErr: map[string]string{"phone": "enter a valid phone number (7-15 digits)"},
		},
		{
			name:    "phone too short",
			ns:      student.NewStudent{FirstName: "A", LastName: "B", Phone: "123456"},
			wantErr: map[string]string{"phone": "enter a valid phone number (7-15 digits)"},
		},
		{
			name:    "phone too long",
			ns:      student.NewStudent{FirstName: "A", LastName: "B", Phone: "1234567890123456"},
			wantErr: map[string]string{"phone": "enter a valid phone number (7-15 digits)"},
		},
		{
			name:    "missing phone",
			ns:      student.NewStudent{FirstName: "A", LastName: "B"},
			wantErr: map[string]string{"phone": "this field is required"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := core.TranslateValidationErrors(tt.ns.Validate(validate), translator)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			vErr, ok := err.(*core.ValidationError)
			require.True(t, ok, "got %T", err)
			assert.Equal(t, tt.wantErr, vErr.FieldMap())
		})
	}

	t.Run("cleans fields", func(t *testing.T) {
		ns := student.NewStudent{FirstName: "  Amani ", LastName: " Kabila", Phone: " 1234567 "}
		require.NoError(t, ns.Validate(validate))
		assert.Equal(t, student.NewStudent{FirstName: "Amani", LastName: "Kabila", Phone: "1234567"}, ns)
	})
}

func TestUpdateStudent_Validate(t *testing.T) {
	validate, translator := core.NewValidator()
	s := student.Student{ID: 4, FirstName: "Ruth", LastName: "Ilunga", Phone: "243810000004"}

	us := student.NewUpdateStudent(s)
	require.NoError(t, us.Validate(validate))

	us.Phone = "12-34"
	err := core.TranslateValidationErrors(us.Validate(validate), translator)
	vErr, ok := err.(*core.ValidationError)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"phone": "enter a valid phone number (7-15 digits)"}, vErr.FieldMap())
	assert.Equal(t, "phone: enter a valid phone number (7-15 digits)", err.Error())
}

func TestStudent_FullName(t *testing.T) {
	assert.Equal(t, "Amani Kabila", students[0].FullName())
	assert.Equal(t, "Amani", student.Student{FirstName: "Amani"}.FullName())
}
