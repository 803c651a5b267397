package inmemdb_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gradebook/core/attendance"
	"github.com/trezcool/gradebook/core/console"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
	"github.com/trezcool/gradebook/storage/inmem"
)

func TestStudentRepository(t *testing.T) {
	ctx := context.Background()
	db := inmemdb.Open()
	db.InsertStudent(student.Student{ID: 7, FirstName: "Amani", LastName: "Kabila", Phone: "1234567"})
	repo := inmemdb.NewStudentRepository(db)

	s, err := repo.CreateStudent(ctx, student.NewStudent{FirstName: "Grace", LastName: "Mbuyi", Phone: "7654321"})
	require.NoError(t, err)
	assert.Equal(t, 8, s.ID, "IDs continue after the highest inserted one")

	s, err = repo.UpdateStudent(ctx, student.UpdateStudent{ID: 7, FirstName: "Amani", LastName: "K.", Phone: "1234567"})
	require.NoError(t, err)
	assert.Equal(t, "K.", s.LastName)

	_, err = repo.UpdateStudent(ctx, student.UpdateStudent{ID: 99})
	assert.Equal(t, inmemdb.ErrStudentNotFound, err)

	all, err := repo.QueryAllStudents(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	all[0].FirstName = "changed"
	all, _ = repo.QueryAllStudents(ctx)
	assert.Equal(t, "Amani", all[0].FirstName)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = repo.QueryAllStudents(cancelled)
	assert.Equal(t, context.Canceled, err)
}

func TestGradeAndAttendanceRepositories(t *testing.T) {
	ctx := context.Background()
	db := inmemdb.Open()
	inmemdb.Seed(db)
	grades := inmemdb.NewGradeRepository(db)
	records := inmemdb.NewAttendanceRepository(db)

	lessons, err := grades.QueryLessons(ctx, 2)
	require.NoError(t, err)
	require.Len(t, lessons, 3)

	_, err = grades.UpdateGrade(ctx, grade.Update{GradeID: lessons[2].ID, Grade: grade.A})
	require.NoError(t, err)
	lessons, _ = grades.QueryLessons(ctx, 2)
	assert.Equal(t, grade.A, lessons[2].Grade)

	_, err = grades.UpdateGrade(ctx, grade.Update{GradeID: 999, Grade: grade.A})
	assert.Equal(t, inmemdb.ErrGradeNotFound, err)

	none, err := grades.QueryLessons(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, none)

	recs, err := records.QueryRecords(ctx, 4)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	_, err = records.UpdateStatus(ctx, attendance.StatusUpdate{AttendanceID: recs[0].ID, Status: attendance.Absent})
	require.NoError(t, err)
	recs, _ = records.QueryRecords(ctx, 4)
	assert.Equal(t, attendance.Absent, recs[0].Status)

	_, err = records.UpdateStatus(ctx, attendance.StatusUpdate{AttendanceID: 999, Status: attendance.Late})
	assert.Equal(t, inmemdb.ErrRecordNotFound, err)
}

func TestWorkspaceStore(t *testing.T) {
	db := inmemdb.Open()
	store := inmemdb.NewWorkspaceStore(console.Deps{Students: inmemdb.NewStudentRepository(db)})

	id, ws := store.Create()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	got, ok := store.Get(id)
	require.True(t, ok)
	assert.Same(t, ws, got)

	_, ok = store.Get("unknown")
	assert.False(t, ok)

	id2, _ := store.Create()
	assert.NotEqual(t, id, id2)
	assert.Equal(t, 2, store.Len())

	assert.Equal(t, 0, store.Prune(time.Hour))
	time.Sleep(30 * time.Millisecond)
	ws.Touch()
	assert.Equal(t, 1, store.Prune(15*time.Millisecond))
	_, ok = store.Get(id)
	assert.True(t, ok)
	_, ok = store.Get(id2)
	assert.False(t, ok)
}
