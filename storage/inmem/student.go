package inmemdb

import (
	"context"

	"github.com/trezcool/gradebook/core/student"
)

type studentRepository struct {
	db *studentTable
}

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	students := make([]student.Student, len(repo.db.rows))
	copy(students, repo.db.rows)
	return students, nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, ns student.NewStudent) (student.Student, error) {
	if err := ctx.Err(); err != nil {
		return student.Student{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pkCount++
	s := student.Student{
		ID:        repo.db.pkCount,
		FirstName: ns.FirstName,
		LastName:  ns.LastName,
		Phone:     ns.Phone,
	}
	repo.db.rows = append(repo.db.rows, s)
	return s, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, us student.UpdateStudent) (student.Student, error) {
	if err := ctx.Err(); err != nil {
		return student.Student{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for i := range repo.db.rows {
		if repo.db.rows[i].ID == us.ID {
			repo.db.rows[i].FirstName = us.FirstName
			repo.db.rows[i].LastName = us.LastName
			repo.db.rows[i].Phone = us.Phone
			return repo.db.rows[i], nil
		}
	}
	return student.Student{}, ErrStudentNotFound
}
