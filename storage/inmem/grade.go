package inmemdb

import (
	"context"

	"github.com/trezcool/gradebook/core/grade"
)

type gradeRepository struct {
	db *gradeTable
}

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db.grade}
}

func (repo *gradeRepository) QueryLessons(ctx context.Context, studentID int) ([]grade.Lesson, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	lessons := make([]grade.Lesson, len(repo.db.rows[studentID]))
	copy(lessons, repo.db.rows[studentID])
	return lessons, nil
}

func (repo *gradeRepository) UpdateGrade(ctx context.Context, upd grade.Update) (grade.Update, error) {
	if err := ctx.Err(); err != nil {
		return grade.Update{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, lessons := range repo.db.rows {
		if grade.Apply(lessons, upd) {
			return upd, nil
		}
	}
	return grade.Update{}, ErrGradeNotFound
}
