package inmemdb

import (
	"context"

	"github.com/trezcool/gradebook/core/attendance"
)

type attendanceRepository struct {
	db *attendanceTable
}

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.attendance}
}

func (repo *attendanceRepository) QueryRecords(ctx context.Context, studentID int) ([]attendance.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	records := make([]attendance.Record, len(repo.db.rows[studentID]))
	copy(records, repo.db.rows[studentID])
	return records, nil
}

func (repo *attendanceRepository) UpdateStatus(ctx context.Context, upd attendance.StatusUpdate) (attendance.StatusUpdate, error) {
	if err := ctx.Err(); err != nil {
		return attendance.StatusUpdate{}, err
	}
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, records := range repo.db.rows {
		if attendance.Apply(records, upd) {
			return upd, nil
		}
	}
	return attendance.StatusUpdate{}, ErrRecordNotFound
}
