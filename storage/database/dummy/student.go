package dummydb

import (
	"context"

	"github.com/trezcool/elimu/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) GetAllStudents(context.Context) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	stds := make([]student.Student, 0, len(repo.db.table))
	for _, std := range repo.db.table {
		stds = append(stds, *std)
	}
	return stds, nil
}

func (repo *studentRepository) GetStudent(_ context.Context, rollNumber string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if std, ok := repo.db.table[rollNumber]; ok {
		return *std, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) SaveStudent(_ context.Context, std student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var current int64
	if orig, ok := repo.db.table[std.RollNumber]; ok {
		current = orig.Version
	}
	version, err := nextVersion(current, std.Version)
	if err == errNoDoc {
		return student.Student{}, student.ErrNotFound
	}
	if err != nil {
		return student.Student{}, err
	}
	std.Version = version
	repo.db.table[std.RollNumber] = &std
	return std, nil
}

func (repo *studentRepository) DeleteStudent(_ context.Context, rollNumber string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[rollNumber]; !ok {
		return student.ErrNotFound
	}
	delete(repo.db.table, rollNumber)
	return nil
}

func (repo *studentRepository) ReplaceAllStudents(_ context.Context, stds []student.Student) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table = make(map[string]*student.Student, len(stds))
	for i := range stds {
		std := stds[i]
		std.Version = 1
		repo.db.table[std.RollNumber] = &std
	}
	return nil
}
