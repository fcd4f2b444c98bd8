package dummydb

import (
	"context"

	"github.com/trezcool/elimu/core/teacher"
)

type teacherRepository struct {
	db *teacherTable
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{db: db.teacher}
}

func (repo *teacherRepository) GetAllTeachers(context.Context) ([]teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	tchs := make([]teacher.Teacher, 0, len(repo.db.table))
	for _, tch := range repo.db.table {
		tchs = append(tchs, *tch)
	}
	return tchs, nil
}

func (repo *teacherRepository) GetTeacher(_ context.Context, id string) (teacher.Teacher, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if tch, ok := repo.db.table[id]; ok {
		return *tch, nil
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) SaveTeacher(_ context.Context, tch teacher.Teacher) (teacher.Teacher, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var current int64
	if orig, ok := repo.db.table[tch.ID]; ok {
		current = orig.Version
	}
	version, err := nextVersion(current, tch.Version)
	if err == errNoDoc {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	if err != nil {
		return teacher.Teacher{}, err
	}
	tch.Version = version
	repo.db.table[tch.ID] = &tch
	return tch, nil
}

func (repo *teacherRepository) DeleteTeacher(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return teacher.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}

func (repo *teacherRepository) ReplaceAllTeachers(_ context.Context, tchs []teacher.Teacher) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table = make(map[string]*teacher.Teacher, len(tchs))
	for i := range tchs {
		tch := tchs[i]
		tch.Version = 1
		repo.db.table[tch.ID] = &tch
	}
	return nil
}
