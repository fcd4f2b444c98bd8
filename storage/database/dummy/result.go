package dummydb

import (
	"context"

	"github.com/trezcool/elimu/core/result"
)

type resultRepository struct {
	db *resultTable
}

var _ result.Repository = (*resultRepository)(nil) // interface compliance check

func NewResultRepository(db *DB) result.Repository {
	return &resultRepository{db: db.result}
}

func (repo *resultRepository) GetAllResults(context.Context) ([]result.StudentResult, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	ress := make([]result.StudentResult, 0, len(repo.db.table))
	for _, res := range repo.db.table {
		ress = append(ress, *res)
	}
	return ress, nil
}

func (repo *resultRepository) GetResult(_ context.Context, rollNumber string) (result.StudentResult, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if res, ok := repo.db.table[rollNumber]; ok {
		return *res, nil
	}
	return result.StudentResult{}, result.ErrNotFound
}

func (repo *resultRepository) SaveResult(_ context.Context, res result.StudentResult) (result.StudentResult, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var current int64
	if orig, ok := repo.db.table[res.RollNumber]; ok {
		current = orig.Version
	}
	version, err := nextVersion(current, res.Version)
	if err == errNoDoc {
		return result.StudentResult{}, result.ErrNotFound
	}
	if err != nil {
		return result.StudentResult{}, err
	}
	res.Version = version
	repo.db.table[res.RollNumber] = &res
	return res, nil
}

func (repo *resultRepository) DeleteResult(_ context.Context, rollNumber string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[rollNumber]; !ok {
		return result.ErrNotFound
	}
	delete(repo.db.table, rollNumber)
	return nil
}
