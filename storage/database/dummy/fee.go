package dummydb

import (
	"context"

	"github.com/trezcool/elimu/core/fee"
)

type feeRepository struct {
	db *feeTable
}

var _ fee.Repository = (*feeRepository)(nil) // interface compliance check

func NewFeeRepository(db *DB) fee.Repository {
	return &feeRepository{db: db.fee}
}

func (repo *feeRepository) GetAllFees(context.Context) ([]fee.Fee, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	fees := make([]fee.Fee, 0, len(repo.db.table))
	for _, f := range repo.db.table {
		fees = append(fees, *f)
	}
	return fees, nil
}

func (repo *feeRepository) GetFee(_ context.Context, id string) (fee.Fee, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if f, ok := repo.db.table[id]; ok {
		return *f, nil
	}
	return fee.Fee{}, fee.ErrNotFound
}

func (repo *feeRepository) SaveFee(_ context.Context, f fee.Fee) (fee.Fee, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var current int64
	if orig, ok := repo.db.table[f.ID]; ok {
		current = orig.Version
	}
	version, err := nextVersion(current, f.Version)
	if err == errNoDoc {
		return fee.Fee{}, fee.ErrNotFound
	}
	if err != nil {
		return fee.Fee{}, err
	}
	f.Version = version
	repo.db.table[f.ID] = &f
	return f, nil
}

func (repo *feeRepository) DeleteFee(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return fee.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
