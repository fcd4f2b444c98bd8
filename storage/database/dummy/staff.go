package dummydb

import (
	"context"

	"github.com/trezcool/elimu/core/staff"
)

type staffRepository struct {
	db *staffTable
}

var _ staff.Repository = (*staffRepository)(nil) // interface compliance check

func NewStaffRepository(db *DB) staff.Repository {
	return &staffRepository{db: db.staff}
}

func (repo *staffRepository) GetAllStaff(context.Context) ([]staff.Staff, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	accs := make([]staff.Staff, 0, len(repo.db.table))
	for _, acc := range repo.db.table {
		accs = append(accs, *acc)
	}
	return accs, nil
}

func (repo *staffRepository) GetStaff(_ context.Context, id string) (staff.Staff, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if acc, ok := repo.db.table[id]; ok {
		return *acc, nil
	}
	return staff.Staff{}, staff.ErrNotFound
}

func (repo *staffRepository) GetStaffByUsername(_ context.Context, username string) (staff.Staff, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, acc := range repo.db.table {
		if acc.Username == username {
			return *acc, nil
		}
	}
	return staff.Staff{}, staff.ErrNotFound
}

func (repo *staffRepository) GetStaffByEmail(_ context.Context, email string) (staff.Staff, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, acc := range repo.db.table {
		if acc.Email == email {
			return *acc, nil
		}
	}
	return staff.Staff{}, staff.ErrNotFound
}

func (repo *staffRepository) SaveStaff(_ context.Context, acc staff.Staff) (staff.Staff, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var current int64
	if orig, ok := repo.db.table[acc.ID]; ok {
		current = orig.Version
	}
	version, err := nextVersion(current, acc.Version)
	if err == errNoDoc {
		return staff.Staff{}, staff.ErrNotFound
	}
	if err != nil {
		return staff.Staff{}, err
	}
	acc.Version = version
	repo.db.table[acc.ID] = &acc
	return acc, nil
}

func (repo *staffRepository) DeleteStaff(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return staff.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
