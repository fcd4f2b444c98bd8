package dummydb

import (
	"context"

	"github.com/trezcool/elimu/core/admission"
)

type admissionRepository struct {
	db *admissionTable
}

var _ admission.Repository = (*admissionRepository)(nil) // interface compliance check

func NewAdmissionRepository(db *DB) admission.Repository {
	return &admissionRepository{db: db.admission}
}

func (repo *admissionRepository) GetAllAdmissions(context.Context) ([]admission.Admission, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	adms := make([]admission.Admission, 0, len(repo.db.table))
	for _, adm := range repo.db.table {
		adms = append(adms, *adm)
	}
	return adms, nil
}

func (repo *admissionRepository) GetAdmission(_ context.Context, id string) (admission.Admission, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if adm, ok := repo.db.table[id]; ok {
		return *adm, nil
	}
	return admission.Admission{}, admission.ErrNotFound
}

func (repo *admissionRepository) SaveAdmission(_ context.Context, adm admission.Admission) (admission.Admission, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var current int64
	if orig, ok := repo.db.table[adm.ID]; ok {
		current = orig.Version
	}
	version, err := nextVersion(current, adm.Version)
	if err == errNoDoc {
		return admission.Admission{}, admission.ErrNotFound
	}
	if err != nil {
		return admission.Admission{}, err
	}
	adm.Version = version
	repo.db.table[adm.ID] = &adm
	return adm, nil
}

func (repo *admissionRepository) DeleteAdmission(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return admission.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
