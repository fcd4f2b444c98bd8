package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/admission"
)

const admissionsTable = "admissions"

type admissionRepository struct {
	db *DB
}

var _ admission.Repository = (*admissionRepository)(nil)

func NewAdmissionRepository(db *DB) admission.Repository {
	return &admissionRepository{db: db}
}

func (r *admissionRepository) GetAllAdmissions(ctx context.Context) ([]admission.Admission, error) {
	docs, err := r.db.getAllDocs(ctx, admissionsTable)
	if err != nil {
		return nil, err
	}
	adms := make([]admission.Admission, 0, len(docs))
	for _, doc := range docs {
		var adm admission.Admission
		if err = json.Unmarshal(doc.Doc, &adm); err != nil {
			return nil, errors.Wrap(err, "decoding admission "+doc.Key)
		}
		adm.Version = doc.Version
		adms = append(adms, adm)
	}
	return adms, nil
}

func (r *admissionRepository) GetAdmission(ctx context.Context, id string) (admission.Admission, error) {
	doc, err := r.db.getDoc(ctx, admissionsTable, id)
	if err == sql.ErrNoRows {
		return admission.Admission{}, admission.ErrNotFound
	}
	if err != nil {
		return admission.Admission{}, err
	}
	var adm admission.Admission
	if err = json.Unmarshal(doc.Doc, &adm); err != nil {
		return admission.Admission{}, errors.Wrap(err, "decoding admission "+id)
	}
	adm.Version = doc.Version
	return adm, nil
}

func (r *admissionRepository) SaveAdmission(ctx context.Context, adm admission.Admission) (admission.Admission, error) {
	doc, err := json.Marshal(adm)
	if err != nil {
		return admission.Admission{}, errors.Wrap(err, "encoding admission")
	}
	version, err := r.db.saveDoc(ctx, admissionsTable, adm.ID, doc, adm.Version)
	if err == sql.ErrNoRows {
		return admission.Admission{}, admission.ErrNotFound
	}
	if err != nil {
		return admission.Admission{}, err
	}
	adm.Version = version
	return adm, nil
}

func (r *admissionRepository) DeleteAdmission(ctx context.Context, id string) error {
	if err := r.db.deleteDoc(ctx, admissionsTable, id); err != nil {
		if err == sql.ErrNoRows {
			return admission.ErrNotFound
		}
		return err
	}
	return nil
}
