package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/fee"
)

const feesTable = "fees"

type feeRepository struct {
	db *DB
}

var _ fee.Repository = (*feeRepository)(nil)

func NewFeeRepository(db *DB) fee.Repository {
	return &feeRepository{db: db}
}

func (r *feeRepository) GetAllFees(ctx context.Context) ([]fee.Fee, error) {
	docs, err := r.db.getAllDocs(ctx, feesTable)
	if err != nil {
		return nil, err
	}
	fees := make([]fee.Fee, 0, len(docs))
	for _, doc := range docs {
		var f fee.Fee
		if err = json.Unmarshal(doc.Doc, &f); err != nil {
			return nil, errors.Wrap(err, "decoding fee "+doc.Key)
		}
		f.Version = doc.Version
		fees = append(fees, f)
	}
	return fees, nil
}

func (r *feeRepository) GetFee(ctx context.Context, id string) (fee.Fee, error) {
	doc, err := r.db.getDoc(ctx, feesTable, id)
	if err == sql.ErrNoRows {
		return fee.Fee{}, fee.ErrNotFound
	}
	if err != nil {
		return fee.Fee{}, err
	}
	var f fee.Fee
	if err = json.Unmarshal(doc.Doc, &f); err != nil {
		return fee.Fee{}, errors.Wrap(err, "decoding fee "+id)
	}
	f.Version = doc.Version
	return f, nil
}

func (r *feeRepository) SaveFee(ctx context.Context, f fee.Fee) (fee.Fee, error) {
	doc, err := json.Marshal(f)
	if err != nil {
		return fee.Fee{}, errors.Wrap(err, "encoding fee")
	}
	version, err := r.db.saveDoc(ctx, feesTable, f.ID, doc, f.Version)
	if err == sql.ErrNoRows {
		return fee.Fee{}, fee.ErrNotFound
	}
	if err != nil {
		return fee.Fee{}, err
	}
	f.Version = version
	return f, nil
}

func (r *feeRepository) DeleteFee(ctx context.Context, id string) error {
	if err := r.db.deleteDoc(ctx, feesTable, id); err != nil {
		if err == sql.ErrNoRows {
			return fee.ErrNotFound
		}
		return err
	}
	return nil
}
