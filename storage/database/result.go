package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/result"
)

const resultsTable = "results"

type resultRepository struct {
	db *DB
}

var _ result.Repository = (*resultRepository)(nil)

func NewResultRepository(db *DB) result.Repository {
	return &resultRepository{db: db}
}

func (r *resultRepository) GetAllResults(ctx context.Context) ([]result.StudentResult, error) {
	docs, err := r.db.getAllDocs(ctx, resultsTable)
	if err != nil {
		return nil, err
	}
	ress := make([]result.StudentResult, 0, len(docs))
	for _, doc := range docs {
		var res result.StudentResult
		if err = json.Unmarshal(doc.Doc, &res); err != nil {
			return nil, errors.Wrap(err, "decoding result "+doc.Key)
		}
		res.Version = doc.Version
		ress = append(ress, res)
	}
	return ress, nil
}

func (r *resultRepository) GetResult(ctx context.Context, rollNumber string) (result.StudentResult, error) {
	doc, err := r.db.getDoc(ctx, resultsTable, rollNumber)
	if err == sql.ErrNoRows {
		return result.StudentResult{}, result.ErrNotFound
	}
	if err != nil {
		return result.StudentResult{}, err
	}
	var res result.StudentResult
	if err = json.Unmarshal(doc.Doc, &res); err != nil {
		return result.StudentResult{}, errors.Wrap(err, "decoding result "+rollNumber)
	}
	res.Version = doc.Version
	return res, nil
}

func (r *resultRepository) SaveResult(ctx context.Context, res result.StudentResult) (result.StudentResult, error) {
	doc, err := json.Marshal(res)
	if err != nil {
		return result.StudentResult{}, errors.Wrap(err, "encoding result")
	}
	version, err := r.db.saveDoc(ctx, resultsTable, res.RollNumber, doc, res.Version)
	if err == sql.ErrNoRows {
		return result.StudentResult{}, result.ErrNotFound
	}
	if err != nil {
		return result.StudentResult{}, err
	}
	res.Version = version
	return res, nil
}

func (r *resultRepository) DeleteResult(ctx context.Context, rollNumber string) error {
	if err := r.db.deleteDoc(ctx, resultsTable, rollNumber); err != nil {
		if err == sql.ErrNoRows {
			return result.ErrNotFound
		}
		return err
	}
	return nil
}
