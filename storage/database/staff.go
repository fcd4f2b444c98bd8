package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/staff"
)

const staffTable = "staff"

// staffDoc carries the password hash through the JSON document while the
// Staff model keeps it hidden from API payloads.
type staffDoc struct {
	staff.Staff
	PasswordHash []byte `json:"password_hash"`
}

type staffRepository struct {
	db *DB
}

var _ staff.Repository = (*staffRepository)(nil)

func NewStaffRepository(db *DB) staff.Repository {
	return &staffRepository{db: db}
}

func decodeStaffDoc(doc document) (staff.Staff, error) {
	var sd staffDoc
	if err := json.Unmarshal(doc.Doc, &sd); err != nil {
		return staff.Staff{}, errors.Wrap(err, "decoding staff "+doc.Key)
	}
	acc := sd.Staff
	acc.PasswordHash = sd.PasswordHash
	acc.Version = doc.Version
	return acc, nil
}

func (r *staffRepository) GetAllStaff(ctx context.Context) ([]staff.Staff, error) {
	docs, err := r.db.getAllDocs(ctx, staffTable)
	if err != nil {
		return nil, err
	}
	accs := make([]staff.Staff, 0, len(docs))
	for _, doc := range docs {
		acc, err := decodeStaffDoc(doc)
		if err != nil {
			return nil, err
		}
		accs = append(accs, acc)
	}
	return accs, nil
}

func (r *staffRepository) GetStaff(ctx context.Context, id string) (staff.Staff, error) {
	doc, err := r.db.getDoc(ctx, staffTable, id)
	if err == sql.ErrNoRows {
		return staff.Staff{}, staff.ErrNotFound
	}
	if err != nil {
		return staff.Staff{}, err
	}
	return decodeStaffDoc(doc)
}

func (r *staffRepository) GetStaffByUsername(ctx context.Context, username string) (staff.Staff, error) {
	return r.find(ctx, func(acc staff.Staff) bool { return acc.Username == username })
}

func (r *staffRepository) GetStaffByEmail(ctx context.Context, email string) (staff.Staff, error) {
	return r.find(ctx, func(acc staff.Staff) bool { return acc.Email == email })
}

func (r *staffRepository) find(ctx context.Context, match func(staff.Staff) bool) (staff.Staff, error) {
	accs, err := r.GetAllStaff(ctx)
	if err != nil {
		return staff.Staff{}, err
	}
	for _, acc := range accs {
		if match(acc) {
			return acc, nil
		}
	}
	return staff.Staff{}, staff.ErrNotFound
}

func (r *staffRepository) SaveStaff(ctx context.Context, acc staff.Staff) (staff.Staff, error) {
	doc, err := json.Marshal(staffDoc{Staff: acc, PasswordHash: acc.PasswordHash})
	if err != nil {
		return staff.Staff{}, errors.Wrap(err, "encoding staff")
	}
	version, err := r.db.saveDoc(ctx, staffTable, acc.ID, doc, acc.Version)
	if err == sql.ErrNoRows {
		return staff.Staff{}, staff.ErrNotFound
	}
	if err != nil {
		return staff.Staff{}, err
	}
	acc.Version = version
	return acc, nil
}

func (r *staffRepository) DeleteStaff(ctx context.Context, id string) error {
	if err := r.db.deleteDoc(ctx, staffTable, id); err != nil {
		if err == sql.ErrNoRows {
			return staff.ErrNotFound
		}
		return err
	}
	return nil
}
