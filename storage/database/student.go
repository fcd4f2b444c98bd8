package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/student"
)

const studentsTable = "students"

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

func (r *studentRepository) GetAllStudents(ctx context.Context) ([]student.Student, error) {
	docs, err := r.db.getAllDocs(ctx, studentsTable)
	if err != nil {
		return nil, err
	}
	stds := make([]student.Student, 0, len(docs))
	for _, doc := range docs {
		var std student.Student
		if err = json.Unmarshal(doc.Doc, &std); err != nil {
			return nil, errors.Wrap(err, "decoding student "+doc.Key)
		}
		std.Version = doc.Version
		stds = append(stds, std)
	}
	return stds, nil
}

func (r *studentRepository) GetStudent(ctx context.Context, rollNumber string) (student.Student, error) {
	doc, err := r.db.getDoc(ctx, studentsTable, rollNumber)
	if err == sql.ErrNoRows {
		return student.Student{}, student.ErrNotFound
	}
	if err != nil {
		return student.Student{}, err
	}
	var std student.Student
	if err = json.Unmarshal(doc.Doc, &std); err != nil {
		return student.Student{}, errors.Wrap(err, "decoding student "+rollNumber)
	}
	std.Version = doc.Version
	return std, nil
}

func (r *studentRepository) SaveStudent(ctx context.Context, std student.Student) (student.Student, error) {
	doc, err := json.Marshal(std)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "encoding student")
	}
	version, err := r.db.saveDoc(ctx, studentsTable, std.RollNumber, doc, std.Version)
	if err == sql.ErrNoRows {
		return student.Student{}, student.ErrNotFound
	}
	if err != nil {
		return student.Student{}, err
	}
	std.Version = version
	return std, nil
}

func (r *studentRepository) DeleteStudent(ctx context.Context, rollNumber string) error {
	if err := r.db.deleteDoc(ctx, studentsTable, rollNumber); err != nil {
		if err == sql.ErrNoRows {
			return student.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *studentRepository) ReplaceAllStudents(ctx context.Context, stds []student.Student) error {
	docs := make(map[string][]byte, len(stds))
	for _, std := range stds {
		doc, err := json.Marshal(std)
		if err != nil {
			return errors.Wrap(err, "encoding student "+std.RollNumber)
		}
		docs[std.RollNumber] = doc
	}
	return r.db.replaceAllDocs(ctx, studentsTable, docs)
}
