package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/teacher"
)

const teachersTable = "teachers"

type teacherRepository struct {
	db *DB
}

var _ teacher.Repository = (*teacherRepository)(nil)

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) GetAllTeachers(ctx context.Context) ([]teacher.Teacher, error) {
	docs, err := r.db.getAllDocs(ctx, teachersTable)
	if err != nil {
		return nil, err
	}
	tchs := make([]teacher.Teacher, 0, len(docs))
	for _, doc := range docs {
		var tch teacher.Teacher
		if err = json.Unmarshal(doc.Doc, &tch); err != nil {
			return nil, errors.Wrap(err, "decoding teacher "+doc.Key)
		}
		tch.Version = doc.Version
		tchs = append(tchs, tch)
	}
	return tchs, nil
}

func (r *teacherRepository) GetTeacher(ctx context.Context, id string) (teacher.Teacher, error) {
	doc, err := r.db.getDoc(ctx, teachersTable, id)
	if err == sql.ErrNoRows {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	if err != nil {
		return teacher.Teacher{}, err
	}
	var tch teacher.Teacher
	if err = json.Unmarshal(doc.Doc, &tch); err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "decoding teacher "+id)
	}
	tch.Version = doc.Version
	return tch, nil
}

func (r *teacherRepository) SaveTeacher(ctx context.Context, tch teacher.Teacher) (teacher.Teacher, error) {
	doc, err := json.Marshal(tch)
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "encoding teacher")
	}
	version, err := r.db.saveDoc(ctx, teachersTable, tch.ID, doc, tch.Version)
	if err == sql.ErrNoRows {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	if err != nil {
		return teacher.Teacher{}, err
	}
	tch.Version = version
	return tch, nil
}

func (r *teacherRepository) DeleteTeacher(ctx context.Context, id string) error {
	if err := r.db.deleteDoc(ctx, teachersTable, id); err != nil {
		if err == sql.ErrNoRows {
			return teacher.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *teacherRepository) ReplaceAllTeachers(ctx context.Context, tchs []teacher.Teacher) error {
	docs := make(map[string][]byte, len(tchs))
	for _, tch := range tchs {
		doc, err := json.Marshal(tch)
		if err != nil {
			return errors.Wrap(err, "encoding teacher "+tch.ID)
		}
		docs[tch.ID] = doc
	}
	return r.db.replaceAllDocs(ctx, teachersTable, docs)
}
