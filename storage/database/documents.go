package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"net"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core"
)

// The record store keeps one table per collection, each row being a full
// JSON document plus a version counter:
//
//	key TEXT PRIMARY KEY, doc JSONB NOT NULL, version BIGINT
//
// Writes carry the version the caller last read; a stale version fails
// with core.ErrConflict instead of silently overwriting (last-write-wins
// is kept only for replaceAllDocs, which is an explicit full overwrite).

type document struct {
	Key     string `db:"key"`
	Doc     []byte `db:"doc"`
	Version int64  `db:"version"`
}

// storeErr maps infrastructure failures to core.ErrStoreUnavailable so
// callers can tell a dead store from a bad request.
func storeErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Cause(err) == context.DeadlineExceeded || errors.Cause(err) == driver.ErrBadConn {
		return errors.Wrap(core.ErrStoreUnavailable, msg)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return errors.Wrap(core.ErrStoreUnavailable, msg)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "08" { // connection exceptions
		return errors.Wrap(core.ErrStoreUnavailable, msg)
	}
	return errors.Wrap(err, msg)
}

func (db *DB) getAllDocs(ctx context.Context, table string) ([]document, error) {
	ctx, cancel := db.opCtx(ctx)
	defer cancel()

	var docs []document
	err := db.SelectContext(ctx, &docs, `SELECT key, doc, version FROM `+table)
	if err != nil {
		return nil, storeErr(err, "querying "+table)
	}
	return docs, nil
}

func (db *DB) getDoc(ctx context.Context, table, key string) (document, error) {
	ctx, cancel := db.opCtx(ctx)
	defer cancel()

	var doc document
	err := db.GetContext(ctx, &doc, `SELECT key, doc, version FROM `+table+` WHERE key = $1`, key)
	if err == sql.ErrNoRows {
		return document{}, sql.ErrNoRows
	}
	if err != nil {
		return document{}, storeErr(err, "querying "+table)
	}
	return doc, nil
}

// saveDoc upserts and returns the new version. A zero version means the
// caller has not read the record (fresh insert or a deliberate overwrite
// of collection-replace provenance); any other version is checked.
func (db *DB) saveDoc(ctx context.Context, table, key string, doc []byte, version int64) (int64, error) {
	ctx, cancel := db.opCtx(ctx)
	defer cancel()

	var newVersion int64
	var err error
	if version > 0 {
		err = db.GetContext(ctx, &newVersion,
			`UPDATE `+table+` SET doc = $1, version = version + 1 WHERE key = $2 AND version = $3 RETURNING version`,
			doc, key, version)
		if err == sql.ErrNoRows {
			// either absent or stale; a present row means a version conflict
			if _, gerr := db.getDoc(ctx, table, key); gerr == nil {
				return 0, errors.Wrap(core.ErrConflict, "updating "+table)
			}
			return 0, sql.ErrNoRows
		}
	} else {
		err = db.GetContext(ctx, &newVersion,
			`INSERT INTO `+table+` (key, doc, version) VALUES ($1, $2, 1)
			 ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, version = `+table+`.version + 1
			 RETURNING version`,
			key, doc)
	}
	if err != nil {
		return 0, storeErr(err, "saving into "+table)
	}
	return newVersion, nil
}

func (db *DB) deleteDoc(ctx context.Context, table, key string) error {
	ctx, cancel := db.opCtx(ctx)
	defer cancel()

	res, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE key = $1`, key)
	if err != nil {
		return storeErr(err, "deleting from "+table)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// replaceAllDocs swaps the whole collection in one transaction.
func (db *DB) replaceAllDocs(ctx context.Context, table string, docs map[string][]byte) error {
	ctx, cancel := db.opCtx(ctx)
	defer cancel()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return storeErr(err, "starting transaction on "+table)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
		return storeErr(err, "clearing "+table)
	}
	for key, doc := range docs {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO `+table+` (key, doc, version) VALUES ($1, $2, 1)`, key, doc); err != nil {
			return storeErr(err, "filling "+table)
		}
	}
	if err = tx.Commit(); err != nil {
		return storeErr(err, "replacing "+table)
	}
	return nil
}
