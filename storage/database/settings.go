package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trezcool/elimu/core/settings"
)

const (
	settingsTable = "settings"
	settingsKey   = "site"
)

type settingsRepository struct {
	db *DB
}

var _ settings.Repository = (*settingsRepository)(nil)

func NewSettingsRepository(db *DB) settings.Repository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetSettings(ctx context.Context) (settings.Settings, error) {
	doc, err := r.db.getDoc(ctx, settingsTable, settingsKey)
	if err == sql.ErrNoRows {
		return settings.Settings{}, settings.ErrNotFound
	}
	if err != nil {
		return settings.Settings{}, err
	}
	var sett settings.Settings
	if err = json.Unmarshal(doc.Doc, &sett); err != nil {
		return settings.Settings{}, errors.Wrap(err, "decoding settings")
	}
	sett.Version = doc.Version
	return sett, nil
}

func (r *settingsRepository) SaveSettings(ctx context.Context, sett settings.Settings) (settings.Settings, error) {
	doc, err := json.Marshal(sett)
	if err != nil {
		return settings.Settings{}, errors.Wrap(err, "encoding settings")
	}
	version, err := r.db.saveDoc(ctx, settingsTable, settingsKey, doc, sett.Version)
	if err == sql.ErrNoRows {
		return settings.Settings{}, settings.ErrNotFound
	}
	if err != nil {
		return settings.Settings{}, err
	}
	sett.Version = version
	return sett, nil
}
