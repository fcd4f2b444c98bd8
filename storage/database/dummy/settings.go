package dummydb

import (
	"context"

	"github.com/trezcool/elimu/core/settings"
)

type settingsRepository struct {
	db *settingsTable
}

var _ settings.Repository = (*settingsRepository)(nil) // interface compliance check

func NewSettingsRepository(db *DB) settings.Repository {
	return &settingsRepository{db: db.settings}
}

func (repo *settingsRepository) GetSettings(context.Context) (settings.Settings, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if repo.db.current == nil {
		return settings.Settings{}, settings.ErrNotFound
	}
	return *repo.db.current, nil
}

func (repo *settingsRepository) SaveSettings(_ context.Context, sett settings.Settings) (settings.Settings, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var current int64
	if repo.db.current != nil {
		current = repo.db.current.Version
	}
	version, err := nextVersion(current, sett.Version)
	if err == errNoDoc {
		return settings.Settings{}, settings.ErrNotFound
	}
	if err != nil {
		return settings.Settings{}, err
	}
	sett.Version = version
	repo.db.current = &sett
	return sett, nil
}
