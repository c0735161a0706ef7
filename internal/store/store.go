// Package store persists the full ledger table as a single durable
// document, loaded in full at startup and overwritten in full on every
// mutation.
package store

import "starledger/internal/model"

// Store loads and saves the complete user table. Load returns an empty map
// on first run, not an error. Save replaces the previous snapshot in full;
// once it returns nil the snapshot is durable.
type Store interface {
	Load() (map[string]*model.UserLedger, error)
	Save(users map[string]*model.UserLedger) error
	Close() error
}
