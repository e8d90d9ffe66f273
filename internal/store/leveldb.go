package store

import (
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
	leveldberrors "github.com/syndtr/goleveldb/leveldb/errors"
)

// LevelDB implements Storage over github.com/syndtr/goleveldb, pulled
// from nspcc-dev's go.mod (one of its blockchain storage backends) and
// repurposed here as this module's Context/receipt key-value store.
type LevelDB struct {
	db *leveldb.DB
}

// OpenLevelDB opens (creating if necessary) a LevelDB-backed Storage
// rooted at dir.
func OpenLevelDB(dir string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, err
	}
	logger.Infof("opened leveldb store at %s", dir)
	return &LevelDB{db: db}, nil
}

// Exists implements Storage.
func (l *LevelDB) Exists(path string) (bool, error) {
	return l.db.Has([]byte(path), nil)
}

// Read implements Storage.
func (l *LevelDB) Read(path string) ([]byte, error) {
	data, err := l.db.Get([]byte(path), nil)
	if err != nil {
		if errors.Is(err, leveldberrors.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Write implements Storage.
func (l *LevelDB) Write(path string, data []byte) error {
	return l.db.Put([]byte(path), data, nil)
}

// Close releases the underlying database handle.
func (l *LevelDB) Close() error {
	return l.db.Close()
}
