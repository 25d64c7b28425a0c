package artifact

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/dkristiansen/zugzwang/internal/logging"
)

var log = logging.Get("artifact")

// cacheVersion is bumped whenever the magic-search algorithm or the NNUE
// weight format changes shape, so a stale Badger store from an older build
// doesn't get reused silently.
const cacheVersion = "v1"

const magicsKey = cacheVersion + ":magics"

func weightsKey(path string) string {
	return cacheVersion + ":weights:" + path
}

// Cache wraps a BadgerDB instance used to persist generated magic tables and
// loaded network weight blobs across process restarts.
type Cache struct {
	db *badger.DB
}

// Open opens (creating if necessary) the Badger store rooted at dir.
func Open(dir string) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("artifact: opening cache at %s: %w", dir, err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying store.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

type magicSet struct {
	Bishop [64]uint64 `json:"bishop"`
	Rook   [64]uint64 `json:"rook"`
}

// LoadMagics returns previously cached bishop/rook magic numbers. found is
// false on a cache miss, which is not an error.
func (c *Cache) LoadMagics() (bishop, rook [64]uint64, found bool, err error) {
	var set magicSet

	err = c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(magicsKey))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &set)
		})
	})
	if err != nil {
		return bishop, rook, false, fmt.Errorf("artifact: loading magics: %w", err)
	}

	if found {
		log.Debugf("magic table cache hit")
	} else {
		log.Debugf("magic table cache miss")
	}
	return set.Bishop, set.Rook, found, nil
}

// SaveMagics persists a generated bishop/rook magic number set.
func (c *Cache) SaveMagics(bishop, rook [64]uint64) error {
	data, err := json.Marshal(magicSet{Bishop: bishop, Rook: rook})
	if err != nil {
		return fmt.Errorf("artifact: encoding magics: %w", err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(magicsKey), data)
	})
	if err != nil {
		return fmt.Errorf("artifact: saving magics: %w", err)
	}

	log.Infof("cached magic table")
	return nil
}

// LoadWeights returns a previously cached raw network weights blob for
// path (as produced by nnue.Network.SaveWeights). found is false on a cache
// miss.
func (c *Cache) LoadWeights(path string) (data []byte, found bool, err error) {
	err = c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(weightsKey(path)))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("artifact: loading weights for %s: %w", path, err)
	}

	if found {
		log.Debugf("weights cache hit for %s", path)
	} else {
		log.Debugf("weights cache miss for %s", path)
	}
	return data, found, nil
}

// SaveWeights caches a raw network weights blob under path's key.
func (c *Cache) SaveWeights(path string, data []byte) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(weightsKey(path)), data)
	})
	if err != nil {
		return fmt.Errorf("artifact: saving weights for %s: %w", path, err)
	}

	log.Infof("cached weights for %s", path)
	return nil
}
