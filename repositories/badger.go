package repositories

import (
	"campus-chat/errors"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// maxConflictRetries bounds read-modify-write retries on Badger conflicts.
const maxConflictRetries = 5

// segment length-prefixes an identifier so that a prefix scan for one room
// can never match a room whose id merely starts with the same characters.
func segment(id string) string {
	return fmt.Sprintf("%d:%s", len(id), id)
}

func getJSON(txn *badger.Txn, key string, out any, notFound error) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return notFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

func setJSON(txn *badger.Txn, key string, in any) error {
	bytes, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return txn.Set([]byte(key), bytes)
}

func exists(txn *badger.Txn, key string) (bool, error) {
	_, err := txn.Get([]byte(key))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}

// insertUnique writes key only if it is absent. Reading the key puts it in
// the transaction's read set, so a concurrent insert of the same key makes
// the slower commit fail with badger.ErrConflict; both paths report dup.
func insertUnique(db *badger.DB, key string, dup error, write func(txn *badger.Txn) error) error {
	err := db.Update(func(txn *badger.Txn) error {
		found, err := exists(txn, key)
		if err != nil {
			return err
		}
		if found {
			return dup
		}
		return write(txn)
	})
	if errors.Is(err, badger.ErrConflict) {
		return dup
	}
	return err
}

// updateWithRetry re-runs a read-modify-write transaction that lost a race.
func updateWithRetry(db *badger.DB, fn func(txn *badger.Txn) error) error {
	var err error
	for i := 0; i < maxConflictRetries; i++ {
		err = db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

// scanPrefix calls fn with the key and value of every item under prefix, in key order.
func scanPrefix(txn *badger.Txn, prefix string, fn func(key, val []byte) error) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()
	p := []byte(prefix)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		item := it.Item()
		err := item.Value(func(val []byte) error {
			return fn(item.KeyCopy(nil), val)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// countPrefix counts keys under prefix without fetching values.
func countPrefix(txn *badger.Txn, prefix string) int {
	options := badger.DefaultIteratorOptions
	options.PrefetchValues = false
	it := txn.NewIterator(options)
	defer it.Close()
	p := []byte(prefix)
	n := 0
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		n++
	}
	return n
}
