// Package json implements the cache of last published IP addresses
// as a single JSON file on disk, mapping each hostname to its last
// known IPv4 and IPv6 addresses.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type Database struct {
	data     dataModel
	filepath string
}

// NewDatabase reads the JSON cache file at the path given.
// A missing file is the expected initial state and yields an empty
// database. A file which is present but cannot be parsed as JSON is
// an error, since the ambiguous state must not be silently
// overwritten. Recorded address strings are not validated here: a
// corrupt string reads back as no recorded address, so the next
// update republishes over it.
func NewDatabase(filepath string) (db *Database, err error) {
	db = &Database{
		data:     dataModel{},
		filepath: filepath,
	}

	bytes, err := os.ReadFile(filepath)
	if errors.Is(err, fs.ErrNotExist) {
		return db, nil
	} else if err != nil {
		return nil, fmt.Errorf("reading cache file: %w", err)
	}

	err = json.Unmarshal(bytes, &db.data)
	if err != nil {
		return nil, fmt.Errorf("parsing cache file %s: %w", filepath, err)
	}

	err = db.check()
	if err != nil {
		return nil, fmt.Errorf("%s validation error: %w", filepath, err)
	}

	return db, nil
}

var ErrHostnameEmpty = errors.New("hostname is empty")

func (db *Database) check() (err error) {
	for hostname, record := range db.data {
		if hostname == "" {
			return fmt.Errorf("%w: for record %s", ErrHostnameEmpty, record)
		}
	}
	return nil
}

// Persist writes the whole database to the cache file.
// The data is serialized first and written to a temporary file in
// the destination directory which is then renamed over the final
// path, so a concurrent reader never sees a truncated file.
func (db *Database) Persist() (err error) {
	bytes, err := json.MarshalIndent(db.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}
	bytes = append(bytes, '\n')

	directory := filepath.Dir(db.filepath)
	tempFile, err := os.CreateTemp(directory, filepath.Base(db.filepath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}

	_, err = tempFile.Write(bytes)
	if err == nil {
		err = tempFile.Sync()
	}
	if err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempFile.Name())
		return fmt.Errorf("writing temporary file: %w", err)
	}

	err = tempFile.Close()
	if err != nil {
		_ = os.Remove(tempFile.Name())
		return fmt.Errorf("closing temporary file: %w", err)
	}

	err = os.Rename(tempFile.Name(), db.filepath)
	if err != nil {
		_ = os.Remove(tempFile.Name())
		return fmt.Errorf("moving temporary file to %s: %w", db.filepath, err)
	}

	return nil
}
