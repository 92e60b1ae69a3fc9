// Package store provides the website credential store backed by a single
// JSON document on a filesystem. The document is read in full, modified
// and rewritten in full on every change.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/zarlcorp/core/pkg/zfilesystem"
)

// DefaultFile is the name of the data file inside the data directory.
const DefaultFile = "data.json"

const indent = "    "

var (
	// ErrEmptyField is returned when a website, email or password is blank.
	ErrEmptyField = errors.New("empty field")

	// ErrStoreMissing is returned when nothing has been saved yet.
	ErrStoreMissing = errors.New("no data file found")

	// ErrNotFound is returned when a website has no record.
	ErrNotFound = errors.New("no details for the website exist")

	// ErrCorrupt is returned when the data file is not a valid document.
	ErrCorrupt = errors.New("data file is corrupt")
)

// Record is one website's stored credentials.
type Record struct {
	Website  string `json:"-"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// document is the on-disk shape: website -> record.
type document map[string]Record

// Store reads and writes the credential document.
type Store struct {
	fs   zfilesystem.ReadWriteFileFS
	name string
}

// Open returns a store for the file name inside fsys. No I/O happens until
// the first operation; the file is created by the first Save.
func Open(fsys zfilesystem.ReadWriteFileFS, name string) *Store {
	if name == "" {
		name = DefaultFile
	}
	return &Store{fs: fsys, name: name}
}

// Save inserts or replaces the record for website.
func (s *Store) Save(website, email, password string) error {
	website = normalize(website)
	email = strings.TrimSpace(email)
	if website == "" || email == "" || password == "" {
		return ErrEmptyField
	}

	doc, err := s.load()
	if err != nil && !errors.Is(err, ErrStoreMissing) {
		return fmt.Errorf("save %s: %w", website, err)
	}
	if doc == nil {
		doc = document{}
	}

	doc[website] = Record{Email: email, Password: password}

	if err := s.write(doc); err != nil {
		return fmt.Errorf("save %s: %w", website, err)
	}
	return nil
}

// Find returns the record stored for website.
func (s *Store) Find(website string) (Record, error) {
	doc, err := s.load()
	if err != nil {
		return Record{}, err
	}

	key := normalize(website)
	r, ok := doc[key]
	if !ok {
		return Record{}, ErrNotFound
	}
	r.Website = key
	return r, nil
}

// List returns every record sorted by website.
func (s *Store) List() ([]Record, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(doc))
	for website, r := range doc {
		r.Website = website
		records = append(records, r)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Website < records[j].Website
	})

	return records, nil
}

// Delete removes the record for website.
func (s *Store) Delete(website string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}

	key := normalize(website)
	if _, ok := doc[key]; !ok {
		return ErrNotFound
	}
	delete(doc, key)

	if err := s.write(doc); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Exists reports whether the data file has been created.
func (s *Store) Exists() bool {
	_, err := s.fs.ReadFile(s.name)
	return err == nil
}

func (s *Store) load() (document, error) {
	data, err := s.fs.ReadFile(s.name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrStoreMissing
		}
		return nil, fmt.Errorf("read %s: %w", s.name, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.name, err)
	}
	// a file holding "null" decodes to a nil map
	if doc == nil {
		doc = document{}
	}

	return doc, nil
}

func (s *Store) write(doc document) error {
	data, err := json.MarshalIndent(doc, "", indent)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	data = append(data, '\n')

	if err := s.fs.WriteFile(s.name, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", s.name, err)
	}
	return nil
}

// normalize is the single key policy for saving and lookup: surrounding
// whitespace is dropped, case is kept.
func normalize(website string) string {
	return strings.TrimSpace(website)
}
