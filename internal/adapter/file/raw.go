package file

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/couchcryptid/weather-data-etl/internal/domain"
)

// DefaultRawPath is where the fetch stage stores the raw document.
const DefaultRawPath = "data/weather_data.json"

const jsonIndent = "    "

// RawRepository saves and loads the raw forecast document at a fixed path.
type RawRepository struct {
	fs   afero.Fs
	path string
}

// NewRawRepository creates a repository for the document at path.
func NewRawRepository(fsys afero.Fs, path string) *RawRepository {
	return &RawRepository{fs: fsys, path: path}
}

// Path returns the storage location.
func (r *RawRepository) Path() string {
	return r.path
}

// Save writes doc as indented JSON, replacing any existing file.
func (r *RawRepository) Save(doc domain.RawDocument) error {
	return writeFile(r.fs, r.path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", jsonIndent)
		enc.SetEscapeHTML(false)
		return enc.Encode(doc)
	})
}

// Load reads the stored document. It fails with domain.ErrNotFound when the
// file does not exist and domain.ErrParse when it is not valid JSON.
func (r *RawRepository) Load() (domain.RawDocument, error) {
	f, err := openFile(r.fs, r.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := domain.DecodeRawDocument(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", r.path, err)
	}
	return doc, nil
}
