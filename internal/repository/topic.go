package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/deppfellow/topicsvc/internal/model"
)

// ErrNotArray is the cause of a LoadError when the source is valid but its
// top-level value is not a sequence.
var ErrNotArray = errors.New("topics source must contain an array")

// TopicStore loads the full topic collection.
//
// Load is all-or-nothing: it returns every record or a *LoadError.
type TopicStore interface {
	Load(ctx context.Context) ([]model.Topic, error)
}

// LoadError reports that the topic source could not be read or parsed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load topics from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// FileStore reads topics from a JSON or YAML file on an afero filesystem.
// The file is read on every Load, edits are picked up without restart.
type FileStore struct {
	fs   afero.Fs
	path string
}

// NewFileStore creates a FileStore for path on fs.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Path returns the file the store reads.
func (s *FileStore) Path() string {
	return s.path
}

// Load implements TopicStore.
func (s *FileStore) Load(ctx context.Context) ([]model.Topic, error) {
	if err := ctx.Err(); err != nil {
		return nil, s.fail(err)
	}

	raw, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, s.fail(err)
	}

	var topics []model.Topic
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		topics, err = decodeYAML(raw)
	default:
		topics, err = decodeJSON(raw)
	}
	if err != nil {
		return nil, s.fail(err)
	}

	return topics, nil
}

func (s *FileStore) fail(err error) error {
	return errors.WithStack(&LoadError{Source: s.path, Err: err})
}

func decodeJSON(raw []byte) ([]model.Topic, error) {
	var doc json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "parse json")
	}

	// null decodes into a nil slice without error, check the shape first.
	if trimmed := bytes.TrimSpace(doc); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}

	// encoding/json matches struct fields case-insensitively, so records are
	// read key by key to stop "NAME" or "Category" from shadowing real fields.
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(doc, &records); err != nil {
		return nil, errors.Wrap(err, "decode topics")
	}

	topics := make([]model.Topic, 0, len(records))
	for i, record := range records {
		var t model.Topic
		if err := jsonField(record, "id", &t.ID); err != nil {
			return nil, errors.Wrapf(err, "decode topic %d", i)
		}
		if err := jsonField(record, "name", &t.Name); err != nil {
			return nil, errors.Wrapf(err, "decode topic %d", i)
		}
		if err := jsonField(record, "category", &t.Category); err != nil {
			return nil, errors.Wrapf(err, "decode topic %d", i)
		}
		topics = append(topics, t)
	}

	return topics, nil
}

// jsonField decodes record[key] into dst. A missing key leaves dst untouched.
func jsonField(record map[string]json.RawMessage, key string, dst any) error {
	value, ok := record[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(value, dst); err != nil {
		return errors.Wrapf(err, "field %q", key)
	}
	return nil
}

func decodeYAML(raw []byte) ([]model.Topic, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "parse yaml")
	}

	// An empty file yields a zero node, a document wraps its single root.
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.SequenceNode {
		return nil, ErrNotArray
	}

	topics := make([]model.Topic, 0)
	if err := doc.Content[0].Decode(&topics); err != nil {
		return nil, errors.Wrap(err, "decode topics")
	}

	return topics, nil
}
