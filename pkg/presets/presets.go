// Package presets persists choreography documents per application.
//
// Presets are stored as YAML properties of one gdata object, next to a YAML
// index of their names. A Store created without a gdata manager keeps
// presets in memory only.
package presets

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/choreo/pkg/document"
	choreoerrors "github.com/go-drift/choreo/pkg/errors"
)

const (
	presetsObject = "presets"
	indexProperty = "_index"
)

// ErrNotFound is returned by Load for unknown preset names.
var ErrNotFound = errors.New("preset not found")

var validName = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

type backend interface {
	save(prop string, data []byte) error
	load(prop string) ([]byte, error)
	exists(prop string) bool
}

// Store saves and loads presets. It is safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	data  backend
	names []string
}

// Open opens the persistent store of app.
func Open(app string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		return nil, storageError("presets.Open", err)
	}
	return New(m)
}

// New creates a store on m. A nil m keeps presets in memory.
func New(m *gdata.Manager) (*Store, error) {
	s := &Store{}
	if m == nil {
		s.data = &memoryBackend{props: make(map[string][]byte)}
	} else {
		s.data = &gdataBackend{m: m}
	}
	if err := s.loadIndex(); err != nil {
		return nil, err
	}
	return s, nil
}

// Persistent reports whether presets survive the process.
func (s *Store) Persistent() bool {
	_, ok := s.data.(*gdataBackend)
	return ok
}

// Save stores doc under name, replacing any preset with that name.
func (s *Store) Save(name string, doc *document.Document) error {
	const op = "presets.Save"
	if !validName.MatchString(name) {
		return storageError(op, fmt.Errorf("invalid preset name %q", name))
	}
	data, err := doc.Marshal()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.data.save(name, data); err != nil {
		return storageError(op, err)
	}
	if slices.Contains(s.names, name) {
		return nil
	}
	names := append(slices.Clone(s.names), name)
	slices.Sort(names)
	if err := s.saveIndex(names); err != nil {
		return err
	}
	s.names = names
	return nil
}

// Load returns the preset stored under name.
func (s *Store) Load(name string) (*document.Document, error) {
	const op = "presets.Load"
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.names, name) || !s.data.exists(name) {
		return nil, storageError(op, fmt.Errorf("%w: %q", ErrNotFound, name))
	}
	data, err := s.data.load(name)
	if err != nil {
		return nil, storageError(op, err)
	}
	return document.Parse(data)
}

// Exists reports whether a preset is stored under name.
func (s *Store) Exists(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.names, name)
}

// List returns the preset names in sorted order.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.names)
}

func (s *Store) loadIndex() error {
	if !s.data.exists(indexProperty) {
		return nil
	}
	data, err := s.data.load(indexProperty)
	if err != nil {
		return storageError("presets.loadIndex", err)
	}
	if err := yaml.Unmarshal(data, &s.names); err != nil {
		return storageError("presets.loadIndex", fmt.Errorf("corrupt index: %w", err))
	}
	slices.Sort(s.names)
	return nil
}

func (s *Store) saveIndex(names []string) error {
	data, err := yaml.Marshal(names)
	if err != nil {
		return storageError("presets.saveIndex", err)
	}
	if err := s.data.save(indexProperty, data); err != nil {
		return storageError("presets.saveIndex", err)
	}
	return nil
}

func storageError(op string, err error) error {
	return &choreoerrors.ChoreoError{Op: op, Kind: choreoerrors.KindStorage, Err: err}
}

type gdataBackend struct {
	m *gdata.Manager
}

func (b *gdataBackend) save(prop string, data []byte) error {
	return b.m.SaveObjectProp(presetsObject, prop, data)
}

func (b *gdataBackend) load(prop string) ([]byte, error) {
	return b.m.LoadObjectProp(presetsObject, prop)
}

func (b *gdataBackend) exists(prop string) bool {
	return b.m.ObjectPropExists(presetsObject, prop)
}

type memoryBackend struct {
	props map[string][]byte
}

func (b *memoryBackend) save(prop string, data []byte) error {
	b.props[prop] = slices.Clone(data)
	return nil
}

func (b *memoryBackend) load(prop string) ([]byte, error) {
	data, ok := b.props[prop]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(data), nil
}

func (b *memoryBackend) exists(prop string) bool {
	_, ok := b.props[prop]
	return ok
}
