package builder

import (
	"sync"

	"github.com/VincentZyu233/woodenaxe/plugins/builder/define"
)

// LoadedSchematic is what a requester last loaded.
type LoadedSchematic struct {
	File      string
	Schematic *define.Schematic
}

// SchematicStore holds one loaded schematic per requester.
type SchematicStore struct {
	mu    sync.Mutex
	items map[string]LoadedSchematic
}

func NewSchematicStore() *SchematicStore {
	return &SchematicStore{items: make(map[string]LoadedSchematic)}
}

func (s *SchematicStore) Put(requester string, file string, schematic *define.Schematic) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[requester] = LoadedSchematic{File: file, Schematic: schematic}
}

func (s *SchematicStore) Get(requester string) (LoadedSchematic, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.items[requester]
	return l, ok
}

func (s *SchematicStore) Delete(requester string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[requester]
	delete(s.items, requester)
	return ok
}

func (s *SchematicStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

type Selection struct {
	Pos1      *define.Pos
	Pos2      *define.Pos
	Dimension define.Dimension
}

// SelectionStore holds the two selection points of every requester.
// Setting either point also records the dimension it was taken in.
type SelectionStore struct {
	mu    sync.Mutex
	items map[string]Selection
}

func NewSelectionStore() *SelectionStore {
	return &SelectionStore{items: make(map[string]Selection)}
}

func (s *SelectionStore) SetPos1(requester string, pos define.Pos, dim define.Dimension) Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := s.items[requester]
	sel.Pos1 = &pos
	sel.Dimension = dim
	s.items[requester] = sel
	return sel
}

func (s *SelectionStore) SetPos2(requester string, pos define.Pos, dim define.Dimension) Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel := s.items[requester]
	sel.Pos2 = &pos
	sel.Dimension = dim
	s.items[requester] = sel
	return sel
}

// Get returns a copy; the points it refers to are never mutated by the store.
func (s *SelectionStore) Get(requester string) (Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel, ok := s.items[requester]
	return sel, ok
}

func (s *SelectionStore) Clear(requester string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[requester]
	delete(s.items, requester)
	return ok
}
