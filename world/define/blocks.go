package define

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

const namespace = "minecraft"

//go:embed bedrock_blocks.json
var bedrockBlocksData []byte

// BlockType is a block the target world knows how to place.
type BlockType struct {
	Name      string
	RuntimeID int32
}

// Registry resolves textual identifiers against a fixed set of block types.
type Registry struct {
	byName     map[string]BlockType
	permissive bool
}

// NewRegistry builds a registry from identifiers, prefixing bare names with minecraft:.
func NewRegistry(names []string) *Registry {
	r := &Registry{byName: make(map[string]BlockType, len(names))}
	for i, n := range names {
		full := qualify(n)
		if _, ok := r.byName[full]; ok {
			continue
		}
		r.byName[full] = BlockType{Name: full, RuntimeID: int32(i)}
	}
	return r
}

// LoadRegistry parses a JSON array of identifiers.
func LoadRegistry(data []byte) (*Registry, error) {
	names := make([]string, 0)
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("block registry: %w", err)
	}
	return NewRegistry(names), nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// DefaultRegistry is the embedded Bedrock block list.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		r, err := LoadRegistry(bedrockBlocksData)
		if err != nil {
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Permissive returns a registry that also accepts any well formed ns:path
// identifier it does not list. Such types carry RuntimeID -1.
func (r *Registry) Permissive() *Registry {
	return &Registry{byName: r.byName, permissive: true}
}

func (r *Registry) Resolve(name string) (BlockType, bool) {
	full := qualify(name)
	if t, ok := r.byName[full]; ok {
		return t, true
	}
	if r.permissive && wellFormed(full) {
		return BlockType{Name: full, RuntimeID: -1}, true
	}
	return BlockType{}, false
}

func (r *Registry) Len() int {
	return len(r.byName)
}

func qualify(name string) string {
	if name == "" || strings.Contains(name, ":") {
		return name
	}
	return namespace + ":" + name
}

func wellFormed(full string) bool {
	ns, path, ok := strings.Cut(full, ":")
	if !ok || ns == "" || path == "" {
		return false
	}
	return !strings.ContainsAny(full, " []{}\"'")
}
