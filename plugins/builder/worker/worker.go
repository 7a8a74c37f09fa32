package worker

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"github.com/VincentZyu233/woodenaxe/plugins/builder/define"
	world "github.com/VincentZyu233/woodenaxe/world/define"
)

var (
	ErrUnresolvedBlockType = errors.New("worker: block type not in registry")
	ErrPlacementFailed     = errors.New("worker: placement rejected")
)

// Registry resolves a textual identifier to a placeable block type.
type Registry interface {
	Resolve(name string) (world.BlockType, bool)
}

// Worker sets blocks in the target world. Calls come from a single goroutine.
type Worker interface {
	SetBlock(dim define.Dimension, pos define.Pos, blk world.BlockType, flags define.UpdateFlag) error
}

type BlockOp struct {
	Dim   define.Dimension
	Pos   define.Pos
	Block world.BlockType
	Flags define.UpdateFlag
}

// DebugWorker records every SetBlock call instead of touching a world.
type DebugWorker struct {
	Mu           sync.Mutex
	Ops          []BlockOp
	OpCounter    atomic.Int64
	BlockCounter atomic.Int64
	// Reject makes SetBlock fail for the listed positions.
	Reject map[define.Pos]bool
	// Print echoes each op as a setblock line.
	Print func(string)
}

func (w *DebugWorker) SetBlock(dim define.Dimension, pos define.Pos, blk world.BlockType, flags define.UpdateFlag) error {
	w.OpCounter.Inc()
	w.Mu.Lock()
	defer w.Mu.Unlock()
	if w.Reject[pos] {
		return fmt.Errorf("%w: %v at %v", ErrPlacementFailed, blk.Name, pos)
	}
	w.Ops = append(w.Ops, BlockOp{Dim: dim, Pos: pos, Block: blk, Flags: flags})
	w.BlockCounter.Inc()
	if w.Print != nil {
		w.Print(fmt.Sprintf("[%v] setblock %v %v", dim, pos, blk.Name))
	}
	return nil
}

// Reset clears recorded ops and counters.
func (w *DebugWorker) Reset() {
	w.Mu.Lock()
	defer w.Mu.Unlock()
	w.Ops = nil
	w.OpCounter.Store(0)
	w.BlockCounter.Store(0)
}
