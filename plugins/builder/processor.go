package builder

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/atomic"

	"github.com/VincentZyu233/woodenaxe/plugins/builder/define"
	"github.com/VincentZyu233/woodenaxe/plugins/builder/loader/schem"
	"github.com/VincentZyu233/woodenaxe/plugins/journal"
)

const (
	CmdList    = "walist"
	CmdLoad    = "waload"
	CmdPos1    = "wapos1"
	CmdPos2    = "wapos2"
	CmdPos     = "wapos"
	CmdPaste   = "wapaste"
	CmdClear   = "waclear"
	CmdHistory = "wahistory"
	CmdHelp    = "wahelp"
)

var usage = []string{
	CmdList + " - list schematic files",
	CmdLoad + " <file> - load a schematic (.schem is added when no extension is given)",
	CmdPos1 + " [x y z [dimension]] - set pos1, your position when no coordinates are given",
	CmdPos2 + " [x y z [dimension]] - set pos2",
	CmdPos + " - show the current selection",
	CmdPaste + " - paste the loaded schematic at pos1",
	CmdClear + " - clear selection and loaded schematic",
	CmdHistory + " [n] - show your last pastes",
}

func IsCommand(word string) bool {
	switch word {
	case CmdList, CmdLoad, CmdPos1, CmdPos2, CmdPos, CmdPaste, CmdClear, CmdHistory, CmdHelp:
		return true
	}
	return false
}

var ErrBadFileName = errors.New("file name must not contain a path")

type Journal interface {
	Record(ctx context.Context, e journal.Entry) (journal.Entry, error)
	Recent(ctx context.Context, requester string, n int) ([]journal.Entry, error)
}

// Locator reports the block a player stands in and the dimension they are in
type Locator func(ctx context.Context, player string) (define.Pos, define.Dimension, error)

type Processor struct {
	SchematicDir     string
	DefaultExtension string
	Timeout          time.Duration
	Schematics       *SchematicStore
	Selections       *SelectionStore

	placer  *Placer
	journal Journal
	locate  Locator
	reply   func(requester string, msg string)
	log     func(isJson bool, data string)
	spawn   func(fn func())
	busy    atomic.Bool
}

func NewProcessor(dir string, placer *Placer) *Processor {
	return &Processor{
		SchematicDir:     dir,
		DefaultExtension: schem.Extensions[0],
		Timeout:          5 * time.Second,
		Schematics:       NewSchematicStore(),
		Selections:       NewSelectionStore(),
		placer:           placer,
		reply: func(requester string, msg string) {
			fmt.Printf("[%v] %v\n", requester, msg)
		},
		spawn: func(fn func()) { go fn() },
	}
}

func (p *Processor) Busy() bool {
	return p.busy.Load()
}

func (p *Processor) say(requester string, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	p.reply(requester, msg)
	if p.log != nil {
		p.log(false, requester+" < "+msg)
	}
}

// Process runs one command line already split into words. It reports false
// when the first word is not a builder command.
func (p *Processor) Process(requester string, cmds []string) bool {
	if len(cmds) == 0 || !IsCommand(cmds[0]) {
		return false
	}
	if p.log != nil {
		p.log(false, requester+" > "+strings.Join(cmds, " "))
	}
	args := cmds[1:]
	switch cmds[0] {
	case CmdList:
		p.list(requester)
	case CmdLoad:
		p.load(requester, args)
	case CmdPos1:
		p.setPos(requester, 1, args)
	case CmdPos2:
		p.setPos(requester, 2, args)
	case CmdPos:
		p.showPos(requester)
	case CmdPaste:
		p.paste(requester)
	case CmdClear:
		p.clear(requester)
	case CmdHistory:
		p.history(requester, args)
	default:
		for _, line := range usage {
			p.say(requester, "%v", line)
		}
	}
	return true
}

func (p *Processor) list(requester string) {
	names, err := schem.List(p.SchematicDir)
	if err != nil {
		p.say(requester, "Cannot list schematics: %v", err)
		return
	}
	if len(names) == 0 {
		p.say(requester, "No schematics found in %v", p.SchematicDir)
		return
	}
	p.say(requester, "Schematics (%d):", len(names))
	for _, n := range names {
		p.say(requester, "- %v", n)
	}
}

// resolveName appends the default extension to bare names and refuses anything
// that could leave the schematic directory.
func (p *Processor) resolveName(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("%w: %q", ErrBadFileName, name)
	}
	if !strings.Contains(name, ".") {
		name += p.DefaultExtension
	}
	return name, nil
}

func (p *Processor) load(requester string, args []string) {
	if len(args) < 1 {
		p.say(requester, "Usage: %v <file>", CmdLoad)
		return
	}
	name, err := p.resolveName(args[0])
	if err != nil {
		p.say(requester, "Failed to load: %v", err)
		return
	}
	s, err := schem.Load(filepath.Join(p.SchematicDir, name))
	if err != nil {
		p.say(requester, "Failed to load %v: %v", name, err)
		return
	}
	p.Schematics.Put(requester, name, s)
	p.say(requester, "Loaded %v: %dx%dx%d, %d palette entries", name, s.Width(), s.Height(), s.Length(), s.PaletteSize())
	if err := schem.Check(s); err != nil {
		p.say(requester, "Warning: %v, the paste will place nothing", err)
	} else if s.DecodedCells() < s.Volume() {
		p.say(requester, "Warning: block data covers %d of %d cells", s.DecodedCells(), s.Volume())
	}
}

func parseCoordinates(args []string) (define.Pos, error) {
	pos := define.Pos{}
	for i, axis := range []string{"X", "Y", "Z"} {
		v, err := strconv.ParseInt(args[i], 10, 32)
		if err != nil {
			return pos, fmt.Errorf("%v coordinate %v is not an integer", axis, args[i])
		}
		pos[i] = define.PE(v)
	}
	return pos, nil
}

func (p *Processor) setPos(requester string, which int, args []string) {
	var (
		pos define.Pos
		dim define.Dimension
		err error
	)
	switch {
	case len(args) == 0:
		if p.locate == nil {
			p.say(requester, "Cannot find your position, give coordinates: wapos%d x y z", which)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), p.Timeout)
		pos, dim, err = p.locate(ctx, requester)
		cancel()
		if err != nil {
			p.say(requester, "Cannot find your position (%v)", err)
			return
		}
	case len(args) >= 3:
		if pos, err = parseCoordinates(args); err != nil {
			p.say(requester, "%v", err)
			return
		}
		if sel, ok := p.Selections.Get(requester); ok {
			dim = sel.Dimension
		}
		if len(args) >= 4 {
			d, ok := define.ParseDimension(args[3])
			if !ok {
				p.say(requester, "Unknown dimension %v", args[3])
				return
			}
			dim = d
		}
	default:
		p.say(requester, "Usage: wapos%d [x y z [dimension]]", which)
		return
	}
	if which == 1 {
		p.Selections.SetPos1(requester, pos, dim)
	} else {
		p.Selections.SetPos2(requester, pos, dim)
	}
	p.say(requester, "Pos%d set to (%v, %v, %v) in %v", which, pos.X(), pos.Y(), pos.Z(), dim)
}

func (p *Processor) showPos(requester string) {
	sel, ok := p.Selections.Get(requester)
	if !ok {
		p.say(requester, "No selection")
		return
	}
	for i, pos := range []*define.Pos{sel.Pos1, sel.Pos2} {
		if pos == nil {
			p.say(requester, "Pos%d: Not set", i+1)
		} else {
			p.say(requester, "Pos%d: (%v, %v, %v)", i+1, pos.X(), pos.Y(), pos.Z())
		}
	}
	p.say(requester, "Dimension: %v", sel.Dimension)
}

func (p *Processor) clear(requester string) {
	p.Selections.Clear(requester)
	p.Schematics.Delete(requester)
	p.say(requester, "Selection and loaded schematic cleared")
}

func (p *Processor) paste(requester string) {
	loaded, ok := p.Schematics.Get(requester)
	if !ok {
		p.say(requester, "No schematic loaded, use %v <file> first", CmdLoad)
		return
	}
	sel, ok := p.Selections.Get(requester)
	if !ok || sel.Pos1 == nil {
		p.say(requester, "Please set pos1 first (%v)", CmdPos1)
		return
	}
	if !p.busy.CompareAndSwap(false, true) {
		p.say(requester, "A paste is already running")
		return
	}
	base := *sel.Pos1
	p.say(requester, "Pasting %v at (%v, %v, %v) in %v", loaded.File, base.X(), base.Y(), base.Z(), sel.Dimension)
	p.spawn(func() {
		defer p.busy.Store(false)
		p.runPaste(requester, loaded, base, sel.Dimension)
	})
}

func (p *Processor) runPaste(requester string, loaded LoadedSchematic, base define.Pos, dim define.Dimension) {
	p.placer.OnProgress = func(pr Progress) {
		p.say(requester, "Progress: layer %d/%d (placed %d, skipped %d, failed %d)",
			pr.Layer, pr.Layers, pr.Placed, pr.Skipped, pr.Failed)
	}
	started := time.Now()
	sum, err := p.placer.Place(loaded.Schematic, base, dim)
	finished := time.Now()
	if err != nil {
		p.say(requester, "Paste failed: %v", err)
		return
	}
	if sum.Placed > 0 {
		p.say(requester, "Pasted %d blocks (skipped %d, failed %d) in %.1fs",
			sum.Placed, sum.Skipped, sum.Failed, finished.Sub(started).Seconds())
	} else {
		p.say(requester, "Nothing was placed (skipped %d, failed %d)", sum.Skipped, sum.Failed)
	}
	if sum.Unresolved > 0 {
		p.say(requester, "%d blocks had no matching block type", sum.Unresolved)
	}
	if p.journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.Timeout)
	defer cancel()
	_, err = p.journal.Record(ctx, journal.Entry{
		Requester:  requester,
		File:       loaded.File,
		X:          int32(base.X()),
		Y:          int32(base.Y()),
		Z:          int32(base.Z()),
		Dimension:  int32(dim),
		Placed:     sum.Placed,
		Skipped:    sum.Skipped,
		Failed:     sum.Failed,
		StartedAt:  started,
		FinishedAt: finished,
	})
	if err != nil && p.log != nil {
		p.log(false, fmt.Sprintf("journal: %v", err))
	}
}

func (p *Processor) history(requester string, args []string) {
	if p.journal == nil {
		p.say(requester, "History is not enabled")
		return
	}
	n := 5
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			p.say(requester, "Usage: %v [n]", CmdHistory)
			return
		}
		n = v
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.Timeout)
	defer cancel()
	entries, err := p.journal.Recent(ctx, requester, n)
	if err != nil {
		p.say(requester, "Cannot read history: %v", err)
		return
	}
	if len(entries) == 0 {
		p.say(requester, "No pastes yet")
		return
	}
	for _, e := range entries {
		p.say(requester, "#%d %v at (%v, %v, %v) in %v: placed %d, skipped %d, failed %d, %.1fs",
			e.ID, e.File, e.X, e.Y, e.Z, define.Dimension(e.Dimension), e.Placed, e.Skipped, e.Failed, e.Duration().Seconds())
	}
}
