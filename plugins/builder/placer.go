package builder

import (
	"errors"
	"fmt"

	"github.com/VincentZyu233/woodenaxe/plugins/builder/define"
	"github.com/VincentZyu233/woodenaxe/plugins/builder/worker"
)

var ErrUnknownDimension = errors.New("builder: unknown dimension")

type Progress struct {
	Layer   int // layers finished so far
	Layers  int
	Placed  int
	Skipped int
	Failed  int
}

type PlaceSummary struct {
	Placed     int
	Skipped    int
	Failed     int
	Unresolved int // part of Failed
}

func (s PlaceSummary) Total() int {
	return s.Placed + s.Skipped + s.Failed
}

func (s *PlaceSummary) add(r define.PlaceResult, err error) {
	switch r {
	case define.Placed:
		s.Placed++
	case define.Skipped:
		s.Skipped++
	case define.Failed:
		s.Failed++
		if errors.Is(err, worker.ErrUnresolvedBlockType) {
			s.Unresolved++
		}
	}
}

// Placer projects a schematic into a world through a Worker.
// It is not safe for concurrent use; one Place call runs at a time.
type Placer struct {
	Worker        worker.Worker
	Registry      worker.Registry
	Translator    *Translator
	Flags         define.UpdateFlag
	ProgressEvery int
	OnProgress    func(Progress)
}

func NewPlacer(w worker.Worker, r worker.Registry) *Placer {
	return &Placer{
		Worker:        w,
		Registry:      r,
		Translator:    defaultTranslator,
		Flags:         define.UpdateAll,
		ProgressEvery: define.ProgressLayers,
	}
}

// PlaceCell places a single palette entry at pos. Failures are returned
// alongside define.Failed so that the caller can count them by kind.
func (p *Placer) PlaceCell(blk define.Block, found bool, dim define.Dimension, pos define.Pos) (define.PlaceResult, error) {
	if !found || blk.IsEmpty() || blk.IsAir() {
		return define.Skipped, nil
	}
	name := p.Translator.Translate(blk.Name)
	bt, ok := p.Registry.Resolve(name)
	if !ok {
		return define.Failed, fmt.Errorf("%w: %v", worker.ErrUnresolvedBlockType, name)
	}
	if err := p.Worker.SetBlock(dim, pos, bt, p.Flags); err != nil {
		return define.Failed, err
	}
	return define.Placed, nil
}

// Place walks s layer by layer (y, then z, then x) and places every cell at
// base + local + s.Offset(). Per-cell failures are counted and never stop the walk.
func (p *Placer) Place(s *define.Schematic, base define.Pos, dim define.Dimension) (PlaceSummary, error) {
	sum := PlaceSummary{}
	if _, ok := dim.Name(); !ok {
		return sum, fmt.Errorf("%w: %v", ErrUnknownDimension, int32(dim))
	}
	every := p.ProgressEvery
	if every <= 0 {
		every = define.ProgressLayers
	}
	origin := base.Add(s.Offset())
	w, h, l := s.Width(), s.Height(), s.Length()
	for y := 0; y < h; y++ {
		for z := 0; z < l; z++ {
			for x := 0; x < w; x++ {
				blk, found := s.Block(x, y, z)
				pos := origin.Add(define.Pos{define.PE(x), define.PE(y), define.PE(z)})
				r, err := p.PlaceCell(blk, found, dim, pos)
				sum.add(r, err)
			}
		}
		if p.OnProgress != nil && ((y+1)%every == 0 || y == h-1) {
			p.OnProgress(Progress{
				Layer: y + 1, Layers: h,
				Placed: sum.Placed, Skipped: sum.Skipped, Failed: sum.Failed,
			})
		}
	}
	return sum, nil
}
