package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/VincentZyu233/woodenaxe/plugins/builder"
	"github.com/VincentZyu233/woodenaxe/plugins/builder/define"
	"github.com/VincentZyu233/woodenaxe/plugins/builder/loader/schem"
	"github.com/VincentZyu233/woodenaxe/plugins/builder/worker"
	world "github.com/VincentZyu233/woodenaxe/world/define"
)

func main() {
	file := flag.String("f", "", "schematic file")
	x := flag.Int("x", 0, "base x")
	y := flag.Int("y", 64, "base y")
	z := flag.Int("z", 0, "base z")
	dim := flag.String("dim", "overworld", "dimension name or id")
	verbose := flag.Bool("v", false, "print every setblock")
	permissive := flag.Bool("permissive", false, "accept any well-formed block name")
	flag.Parse()
	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	d, ok := define.ParseDimension(*dim)
	if !ok {
		color.Red("unknown dimension %v", *dim)
		os.Exit(2)
	}

	color.Blue("Loading %v", *file)
	s, err := schem.Load(*file)
	if err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
	fmt.Printf("Size %dx%dx%d (%d cells), offset %v, palette %d, decoded %d\n",
		s.Width(), s.Height(), s.Length(), s.Volume(), s.Offset(), s.PaletteSize(), s.DecodedCells())
	if err := schem.Check(s); err != nil {
		color.Yellow("Warning: %v", err)
	}

	w := &worker.DebugWorker{}
	if *verbose {
		w.Print = func(s string) { fmt.Println(s) }
	}
	registry := world.DefaultRegistry()
	if *permissive {
		registry = registry.Permissive()
	}
	placer := builder.NewPlacer(w, registry)
	placer.OnProgress = func(p builder.Progress) {
		color.Blue("layer %d/%d placed %d skipped %d failed %d", p.Layer, p.Layers, p.Placed, p.Skipped, p.Failed)
	}
	sum, err := placer.Place(s, define.Pos{define.PE(*x), define.PE(*y), define.PE(*z)}, d)
	if err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
	color.Green("Placed %d, skipped %d, failed %d (%d unresolved)", sum.Placed, sum.Skipped, sum.Failed, sum.Unresolved)
	fmt.Println(w.BlockCounter.Load())
	fmt.Println(w.OpCounter.Load())
}
