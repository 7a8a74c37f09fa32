package builder

import "github.com/VincentZyu233/woodenaxe/plugins/builder/define"

var woodSpecies = [...]string{"oak", "spruce", "birch", "jungle", "acacia", "dark_oak"}

var dyeColors = [...]string{
	"white", "orange", "magenta", "light_blue", "yellow", "lime", "pink", "gray",
	"light_gray", "cyan", "purple", "blue", "brown", "green", "red", "black",
}

var renamed = map[string]string{
	"grass_block":       "grass",
	"dirt_path":         "grass_path",
	"rooted_dirt":       "dirt_with_roots",
	"infested_stone":    "monster_egg",
	"bricks":            "brick_block",
	"snow_block":        "snow",
	"melon":             "melon_block",
	"lily_pad":          "waterlily",
	"nether_bricks":     "nether_brick",
	"end_stone_bricks":  "end_bricks",
	"red_nether_bricks": "red_nether_brick",
	"magma_block":       "magma",
	"sea_lantern":       "seaLantern",
	"jack_o_lantern":    "lit_pumpkin",
	"terracotta":        "hardened_clay",

	"cobblestone_wall":       "cobblestone_wall",
	"mossy_cobblestone_wall": "cobblestone_wall",
}

// Translator maps Java edition block identifiers onto Bedrock ones. The
// table is filled once by NewTranslator and only read afterwards.
type Translator struct {
	table map[string]string
}

func NewTranslator() *Translator {
	t := &Translator{table: make(map[string]string, 128)}
	ns := func(n string) string { return define.DefaultNS + ":" + n }
	for i, wood := range woodSpecies {
		if i < 4 {
			t.table[ns(wood+"_log")] = ns("log")
		} else {
			t.table[ns(wood+"_log")] = ns("log2")
		}
		t.table[ns(wood+"_planks")] = ns("planks")
		t.table[ns(wood+"_slab")] = ns("wooden_slab")
		t.table[ns(wood+"_stairs")] = ns(wood + "_stairs")
		t.table[ns(wood+"_fence")] = ns("fence")
	}
	for _, color := range dyeColors {
		t.table[ns(color+"_terracotta")] = ns("stained_hardened_clay")
		t.table[ns(color+"_concrete")] = ns("concrete")
		t.table[ns(color+"_wool")] = ns("wool")
		t.table[ns(color+"_stained_glass_pane")] = ns("stained_glass_pane")
	}
	for java, bedrock := range renamed {
		t.table[ns(java)] = ns(bedrock)
	}
	return t
}

// Translate returns the Bedrock name for a Java name, or the input when the
// two editions agree or the name is unknown.
func (t *Translator) Translate(name string) string {
	if bedrock, ok := t.table[name]; ok {
		return bedrock
	}
	return name
}

func (t *Translator) Len() int {
	return len(t.table)
}

var defaultTranslator = NewTranslator()

// TranslateBlockName maps name with the shared default table.
func TranslateBlockName(name string) string {
	return defaultTranslator.Translate(name)
}
