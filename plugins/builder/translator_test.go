package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	world "github.com/VincentZyu233/woodenaxe/world/define"
)

func TestTranslateBlockName(t *testing.T) {
	cases := map[string]string{
		"minecraft:oak_log":                "minecraft:log",
		"minecraft:jungle_log":             "minecraft:log",
		"minecraft:acacia_log":             "minecraft:log2",
		"minecraft:dark_oak_log":           "minecraft:log2",
		"minecraft:birch_planks":           "minecraft:planks",
		"minecraft:spruce_slab":            "minecraft:wooden_slab",
		"minecraft:oak_fence":              "minecraft:fence",
		"minecraft:red_wool":               "minecraft:wool",
		"minecraft:lime_concrete":          "minecraft:concrete",
		"minecraft:black_terracotta":       "minecraft:stained_hardened_clay",
		"minecraft:terracotta":             "minecraft:hardened_clay",
		"minecraft:grass_block":            "minecraft:grass",
		"minecraft:sea_lantern":            "minecraft:seaLantern",
		"minecraft:mossy_cobblestone_wall": "minecraft:cobblestone_wall",
		// misses come back unchanged
		"minecraft:stone": "minecraft:stone",
		"oak_log":         "oak_log",
		"custom:thing":    "custom:thing",
		"":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, TranslateBlockName(in), in)
	}
}

func TestTranslatorTable(t *testing.T) {
	tr := NewTranslator()
	assert.Equal(t, 111, tr.Len())
	assert.Equal(t, defaultTranslator.Len(), tr.Len())

	// every target must be placeable with the embedded registry
	reg := world.DefaultRegistry()
	for _, target := range tr.table {
		_, ok := reg.Resolve(target)
		assert.True(t, ok, target)
	}
}
