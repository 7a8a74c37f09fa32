package builder

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VincentZyu233/woodenaxe/plugins/builder/define"
)

func TestSchematicStore(t *testing.T) {
	st := NewSchematicStore()
	s := define.NewSchematic(1, 1, 1, define.Pos{}, nil, nil)

	_, ok := st.Get("steve")
	assert.False(t, ok)

	st.Put("steve", "house.schem", s)
	got, ok := st.Get("steve")
	require.True(t, ok)
	assert.Equal(t, "house.schem", got.File)
	assert.Same(t, s, got.Schematic)

	_, ok = st.Get("alex")
	assert.False(t, ok)

	assert.True(t, st.Delete("steve"))
	assert.False(t, st.Delete("steve"))
	assert.Zero(t, st.Len())
}

func TestSelectionStore(t *testing.T) {
	st := NewSelectionStore()

	sel := st.SetPos1("steve", define.Pos{1, 2, 3}, define.Overworld)
	require.NotNil(t, sel.Pos1)
	assert.Nil(t, sel.Pos2)

	sel = st.SetPos2("steve", define.Pos{4, 5, 6}, define.Nether)
	assert.Equal(t, define.Pos{1, 2, 3}, *sel.Pos1)
	assert.Equal(t, define.Pos{4, 5, 6}, *sel.Pos2)
	assert.Equal(t, define.Nether, sel.Dimension)

	// a later write does not reach earlier copies
	st.SetPos1("steve", define.Pos{9, 9, 9}, define.Nether)
	assert.Equal(t, define.Pos{1, 2, 3}, *sel.Pos1)

	assert.True(t, st.Clear("steve"))
	_, ok := st.Get("steve")
	assert.False(t, ok)
}

func TestStoresAreIndependentPerRequester(t *testing.T) {
	schematics := NewSchematicStore()
	selections := NewSelectionStore()
	wg := sync.WaitGroup{}
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			who := fmt.Sprintf("player%d", i)
			schematics.Put(who, who+".schem", define.NewSchematic(i, 1, 1, define.Pos{}, nil, nil))
			selections.SetPos1(who, define.Pos{define.PE(i), 0, 0}, define.Overworld)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 32, schematics.Len())
	for i := 0; i < 32; i++ {
		who := fmt.Sprintf("player%d", i)
		l, ok := schematics.Get(who)
		require.True(t, ok)
		assert.Equal(t, i, l.Schematic.Width())
		sel, ok := selections.Get(who)
		require.True(t, ok)
		assert.Equal(t, define.PE(i), sel.Pos1.X())
	}
}
