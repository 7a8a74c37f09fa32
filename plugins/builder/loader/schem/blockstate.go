package schem

import (
	"strings"

	"github.com/VincentZyu233/woodenaxe/plugins/builder/define"
)

// ParseBlockState splits "ns:name[k1=v1,k2=v2]" into a Block. An unterminated
// bracket yields the identifier alone; a pair without '=' ends property
// parsing for the string.
func ParseBlockState(state string) define.Block {
	open := strings.IndexByte(state, '[')
	if open < 0 {
		return define.NewBlock(state)
	}
	blk := define.NewBlock(state[:open])
	end := strings.IndexByte(state[open:], ']')
	if end < 0 {
		return blk
	}
	body := state[open+1 : open+end]
	if body == "" {
		return blk
	}
	for _, pair := range strings.Split(body, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			break
		}
		blk = blk.With(k, v)
	}
	return blk
}
