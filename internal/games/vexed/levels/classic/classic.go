// Package classic embeds the 59-level campaign and registers it as the
// "classic" pack.
package classic

import (
	"embed"
	"sync"

	"github.com/vovakirdan/vexed/internal/games/vexed/levels"
	"github.com/vovakirdan/vexed/internal/registry"
)

// ID is the registry identifier of the classic pack.
const ID = "classic"

//go:embed data/level.*
var data embed.FS

var load = sync.OnceValues(func() (*levels.Pack, error) {
	return levels.LoadPack(ID, "Classic", data, "data")
})

// Pack returns the classic pack. The embedded files are parsed once.
func Pack() (*levels.Pack, error) {
	return load()
}

func init() {
	registry.Register(ID, "Classic", func() (registry.Pack, error) {
		p, err := Pack()
		if err != nil {
			return nil, err
		}
		return p, nil
	})
}
