// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"pkg.world.dev/world-engine/lifecycle"
	"pkg.world.dev/world-engine/lifecycle/types"
	"pkg.world.dev/world-engine/lifecycle/world"
)

type position struct {
	X, Y float64
}

func (position) Name() string { return "position" }

type velocity struct {
	DX, DY float64
}

func (velocity) Name() string { return "velocity" }

func main() {
	zerolog.SetGlobalLevel(zerolog.Disabled)

	rounds := 50
	iters := 100
	entities := 10000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for r := 0; r < rounds; r++ {
		alloc := lifecycle.NewAllocator(lifecycle.WithDefaultSize(numEntities * 2))
		w, err := world.New(alloc)
		if err != nil {
			panic(err)
		}
		if err := world.RegisterComponent[position](w); err != nil {
			panic(err)
		}
		if err := world.RegisterComponent[velocity](w); err != nil {
			panic(err)
		}

		ids := make([]types.EntityID, 0, numEntities)
		for i := 0; i < iters; i++ {
			ids = ids[:0]
			for j := 0; j < numEntities; j++ {
				id, err := w.AddEntity()
				if err != nil {
					panic(err)
				}
				if err := world.AddComponentTo[position](w, id); err != nil {
					panic(err)
				}
				if j%2 == 0 {
					if err := world.AddComponentTo[velocity](w, id); err != nil {
						panic(err)
					}
				}
				ids = append(ids, id)
			}
			for _, id := range ids {
				w.RemoveEntity(id)
			}
		}
	}
}
