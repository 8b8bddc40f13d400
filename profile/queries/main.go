// Profiling:
// go build ./profile/queries
// go tool pprof -http=":8000" -nodefraction=0.001 ./queries cpu.pprof

package main

import (
	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"pkg.world.dev/world-engine/lifecycle"
	"pkg.world.dev/world-engine/lifecycle/filter"
	"pkg.world.dev/world-engine/lifecycle/types"
	"pkg.world.dev/world-engine/lifecycle/world"
)

type comp1 struct {
	V, W int64
}

func (comp1) Name() string { return "comp1" }

type comp2 struct {
	V, W int64
}

func (comp2) Name() string { return "comp2" }

type comp3 struct {
	V, W int64
}

func (comp3) Name() string { return "comp3" }

// sink keeps the query loops from being optimized away.
var sink int

func main() {
	zerolog.SetGlobalLevel(zerolog.Disabled)

	rounds := 50
	iters := 1000
	entities := 10000
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
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
		if err := world.RegisterComponent[comp1](w); err != nil {
			panic(err)
		}
		if err := world.RegisterComponent[comp2](w); err != nil {
			panic(err)
		}
		if err := world.RegisterComponent[comp3](w); err != nil {
			panic(err)
		}

		both, err := w.RegisterQuery(filter.Contains(comp1{}, comp2{}))
		if err != nil {
			panic(err)
		}
		missing, err := w.RegisterQuery(filter.Not(filter.Contains(comp3{})))
		if err != nil {
			panic(err)
		}

		ids := make([]types.EntityID, 0, numEntities)
		for j := 0; j < numEntities; j++ {
			id, err := w.AddEntity()
			if err != nil {
				panic(err)
			}
			if err := world.AddComponentTo[comp1](w, id); err != nil {
				panic(err)
			}
			if j%2 == 0 {
				if err := world.AddComponentTo[comp2](w, id); err != nil {
					panic(err)
				}
			}
			ids = append(ids, id)
		}

		for i := 0; i < iters; i++ {
			for j, id := range ids {
				if j%3 != 0 {
					continue
				}
				has, err := world.HasComponent[comp3](w, id)
				if err != nil {
					panic(err)
				}
				if has {
					err = world.RemoveComponentFrom[comp3](w, id)
				} else {
					err = world.AddComponentTo[comp3](w, id)
				}
				if err != nil {
					panic(err)
				}
			}

			total := 0
			both.Each(func(types.EntityID) bool {
				total++
				return true
			})
			missing.Each(func(types.EntityID) bool {
				total++
				return true
			})
			sink = total
		}
	}
}
