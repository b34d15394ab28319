// Command gol-soak measures how the stagnation reseed behaves in bulk: it
// runs many seeded universes in a worker pool and reports when each one
// first froze and had to be reseeded.
package main

import (
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/lisp-ceo/gol/pkg/life"

	"github.com/integrii/flaggy"
)

type runResult struct {
	seed int64
	// firstReseed is the generation of the first stagnation reseed, zero
	// when the universe never froze within the run.
	firstReseed int
	reseeds     int
	population  int
}

func main() {
	runs := 100
	steps := 2000
	workers := runtime.NumCPU()
	width, height := 64, 64
	baseSeed := int64(1)
	fillName := "random"
	threads := 1

	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&runs, "r", "runs", "Number of universes to simulate")
	flaggy.Int(&steps, "s", "steps", "Generations per universe")
	flaggy.Int(&workers, "w", "workers", "Number of worker goroutines")
	flaggy.Int(&width, "x", "width", "Width of each universe")
	flaggy.Int(&height, "y", "height", "Height of each universe")
	flaggy.Int64(&baseSeed, "", "seed", "Base seed; run i uses seed+i")
	flaggy.String(&fillName, "f", "fill", "Initial fill [dead|random|pattern]")
	flaggy.Int(&threads, "t", "threads", "Row bands stepped in parallel per universe")
	flaggy.Parse()

	fill, err := life.ParseFill(fillName)
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}

	base := life.Config{Width: width, Height: height, Fill: fill, Threads: threads}
	base.Seed = baseSeed
	if _, err := life.NewWithConfig(base); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Soaking %d universes of %dx%d for %d generations each (%d workers)\n",
		runs, width, height, steps, workers)

	jobs := make(chan int64)
	results := make(chan runResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range jobs {
				results <- soak(base, seed, steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for i := 0; i < runs; i++ {
			jobs <- baseSeed + int64(i)
		}
		close(jobs)
	}()

	start := time.Now()
	var all []runResult
	totalReseeds := 0
	stagnated := 0
	for res := range results {
		all = append(all, res)
		totalReseeds += res.reseeds
		if res.firstReseed > 0 {
			stagnated++
		}
	}
	elapsed := time.Since(start)

	// Runs that never froze sort last.
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i].firstReseed, all[j].firstReseed
		if a == 0 {
			a = steps + 1
		}
		if b == 0 {
			b = steps + 1
		}
		if a != b {
			return a < b
		}
		return all[i].seed < all[j].seed
	})

	fmt.Printf("\n%d of %d universes stagnated at least once (%d reseeds total, elapsed %s)\n",
		stagnated, len(all), totalReseeds, elapsed.Round(time.Millisecond))

	if stagnated > 0 {
		firsts := make([]int, 0, stagnated)
		for _, res := range all {
			if res.firstReseed > 0 {
				firsts = append(firsts, res.firstReseed)
			}
		}
		fmt.Printf("First stagnation after min=%d median=%d max=%d generations\n",
			firsts[0], firsts[len(firsts)/2], firsts[len(firsts)-1])

		fmt.Println("\nEarliest stagnations:")
		for i := 0; i < len(all) && i < 5; i++ {
			res := all[i]
			if res.firstReseed == 0 {
				break
			}
			fmt.Printf("%2d) seed=%d first=%d reseeds=%d finalPop=%d\n",
				i+1, res.seed, res.firstReseed, res.reseeds, res.population)
		}
	}
}

func soak(base life.Config, seed int64, steps int) runResult {
	cfg := base
	cfg.Seed = seed
	u, err := life.NewWithConfig(cfg)
	if err != nil {
		// The dimensions were validated before the pool started.
		panic(err)
	}

	rr := runResult{seed: seed}
	for gen := 1; gen <= steps; gen++ {
		if u.Tick().Reseeded {
			rr.reseeds++
			if rr.firstReseed == 0 {
				rr.firstReseed = gen
			}
		}
	}
	rr.population = u.Population()
	return rr
}
