package main

import (
	"context"
	"io"
	"sync"

	"github.com/cheggaaa/pb/v3"

	"github.com/vovakirdan/vexed/internal/games/vexed/core"
	"github.com/vovakirdan/vexed/internal/games/vexed/solver"
	"github.com/vovakirdan/vexed/internal/registry"
)

// levelReport is the analysis of one level.
type levelReport struct {
	Level    int
	Movable  int
	Colors   int
	Invalid  error // strict validation failure
	Moves    int   // shortest solution length, when solved
	Explored int
	SolveErr error
}

func (r levelReport) ok() bool {
	return r.Invalid == nil && r.SolveErr == nil
}

// analyzeLevels validates, settles and optionally solves every level of the
// pack on a pool of workers. Reports are returned in level order.
func analyzeLevels(ctx context.Context, pack registry.Pack, workers int, solve bool, opts solver.Options, progress io.Writer) []levelReport {
	count := pack.Count()
	reports := make([]levelReport, count)
	workers = max(1, min(workers, count))

	bar := pb.New(count).SetWriter(progress).Start()

	jobs := make(chan int)
	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for n := range jobs {
				reports[n-1] = analyzeLevel(ctx, pack, n, solve, opts)
				bar.Increment()
			}
		}()
	}

	for n := 1; n <= count; n++ {
		if ctx.Err() != nil {
			reports[n-1] = levelReport{Level: n, SolveErr: ctx.Err()}
			continue
		}
		jobs <- n
	}
	close(jobs)
	wg.Wait()
	bar.Finish()

	return reports
}

func analyzeLevel(ctx context.Context, pack registry.Pack, n int, solve bool, opts solver.Options) levelReport {
	r := levelReport{Level: n}
	text, err := pack.LevelText(ctx, n)
	if err != nil {
		r.Invalid = err
		return r
	}
	r.Invalid = core.ValidateLevel(text)

	b, _ := core.Settle(core.ParseLevel(text))
	r.Movable = b.CountMovable()
	r.Colors = len(b.CountByType())

	if !solve {
		return r
	}
	sol, err := solver.Solve(ctx, b, opts)
	r.Explored = sol.Explored
	if err != nil {
		r.SolveErr = err
		return r
	}
	r.Moves = len(sol.Moves)
	return r
}
