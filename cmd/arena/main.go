package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"xiangqi/internal/match"
)

type Config struct {
	Games       int
	Concurrency int
	MaxPlies    int
}

var config Config

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	var err = run()
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	var a, b match.EngineConfig
	flag.IntVar(&config.Games, "games", 10, "number of games")
	flag.IntVar(&config.Concurrency, "concurrency", 4, "games played in parallel")
	flag.IntVar(&config.MaxPlies, "maxplies", 300, "declare a draw after this many plies")
	flag.StringVar(&a.Kind, "a", "minimax", "engine A: minimax | deepening | dynamic | excavation | mcts")
	flag.IntVar(&a.Depth, "a-depth", 2, "engine A minimax depth")
	flag.IntVar(&a.Iterations, "a-iters", 2000, "engine A mcts iterations")
	flag.StringVar(&a.Pack, "a-pack", "material", "engine A evaluation pack")
	flag.StringVar(&a.Rollout, "a-rollout", "random", "engine A mcts rollout")
	flag.StringVar(&b.Kind, "b", "mcts", "engine B")
	flag.IntVar(&b.Depth, "b-depth", 2, "engine B minimax depth")
	flag.IntVar(&b.Iterations, "b-iters", 2000, "engine B mcts iterations")
	flag.StringVar(&b.Pack, "b-pack", "material", "engine B evaluation pack")
	flag.StringVar(&b.Rollout, "b-rollout", "random", "engine B mcts rollout")
	seed := flag.Int64("seed", 0, "random seed (0: time based)")
	flag.Parse()

	if *seed != 0 {
		a.Seed, b.Seed = *seed, *seed+1
	}
	log.Printf("%+v", config)
	log.Printf("A: %+v", a)
	log.Printf("B: %+v", b)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := match.NewManager().RunSeries(ctx, match.SeriesConfig{
		A:           a,
		B:           b,
		Games:       config.Games,
		Concurrency: config.Concurrency,
		Alternate:   true,
		MaxPlies:    config.MaxPlies,
		Logger:      log.Default(),
	})
	if err != nil {
		return err
	}
	var stat = res.Stats()
	log.Printf("Score: %v - %v - %v  [%.3f] %v\n",
		res.AWins, res.BWins, res.Draws, stat.WinningFraction, stat.Games)
	log.Printf("Elo difference: %.1f, LOS: %.1f %%\n",
		stat.EloDifference, stat.LOS*100)
	return nil
}
