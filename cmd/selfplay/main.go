package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/muesli/termenv"
	"xiangqi/internal/engine"
	"xiangqi/internal/match"
	"xiangqi/internal/xiangqi"
)

func main() {
	red := match.EngineConfig{}
	black := match.EngineConfig{}
	flag.StringVar(&red.Kind, "red", "minimax", "red engine: minimax | deepening | dynamic | excavation | mcts")
	flag.StringVar(&black.Kind, "black", "mcts", "black engine")
	depth := flag.Int("depth", engine.DefaultDepth, "minimax search depth")
	iters := flag.Int("iters", 2000, "mcts iterations per move")
	movetime := flag.Duration("movetime", 0, "mcts time per move (0: iterations only)")
	pack := flag.String("pack", "material", "evaluation pack: material | mobility | positional")
	rollout := flag.String("rollout", "random", "mcts rollout: random | bestof | greedy")
	seed := flag.Int64("seed", 0, "random seed (0: time based)")
	fen := flag.String("fen", "", "start position (default: initial position)")
	maxPlies := flag.Int("maxplies", 300, "declare a draw after this many plies")
	quiet := flag.Bool("quiet", false, "only print the result")
	flag.Parse()

	for i, c := range []*match.EngineConfig{&red, &black} {
		c.Depth = *depth
		c.Iterations = *iters
		c.TimeLimit = *movetime
		c.Pack = *pack
		c.Rollout = *rollout
		if *seed != 0 {
			c.Seed = *seed + int64(i)
		}
	}

	var start *xiangqi.Position
	if *fen != "" {
		pos, err := xiangqi.DecodePosition(*fen)
		if err != nil {
			log.Fatalf("bad fen: %v", err)
		}
		start = pos
	}

	redPlayer, err := match.NewPlayer(red)
	if err != nil {
		log.Fatalf("red: %v", err)
	}
	blackPlayer, err := match.NewPlayer(black)
	if err != nil {
		log.Fatalf("black: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := termenv.NewOutput(os.Stdout)
	opts := match.Options{
		Start:    start,
		MaxPlies: *maxPlies,
		Logger:   log.Default(),
	}
	if !*quiet {
		if start == nil {
			start = xiangqi.NewInitialPosition()
		}
		fmt.Println(renderBoard(out, &start.Board, nil))
		opts.OnMove = func(ply int, mv xiangqi.Move, res engine.SearchResult, pos *xiangqi.Position) {
			fmt.Printf("%3d. %-5s %v value=%.3f depth=%d nodes=%d time=%v\n",
				ply+1, pos.SideToMove.Opponent(), mv, res.Value, res.Depth, res.Nodes,
				res.TimeUsed.Round(time.Millisecond))
			fmt.Println(renderBoard(out, &pos.Board, &mv))
		}
	}

	rec, err := match.Play(ctx, redPlayer, blackPlayer, opts)
	if err != nil {
		log.Fatalf("game aborted: %v", err)
	}
	fmt.Printf("%s (red) vs %s (black): %v, %s, %d plies in %v\n",
		rec.Red, rec.Black, rec.Result, rec.Reason, len(rec.Moves), rec.Duration.Round(time.Millisecond))
	fmt.Println("final:", rec.FinalFEN)
}
