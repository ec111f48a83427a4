package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"xiangqi/internal/xiangqi"
)

func perft(p *xiangqi.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}
	succ := p.LegalSuccessors()
	if depth == 1 {
		return int64(len(succ))
	}
	var n int64
	for _, s := range succ {
		n += perft(s.Pos, depth-1)
	}
	return n
}

func main() {
	fen := flag.String("fen", "", "position to inspect (default: initial position)")
	depth := flag.Int("perft", 3, "perft depth")
	flag.Parse()

	pos := xiangqi.NewInitialPosition()
	if *fen != "" {
		var err error
		if pos, err = xiangqi.DecodePosition(*fen); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Println("FEN:", pos.Encode())
	fmt.Println(pos.Board.String())
	fmt.Println("Result:", pos.Result())
	fmt.Println("Legal moves:", pos.LegalMoves())
	for d := 1; d <= *depth; d++ {
		start := time.Now()
		n := perft(pos, d)
		fmt.Printf("perft(%d) = %d  %v\n", d, n, time.Since(start).Round(time.Millisecond))
	}
}
