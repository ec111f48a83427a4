package match

import (
	"context"
	"errors"
	"testing"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

const mateInOneFEN = "4k4/8R/9/9/9/R8/9/9/9/3K5 w"

func mustPlayer(t *testing.T, c EngineConfig) Player {
	t.Helper()
	p, err := NewPlayer(c)
	if err != nil {
		t.Fatalf("player %+v: %v", c, err)
	}
	return p
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()
	g := m.NewGame("a", "b", nil)
	if g.Pos.Encode() != xiangqi.NewInitialPosition().Encode() {
		t.Fatalf("new game not at initial position: %s", g.Pos.Encode())
	}

	mv, _ := xiangqi.ParseMove("h2e2")
	if _, err := m.Apply(g.ID, mv); err != nil {
		t.Fatalf("apply: %v", err)
	}
	bad := xiangqi.Move{From: xiangqi.Sq(0, 0), To: xiangqi.Sq(5, 5)}
	if _, err := m.Apply(g.ID, bad); !errors.Is(err, xiangqi.ErrInvalidMove) {
		t.Fatalf("apply illegal err got=%v want=%v", err, xiangqi.ErrInvalidMove)
	}
	rec, err := m.Get(g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(rec.Moves) != 1 || rec.Moves[0] != mv || rec.Result != xiangqi.Ongoing {
		t.Fatalf("record got=%+v", rec)
	}

	if _, err := m.Finish(g.ID, xiangqi.Draw, "agreed"); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if rec, _ := m.Get(g.ID); rec.Result != xiangqi.Draw || rec.Reason != "agreed" {
		t.Fatalf("finished record got=%v %q", rec.Result, rec.Reason)
	}

	for _, fn := range []func() error{
		func() error { _, err := m.Get("nope"); return err },
		func() error { _, err := m.Apply("nope", mv); return err },
		func() error { _, err := m.Finish("nope", xiangqi.Draw, ""); return err },
	} {
		if err := fn(); !errors.Is(err, ErrGameNotFound) {
			t.Fatalf("unknown id err got=%v want=%v", err, ErrGameNotFound)
		}
	}

	m.NewGame("c", "d", nil)
	list := m.List()
	if len(list) != 2 || list[0].ID != g.ID {
		t.Fatalf("list got=%d games, first=%v", len(list), list[0].ID)
	}
}

func TestRecordIsSnapshot(t *testing.T) {
	m := NewManager()
	g := m.NewGame("a", "b", nil)
	rec, _ := m.Get(g.ID)
	mv, _ := xiangqi.ParseMove("b0c2")
	if _, err := m.Apply(g.ID, mv); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(rec.Moves) != 0 || rec.FinalFEN != rec.StartFEN {
		t.Fatalf("old record changed: %+v", rec)
	}
}

func TestPlayMaxPlies(t *testing.T) {
	red := mustPlayer(t, EngineConfig{Kind: "minimax", Depth: 1, Seed: 1})
	black := mustPlayer(t, EngineConfig{Kind: "mcts", Iterations: 30, Seed: 2})
	plies := 0
	rec, err := Play(context.Background(), red, black, Options{
		MaxPlies: 6,
		OnMove:   func(int, xiangqi.Move, engine.SearchResult, *xiangqi.Position) { plies++ },
	})
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if len(rec.Moves) != 6 || plies != 6 {
		t.Fatalf("moves got=%d callbacks=%d want=6", len(rec.Moves), plies)
	}
	if rec.Result != xiangqi.Draw || rec.Reason != ReasonMaxPlies {
		t.Fatalf("result got=%v %q", rec.Result, rec.Reason)
	}
	if rec.Red != "minimax" || rec.Black != "mcts-random" {
		t.Fatalf("names got=%q %q", rec.Red, rec.Black)
	}

	// 重放着法要得到同一个终局
	pos, err := xiangqi.DecodePosition(rec.StartFEN)
	if err != nil {
		t.Fatalf("decode start: %v", err)
	}
	for _, mv := range rec.Moves {
		if pos, err = pos.ApplyMove(mv); err != nil {
			t.Fatalf("replay %v: %v", mv, err)
		}
	}
	if pos.Encode() != rec.FinalFEN {
		t.Fatalf("replay got=%s want=%s", pos.Encode(), rec.FinalFEN)
	}
}

func TestPlayEndsOnMate(t *testing.T) {
	start, err := xiangqi.DecodePosition(mateInOneFEN)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	red := mustPlayer(t, EngineConfig{Kind: "deepening", Depth: 2, Seed: 1})
	black := mustPlayer(t, EngineConfig{Kind: "minimax", Depth: 1, Seed: 1})
	rec, err := Play(context.Background(), red, black, Options{Start: start, MaxPlies: 10})
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if rec.Result != xiangqi.RedWins || rec.Reason != ReasonNoMoves || len(rec.Moves) != 1 {
		t.Fatalf("got=%v %q after %d moves", rec.Result, rec.Reason, len(rec.Moves))
	}
}

func TestPlayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	red := mustPlayer(t, EngineConfig{Kind: "minimax", Depth: 1})
	black := mustPlayer(t, EngineConfig{Kind: "minimax", Depth: 1})
	if _, err := Play(ctx, red, black, Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err got=%v want=%v", err, context.Canceled)
	}
}

func TestEngineConfigValidate(t *testing.T) {
	cases := []struct {
		cfg  EngineConfig
		want error
	}{
		{EngineConfig{Kind: "alphazero"}, ErrUnknownEngine},
		{EngineConfig{Kind: "minimax", Pack: "7"}, engine.ErrUnknownPack},
		{EngineConfig{Kind: KindMCTS}, engine.ErrEmptyBudget},
		{EngineConfig{Kind: KindMCTS, Iterations: 5, Rollout: "lazy"}, engine.ErrUnknownRollout},
	}
	for _, c := range cases {
		if err := c.cfg.Validate(); !errors.Is(err, c.want) {
			t.Fatalf("%+v err got=%v want=%v", c.cfg, err, c.want)
		}
	}
	for _, kind := range []string{"minimax", "deepening", "dynamic", "excavation"} {
		e, err := NewEngine(EngineConfig{Kind: kind, Pack: "positional"})
		if err != nil || e.Name() != kind {
			t.Fatalf("NewEngine(%q) got=%v,%v", kind, e, err)
		}
	}
}

func TestRunSeries(t *testing.T) {
	m := NewManager()
	cfg := SeriesConfig{
		A:           EngineConfig{Kind: "minimax", Depth: 1, Seed: 3},
		B:           EngineConfig{Kind: KindMCTS, Iterations: 20, Rollout: "greedy", Seed: 4},
		Games:       4,
		Concurrency: 2,
		Alternate:   true,
		MaxPlies:    4,
	}
	res, err := m.RunSeries(context.Background(), cfg)
	if err != nil {
		t.Fatalf("series: %v", err)
	}
	if got := res.AWins + res.BWins + res.Draws; got != cfg.Games {
		t.Fatalf("results got=%d want=%d", got, cfg.Games)
	}
	for i, rec := range res.Records {
		if rec == nil {
			t.Fatalf("game %d missing", i)
		}
		wantRed := "minimax"
		if i%2 == 1 {
			wantRed = "mcts-greedy"
		}
		if rec.Red != wantRed {
			t.Fatalf("game %d red got=%q want=%q", i, rec.Red, wantRed)
		}
	}
	if got := len(m.List()); got != cfg.Games {
		t.Fatalf("manager games got=%d want=%d", got, cfg.Games)
	}
}

func TestRunSeriesBadConfig(t *testing.T) {
	cfg := SeriesConfig{
		A:     EngineConfig{Kind: "minimax"},
		B:     EngineConfig{Kind: "random"},
		Games: 2,
	}
	if _, err := NewManager().RunSeries(context.Background(), cfg); !errors.Is(err, ErrUnknownEngine) {
		t.Fatalf("err got=%v want=%v", err, ErrUnknownEngine)
	}
}

func TestSeriesStats(t *testing.T) {
	even := SeriesResult{AWins: 3, BWins: 3, Draws: 2}.Stats()
	if even.Games != 8 || even.WinningFraction != 0.5 || even.EloDifference != 0 || even.LOS != 0.5 {
		t.Fatalf("even stats got=%+v", even)
	}
	ahead := SeriesResult{AWins: 6, BWins: 2, Draws: 2}.Stats()
	if ahead.EloDifference <= 0 || ahead.LOS <= 0.5 {
		t.Fatalf("A ahead stats got=%+v", ahead)
	}
	if got := (SeriesResult{}).Stats(); got.Games != 0 {
		t.Fatalf("empty stats got=%+v", got)
	}
}
