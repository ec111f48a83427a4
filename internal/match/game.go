package match

import (
	"context"
	"fmt"
	"io"
	"log"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

// Player 引擎 + 每步预算
type Player struct {
	Engine engine.Engine
	Budget engine.SearchBudget
}

type Options struct {
	Start    *xiangqi.Position // nil 表示标准开局
	MaxPlies int               // 超过这么多步判和，0 表示不限制
	Logger   *log.Logger       // nil 不打日志
	// OnMove 每走一步回调一次，用来实时显示
	OnMove func(ply int, mv xiangqi.Move, res engine.SearchResult, pos *xiangqi.Position)
}

const (
	ReasonNoMoves    = "no legal moves"
	ReasonRepetition = "repetition"
	ReasonMaxPlies   = "max plies"
)

// Play 红黑两个引擎各自维护自己的树，每走一步都用 Observe 通知双方
func (m *Manager) Play(ctx context.Context, red, black Player, opts Options) (*Record, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	g := m.NewGame(red.Engine.Name(), black.Engine.Name(), opts.Start)
	logger.Printf("game %s started: %s (red) vs %s (black)", g.ID, g.Red, g.Black)

	pos := g.Start
	for ply := 0; ; ply++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if res := pos.Result(); res.IsTerminal() {
			reason := ReasonNoMoves
			if res == xiangqi.Draw {
				reason = ReasonRepetition
			}
			return m.finish(logger, g.ID, res, reason)
		}
		if opts.MaxPlies > 0 && ply >= opts.MaxPlies {
			return m.finish(logger, g.ID, xiangqi.Draw, ReasonMaxPlies)
		}

		p := red
		if pos.SideToMove == xiangqi.Black {
			p = black
		}
		res, err := p.Engine.Decide(ctx, pos, p.Budget)
		if err != nil {
			return nil, fmt.Errorf("game %s ply %d %s: %w", g.ID, ply, p.Engine.Name(), err)
		}
		next, err := m.Apply(g.ID, res.Move)
		if err != nil {
			return nil, fmt.Errorf("game %s ply %d %s: %w", g.ID, ply, p.Engine.Name(), err)
		}
		for _, e := range []engine.Engine{red.Engine, black.Engine} {
			if err := e.Observe(res.Move); err != nil {
				return nil, fmt.Errorf("game %s ply %d: %w", g.ID, ply, err)
			}
		}
		pos = next
		if opts.OnMove != nil {
			opts.OnMove(ply, res.Move, res, pos)
		}
	}
}

func (m *Manager) finish(logger *log.Logger, id string, res xiangqi.Result, reason string) (*Record, error) {
	rec, err := m.Finish(id, res, reason)
	if err != nil {
		return nil, err
	}
	logger.Printf("game %s finished after %d plies: %v (%s)", id, len(rec.Moves), res, reason)
	return rec, nil
}

// Play 用一个临时 Manager 下一盘
func Play(ctx context.Context, red, black Player, opts Options) (*Record, error) {
	return NewManager().Play(ctx, red, black, opts)
}
