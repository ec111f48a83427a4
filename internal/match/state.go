package match

import (
	"time"

	"xiangqi/internal/xiangqi"
)

// GameState 一盘正在进行或已结束的对局
type GameState struct {
	ID        string
	Red       string // 红方引擎名
	Black     string // 黑方引擎名
	Start     *xiangqi.Position
	Pos       *xiangqi.Position
	Moves     []xiangqi.Move
	Result    xiangqi.Result
	Reason    string
	CreatedAt time.Time
	UpdatedAt time.Time

	seq int
}

// Record 是 GameState 的快照，可以在别的 goroutine 里随便读
type Record struct {
	ID       string
	Red      string
	Black    string
	StartFEN string
	FinalFEN string
	Moves    []xiangqi.Move
	Result   xiangqi.Result
	Reason   string
	Duration time.Duration
}

func (g *GameState) record() *Record {
	return &Record{
		ID:       g.ID,
		Red:      g.Red,
		Black:    g.Black,
		StartFEN: g.Start.Encode(),
		FinalFEN: g.Pos.Encode(),
		Moves:    append([]xiangqi.Move(nil), g.Moves...),
		Result:   g.Result,
		Reason:   g.Reason,
		Duration: g.UpdatedAt.Sub(g.CreatedAt),
	}
}
