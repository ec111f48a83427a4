package engine

import (
	"context"
	"errors"
	"time"

	"xiangqi/internal/xiangqi"
)

var (
	ErrGameOver    = errors.New("game is already over")
	ErrEmptyBudget = errors.New("search budget has no limit")
)

// SearchBudget 搜索预算，不同引擎只看自己关心的字段
type SearchBudget struct {
	Depth      int           // minimax 深度（ply）
	TimeLimit  time.Duration // MCTS 时间上限（0 表示不限制）
	Iterations int           // MCTS 迭代次数上限（0 表示不限制）
}

// 搜索结果
type SearchResult struct {
	Move     xiangqi.Move  // 选中的着法
	Value    float64       // 根节点的值（正：红方好，负：黑方好）
	Depth    int           // 实际搜索深度
	Nodes    int64         // minimax 访问的节点数 / MCTS 的迭代数
	TimeUsed time.Duration // 花费时间
}

// Engine 是对局双方共用的决策接口。每个 Engine 自己维护一棵树，
// 通过 Observe 跟上实际下出的着法。
type Engine interface {
	Name() string
	Decide(ctx context.Context, pos *xiangqi.Position, budget SearchBudget) (SearchResult, error)
	Observe(mv xiangqi.Move) error
}
