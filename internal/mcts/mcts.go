package mcts

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"xiangqi/internal/engine"
	"xiangqi/internal/xiangqi"
)

// Stats 节点统计。Reward 是红方视角的累计结果，不随层数翻转。
type Stats struct {
	Visits int
	Reward float64
}

// Engine 单线程 UCT 搜索：选择 → 展开 → 模拟 → 回传
type Engine struct {
	params Params
	eval   engine.Evaluator
	rng    *rand.Rand
	tree   *engine.Tree[Stats]
}

func New(params Params, rng *rand.Rand) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	eval := params.Evaluator
	if eval == nil {
		eval = params.Pack
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{params: params, eval: eval, rng: rng}, nil
}

func (e *Engine) Name() string { return "mcts-" + e.params.Rollout.String() }

func (e *Engine) Observe(mv xiangqi.Move) error {
	if e.tree == nil {
		return nil
	}
	if err := e.tree.Advance(mv); err != nil {
		return fmt.Errorf("%s: %w", e.Name(), err)
	}
	return nil
}

func (e *Engine) sync(pos *xiangqi.Position) {
	if e.tree == nil {
		e.tree = engine.NewTree[Stats](pos)
		return
	}
	root := e.tree.Node(e.tree.Root()).Pos
	if root.Hash != pos.Hash || root.Ply != pos.Ply {
		e.tree.Reset(pos)
	}
}

// Decide 在预算内反复迭代，返回访问次数最多的根子节点。
// 截止时间和 ctx 只在两次迭代之间检查，每次迭代的模拟总会做完。
func (e *Engine) Decide(ctx context.Context, pos *xiangqi.Position, budget engine.SearchBudget) (engine.SearchResult, error) {
	if _, hasDeadline := ctx.Deadline(); budget.TimeLimit <= 0 && budget.Iterations <= 0 && !hasDeadline {
		return engine.SearchResult{}, fmt.Errorf("%s: %w", e.Name(), engine.ErrEmptyBudget)
	}
	if err := ctx.Err(); err != nil {
		return engine.SearchResult{}, err
	}
	if res := pos.Result(); res.IsTerminal() {
		return engine.SearchResult{}, fmt.Errorf("%w: %v", engine.ErrGameOver, res)
	}

	start := time.Now()
	var deadline time.Time
	if budget.TimeLimit > 0 {
		deadline = start.Add(budget.TimeLimit)
	}

	e.sync(pos)
	e.tree.ResetStats()
	root := e.tree.Root()
	e.tree.Expand(root)

	iters := 0
	for {
		e.iterate()
		iters++
		if budget.Iterations > 0 && iters >= budget.Iterations {
			break
		}
		if ctx.Err() != nil {
			break
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
	}

	best := e.mostVisited(root)
	rs := e.tree.Node(root).Stats
	return engine.SearchResult{
		Move:     e.tree.Node(best).Move,
		Value:    rs.Reward / float64(max(rs.Visits, 1)),
		Depth:    e.params.RolloutPlies,
		Nodes:    int64(iters),
		TimeUsed: time.Since(start),
	}, nil
}

func (e *Engine) iterate() {
	leaf := e.selectLeaf()
	n := e.tree.Node(leaf)
	if !n.Expanded && n.Pos.Repetitions() < xiangqi.MaxRepetitions {
		if children := e.tree.Expand(leaf); len(children) > 0 {
			leaf = children[e.rng.Intn(len(children))]
		}
	}
	reward := e.simulate(leaf)
	e.backpropagate(leaf, reward)
}

// 沿着 UCT 最大的子节点往下走，直到没展开或者没有子节点
func (e *Engine) selectLeaf() engine.NodeID {
	id := e.tree.Root()
	for {
		n := e.tree.Node(id)
		if !n.Expanded || len(n.Children) == 0 {
			return id
		}
		id = e.bestUCT(id)
	}
}

func (e *Engine) bestUCT(id engine.NodeID) engine.NodeID {
	n := e.tree.Node(id)
	sign := float64(n.Pos.SideToMove.Sign())
	best := math.Inf(-1)
	var ties []engine.NodeID
	for _, c := range n.Children {
		st := e.tree.Node(c).Stats
		v := e.params.uct(sign*st.Reward, st.Visits, n.Stats.Visits)
		switch {
		case v > best || ties == nil:
			best = v
			ties = append(ties[:0], c)
		case v == best:
			ties = append(ties, c)
		}
	}
	return ties[e.rng.Intn(len(ties))]
}

func (e *Engine) simulate(id engine.NodeID) float64 {
	return engine.Rollout(e.tree.Node(id).Pos, e.params.Rollout, e.params.RolloutPlies, e.eval, e.rng)
}

// 从叶子到根每个节点 +1 次访问、累加同一个红方视角的结果
func (e *Engine) backpropagate(id engine.NodeID, reward float64) {
	for id != engine.NoNode {
		n := e.tree.Node(id)
		n.Stats.Visits++
		n.Stats.Reward += reward
		id = n.Parent
	}
}

func (e *Engine) mostVisited(id engine.NodeID) engine.NodeID {
	most := -1
	var ties []engine.NodeID
	for _, c := range e.tree.Node(id).Children {
		v := e.tree.Node(c).Stats.Visits
		switch {
		case v > most:
			most = v
			ties = append(ties[:0], c)
		case v == most:
			ties = append(ties, c)
		}
	}
	return ties[e.rng.Intn(len(ties))]
}
