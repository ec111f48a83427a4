package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"xiangqi/internal/xiangqi"
)

const DefaultDepth = 3

// MinimaxStats 每个节点上 minimax 用到的缓存
type MinimaxStats struct {
	Static    float64 // 静态估值
	HasStatic bool
	Value     float64 // 本次搜索得到的 minimax 值
	Valid     bool    // Value 是否来自本次搜索
	Sorted    bool    // 子节点是否已经按静态估值排过序
}

type MinimaxConfig struct {
	Depth           int       // SearchBudget.Depth 为 0 时使用
	Variant         Variant   // 搜索策略
	Pack            Pack      // 估值包
	Evaluator       Evaluator // 非空时替代 Pack
	MaxDynamicDepth int       // dynamic 策略的深度上限，0 表示 Depth+2
}

// Minimax 深度受限的 alpha-beta 搜索，树在多次 Decide 之间保留
type Minimax struct {
	cfg   MinimaxConfig
	eval  Evaluator
	rng   *rand.Rand
	tree  *Tree[MinimaxStats]
	nodes int64
}

func NewMinimax(cfg MinimaxConfig, rng *rand.Rand) (*Minimax, error) {
	if err := cfg.Variant.Validate(); err != nil {
		return nil, err
	}
	eval := cfg.Evaluator
	if eval == nil {
		if err := cfg.Pack.Validate(); err != nil {
			return nil, err
		}
		eval = cfg.Pack
	}
	if cfg.Depth <= 0 {
		cfg.Depth = DefaultDepth
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Minimax{cfg: cfg, eval: eval, rng: rng}, nil
}

func (m *Minimax) Name() string { return m.cfg.Variant.String() }

// Observe 让自己的树跟上实际下出的着法
func (m *Minimax) Observe(mv xiangqi.Move) error {
	if m.tree == nil {
		return nil
	}
	if err := m.tree.Advance(mv); err != nil {
		return fmt.Errorf("%s: %w", m.Name(), err)
	}
	return nil
}

// 根局面不一致时重建树
func (m *Minimax) sync(pos *xiangqi.Position) {
	if m.tree == nil {
		m.tree = NewTree[MinimaxStats](pos)
		return
	}
	root := m.tree.Node(m.tree.Root()).Pos
	if root.Hash != pos.Hash || root.Ply != pos.Ply {
		m.tree.Reset(pos)
	}
}

func (m *Minimax) Decide(ctx context.Context, pos *xiangqi.Position, budget SearchBudget) (SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return SearchResult{}, err
	}
	if res := pos.Result(); res.IsTerminal() {
		return SearchResult{}, fmt.Errorf("%w: %v", ErrGameOver, res)
	}
	start := time.Now()
	m.sync(pos)
	m.tree.ResetStats()
	m.nodes = 0

	depth := budget.Depth
	if depth <= 0 {
		depth = m.cfg.Depth
	}

	var (
		best  NodeID
		value float64
	)
	switch m.cfg.Variant {
	case VariantDeepening:
		best, value = m.deepening(ctx, depth)
	case VariantDynamic:
		depth = m.dynamicDepth(depth)
		value = m.searchRoot(depth)
		best = m.bestMove(m.tree.Root())
	default:
		value = m.searchRoot(depth)
		best = m.bestMove(m.tree.Root())
	}
	if best == NoNode {
		return SearchResult{}, fmt.Errorf("%s: %w", m.Name(), ErrGameOver)
	}

	return SearchResult{
		Move:     m.tree.Node(best).Move,
		Value:    value,
		Depth:    depth,
		Nodes:    m.nodes,
		TimeUsed: time.Since(start),
	}, nil
}

// 根节点走法值需要精确（不能是界），才能在并列最优里随机选
func (m *Minimax) searchRoot(depth int) float64 {
	root := m.tree.Root()
	maximizing := m.tree.Node(root).Pos.SideToMove == xiangqi.Red
	return m.minimax(root, depth, maximizing, math.Inf(-1), math.Inf(1), true)
}

func (m *Minimax) minimax(id NodeID, depth int, maximizing bool, alpha, beta float64, root bool) float64 {
	m.nodes++
	if depth == 0 {
		return m.setValue(id, m.leafValue(id))
	}
	if !root && m.tree.Node(id).Pos.Repetitions() >= xiangqi.MaxRepetitions {
		return m.setValue(id, 0)
	}

	children := m.tree.Expand(id)
	if len(children) == 0 {
		// 无着即负
		return m.setValue(id, math.Inf(-m.tree.Node(id).Pos.SideToMove.Sign()))
	}
	m.sortChildren(id, children, maximizing)
	for _, c := range children {
		m.tree.Node(c).Stats.Valid = false
	}

	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	for _, c := range children {
		a, b := alpha, beta
		if root {
			// 窗口往外挪一个 ulp，和当前最好值相等的子节点也能得到精确值
			if maximizing {
				a = math.Nextafter(alpha, math.Inf(-1))
			} else {
				b = math.Nextafter(beta, math.Inf(1))
			}
		}
		v := m.minimax(c, depth-1, !maximizing, a, b, false)
		if maximizing {
			best = math.Max(best, v)
			alpha = math.Max(alpha, best)
		} else {
			best = math.Min(best, v)
			beta = math.Min(beta, best)
		}
		// 根节点不剪枝，并列的 ±Inf 也要拿到精确值
		if !root && beta <= alpha {
			break
		}
	}
	return m.setValue(id, best)
}

func (m *Minimax) setValue(id NodeID, v float64) float64 {
	st := &m.tree.Node(id).Stats
	st.Value = v
	st.Valid = true
	return v
}

func (m *Minimax) static(id NodeID) float64 {
	st := &m.tree.Node(id).Stats
	if !st.HasStatic {
		st.Static = m.eval.Evaluate(m.tree.Node(id).Pos)
		st.HasStatic = true
	}
	return st.Static
}

func (m *Minimax) leafValue(id NodeID) float64 {
	v := m.static(id)
	if m.cfg.Variant == VariantExcavation && !math.IsInf(v, 0) {
		v += m.excavate(m.tree.Node(id).Pos)
	}
	return v
}

// 按静态估值排序子节点：极大层降序，极小层升序。只排一次。
func (m *Minimax) sortChildren(id NodeID, children []NodeID, maximizing bool) {
	if m.tree.Node(id).Stats.Sorted {
		return
	}
	for _, c := range children {
		m.static(c)
	}
	sort.SliceStable(children, func(i, j int) bool {
		a := m.tree.Node(children[i]).Stats.Static
		b := m.tree.Node(children[j]).Stats.Static
		if maximizing {
			return a > b
		}
		return a < b
	})
	m.tree.Node(id).Stats.Sorted = true
}

// 和节点值相等的子节点
func (m *Minimax) bestChildren(id NodeID) []NodeID {
	n := m.tree.Node(id)
	var out []NodeID
	for _, c := range n.Children {
		st := m.tree.Node(c).Stats
		if st.Valid && st.Value == n.Stats.Value {
			out = append(out, c)
		}
	}
	return out
}

// bestMove 在并列最优的子节点里均匀随机选一个
func (m *Minimax) bestMove(id NodeID) NodeID {
	ties := m.bestChildren(id)
	if len(ties) == 0 {
		return NoNode
	}
	return ties[m.rng.Intn(len(ties))]
}
