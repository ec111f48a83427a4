package engine

import (
	"context"
	"errors"
	"fmt"
	"math"

	"xiangqi/internal/xiangqi"
)

var ErrUnknownVariant = errors.New("unknown minimax variant")

// Variant 是叠在同一个 minimax 上的策略层
type Variant int

const (
	VariantPlain      Variant = iota // 固定深度
	VariantDeepening                 // 1..D 每层投票
	VariantDynamic                   // 按分支数和剩余子数加深
	VariantExcavation                // 叶子上加浅层随机模拟
)

const (
	// dynamic：根节点分支数少于这个值加一层
	DynamicBranching = 20
	// dynamic：剩余子数不超过这个值再加一层
	DynamicEndgamePieces = 16

	excavationDepths    = 3
	excavationFanout    = 3 // 第 d 层模拟 3^d 次
	excavationNormalize = 6 // 第 d 层权重 1/6^d
)

var variantNames = [...]string{"minimax", "deepening", "dynamic", "excavation"}

func ParseVariant(s string) (Variant, error) {
	for i, name := range variantNames {
		if name == s {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

func (v Variant) Validate() error {
	if v < VariantPlain || int(v) >= len(variantNames) {
		return fmt.Errorf("%w: %d", ErrUnknownVariant, int(v))
	}
	return nil
}

func (v Variant) String() string {
	if v.Validate() != nil {
		return fmt.Sprintf("variant(%d)", int(v))
	}
	return variantNames[v]
}

// deepening 从 1 层搜到 depth 层，每层并列最优的着法平分 d 票，票最多的胜出。
// ctx 只在两层之间检查。
func (m *Minimax) deepening(ctx context.Context, depth int) (NodeID, float64) {
	root := m.tree.Root()
	votes := make(map[NodeID]float64)
	value := 0.0
	for d := 1; d <= depth; d++ {
		if d > 1 && ctx.Err() != nil {
			break
		}
		value = m.searchRoot(d)
		ties := m.bestChildren(root)
		for _, c := range ties {
			votes[c] += float64(d) / float64(len(ties))
		}
	}

	// 按子节点顺序遍历，保证同一个种子结果一样
	var best []NodeID
	bestVotes := math.Inf(-1)
	for _, c := range m.tree.Node(root).Children {
		v, ok := votes[c]
		if !ok {
			continue
		}
		switch {
		case v > bestVotes:
			bestVotes = v
			best = append(best[:0], c)
		case v == bestVotes:
			best = append(best, c)
		}
	}
	if len(best) == 0 {
		return NoNode, value
	}
	return best[m.rng.Intn(len(best))], value
}

func (m *Minimax) dynamicDepth(base int) int {
	root := m.tree.Root()
	d := base
	if len(m.tree.Expand(root)) < DynamicBranching {
		d++
	}
	if m.tree.Node(root).Pos.PieceCount() <= DynamicEndgamePieces {
		d++
	}
	limit := m.cfg.MaxDynamicDepth
	if limit <= 0 {
		limit = base + 2
	}
	return min(d, limit)
}

// excavate 第 d 层做 3^d 次 d 步随机模拟，结果按 1/6^d 加权累加
func (m *Minimax) excavate(pos *xiangqi.Position) float64 {
	res := 0.0
	sims, weight := 1, 1.0
	for d := 1; d <= excavationDepths; d++ {
		sims *= excavationFanout
		weight /= excavationNormalize
		for i := 0; i < sims; i++ {
			res += Rollout(pos, RolloutRandom, d, m.eval, m.rng) * weight
		}
	}
	return res
}
