package mcts

import (
	"errors"
	"fmt"
	"math"

	"xiangqi/internal/engine"
)

var ErrBadParams = errors.New("invalid mcts params")

// Params UCT 搜索参数
type Params struct {
	Exploration  float64              // UCT 探索常数 C
	Exponent     float64              // 探索项的指数 p
	Rollout      engine.RolloutPolicy // 模拟策略
	RolloutPlies int                  // 模拟最多走几步
	Pack         engine.Pack          // 模拟截断时的估值包
	Evaluator    engine.Evaluator     // 非空时替代 Pack
}

func DefaultParams() Params {
	return Params{
		Exploration:  math.Sqrt(6) - 1,
		Exponent:     1,
		Rollout:      engine.RolloutRandom,
		RolloutPlies: engine.RolloutPlies,
		Pack:         engine.PackMaterial,
	}
}

func (p Params) Validate() error {
	if p.Exploration < 0 || math.IsNaN(p.Exploration) {
		return fmt.Errorf("%w: exploration %v", ErrBadParams, p.Exploration)
	}
	if p.Exponent <= 0 || math.IsNaN(p.Exponent) {
		return fmt.Errorf("%w: exponent %v", ErrBadParams, p.Exponent)
	}
	if p.RolloutPlies <= 0 {
		return fmt.Errorf("%w: rollout plies %d", ErrBadParams, p.RolloutPlies)
	}
	if p.Rollout < engine.RolloutRandom || p.Rollout > engine.RolloutGreedy {
		return fmt.Errorf("%w: %v", engine.ErrUnknownRollout, p.Rollout)
	}
	if p.Evaluator == nil {
		return p.Pack.Validate()
	}
	return nil
}

// uct = q/n + C*(ln N / n)^p，未访问的子节点是 +Inf
func (p *Params) uct(q float64, n, parentN int) float64 {
	if n == 0 {
		return math.Inf(1)
	}
	explore := math.Log(float64(parentN)) / float64(n)
	return q/float64(n) + p.Exploration*math.Pow(explore, p.Exponent)
}
