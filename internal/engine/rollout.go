package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"xiangqi/internal/xiangqi"
)

var ErrUnknownRollout = errors.New("unknown rollout policy")

// RolloutPolicy 模拟阶段每一步怎么选着法
type RolloutPolicy int

const (
	RolloutRandom  RolloutPolicy = iota // 随机打乱棋子和落点，取第一个合法着法
	RolloutBestOfK                      // 随机抽 RolloutSamples 个，取对走子方最好的
	RolloutGreedy                       // 所有后继里静态分对走子方最好的
)

const (
	RolloutSamples = 5
	RolloutPlies   = 5

	// 没走到终局时 分数/rolloutScale 作为结果，再截到 [-1, 1]
	rolloutScale = 1000
)

var rolloutNames = map[string]RolloutPolicy{
	"random": RolloutRandom,
	"bestof": RolloutBestOfK,
	"greedy": RolloutGreedy,
}

func ParseRollout(s string) (RolloutPolicy, error) {
	p, ok := rolloutNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRollout, s)
	}
	return p, nil
}

func (p RolloutPolicy) String() string {
	for name, v := range rolloutNames {
		if v == p {
			return name
		}
	}
	return fmt.Sprintf("rollout(%d)", int(p))
}

// Rollout 从 pos 模拟最多 plies 步，返回红方视角的结果：
// 终局 +1/-1/0，否则是截断后的 静态分/1000
func Rollout(pos *xiangqi.Position, policy RolloutPolicy, plies int, eval Evaluator, rng *rand.Rand) float64 {
	for ply := 0; ply < plies; ply++ {
		if pos.Repetitions() >= xiangqi.MaxRepetitions {
			return 0
		}
		next, ok := policy.pick(pos, eval, rng)
		if !ok {
			// 无着即负
			return -float64(pos.SideToMove.Sign())
		}
		pos = next
	}
	return TerminalValue(pos, eval)
}

// TerminalValue 把局面折算成 [-1, 1]，红方为正
func TerminalValue(pos *xiangqi.Position, eval Evaluator) float64 {
	switch pos.Result() {
	case xiangqi.RedWins:
		return 1
	case xiangqi.BlackWins:
		return -1
	case xiangqi.Draw:
		return 0
	}
	v := eval.Evaluate(pos) / rolloutScale
	return math.Max(-1, math.Min(1, v))
}

func (p RolloutPolicy) pick(pos *xiangqi.Position, eval Evaluator, rng *rand.Rand) (*xiangqi.Position, bool) {
	switch p {
	case RolloutBestOfK:
		succ := pos.LegalSuccessors()
		if len(succ) == 0 {
			return nil, false
		}
		sign := float64(pos.SideToMove.Sign())
		var best *xiangqi.Position
		bestVal := math.Inf(-1)
		for i := 0; i < RolloutSamples; i++ {
			s := succ[rng.Intn(len(succ))]
			if v := sign * eval.Evaluate(s.Pos); best == nil || v > bestVal {
				best, bestVal = s.Pos, v
			}
		}
		return best, true

	case RolloutGreedy:
		succ := pos.LegalSuccessors()
		if len(succ) == 0 {
			return nil, false
		}
		sign := float64(pos.SideToMove.Sign())
		bestVal := math.Inf(-1)
		var ties []*xiangqi.Position
		for _, s := range succ {
			v := sign * eval.Evaluate(s.Pos)
			switch {
			case v > bestVal || ties == nil:
				bestVal = v
				ties = append(ties[:0], s.Pos)
			case v == bestVal:
				ties = append(ties, s.Pos)
			}
		}
		return ties[rng.Intn(len(ties))], true
	}

	s, ok := pos.RandomSuccessor(rng)
	return s.Pos, ok
}
