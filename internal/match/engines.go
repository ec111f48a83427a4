package match

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"xiangqi/internal/engine"
	"xiangqi/internal/mcts"
)

var ErrUnknownEngine = errors.New("unknown engine kind")

const KindMCTS = "mcts"

// EngineConfig 描述一个机器人：引擎种类 + 参数 + 每步预算
type EngineConfig struct {
	Kind       string        // minimax | deepening | dynamic | excavation | mcts
	Depth      int           // minimax 深度
	TimeLimit  time.Duration // mcts 每步时间
	Iterations int           // mcts 每步迭代数
	Pack       string        // 估值包：0/1/2 或名字
	Rollout    string        // mcts 模拟策略：random | bestof | greedy
	Seed       int64         // 0 表示按时间取种子
}

func (c EngineConfig) Validate() error {
	if _, err := engine.ParsePack(c.packName()); err != nil {
		return err
	}
	if c.Kind == KindMCTS {
		if _, err := engine.ParseRollout(c.rolloutName()); err != nil {
			return err
		}
		if c.TimeLimit <= 0 && c.Iterations <= 0 {
			return fmt.Errorf("%s: %w", c.Kind, engine.ErrEmptyBudget)
		}
		return nil
	}
	if _, err := engine.ParseVariant(c.Kind); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownEngine, c.Kind)
	}
	if c.Depth < 0 {
		return fmt.Errorf("%s: negative depth %d", c.Kind, c.Depth)
	}
	return nil
}

func (c EngineConfig) packName() string {
	if c.Pack == "" {
		return "0"
	}
	return c.Pack
}

func (c EngineConfig) rolloutName() string {
	if c.Rollout == "" {
		return "random"
	}
	return c.Rollout
}

func (c EngineConfig) Budget() engine.SearchBudget {
	return engine.SearchBudget{Depth: c.Depth, TimeLimit: c.TimeLimit, Iterations: c.Iterations}
}

// NewEngine 按配置建一个独立的引擎，每个引擎有自己的随机源
func NewEngine(c EngineConfig) (engine.Engine, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	pack, _ := engine.ParsePack(c.packName())

	if c.Kind == KindMCTS {
		p := mcts.DefaultParams()
		p.Pack = pack
		p.Rollout, _ = engine.ParseRollout(c.rolloutName())
		e, err := mcts.New(p, rng)
		if err != nil {
			return nil, err
		}
		return e, nil
	}
	variant, _ := engine.ParseVariant(c.Kind)
	e, err := engine.NewMinimax(engine.MinimaxConfig{
		Depth:   c.Depth,
		Variant: variant,
		Pack:    pack,
	}, rng)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// NewPlayer 建引擎并带上每步预算
func NewPlayer(c EngineConfig) (Player, error) {
	e, err := NewEngine(c)
	if err != nil {
		return Player{}, err
	}
	return Player{Engine: e, Budget: c.Budget()}, nil
}
