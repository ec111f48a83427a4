package match

import (
	"context"
	"io"
	"log"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
	"xiangqi/internal/xiangqi"
)

// SeriesConfig A、B 两个机器人对下若干盘
type SeriesConfig struct {
	A, B        EngineConfig
	Games       int
	Concurrency int  // 同时进行的对局数，<=0 表示 1
	Alternate   bool // 奇数盘 A 执黑
	MaxPlies    int
	Logger      *log.Logger
}

type SeriesResult struct {
	Records []*Record // 按盘号排列
	AWins   int
	BWins   int
	Draws   int
}

type gameInfo struct {
	index int
	aRed  bool
}

type gameResult struct {
	gameInfo
	rec *Record
}

// RunSeries 并发下完所有对局。每盘都新建引擎，盘与盘之间不共享任何可变状态。
func (m *Manager) RunSeries(ctx context.Context, cfg SeriesConfig) (SeriesResult, error) {
	if err := cfg.A.Validate(); err != nil {
		return SeriesResult{}, err
	}
	if err := cfg.B.Validate(); err != nil {
		return SeriesResult{}, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	concurrency := max(cfg.Concurrency, 1)

	g, ctx := errgroup.WithContext(ctx)

	var gameInfos = make(chan gameInfo)
	var gameResults = make(chan gameResult)

	g.Go(func() error {
		defer close(gameInfos)
		for i := 0; i < cfg.Games; i++ {
			info := gameInfo{index: i, aRed: !cfg.Alternate || i%2 == 0}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case gameInfos <- info:
			}
		}
		return nil
	})

	var wg = &sync.WaitGroup{}
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return m.playGames(ctx, cfg, logger, gameInfos, gameResults)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(gameResults)
		return nil
	})

	result := SeriesResult{Records: make([]*Record, cfg.Games)}
	g.Go(func() error {
		for r := range gameResults {
			result.Records[r.index] = r.rec
			switch r.rec.Result.Winner() {
			case xiangqi.NoSide:
				result.Draws++
			case xiangqi.Red:
				if r.aRed {
					result.AWins++
				} else {
					result.BWins++
				}
			case xiangqi.Black:
				if r.aRed {
					result.BWins++
				} else {
					result.AWins++
				}
			}
			logger.Printf("game %d/%d: A %d - B %d - draws %d",
				r.index+1, cfg.Games, result.AWins, result.BWins, result.Draws)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}

func (m *Manager) playGames(
	ctx context.Context,
	cfg SeriesConfig,
	logger *log.Logger,
	gameInfos <-chan gameInfo,
	gameResults chan<- gameResult,
) error {
	for info := range gameInfos {
		redCfg, blackCfg := cfg.A, cfg.B
		if !info.aRed {
			redCfg, blackCfg = cfg.B, cfg.A
		}
		// 同一个种子的引擎在不同盘里要下出不同的棋
		redCfg.Seed = offsetSeed(redCfg.Seed, info.index)
		blackCfg.Seed = offsetSeed(blackCfg.Seed, info.index)

		red, err := NewPlayer(redCfg)
		if err != nil {
			return err
		}
		black, err := NewPlayer(blackCfg)
		if err != nil {
			return err
		}
		rec, err := m.Play(ctx, red, black, Options{MaxPlies: cfg.MaxPlies, Logger: logger})
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case gameResults <- gameResult{gameInfo: info, rec: rec}:
		}
	}
	return nil
}

func offsetSeed(seed int64, game int) int64 {
	if seed == 0 {
		return 0
	}
	return seed + int64(game)*7919
}

// SeriesStats A 方视角的胜率、Elo 差和 LOS
type SeriesStats struct {
	Games           int
	WinningFraction float64
	EloDifference   float64
	LOS             float64
}

func (r SeriesResult) Stats() SeriesStats {
	games := r.AWins + r.BWins + r.Draws
	if games == 0 {
		return SeriesStats{}
	}
	frac := (float64(r.AWins) + 0.5*float64(r.Draws)) / float64(games)
	elo := -math.Log(1/frac-1) * 400 / math.Ln10
	los := 0.5
	if decisive := r.AWins + r.BWins; decisive > 0 {
		los = 0.5 + 0.5*math.Erf(float64(r.AWins-r.BWins)/math.Sqrt(2*float64(decisive)))
	}
	return SeriesStats{Games: games, WinningFraction: frac, EloDifference: elo, LOS: los}
}
