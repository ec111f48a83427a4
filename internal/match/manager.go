package match

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"xiangqi/internal/xiangqi"
)

var ErrGameNotFound = errors.New("game not found")

// Manager 内存里的对局表，多盘并发对局共用一个
type Manager struct {
	mu    sync.RWMutex
	games map[string]*GameState
	seq   int
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*GameState)}
}

// NewGame 从 start 开局（nil 表示标准开局）
func (m *Manager) NewGame(red, black string, start *xiangqi.Position) *GameState {
	if start == nil {
		start = xiangqi.NewInitialPosition()
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	m.seq++
	g := &GameState{
		seq:       m.seq,
		ID:        uuid.NewString(),
		Red:       red,
		Black:     black,
		Start:     start,
		Pos:       start,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.games[g.ID] = g
	return g
}

func (m *Manager) Get(id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return g.record(), nil
}

// Apply 校验并记录一步，返回新局面
func (m *Manager) Apply(id string, mv xiangqi.Move) (*xiangqi.Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	next, err := g.Pos.ApplyMove(mv)
	if err != nil {
		return nil, err
	}
	g.Pos = next
	g.Moves = append(g.Moves, mv)
	g.UpdatedAt = time.Now()
	return next, nil
}

func (m *Manager) Finish(id string, res xiangqi.Result, reason string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	g.Result = res
	g.Reason = reason
	g.UpdatedAt = time.Now()
	return g.record(), nil
}

// List 按创建顺序排列的所有对局快照
func (m *Manager) List() []*Record {
	m.mu.RLock()
	games := make([]*GameState, 0, len(m.games))
	for _, g := range m.games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].seq < games[j].seq })
	out := make([]*Record, 0, len(games))
	for _, g := range games {
		out = append(out, g.record())
	}
	m.mu.RUnlock()
	return out
}
