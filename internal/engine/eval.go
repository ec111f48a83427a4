package engine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"xiangqi/internal/xiangqi"
)

var ErrUnknownPack = errors.New("unknown evaluation pack")

// Evaluator 把局面映射成一个分数，正数红方好
type Evaluator interface {
	Evaluate(pos *xiangqi.Position) float64
}

// Pack 选择估值加成规则
type Pack int

const (
	PackMaterial   Pack = iota // 纯子力，过河兵 20
	PackMobility               // 子力 + 灵活度 + 兵位置表
	PackPositional             // 灵活度 + 子力联结 + 按剩余子数调整
)

var packNames = map[string]Pack{
	"material":   PackMaterial,
	"mobility":   PackMobility,
	"positional": PackPositional,
}

// ParsePack 接受数字 0/1/2 或名字
func ParsePack(s string) (Pack, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if p, ok := packNames[s]; ok {
		return p, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPack, s)
	}
	p := Pack(n)
	if err := p.Validate(); err != nil {
		return 0, err
	}
	return p, nil
}

func (p Pack) Validate() error {
	if p < PackMaterial || p > PackPositional {
		return fmt.Errorf("%w: %d", ErrUnknownPack, int(p))
	}
	return nil
}

func (p Pack) String() string {
	for name, v := range packNames {
		if v == p {
			return name
		}
	}
	return "pack(" + strconv.Itoa(int(p)) + ")"
}

// ======= 基础子力估值 =======

var pieceValue = map[xiangqi.PieceKind]float64{
	xiangqi.General:  0,
	xiangqi.Advisor:  20,
	xiangqi.Elephant: 25,
	xiangqi.Horse:    40,
	xiangqi.Chariot:  90,
	xiangqi.Cannon:   45,
	xiangqi.Pawn:     10,
}

// Evaluate 红胜 +Inf，黑胜 -Inf，和棋 0，否则是静态分
func (p Pack) Evaluate(pos *xiangqi.Position) float64 {
	switch pos.Result() {
	case xiangqi.RedWins:
		return math.Inf(1)
	case xiangqi.BlackWins:
		return math.Inf(-1)
	case xiangqi.Draw:
		return 0
	}
	return p.Score(&pos.Board)
}

// Score 只算子力和加成，不判断胜负
func (p Pack) Score(b *xiangqi.Board) float64 {
	red, black := b.Count()
	ctx := evalContext{b: b, total: red + black, red: red, black: black}

	score := 0.0
	for i, pc := range b.Squares {
		if pc == 0 {
			continue
		}
		sq := xiangqi.Sq(i/xiangqi.Cols, i%xiangqi.Cols)
		score += p.pieceScore(&ctx, pc, sq) * float64(pc.Side().Sign())
	}
	return score
}

type evalContext struct {
	b                 *xiangqi.Board
	total, red, black int
}

func (c *evalContext) team(side xiangqi.Side) int {
	if side == xiangqi.Red {
		return c.red
	}
	return c.black
}

func pieceAt(b *xiangqi.Board, sq xiangqi.Square) xiangqi.Piece {
	pc, _ := b.At(sq) // 越界当空格
	return pc
}

// 从该子方视角的价值，外面再乘符号
func (p Pack) pieceScore(c *evalContext, pc xiangqi.Piece, sq xiangqi.Square) float64 {
	k, side := pc.Kind(), pc.Side()
	base := pieceValue[k]

	if p != PackMobility && p != PackPositional {
		if k == xiangqi.Pawn && xiangqi.CrossedRiver(side, sq.Row) {
			return 20
		}
		return base
	}

	moves, _ := xiangqi.PseudoLegalDestinations(c.b, sq)
	stuck := 0.0
	if len(moves) == 0 {
		stuck = -10
	}
	team := float64(c.team(side))
	total := float64(c.total)

	switch k {
	case xiangqi.General:
		if p == PackMobility {
			return base
		}
		v := base + stuck
		if xiangqi.IsGeneralExposed(c.b, side, side.Opponent()) {
			v -= 15
		}
		return v

	case xiangqi.Advisor:
		if p == PackMobility {
			return base + stuck
		}
		if connectedAdvisor(c.b, sq, side) {
			return base + 5
		}
		return base

	case xiangqi.Elephant:
		if p == PackMobility {
			return base + stuck
		}
		// 相互相连：另一只相就站在田字落点上
		if connectedElephant(c.b, sq, side) {
			return base + 5
		}
		return base

	case xiangqi.Cannon:
		if p == PackMobility {
			return base + stuck
		}
		return base + stuck + (total-24)*1.5

	case xiangqi.Chariot:
		v := base + stuck
		if len(moves) > 0 {
			v = base + float64(controlled(c.b, moves))*0.5
		}
		if p == PackPositional {
			v += (16 - team) * 0.25
		}
		return v

	case xiangqi.Horse:
		v := base + horseMobility(len(moves))
		if p == PackMobility {
			if (side == xiangqi.Black && sq == xiangqi.Sq(1, 4)) || (side == xiangqi.Red && sq == xiangqi.Sq(8, 4)) {
				v -= 25 // 窝心马
			}
			return v
		}
		if c.total <= 16 && xiangqi.CrossedRiver(side, sq.Row) {
			v += 5
		}
		v += (32 - total) * 1.25
		v += (16 - team) * 0.25
		return v

	case xiangqi.Pawn:
		if p == PackMobility {
			return base + pawnTableMobility(side, sq)
		}
		return base + pawnTablePositional(side, sq, c.total) + (16-team)*2
	}
	return base
}

func horseMobility(n int) float64 {
	switch {
	case n <= 1:
		return -10
	case n == 2:
		return -5
	case n == 5 || n == 6:
		return 5
	case n >= 7:
		return 10
	}
	return 0
}

// 车能走到的空格数
func controlled(b *xiangqi.Board, moves []xiangqi.Square) int {
	n := 0
	for _, to := range moves {
		if pieceAt(b, to) == 0 {
			n++
		}
	}
	return n
}

func connectedAdvisor(b *xiangqi.Board, sq xiangqi.Square, side xiangqi.Side) bool {
	want := xiangqi.MakePiece(side, xiangqi.Advisor)
	for _, d := range [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
		to := xiangqi.Sq(sq.Row+d[0], sq.Col+d[1])
		if xiangqi.InSidePalace(side, to) && pieceAt(b, to) == want {
			return true
		}
	}
	return false
}

func connectedElephant(b *xiangqi.Board, sq xiangqi.Square, side xiangqi.Side) bool {
	want := xiangqi.MakePiece(side, xiangqi.Elephant)
	for _, d := range [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}} {
		to := xiangqi.Sq(sq.Row+2*d[0], sq.Col+2*d[1])
		eye := xiangqi.Sq(sq.Row+d[0], sq.Col+d[1])
		if !xiangqi.OnBoard(to) || !xiangqi.OwnHalf(side, to.Row) || pieceAt(b, eye) != 0 {
			continue
		}
		if pieceAt(b, to) == want {
			return true
		}
	}
	return false
}

// 把黑兵的行翻成红方视角，两张表只写红方
func redRow(side xiangqi.Side, row int) int {
	if side == xiangqi.Black {
		return xiangqi.Rows - 1 - row
	}
	return row
}

func pawnTableMobility(side xiangqi.Side, sq xiangqi.Square) float64 {
	r := redRow(side, sq.Row)
	switch {
	case r == 6 && sq.Col == 4:
		return 20
	case r == 3 || r == 4:
		return 10
	case r == 1 || r == 2:
		if sq.Col > 1 && sq.Col < 7 {
			return 20
		}
		return 10
	}
	return 0
}

func pawnTablePositional(side xiangqi.Side, sq xiangqi.Square, total int) float64 {
	r := redRow(side, sq.Row)
	switch {
	case r == 6 && sq.Col == 4:
		return 20 - float64(32-total)
	case r >= 1 && r <= 2 && sq.Col >= 2 && sq.Col <= 6:
		return 20
	case r >= 1 && r <= 3 && sq.Col >= 1 && sq.Col <= 7:
		return 15
	case xiangqi.CrossedRiver(side, sq.Row):
		if xiangqi.InPalace(sq) {
			return 15
		}
		return 10
	}
	return 0
}
