package xiangqi

import (
	"errors"
	"fmt"
	"math/rand"
)

var ErrInvalidMove = errors.New("invalid move")

type genFunc func(b *Board, from Square, side Side, out *[]Square)

// 按兵种分派的走法生成器
var generators = [numKinds]genFunc{
	General:  genGeneral,
	Advisor:  genAdvisor,
	Elephant: genElephant,
	Horse:    genHorse,
	Chariot:  genChariot,
	Cannon:   genCannon,
	Pawn:     genPawn,
}

func appendDestinations(b *Board, from Square, pc Piece, out []Square) []Square {
	k := pc.Kind()
	if k <= KindNone || int(k) >= numKinds {
		return out
	}
	generators[k](b, from, pc.Side(), &out)
	return out
}

// PseudoLegalDestinations 生成 from 上棋子的伪合法落点（不考虑自己将被攻击）。
// 空格返回 nil。
func PseudoLegalDestinations(b *Board, from Square) ([]Square, error) {
	pc, err := b.At(from)
	if err != nil {
		return nil, err
	}
	if pc == 0 {
		return nil, nil
	}
	return appendDestinations(b, from, pc, nil), nil
}

// Successor 是一个合法后继局面和走到那里的着法
type Successor struct {
	Pos  *Position
	Move Move
}

// tryMove 走完之后自己的将不能暴露
func (p *Position) tryMove(from, to Square) (*Position, bool) {
	b := p.Board
	captured := b.move(from, to)
	if IsGeneralExposed(&b, p.SideToMove, p.SideToMove.Opponent()) {
		return nil, false
	}
	return p.child(b, Move{From: from, To: to}, captured), true
}

func (p *Position) legalFrom(from Square, dsts []Square, fn func(to Square) bool) bool {
	side := p.SideToMove
	for _, to := range dsts {
		b := p.Board
		b.move(from, to)
		if IsGeneralExposed(&b, side, side.Opponent()) {
			continue
		}
		if !fn(to) {
			return false
		}
	}
	return true
}

// LegalSuccessors 按棋盘扫描顺序 × 生成器顺序列出所有合法后继
func (p *Position) LegalSuccessors() []Successor {
	var out []Successor
	var dsts []Square
	for i, pc := range p.Board.Squares {
		if pc == 0 || pc.Side() != p.SideToMove {
			continue
		}
		from := squareOf(i)
		dsts = appendDestinations(&p.Board, from, pc, dsts[:0])
		for _, to := range dsts {
			if np, ok := p.tryMove(from, to); ok {
				out = append(out, Successor{Pos: np, Move: Move{From: from, To: to}})
			}
		}
	}
	return out
}

func (p *Position) LegalMoves() []Move {
	var out []Move
	p.eachLegalMove(func(mv Move) bool {
		out = append(out, mv)
		return true
	})
	return out
}

// HasLegalMove 找到一步就返回
func (p *Position) HasLegalMove() bool {
	found := false
	p.eachLegalMove(func(Move) bool {
		found = true
		return false
	})
	return found
}

func (p *Position) eachLegalMove(fn func(Move) bool) {
	var dsts []Square
	for i, pc := range p.Board.Squares {
		if pc == 0 || pc.Side() != p.SideToMove {
			continue
		}
		from := squareOf(i)
		dsts = appendDestinations(&p.Board, from, pc, dsts[:0])
		cont := p.legalFrom(from, dsts, func(to Square) bool {
			return fn(Move{From: from, To: to})
		})
		if !cont {
			return
		}
	}
}

// ApplyMove 校验并走子。非法着法返回包装过的 ErrInvalidMove。
func (p *Position) ApplyMove(mv Move) (*Position, error) {
	if !OnBoard(mv.From) || !OnBoard(mv.To) {
		return nil, fmt.Errorf("%w %v: %w", ErrInvalidMove, mv, ErrOutOfBounds)
	}
	pc := p.Board.Squares[mv.From.index()]
	if pc == 0 || pc.Side() != p.SideToMove {
		return nil, fmt.Errorf("%w %v: no %v piece on %v", ErrInvalidMove, mv, p.SideToMove, mv.From)
	}
	found := false
	for _, to := range appendDestinations(&p.Board, mv.From, pc, nil) {
		if to == mv.To {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w %v: %v cannot reach %v", ErrInvalidMove, mv, pc.Kind(), mv.To)
	}
	np, ok := p.tryMove(mv.From, mv.To)
	if !ok {
		return nil, fmt.Errorf("%w %v: leaves the general exposed", ErrInvalidMove, mv)
	}
	return np, nil
}

// RandomSuccessor 打乱本方棋子和各自的落点，返回第一个合法后继
func (p *Position) RandomSuccessor(rng *rand.Rand) (Successor, bool) {
	froms := make([]Square, 0, 16)
	for i, pc := range p.Board.Squares {
		if pc != 0 && pc.Side() == p.SideToMove {
			froms = append(froms, squareOf(i))
		}
	}
	rng.Shuffle(len(froms), func(i, j int) { froms[i], froms[j] = froms[j], froms[i] })

	var dsts []Square
	for _, from := range froms {
		dsts = appendDestinations(&p.Board, from, p.Board.Squares[from.index()], dsts[:0])
		rng.Shuffle(len(dsts), func(i, j int) { dsts[i], dsts[j] = dsts[j], dsts[i] })
		for _, to := range dsts {
			if np, ok := p.tryMove(from, to); ok {
				return Successor{Pos: np, Move: Move{From: from, To: to}}, true
			}
		}
	}
	return Successor{}, false
}
