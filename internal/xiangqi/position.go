package xiangqi

// MaxRepetitions 同一局面（盘面 + 走子方）出现这么多次判和
const MaxRepetitions = 3

// Position = 棋盘 + 轮到谁走 + 走到这里的历史。
// 构造之后不再修改，走子总是产生新的 Position。
type Position struct {
	Board      Board
	SideToMove Side
	Hash       uint64
	Ply        int

	line *lineEntry
}

// 历史链表，子局面共享父局面的链
type lineEntry struct {
	hash    uint64
	prev    *lineEntry
	capture bool // 由吃子产生，更早的局面不可能再出现
}

// NewPosition 从给定盘面开始一条新的历史
func NewPosition(b Board, side Side) *Position {
	p := &Position{Board: b, SideToMove: side}
	p.Hash = b.hash(side)
	p.line = &lineEntry{hash: p.Hash}
	return p
}

// child 不做任何合法性检查，b 是已经走完的盘面
func (p *Position) child(b Board, mv Move, captured Piece) *Position {
	pc := b.Squares[mv.To.index()]
	h := p.Hash ^ zobristBlackToMove ^ pc.zobrist(mv.From) ^ pc.zobrist(mv.To) ^ captured.zobrist(mv.To)

	return &Position{
		Board:      b,
		SideToMove: p.SideToMove.Opponent(),
		Hash:       h,
		Ply:        p.Ply + 1,
		line:       &lineEntry{hash: h, prev: p.line, capture: captured != 0},
	}
}

// Repetitions 当前局面在这条线上出现的次数（包括自己）
func (p *Position) Repetitions() int {
	n := 0
	for e := p.line; e != nil; e = e.prev {
		if e.hash == p.Hash {
			n++
		}
		if e.capture {
			break
		}
	}
	if n == 0 {
		n = 1
	}
	return n
}

// PieceCount 盘面上的总子数
func (p *Position) PieceCount() int {
	r, b := p.Board.Count()
	return r + b
}
