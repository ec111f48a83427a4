package xiangqi

import "fmt"

// Side 的数值同时也是估值里的符号：红 +1，黑 -1
type Side int8

const (
	Black  Side = -1
	NoSide Side = 0
	Red    Side = 1
)

func (s Side) Sign() int { return int(s) }

func (s Side) Opponent() Side { return -s }

func (s Side) String() string {
	switch s {
	case Red:
		return "red"
	case Black:
		return "black"
	}
	return "none"
}

type PieceKind int8

const (
	KindNone PieceKind = iota
	General            // 帅 / 将
	Advisor            // 仕 / 士
	Elephant           // 相 / 象
	Horse              // 马
	Chariot            // 车
	Cannon             // 炮
	Pawn               // 兵 / 卒

	numKinds = 8
)

var kindNames = [numKinds]string{"none", "general", "advisor", "elephant", "horse", "chariot", "cannon", "pawn"}

func (k PieceKind) String() string {
	if k < 0 || int(k) >= numKinds {
		return fmt.Sprintf("kind(%d)", int8(k))
	}
	return kindNames[k]
}

type Piece int8 // 0=空；>0 红；<0 黑；abs=PieceKind

func MakePiece(side Side, k PieceKind) Piece {
	if k == KindNone || side == NoSide {
		return 0
	}
	return Piece(int8(side) * int8(k))
}

func (p Piece) Kind() PieceKind {
	if p < 0 {
		return PieceKind(-p)
	}
	return PieceKind(p)
}

func (p Piece) Side() Side {
	switch {
	case p > 0:
		return Red
	case p < 0:
		return Black
	}
	return NoSide
}

// Square 行 0 是黑方底线，行 9 是红方底线
type Square struct {
	Row, Col int
}

func Sq(row, col int) Square { return Square{Row: row, Col: col} }

func (s Square) index() int { return s.Row*Cols + s.Col }

func squareOf(idx int) Square { return Square{Row: idx / Cols, Col: idx % Cols} }

// String 用 ICCS 坐标：列 a-i，行号从红方底线数起
func (s Square) String() string {
	if !OnBoard(s) {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return string([]byte{byte('a' + s.Col), byte('0' + (Rows - 1 - s.Row))})
}

type Move struct {
	From Square
	To   Square
}

func (m Move) String() string { return m.From.String() + m.To.String() }

type Board struct {
	Squares [NumSquares]Piece
}
