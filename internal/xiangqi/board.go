package xiangqi

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	Rows       = 10
	Cols       = 9
	NumSquares = Rows * Cols

	// 红方本方半场是 5..9 行，黑方是 0..4 行
	riverRow = 5
)

var ErrOutOfBounds = errors.New("square out of bounds")

var (
	orthDirs = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagDirs = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

func onBoard(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

func OnBoard(sq Square) bool { return onBoard(sq.Row, sq.Col) }

// InPalace 两个九宫任意一个都算
func InPalace(sq Square) bool {
	return InSidePalace(Red, sq) || InSidePalace(Black, sq)
}

func InSidePalace(side Side, sq Square) bool {
	if sq.Col < 3 || sq.Col > 5 {
		return false
	}
	switch side {
	case Black:
		return sq.Row >= 0 && sq.Row <= 2
	case Red:
		return sq.Row >= 7 && sq.Row <= 9
	}
	return false
}

// 前进方向：红向上(-1)，黑向下(+1)
func forward(side Side) int { return -side.Sign() }

// CrossedRiver 只看行和阵营，不保存状态
func CrossedRiver(side Side, row int) bool {
	switch side {
	case Red:
		return row < riverRow
	case Black:
		return row >= riverRow
	}
	return false
}

func OwnHalf(side Side, row int) bool {
	return side != NoSide && row >= 0 && row < Rows && !CrossedRiver(side, row)
}

func mustIndex(sq Square) int {
	if !OnBoard(sq) {
		panic(fmt.Errorf("%w: %v", ErrOutOfBounds, sq))
	}
	return sq.index()
}

func (b *Board) At(sq Square) (Piece, error) {
	if !OnBoard(sq) {
		return 0, fmt.Errorf("%w: %v", ErrOutOfBounds, sq)
	}
	return b.Squares[sq.index()], nil
}

// 以下查询越界直接 panic，生成器不应该产生越界格
func (b *Board) SideAt(sq Square) Side { return b.Squares[mustIndex(sq)].Side() }

func (b *Board) KindAt(sq Square) PieceKind { return b.Squares[mustIndex(sq)].Kind() }

func (b *Board) IsEmpty(sq Square) bool { return b.Squares[mustIndex(sq)] == 0 }

func (b *Board) IsTeammate(side Side, sq Square) bool {
	return side != NoSide && b.SideAt(sq) == side
}

func (b *Board) IsOpponent(side Side, sq Square) bool {
	return side != NoSide && b.SideAt(sq) == side.Opponent()
}

func (b *Board) at(row, col int) Piece { return b.Squares[row*Cols+col] }

func (b *Board) move(from, to Square) (captured Piece) {
	fi, ti := from.index(), to.index()
	captured = b.Squares[ti]
	b.Squares[ti] = b.Squares[fi]
	b.Squares[fi] = 0
	return captured
}

// Count 返回双方剩余子数
func (b *Board) Count() (red, black int) {
	for _, pc := range b.Squares {
		switch pc.Side() {
		case Red:
			red++
		case Black:
			black++
		}
	}
	return red, black
}

// FindGeneral 只在本方九宫里找
func (b *Board) FindGeneral(side Side) (Square, bool) {
	rows := [2]int{7, 9}
	if side == Black {
		rows = [2]int{0, 2}
	}
	want := MakePiece(side, General)
	for r := rows[0]; r <= rows[1]; r++ {
		for c := 3; c <= 5; c++ {
			if want != 0 && b.at(r, c) == want {
				return Sq(r, c), true
			}
		}
	}
	return Square{}, false
}

// Mirror 上下翻转并交换红黑
func (b Board) Mirror() Board {
	var m Board
	for i, pc := range b.Squares {
		sq := squareOf(i)
		m.Squares[Sq(Rows-1-sq.Row, sq.Col).index()] = -pc
	}
	return m
}

var letterToKind = map[rune]PieceKind{
	'k': General,
	'a': Advisor,
	'b': Elephant,
	'n': Horse,
	'r': Chariot,
	'c': Cannon,
	'p': Pawn,
}

var kindToLetter = [numKinds]rune{'.', 'k', 'a', 'b', 'n', 'r', 'c', 'p'}

func pieceToChar(p Piece) rune {
	if p == 0 || int(p.Kind()) >= numKinds {
		return '.'
	}
	ch := kindToLetter[p.Kind()]
	if p.Side() == Red {
		return unicode.ToUpper(ch)
	}
	return ch
}

func charToPiece(ch rune) (Piece, bool) {
	k, ok := letterToKind[unicode.ToLower(ch)]
	if !ok {
		return 0, false
	}
	side := Black
	if unicode.IsUpper(ch) {
		side = Red
	}
	return MakePiece(side, k), true
}

// String 每行 9 个字符，空位用 '.'
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < Cols; c++ {
			sb.WriteRune(pieceToChar(b.at(r, c)))
		}
	}
	return sb.String()
}

const initialBoardString = `rnbakabnr
.........
.c.....c.
p.p.p.p.p
.........
.........
P.P.P.P.P
.C.....C.
.........
RNBAKABNR`

func parseBoard(s string) (Board, error) {
	var b Board
	lines := make([]string, 0, Rows)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) != Rows {
		return b, fmt.Errorf("board has %d rows", len(lines))
	}
	for r, line := range lines {
		if len(line) != Cols {
			return b, fmt.Errorf("row %d has %d columns", r, len(line))
		}
		for c, ch := range line {
			if ch == '.' {
				continue
			}
			pc, ok := charToPiece(ch)
			if !ok {
				return b, fmt.Errorf("unknown piece letter %q", ch)
			}
			b.Squares[Sq(r, c).index()] = pc
		}
	}
	return b, nil
}

func NewInitialPosition() *Position {
	b, err := parseBoard(initialBoardString)
	if err != nil {
		panic(err)
	}
	return NewPosition(b, Red) // 红先
}
