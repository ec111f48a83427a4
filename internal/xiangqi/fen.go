package xiangqi

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidFEN = errors.New("invalid FEN")

// Encode 标准象棋 FEN：10 行用“/”隔开（从黑方底线开始），空位用数字压缩；空格后 w/b 表示走子方
func (p *Position) Encode() string {
	var sb strings.Builder
	for r := 0; r < Rows; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Cols; c++ {
			pc := p.Board.at(r, c)
			if pc == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	if p.SideToMove == Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	return sb.String()
}

// DecodePosition 解析 Encode 的输出。解出来的局面没有历史。
func DecodePosition(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: missing side to move", ErrInvalidFEN)
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != Rows {
		return nil, fmt.Errorf("%w: %d ranks", ErrInvalidFEN, len(rows))
	}
	var b Board
	var generals [2]int
	for r, row := range rows {
		c := 0
		for _, ch := range row {
			if c >= Cols {
				return nil, fmt.Errorf("%w: rank %d too long", ErrInvalidFEN, r)
			}
			if ch >= '1' && ch <= '9' {
				c += int(ch - '0')
				continue
			}
			pc, ok := charToPiece(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidFEN, ch)
			}
			if pc.Kind() == General {
				if pc.Side() == Red {
					generals[0]++
				} else {
					generals[1]++
				}
			}
			b.Squares[Sq(r, c).index()] = pc
			c++
		}
		if c != Cols {
			return nil, fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, r, c)
		}
	}
	if generals[0] > 1 || generals[1] > 1 {
		return nil, fmt.Errorf("%w: more than one general per side", ErrInvalidFEN)
	}

	var side Side
	switch parts[1] {
	case "w", "r":
		side = Red
	case "b":
		side = Black
	default:
		return nil, fmt.Errorf("%w: side %q", ErrInvalidFEN, parts[1])
	}
	return NewPosition(b, side), nil
}

// ParseSquare 解析 ICCS 坐标，比如 "h2"
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("%w: square %q", ErrOutOfBounds, s)
	}
	sq := Sq(Rows-1-int(s[1]-'0'), int(s[0]-'a'))
	if s[1] < '0' || s[1] > '9' || !OnBoard(sq) {
		return Square{}, fmt.Errorf("%w: square %q", ErrOutOfBounds, s)
	}
	return sq, nil
}

// ParseMove 解析 "h2e2" 这样的着法
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %w", ErrInvalidMove, err)
	}
	to, err := ParseSquare(s[2:])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %w", ErrInvalidMove, err)
	}
	return Move{From: from, To: to}, nil
}
