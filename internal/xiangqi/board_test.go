package xiangqi

import (
	"errors"
	"testing"
)

func mustDecode(t *testing.T, fen string) *Position {
	t.Helper()
	pos, err := DecodePosition(fen)
	if err != nil {
		t.Fatalf("decode %q failed: %v", fen, err)
	}
	return pos
}

func TestPalaceAndRiver(t *testing.T) {
	cases := []struct {
		sq        Square
		palace    bool
		redPalace bool
	}{
		{Sq(0, 3), true, false},
		{Sq(2, 5), true, false},
		{Sq(3, 4), false, false},
		{Sq(7, 3), true, true},
		{Sq(9, 5), true, true},
		{Sq(9, 6), false, false},
		{Sq(8, 2), false, false},
	}
	for _, c := range cases {
		if got := InPalace(c.sq); got != c.palace {
			t.Fatalf("InPalace(%v): got=%v want=%v", c.sq, got, c.palace)
		}
		if got := InSidePalace(Red, c.sq); got != c.redPalace {
			t.Fatalf("InSidePalace(red, %v): got=%v want=%v", c.sq, got, c.redPalace)
		}
	}

	if !CrossedRiver(Red, 4) || CrossedRiver(Red, 5) {
		t.Fatalf("red river boundary must sit between rows 4 and 5")
	}
	if !CrossedRiver(Black, 5) || CrossedRiver(Black, 4) {
		t.Fatalf("black river boundary must sit between rows 4 and 5")
	}
}

func TestBoardQueries(t *testing.T) {
	pos := NewInitialPosition()
	b := &pos.Board

	if got := b.SideAt(Sq(9, 4)); got != Red {
		t.Fatalf("side at red general: got=%v want=%v", got, Red)
	}
	if got := b.KindAt(Sq(7, 1)); got != Cannon {
		t.Fatalf("kind at b2: got=%v want=%v", got, Cannon)
	}
	if !b.IsEmpty(Sq(4, 4)) {
		t.Fatalf("river square should be empty")
	}
	if !b.IsTeammate(Black, Sq(0, 0)) || !b.IsOpponent(Red, Sq(0, 0)) {
		t.Fatalf("a9 should hold a black piece")
	}
	if b.IsTeammate(NoSide, Sq(4, 4)) {
		t.Fatalf("empty square is nobody's teammate")
	}

	if _, err := b.At(Sq(10, 0)); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("At off-board: got err=%v want ErrOutOfBounds", err)
	}
}

func TestBoardQueryPanicsOutOfBounds(t *testing.T) {
	pos := NewInitialPosition()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("expected panic wrapping ErrOutOfBounds, got %v", r)
		}
	}()
	pos.Board.SideAt(Sq(0, 9))
}

func TestMirrorIsInvolution(t *testing.T) {
	b := NewInitialPosition().Board
	m := b.Mirror()
	if m != b {
		// 初始局面上下对称，翻转加换色后应该不变
		t.Fatalf("mirrored initial board differs:\n%s\nvs\n%s", m.String(), b.String())
	}
	b.Squares[Sq(6, 0).index()] = 0
	if b.Mirror().Mirror() != b {
		t.Fatalf("mirror twice should be identity")
	}
}
