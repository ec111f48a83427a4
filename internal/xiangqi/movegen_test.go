package xiangqi

import (
	"sort"
	"testing"
)

func put(b *Board, sq Square, side Side, k PieceKind) {
	b.Squares[sq.index()] = MakePiece(side, k)
}

func destSet(t *testing.T, b *Board, from Square) map[Square]bool {
	t.Helper()
	dsts, err := PseudoLegalDestinations(b, from)
	if err != nil {
		t.Fatalf("destinations from %v: %v", from, err)
	}
	set := make(map[Square]bool, len(dsts))
	for _, d := range dsts {
		if !OnBoard(d) {
			t.Fatalf("off-board destination %v from %v", d, from)
		}
		if b.IsTeammate(b.SideAt(from), d) {
			t.Fatalf("teammate destination %v from %v", d, from)
		}
		set[d] = true
	}
	return set
}

func TestHorseLegBlocking(t *testing.T) {
	from := Sq(4, 4)
	var open Board
	put(&open, from, Red, Horse)
	all := destSet(t, &open, from)
	if len(all) != 8 {
		t.Fatalf("free horse destinations: got=%d want=8", len(all))
	}

	for _, leg := range []Square{Sq(3, 4), Sq(5, 4), Sq(4, 3), Sq(4, 5)} {
		b := open
		put(&b, leg, Red, Pawn)
		got := destSet(t, &b, from)

		want := make(map[Square]bool)
		for _, m := range horseLegMoves {
			if Sq(from.Row+m.Br, from.Col+m.Bc) == leg {
				continue
			}
			want[Sq(from.Row+m.Dr, from.Col+m.Dc)] = true
		}
		if len(got) != len(want) {
			t.Fatalf("leg %v: got=%d destinations want=%d", leg, len(got), len(want))
		}
		for sq := range want {
			if !got[sq] {
				t.Fatalf("leg %v should not gate %v", leg, sq)
			}
		}
	}
}

func cannonCapturesUp(t *testing.T, b *Board, from Square) []Square {
	var caps []Square
	for sq := range destSet(t, b, from) {
		if sq.Col == from.Col && sq.Row < from.Row && !b.IsEmpty(sq) {
			caps = append(caps, sq)
		}
	}
	sort.Slice(caps, func(i, j int) bool { return caps[i].Row < caps[j].Row })
	return caps
}

func TestCannonCaptureArity(t *testing.T) {
	from := Sq(6, 0)

	t.Run("NoScreen", func(t *testing.T) {
		var b Board
		put(&b, from, Red, Cannon)
		put(&b, Sq(2, 0), Black, Chariot)
		if caps := cannonCapturesUp(t, &b, from); len(caps) != 0 {
			t.Fatalf("captures without screen: got=%v want none", caps)
		}
	})

	t.Run("OneScreen", func(t *testing.T) {
		var b Board
		put(&b, from, Red, Cannon)
		put(&b, Sq(4, 0), Red, Pawn)
		put(&b, Sq(2, 0), Black, Chariot)
		put(&b, Sq(0, 0), Black, Chariot)
		caps := cannonCapturesUp(t, &b, from)
		if len(caps) != 1 || caps[0] != Sq(2, 0) {
			t.Fatalf("captures with one screen: got=%v want [%v]", caps, Sq(2, 0))
		}
	})

	t.Run("OneScreenOwnBeyond", func(t *testing.T) {
		var b Board
		put(&b, from, Red, Cannon)
		put(&b, Sq(4, 0), Black, Pawn)
		put(&b, Sq(2, 0), Red, Chariot)
		if caps := cannonCapturesUp(t, &b, from); len(caps) != 0 {
			t.Fatalf("own piece beyond screen: got=%v want none", caps)
		}
	})

	t.Run("TwoScreens", func(t *testing.T) {
		var b Board
		put(&b, from, Red, Cannon)
		put(&b, Sq(5, 0), Black, Pawn)
		put(&b, Sq(3, 0), Black, Pawn)
		put(&b, Sq(1, 0), Black, Chariot)
		caps := cannonCapturesUp(t, &b, from)
		// a8 前面隔了两个子，只有 a6 可吃
		if len(caps) != 1 || caps[0] != Sq(3, 0) {
			t.Fatalf("captures with two screens: got=%v want [%v]", caps, Sq(3, 0))
		}
	})
}

func TestPawnSidewaysOnlyAfterRiver(t *testing.T) {
	var b Board
	put(&b, Sq(6, 4), Red, Pawn)
	if got := destSet(t, &b, Sq(6, 4)); len(got) != 1 || !got[Sq(5, 4)] {
		t.Fatalf("red pawn at home: got=%v want only forward", got)
	}

	b = Board{}
	put(&b, Sq(4, 4), Red, Pawn)
	got := destSet(t, &b, Sq(4, 4))
	for _, sq := range []Square{Sq(3, 4), Sq(4, 3), Sq(4, 5)} {
		if !got[sq] {
			t.Fatalf("crossed red pawn missing %v: got=%v", sq, got)
		}
	}
	if len(got) != 3 {
		t.Fatalf("crossed red pawn: got=%d destinations want=3", len(got))
	}

	b = Board{}
	put(&b, Sq(9, 0), Black, Pawn)
	if got := destSet(t, &b, Sq(9, 0)); len(got) != 1 || !got[Sq(9, 1)] {
		t.Fatalf("black pawn on last rank: got=%v want only sideways", got)
	}
}

func TestElephantStaysHomeAndEyeBlocks(t *testing.T) {
	var b Board
	put(&b, Sq(5, 2), Red, Elephant)
	got := destSet(t, &b, Sq(5, 2))
	if len(got) != 2 || !got[Sq(7, 0)] || !got[Sq(7, 4)] {
		t.Fatalf("red elephant on river bank: got=%v", got)
	}

	put(&b, Sq(6, 3), Black, Pawn)
	got = destSet(t, &b, Sq(5, 2))
	if len(got) != 1 || !got[Sq(7, 0)] {
		t.Fatalf("blocked eye: got=%v", got)
	}
}

func TestPalacePiecesStayInPalace(t *testing.T) {
	var b Board
	put(&b, Sq(7, 3), Red, General)
	got := destSet(t, &b, Sq(7, 3))
	if len(got) != 2 || !got[Sq(8, 3)] || !got[Sq(7, 4)] {
		t.Fatalf("general in palace corner: got=%v", got)
	}

	b = Board{}
	put(&b, Sq(2, 5), Black, Advisor)
	got = destSet(t, &b, Sq(2, 5))
	if len(got) != 1 || !got[Sq(1, 4)] {
		t.Fatalf("advisor in palace corner: got=%v", got)
	}
}

func TestPseudoLegalDestinationsEmptyAndOffBoard(t *testing.T) {
	var b Board
	dsts, err := PseudoLegalDestinations(&b, Sq(4, 4))
	if err != nil || dsts != nil {
		t.Fatalf("empty square: got=%v err=%v", dsts, err)
	}
	if _, err := PseudoLegalDestinations(&b, Sq(-1, 4)); err == nil {
		t.Fatalf("off-board square must fail")
	}
}
