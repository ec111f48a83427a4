package xiangqi

type Result int8

const (
	Ongoing Result = iota
	RedWins
	BlackWins
	Draw
)

func (r Result) String() string {
	switch r {
	case Ongoing:
		return "ongoing"
	case RedWins:
		return "red wins"
	case BlackWins:
		return "black wins"
	case Draw:
		return "draw"
	}
	return "unknown"
}

func (r Result) IsTerminal() bool { return r != Ongoing }

// Winner 和棋或未结束时返回 NoSide
func (r Result) Winner() Side {
	switch r {
	case RedWins:
		return Red
	case BlackWins:
		return Black
	}
	return NoSide
}

func winFor(side Side) Result {
	if side == Red {
		return RedWins
	}
	return BlackWins
}

// Result 先判重复局面，再判无子可走（无着即负，没有困毙和棋）
func (p *Position) Result() Result {
	if p.Repetitions() >= MaxRepetitions {
		return Draw
	}
	if !p.HasLegalMove() {
		return winFor(p.SideToMove.Opponent())
	}
	return Ongoing
}
