package xiangqi

// 马 8 种“日”字：终点 + 马腿
var horseLegMoves = [8]struct {
	Dr, Dc int // 终点
	Br, Bc int // 马腿
}{
	{-2, -1, -1, 0},
	{-2, +1, -1, 0},
	{-1, -2, 0, -1},
	{-1, +2, 0, +1},
	{+1, -2, 0, -1},
	{+1, +2, 0, +1},
	{+2, -1, +1, 0},
	{+2, +1, +1, 0},
}

func genHorse(b *Board, from Square, side Side, out *[]Square) {
	for _, m := range horseLegMoves {
		r, c := from.Row+m.Dr, from.Col+m.Dc
		if !onBoard(r, c) {
			continue
		}
		if b.at(from.Row+m.Br, from.Col+m.Bc) != 0 {
			continue // 憋马腿
		}
		if canLand(b, side, r, c) {
			*out = append(*out, Sq(r, c))
		}
	}
}
