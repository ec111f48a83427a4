package xiangqi

// 兵：未过河只能前进，过河后可以横走
func genPawn(b *Board, from Square, side Side, out *[]Square) {
	r := from.Row + forward(side)
	if onBoard(r, from.Col) && canLand(b, side, r, from.Col) {
		*out = append(*out, Sq(r, from.Col))
	}
	if !CrossedRiver(side, from.Row) {
		return
	}
	for _, dc := range [2]int{-1, +1} {
		c := from.Col + dc
		if onBoard(from.Row, c) && canLand(b, side, from.Row, c) {
			*out = append(*out, Sq(from.Row, c))
		}
	}
}
