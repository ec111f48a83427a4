package xiangqi

// 落点为空或对方子
func canLand(b *Board, side Side, r, c int) bool {
	dst := b.at(r, c)
	return dst == 0 || dst.Side() != side
}

// 车：横竖随便走，遇子即停，对方子可吃
func genChariot(b *Board, from Square, side Side, out *[]Square) {
	for _, d := range orthDirs {
		r, c := from.Row+d[0], from.Col+d[1]
		for onBoard(r, c) {
			pc := b.at(r, c)
			if pc == 0 {
				*out = append(*out, Sq(r, c))
			} else {
				if pc.Side() != side {
					*out = append(*out, Sq(r, c))
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// 炮：车走法 + 隔一子吃
func genCannon(b *Board, from Square, side Side, out *[]Square) {
	for _, d := range orthDirs {
		r, c := from.Row+d[0], from.Col+d[1]

		// 走子阶段：直到第一个棋子（炮架）
		for onBoard(r, c) && b.at(r, c) == 0 {
			*out = append(*out, Sq(r, c))
			r += d[0]
			c += d[1]
		}
		r += d[0]
		c += d[1]

		// 吃子阶段：越过炮架，遇到第一子可吃
		for onBoard(r, c) {
			pc := b.at(r, c)
			if pc != 0 {
				if pc.Side() != side {
					*out = append(*out, Sq(r, c))
				}
				break
			}
			r += d[0]
			c += d[1]
		}
	}
}

// 相：田字，塞象眼不能走，不过河
func genElephant(b *Board, from Square, side Side, out *[]Square) {
	for _, d := range diagDirs {
		r, c := from.Row+2*d[0], from.Col+2*d[1]
		if !onBoard(r, c) || !OwnHalf(side, r) {
			continue
		}
		if b.at(from.Row+d[0], from.Col+d[1]) != 0 {
			continue
		}
		if canLand(b, side, r, c) {
			*out = append(*out, Sq(r, c))
		}
	}
}

// 士：九宫内斜走一格
func genAdvisor(b *Board, from Square, side Side, out *[]Square) {
	for _, d := range diagDirs {
		to := Sq(from.Row+d[0], from.Col+d[1])
		if !InSidePalace(side, to) {
			continue
		}
		if canLand(b, side, to.Row, to.Col) {
			*out = append(*out, to)
		}
	}
}

// 将：九宫内上下左右一格（对脸由暴露检查处理）
func genGeneral(b *Board, from Square, side Side, out *[]Square) {
	for _, d := range orthDirs {
		to := Sq(from.Row+d[0], from.Col+d[1])
		if !InSidePalace(side, to) {
			continue
		}
		if canLand(b, side, to.Row, to.Col) {
			*out = append(*out, to)
		}
	}
}
