package xiangqi

// IsGeneralExposed 判断 mover 的将在盘面 b 上是否受到 opponent 攻击。
// 找不到 mover 的将也算暴露。
func IsGeneralExposed(b *Board, mover, opponent Side) bool {
	g, ok := b.FindGeneral(mover)
	if !ok {
		return true
	}

	// 车、炮、对脸：沿四个方向扫
	for _, d := range orthDirs {
		screens := 0
		r, c := g.Row+d[0], g.Col+d[1]
		for onBoard(r, c) {
			pc := b.at(r, c)
			if pc == 0 {
				r += d[0]
				c += d[1]
				continue
			}
			if screens == 0 {
				if pc.Side() == opponent && (pc.Kind() == Chariot || pc.Kind() == General) {
					return true
				}
			} else if pc.Side() == opponent && pc.Kind() == Cannon {
				return true
			}
			screens++
			if screens > 1 {
				break
			}
			r += d[0]
			c += d[1]
		}
	}

	// 马：反向套用马的走法表，马腿是将的斜邻格
	oppHorse := MakePiece(opponent, Horse)
	for _, m := range horseLegMoves {
		hr, hc := g.Row-m.Dr, g.Col-m.Dc
		if !onBoard(hr, hc) || b.at(hr, hc) != oppHorse {
			continue
		}
		if b.at(hr+m.Br, hc+m.Bc) == 0 {
			return true
		}
	}

	// 兵：左右两格 + 对方兵前进方向上的那一格
	oppPawn := MakePiece(opponent, Pawn)
	if r := g.Row - forward(opponent); onBoard(r, g.Col) && b.at(r, g.Col) == oppPawn {
		return true
	}
	for _, dc := range [2]int{-1, +1} {
		c := g.Col + dc
		if onBoard(g.Row, c) && b.at(g.Row, c) == oppPawn && CrossedRiver(opponent, g.Row) {
			return true
		}
	}
	return false
}
