package xiangqi

import "math/rand"

// 棋子 pc 在第 i 格的键是 zobristKeys[pc+numKinds][i]，空格那一行全是 0
var zobristKeys [2 * numKinds][NumSquares]uint64

// 轮到黑方走时异或进哈希
var zobristBlackToMove uint64

func init() {
	rng := rand.New(rand.NewSource(0x5851f42d))
	for row := range zobristKeys {
		if row == numKinds {
			continue
		}
		for i := range zobristKeys[row] {
			zobristKeys[row][i] = rng.Uint64()
		}
	}
	zobristBlackToMove = rng.Uint64()
}

func (pc Piece) zobrist(sq Square) uint64 {
	return zobristKeys[int(pc)+numKinds][sq.index()]
}

func (b *Board) hash(side Side) uint64 {
	var h uint64
	for i, pc := range b.Squares {
		h ^= zobristKeys[int(pc)+numKinds][i]
	}
	if side == Black {
		h ^= zobristBlackToMove
	}
	return h
}

// CalculateHash 从头算一遍，测试里用来核对增量更新
func (p *Position) CalculateHash() uint64 { return p.Board.hash(p.SideToMove) }
