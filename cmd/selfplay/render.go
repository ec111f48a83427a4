package main

import (
	"strings"

	"github.com/muesli/termenv"
	"xiangqi/internal/xiangqi"
)

var pieceGlyph = map[xiangqi.Side][8]string{
	xiangqi.Red:   {"", "帥", "仕", "相", "傌", "俥", "炮", "兵"},
	xiangqi.Black: {"", "將", "士", "象", "馬", "車", "砲", "卒"},
}

// renderBoard 画棋盘，红黑分色，last 的起点终点加背景
func renderBoard(out *termenv.Output, b *xiangqi.Board, last *xiangqi.Move) string {
	red := out.Color("#d70000")
	black := out.Color("#5f87ff")
	mark := out.Color("#444444")

	var sb strings.Builder
	for r := 0; r < xiangqi.Rows; r++ {
		if r == xiangqi.Rows/2 {
			sb.WriteString("   ~~~~~~~~~~~~~~~~~~~~~~~~~~~~\n")
		}
		sb.WriteByte(byte('0' + xiangqi.Rows - 1 - r))
		sb.WriteString("  ")
		for c := 0; c < xiangqi.Cols; c++ {
			sq := xiangqi.Sq(r, c)
			pc, _ := b.At(sq)
			var s termenv.Style
			if pc == 0 {
				s = out.String("· ").Faint()
			} else {
				s = out.String(pieceGlyph[pc.Side()][pc.Kind()])
				if pc.Side() == xiangqi.Red {
					s = s.Foreground(red).Bold()
				} else {
					s = s.Foreground(black)
				}
			}
			if last != nil && (sq == last.From || sq == last.To) {
				s = s.Background(mark)
			}
			sb.WriteString(s.String())
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   a  b  c  d  e  f  g  h  i")
	return sb.String()
}
