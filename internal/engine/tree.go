package engine

import (
	"fmt"

	"xiangqi/internal/xiangqi"
)

// NodeID 是节点在 Tree 里的下标
type NodeID int32

const NoNode NodeID = -1

// Node 搜索树节点。S 是具体算法的统计信息。
type Node[S any] struct {
	Pos      *xiangqi.Position
	Move     xiangqi.Move // 父节点走到这里的着法
	Parent   NodeID
	Children []NodeID
	Expanded bool
	Stats    S
}

// Tree 用一个切片存所有节点，父子之间只保存下标
type Tree[S any] struct {
	nodes []Node[S]
	root  NodeID
}

func NewTree[S any](pos *xiangqi.Position) *Tree[S] {
	t := &Tree[S]{}
	t.Reset(pos)
	return t
}

// Reset 丢掉整棵树，以 pos 为新根
func (t *Tree[S]) Reset(pos *xiangqi.Position) {
	t.nodes = append(t.nodes[:0], Node[S]{Pos: pos, Parent: NoNode})
	t.root = 0
}

func (t *Tree[S]) Root() NodeID { return t.root }

func (t *Tree[S]) Len() int { return len(t.nodes) }

// Node 返回的指针在下一次 Expand / Promote 之前有效
func (t *Tree[S]) Node(id NodeID) *Node[S] { return &t.nodes[id] }

// Expand 按需生成子节点，已经展开过就直接返回
func (t *Tree[S]) Expand(id NodeID) []NodeID {
	if t.nodes[id].Expanded {
		return t.nodes[id].Children
	}
	succ := t.nodes[id].Pos.LegalSuccessors()
	children := make([]NodeID, 0, len(succ))
	for _, s := range succ {
		children = append(children, NodeID(len(t.nodes)))
		t.nodes = append(t.nodes, Node[S]{Pos: s.Pos, Move: s.Move, Parent: id})
	}
	n := &t.nodes[id]
	n.Children = children
	n.Expanded = true
	return children
}

func (t *Tree[S]) ChildByMove(id NodeID, mv xiangqi.Move) (NodeID, bool) {
	for _, c := range t.Expand(id) {
		if t.nodes[c].Move == mv {
			return c, true
		}
	}
	return NoNode, false
}

// Promote 把 id 变成新根：只保留它的子树并重新编号，兄弟和祖先全部丢掉
func (t *Tree[S]) Promote(id NodeID) {
	if id == t.root {
		return
	}
	nodes := make([]Node[S], 0, t.subtreeSize(id))
	nodes = append(nodes, t.nodes[id])
	nodes[0].Parent = NoNode

	for i := 0; i < len(nodes); i++ {
		old := nodes[i].Children
		if len(old) == 0 {
			continue
		}
		children := make([]NodeID, len(old))
		for j, c := range old {
			nid := NodeID(len(nodes))
			n := t.nodes[c]
			n.Parent = NodeID(i)
			nodes = append(nodes, n)
			children[j] = nid
		}
		nodes[i].Children = children
	}
	t.nodes = nodes
	t.root = 0
}

func (t *Tree[S]) subtreeSize(id NodeID) int {
	n := 1
	for _, c := range t.nodes[id].Children {
		n += t.subtreeSize(c)
	}
	return n
}

// Advance 根节点走一步 mv，走不通返回 ErrInvalidMove
func (t *Tree[S]) Advance(mv xiangqi.Move) error {
	c, ok := t.ChildByMove(t.root, mv)
	if !ok {
		return fmt.Errorf("advance %v: %w", mv, xiangqi.ErrInvalidMove)
	}
	t.Promote(c)
	return nil
}

// ResetStats 清掉所有节点的统计信息，树的形状保留
func (t *Tree[S]) ResetStats() {
	var zero S
	for i := range t.nodes {
		t.nodes[i].Stats = zero
	}
}
