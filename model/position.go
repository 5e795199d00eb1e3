package model

// Position 自根到节点的祖先链，不可变值：Push 产生新链，
// 向上查询不携带可变游标状态。
type Position struct {
	node   *TreeNode
	parent *Position
}

// NewPosition 以 root 为链首创建位置。
func NewPosition(root *TreeNode) *Position {
	return &Position{node: root}
}

func (p *Position) Node() *TreeNode { return p.node }

// Parent 返回父位置，根位置返回 nil。
func (p *Position) Parent() *Position {
	if p == nil {
		return nil
	}
	return p.parent
}

// Push 下推一个子节点，返回新位置（原链不变）。
func (p *Position) Push(child *TreeNode) *Position {
	return &Position{node: child, parent: p}
}

// FindAncestor 自父位置向上查找首个满足 match 的祖先。
// boundary 非 nil 时：边界祖先本身先参与 match 判定，之后终止上溯
// （即使未命中也停止，保证走链有界）。
func (p *Position) FindAncestor(match func(NodeKind) bool, boundary func(NodeKind) bool) *Position {
	for cur := p.Parent(); cur != nil; cur = cur.Parent() {
		if match(cur.node.Kind) {
			return cur
		}
		if boundary != nil && boundary(cur.node.Kind) {
			return nil
		}
	}
	return nil
}

// KindIs 构造单一 Kind 的谓词，供 FindAncestor 使用。
func KindIs(kind NodeKind) func(NodeKind) bool {
	return func(k NodeKind) bool { return k == kind }
}

// KindIn 构造 Kind 集合谓词。
func KindIn(kinds ...NodeKind) func(NodeKind) bool {
	return func(k NodeKind) bool {
		for _, want := range kinds {
			if k == want {
				return true
			}
		}
		return false
	}
}
