// Package walker 提供约定树的深度优先函数式遍历：每次访问返回
// 替换节点，兄弟子树之间无共享可变状态，整趟遍历可被调用方反复
// 执行（安全性由各重写的幂等性保证，而非任何锁）。
package walker

import "github.com/CodMac/log-lens/model"

// VisitFunc 访问一个节点并返回其替换节点（可原样返回）。
// pos 是包含该节点在内的祖先链快照。
type VisitFunc func(pos *model.Position, n *model.TreeNode) *model.TreeNode

// Walk 自根开始遍历，返回（可能被替换的）根节点。
// 先访问节点本身，再以替换结果为准递归其子结构。
func Walk(root *model.TreeNode, visit VisitFunc) *model.TreeNode {
	if root == nil {
		return nil
	}
	return walk(model.NewPosition(root), visit)
}

func walk(pos *model.Position, visit VisitFunc) *model.TreeNode {
	n := visit(pos, pos.Node())
	if n == nil {
		return nil
	}

	out := n
	cloned := false
	ensure := func() *model.TreeNode {
		if !cloned {
			out = n.Clone()
			cloned = true
		}
		return out
	}

	// 子结构以替换后的节点为基准重新下推
	base := model.NewPosition(n)
	if pos.Parent() != nil {
		base = pos.Parent().Push(n)
	}

	for i, child := range n.Children {
		if child == nil {
			continue
		}
		if next := walk(base.Push(child), visit); next != child {
			ensure().Children[i] = next
		}
	}
	for i, arg := range n.Args {
		if arg == nil {
			continue
		}
		if next := walk(base.Push(arg), visit); next != arg {
			ensure().Args[i] = next
		}
	}
	if n.Receiver != nil {
		if next := walk(base.Push(n.Receiver), visit); next != n.Receiver {
			ensure().Receiver = next
		}
	}
	if n.Left != nil {
		if next := walk(base.Push(n.Left), visit); next != n.Left {
			ensure().Left = next
		}
	}
	if n.Right != nil {
		if next := walk(base.Push(n.Right), visit); next != n.Right {
			ensure().Right = next
		}
	}

	return out
}
