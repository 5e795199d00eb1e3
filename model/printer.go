package model

import "strings"

// Render 将表达式节点序列化为 Java 风格片段，仅用于报告展示，
// 不承担完整源码重建职责。
func Render(n *TreeNode) string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case KindIdentifier:
		return n.Name
	case KindLiteral:
		return n.Value
	case KindMemberAccess:
		return Render(n.Receiver) + "." + n.Name
	case KindMethodRef:
		return Render(n.Receiver) + "::" + n.Name
	case KindCallExpr:
		var sb strings.Builder
		if n.Receiver != nil {
			sb.WriteString(Render(n.Receiver))
			sb.WriteString(".")
		}
		sb.WriteString(n.Name)
		sb.WriteString("(")
		sb.WriteString(renderArgs(n.Args))
		sb.WriteString(")")
		return sb.String()
	case KindNewInstanceExpr:
		return "new " + n.Name + "(" + renderArgs(n.Args) + ")"
	case KindBinaryExpr:
		return Render(n.Left) + " " + n.Op + " " + Render(n.Right)
	default:
		return n.Label()
	}
}

func renderArgs(args []*TreeNode) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, Render(a))
	}
	return strings.Join(parts, ", ")
}
