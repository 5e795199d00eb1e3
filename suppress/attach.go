package suppress

import "github.com/CodMac/log-lens/model"

// AttachmentPoints 枚举指令在该节点上的合法附着点，按"最具体优先"
// 返回候选注释列表。
//
// 声明类节点（类/方法/字段）：自身前导注释 → 首个前导注解的注释
// →（仅类）类体起始注释。首个注解的回查是为了救回被注解"吞掉"的
// 人工指令；不扫描全部注解。
// 语句/表达式类节点只有自身前导注释。
func AttachmentPoints(n *model.TreeNode) [][]*model.Comment {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case model.KindClassDecl:
		points := [][]*model.Comment{n.LeadingComments}
		points = append(points, firstAnnotationComments(n)...)
		points = append(points, n.BodyComments)
		return points
	case model.KindMethodDecl, model.KindFieldDecl:
		points := [][]*model.Comment{n.LeadingComments}
		return append(points, firstAnnotationComments(n)...)
	case model.KindCatchClause, model.KindThrowStmt, model.KindNewInstanceExpr, model.KindCallExpr:
		return [][]*model.Comment{n.LeadingComments}
	default:
		return [][]*model.Comment{n.LeadingComments}
	}
}

func firstAnnotationComments(n *model.TreeNode) [][]*model.Comment {
	if len(n.Annotations) == 0 {
		return nil
	}
	return [][]*model.Comment{n.Annotations[0].LeadingComments}
}
