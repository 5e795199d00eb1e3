package suppress

import "github.com/CodMac/log-lens/model"

// --- Kind 专属短程升级规则 (Short-range Escalation) ---

// escalation 描述一种节点 Kind 的向上升级方式。
// 声明式表驱动，便于单独审计与测试。
type escalation struct {
	checkpoints []model.NodeKind // 参与检查的祖先 Kind
	boundary    model.NodeKind   // 上溯终止边界；空表示不设边界
	walkChain   bool             // true: 沿链逐个检查点判定；false: 仅最近一个
}

var escalationTable = map[model.NodeKind]escalation{
	// catch / throw：沿链检查每个 try 与方法，到首个方法边界为止。
	model.KindCatchClause: {
		checkpoints: []model.NodeKind{model.KindTryStmt, model.KindMethodDecl},
		boundary:    model.KindMethodDecl,
		walkChain:   true,
	},
	model.KindThrowStmt: {
		checkpoints: []model.NodeKind{model.KindTryStmt, model.KindMethodDecl},
		boundary:    model.KindMethodDecl,
		walkChain:   true,
	},
	// 对象构造（非 throw 直接子节点）：仅最近的字段或方法声明。
	model.KindNewInstanceExpr: {
		checkpoints: []model.NodeKind{model.KindFieldDecl, model.KindMethodDecl},
	},
	// 方法调用：仅最近的方法或类声明。
	model.KindCallExpr: {
		checkpoints: []model.NodeKind{model.KindMethodDecl, model.KindClassDecl},
	},
}

// scopeSuppressed 评估两条相互独立的升级规则，任一成立即抑制。
func (e *Engine) scopeSuppressed(pos *model.Position, ruleID string) bool {
	return e.kindEscalation(pos, ruleID) || e.classWide(pos, ruleID)
}

// kindEscalation 规则一：Kind 专属短程升级。
func (e *Engine) kindEscalation(pos *model.Position, ruleID string) bool {
	n := pos.Node()
	esc, ok := escalationTable[n.Kind]
	if !ok {
		return false
	}

	// 作为 throw 直接子节点的构造表达式不走自身升级：
	// 抑制与否由 throw 语句的升级决定。
	if n.Kind == model.KindNewInstanceExpr && parentKind(pos) == model.KindThrowStmt {
		return false
	}

	isCheckpoint := model.KindIn(esc.checkpoints...)

	if !esc.walkChain {
		ancestor := pos.FindAncestor(isCheckpoint, nil)
		if ancestor == nil {
			return false
		}
		return e.IsSuppressed(ancestor, ruleID)
	}

	// 沿链逐个检查点递归判定，越过边界后终止（未命中也终止，保证有界）。
	for cur := pos.Parent(); cur != nil; cur = cur.Parent() {
		kind := cur.Node().Kind
		if isCheckpoint(kind) && e.IsSuppressed(cur, ruleID) {
			return true
		}
		if esc.boundary != "" && kind == esc.boundary {
			break
		}
	}
	return false
}

// classWide 规则二：类级全量升级。任一祖先类在其三个附着点携带匹配
// 指令，则其所有后代无条件抑制。规则二始终运行，保证抑制单调性。
func (e *Engine) classWide(pos *model.Position, ruleID string) bool {
	for cur := pos.Parent(); cur != nil; cur = cur.Parent() {
		n := cur.Node()
		if n.Kind != model.KindClassDecl {
			continue
		}
		if e.directiveAt(cur, ruleID) {
			return true
		}
	}
	return false
}

func parentKind(pos *model.Position) model.NodeKind {
	parent := pos.Parent()
	if parent == nil {
		return ""
	}
	return parent.Node().Kind
}
