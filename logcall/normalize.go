package logcall

import (
	"fmt"

	"github.com/CodMac/log-lens/core"
	"github.com/CodMac/log-lens/model"
)

// Marker 一条待附着的违规标记。
type Marker struct {
	Rule    core.Rule
	Message string
}

// Result 规范化结果。Call 为替换节点（未变化时即原节点）。
type Result struct {
	Call      *model.TreeNode
	Rewritten bool
	Rules     []core.Rule // 触发了重写的规则
	Markers   []Marker
}

// Normalizer 对已识别为日志调用的节点执行幂等规范化。
type Normalizer struct {
	conv *core.Conventions
	cls  *Classifier
}

func NewNormalizer(conv *core.Conventions) *Normalizer {
	return &Normalizer{conv: conv, cls: NewClassifier(conv)}
}

// Apply 依序执行：规范化重写 → 拼接守卫 → 级别策略 → 异常位置修复
// → 占位符矫正。allowed 按规则逐条咨询抑制判定，每个重写/标记
// 决策前都要先问过它。
//
// 幂等性：重写目标形态 (DirectPattern) 与无记录形态不再触发重写，
// 重复遍历自身输出是安全的。
func (n *Normalizer) Apply(call *model.TreeNode, allowed func(core.Rule) bool) *Result {
	res := &Result{Call: call}

	cls := n.cls.Classify(call)
	if cls == nil {
		return res
	}
	level := core.NormalizeLevel(call.Name)
	if !n.conv.KnownLevel(level) {
		return res
	}

	cur := call

	// 1. 规范化重写：方法引用/格式化调用坍缩为裸记录 + 尾随参数
	if (cls.Kind == MethodRefPattern || cls.Kind == InvokePattern) && allowed(core.RuleStructuredRecord) {
		cur = n.rewriteRecordArg(cur, cls)
		res.Rewritten = true
		res.Rules = append(res.Rules, core.RuleStructuredRecord)
	}

	recordPresent := cls.Kind != NoRecordPattern

	// 2. 拼接守卫：记录确认存在后，扫描记录之后的全部参数
	concatHit := false
	if recordPresent && allowed(core.RuleConcatenation) {
		for _, arg := range cur.Args[cls.RecordIndex+1:] {
			if n.hasStringConcat(arg) {
				concatHit = true
				break
			}
		}
		if concatHit {
			res.Markers = append(res.Markers, Marker{
				Rule:    core.RuleConcatenation,
				Message: "string concatenation with structured record is always wrong",
			})
		}
	}

	// 3. 级别策略。拼接命中时让位：拼接是更具体的缺陷。
	if !concatHit && allowed(core.RuleStructuredRecord) {
		if n.conv.RequiresRecord(level) && !recordPresent {
			res.Markers = append(res.Markers, Marker{
				Rule:    core.RuleStructuredRecord,
				Message: fmt.Sprintf("%s needs structured record", level),
			})
		}
		if n.conv.ForbidsRecord(level) && recordPresent {
			res.Markers = append(res.Markers, Marker{
				Rule:    core.RuleStructuredRecord,
				Message: fmt.Sprintf("%s forbids structured record", level),
			})
		}
	}

	// 4. 异常位置修复：无条件自动修复，不出标记
	if allowed(core.RuleExceptionFirst) && n.conv.ShouldReorderException(level) && len(cur.Args) > 1 {
		if moved := n.reorderException(cur); moved != nil {
			cur = moved
			res.Rewritten = true
			res.Rules = append(res.Rules, core.RuleExceptionFirst)
		}
	}

	// 5. 占位符矫正与参数计数校验（仅无记录形态存在字符串模板）
	if !recordPresent && allowed(core.RulePlaceholder) {
		cur, res.Rewritten, res.Rules, res.Markers =
			n.fixPlaceholders(cur, res.Rewritten, res.Rules, res.Markers)
	}

	res.Call = cur
	return res
}

// rewriteRecordArg 把分类出的参数替换为裸记录表达式；格式化调用的
// 自身参数紧随其后内联，首个内联参数给一个前导空格。
// 记录表达式保留原参数的前缀，维持排版稳定。
func (n *Normalizer) rewriteRecordArg(call *model.TreeNode, cls *Classification) *model.TreeNode {
	orig := call.Args[cls.RecordIndex]

	record := cls.Record.Clone()
	record.Prefix = orig.Prefix

	out := call.Clone()
	newArgs := make([]*model.TreeNode, 0, len(call.Args)+len(cls.FormatArgs))
	newArgs = append(newArgs, call.Args[:cls.RecordIndex]...)
	newArgs = append(newArgs, record)
	for i, fa := range cls.FormatArgs {
		if i == 0 {
			fa = fa.Clone()
			fa.Prefix = " "
		}
		newArgs = append(newArgs, fa)
	}
	newArgs = append(newArgs, call.Args[cls.RecordIndex+1:]...)
	out.Args = newArgs
	return out
}

// reorderException 把首个异常类型参数移动到下标 0，其余整体后移。
// 已在首位或不存在异常参数时返回 nil。
func (n *Normalizer) reorderException(call *model.TreeNode) *model.TreeNode {
	idx := -1
	for i, arg := range call.Args {
		if arg.Type.AssignableTo(n.conv.ExceptionType) {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return nil
	}

	out := call.Clone()
	newArgs := make([]*model.TreeNode, 0, len(call.Args))
	newArgs = append(newArgs, call.Args[idx])
	newArgs = append(newArgs, call.Args[:idx]...)
	newArgs = append(newArgs, call.Args[idx+1:]...)
	out.Args = newArgs
	return out
}

// hasStringConcat 递归探测二元 + 表达式中任一侧为字符串类型。
func (n *Normalizer) hasStringConcat(expr *model.TreeNode) bool {
	if expr == nil || expr.Kind != model.KindBinaryExpr || expr.Op != "+" {
		return false
	}
	if n.isString(expr.Left) || n.isString(expr.Right) {
		return true
	}
	return n.hasStringConcat(expr.Left) || n.hasStringConcat(expr.Right)
}

func (n *Normalizer) isString(expr *model.TreeNode) bool {
	return expr != nil && expr.Type.AssignableTo(n.conv.StringType)
}

// fixPlaceholders 矫正消息字面量中的错误占位符并校验参数个数。
// 消息参数为记录下标位置上的字符串字面量；找不到则整体跳过。
func (n *Normalizer) fixPlaceholders(
	call *model.TreeNode, rewritten bool, rules []core.Rule, markers []Marker,
) (*model.TreeNode, bool, []core.Rule, []Marker) {
	msgIdx := -1
	for i, arg := range call.Args {
		if arg.Kind == model.KindLiteral && n.isString(arg) {
			msgIdx = i
			break
		}
	}
	if msgIdx < 0 {
		return call, rewritten, rules, markers
	}

	msg := call.Args[msgIdx]
	text := msg.Value

	if HasIncorrect(text) {
		fixed := msg.Clone()
		fixed.Value = Correct(text)
		out := call.Clone()
		out.Args[msgIdx] = fixed

		call = out
		text = fixed.Value
		rewritten = true
		rules = append(rules, core.RulePlaceholder)
	}

	expected := 0
	for i, arg := range call.Args {
		if i == msgIdx {
			continue
		}
		if arg.Type.AssignableTo(n.conv.ExceptionType) {
			continue
		}
		expected++
	}
	if Count(text) != expected {
		markers = append(markers, Marker{
			Rule:    core.RulePlaceholder,
			Message: "placeholder count does not match argument count",
		})
	}

	return call, rewritten, rules, markers
}
