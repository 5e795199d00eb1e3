// Package logcall 识别日志调用的参数形态，校验级别策略并重写为
// 规范形态。全部操作为纯函数式：返回替换节点与待附着消息，
// 从不原地修改输入树。
package logcall

import (
	"github.com/CodMac/log-lens/core"
	"github.com/CodMac/log-lens/model"
)

// --- 参数形态 (Argument Patterns) ---

type PatternKind int

const (
	NoRecordPattern  PatternKind = iota // 无结构化记录
	MethodRefPattern                    // 格式化方法引用：RECORD::format
	InvokePattern                       // 格式化调用：RECORD.format(...)
	DirectPattern                       // 裸记录引用（已是规范形态）
)

// Classification 一次调用的分类结果。RecordIndex 为记录参数下标
// （有前导异常时为 1），NoRecordPattern 时无意义。
type Classification struct {
	Kind         PatternKind
	RecordIndex  int
	Record       *model.TreeNode // 记录子表达式（裸引用或接收者）
	FormatArgs   []*model.TreeNode
	HasException bool
}

type Classifier struct {
	conv *core.Conventions
}

func NewClassifier(conv *core.Conventions) *Classifier {
	return &Classifier{conv: conv}
}

// IsLoggerCall 接收者静态类型为日志器类型的调用才参与约定检查。
func (c *Classifier) IsLoggerCall(n *model.TreeNode) bool {
	if n == nil || n.Kind != model.KindCallExpr || n.Receiver == nil {
		return false
	}
	return n.Receiver.Type.AssignableTo(c.conv.LoggerType)
}

// Classify 按固定顺序识别参数形态。零参数调用不参与分类，返回 nil。
//
// 顺序是承载语义的：先查异常+记录组合，再查裸记录引用，
// 避免把 error(e, RECORD) 误判为"无记录"。
func (c *Classifier) Classify(call *model.TreeNode) *Classification {
	args := call.Args
	if len(args) == 0 {
		return nil
	}

	// a/b. 首参数即为方法引用或格式化调用
	if cls := c.classifyRecordArg(args[0], 0); cls != nil {
		return cls
	}

	// c. 首参数为异常且还有后续参数：对第二个参数重跑 a/b
	hasException := c.isException(args[0]) && len(args) > 1
	if hasException {
		if cls := c.classifyRecordArg(args[1], 1); cls != nil {
			cls.HasException = true
			return cls
		}
	}

	// d. 记录下标位置上已是裸记录引用（规范形态）
	recordIdx := 0
	if hasException {
		recordIdx = 1
	}
	if c.isRecordRef(args[recordIdx]) {
		return &Classification{
			Kind:         DirectPattern,
			RecordIndex:  recordIdx,
			Record:       args[recordIdx],
			HasException: hasException,
		}
	}

	// e. 其余形态
	return &Classification{Kind: NoRecordPattern, HasException: hasException}
}

// classifyRecordArg 对单个参数执行形态 a 与 b 的判定。
func (c *Classifier) classifyRecordArg(arg *model.TreeNode, idx int) *Classification {
	if arg == nil {
		return nil
	}

	switch arg.Kind {
	case model.KindMethodRef:
		if arg.Name == c.conv.FormatMethod && c.isRecordRef(arg.Receiver) {
			return &Classification{Kind: MethodRefPattern, RecordIndex: idx, Record: arg.Receiver}
		}
	case model.KindCallExpr:
		if arg.Name == c.conv.FormatMethod && c.isRecordRef(arg.Receiver) {
			return &Classification{
				Kind:        InvokePattern,
				RecordIndex: idx,
				Record:      arg.Receiver,
				FormatArgs:  nonEmptyArgs(arg.Args),
			}
		}
	}
	return nil
}

func (c *Classifier) isRecordRef(n *model.TreeNode) bool {
	return n != nil && n.Type.AssignableTo(c.conv.RecordType)
}

func (c *Classifier) isException(n *model.TreeNode) bool {
	return n != nil && n.Type.AssignableTo(c.conv.ExceptionType)
}

// nonEmptyArgs 过滤占位空参数（零参调用在某些树形态下会留下空节点）。
func nonEmptyArgs(args []*model.TreeNode) []*model.TreeNode {
	out := make([]*model.TreeNode, 0, len(args))
	for _, a := range args {
		if a == nil {
			continue
		}
		if a.Kind == model.KindIdentifier && a.Name == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}
