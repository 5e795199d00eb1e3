// Package suppress 实现抑制指令的解析、附着点定位与作用域判定。
//
// 指令格式：标记 token 后接可选的规则 id，大小写敏感：
//
//	// loglens:ignore                  —— 抑制全部规则
//	// loglens:ignore StructuredRecord —— 只抑制一条规则
//
// 规则 id 写全名或简单名均可。token 之后的任意尾随文本按字面规则 id
// 处理，不做合法性校验（已知的歧义，保持与指令语义一致）。
package suppress

import (
	"strings"

	"github.com/CodMac/log-lens/model"
)

// Directive 解析后的抑制指令。ruleID 为空表示抑制全部规则。
type Directive struct {
	ruleID string
}

// NewNamedDirective 构造指向单条规则的指令。
// 空 id 是调用方契约违规，直接 panic；正常输入路径不可达——
// ParseDirective 对空余文本返回的是全量指令。
func NewNamedDirective(ruleID string) *Directive {
	if ruleID == "" {
		panic("suppress: named directive requires a non-empty rule id")
	}
	return &Directive{ruleID: ruleID}
}

// ParseDirective 从单条注释的渲染文本中提取指令。
// 未包含 token 时返回 (nil, false)。
func ParseDirective(text, token string) (*Directive, bool) {
	idx := strings.Index(text, token)
	if idx < 0 {
		return nil, false
	}
	rest := strings.TrimSpace(text[idx+len(token):])
	if rest == "" {
		return &Directive{}, true
	}
	return NewNamedDirective(rest), true
}

// AppliesToAll 是否为全量抑制。
func (d *Directive) AppliesToAll() bool { return d.ruleID == "" }

// RuleID 指令指向的规则 id，全量指令返回空串。
func (d *Directive) RuleID() string { return d.ruleID }

// Matches 指令是否覆盖给定规则。ruleID 为空表示"任意规则"查询，
// 仅被全量指令覆盖之外也算命中（任一指令存在即可抑制任意查询）。
func (d *Directive) Matches(ruleID string) bool {
	if d.AppliesToAll() {
		return true
	}
	if ruleID == "" {
		return true
	}
	return model.NameMatches(d.ruleID, ruleID)
}
