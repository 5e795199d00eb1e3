// Package core 持有约定目录、配置与语言前端注册表。
//
// 规则 id 采用限定名形式，抑制指令既可写全名也可只写简单名
// （最右侧点分段），两种写法等价。
package core

import "github.com/CodMac/log-lens/model"

// Rule 约定规则的限定 id。
type Rule string

const (
	RuleStructuredRecord Rule = "loglens.rules.StructuredRecord" // 级别-记录策略与规范化重写
	RulePlaceholder      Rule = "loglens.rules.Placeholder"      // 占位符风格与参数计数
	RuleExceptionFirst   Rule = "loglens.rules.ExceptionFirst"   // 异常参数必须在首位
	RuleConcatenation    Rule = "loglens.rules.Concatenation"    // 禁止与记录混用字符串拼接
)

// AllRules 规则目录，供报告与文档枚举。
var AllRules = []Rule{
	RuleStructuredRecord,
	RulePlaceholder,
	RuleExceptionFirst,
	RuleConcatenation,
}

func (r Rule) String() string { return string(r) }

// SimpleName 返回规则的简单名，如 "StructuredRecord"。
func (r Rule) SimpleName() string { return model.SimpleName(string(r)) }

// Description 规则的人类可读说明。
func (r Rule) Description() string {
	switch r {
	case RuleStructuredRecord:
		return "INFO/WARN/ERROR/FATAL 必须携带结构化记录；DEBUG/TRACE 禁止携带。"
	case RulePlaceholder:
		return "模板只允许规范占位符 %s，且数量须与参数个数一致。"
	case RuleExceptionFirst:
		return "ERROR/WARN 调用中的异常参数必须位于首位（自动修复）。"
	case RuleConcatenation:
		return "携带结构化记录时禁止任何字符串拼接参数。"
	default:
		return "unknown rule"
	}
}
