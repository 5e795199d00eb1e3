package model

import "strings"

// TypeRef 表达式的静态类型描述。孤立片段分析时绑定器可能只拿到
// 简单名，因此匹配统一容忍 simple-name 相等。
type TypeRef struct {
	QualifiedName string   `json:"QualifiedName"`
	Supers        []string `json:"Supers,omitempty"` // 父类/接口链（QN 或简单名）
}

// Is 判断类型名是否与 qn 匹配（全名相等或简单名相等）。
func (t *TypeRef) Is(qn string) bool {
	if t == nil {
		return false
	}
	return NameMatches(t.QualifiedName, qn)
}

// AssignableTo 判断本类型是否可赋值给 qn：自身匹配或父链任一匹配。
func (t *TypeRef) AssignableTo(qn string) bool {
	if t == nil {
		return false
	}
	if NameMatches(t.QualifiedName, qn) {
		return true
	}
	for _, s := range t.Supers {
		if NameMatches(s, qn) {
			return true
		}
	}
	return false
}

// SimpleName 取最右侧点分段。
func SimpleName(qn string) string {
	if idx := strings.LastIndex(qn, "."); idx >= 0 {
		return qn[idx+1:]
	}
	return qn
}

// NameMatches 两个标识符匹配：全等，或简单名相等。
// 对称且自反，规则 id 与类型名共用同一判定。
func NameMatches(a, b string) bool {
	if a == b {
		return true
	}
	return SimpleName(a) == SimpleName(b)
}
