package suppress

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/CodMac/log-lens/core"
	"github.com/CodMac/log-lens/model"
)

// RenderFunc 把一条注释渲染为用于指令匹配的文本。
// 渲染可依赖注释所处位置（原始空白重建），默认实现只剥掉定界符。
type RenderFunc func(c *model.Comment, pos *model.Position) string

// DefaultRender 剥离 // 与 /* */ 定界符并去除首尾空白。
func DefaultRender(c *model.Comment, _ *model.Position) string {
	text := strings.TrimSpace(c.Text)
	text = strings.TrimPrefix(text, "//")
	text = strings.TrimPrefix(text, "/*")
	text = strings.TrimSuffix(text, "*/")
	return strings.TrimSpace(text)
}

// Engine 把附着点定位、指令解析与作用域判定组合为单一布尔决策。
// 命中时只产生一条诊断日志，永不报错。
type Engine struct {
	conv   *core.Conventions
	render RenderFunc
	log    zerolog.Logger
}

func NewEngine(conv *core.Conventions, log zerolog.Logger) *Engine {
	return &Engine{conv: conv, render: DefaultRender, log: log}
}

// WithRender 替换注释渲染函数（外部协作方可注入位置敏感的渲染）。
func (e *Engine) WithRender(fn RenderFunc) *Engine {
	e.render = fn
	return e
}

// IsSuppressed 判定 (节点, 规则) 是否被抑制。ruleID 为空表示任意规则。
func (e *Engine) IsSuppressed(pos *model.Position, ruleID string) bool {
	if pos == nil || pos.Node() == nil {
		return false
	}

	suppressed := e.directiveAt(pos, ruleID) || e.scopeSuppressed(pos, ruleID)
	if suppressed {
		rule := ruleID
		if rule == "" {
			rule = "any"
		}
		e.log.Debug().
			Str("kind", string(pos.Node().Kind)).
			Str("node", pos.Node().Label()).
			Str("rule", rule).
			Msg("处理被指令抑制")
	}
	return suppressed
}

// directiveAt 检查节点自身附着点上是否存在匹配指令。
func (e *Engine) directiveAt(pos *model.Position, ruleID string) bool {
	for _, comments := range AttachmentPoints(pos.Node()) {
		for _, c := range comments {
			d, ok := ParseDirective(e.render(c, pos), e.conv.MarkerToken)
			if ok && d.Matches(ruleID) {
				return true
			}
		}
	}
	return false
}
