package walker

import (
	"github.com/rs/zerolog"

	"github.com/CodMac/log-lens/core"
	"github.com/CodMac/log-lens/logcall"
	"github.com/CodMac/log-lens/model"
	"github.com/CodMac/log-lens/suppress"
)

// ConventionPass 一趟完整的约定检查与重写。
// 单线程同步执行；同一实例可对多棵树复用，但不可并发。
type ConventionPass struct {
	conv   *core.Conventions
	engine *suppress.Engine
	cls    *logcall.Classifier
	norm   *logcall.Normalizer
	log    zerolog.Logger
}

func NewConventionPass(conv *core.Conventions, log zerolog.Logger) *ConventionPass {
	return &ConventionPass{
		conv:   conv,
		engine: suppress.NewEngine(conv, log),
		cls:    logcall.NewClassifier(conv),
		norm:   logcall.NewNormalizer(conv),
		log:    log,
	}
}

// Engine 暴露抑制引擎，供外部规则目录复用同一决策。
func (p *ConventionPass) Engine() *suppress.Engine { return p.engine }

// Run 对一棵树执行一趟检查，返回替换后的根与本趟产出的结果。
func (p *ConventionPass) Run(root *model.TreeNode, filePath string) (*model.TreeNode, []*model.Finding) {
	var findings []*model.Finding

	out := Walk(root, func(pos *model.Position, n *model.TreeNode) *model.TreeNode {
		if !p.cls.IsLoggerCall(n) {
			return n
		}

		// 每个重写/标记决策前先咨询抑制判定
		allowed := func(r core.Rule) bool {
			return !p.engine.IsSuppressed(pos, r.String())
		}

		res := p.norm.Apply(n, allowed)
		cur := res.Call

		if res.Rewritten {
			for _, rule := range res.Rules {
				findings = append(findings, &model.Finding{
					Kind:     model.FindingRewrite,
					FilePath: filePath,
					Line:     n.Line(),
					Rule:     rule.String(),
					Message:  rule.Description(),
					Before:   model.Render(n),
					After:    model.Render(cur),
				})
			}
		}

		for _, m := range res.Markers {
			text := p.conv.MarkerComment(m.Message)
			if hasIdenticalComment(cur, text) {
				continue
			}
			next := cur.Clone()
			next.LeadingComments = append(next.LeadingComments, &model.Comment{Text: text})
			cur = next

			findings = append(findings, &model.Finding{
				Kind:     model.FindingMarker,
				FilePath: filePath,
				Line:     n.Line(),
				Rule:     m.Rule.String(),
				Message:  m.Message,
				Before:   model.Render(n),
			})
		}

		return cur
	})

	p.log.Debug().Str("file", filePath).Int("findings", len(findings)).Msg("约定遍历完成")
	return out, findings
}

// hasIdenticalComment 幂等预检：节点全部附着点上是否已存在同文本
// 注释。所有标记附着处统一走这里，不各自重复判定。
func hasIdenticalComment(n *model.TreeNode, text string) bool {
	for _, comments := range suppress.AttachmentPoints(n) {
		for _, c := range comments {
			if c.Text == text {
				return true
			}
		}
	}
	return false
}
