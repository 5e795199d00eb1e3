package walker_test

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodMac/log-lens/core"
	"github.com/CodMac/log-lens/model"
	"github.com/CodMac/log-lens/walker"
)

// --- 测试用树片段构造 ---

func newPass() *walker.ConventionPass {
	return walker.NewConventionPass(core.DefaultConventions(), zerolog.Nop())
}

func classWith(children ...*model.TreeNode) *model.TreeNode {
	method := &model.TreeNode{Kind: model.KindMethodDecl, Name: "process", Children: children}
	return &model.TreeNode{Kind: model.KindClassDecl, Name: "OrderService",
		Children: []*model.TreeNode{method}}
}

func logCall(level string, args ...*model.TreeNode) *model.TreeNode {
	receiver := &model.TreeNode{
		Kind: model.KindIdentifier, Name: "LOGGER",
		Type: &model.TypeRef{QualifiedName: "org.apache.logging.log4j.Logger"},
	}
	return &model.TreeNode{Kind: model.KindCallExpr, Name: level, Receiver: receiver, Args: args}
}

func strLit(quoted string) *model.TreeNode {
	return &model.TreeNode{Kind: model.KindLiteral, Value: quoted,
		Type: &model.TypeRef{QualifiedName: "java.lang.String"}}
}

func strIdent(name string) *model.TreeNode {
	return &model.TreeNode{Kind: model.KindIdentifier, Name: name,
		Type: &model.TypeRef{QualifiedName: "java.lang.String"}}
}

func recordRef() *model.TreeNode {
	return &model.TreeNode{Kind: model.KindIdentifier, Name: "MSG",
		Type: &model.TypeRef{QualifiedName: "com.acme.logging.LogMessage"}}
}

func findCall(root *model.TreeNode, level string) *model.TreeNode {
	if root == nil {
		return nil
	}
	if root.Kind == model.KindCallExpr && root.Name == level {
		return root
	}
	for _, child := range root.Children {
		if found := findCall(child, level); found != nil {
			return found
		}
	}
	return nil
}

func TestConventionPass_MarkerAttachment(t *testing.T) {
	pass := newPass()
	root := classWith(logCall("info", strLit(`"User %s logged in"`), strIdent("user")))

	out, findings := pass.Run(root, "OrderService.java")

	require.Len(t, findings, 1)
	assert.Equal(t, model.FindingMarker, findings[0].Kind)
	assert.Equal(t, "INFO needs structured record", findings[0].Message)
	assert.Equal(t, "OrderService.java", findings[0].FilePath)

	call := findCall(out, "info")
	require.NotNil(t, call)
	require.Len(t, call.LeadingComments, 1)
	assert.Equal(t, "// FIXME(loglens): INFO needs structured record", call.LeadingComments[0].Text)

	// 原树不被原地修改
	assert.Empty(t, findCall(root, "info").LeadingComments)
}

func TestConventionPass_RewriteFinding(t *testing.T) {
	pass := newPass()
	invoke := &model.TreeNode{Kind: model.KindCallExpr, Name: "format",
		Receiver: recordRef(), Args: []*model.TreeNode{strLit(`"x"`)}}
	root := classWith(logCall("debug", invoke))

	out, findings := pass.Run(root, "OrderService.java")

	var rewrites, markers int
	for _, f := range findings {
		switch f.Kind {
		case model.FindingRewrite:
			rewrites++
			assert.Equal(t, `LOGGER.debug(MSG.format("x"))`, f.Before)
			assert.Equal(t, `LOGGER.debug(MSG, "x")`, f.After)
		case model.FindingMarker:
			markers++
			assert.Equal(t, "DEBUG forbids structured record", f.Message)
		}
	}
	assert.Equal(t, 1, rewrites)
	assert.Equal(t, 1, markers)

	call := findCall(out, "debug")
	require.NotNil(t, call)
	assert.Equal(t, `LOGGER.debug(MSG, "x")`, model.Render(call))
}

// 完整一趟的幂等性：对自身输出重跑不产生新结果、不重复附着标记。
func TestConventionPass_Idempotence(t *testing.T) {
	pass := newPass()
	invoke := &model.TreeNode{Kind: model.KindCallExpr, Name: "format",
		Receiver: recordRef(), Args: []*model.TreeNode{strLit(`"x"`)}}
	root := classWith(
		logCall("debug", invoke),
		logCall("info", strLit(`"User %s logged in"`), strIdent("user")),
	)

	once, findings1 := pass.Run(root, "OrderService.java")
	require.NotEmpty(t, findings1)

	twice, findings2 := pass.Run(once, "OrderService.java")
	assert.Empty(t, findings2)

	for _, level := range []string{"debug", "info"} {
		a, b := findCall(once, level), findCall(twice, level)
		require.NotNil(t, a)
		require.NotNil(t, b)
		assert.Equal(t, model.Render(a), model.Render(b))
		assert.Equal(t, len(a.LeadingComments), len(b.LeadingComments))
	}
}

// 类级全量抑制：整棵类下不产生任何结果与标记。
func TestConventionPass_ClassWideSuppression(t *testing.T) {
	pass := newPass()
	root := classWith(logCall("info", strLit(`"User %s logged in"`), strIdent("user")))
	root.LeadingComments = []*model.Comment{{Text: "// loglens:ignore"}}

	out, findings := pass.Run(root, "OrderService.java")

	assert.Empty(t, findings)
	assert.Empty(t, findCall(out, "info").LeadingComments)
}

// 单规则抑制只挡住对应规则，其余照常。
func TestConventionPass_NamedSuppression(t *testing.T) {
	pass := newPass()
	call := logCall("error", strLit(`"oops"`), &model.TreeNode{
		Kind: model.KindIdentifier, Name: "e",
		Type: &model.TypeRef{QualifiedName: "java.lang.Exception",
			Supers: []string{"java.lang.Throwable"}},
	})
	root := classWith(call)
	root.LeadingComments = []*model.Comment{{Text: "// loglens:ignore StructuredRecord"}}

	out, findings := pass.Run(root, "OrderService.java")

	// 异常前置重写不受 StructuredRecord 抑制影响
	require.NotEmpty(t, findings)
	for _, f := range findings {
		assert.NotEqual(t, core.RuleStructuredRecord.String(), f.Rule)
	}
	assert.True(t, strings.HasPrefix(model.Render(findCall(out, "error")), "LOGGER.error(e,"))
}

func TestConventionPass_NonLoggerCallIgnored(t *testing.T) {
	pass := newPass()
	other := &model.TreeNode{Kind: model.KindCallExpr, Name: "info",
		Receiver: strIdent("service"), Args: []*model.TreeNode{strLit(`"x"`)}}
	root := classWith(other)

	_, findings := pass.Run(root, "OrderService.java")
	assert.Empty(t, findings)
}
