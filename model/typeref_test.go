package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CodMac/log-lens/model"
)

// 名称匹配：全等或简单名相等，对称且自反。
func TestNameMatches(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"a.b.C", "C", true},
		{"C", "a.b.C", true},
		{"C", "C", true},
		{"a.b.C", "a.b.C", true},
		{"C", "D", false},
		{"a.b.C", "x.y.D", false},
		{"a.b.C", "x.y.C", true}, // 简单名相等即匹配
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, model.NameMatches(tc.a, tc.b), "%s vs %s", tc.a, tc.b)
		assert.Equal(t, tc.want, model.NameMatches(tc.b, tc.a), "对称性 %s vs %s", tc.b, tc.a)
	}
}

func TestTypeRef_AssignableTo(t *testing.T) {
	ex := &model.TypeRef{
		QualifiedName: "java.io.IOException",
		Supers:        []string{"java.lang.Exception", "java.lang.Throwable"},
	}

	assert.True(t, ex.AssignableTo("java.io.IOException"))
	assert.True(t, ex.AssignableTo("java.lang.Throwable"))
	assert.True(t, ex.AssignableTo("Throwable"))
	assert.False(t, ex.AssignableTo("java.lang.String"))

	// 类型缺失视作"不匹配"，不是错误
	var missing *model.TypeRef
	assert.False(t, missing.AssignableTo("java.lang.Throwable"))
	assert.False(t, missing.Is("java.lang.String"))
}

func TestRender(t *testing.T) {
	logger := &model.TreeNode{Kind: model.KindIdentifier, Name: "LOGGER"}
	record := &model.TreeNode{Kind: model.KindIdentifier, Name: "MSG"}

	call := &model.TreeNode{
		Kind: model.KindCallExpr, Name: "info", Receiver: logger,
		Args: []*model.TreeNode{
			record,
			{Kind: model.KindLiteral, Value: `"x"`},
		},
	}
	assert.Equal(t, `LOGGER.info(MSG, "x")`, model.Render(call))

	ref := &model.TreeNode{Kind: model.KindMethodRef, Name: "format", Receiver: record}
	assert.Equal(t, "MSG::format", model.Render(ref))

	inst := &model.TreeNode{
		Kind: model.KindNewInstanceExpr, Name: "IllegalStateException",
		Args: []*model.TreeNode{{Kind: model.KindLiteral, Value: `"boom"`}},
	}
	assert.Equal(t, `new IllegalStateException("boom")`, model.Render(inst))

	concat := &model.TreeNode{
		Kind: model.KindBinaryExpr, Op: "+",
		Left:  &model.TreeNode{Kind: model.KindLiteral, Value: `"a"`},
		Right: &model.TreeNode{Kind: model.KindIdentifier, Name: "b"},
	}
	assert.Equal(t, `"a" + b`, model.Render(concat))

	assert.Equal(t, "", model.Render(nil))
}

func TestTreeNode_CloneIsShallowWithCopiedSlices(t *testing.T) {
	n := &model.TreeNode{
		Kind:            model.KindCallExpr,
		Name:            "info",
		LeadingComments: []*model.Comment{{Text: "// a"}},
		Args:            []*model.TreeNode{{Kind: model.KindIdentifier, Name: "x"}},
	}

	c := n.Clone()
	c.LeadingComments = append(c.LeadingComments, &model.Comment{Text: "// b"})
	c.Args[0] = &model.TreeNode{Kind: model.KindIdentifier, Name: "y"}

	assert.Len(t, n.LeadingComments, 1)
	assert.Equal(t, "x", n.Args[0].Name)
}

func TestPosition(t *testing.T) {
	cls := &model.TreeNode{Kind: model.KindClassDecl, Name: "C"}
	method := &model.TreeNode{Kind: model.KindMethodDecl, Name: "m"}
	try := &model.TreeNode{Kind: model.KindTryStmt}
	catch := &model.TreeNode{Kind: model.KindCatchClause}

	pos := model.NewPosition(cls).Push(method).Push(try).Push(catch)

	assert.Equal(t, catch, pos.Node())
	assert.Equal(t, try, pos.Parent().Node())

	found := pos.FindAncestor(model.KindIs(model.KindMethodDecl), nil)
	assert.NotNil(t, found)
	assert.Equal(t, method, found.Node())

	// 边界先参与匹配再终止上溯
	bounded := pos.FindAncestor(model.KindIs(model.KindClassDecl), model.KindIs(model.KindMethodDecl))
	assert.Nil(t, bounded)

	atBoundary := pos.FindAncestor(model.KindIs(model.KindMethodDecl), model.KindIs(model.KindMethodDecl))
	assert.NotNil(t, atBoundary)
}
