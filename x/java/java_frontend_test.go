package java_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/CodMac/log-lens/core"
	"github.com/CodMac/log-lens/model"
	"github.com/CodMac/log-lens/x/java" // 触发 init() 注册
)

func getTestFilePath(name string) string {
	currentDir, _ := filepath.Abs(filepath.Dir("."))
	return filepath.Join(currentDir, "testdata", name)
}

// 辅助函数：解析 fixture 并构建约定树
func buildFixtureTree(t *testing.T, name string) *model.TreeNode {
	t.Helper()

	fe, err := java.NewFrontend()
	if err != nil {
		t.Fatalf("Failed to create frontend: %v", err)
	}
	defer fe.Close()

	filePath := getTestFilePath(name)
	src, err := os.ReadFile(filePath)
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", name, err)
	}

	root, err := fe.BuildTree(filePath, src)
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	return root
}

// 辅助函数：深度优先找到首个匹配节点
func findNode(root *model.TreeNode, match func(*model.TreeNode) bool) *model.TreeNode {
	if root == nil {
		return nil
	}
	if match(root) {
		return root
	}
	for _, sub := range [][]*model.TreeNode{root.Children, root.Args} {
		for _, child := range sub {
			if found := findNode(child, match); found != nil {
				return found
			}
		}
	}
	for _, child := range []*model.TreeNode{root.Receiver, root.Left, root.Right} {
		if found := findNode(child, match); found != nil {
			return found
		}
	}
	return nil
}

func findCall(root *model.TreeNode, name string) *model.TreeNode {
	return findNode(root, func(n *model.TreeNode) bool {
		return n.Kind == model.KindCallExpr && n.Name == name
	})
}

func TestJavaFrontend_OrderService(t *testing.T) {
	root := buildFixtureTree(t, "OrderService.java")

	// 1. 验证类结构与类型限定名
	cls := findNode(root, func(n *model.TreeNode) bool { return n.Kind == model.KindClassDecl })
	if cls == nil {
		t.Fatal("Expected a class declaration")
	}
	if cls.Name != "OrderService" {
		t.Errorf("Expected class name 'OrderService', got %q", cls.Name)
	}
	if cls.Type == nil || cls.Type.QualifiedName != "com.acme.order.OrderService" {
		t.Errorf("Class QN mismatch: %v", cls.Type)
	}

	// 2. 验证字段类型经 import 消解
	t.Run("Verify Field Type Resolution", func(t *testing.T) {
		logField := findNode(cls, func(n *model.TreeNode) bool {
			return n.Kind == model.KindFieldDecl && n.Name == "LOG"
		})
		if logField == nil {
			t.Fatal("Expected field 'LOG'")
		}
		if !logField.Type.Is("org.apache.logging.log4j.Logger") {
			t.Errorf("LOG field type mismatch: %v", logField.Type)
		}
	})

	// 3. 验证日志调用的接收者与参数绑定
	t.Run("Verify Logger Call Binding", func(t *testing.T) {
		errCall := findCall(cls, "error")
		if errCall == nil {
			t.Fatal("Expected LOG.error call")
		}
		if errCall.Receiver == nil || !errCall.Receiver.Type.Is("org.apache.logging.log4j.Logger") {
			t.Errorf("Receiver type mismatch: %v", errCall.Receiver)
		}
		if len(errCall.Args) != 3 {
			t.Fatalf("Expected 3 args, got %d", len(errCall.Args))
		}
		if errCall.Args[0].Kind != model.KindLiteral || !errCall.Args[0].Type.Is("java.lang.String") {
			t.Errorf("First arg should be a string literal: %+v", errCall.Args[0])
		}
		// catch 参数 e 绑定为 IOException，可赋值给 Throwable
		if !errCall.Args[2].Type.AssignableTo("java.lang.Throwable") {
			t.Errorf("Catch param should be assignable to Throwable: %v", errCall.Args[2].Type)
		}
	})

	// 4. 验证方法引用参数形态
	t.Run("Verify Method Reference Argument", func(t *testing.T) {
		infoCall := findCall(cls, "info")
		if infoCall == nil {
			t.Fatal("Expected LOG.info call")
		}
		ref := infoCall.Args[0]
		if ref.Kind != model.KindMethodRef || ref.Name != "format" {
			t.Fatalf("First arg should be RECORD::format, got %+v", ref)
		}
		if ref.Receiver == nil || !ref.Receiver.Type.Is("com.acme.logging.LogMessage") {
			t.Errorf("Method ref receiver type mismatch: %v", ref.Receiver)
		}
	})

	// 5. 验证 try/catch/throw 祖先结构
	t.Run("Verify Try Catch Throw Structure", func(t *testing.T) {
		try := findNode(cls, func(n *model.TreeNode) bool { return n.Kind == model.KindTryStmt })
		if try == nil {
			t.Fatal("Expected a try statement")
		}
		catch := findNode(try, func(n *model.TreeNode) bool { return n.Kind == model.KindCatchClause })
		if catch == nil {
			t.Fatal("Expected a catch clause under try")
		}
		throw := findNode(catch, func(n *model.TreeNode) bool { return n.Kind == model.KindThrowStmt })
		if throw == nil {
			t.Fatal("Expected a throw statement under catch")
		}
		inst := findNode(throw, func(n *model.TreeNode) bool { return n.Kind == model.KindNewInstanceExpr })
		if inst == nil || !inst.Type.AssignableTo("java.lang.Throwable") {
			t.Errorf("Thrown instance should be assignable to Throwable: %+v", inst)
		}
		// 构造参数里的字符串拼接要带上类型
		concat := findNode(inst, func(n *model.TreeNode) bool { return n.Kind == model.KindBinaryExpr })
		if concat == nil || !concat.Type.Is("java.lang.String") {
			t.Errorf("Concat expression should be string typed: %+v", concat)
		}
	})
}

func TestJavaFrontend_CommentAttachment(t *testing.T) {
	root := buildFixtureTree(t, "OrderService.java")

	t.Run("Statement Leading Comment", func(t *testing.T) {
		errCall := findCall(root, "error")
		if errCall == nil {
			t.Fatal("Expected LOG.error call")
		}
		if len(errCall.LeadingComments) != 1 || !strings.Contains(errCall.LeadingComments[0].Text, "提交失败") {
			t.Errorf("Expected leading comment on error call, got %+v", errCall.LeadingComments)
		}
	})

	// 与前一语句同行的注释不向下附着（保留的已知限制）
	t.Run("Trailing Comment Not Attached", func(t *testing.T) {
		warnCall := findCall(root, "warn")
		if warnCall == nil {
			t.Fatal("Expected LOG.warn call")
		}
		if len(warnCall.LeadingComments) != 0 {
			t.Errorf("Trailing comment should not attach to next statement: %+v", warnCall.LeadingComments)
		}
	})

	t.Run("Method Leading Comment", func(t *testing.T) {
		method := findNode(root, func(n *model.TreeNode) bool {
			return n.Kind == model.KindMethodDecl && n.Name == "submit"
		})
		if method == nil {
			t.Fatal("Expected method 'submit'")
		}
		if len(method.LeadingComments) != 1 || !strings.Contains(method.LeadingComments[0].Text, "内部提交") {
			t.Errorf("Expected leading comment on submit, got %+v", method.LeadingComments)
		}
	})

	// 注解之间的注释附着到紧随其后的注解上
	t.Run("Annotation Comment Attachment", func(t *testing.T) {
		method := findNode(root, func(n *model.TreeNode) bool {
			return n.Kind == model.KindMethodDecl && n.Name == "process"
		})
		if method == nil {
			t.Fatal("Expected method 'process'")
		}
		if len(method.Annotations) != 2 {
			t.Fatalf("Expected 2 annotations, got %d", len(method.Annotations))
		}
		second := method.Annotations[1]
		if second.Name != "SuppressWarnings" {
			t.Errorf("Second annotation name mismatch: %q", second.Name)
		}
		if len(second.LeadingComments) != 1 || !strings.Contains(second.LeadingComments[0].Text, "loglens:ignore") {
			t.Errorf("Expected directive comment on second annotation, got %+v", second.LeadingComments)
		}
	})
}

func TestFrontendRegistry(t *testing.T) {
	fe, err := core.NewFrontend(core.LangJava)
	if err != nil {
		t.Fatalf("Expected java frontend to be registered: %v", err)
	}
	fe.Close()

	if _, err := core.NewFrontend(core.Language("kotlin")); err == nil {
		t.Error("Expected error for unregistered language")
	}
}
