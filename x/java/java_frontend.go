// Package java 提供基于 tree-sitter 的 Java 前端：解析源文件并构建
// 供约定遍历使用的语言无关树。
package java

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/CodMac/log-lens/core"
	"github.com/CodMac/log-lens/model"
)

func init() {
	core.RegisterFrontend(core.LangJava, NewFrontend)
}

// Frontend 持有一个可复用的解析器实例，不可并发使用。
type Frontend struct {
	parser *sitter.Parser
}

func NewFrontend() (core.Frontend, error) {
	p := sitter.NewParser()
	if err := p.SetLanguage(sitter.NewLanguage(tree_sitter_java.Language())); err != nil {
		return nil, fmt.Errorf("加载 Java 语法失败: %w", err)
	}
	return &Frontend{parser: p}, nil
}

// BuildTree 解析 Java 源码并构建约定树。
func (f *Frontend) BuildTree(filePath string, source []byte) (*model.TreeNode, error) {
	tree := f.parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("解析失败: %s", filePath)
	}
	defer tree.Close()

	return newTreeBuilder(filePath, source).build(tree.RootNode()), nil
}

func (f *Frontend) Close() {
	f.parser.Close()
}
