package core

import (
	"fmt"

	"github.com/CodMac/log-lens/model"
)

type Language string

const LangJava Language = "java"

// Frontend 语言前端：把一个源文件构建为约定树。
// 实例不保证并发安全，按 worker 各持有一个。
type Frontend interface {
	BuildTree(filePath string, source []byte) (*model.TreeNode, error)
	Close()
}

// FrontendFactory 创建前端实例的工厂函数。
type FrontendFactory func() (Frontend, error)

var frontendMap = make(map[Language]FrontendFactory)

// RegisterFrontend 注册语言前端，由各语言包的 init 调用。
func RegisterFrontend(lang Language, factory FrontendFactory) {
	frontendMap[lang] = factory
}

// NewFrontend 创建指定语言的前端实例。
func NewFrontend(lang Language) (Frontend, error) {
	factory, ok := frontendMap[lang]
	if !ok {
		return nil, fmt.Errorf("未注册的语言前端: %s", lang)
	}
	return factory()
}
