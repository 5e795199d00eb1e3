package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Conventions 日志/异常处理约定的全部可配置项。
// 零值无意义，一律经 DefaultConventions 或 LoadConventions 获取。
type Conventions struct {
	LoggerType    string `yaml:"logger_type"`    // 日志器类型 QN
	RecordType    string `yaml:"record_type"`    // 结构化日志记录类型 QN
	FormatMethod  string `yaml:"format_method"`  // 记录上的格式化方法名
	ExceptionType string `yaml:"exception_type"` // 平台异常基类 QN
	StringType    string `yaml:"string_type"`    // 平台字符串类型 QN

	MarkerToken  string `yaml:"marker_token"`  // 抑制指令标记
	MarkerPrefix string `yaml:"marker_prefix"` // 标记注释前缀

	RecordLevels  []string `yaml:"record_levels"`  // 必须携带结构化记录的级别
	PlainLevels   []string `yaml:"plain_levels"`   // 禁止结构化记录的级别
	ReorderLevels []string `yaml:"reorder_levels"` // 需要把异常参数提前的级别
}

// DefaultConventions 返回内建默认约定。
func DefaultConventions() *Conventions {
	return &Conventions{
		LoggerType:    "org.apache.logging.log4j.Logger",
		RecordType:    "com.acme.logging.LogMessage",
		FormatMethod:  "format",
		ExceptionType: "java.lang.Throwable",
		StringType:    "java.lang.String",
		MarkerToken:   "loglens:ignore",
		MarkerPrefix:  "FIXME(loglens):",
		RecordLevels:  []string{"INFO", "WARN", "ERROR", "FATAL"},
		PlainLevels:   []string{"DEBUG", "TRACE"},
		ReorderLevels: []string{"ERROR", "WARN"},
	}
}

// LoadConventions 读取 yaml 配置并叠加在默认值之上。
// path 为空或文件不存在时直接返回默认约定，不视为错误。
func LoadConventions(path string) (*Conventions, error) {
	conv := DefaultConventions()
	if path == "" {
		return conv, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return conv, nil
		}
		return nil, fmt.Errorf("读取约定配置失败: %w", err)
	}
	if err := yaml.Unmarshal(data, conv); err != nil {
		return nil, fmt.Errorf("解析约定配置失败: %w", err)
	}
	return conv, nil
}

// NormalizeLevel 统一级别名大小写后用于策略判定。
func NormalizeLevel(level string) string { return strings.ToUpper(level) }

// KnownLevel 未知级别名直接放过（不是错误）。
func (c *Conventions) KnownLevel(level string) bool {
	l := NormalizeLevel(level)
	return slices.Contains(c.RecordLevels, l) || slices.Contains(c.PlainLevels, l)
}

// RequiresRecord 该级别是否必须携带结构化记录。
func (c *Conventions) RequiresRecord(level string) bool {
	return slices.Contains(c.RecordLevels, NormalizeLevel(level))
}

// ForbidsRecord 该级别是否禁止结构化记录。
func (c *Conventions) ForbidsRecord(level string) bool {
	return slices.Contains(c.PlainLevels, NormalizeLevel(level))
}

// ShouldReorderException 该级别是否执行异常参数提前的自动修复。
func (c *Conventions) ShouldReorderException(level string) bool {
	return slices.Contains(c.ReorderLevels, NormalizeLevel(level))
}

// MarkerComment 将违规消息包装为完整的标记注释文本。
func (c *Conventions) MarkerComment(message string) string {
	return "// " + c.MarkerPrefix + " " + message
}
