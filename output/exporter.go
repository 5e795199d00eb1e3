package output

import (
	"fmt"
	"path/filepath"

	"github.com/CodMac/log-lens/model"
)

// FilterLevel 结果导出的过滤级别。
type FilterLevel string

const (
	LevelAll      FilterLevel = "all"      // 全部结果
	LevelMarkers  FilterLevel = "markers"  // 仅待人工处理的标记
	LevelRewrites FilterLevel = "rewrites" // 仅自动重写
)

// ParseFilterLevel 解析 --level 标志值。
func ParseFilterLevel(s string) (FilterLevel, error) {
	switch FilterLevel(s) {
	case LevelAll, LevelMarkers, LevelRewrites:
		return FilterLevel(s), nil
	default:
		return "", fmt.Errorf("未知的过滤级别: %q (可选: all / markers / rewrites)", s)
	}
}

func (l FilterLevel) Keep(f *model.Finding) bool {
	switch l {
	case LevelMarkers:
		return f.Kind == model.FindingMarker
	case LevelRewrites:
		return f.Kind == model.FindingRewrite
	default:
		return true
	}
}

type Exporter struct {
	outputDir string
	level     FilterLevel
}

func NewExporter(outputDir string, level FilterLevel) *Exporter {
	return &Exporter{outputDir: outputDir, level: level}
}

// ExportJsonL 导出结果文件，返回写出的条数。
func (p *Exporter) ExportJsonL(findings []*model.Finding) (int, error) {
	return ExportFindings(filepath.Join(p.outputDir, "findings.jsonl"), findings, p.level)
}
