package model

// --- 检查结果类型 (Finding Kinds) ---

type FindingKind string

const (
	FindingMarker  FindingKind = "MARKER"  // 附着了待人工处理的标记
	FindingRewrite FindingKind = "REWRITE" // 自动重写
)

// Finding 一次遍历产出的单条结果，逐行导出为 JSONL。
type Finding struct {
	Kind     FindingKind `json:"Kind"`
	FilePath string      `json:"FilePath"`
	Line     int         `json:"Line,omitempty"`
	Rule     string      `json:"Rule"`
	Message  string      `json:"Message"`
	Before   string      `json:"Before,omitempty"` // 重写前片段
	After    string      `json:"After,omitempty"`  // 重写后片段
}
