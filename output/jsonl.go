package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/CodMac/log-lens/model"
)

type JSONLWriter struct {
	encoder *json.Encoder
}

func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{encoder: json.NewEncoder(w)}
}

func (w *JSONLWriter) Write(v interface{}) error { return w.encoder.Encode(v) }

// ExportFindings 把过滤后的结果逐行写入 JSONL 文件。
func ExportFindings(path string, findings []*model.Finding, level FilterLevel) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	writer := NewJSONLWriter(f)
	count := 0
	for _, fd := range findings {
		if !level.Keep(fd) {
			continue
		}
		if err := writer.Write(fd); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
