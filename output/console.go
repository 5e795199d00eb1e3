package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/CodMac/log-lens/model"
)

var (
	rewriteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	markerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	ruleStyle    = lipgloss.NewStyle().Faint(true)
)

// ConsoleReport 把结果按文件打印为着色摘要。
// 重写附带前后片段，标记只给出消息。
func ConsoleReport(w io.Writer, findings []*model.Finding, level FilterLevel) {
	count := 0
	for _, f := range findings {
		if !level.Keep(f) {
			continue
		}
		count++

		loc := fmt.Sprintf("%s:%d", f.FilePath, f.Line)
		switch f.Kind {
		case model.FindingRewrite:
			fmt.Fprintln(w, rewriteStyle.Render("rewrite")+"  "+loc+"  "+ruleStyle.Render(f.Rule))
			if f.Before != "" {
				fmt.Fprintln(w, "  - "+f.Before)
				fmt.Fprintln(w, "  + "+f.After)
			}
		case model.FindingMarker:
			fmt.Fprintln(w, markerStyle.Render("marker ")+"  "+loc+"  "+ruleStyle.Render(f.Rule))
			fmt.Fprintln(w, "    "+f.Message)
		}
	}
	fmt.Fprintf(w, "%d findings\n", count)
}
