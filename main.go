package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/CodMac/log-lens/core"
	"github.com/CodMac/log-lens/output"
	_ "github.com/CodMac/log-lens/x/java"
)

type Config struct {
	SourcePath string
	Filter     string
	Jobs       int
	OutDir     string
	ConfigPath string
	Level      string
	Verbose    bool
}

func main() {
	cfg := Config{}

	rootCmd := &cobra.Command{
		Use:   "log-lens",
		Short: "log-lens — 扫描 Java 源码并按团队约定检查/重写日志调用",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVar(&cfg.SourcePath, "path", ".", "源码根路径")
	rootCmd.Flags().StringVar(&cfg.Filter, "filter", "", "文件过滤正则")
	rootCmd.Flags().IntVar(&cfg.Jobs, "jobs", 4, "并发数")
	rootCmd.Flags().StringVar(&cfg.OutDir, "out-dir", "./output", "输出目录")
	rootCmd.Flags().StringVar(&cfg.ConfigPath, "config", "loglens.yaml", "约定配置文件")
	rootCmd.Flags().StringVar(&cfg.Level, "level", "all", "结果过滤: all / markers / rewrites")
	rootCmd.Flags().BoolVar(&cfg.Verbose, "verbose", false, "输出调试日志（含抑制决策）")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cfg Config) error {
	startTime := time.Now()
	log := newLogger(cfg.Verbose)

	level, err := output.ParseFilterLevel(cfg.Level)
	if err != nil {
		return err
	}

	conv, err := core.LoadConventions(cfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("加载约定失败: %w", err)
	}

	// 1. 扫描文件
	fmt.Fprintf(os.Stderr, "[1/4] 🔍 正在扫描目录: %s\n", cfg.SourcePath)
	files, err := scanFiles(cfg.SourcePath, cfg.Filter)
	if err != nil {
		return fmt.Errorf("扫描文件失败: %w", err)
	}
	fmt.Fprintf(os.Stderr, "    找到 %d 个候选文件\n", len(files))

	// 2. 执行约定检查
	fmt.Fprintf(os.Stderr, "[2/4] ⚙️  正在检查日志调用约定...\n")
	proc := NewFileProcessor(core.LangJava, cfg.Jobs, conv, log)
	findings, err := proc.ProcessFiles(cfg.SourcePath, files)
	if err != nil {
		return fmt.Errorf("检查执行失败: %w", err)
	}

	// 3. 导出结果
	fmt.Fprintf(os.Stderr, "[3/4] 💾 正在写入结果文件...\n")
	_ = os.MkdirAll(cfg.OutDir, 0755)
	count, err := output.NewExporter(cfg.OutDir, level).ExportJsonL(findings)
	if err != nil {
		return fmt.Errorf("导出失败: %w", err)
	}
	fmt.Fprintf(os.Stderr, "    ✅ 完成: 导出结果=%d\n", count)

	output.ConsoleReport(os.Stdout, findings, level)

	fmt.Fprintf(os.Stderr, "\n[4/4] ✨ 检查结束! 总耗时: %v\n", time.Since(startTime).Round(time.Millisecond))
	return nil
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func scanFiles(root, filter string) ([]string, error) {
	if filter == "" {
		filter = `.*\.java$`
	}
	re, err := regexp.Compile(filter)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && re.MatchString(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
