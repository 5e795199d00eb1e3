package main

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/CodMac/log-lens/core"
	"github.com/CodMac/log-lens/model"
	"github.com/CodMac/log-lens/walker"
)

type FileProcessor struct {
	Language    core.Language
	Concurrency int

	conv *core.Conventions
	log  zerolog.Logger
}

func NewFileProcessor(lang core.Language, concurrency int, conv *core.Conventions, log zerolog.Logger) *FileProcessor {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &FileProcessor{
		Language:    lang,
		Concurrency: concurrency,
		conv:        conv,
		log:         log,
	}
}

// ProcessFiles 并行执行约定检查：每个 worker 各持有一个前端与一趟
// 遍历器实例，文件级无共享可变状态，结果在末尾合并。
func (fp *FileProcessor) ProcessFiles(rootPath string, filePaths []string) ([]*model.Finding, error) {
	absRoot, _ := filepath.Abs(rootPath)

	var mu sync.Mutex
	var allFindings []*model.Finding

	err := fp.runParallel(filePaths, func(path string, fe core.Frontend, pass *walker.ConventionPass) error {
		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		// 归一化位置信息
		relPath := path
		if abs, err := filepath.Abs(path); err == nil {
			if r, err := filepath.Rel(absRoot, abs); err == nil {
				relPath = r
			}
		}

		root, err := fe.BuildTree(relPath, source)
		if err != nil {
			return err
		}

		_, findings := pass.Run(root, relPath)

		mu.Lock()
		allFindings = append(allFindings, findings...)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return allFindings, nil
}

// runParallel 内部并发调度器
func (fp *FileProcessor) runParallel(paths []string, task func(string, core.Frontend, *walker.ConventionPass) error) error {
	pathChan := make(chan string, len(paths))
	for _, p := range paths {
		pathChan <- p
	}
	close(pathChan)

	var wg sync.WaitGroup
	var firstErr error
	var errOnce sync.Once

	for i := 0; i < fp.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fe, err := core.NewFrontend(fp.Language)
			if err != nil {
				errOnce.Do(func() { firstErr = err })
				return
			}
			defer fe.Close()

			pass := walker.NewConventionPass(fp.conv, fp.log)

			for path := range pathChan {
				if err := task(path, fe, pass); err != nil {
					errOnce.Do(func() { firstErr = err })
					return
				}
			}
		}()
	}
	wg.Wait()
	return firstErr
}
