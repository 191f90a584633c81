package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-parse-go/internal/config"
	"resume-parse-go/internal/logger"
	"resume-parse-go/internal/types"
)

// 定义批量命令的命令行参数
var (
	batchDir    = flag.String("dir", "", "包含简历文件的目录")
	batchOutDir = flag.String("out-dir", "", "每个成功结果的JSON输出目录，留空使用配置中的输出目录")
)

// 批量命令认可的扩展名
var supportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
	".rtf":  true,
}

// 处理批量解析命令
// 目录内的支持文件经工作池并发解析，输出顺序与文件名顺序一致
func handleBatchCommand(cfg *config.Config) {
	if *batchDir == "" {
		fmt.Println("错误: 必须提供简历目录。使用 -dir 参数。")
		flag.Usage()
		os.Exit(1)
	}

	outDir := *batchOutDir
	if outDir == "" {
		outDir = cfg.Batch.OutputDir
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Printf("创建输出目录失败: %v\n", err)
		os.Exit(1)
	}

	docs, err := collectDocuments(*batchDir)
	if err != nil {
		fmt.Printf("读取目录失败: %v\n", err)
		os.Exit(1)
	}
	if len(docs) == 0 {
		fmt.Printf("目录 %s 中没有支持的简历文件 (pdf/docx/txt/rtf)\n", *batchDir)
		return
	}

	ctx := context.Background()
	proc, err := buildProcessor(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化解析管道失败")
	}

	logger.Info().Int("documents", len(docs)).Int("workers", proc.Settings.Workers).Msg("开始批量解析")
	startTime := time.Now()
	results := proc.ParseBatch(ctx, docs)
	logger.Info().Dur("elapsed", time.Since(startTime)).Msg("批量解析完成")

	var succeeded int
	for _, result := range results {
		if !result.Success {
			fmt.Printf("  [失败] %s: %s\n", result.Filename, result.Error)
			continue
		}
		succeeded++

		stem := strings.TrimSuffix(result.Filename, filepath.Ext(result.Filename))
		outPath := filepath.Join(outDir, stem+".json")
		data, err := marshalResume(result.Data, true)
		if err != nil {
			fmt.Printf("  [成功] %s (序列化失败: %v)\n", result.Filename, err)
			continue
		}
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			fmt.Printf("  [成功] %s (写入失败: %v)\n", result.Filename, err)
			continue
		}
		fmt.Printf("  [成功] %s -> %s\n", result.Filename, outPath)
	}

	fmt.Printf("\n共 %d 个文档: %d 成功, %d 失败\n", len(results), succeeded, len(results)-succeeded)
	if succeeded < len(results) {
		os.Exit(1)
	}
}

// collectDocuments 收集目录中全部支持格式的文件
// os.ReadDir 返回的条目按文件名排序，天然保证批量输出顺序稳定
func collectDocuments(dir string) ([]types.RawDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var docs []types.RawDocument
	for _, entry := range entries {
		if entry.IsDir() || !supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		doc, err := readDocument(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("读取 %s 失败: %w", entry.Name(), err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
