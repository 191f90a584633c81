package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"resume-parse-go/internal/config"
	"resume-parse-go/internal/logger"
	"resume-parse-go/internal/processor"
	"resume-parse-go/internal/types"
	"resume-parse-go/pkg/taxonomy"
)

// 定义解析命令的命令行参数
var (
	parseFile   = flag.String("file", "", "要解析的简历文件路径 (pdf/docx/txt/rtf)")
	parseOut    = flag.String("out", "", "结果JSON的输出路径，留空输出到标准输出")
	parsePretty = flag.Bool("pretty", false, "美化输出JSON")
)

// 处理单文档解析命令
func handleParseCommand(cfg *config.Config) {
	if *parseFile == "" {
		fmt.Println("错误: 必须提供简历文件路径。使用 -file 参数。")
		flag.Usage()
		os.Exit(1)
	}

	doc, err := readDocument(*parseFile)
	if err != nil {
		fmt.Printf("读取文件失败: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ExtractionTimeoutDuration())
	defer cancel()

	proc, err := buildProcessor(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("初始化解析管道失败")
	}

	startTime := time.Now()
	exitCode := 0
	resume, err := proc.Parse(ctx, doc)
	if err != nil {
		// 解析失败仍输出带失败状态的占位结果，让下游按统一结构消费
		logger.Error().Err(err).Str("file", doc.Filename).Msg("解析失败")
		resume = processor.FailedResume(doc)
		exitCode = 1
	} else {
		logger.Debug().Str("file", doc.Filename).Dur("elapsed", time.Since(startTime)).Msg("解析完成")
	}

	data, err := marshalResume(resume, *parsePretty)
	if err != nil {
		fmt.Printf("序列化结果失败: %v\n", err)
		os.Exit(1)
	}

	if *parseOut == "" {
		fmt.Println(string(data))
		os.Exit(exitCode)
	}
	if err := os.WriteFile(*parseOut, data, 0644); err != nil {
		fmt.Printf("写入结果文件失败: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "结果已写入: %s\n", *parseOut)
	os.Exit(exitCode)
}

// buildProcessor 装配解析管道：加载技能词表 + 默认组件
func buildProcessor(ctx context.Context, cfg *config.Config) (*processor.ResumeProcessor, error) {
	tax, err := taxonomy.Load(cfg.Taxonomy.Path)
	if err != nil {
		return nil, fmt.Errorf("加载技能词表失败: %w", err)
	}
	setOpts := []processor.SettingOpt{
		processor.WithsetLogger(logger.NewComponentLogger("ResumeProcessor")),
		processor.WithsetDebug(cfg.Logger.Level == "debug"),
	}
	return processor.NewResumeProcessor(ctx, cfg, tax, nil, setOpts)
}

// readDocument 从文件系统读入原始文档
func readDocument(path string) (types.RawDocument, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return types.RawDocument{}, fmt.Errorf("无法获取文件的绝对路径: %w", err)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return types.RawDocument{}, err
	}

	return types.RawDocument{
		Content:  content,
		Filename: filepath.Base(absPath),
		Size:     int64(len(content)),
	}, nil
}

// marshalResume 序列化解析结果
func marshalResume(resume *types.ParsedResume, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(resume, "", "  ")
	}
	return json.Marshal(resume)
}
