package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"resume-parse-go/internal/config"
	"resume-parse-go/internal/logger"
)

// 命令行参数定义
var (
	command    = flag.String("cmd", "parse", "执行的命令: parse=解析单个文档, batch=批量解析目录, detect=识别文档格式, initconfig=生成示例配置")
	configPath string
)

func main() {
	// .env 先于配置解析加载，环境变量覆盖依赖它
	_ = godotenv.Load()

	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径（留空则按约定位置搜索）")
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
	pflag.Parse()

	// initconfig 不依赖已有配置
	if *command == "initconfig" {
		handleInitConfigCommand()
		return
	}

	// 找不到配置文件不是硬错误，退回默认配置
	cfg, cfgErr := config.LoadConfig(configPath)
	if cfgErr != nil {
		cfg = config.DefaultConfig()
	}

	logger.Init(logger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	if cfgErr != nil {
		logger.Warn().Err(cfgErr).Msg("加载配置失败，使用默认配置")
	}

	// 根据命令执行不同的功能
	switch *command {
	case "parse":
		handleParseCommand(cfg)
	case "batch":
		handleBatchCommand(cfg)
	case "detect":
		handleDetectCommand()
	default:
		fmt.Printf("错误: 未知命令 '%s'。支持的命令: parse, batch, detect, initconfig\n", *command)
		pflag.Usage()
		os.Exit(1)
	}
}
