package main

import (
	"flag"
	"fmt"
	"os"

	"resume-parse-go/internal/config"
)

// 定义生成配置命令的命令行参数
var initConfigOut = flag.String("config-out", "config.yaml", "示例配置文件的输出路径")

// 处理生成示例配置命令
func handleInitConfigCommand() {
	if err := config.CreateSampleConfig(*initConfigOut); err != nil {
		fmt.Printf("生成示例配置失败: %v\n", err)
		os.Exit(1)
	}
}
