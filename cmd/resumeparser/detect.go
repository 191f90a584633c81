package main

import (
	"flag"
	"fmt"
	"os"

	"resume-parse-go/internal/parser"
)

// 定义格式识别命令的命令行参数
var detectFile = flag.String("detect-file", "", "要识别格式的文件路径（也可复用 -file 参数）")

// 处理格式识别命令（调试辅助）
func handleDetectCommand() {
	inputFile := *detectFile
	if inputFile == "" {
		inputFile = *parseFile
	}
	if inputFile == "" {
		fmt.Println("错误: 必须提供文件路径。使用 -detect-file 或 -file 参数。")
		flag.Usage()
		os.Exit(1)
	}

	doc, err := readDocument(inputFile)
	if err != nil {
		fmt.Printf("读取文件失败: %v\n", err)
		os.Exit(1)
	}

	format, err := parser.DetectFormat(doc)
	if err != nil {
		fmt.Printf("格式识别失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("文件: %s\n格式: %s\n大小: %d 字节\n", doc.Filename, format, doc.Size)
}
