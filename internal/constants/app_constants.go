package constants

import "time"

const (
	// ProcessingStatusSuccess 表示文本提取成功（实体缺失不影响该状态）
	ProcessingStatusSuccess = "success"
	// ProcessingStatusFailed 表示未能提取到任何可用文本
	ProcessingStatusFailed = "failed"

	// DefaultExtractionTimeout 单个文档的默认处理时间预算
	DefaultExtractionTimeout = 30 * time.Second
	// DefaultBatchWorkers 批量解析的默认并发度
	DefaultBatchWorkers = 4

	// DefaultMinTextLength PDF主引擎产出低于该字节数时触发备用引擎
	DefaultMinTextLength = 100
	// DefaultMinPrintableRatio 提取结果的可打印字符占比下限，低于则判定为乱码
	DefaultMinPrintableRatio = 0.70

	// NameScanMaxLines 姓名启发式只扫描开头的若干非空行
	NameScanMaxLines = 5
	// MinPlausibleStartYear 早于该年份的起始日期视为正则误匹配
	MinPlausibleStartYear = 1950
	// MaxPlausibleSpanMonths 单段经历超过该月数（50年）视为日期误匹配
	MaxPlausibleSpanMonths = 600
)
