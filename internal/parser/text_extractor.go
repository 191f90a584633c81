package parser

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"unicode"

	"resume-parse-go/internal/constants"
	"resume-parse-go/internal/types"
)

// 提取阶段的基础错误
// 调用方用 errors.Is 区分"文件损坏"和"没有可用文本"，再映射到对外的错误类别
var (
	// ErrEngineFailure 所有引擎都报出结构性错误（文件损坏、格式异常）
	ErrEngineFailure = errors.New("提取引擎执行失败")
	// ErrNoUsableText 引擎执行成功但没有产出可用文本（扫描件、空文件、乱码）
	ErrNoUsableText = errors.New("未提取到可用文本")
)

// TextEngine 单个提取引擎：字节输入，文本或失败输出
// 页数只有部分引擎能提供，提供不了时返回nil
type TextEngine interface {
	// Name 引擎标识，写入 ExtractedText.EngineUsed
	Name() string
	// ExtractText 从字节内容提取纯文本
	ExtractText(ctx context.Context, data []byte, uri string) (string, *int, error)
}

// TextExtractor 多引擎文本提取器
// 按格式分发；PDF按引擎链顺序尝试，主引擎产出不足时回退备用引擎
type TextExtractor struct {
	pdfEngines []TextEngine // 有序的PDF引擎链
	docxEngine TextEngine
	txtEngine  TextEngine
	rtfEngine  TextEngine

	minTextLength     int     // 低于该长度视为产出不足，触发下一个引擎
	minPrintableRatio float64 // 可打印字符占比下限，不达标按乱码拒绝
	logger            *log.Logger
}

// TextExtractorOption 文本提取器的配置选项
type TextExtractorOption func(*TextExtractor)

// WithPDFEngines 指定PDF引擎链（按尝试顺序）
func WithPDFEngines(engines ...TextEngine) TextExtractorOption {
	return func(t *TextExtractor) {
		t.pdfEngines = engines
	}
}

// WithMinTextLength 配置触发备用引擎的最小文本长度
func WithMinTextLength(n int) TextExtractorOption {
	return func(t *TextExtractor) {
		if n > 0 {
			t.minTextLength = n
		}
	}
}

// WithMinPrintableRatio 配置可打印字符占比下限
func WithMinPrintableRatio(ratio float64) TextExtractorOption {
	return func(t *TextExtractor) {
		if ratio > 0 && ratio <= 1 {
			t.minPrintableRatio = ratio
		}
	}
}

// WithExtractorLogger 配置自定义日志记录器
func WithExtractorLogger(logger *log.Logger) TextExtractorOption {
	return func(t *TextExtractor) {
		t.logger = logger
	}
}

// NewTextExtractor 创建文本提取器
// 默认装配：PDF主引擎(Eino)+备用引擎(纯Go)、DOCX、TXT、RTF各一个引擎
func NewTextExtractor(ctx context.Context, options ...TextExtractorOption) (*TextExtractor, error) {
	t := &TextExtractor{
		docxEngine:        NewDOCXTextEngine(),
		txtEngine:         NewPlainTextEngine(),
		rtfEngine:         NewRTFTextEngine(),
		minTextLength:     constants.DefaultMinTextLength,
		minPrintableRatio: constants.DefaultMinPrintableRatio,
		logger:            log.New(os.Stderr, "[文本提取] ", log.LstdFlags),
	}

	for _, option := range options {
		option(t)
	}

	// 未注入引擎链时装配默认的主备两级PDF引擎
	if len(t.pdfEngines) == 0 {
		primary, err := NewEinoPDFEngine(ctx, WithEinoLogger(t.logger))
		if err != nil {
			return nil, fmt.Errorf("创建PDF主引擎失败: %w", err)
		}
		t.pdfEngines = []TextEngine{primary, NewNativePDFEngine(WithNativeLogger(t.logger))}
	}

	return t, nil
}

// Extract 按格式提取文档文本
// 恒定返回提取文本（可能偏短）或类型化失败，绝不把半解码的乱码当成功放行
func (t *TextExtractor) Extract(ctx context.Context, doc types.RawDocument) (types.ExtractedText, error) {
	format, err := DetectFormat(doc)
	if err != nil {
		return types.ExtractedText{}, err
	}

	switch format {
	case FormatPDF:
		return t.extractPDF(ctx, doc)
	case FormatDOCX:
		return t.extractSingle(ctx, t.docxEngine, doc)
	case FormatTXT:
		return t.extractSingle(ctx, t.txtEngine, doc)
	case FormatRTF:
		return t.extractSingle(ctx, t.rtfEngine, doc)
	default:
		return types.ExtractedText{}, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// extractPDF 依次尝试引擎链
// 主引擎产出不足（扫描件常见）或报错时换下一个，保留第一个达标的产出；
// 全部报错算文件损坏，有引擎跑通但都没有达标文本算无可用文本
func (t *TextExtractor) extractPDF(ctx context.Context, doc types.RawDocument) (types.ExtractedText, error) {
	var (
		engineErrs []error
		bestText   string
		bestEngine string
		bestPages  *int
		anyRan     bool
	)

	for _, engine := range t.pdfEngines {
		if err := ctx.Err(); err != nil {
			return types.ExtractedText{}, err
		}

		text, pages, err := engine.ExtractText(ctx, doc.Content, doc.Filename)
		if err != nil {
			t.logger.Printf("引擎 %s 提取失败: %v", engine.Name(), err)
			engineErrs = append(engineErrs, fmt.Errorf("%s: %w", engine.Name(), err))
			continue
		}
		anyRan = true

		if !t.passesGate(text) {
			t.logger.Printf("引擎 %s 产出未达标 (长度 %d)，尝试下一个引擎", engine.Name(), len(text))
			// 记住最长的未达标产出，链上全部未达标时不至于两手空空
			if len(text) > len(bestText) {
				bestText, bestEngine, bestPages = text, engine.Name(), pages
			}
			continue
		}

		return types.ExtractedText{EngineUsed: engine.Name(), Text: text, PageCount: pages}, nil
	}

	if !anyRan {
		return types.ExtractedText{}, fmt.Errorf("%w: %v", ErrEngineFailure, errors.Join(engineErrs...))
	}
	if strings.TrimSpace(bestText) == "" || PrintableRatio(bestText) < t.minPrintableRatio {
		return types.ExtractedText{}, fmt.Errorf("%w: 引擎链全部产出不足", ErrNoUsableText)
	}

	// 有可打印的短文本：放行但保留引擎名，由调用方决定是否够用
	return types.ExtractedText{EngineUsed: bestEngine, Text: bestText, PageCount: bestPages}, nil
}

// extractSingle 单引擎格式的提取与把关
func (t *TextExtractor) extractSingle(ctx context.Context, engine TextEngine, doc types.RawDocument) (types.ExtractedText, error) {
	text, pages, err := engine.ExtractText(ctx, doc.Content, doc.Filename)
	if err != nil {
		return types.ExtractedText{}, fmt.Errorf("%w: %s: %v", ErrEngineFailure, engine.Name(), err)
	}
	if strings.TrimSpace(text) == "" {
		return types.ExtractedText{}, fmt.Errorf("%w: %s 产出为空", ErrNoUsableText, engine.Name())
	}
	if PrintableRatio(text) < t.minPrintableRatio {
		return types.ExtractedText{}, fmt.Errorf("%w: %s 产出乱码占比过高", ErrNoUsableText, engine.Name())
	}
	return types.ExtractedText{EngineUsed: engine.Name(), Text: text, PageCount: pages}, nil
}

// passesGate 产出是否同时满足长度与可打印占比要求
func (t *TextExtractor) passesGate(text string) bool {
	if len(strings.TrimSpace(text)) < t.minTextLength {
		return false
	}
	return PrintableRatio(text) >= t.minPrintableRatio
}

// PrintableRatio 计算文本中可打印字符（含空白）的占比
// 空文本记为0，用于把半解码的二进制垃圾挡在成功路径之外
func PrintableRatio(text string) float64 {
	if text == "" {
		return 0
	}
	var printable, total int
	for _, r := range text {
		total++
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
	}
	return float64(printable) / float64(total)
}
