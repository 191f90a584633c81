package parser

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
)

// EinoPDFEngine 基于 Eino PDF Parser 的主提取引擎
// 负责版面感知的文本提取，是PDF引擎链的第一环
type EinoPDFEngine struct {
	parser *pdf.PDFParser
	logger *log.Logger
}

// EinoPDFOption PDF主引擎的配置选项
type EinoPDFOption func(*EinoPDFEngine)

// WithEinoLogger 配置自定义日志记录器
func WithEinoLogger(logger *log.Logger) EinoPDFOption {
	return func(e *EinoPDFEngine) {
		e.logger = logger
	}
}

// 确保EinoPDFEngine实现了TextEngine接口
var _ TextEngine = (*EinoPDFEngine)(nil)

// NewEinoPDFEngine 初始化 Eino PDF 主引擎
// 配置为不按页面分割，以获取整个文档的连续文本
func NewEinoPDFEngine(ctx context.Context, options ...EinoPDFOption) (*EinoPDFEngine, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: false, // 简历解析需要整份文档的连续文本，不按页切开
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Eino PDF parser: %w", err)
	}

	engine := &EinoPDFEngine{
		parser: p,
		logger: log.New(os.Stderr, "[EinoPDF] ", log.LstdFlags),
	}

	for _, option := range options {
		option(engine)
	}

	return engine, nil
}

// Name 实现TextEngine接口
func (e *EinoPDFEngine) Name() string {
	return "eino-pdf"
}

// ExtractText 从PDF字节内容提取纯文本
// eino解析偶发panic于畸形的交叉引用表，统一recover成错误交给引擎链回退
func (e *EinoPDFEngine) ExtractText(ctx context.Context, data []byte, uri string) (text string, pageCount *int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("eino PDF parser panic for %s: %v", uri, r)
		}
	}()

	startTime := time.Now()
	e.logger.Printf("开始提取PDF文本 (URI: %s, 大小 %d 字节)", uri, len(data))

	docs, err := e.parser.Parse(ctx, bytes.NewReader(data),
		einoParser.WithURI(uri),
	)

	duration := time.Since(startTime)
	if err != nil {
		e.logger.Printf("PDF提取失败: %s (用时 %.2f秒)", err, duration.Seconds())
		return "", nil, fmt.Errorf("eino PDF parser failed for %s: %w", uri, err)
	}

	if len(docs) == 0 {
		e.logger.Printf("PDF解析无结果 (用时 %.2f秒)", duration.Seconds())
		return "", nil, fmt.Errorf("eino PDF parser returned no documents for %s", uri)
	}

	// ToPages=false 下正常只有一个文档，稳妥起见仍合并全部内容
	var sb strings.Builder
	for i, doc := range docs {
		sb.WriteString(doc.Content)
		if i < len(docs)-1 {
			sb.WriteString("\n\n")
		}
	}

	e.logger.Printf("PDF提取完成: %d 个字符 (用时 %.2f秒)", sb.Len(), duration.Seconds())
	return sb.String(), nil, nil
}
