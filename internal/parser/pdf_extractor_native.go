package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/ledongthuc/pdf"
)

// NativePDFEngine 纯Go实现的PDF备用引擎
// 主引擎产出不足（常见于版面复杂或扫描混排的文件）时顶上
type NativePDFEngine struct {
	logger *log.Logger
}

// NativePDFOption 备用引擎的配置选项
type NativePDFOption func(*NativePDFEngine)

// WithNativeLogger 配置自定义日志记录器
func WithNativeLogger(logger *log.Logger) NativePDFOption {
	return func(e *NativePDFEngine) {
		e.logger = logger
	}
}

// 确保NativePDFEngine实现了TextEngine接口
var _ TextEngine = (*NativePDFEngine)(nil)

// NewNativePDFEngine 创建纯Go PDF备用引擎
func NewNativePDFEngine(options ...NativePDFOption) *NativePDFEngine {
	engine := &NativePDFEngine{
		logger: log.New(os.Stderr, "[NativePDF] ", log.LstdFlags),
	}

	for _, option := range options {
		option(engine)
	}

	return engine
}

// Name 实现TextEngine接口
func (e *NativePDFEngine) Name() string {
	return "native-pdf"
}

// ExtractText 从PDF字节内容提取纯文本
// 该库在畸形文件上会panic，统一recover成错误返回
func (e *NativePDFEngine) ExtractText(ctx context.Context, data []byte, uri string) (text string, pageCount *int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("native PDF reader panic for %s: %v", uri, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	startTime := time.Now()
	e.logger.Printf("备用引擎开始提取PDF文本 (URI: %s)", uri)

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("native PDF reader failed for %s: %w", uri, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", nil, fmt.Errorf("native PDF text extraction failed for %s: %w", uri, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", nil, fmt.Errorf("native PDF text read failed for %s: %w", uri, err)
	}

	pages := reader.NumPage()
	e.logger.Printf("备用引擎提取完成: %d 个字符, %d 页 (用时 %.2f秒)",
		buf.Len(), pages, time.Since(startTime).Seconds())
	return buf.String(), &pages, nil
}
