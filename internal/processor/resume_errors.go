package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型，均为单文档级别，绝不中断批量处理
var (
	ErrUnsupportedFormat = errors.New("不支持的文件格式")
	ErrCorruptFile       = errors.New("文件已损坏或结构异常")
	ErrNoTextExtracted   = errors.New("未能提取到任何可用文本")
	ErrExtractionTimeout = errors.New("文档处理超时")
)

// ParseError 包含详细错误信息的自定义错误
// DocumentID 是本次解析调用的唯一标识，用于日志与追踪关联
type ParseError struct {
	DocumentID string
	Filename   string
	Op         string
	BaseErr    error
	Detail     string
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, 文件:%s, ID:%s): %s", e.BaseErr, e.Op, e.Filename, e.DocumentID, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, 文件:%s, ID:%s)", e.BaseErr, e.Op, e.Filename, e.DocumentID)
}

func (e *ParseError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ParseError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewUnsupportedFormatError(docID, filename, detail string) error {
	return &ParseError{
		DocumentID: docID,
		Filename:   filename,
		Op:         "detect",
		BaseErr:    ErrUnsupportedFormat,
		Detail:     detail,
	}
}

func NewCorruptFileError(docID, filename, detail string) error {
	return &ParseError{
		DocumentID: docID,
		Filename:   filename,
		Op:         "extract",
		BaseErr:    ErrCorruptFile,
		Detail:     detail,
	}
}

func NewNoTextExtractedError(docID, filename, detail string) error {
	return &ParseError{
		DocumentID: docID,
		Filename:   filename,
		Op:         "extract",
		BaseErr:    ErrNoTextExtracted,
		Detail:     detail,
	}
}

func NewExtractionTimeoutError(docID, filename, detail string) error {
	return &ParseError{
		DocumentID: docID,
		Filename:   filename,
		Op:         "parse",
		BaseErr:    ErrExtractionTimeout,
		Detail:     detail,
	}
}
