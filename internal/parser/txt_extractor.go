package parser

import (
	"context"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// PlainTextEngine 纯文本引擎
// 合法UTF-8直接采用；否则按Windows-1252宽容解码
// （Windows-1252覆盖Latin-1且给0x80-0x9F区间都指派了可打印字符，解码必定成功）
type PlainTextEngine struct{}

// 确保PlainTextEngine实现了TextEngine接口
var _ TextEngine = (*PlainTextEngine)(nil)

// NewPlainTextEngine 创建纯文本引擎
func NewPlainTextEngine() *PlainTextEngine {
	return &PlainTextEngine{}
}

// Name 实现TextEngine接口
func (e *PlainTextEngine) Name() string {
	return "plaintext"
}

// ExtractText 解码纯文本内容
func (e *PlainTextEngine) ExtractText(ctx context.Context, data []byte, uri string) (string, *int, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	if utf8.Valid(data) {
		return string(data), nil, nil
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", nil, fmt.Errorf("decode text %s as Windows-1252: %w", uri, err)
	}
	return string(decoded), nil, nil
}
