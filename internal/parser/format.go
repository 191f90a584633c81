package parser

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"resume-parse-go/internal/types"
)

// DocumentFormat 支持的简历文档格式
type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
	FormatTXT  DocumentFormat = "txt"
	FormatRTF  DocumentFormat = "rtf"
)

// 文件内容签名
var (
	pdfSignature = []byte("%PDF-")
	zipSignature = []byte("PK\x03\x04")
	rtfSignature = []byte("{\\rtf")
)

// ErrUnknownFormat 扩展名与内容签名均无法识别
var ErrUnknownFormat = fmt.Errorf("无法识别的文档格式")

// DetectFormat 判定文档格式
// 优先使用扩展名（大小写不敏感）；扩展名缺失或不认识时回退到内容签名嗅探
// 两者都判定不出时返回 ErrUnknownFormat，调用方据此映射为"不支持的格式"错误
func DetectFormat(doc types.RawDocument) (DocumentFormat, error) {
	switch doc.Ext() {
	case "pdf":
		return FormatPDF, nil
	case "docx":
		return FormatDOCX, nil
	case "txt", "text":
		return FormatTXT, nil
	case "rtf":
		return FormatRTF, nil
	}

	if format, ok := sniffFormat(doc.Content); ok {
		return format, nil
	}

	return "", fmt.Errorf("%w: 扩展名 %q", ErrUnknownFormat, doc.Ext())
}

// sniffFormat 按内容签名嗅探格式
// zip签名还会廉价确认一下是否真是DOCX（word/document.xml 条目名出现在包内）；
// 最后兜底：合法且大体可打印的UTF-8按纯文本处理
func sniffFormat(content []byte) (DocumentFormat, bool) {
	if bytes.HasPrefix(content, pdfSignature) {
		return FormatPDF, true
	}
	if bytes.HasPrefix(content, zipSignature) {
		// zip中央目录保存着完整条目名，直接在字节流里找即可，无需整包解压
		if bytes.Contains(content, []byte("word/document.xml")) {
			return FormatDOCX, true
		}
		return "", false
	}
	if bytes.HasPrefix(content, rtfSignature) {
		return FormatRTF, true
	}

	if len(content) > 0 && utf8.Valid(content) && PrintableRatio(string(content)) >= 0.9 {
		return FormatTXT, true
	}

	return "", false
}
