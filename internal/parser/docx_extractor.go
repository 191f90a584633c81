package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// DOCXTextEngine DOCX文本引擎
// 直接解开OOXML包，按文档顺序遍历 word/document.xml 的XML标记流，
// 段落和表格内容天然按body顺序产出，无需额外处理表格
type DOCXTextEngine struct{}

// 确保DOCXTextEngine实现了TextEngine接口
var _ TextEngine = (*DOCXTextEngine)(nil)

// NewDOCXTextEngine 创建DOCX文本引擎
func NewDOCXTextEngine() *DOCXTextEngine {
	return &DOCXTextEngine{}
}

// Name 实现TextEngine接口
func (e *DOCXTextEngine) Name() string {
	return "docx"
}

// ExtractText 从DOCX字节内容提取纯文本
// zip打不开或找不到 word/document.xml 视为文件损坏
func (e *DOCXTextEngine) ExtractText(ctx context.Context, data []byte, uri string) (string, *int, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("empty DOCX data for %s", uri)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, fmt.Errorf("open DOCX archive %s: %w", uri, err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		// 个别打包器会写反斜杠路径
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", nil, fmt.Errorf("word/document.xml not found in %s", uri)
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", nil, fmt.Errorf("open word/document.xml in %s: %w", uri, err)
	}
	defer rc.Close()

	text, err := flattenDocumentXML(rc)
	if err != nil {
		return "", nil, fmt.Errorf("decode word/document.xml in %s: %w", uri, err)
	}
	return text, nil, nil
}

// flattenDocumentXML 遍历XML标记流，收集字符数据
// 段落（w:p）与换行（w:br）结束时补换行；制表符标记（w:tab）补空格
func flattenDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var sb strings.Builder

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			if t.Name.Local == "tab" {
				sb.WriteString(" ")
			}
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if sb.Len() > 0 {
					sb.WriteString("\n")
				}
			}
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
