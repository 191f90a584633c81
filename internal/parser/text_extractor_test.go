package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-parse-go/internal/types"
)

// stubEngine 可编程的测试引擎
type stubEngine struct {
	name  string
	text  string
	pages *int
	err   error
	calls int
}

func (s *stubEngine) Name() string { return s.name }

func (s *stubEngine) ExtractText(ctx context.Context, data []byte, uri string) (string, *int, error) {
	s.calls++
	return s.text, s.pages, s.err
}

func intPtr(n int) *int { return &n }

// newStubExtractor 用指定引擎链创建提取器，长度阈值压低便于构造用例
func newStubExtractor(t *testing.T, minLen int, engines ...TextEngine) *TextExtractor {
	t.Helper()
	extractor, err := NewTextExtractor(context.Background(),
		WithPDFEngines(engines...),
		WithMinTextLength(minLen),
	)
	require.NoError(t, err, "创建文本提取器不应失败")
	return extractor
}

// TestExtractPDFPrimarySucceeds 主引擎达标时不触碰备用引擎
func TestExtractPDFPrimarySucceeds(t *testing.T) {
	primary := &stubEngine{name: "primary", text: strings.Repeat("Resume content line.\n", 5), pages: intPtr(1)}
	secondary := &stubEngine{name: "secondary", text: "should not be used"}
	extractor := newStubExtractor(t, 20, primary, secondary)

	result, err := extractor.Extract(context.Background(), types.RawDocument{Filename: "resume.pdf", Content: []byte("%PDF-")})
	require.NoError(t, err)
	assert.Equal(t, "primary", result.EngineUsed, "应采用主引擎产出")
	require.NotNil(t, result.PageCount)
	assert.Equal(t, 1, *result.PageCount)
	assert.Equal(t, 0, secondary.calls, "主引擎达标后不应调用备用引擎")
}

// TestExtractPDFFallbackToSecondary 主引擎产出不足时回退到备用引擎
func TestExtractPDFFallbackToSecondary(t *testing.T) {
	primary := &stubEngine{name: "primary", text: "short"}
	secondary := &stubEngine{name: "secondary", text: strings.Repeat("Recovered resume text.\n", 5), pages: intPtr(3)}
	extractor := newStubExtractor(t, 20, primary, secondary)

	result, err := extractor.Extract(context.Background(), types.RawDocument{Filename: "resume.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "secondary", result.EngineUsed, "主引擎产出不足时应采用备用引擎")
	assert.Contains(t, result.Text, "Recovered resume text.")
	require.NotNil(t, result.PageCount)
	assert.Equal(t, 3, *result.PageCount)
	assert.Equal(t, 1, primary.calls, "主引擎应被尝试过")
}

// TestExtractPDFPrimaryErrorFallback 主引擎报错同样触发回退
func TestExtractPDFPrimaryErrorFallback(t *testing.T) {
	primary := &stubEngine{name: "primary", err: errors.New("malformed xref table")}
	secondary := &stubEngine{name: "secondary", text: strings.Repeat("Recovered resume text.\n", 5)}
	extractor := newStubExtractor(t, 20, primary, secondary)

	result, err := extractor.Extract(context.Background(), types.RawDocument{Filename: "resume.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "secondary", result.EngineUsed)
}

// TestExtractPDFAllEnginesFail 全部引擎报错视为文件损坏
func TestExtractPDFAllEnginesFail(t *testing.T) {
	primary := &stubEngine{name: "primary", err: errors.New("broken stream")}
	secondary := &stubEngine{name: "secondary", err: errors.New("broken stream too")}
	extractor := newStubExtractor(t, 20, primary, secondary)

	_, err := extractor.Extract(context.Background(), types.RawDocument{Filename: "resume.pdf"})
	assert.ErrorIs(t, err, ErrEngineFailure, "引擎链全部报错应返回引擎失败")
}

// TestExtractPDFAllEnginesEmpty 引擎跑通但都没有文本（典型扫描件）
func TestExtractPDFAllEnginesEmpty(t *testing.T) {
	primary := &stubEngine{name: "primary", text: "   \n  "}
	secondary := &stubEngine{name: "secondary", text: ""}
	extractor := newStubExtractor(t, 20, primary, secondary)

	_, err := extractor.Extract(context.Background(), types.RawDocument{Filename: "scanned.pdf"})
	assert.ErrorIs(t, err, ErrNoUsableText, "没有任何文本产出应返回无可用文本")
}

// TestExtractPDFShortButPrintable 全链未达标但有可打印文本时放行最长产出
func TestExtractPDFShortButPrintable(t *testing.T) {
	primary := &stubEngine{name: "primary", text: "Jane"}
	secondary := &stubEngine{name: "secondary", text: "Jane Doe, Engineer"}
	extractor := newStubExtractor(t, 100, primary, secondary)

	result, err := extractor.Extract(context.Background(), types.RawDocument{Filename: "tiny.pdf"})
	require.NoError(t, err, "短而可打印的产出应放行")
	assert.Equal(t, "secondary", result.EngineUsed, "应保留最长的未达标产出")
	assert.Equal(t, "Jane Doe, Engineer", result.Text)
}

// TestExtractTXTUTF8 合法UTF-8直接采用
func TestExtractTXTUTF8(t *testing.T) {
	extractor := newStubExtractor(t, 20, &stubEngine{name: "unused"})

	result, err := extractor.Extract(context.Background(), types.RawDocument{
		Filename: "resume.txt",
		Content:  []byte("Jane Doe\njane@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "plaintext", result.EngineUsed)
	assert.Equal(t, "Jane Doe\njane@example.com", result.Text)
	assert.Nil(t, result.PageCount, "纯文本没有页数概念")
}

// TestExtractTXTWindows1252 非UTF-8内容按Windows-1252宽容解码
func TestExtractTXTWindows1252(t *testing.T) {
	extractor := newStubExtractor(t, 20, &stubEngine{name: "unused"})

	result, err := extractor.Extract(context.Background(), types.RawDocument{
		Filename: "resume.txt",
		Content:  []byte("Caf\xe9 worker, Jos\xe9"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Café worker, José", result.Text, "0xE9 应还原为 é")
}

// TestExtractTXTWhitespaceOnly 全空白内容算无可用文本
func TestExtractTXTWhitespaceOnly(t *testing.T) {
	extractor := newStubExtractor(t, 20, &stubEngine{name: "unused"})

	_, err := extractor.Extract(context.Background(), types.RawDocument{
		Filename: "blank.txt",
		Content:  []byte("   \n\t\n  "),
	})
	assert.ErrorIs(t, err, ErrNoUsableText)
}

// TestExtractTXTGarbledRejected 乱码占比超标按无可用文本拒绝
func TestExtractTXTGarbledRejected(t *testing.T) {
	extractor := newStubExtractor(t, 20, &stubEngine{name: "unused"})

	_, err := extractor.Extract(context.Background(), types.RawDocument{
		Filename: "garbage.txt",
		Content:  bytes.Repeat([]byte{0x01, 0x02, 0x03, 'a'}, 16),
	})
	assert.ErrorIs(t, err, ErrNoUsableText, "控制字符为主的内容不应当成功放行")
}

// TestExtractRTF 剥离控制序列后得到纯文本
func TestExtractRTF(t *testing.T) {
	extractor := newStubExtractor(t, 20, &stubEngine{name: "unused"})

	content := `{\rtf1\ansi{\fonttbl{\f0\fswiss Arial;}}\pard R\'e9sum\'e of Jane Doe\par Engineer\tab Platform Team\par}`
	result, err := extractor.Extract(context.Background(), types.RawDocument{
		Filename: "resume.rtf",
		Content:  []byte(content),
	})
	require.NoError(t, err)
	assert.Equal(t, "rtf", result.EngineUsed)
	assert.Contains(t, result.Text, "Résumé of Jane Doe", "十六进制转义应还原")
	assert.Contains(t, result.Text, "Engineer")
	assert.Contains(t, result.Text, "Platform Team")
	assert.NotContains(t, result.Text, "Arial", "字体表不应泄漏进正文")
	assert.NotContains(t, result.Text, `\par`, "控制词应被剥除")
	assert.NotContains(t, result.Text, "{")
}

// TestExtractRTFCompoundControlWords 与段落控制词同前缀的控制词必须整词剥除
// macOS TextEdit 每个段落都写 \pardirnatural\partightenfactor，Word 会写 \pararsid，
// 它们的尾部不能作为正文混进提取结果
func TestExtractRTFCompoundControlWords(t *testing.T) {
	extractor := newStubExtractor(t, 20, &stubEngine{name: "unused"})

	content := `{\rtf1\ansi\ansicpg1252\cocoartf2639
{\fonttbl\f0\fswiss\fcharset0 Helvetica;}
{\colortbl;\red255\green255\blue255;}
\paperw11900\paperh16840\margl1440\margr1440
\pard\tx720\pardirnatural\partightenfactor0

\f0\fs24 \cf0 Jane Doe\par
\pard\pararsid1234 jane@x.com\par}`

	result, err := extractor.Extract(context.Background(), types.RawDocument{
		Filename: "textedit.rtf",
		Content:  []byte(content),
	})
	require.NoError(t, err)
	assert.Contains(t, result.Text, "Jane Doe")
	assert.Contains(t, result.Text, "jane@x.com")
	assert.NotContains(t, result.Text, "irnatural", `\pardirnatural 的尾部不应泄漏进正文`)
	assert.NotContains(t, result.Text, "tightenfactor", `\partightenfactor 的尾部不应泄漏进正文`)
	assert.NotContains(t, result.Text, "arsid", `\pararsid 的尾部不应泄漏进正文`)
}

// TestExtractRTFMissingHeader 扩展名是rtf但内容不是，按文件损坏处理
func TestExtractRTFMissingHeader(t *testing.T) {
	extractor := newStubExtractor(t, 20, &stubEngine{name: "unused"})

	_, err := extractor.Extract(context.Background(), types.RawDocument{
		Filename: "fake.rtf",
		Content:  []byte("this is not rtf at all"),
	})
	assert.ErrorIs(t, err, ErrEngineFailure)
}

// buildDOCX 构造仅含 word/document.xml 的内存DOCX包
func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// TestExtractDOCX 解包并拍平OOXML文档
func TestExtractDOCX(t *testing.T) {
	extractor := newStubExtractor(t, 20, &stubEngine{name: "unused"})

	documentXML := `<?xml version="1.0"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` +
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Software Engineer</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Go</w:t></w:r><w:tab/><w:r><w:t>Python</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	result, err := extractor.Extract(context.Background(), types.RawDocument{
		Filename: "resume.docx",
		Content:  buildDOCX(t, documentXML),
	})
	require.NoError(t, err)
	assert.Equal(t, "docx", result.EngineUsed)
	assert.Equal(t, "Jane Doe\nSoftware Engineer\nGo Python", result.Text, "段落应以换行分隔，tab标记应变为空格")
}

// TestExtractDOCXCorrupt zip打不开视为文件损坏
func TestExtractDOCXCorrupt(t *testing.T) {
	extractor := newStubExtractor(t, 20, &stubEngine{name: "unused"})

	_, err := extractor.Extract(context.Background(), types.RawDocument{
		Filename: "broken.docx",
		Content:  []byte("definitely not a zip archive"),
	})
	assert.ErrorIs(t, err, ErrEngineFailure)
}

// TestExtractDOCXMissingDocumentXML zip合法但缺少文档主体
func TestExtractDOCXMissingDocumentXML(t *testing.T) {
	extractor := newStubExtractor(t, 20, &stubEngine{name: "unused"})

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("something/else.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = extractor.Extract(context.Background(), types.RawDocument{
		Filename: "odd.docx",
		Content:  buf.Bytes(),
	})
	assert.ErrorIs(t, err, ErrEngineFailure)
}

// TestExtractUnknownFormat 识别不了的文档直接报格式错误
func TestExtractUnknownFormat(t *testing.T) {
	extractor := newStubExtractor(t, 20, &stubEngine{name: "unused"})

	_, err := extractor.Extract(context.Background(), types.RawDocument{
		Filename: "mystery.xyz",
		Content:  []byte{0xD0, 0xCF, 0x11, 0xE0},
	})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
