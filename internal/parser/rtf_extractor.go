package parser

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RTF控制序列的剥离模式
var (
	// \'hh 形式的十六进制转义字符
	rtfHexEscapeRegex = regexp.MustCompile(`\\'([0-9a-fA-F]{2})`)
	// 不展开内容的元数据组（字体表、颜色表、样式表、info等）
	// 字体表惯常嵌套一层子组，模式里允许一层嵌套
	rtfSkipGroupRegex = regexp.MustCompile(`\{\\\*?(?:fonttbl|colortbl|stylesheet|info|pict|themedata|generator)(?:[^{}]|\{[^{}]*\})*\}`)
	// 控制词，如 \par、\fs24、\lang1033，末尾可带一个吃掉的空格
	rtfControlWordRegex = regexp.MustCompile(`\\\*?[a-z]+-?\d* ?`)

	// 段落和换行控制词必须整词匹配：\pardirnatural、\partightenfactor、\pararsid
	// 等同前缀控制词不能被截断，否则尾部会混进正文
	rtfParaResetRegex = regexp.MustCompile(`\\pard\b ?`)
	rtfParaRegex      = regexp.MustCompile(`\\par\b ?`)
	rtfLineRegex      = regexp.MustCompile(`\\line\b ?`)
	rtfTabRegex       = regexp.MustCompile(`\\tab\b ?`)
)

// RTFTextEngine RTF文本引擎
// 简历场景不需要保留版式，把控制序列剥掉拿纯文本即可
type RTFTextEngine struct{}

// 确保RTFTextEngine实现了TextEngine接口
var _ TextEngine = (*RTFTextEngine)(nil)

// NewRTFTextEngine 创建RTF文本引擎
func NewRTFTextEngine() *RTFTextEngine {
	return &RTFTextEngine{}
}

// Name 实现TextEngine接口
func (e *RTFTextEngine) Name() string {
	return "rtf"
}

// ExtractText 剥离RTF控制序列得到纯文本
// 没有RTF头按文件损坏处理（格式检测可能是被扩展名骗进来的）
func (e *RTFTextEngine) ExtractText(ctx context.Context, data []byte, uri string) (string, *int, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, err
	}

	raw := string(data)
	if !strings.HasPrefix(raw, `{\rtf`) {
		return "", nil, fmt.Errorf("missing RTF header in %s", uri)
	}

	return stripRTF(raw), nil, nil
}

// stripRTF 依次处理：丢弃字体表等元数据组、段落控制词换成换行、
// 十六进制转义还原、剩余控制词剥除、花括号与转义符清理
func stripRTF(raw string) string {
	text := rtfSkipGroupRegex.ReplaceAllString(raw, "")

	// 段落和换行控制词先换成真实换行，再统一剥控制词
	// \pard 是段落格式重置而非段落结束，必须先于 \par 处理掉
	text = rtfParaResetRegex.ReplaceAllString(text, "")
	text = rtfParaRegex.ReplaceAllString(text, "\n")
	text = rtfLineRegex.ReplaceAllString(text, "\n")
	text = rtfTabRegex.ReplaceAllString(text, " ")

	text = rtfHexEscapeRegex.ReplaceAllStringFunc(text, func(m string) string {
		code, err := strconv.ParseUint(m[2:], 16, 8)
		if err != nil {
			return ""
		}
		r := charmapRune(byte(code))
		if r == 0 {
			return ""
		}
		return string(r)
	})

	text = rtfControlWordRegex.ReplaceAllString(text, "")

	// 转义的字面量花括号和反斜杠
	text = strings.ReplaceAll(text, `\{`, "{")
	text = strings.ReplaceAll(text, `\}`, "}")
	text = strings.ReplaceAll(text, `\\`, "\\")

	text = strings.ReplaceAll(text, "{", "")
	text = strings.ReplaceAll(text, "}", "")

	return strings.TrimSpace(text)
}

// charmapRune 按Windows-1252把单字节转义还原成字符
func charmapRune(b byte) rune {
	if b < 0x80 {
		return rune(b)
	}
	// Windows-1252高区的常用映射（弯引号、破折号等），其余按Latin-1处理
	switch b {
	case 0x91, 0x92:
		return '\''
	case 0x93, 0x94:
		return '"'
	case 0x96:
		return '–'
	case 0x97:
		return '—'
	case 0x95:
		return '•'
	case 0xA0:
		return ' '
	default:
		return rune(b)
	}
}
