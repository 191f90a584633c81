package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// 独占一行的页码痕迹，如 "Page 1 of 3"、"Page 2"
	pageArtifactRegex = regexp.MustCompile(`(?i)^\s*page\s+\d+(\s*(of|/)\s*\d+)?\s*$`)
	// 行内连续空格
	multiSpaceRegex = regexp.MustCompile(` {2,}`)
)

// NormalizeText 将提取出的原始文本归一化：
//   - 统一换行符，制表符与不间断空格替换为普通空格
//   - 修剪每行的尾部空白，压缩行内连续空格
//   - 连续空行压缩为一个空行
//   - 删除独占一行的页码痕迹
//   - 拼回被连字符断行的单词（行尾"-"且下一行以小写字母开头）
//
// 行的先后顺序保持不变，后续的姓名定位启发式依赖稳定的行号
func NormalizeText(raw string) string {
	if raw == "" {
		return ""
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, " ", " ")
	text = strings.ReplaceAll(text, "\t", " ")

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blankRun := 0

	for _, line := range lines {
		line = multiSpaceRegex.ReplaceAllString(line, " ")
		line = strings.TrimRight(line, " ")

		if pageArtifactRegex.MatchString(line) {
			continue
		}

		if strings.TrimSpace(line) == "" {
			blankRun++
			if blankRun == 1 {
				out = append(out, "")
			}
			continue
		}
		blankRun = 0

		// 连字符断行修复：上一行以"-"结尾且本行以小写字母开头时拼接
		if len(out) > 0 {
			prev := out[len(out)-1]
			next := strings.TrimLeft(line, " ")
			first, _ := utf8.DecodeRuneInString(next)
			if strings.HasSuffix(prev, "-") && unicode.IsLower(first) {
				out[len(out)-1] = strings.TrimSuffix(prev, "-") + next
				continue
			}
		}

		out = append(out, line)
	}

	// 去掉首尾的空行
	start, end := 0, len(out)
	for start < end && out[start] == "" {
		start++
	}
	for end > start && out[end-1] == "" {
		end--
	}

	return strings.Join(out[start:end], "\n")
}

// SplitLines 按行切分归一化文本，空文本返回空切片
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
