package parser

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"resume-parse-go/internal/types"
)

// SegmenterConfig 章节切分器的配置
type SegmenterConfig struct {
	// 自定义章节标题正则映射，键为章节类型（SUMMARY/SKILLS/EXPERIENCE/EDUCATION/OTHER）
	// 提供的正则覆盖对应类型的默认标题表
	CustomSectionRegexMap map[string]string

	// 标题候选行的最大长度（字符数），0 表示使用默认值
	MaxHeadingLength int
}

// SectionSegmenter 基于标题启发式的章节切分器
// 所有正则在构造时编译一次，切分本身是纯函数，可并发使用
type SectionSegmenter struct {
	config SegmenterConfig

	// 编译好的章节标题正则
	sectionRegexMap map[types.SectionKind]*regexp.Regexp
}

// 默认的标题同义词表，按章节类型分组
// 标题行匹配不区分大小写，允许行尾冒号
var defaultSectionPatterns = map[types.SectionKind]string{
	types.SectionSummary:    `(?i)^\s*(professional\s+summary|profile\s+summary|career\s+objective|executive\s+summary|summary|objective|profile|about\s+me)\s*:?\s*$`,
	types.SectionSkills:     `(?i)^\s*(technical\s+skills?|core\s+competenc(y|ies)|skills?\s*(&|and)\s*(tools|technologies|abilities)|key\s+skills?|skill\s+set|technologies|tech\s+stack|expertise|skills?)\s*:?\s*$`,
	types.SectionExperience: `(?i)^\s*(professional\s+experience|work\s+experience|employment\s+history|work\s+history|career\s+history|professional\s+background|relevant\s+experience|internships?|experience|employment)\s*:?\s*$`,
	types.SectionEducation:  `(?i)^\s*(educational?\s+(background|qualifications?)|academic\s+(background|qualifications?|history)|academics|qualifications?|education)\s*:?\s*$`,
	// 识别到标题但不需要细分的章节，用于终止前一个章节
	types.SectionOther: `(?i)^\s*(projects?|personal\s+projects?|certifications?|certificates?|awards?|honors?|achievements?|publications?|languages?|references?|interests?|hobbies|volunteer(ing|\s+experience)?|activities)\s*:?\s*$`,
}

// 默认标题正则的一次性编译结果，供不持有切分器实例的调用方使用
var defaultHeadingRegexes = func() []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(defaultSectionPatterns))
	for _, pattern := range defaultSectionPatterns {
		out = append(out, regexp.MustCompile(pattern))
	}
	return out
}()

// IsRecognizedHeading 判断一行是否命中任一默认章节标题
// 姓名等提取器用它否决标题行，不依赖切分器实例
func IsRecognizedHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	for _, regex := range defaultHeadingRegexes {
		if regex.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// NewSectionSegmenter 创建章节切分器，编译默认与自定义标题正则
func NewSectionSegmenter(config SegmenterConfig) (*SectionSegmenter, error) {
	s := &SectionSegmenter{
		config:          config,
		sectionRegexMap: make(map[types.SectionKind]*regexp.Regexp, len(defaultSectionPatterns)),
	}

	patterns := make(map[types.SectionKind]string, len(defaultSectionPatterns))
	for kind, pattern := range defaultSectionPatterns {
		patterns[kind] = pattern
	}
	for kindName, pattern := range config.CustomSectionRegexMap {
		patterns[types.SectionKind(kindName)] = pattern
	}

	for kind, pattern := range patterns {
		regex, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("编译章节标题正则失败 %s: %w", kind, err)
		}
		s.sectionRegexMap[kind] = regex
	}

	if s.config.MaxHeadingLength <= 0 {
		s.config.MaxHeadingLength = 60
	}

	return s, nil
}

// Segment 将归一化文本切分为有序的章节序列
// 第一个识别标题之前的内容归入头部区域；没有任何标题时整个文档就是头部区域
// 未命中的章节类型不在结果中出现，由下游对该类型回退到全文扫描
func (s *SectionSegmenter) Segment(text string) []types.DocumentSection {
	lines := SplitLines(text)
	if len(lines) == 0 {
		return nil
	}

	var sections []types.DocumentSection

	current := types.DocumentSection{
		Kind:      types.SectionHeader,
		StartLine: 0,
	}
	var content []string

	flush := func(endLine int) {
		current.Text = strings.TrimRight(strings.Join(content, "\n"), "\n")
		current.EndLine = endLine
		// 空的头部区域（文档直接以标题开头）不输出
		if current.Kind == types.SectionHeader && strings.TrimSpace(current.Text) == "" {
			return
		}
		sections = append(sections, current)
	}

	for i, line := range lines {
		kind, ok := s.classifyHeading(line)
		if ok {
			flush(i)
			current = types.DocumentSection{
				Kind:      kind,
				Title:     strings.TrimSpace(line),
				StartLine: i,
			}
			content = content[:0]
			continue
		}
		content = append(content, line)
	}
	flush(len(lines))

	return sections
}

// classifyHeading 判断一行是否为章节标题，是则返回章节类型
// 标题必须是短行，且大体为大写/词首大写形态或以冒号结尾
func (s *SectionSegmenter) classifyHeading(line string) (types.SectionKind, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return "", false
	}
	if !s.looksLikeHeading(trimmed) {
		return "", false
	}

	// 有序检查保证同一行在多个类型间歧义时结果稳定
	for _, kind := range []types.SectionKind{
		types.SectionSummary,
		types.SectionSkills,
		types.SectionExperience,
		types.SectionEducation,
		types.SectionOther,
	} {
		if regex, ok := s.sectionRegexMap[kind]; ok && regex.MatchString(trimmed) {
			return kind, true
		}
	}

	return "", false
}

// looksLikeHeading 标题候选条件：短、词数少、以冒号结尾或字母以大写为主
func (s *SectionSegmenter) looksLikeHeading(trimmed string) bool {
	if len(trimmed) > s.config.MaxHeadingLength {
		return false
	}
	if len(strings.Fields(trimmed)) > 6 {
		return false
	}

	if strings.HasSuffix(trimmed, ":") {
		return true
	}

	var letters, upper, titleStarts, words int
	inWord := false
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
				if !inWord {
					titleStarts++
				}
			}
			if !inWord {
				words++
			}
			inWord = true
		} else {
			inWord = false
		}
	}
	if letters == 0 {
		return false
	}

	// 全大写（EXPERIENCE）或每个词首字母大写（Work Experience）都算"大体大写"
	if float64(upper)/float64(letters) >= 0.6 {
		return true
	}
	return words > 0 && titleStarts == words
}

// SectionText 返回全部指定类型章节的文本拼接
// 同类章节出现多次时按文档顺序拼接；找不到返回空串
func SectionText(sections []types.DocumentSection, kind types.SectionKind) string {
	var parts []string
	for _, sec := range sections {
		if sec.Kind == kind && strings.TrimSpace(sec.Text) != "" {
			parts = append(parts, sec.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// HeaderText 返回头部区域文本；没有独立头部时返回空串
func HeaderText(sections []types.DocumentSection) string {
	return SectionText(sections, types.SectionHeader)
}
