package parser

import (
	"regexp"
	"strings"

	"resume-parse-go/internal/types"
)

// 学历关键词分两类：缩写形式区分大小写（避免 "be"、"ma" 这类普通单词误命中），
// 完整单词不区分大小写
var (
	degreeAbbrevRegex = regexp.MustCompile(
		`\b(B\.?Tech\b|M\.?Tech\b|B\.?Sc\b\.?|M\.?Sc\b\.?|BBA\b|MBA\b|MCA\b|BCA\b|` +
			`B\.?S\b\.?|M\.?S\b\.?|B\.?A\b\.?|M\.?A\b\.?|B\.?E\b\.?|M\.?E\b\.?)`)
	degreeWordRegex = regexp.MustCompile(
		`(?i)\b(bachelor(?:'?s)?|master(?:'?s)?|ph\.?\s?d|doctorate|doctor\s+of|associate(?:'?s)?|diploma)\b`)

	institutionRegex = regexp.MustCompile(
		`(?i)\b(university|college|institute|institution|school|academy|polytechnic)\b`)
	gradYearRegex = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	eduSegmentRegex = regexp.MustCompile(`[,|•·;]`)
)

// EducationExtractor 教育经历提取器
// 以学历关键词行为块首，在相邻行中配对院校名和毕业年份
type EducationExtractor struct{}

// NewEducationExtractor 创建教育经历提取器
func NewEducationExtractor() *EducationExtractor {
	return &EducationExtractor{}
}

// Extract 按文档顺序提取教育经历条目
// 没有教育章节时回退到全文扫描；
// 学历关键词附近找不到院校也找不到年份的，视为误命中不输出
func (e *EducationExtractor) Extract(educationSection, fullText string) []types.EducationEntry {
	source := educationSection
	if strings.TrimSpace(source) == "" {
		source = fullText
	}

	lines := SplitLines(source)
	entries := make([]types.EducationEntry, 0, 4)

	for i, line := range lines {
		if !isDegreeLine(line) {
			continue
		}

		degree := degreeSegment(line)
		if degree == "" {
			continue
		}

		institution := findInstitution(lines, i)
		year := findGradYear(lines, i)
		if institution == "" && year == "" {
			continue
		}

		entries = append(entries, types.EducationEntry{
			Degree:      degree,
			Institution: institution,
			Year:        year,
		})
	}

	return entries
}

func isDegreeLine(line string) bool {
	return degreeAbbrevRegex.MatchString(line) || degreeWordRegex.MatchString(line)
}

// degreeSegment 取学历关键词所在的逗号分段作为学历描述
func degreeSegment(line string) string {
	for _, seg := range eduSegmentRegex.Split(line, -1) {
		if degreeAbbrevRegex.MatchString(seg) || degreeWordRegex.MatchString(seg) {
			return cleanEduSegment(seg)
		}
	}
	return ""
}

// findInstitution 配对院校名
// 查找顺序：学历行本身、其后两行、其前一行；取含院校词的逗号分段
func findInstitution(lines []string, degreeIdx int) string {
	order := []int{degreeIdx, degreeIdx + 1, degreeIdx + 2, degreeIdx - 1}
	for _, idx := range order {
		if idx < 0 || idx >= len(lines) {
			continue
		}
		line := lines[idx]
		if !institutionRegex.MatchString(line) {
			continue
		}
		for _, seg := range eduSegmentRegex.Split(line, -1) {
			if institutionRegex.MatchString(seg) {
				return cleanEduSegment(seg)
			}
		}
	}
	return ""
}

// findGradYear 配对毕业年份
// 在学历行及其后两行中找第一个含年份的行，取该行最后一个年份
// （"2010 - 2014" 这类就读区间取 2014）
func findGradYear(lines []string, degreeIdx int) string {
	for idx := degreeIdx; idx <= degreeIdx+2 && idx < len(lines); idx++ {
		years := gradYearRegex.FindAllString(lines[idx], -1)
		if len(years) > 0 {
			return years[len(years)-1]
		}
	}
	return ""
}

func cleanEduSegment(seg string) string {
	seg = strings.TrimSpace(seg)
	seg = strings.Trim(seg, "-•*·—–() \t")
	return strings.TrimSpace(seg)
}
