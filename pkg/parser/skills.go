package parser

import (
	"regexp"
	"strings"

	"resume-parse-go/pkg/taxonomy"
)

// 技能候选的切分符：逗号、分号、竖线、项目符号
// 斜杠不在其中，先整块查表以保住 CI/CD 这类本身含斜杠的技能名
var skillDelimiterRegex = regexp.MustCompile(`[,;|•·]`)

// SkillExtractor 词表约束的技能提取器
// 只输出词表中的规范技能名，不做词表之外的推断
type SkillExtractor struct {
	taxonomy *taxonomy.Taxonomy
}

// NewSkillExtractor 创建技能提取器
func NewSkillExtractor(tax *taxonomy.Taxonomy) *SkillExtractor {
	return &SkillExtractor{taxonomy: tax}
}

// Extract 从技能章节提取规范技能名
// 没有技能章节时回退到全文扫描；结果按首次出现顺序去重
func (s *SkillExtractor) Extract(skillsSection, fullText string) []string {
	source := skillsSection
	if strings.TrimSpace(source) == "" {
		source = fullText
	}

	skills := make([]string, 0, 16)
	seen := make(map[string]bool)
	emit := func(canonical string) {
		if !seen[canonical] {
			seen[canonical] = true
			skills = append(skills, canonical)
		}
	}

	for _, line := range SplitLines(source) {
		for _, chunk := range skillDelimiterRegex.Split(line, -1) {
			s.matchChunk(chunk, emit)
		}
	}

	return skills
}

// matchChunk 对单个候选块做词表匹配
// 顺序：去掉类目标签 -> 整块直查 -> 斜杠并列拆分 -> 贪心短语窗口
func (s *SkillExtractor) matchChunk(chunk string, emit func(string)) {
	chunk = cleanSkillChunk(chunk)
	if chunk == "" {
		return
	}

	// "Programming Languages: Python" 这种带类目标签的写法取冒号右侧
	if idx := strings.Index(chunk, ":"); idx >= 0 {
		chunk = strings.TrimSpace(chunk[idx+1:])
		if chunk == "" {
			return
		}
	}

	if canonical, ok := s.taxonomy.Canonical(chunk); ok {
		emit(canonical)
		return
	}

	// "Java/Python/Go" 的并列写法
	if strings.Contains(chunk, "/") {
		matchedAll := true
		var canonicals []string
		for _, part := range strings.Split(chunk, "/") {
			if canonical, ok := s.taxonomy.Canonical(part); ok {
				canonicals = append(canonicals, canonical)
			} else if strings.TrimSpace(part) != "" {
				matchedAll = false
			}
		}
		for _, canonical := range canonicals {
			emit(canonical)
		}
		if matchedAll && len(canonicals) > 0 {
			return
		}
	}

	s.scanPhrases(chunk, emit)
}

// scanPhrases 在块内做贪心短语匹配
// 每个位置先试最长窗口，命中后跳过已消费的词，避免 "SQL Server" 再命中 "SQL"
func (s *SkillExtractor) scanPhrases(chunk string, emit func(string)) {
	tokens := strings.Fields(chunk)
	maxWindow := s.taxonomy.MaxPhraseTokens()

	for i := 0; i < len(tokens); {
		matched := false
		window := maxWindow
		if remain := len(tokens) - i; window > remain {
			window = remain
		}
		for size := window; size >= 1; size-- {
			phrase := strings.Join(tokens[i:i+size], " ")
			if canonical, ok := s.taxonomy.Canonical(phrase); ok {
				emit(canonical)
				i += size
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
}

// cleanSkillChunk 去掉候选块首尾的项目符号和装饰字符
func cleanSkillChunk(chunk string) string {
	chunk = strings.TrimSpace(chunk)
	chunk = strings.Trim(chunk, "-•*·—– \t")
	return strings.TrimSpace(chunk)
}
