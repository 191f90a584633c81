package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"resume-parse-go/internal/constants"
	"resume-parse-go/internal/types"
)

// 日期区间锚点的识别模式
// 起止日期支持 月名+年份（Jan 2020 / September 2020 / Sept. 2020）、
// 数字 月/年（06/2020、6-2020）和纯年份（2019）三种写法；
// 结束侧额外接受 Present/Current/Now/date（"till date" 的 date 部分）
const monthNamePattern = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

var (
	dateTokenPattern = monthNamePattern + `\.?\s*\d{4}|\d{1,2}[/-]\d{4}|\d{4}`

	dateRangeRegex = regexp.MustCompile(
		`(?i)\b(` + dateTokenPattern + `)\s*(?:to|until|through|upto|till|[-–—])\s*` +
			`(present|current|now|date|` + dateTokenPattern + `)\b`)

	presentTokenRegex = regexp.MustCompile(`(?i)^(present|current|now|date)$`)
	numericDateRegex  = regexp.MustCompile(`^(\d{1,2})[/-](\d{4})$`)
	yearTokenRegex    = regexp.MustCompile(`\d{4}`)

	// "Engineer at Google" 的职位连接词
	atSeparatorRegex = regexp.MustCompile(`(?i)\s+at\s+`)
)

var monthsByPrefix = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// ExperienceExtractor 工作经历提取器
// 以日期区间为锚点切出经历块，时长按月折算后逐段独立求和
type ExperienceExtractor struct {
	now func() time.Time // 注入的时钟，Present/Current 以此为准
}

// NewExperienceExtractor 创建工作经历提取器，now为nil时使用系统时钟
func NewExperienceExtractor(now func() time.Time) *ExperienceExtractor {
	if now == nil {
		now = time.Now
	}
	return &ExperienceExtractor{now: now}
}

// dateAnchor 一条命中且通过校验的日期区间
type dateAnchor struct {
	lineIdx    int
	matchStart int // 区间在行内的字节偏移
	matchEnd   int
	startRaw   string
	endRaw     string
	months     int
}

// Extract 从经历章节提取结构化经历条目并计算总时长
// 没有经历章节时回退到全文扫描
// 参考日期在每次调用开始时取定一次，同一次解析内 Present 的解析结果一致
func (e *ExperienceExtractor) Extract(experienceSection, fullText string) types.ExperienceSummary {
	source := experienceSection
	if strings.TrimSpace(source) == "" {
		source = fullText
	}

	ref := e.now()
	lines := SplitLines(source)
	anchors := findDateAnchors(lines, ref)

	// 先为所有锚点定出职位/公司并记下被占用的行，
	// 再组装描述：上一条的描述不能把下一条的职位行裹进去
	titles := make([]string, len(anchors))
	companies := make([]string, len(anchors))
	consumed := make(map[int]bool, len(anchors)*2)
	for i := range anchors {
		var used []int
		titles[i], companies[i], used = resolveRole(lines, anchors, i)
		consumed[anchors[i].lineIdx] = true
		for _, j := range used {
			consumed[j] = true
		}
	}

	entries := make([]types.ExperienceEntry, 0, len(anchors))
	totalMonths := 0
	for i := range anchors {
		a := anchors[i]
		blockEnd := len(lines)
		if i+1 < len(anchors) {
			blockEnd = anchors[i+1].lineIdx
		}

		var descLines []string
		for j := a.lineIdx + 1; j < blockEnd; j++ {
			if !consumed[j] {
				descLines = append(descLines, lines[j])
			}
		}

		entries = append(entries, types.ExperienceEntry{
			Title:            titles[i],
			Company:          companies[i],
			StartDate:        a.startRaw,
			EndDateOrPresent: a.endRaw,
			Description:      strings.TrimSpace(strings.Join(descLines, "\n")),
			Months:           a.months,
			Rendered:         RenderDuration(a.months),
		})
		totalMonths += a.months
	}

	return types.ExperienceSummary{
		Entries: entries,
		TotalDuration: types.Duration{
			Years:  totalMonths / 12,
			Months: totalMonths % 12,
		},
	}
}

// findDateAnchors 逐行查找日期区间
// 每行只取第一个区间（同块出现多个区间时先见者优先）；
// 解析失败或不合理的区间不作为锚点，其所在行归入邻近条目的描述
func findDateAnchors(lines []string, ref time.Time) []dateAnchor {
	var anchors []dateAnchor
	for idx, line := range lines {
		m := dateRangeRegex.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		startRaw := line[m[2]:m[3]]
		endRaw := line[m[4]:m[5]]

		startY, startM, ok := parseDateToken(startRaw)
		if !ok || startY < constants.MinPlausibleStartYear {
			continue
		}

		var endY, endM int
		if presentTokenRegex.MatchString(endRaw) {
			endY, endM = ref.Year(), int(ref.Month())
		} else {
			endY, endM, ok = parseDateToken(endRaw)
			if !ok {
				continue
			}
		}

		// 不含结束月的整月差：Jan 2020 到 Dec 2021 记 23 个月，同月区间记 0
		months := (endY-startY)*12 + (endM - startM)
		if months < 0 || months > constants.MaxPlausibleSpanMonths {
			continue
		}

		anchors = append(anchors, dateAnchor{
			lineIdx:    idx,
			matchStart: m[0],
			matchEnd:   m[1],
			startRaw:   strings.TrimSpace(startRaw),
			endRaw:     strings.TrimSpace(endRaw),
			months:     months,
		})
	}
	return anchors
}

// parseDateToken 解析单个日期写法，返回年和月
// 纯年份按当年1月处理；月份数字越界视为解析失败
func parseDateToken(token string) (int, int, bool) {
	s := strings.ToLower(strings.TrimSpace(token))

	if m := numericDateRegex.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return 0, 0, false
		}
		return year, month, true
	}

	if len(s) >= 3 {
		if month, ok := monthsByPrefix[s[:3]]; ok {
			ym := yearTokenRegex.FindString(s)
			if ym == "" {
				return 0, 0, false
			}
			year, _ := strconv.Atoi(ym)
			return year, month, true
		}
	}

	if year, err := strconv.Atoi(s); err == nil && len(s) == 4 {
		return year, 1, true
	}

	return 0, 0, false
}

// resolveRole 为锚点定出职位/公司，并返回为此占用的行号
// 优先取锚点行去掉日期后的剩余文本，其次取锚点前最近的短行；
// 日期行在块首时才往锚点后看一行
func resolveRole(lines []string, anchors []dateAnchor, i int) (string, string, []int) {
	a := anchors[i]

	blockStart := 0
	if i > 0 {
		blockStart = anchors[i-1].lineIdx + 1
	}
	blockEnd := len(lines)
	if i+1 < len(anchors) {
		blockEnd = anchors[i+1].lineIdx
	}

	line := lines[a.lineIdx]
	inline := strings.TrimSpace(line[:a.matchStart] + " " + line[a.matchEnd:])
	inline = cleanRoleLine(inline)

	// 锚点前最近的两个候选行
	var prevs []string
	var prevIdx []int
	for j := a.lineIdx - 1; j >= blockStart && len(prevs) < 2; j-- {
		if cand := cleanRoleLine(lines[j]); looksLikeRoleLine(cand) {
			prevs = append(prevs, cand)
			prevIdx = append(prevIdx, j)
		}
	}

	switch {
	case inline != "":
		title, company := splitTitleCompany(inline)
		if company == "" && len(prevs) > 0 {
			return title, prevs[0], prevIdx[:1]
		}
		return title, company, nil
	case len(prevs) > 0:
		title, company := splitTitleCompany(prevs[0])
		if company == "" && len(prevs) > 1 {
			// "职位\n公司\n日期" 的三行布局里最近的行是公司，按职位词定方向
			if !containsJobTitleWord(title) && containsJobTitleWord(prevs[1]) {
				return prevs[1], title, prevIdx
			}
			return title, prevs[1], prevIdx
		}
		return title, company, prevIdx[:1]
	default:
		// 日期行在块首，只看锚点后第一个非空行
		for j := a.lineIdx + 1; j < blockEnd; j++ {
			cand := cleanRoleLine(lines[j])
			if cand == "" {
				continue
			}
			if looksLikeRoleLine(cand) {
				title, company := splitTitleCompany(cand)
				return title, company, []int{j}
			}
			break
		}
		return "", "", nil
	}
}

// splitTitleCompany 把 "Software Engineer at Google" 这类写法拆成职位和公司
// "at/@" 左侧恒为职位；其他分隔符按哪一侧含职位词判断方向
func splitTitleCompany(s string) (string, string) {
	if loc := atSeparatorRegex.FindStringIndex(s); loc != nil {
		return strings.TrimSpace(s[:loc[0]]), strings.TrimSpace(s[loc[1]:])
	}

	for _, sep := range []string{" @ ", " | ", " – ", " — ", " - ", ", "} {
		idx := strings.Index(s, sep)
		if idx <= 0 || idx+len(sep) >= len(s) {
			continue
		}
		left := strings.TrimSpace(s[:idx])
		right := strings.TrimSpace(s[idx+len(sep):])
		if left == "" || right == "" {
			continue
		}
		if !containsJobTitleWord(left) && containsJobTitleWord(right) {
			return right, left
		}
		return left, right
	}

	return strings.TrimSpace(s), ""
}

func containsJobTitleWord(s string) bool {
	for _, tok := range strings.Fields(s) {
		if jobTitleWords[strings.ToLower(strings.Trim(tok, ",.;:"))] {
			return true
		}
	}
	return false
}

// cleanRoleLine 去掉职位候选行首尾的装饰符
func cleanRoleLine(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "()[]|•·*—– \t")
	s = strings.TrimSpace(s)
	return strings.Trim(s, ",-")
}

// looksLikeRoleLine 职位/公司候选必须是不含链接、不是章节标题的短行
func looksLikeRoleLine(s string) bool {
	if s == "" || len(s) > 80 || len(strings.Fields(s)) > 10 {
		return false
	}
	if IsRecognizedHeading(s) {
		return false
	}
	return !emailRegex.MatchString(s) && !urlRegex.MatchString(s)
}

// RenderDuration 把月数渲染为人读的时长
// 单数用单数形式，为零的部分省略，完全为零时输出 "0 years and 0 months"
func RenderDuration(totalMonths int) string {
	if totalMonths <= 0 {
		return "0 years and 0 months"
	}
	years := totalMonths / 12
	months := totalMonths % 12
	switch {
	case years > 0 && months > 0:
		return fmt.Sprintf("%s and %s", pluralUnit(years, "year"), pluralUnit(months, "month"))
	case years > 0:
		return pluralUnit(years, "year")
	default:
		return pluralUnit(months, "month")
	}
}

func pluralUnit(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
