package parser

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/nyaruka/phonenumbers"

	"resume-parse-go/internal/constants"
	"resume-parse-go/internal/types"
	"resume-parse-go/pkg/utils"
)

// 联系信息的识别模式，进程启动时编译一次
var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]+`)
	phoneRegex = regexp.MustCompile(`\+?\d[\d\-\s()]{8,}\d`)
	urlRegex   = regexp.MustCompile(`(?i)(https?://)?(www\.)?(linkedin|github)\.com/[a-zA-Z0-9/_-]+`)

	linkedinURLRegex   = regexp.MustCompile(`(?i)(https?://)?(www\.)?linkedin\.com/in/[a-zA-Z0-9_-]+`)
	linkedinLabelRegex = regexp.MustCompile(`(?i)linkedin[:\s]+([a-zA-Z0-9_-]+)`)
	githubURLRegex     = regexp.MustCompile(`(?i)(https?://)?(www\.)?github\.com/[a-zA-Z0-9_-]+`)
	githubLabelRegex   = regexp.MustCompile(`(?i)github[:\s]+([a-zA-Z0-9_-]+)`)

	// "City, State" 形态：两段首字母大写的词组，逗号分隔
	cityStateRegex = regexp.MustCompile(`\b([A-Z][a-z]+(?: [A-Z][a-z]+)*), ?([A-Z]{2}\b|[A-Z][a-z]+(?: [A-Z][a-z]+)*)`)
	// 带标签的位置行
	locationLabelRegex = regexp.MustCompile(`(?i)\b(address|location|city|residence|place)\s*[:\-]\s*([A-Za-z][A-Za-z ,]{1,49})`)

	// 带标签的姓名行
	nameLabelRegex = regexp.MustCompile(`(?i)^[\s•*●\-–—]*(?:name|full\s*name)\s*[:\-–—]\s*(.+)$`)

	nonDigitRegex = regexp.MustCompile(`\D`)
)

// 永远不当作姓名的行（含无空格的OCR粘连变体）
var nameSkipPhrases = map[string]bool{
	"resume":           true,
	"curriculum vitae": true,
	"curriculumvitae":  true,
	"cv":               true,
	"bio-data":         true,
	"biodata":          true,
}

// 职位词出现即否决姓名候选
var jobTitleWords = map[string]bool{
	"senior": true, "junior": true, "lead": true, "software": true, "engineer": true,
	"developer": true, "manager": true, "director": true, "analyst": true,
	"specialist": true, "consultant": true, "administrator": true, "coordinator": true,
	"assistant": true, "associate": true, "executive": true, "officer": true,
	"president": true, "head": true, "chief": true, "test": true, "quality": true,
	"assurance": true, "designer": true, "architect": true, "technician": true,
	"support": true, "professional": true, "experience": true, "intern": true,
	"trainee": true, "dev": true, "qa": true, "sdet": true,
}

// ContactExtractor 联系信息提取器
// 先扫描头部区域，未命中再回退到全文
type ContactExtractor struct {
	defaultRegion string // 无国家码时电话解析采用的地区
}

// NewContactExtractor 创建联系信息提取器
func NewContactExtractor(defaultRegion string) *ContactExtractor {
	if defaultRegion == "" {
		defaultRegion = "US"
	}
	return &ContactExtractor{defaultRegion: defaultRegion}
}

// Extract 从头部区域与全文中提取联系信息
// 所有字段都是可选的：找不到即为nil，绝不猜测
func (c *ContactExtractor) Extract(header, fullText string) types.PersonalInfo {
	// 头部为空时直接用全文（未识别出任何标题的文档）
	primary := header
	if strings.TrimSpace(primary) == "" {
		primary = fullText
	}

	info := types.PersonalInfo{
		Name:     utils.StringPtr(c.extractName(primary)),
		Email:    utils.StringPtr(firstMatch(emailRegex, primary, fullText)),
		Phone:    utils.StringPtr(c.extractPhone(primary, fullText)),
		LinkedIn: utils.StringPtr(extractProfileURL(linkedinURLRegex, linkedinLabelRegex, "https://www.linkedin.com/in/", primary, fullText)),
		GitHub:   utils.StringPtr(extractProfileURL(githubURLRegex, githubLabelRegex, "https://github.com/", primary, fullText)),
		Location: utils.StringPtr(extractLocation(primary)),
	}
	return info
}

// firstMatch 依次在各段文本中查找第一个匹配
func firstMatch(re *regexp.Regexp, texts ...string) string {
	for _, text := range texts {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

// extractPhone 提取并归一化电话号码
// 候选必须含10-15位数字；能通过号码库校验的输出E.164，
// 否则退化为只保留数字和开头的"+"
func (c *ContactExtractor) extractPhone(texts ...string) string {
	for _, text := range texts {
		for _, raw := range phoneRegex.FindAllString(text, -1) {
			cleaned := strings.TrimSpace(raw)
			digits := nonDigitRegex.ReplaceAllString(cleaned, "")
			if len(digits) < 10 || len(digits) > 15 {
				continue
			}

			// 默认地区解析
			if num, err := phonenumbers.Parse(cleaned, c.defaultRegion); err == nil && phonenumbers.IsValidNumber(num) {
				return phonenumbers.Format(num, phonenumbers.E164)
			}
			// 自带国家码的号码无需地区提示
			if strings.HasPrefix(cleaned, "+") {
				if num, err := phonenumbers.Parse(cleaned, ""); err == nil && phonenumbers.IsValidNumber(num) {
					return phonenumbers.Format(num, phonenumbers.E164)
				}
			}

			// 库校验失败但位数合理：按保留"+"的方式归一化
			if strings.HasPrefix(cleaned, "+") {
				return "+" + digits
			}
			return digits
		}
	}
	return ""
}

// extractProfileURL 提取个人主页链接
// 先找完整URL（缺协议时补https://），再找"标签: 用户名"的写法
func extractProfileURL(urlRe, labelRe *regexp.Regexp, profilePrefix string, texts ...string) string {
	for _, text := range texts {
		if m := urlRe.FindString(text); m != "" {
			if !strings.HasPrefix(strings.ToLower(m), "http") {
				return "https://" + m
			}
			return m
		}
	}
	for _, text := range texts {
		if m := labelRe.FindStringSubmatch(text); len(m) > 1 {
			username := m[1]
			// 排除 "linkedin com ..." 之类的误捕获
			if strings.EqualFold(username, "com") || strings.EqualFold(username, "profile") {
				continue
			}
			return profilePrefix + username
		}
	}
	return ""
}

// extractLocation 在头部附近查找 "City, State" 形态或带标签的位置行
func extractLocation(text string) string {
	lines := SplitLines(text)
	limit := 15
	if len(lines) < limit {
		limit = len(lines)
	}

	for _, line := range lines[:limit] {
		// 明显不是位置的行：邮箱、电话、链接
		if emailRegex.MatchString(line) || urlRegex.MatchString(line) || phoneRegex.MatchString(line) {
			continue
		}

		if m := locationLabelRegex.FindStringSubmatch(line); len(m) > 2 {
			loc := strings.TrimSpace(strings.Trim(m[2], " ,"))
			if loc != "" && len(loc) <= 50 {
				return loc
			}
		}
		if m := cityStateRegex.FindStringSubmatch(line); len(m) > 2 {
			loc := m[1] + ", " + m[2]
			if len(loc) <= 50 {
				return loc
			}
		}
	}
	return ""
}

// extractName 姓名启发式：
// 扫描开头的若干非空行，优先选取2-4个首字母大写词组成的短行；
// 含数字、邮箱、电话、链接、职位词或章节标题的行一律否决；
// 其次接受 "Name: xxx" 的标签写法；都不符合时姓名缺失，绝不猜测
func (c *ContactExtractor) extractName(text string) string {
	var lines []string
	for _, ln := range SplitLines(text) {
		if strings.TrimSpace(ln) != "" {
			lines = append(lines, strings.TrimSpace(ln))
		}
		if len(lines) >= constants.NameScanMaxLines*2 {
			break
		}
	}
	if len(lines) == 0 {
		return ""
	}

	scanLimit := constants.NameScanMaxLines
	if len(lines) < scanLimit {
		scanLimit = len(lines)
	}

	for _, line := range lines[:scanLimit] {
		cand := cleanNameCandidate(line)
		if isNameShape(cand) {
			return cand
		}
	}

	// 标签写法，如 "Name: Jane Doe"
	for _, line := range lines {
		if m := nameLabelRegex.FindStringSubmatch(line); len(m) > 1 {
			cand := cleanNameCandidate(m[1])
			if isNameShape(cand) {
				return cand
			}
		}
	}

	return ""
}

// cleanNameCandidate 去掉姓名候选行首尾的装饰符并压缩空白
func cleanNameCandidate(line string) string {
	cand := strings.TrimSpace(line)
	cand = strings.Trim(cand, "•|-_—:;* ")
	cand = multiSpaceRegex.ReplaceAllString(cand, " ")
	return cand
}

// isNameShape 姓名候选的最终校验
func isNameShape(cand string) bool {
	if cand == "" || len(cand) > 60 {
		return false
	}
	if nameSkipPhrases[strings.ToLower(cand)] || nameSkipPhrases[strings.ReplaceAll(strings.ToLower(cand), " ", "")] {
		return false
	}
	if emailRegex.MatchString(cand) || phoneRegex.MatchString(cand) || urlRegex.MatchString(cand) {
		return false
	}
	if IsRecognizedHeading(cand) {
		return false
	}
	if strings.ContainsAny(cand, "0123456789/\\@#%^*_+=[]{}<>") {
		return false
	}

	tokens := strings.Fields(cand)
	if len(tokens) < 2 || len(tokens) > 4 {
		return false
	}
	for _, tok := range tokens {
		if jobTitleWords[strings.ToLower(tok)] {
			return false
		}
		if !isCapitalizedToken(tok) {
			return false
		}
	}
	return true
}

// isCapitalizedToken 词形校验：首字母大写（Jane）、全大写（DOE）或缩写（J.）
func isCapitalizedToken(tok string) bool {
	tok = strings.Trim(tok, ".'-")
	if tok == "" {
		return false
	}
	runes := []rune(tok)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
