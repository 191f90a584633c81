package types

import (
	"strings"
)

// SectionKind 表示简历章节类型
type SectionKind string

const (
	// SectionHeader 文档头部（联系信息所在的区域，第一个识别标题之前的内容）
	SectionHeader SectionKind = "HEADER"
	// SectionSummary 个人简介/求职目标章节
	SectionSummary SectionKind = "SUMMARY"
	// SectionSkills 技能章节
	SectionSkills SectionKind = "SKILLS"
	// SectionExperience 工作经历章节
	SectionExperience SectionKind = "EXPERIENCE"
	// SectionEducation 教育经历章节
	SectionEducation SectionKind = "EDUCATION"
	// SectionOther 识别到标题但不属于以上类别的章节（项目、证书、语言等）
	SectionOther SectionKind = "OTHER"
)

// RawDocument 管道入口的不可变输入值
// 仅归当前一次解析调用所有，提取完成后即丢弃
type RawDocument struct {
	Content           []byte // 原始文件字节
	Filename          string // 文件名（扩展名仅作为格式提示，非权威）
	DeclaredExtension string // 声明的扩展名，可为空
	Size              int64  // 调用方声明的文件大小
}

// Ext 返回用于格式判断的扩展名：优先使用声明的扩展名，否则从文件名推断
func (d RawDocument) Ext() string {
	if d.DeclaredExtension != "" {
		return strings.ToLower(strings.TrimPrefix(d.DeclaredExtension, "."))
	}
	if idx := strings.LastIndex(d.Filename, "."); idx >= 0 && idx < len(d.Filename)-1 {
		return strings.ToLower(d.Filename[idx+1:])
	}
	return ""
}

// ExtractedText 文本提取结果，每个文档只产生一次
type ExtractedText struct {
	EngineUsed string // 实际产出文本的引擎名称
	Text       string // 提取的原始文本
	PageCount  *int   // 页数（仅部分引擎可提供）
}

// DocumentSection 归一化文本中一个带标签的连续区域
// 空章节表示"未找到"，不是错误
type DocumentSection struct {
	Kind      SectionKind // 章节类型
	Title     string      // 命中的标题行原文（头部区域为空）
	Text      string      // 章节内容
	StartLine int         // 起始行号（含，基于归一化文本）
	EndLine   int         // 结束行号（不含）
}

// PersonalInfo 联系信息，所有字段可选
// 缺失即为nil，序列化为null，绝不用空字符串冒充"未找到"
type PersonalInfo struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	LinkedIn *string `json:"linkedin"`
	GitHub   *string `json:"github"`
}

// Duration 规范化的时长表示，恒为非负
type Duration struct {
	Years  int `json:"years"`
	Months int `json:"months"`
}

// TotalMonths 返回总月数
func (d Duration) TotalMonths() int {
	return d.Years*12 + d.Months
}

// ExperienceEntry 一段工作经历
// StartDate/EndDateOrPresent 保留简历中的日期原文，Months 是折算后的月数
type ExperienceEntry struct {
	Title            string `json:"title,omitempty"`
	Company          string `json:"company,omitempty"`
	StartDate        string `json:"start_date"`
	EndDateOrPresent string `json:"end_date_or_present"`
	Description      string `json:"description,omitempty"`
	Months           int    `json:"duration_months,omitempty"`
	Rendered         string `json:"duration_rendered,omitempty"`
}

// ExperienceSummary 工作经历汇总
// TotalDuration 为各段独立求和，重叠经历不做去重（这是明确的策略，不是缺陷）
type ExperienceSummary struct {
	Entries       []ExperienceEntry `json:"entries"`
	TotalDuration Duration          `json:"total_duration"`
}

// EducationEntry 一条教育经历
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
}

// ResumeMetadata 处理元数据，附加在每个解析结果上
type ResumeMetadata struct {
	Filename         string `json:"filename"`
	FileSize         int64  `json:"file_size"`
	ProcessingStatus string `json:"processing_status"` // "success" 或 "failed"
}

// ParsedResume 最终的结构化解析结果
// 构造完成后不可变，返回给调用方后引擎不再持有
type ParsedResume struct {
	PersonalInfo    PersonalInfo      `json:"personalInfo"`
	Skills          []string          `json:"skills"`
	TotalExperience string            `json:"total_experience"`
	Summary         string            `json:"summary"`
	Experience      ExperienceSummary `json:"experience"`
	Education       []EducationEntry  `json:"education"`
	Metadata        ResumeMetadata    `json:"metadata"`
}

// BatchItemResult 批量解析中单个文档的结果
// 无论该文档成功与否，都在输出列表中占据与输入相同的位置
type BatchItemResult struct {
	Filename string        `json:"filename"`
	Success  bool          `json:"success"`
	Data     *ParsedResume `json:"data,omitempty"`
	Error    string        `json:"error,omitempty"`
}
