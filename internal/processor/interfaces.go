package processor

import (
	"context"

	"resume-parse-go/internal/types"
)

//
// 文本提取相关接口
//

// TextExtractor 文本提取器接口
// 内部按格式分发并处理引擎链回退，对外只有一个提取入口
type TextExtractor interface {
	// Extract 从原始文档提取文本
	// 参数：
	// - ctx: 上下文，超时与取消经由它传递
	// - doc: 原始文档（字节内容 + 文件名提示）
	// 返回：
	// - 提取结果（实际使用的引擎、文本、页数）
	// - 错误信息（格式不识别、文件损坏、无可用文本）
	Extract(ctx context.Context, doc types.RawDocument) (types.ExtractedText, error)
}

//
// 章节切分相关接口
//

// SectionSegmenter 章节切分器接口
type SectionSegmenter interface {
	// Segment 将归一化文本切分为有序的章节序列
	Segment(text string) []types.DocumentSection
}

//
// 实体提取相关接口
// 各提取器都接受"对应章节文本 + 全文"两个输入：
// 章节缺失时提取器自行回退到全文扫描，这是必须的优雅降级
//

// ContactExtractor 联系信息提取器接口
type ContactExtractor interface {
	// Extract 从头部区域（回退全文）提取联系信息
	Extract(header, fullText string) types.PersonalInfo
}

// SkillExtractor 技能提取器接口
type SkillExtractor interface {
	// Extract 提取去重后的规范技能名，按首次出现顺序
	Extract(skillsSection, fullText string) []string
}

// ExperienceExtractor 工作经历提取器接口
type ExperienceExtractor interface {
	// Extract 提取结构化经历条目并计算总时长
	Extract(experienceSection, fullText string) types.ExperienceSummary
}

// EducationExtractor 教育经历提取器接口
type EducationExtractor interface {
	// Extract 按文档顺序提取教育经历条目
	Extract(educationSection, fullText string) []types.EducationEntry
}
