package processor

import (
	"log"
	"time"
)

// ComponentOpt 组件选项类型，仅改变 Components 结构体内的字段
type ComponentOpt func(*Components)

// SettingOpt 设置选项类型，仅改变 Settings 结构体内的字段
type SettingOpt func(*Settings)

// ----- 组件选项 -----

// WithcompTextextractor 设置文本提取器组件
func WithcompTextextractor(extractor TextExtractor) ComponentOpt {
	return func(c *Components) {
		c.TextExtractor = extractor
	}
}

// WithcompSegmenter 设置章节切分器组件
func WithcompSegmenter(segmenter SectionSegmenter) ComponentOpt {
	return func(c *Components) {
		c.Segmenter = segmenter
	}
}

// WithcompContactextractor 设置联系信息提取器组件
func WithcompContactextractor(extractor ContactExtractor) ComponentOpt {
	return func(c *Components) {
		c.Contacts = extractor
	}
}

// WithcompSkillextractor 设置技能提取器组件
func WithcompSkillextractor(extractor SkillExtractor) ComponentOpt {
	return func(c *Components) {
		c.Skills = extractor
	}
}

// WithcompExperienceextractor 设置工作经历提取器组件
func WithcompExperienceextractor(extractor ExperienceExtractor) ComponentOpt {
	return func(c *Components) {
		c.Experience = extractor
	}
}

// WithcompEducationextractor 设置教育经历提取器组件
func WithcompEducationextractor(extractor EducationExtractor) ComponentOpt {
	return func(c *Components) {
		c.Education = extractor
	}
}

// ----- 设置选项 -----

// WithsetLogger 设置日志记录器
func WithsetLogger(logger *log.Logger) SettingOpt {
	return func(s *Settings) {
		s.Logger = logger
	}
}

// WithsetDebug 设置调试模式
func WithsetDebug(debug bool) SettingOpt {
	return func(s *Settings) {
		s.Debug = debug
	}
}

// WithsetClock 设置解析参考时钟
// Present/Current 的折算以它为准；测试中注入固定时钟以获得确定性输出
func WithsetClock(now func() time.Time) SettingOpt {
	return func(s *Settings) {
		s.Clock = now
	}
}

// WithsetWorkers 设置批量解析的并发度
func WithsetWorkers(n int) SettingOpt {
	return func(s *Settings) {
		if n > 0 {
			s.Workers = n
		}
	}
}

// WithsetDocTimeout 设置单个文档的处理时间预算
func WithsetDocTimeout(d time.Duration) SettingOpt {
	return func(s *Settings) {
		if d > 0 {
			s.DocTimeout = d
		}
	}
}
