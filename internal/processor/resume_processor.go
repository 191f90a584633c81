package processor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"resume-parse-go/internal/config"
	"resume-parse-go/internal/constants"
	parser2 "resume-parse-go/internal/parser"
	"resume-parse-go/internal/tracing"
	"resume-parse-go/internal/types"
	resumeparser "resume-parse-go/pkg/parser"
	"resume-parse-go/pkg/taxonomy"
	"resume-parse-go/pkg/utils"
)

// tracerName 本包产生的span统一挂在该tracer下
// 只打span不装SDK，导出器由嵌入方的应用进程负责安装
const tracerName = "resume-parse-go/internal/processor"

// Components 聚合管道的全部功能组件依赖，便于集中管理和测试替换
type Components struct {
	TextExtractor TextExtractor       // 多引擎文本提取
	Segmenter     SectionSegmenter    // 章节切分
	Contacts      ContactExtractor    // 联系信息提取
	Skills        SkillExtractor      // 技能提取
	Experience    ExperienceExtractor // 工作经历提取与时长计算
	Education     EducationExtractor  // 教育经历提取
}

// Settings 纯配置项，不包含任何业务逻辑组件
type Settings struct {
	Logger     *log.Logger      // 日志记录器
	Debug      bool             // 是否开启调试模式
	Clock      func() time.Time // 解析参考时钟，Present/Current 以此折算
	Workers    int              // 批量解析并发度
	DocTimeout time.Duration    // 单文档时间预算
}

// ResumeProcessor 简历解析管道
// 数据严格单向流动：字节 → 原始文本 → 归一化文本 → 章节 → 实体 → 聚合结果
// 除只读的技能词表外无共享可变状态，单次解析是输入字节的纯函数
type ResumeProcessor struct {
	Components Components
	Settings   Settings
}

// NewResumeProcessor 按配置装配解析管道
// 默认组件可通过 ComponentOpt 逐个替换（测试中换成mock），
// SettingOpt 在组件装配之前生效，保证注入的时钟能传进默认的经历提取器
func NewResumeProcessor(ctx context.Context, cfg *config.Config, tax *taxonomy.Taxonomy, compOpts []ComponentOpt, setOpts []SettingOpt) (*ResumeProcessor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}
	if tax == nil {
		return nil, fmt.Errorf("技能词表不能为空")
	}

	p := &ResumeProcessor{
		Settings: Settings{
			Logger:     log.New(os.Stderr, "[简历解析] ", log.LstdFlags),
			Clock:      time.Now,
			Workers:    cfg.Batch.Workers,
			DocTimeout: cfg.ExtractionTimeoutDuration(),
		},
	}
	if p.Settings.Workers <= 0 {
		p.Settings.Workers = constants.DefaultBatchWorkers
	}

	for _, opt := range setOpts {
		opt(&p.Settings)
	}

	extractor, err := parser2.NewTextExtractor(ctx,
		parser2.WithMinTextLength(cfg.Parser.MinTextLength),
		parser2.WithMinPrintableRatio(cfg.Parser.MinPrintableRatio),
		parser2.WithExtractorLogger(p.Settings.Logger),
	)
	if err != nil {
		return nil, fmt.Errorf("创建文本提取器失败: %w", err)
	}

	segmenter, err := resumeparser.NewSectionSegmenter(resumeparser.SegmenterConfig{
		CustomSectionRegexMap: cfg.Parser.CustomSectionRegexMap,
	})
	if err != nil {
		return nil, fmt.Errorf("创建章节切分器失败: %w", err)
	}

	p.Components = Components{
		TextExtractor: extractor,
		Segmenter:     segmenter,
		Contacts:      resumeparser.NewContactExtractor(cfg.Phone.DefaultRegion),
		Skills:        resumeparser.NewSkillExtractor(tax),
		Experience:    resumeparser.NewExperienceExtractor(p.Settings.Clock),
		Education:     resumeparser.NewEducationExtractor(),
	}

	for _, opt := range compOpts {
		opt(&p.Components)
	}

	return p, nil
}

// Parse 解析单个文档，返回结构化简历或类型化失败
// 实体层面的缺失（没找到邮箱、没识别出技能）不是错误，只有提取阶段失败才报错
func (p *ResumeProcessor) Parse(ctx context.Context, doc types.RawDocument) (*types.ParsedResume, error) {
	docID := newDocumentID()

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "ResumeProcessor.Parse", trace.WithAttributes(
		attribute.String("document.id", docID),
		attribute.String("document.filename", tracing.SafeAttributeValue("document.filename", doc.Filename, tracing.MaxFilenameLength)),
		attribute.Int64("document.size", doc.Size),
		attribute.String("document.md5", utils.CalculateMD5(doc.Content)),
	))
	defer span.End()

	extracted, err := p.extractStage(ctx, tracer, docID, doc)
	if err != nil {
		return nil, err
	}

	resume := p.entityStage(ctx, tracer, extracted.Text)
	resume.Metadata = types.ResumeMetadata{
		Filename:         doc.Filename,
		FileSize:         doc.Size,
		ProcessingStatus: constants.ProcessingStatusSuccess,
	}

	span.SetAttributes(
		attribute.String("extract.engine", extracted.EngineUsed),
		attribute.Int("extract.text_length", len(extracted.Text)),
		attribute.Int("entities.skills", len(resume.Skills)),
		attribute.Int("entities.experience", len(resume.Experience.Entries)),
		attribute.Int("entities.education", len(resume.Education)),
	)

	if p.Settings.Debug {
		p.Settings.Logger.Printf("解析完成 [%s]: 引擎=%s 技能=%d 经历=%d 教育=%d",
			docID, extracted.EngineUsed, len(resume.Skills),
			len(resume.Experience.Entries), len(resume.Education))
	}

	return resume, nil
}

// FailedResume 构造解析失败文档的占位结果
// 元数据标记为失败，实体字段全部为空（切片保持非nil，序列化为空数组而非null）
func FailedResume(doc types.RawDocument) *types.ParsedResume {
	return &types.ParsedResume{
		Skills:          []string{},
		TotalExperience: resumeparser.RenderDuration(0),
		Experience: types.ExperienceSummary{
			Entries: []types.ExperienceEntry{},
		},
		Education: []types.EducationEntry{},
		Metadata: types.ResumeMetadata{
			Filename:         doc.Filename,
			FileSize:         doc.Size,
			ProcessingStatus: constants.ProcessingStatusFailed,
		},
	}
}

// extractStage 提取阶段：格式识别 + 多引擎文本提取
// 把提取层的基础错误映射为对外的错误类别；上下文超时优先判定为超时错误
func (p *ResumeProcessor) extractStage(ctx context.Context, tracer trace.Tracer, docID string, doc types.RawDocument) (types.ExtractedText, error) {
	ctx, span := tracer.Start(ctx, "ResumeProcessor.extract")
	defer span.End()

	extracted, err := p.Components.TextExtractor.Extract(ctx, doc)
	if err == nil {
		return extracted, nil
	}

	var mapped error
	var errType tracing.ErrorType
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		mapped = NewExtractionTimeoutError(docID, doc.Filename, err.Error())
		errType = tracing.ErrorTypeTimeout
	case errors.Is(err, parser2.ErrUnknownFormat):
		mapped = NewUnsupportedFormatError(docID, doc.Filename, err.Error())
		errType = tracing.ErrorTypeFormat
	case errors.Is(err, parser2.ErrNoUsableText):
		mapped = NewNoTextExtractedError(docID, doc.Filename, err.Error())
		errType = tracing.ErrorTypeExtraction
	case errors.Is(err, parser2.ErrEngineFailure):
		mapped = NewCorruptFileError(docID, doc.Filename, err.Error())
		errType = tracing.ErrorTypeExtraction
	default:
		mapped = NewCorruptFileError(docID, doc.Filename, err.Error())
		errType = tracing.ErrorTypeInternal
	}

	// 文件名通常含候选人姓名，进span属性前做掩码
	tracing.RecordErrorWithInfo(span, mapped, errType,
		attribute.String("document.filename", tracing.SafeAttributeValue("document.filename", doc.Filename, tracing.MaxFilenameLength)),
	)

	p.Settings.Logger.Printf("提取失败 [%s] %s: %v", docID, tracing.SafeFilename(doc.Filename), mapped)
	return types.ExtractedText{}, mapped
}

// entityStage 实体阶段：归一化、切章节、跑全部实体提取器并聚合
// 章节缺失时各提取器自行回退到全文扫描，这里只负责喂入和聚合
func (p *ResumeProcessor) entityStage(ctx context.Context, tracer trace.Tracer, rawText string) *types.ParsedResume {
	_, span := tracer.Start(ctx, "ResumeProcessor.entities")
	defer span.End()

	normalized := resumeparser.NormalizeText(rawText)
	sections := p.Components.Segmenter.Segment(normalized)

	header := resumeparser.HeaderText(sections)
	summary := resumeparser.SectionText(sections, types.SectionSummary)
	skillsText := resumeparser.SectionText(sections, types.SectionSkills)
	experienceText := resumeparser.SectionText(sections, types.SectionExperience)
	educationText := resumeparser.SectionText(sections, types.SectionEducation)

	experience := p.Components.Experience.Extract(experienceText, normalized)

	return &types.ParsedResume{
		PersonalInfo:    p.Components.Contacts.Extract(header, normalized),
		Skills:          p.Components.Skills.Extract(skillsText, normalized),
		TotalExperience: resumeparser.RenderDuration(experience.TotalDuration.TotalMonths()),
		Summary:         strings.TrimSpace(summary),
		Experience:      experience,
		Education:       p.Components.Education.Extract(educationText, normalized),
	}
}

// newDocumentID 为本次解析生成V7文档标识，用于日志与追踪关联
func newDocumentID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// V7只在系统时钟不可用时才会失败，退回V4
		return uuid.Must(uuid.NewV4()).String()
	}
	return id.String()
}
