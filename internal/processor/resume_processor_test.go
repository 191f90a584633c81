package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-parse-go/internal/config"
	parser2 "resume-parse-go/internal/parser"
	"resume-parse-go/internal/types"
	"resume-parse-go/pkg/taxonomy"
)

// newTestProcessor 用默认配置和内置技能词表装配测试管道
// 时钟统一冻结在 2024-06-15，Present 的折算在所有用例中一致
func newTestProcessor(t *testing.T, compOpts []ComponentOpt, setOpts []SettingOpt) *ResumeProcessor {
	t.Helper()

	tax, err := taxonomy.Default()
	require.NoError(t, err, "内置技能词表不应加载失败")

	frozen := func() time.Time {
		return time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	}
	setOpts = append([]SettingOpt{WithsetClock(frozen)}, setOpts...)

	p, err := NewResumeProcessor(context.Background(), config.DefaultConfig(), tax, compOpts, setOpts)
	require.NoError(t, err, "装配解析管道不应失败")
	return p
}

func txtDoc(filename, content string) types.RawDocument {
	return types.RawDocument{
		Content:  []byte(content),
		Filename: filename,
		Size:     int64(len(content)),
	}
}

// TestParseMinimalResume 最小可用简历：没有任何章节标题也要产出结构化结果
func TestParseMinimalResume(t *testing.T) {
	p := newTestProcessor(t, nil, nil)

	resume, err := p.Parse(context.Background(), txtDoc("jane.txt", "Jane Doe\njane@x.com\n555-123-4567"))
	require.NoError(t, err)

	require.NotNil(t, resume.PersonalInfo.Name)
	assert.Equal(t, "Jane Doe", *resume.PersonalInfo.Name)
	require.NotNil(t, resume.PersonalInfo.Email)
	assert.Equal(t, "jane@x.com", *resume.PersonalInfo.Email)
	require.NotNil(t, resume.PersonalInfo.Phone)
	assert.Equal(t, "5551234567", *resume.PersonalInfo.Phone, "号码库校验不通过时退化为纯数字")

	assert.NotNil(t, resume.Skills, "技能缺失应为空数组而非null")
	assert.Empty(t, resume.Skills)
	assert.Empty(t, resume.Experience.Entries)
	assert.Equal(t, "0 years and 0 months", resume.TotalExperience)
	assert.Equal(t, "success", resume.Metadata.ProcessingStatus)
	assert.Equal(t, "jane.txt", resume.Metadata.Filename)
}

// 一份结构完整的简历正文，贯穿全管道的端到端断言都用它
const fullResumeText = `John A. Smith
San Francisco, CA
john.smith@example.com
+1 (415) 555-2671
linkedin.com/in/johnsmith
github.com/johnsmith

Summary
Backend engineer with a focus on distributed systems.

Skills
Go, Python, Docker, Kubernetes, PostgreSQL

Experience
Senior Software Engineer
Acme Corp
Jan 2020 - Dec 2021
Led the payments platform team.

Software Engineer
Globex Inc
Jun 2015 - Mar 2020
Built internal tooling.

Education
BS in Computer Science, Stanford University, 2014
`

// TestParseFullResume 完整简历的端到端解析
func TestParseFullResume(t *testing.T) {
	p := newTestProcessor(t, nil, nil)

	resume, err := p.Parse(context.Background(), txtDoc("john.txt", fullResumeText))
	require.NoError(t, err)

	// 联系信息
	require.NotNil(t, resume.PersonalInfo.Name)
	assert.Equal(t, "John A. Smith", *resume.PersonalInfo.Name)
	require.NotNil(t, resume.PersonalInfo.Email)
	assert.Equal(t, "john.smith@example.com", *resume.PersonalInfo.Email)
	require.NotNil(t, resume.PersonalInfo.Phone)
	assert.Equal(t, "+14155552671", *resume.PersonalInfo.Phone, "合法号码应输出E.164")
	require.NotNil(t, resume.PersonalInfo.Location)
	assert.Equal(t, "San Francisco, CA", *resume.PersonalInfo.Location)
	require.NotNil(t, resume.PersonalInfo.LinkedIn)
	assert.Equal(t, "https://linkedin.com/in/johnsmith", *resume.PersonalInfo.LinkedIn)
	require.NotNil(t, resume.PersonalInfo.GitHub)
	assert.Equal(t, "https://github.com/johnsmith", *resume.PersonalInfo.GitHub)

	// 简介与技能
	assert.Equal(t, "Backend engineer with a focus on distributed systems.", resume.Summary)
	assert.Equal(t, []string{"Go", "Python", "Docker", "Kubernetes", "PostgreSQL"}, resume.Skills, "技能应按首次出现顺序输出规范名")

	// 工作经历：23 + 57 = 80 个月
	require.Len(t, resume.Experience.Entries, 2)
	first := resume.Experience.Entries[0]
	assert.Equal(t, "Senior Software Engineer", first.Title)
	assert.Equal(t, "Acme Corp", first.Company)
	assert.Equal(t, "Jan 2020", first.StartDate)
	assert.Equal(t, "Dec 2021", first.EndDateOrPresent)
	assert.Equal(t, 23, first.Months)
	second := resume.Experience.Entries[1]
	assert.Equal(t, "Software Engineer", second.Title)
	assert.Equal(t, "Globex Inc", second.Company)
	assert.Equal(t, 57, second.Months)
	assert.Equal(t, "6 years and 8 months", resume.TotalExperience)

	// 教育经历
	require.Len(t, resume.Education, 1)
	assert.Equal(t, "BS in Computer Science", resume.Education[0].Degree)
	assert.Equal(t, "Stanford University", resume.Education[0].Institution)
	assert.Equal(t, "2014", resume.Education[0].Year)

	// 元数据
	assert.Equal(t, "success", resume.Metadata.ProcessingStatus)
	assert.Equal(t, int64(len(fullResumeText)), resume.Metadata.FileSize)
}

// TestParseDeterministic 冻结时钟下同一输入两次解析产出字节一致的JSON
func TestParseDeterministic(t *testing.T) {
	p := newTestProcessor(t, nil, nil)

	doc := txtDoc("cur.txt", "Jane Doe\nEngineer at Initech\nJan 2021 - Present\nRuns the data platform.")

	first, err := p.Parse(context.Background(), doc)
	require.NoError(t, err)
	second, err := p.Parse(context.Background(), doc)
	require.NoError(t, err)

	// Jan 2021 到 2024-06（冻结）为 41 个月
	assert.Equal(t, "3 years and 5 months", first.TotalExperience)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON, "两次解析的序列化结果应逐字节一致")
}

// TestParseUnsupportedFormat 认不出的格式报不支持错误，并携带文件名
func TestParseUnsupportedFormat(t *testing.T) {
	p := newTestProcessor(t, nil, nil)

	_, err := p.Parse(context.Background(), types.RawDocument{
		Filename: "legacy.doc",
		Content:  []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "legacy.doc", parseErr.Filename)
	assert.NotEmpty(t, parseErr.DocumentID)
}

// TestParseNoTextExtracted 全空白内容报无可用文本
func TestParseNoTextExtracted(t *testing.T) {
	p := newTestProcessor(t, nil, nil)

	_, err := p.Parse(context.Background(), txtDoc("blank.txt", "   \n\t\n  "))
	assert.ErrorIs(t, err, ErrNoTextExtracted)
}

// TestParseCorruptFile 结构损坏的文档报文件损坏
func TestParseCorruptFile(t *testing.T) {
	p := newTestProcessor(t, nil, nil)

	_, err := p.Parse(context.Background(), types.RawDocument{
		Filename: "broken.docx",
		Content:  []byte("not a zip archive at all"),
	})
	assert.ErrorIs(t, err, ErrCorruptFile)
}

// TestParseGracefulDegradation 无章节标题的文档经历提取回退到全文扫描
func TestParseGracefulDegradation(t *testing.T) {
	p := newTestProcessor(t, nil, nil)

	resume, err := p.Parse(context.Background(), txtDoc("flat.txt", "Jane Doe\nEngineer at Initech\nJan 2020 - Dec 2020"))
	require.NoError(t, err)

	require.Len(t, resume.Experience.Entries, 1)
	assert.Equal(t, "Engineer", resume.Experience.Entries[0].Title)
	assert.Equal(t, "Initech", resume.Experience.Entries[0].Company)
	assert.Equal(t, "11 months", resume.TotalExperience)
}

// mockTextExtractor 按文件名返回预设产出的替身提取器
type mockTextExtractor struct {
	texts map[string]string
	errs  map[string]error
}

func (m *mockTextExtractor) Extract(ctx context.Context, doc types.RawDocument) (types.ExtractedText, error) {
	if err, ok := m.errs[doc.Filename]; ok {
		return types.ExtractedText{}, err
	}
	return types.ExtractedText{EngineUsed: "mock", Text: m.texts[doc.Filename]}, nil
}

// TestParseWithInjectedExtractor 组件选项应能替换默认提取器
func TestParseWithInjectedExtractor(t *testing.T) {
	mock := &mockTextExtractor{texts: map[string]string{
		"anything.bin": "Jane Doe\njane@x.com",
	}}
	p := newTestProcessor(t, []ComponentOpt{WithcompTextextractor(mock)}, nil)

	resume, err := p.Parse(context.Background(), types.RawDocument{Filename: "anything.bin"})
	require.NoError(t, err, "注入的提取器不关心格式，解析应成功")
	require.NotNil(t, resume.PersonalInfo.Email)
	assert.Equal(t, "jane@x.com", *resume.PersonalInfo.Email)
}

// TestFailedResume 失败占位结果的形态
func TestFailedResume(t *testing.T) {
	resume := FailedResume(types.RawDocument{Filename: "bad.pdf", Size: 42})

	assert.Equal(t, "failed", resume.Metadata.ProcessingStatus)
	assert.Equal(t, "bad.pdf", resume.Metadata.Filename)
	assert.Equal(t, int64(42), resume.Metadata.FileSize)
	assert.Equal(t, "0 years and 0 months", resume.TotalExperience)

	data, err := json.Marshal(resume)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"skills":[]`, "空技能应序列化为空数组")
	assert.Contains(t, string(data), `"entries":[]`)
}

// TestExtractStageErrorMapping 提取层基础错误到对外错误类别的映射
func TestExtractStageErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		lowErr  error
		wantErr error
	}{
		{"格式不识别", fmt.Errorf("%w: 扩展名 xyz", parser2.ErrUnknownFormat), ErrUnsupportedFormat},
		{"无可用文本", fmt.Errorf("%w: 扫描件", parser2.ErrNoUsableText), ErrNoTextExtracted},
		{"引擎失败", fmt.Errorf("%w: 坏流", parser2.ErrEngineFailure), ErrCorruptFile},
		{"未知内部错误", fmt.Errorf("something unexpected"), ErrCorruptFile},
	}

	for _, tt := range tests {
		mock := &mockTextExtractor{errs: map[string]error{"doc": tt.lowErr}}
		p := newTestProcessor(t, []ComponentOpt{WithcompTextextractor(mock)}, nil)

		_, err := p.Parse(context.Background(), types.RawDocument{Filename: "doc"})
		assert.ErrorIs(t, err, tt.wantErr, "%s 的映射不符", tt.name)
	}
}
