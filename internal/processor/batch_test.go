package processor

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	parser2 "resume-parse-go/internal/parser"
	"resume-parse-go/internal/types"
)

// TestParseBatchOrderAndIsolation 结果顺序与输入一致，单文档失败不影响其余文档
func TestParseBatchOrderAndIsolation(t *testing.T) {
	mock := &mockTextExtractor{
		texts: map[string]string{
			"a.txt": "Alice Aaron\nalice@x.com",
			"c.txt": "Carol Chen\ncarol@x.com",
		},
		errs: map[string]error{
			"b.docx": fmt.Errorf("%w: 坏zip", parser2.ErrEngineFailure),
		},
	}
	p := newTestProcessor(t, []ComponentOpt{WithcompTextextractor(mock)}, nil)

	docs := []types.RawDocument{
		{Filename: "a.txt"},
		{Filename: "b.docx"},
		{Filename: "c.txt"},
	}
	results := p.ParseBatch(context.Background(), docs)

	require.Len(t, results, 3)
	assert.Equal(t, "a.txt", results[0].Filename, "结果顺序必须与输入一致")
	assert.Equal(t, "b.docx", results[1].Filename)
	assert.Equal(t, "c.txt", results[2].Filename)

	assert.True(t, results[0].Success)
	require.NotNil(t, results[0].Data)
	require.NotNil(t, results[0].Data.PersonalInfo.Name)
	assert.Equal(t, "Alice Aaron", *results[0].Data.PersonalInfo.Name)

	assert.False(t, results[1].Success)
	assert.Nil(t, results[1].Data)
	assert.Contains(t, results[1].Error, ErrCorruptFile.Error())

	assert.True(t, results[2].Success, "前一个文档失败不应波及后续文档")
}

// TestParseBatchEmpty 空输入返回空结果
func TestParseBatchEmpty(t *testing.T) {
	p := newTestProcessor(t, nil, nil)
	assert.Empty(t, p.ParseBatch(context.Background(), nil))
}

// slowExtractor 响应上下文取消的慢速替身提取器
type slowExtractor struct {
	delay time.Duration
}

func (s *slowExtractor) Extract(ctx context.Context, doc types.RawDocument) (types.ExtractedText, error) {
	select {
	case <-time.After(s.delay):
		return types.ExtractedText{EngineUsed: "slow", Text: "Jane Doe\njane@x.com"}, nil
	case <-ctx.Done():
		return types.ExtractedText{}, ctx.Err()
	}
}

// TestParseBatchPerDocumentTimeout 超出单文档时间预算的文档只有它自己报超时
func TestParseBatchPerDocumentTimeout(t *testing.T) {
	p := newTestProcessor(t,
		[]ComponentOpt{WithcompTextextractor(&slowExtractor{delay: 2 * time.Second})},
		[]SettingOpt{WithsetDocTimeout(50 * time.Millisecond)},
	)

	results := p.ParseBatch(context.Background(), []types.RawDocument{{Filename: "slow.pdf"}})

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, ErrExtractionTimeout.Error(), "超出预算应归为超时错误")
}

// countingExtractor 统计并发提取数的替身
type countingExtractor struct {
	current atomic.Int32
	peak    atomic.Int32
}

func (c *countingExtractor) Extract(ctx context.Context, doc types.RawDocument) (types.ExtractedText, error) {
	n := c.current.Add(1)
	for {
		old := c.peak.Load()
		if n <= old || c.peak.CompareAndSwap(old, n) {
			break
		}
	}
	time.Sleep(20 * time.Millisecond)
	c.current.Add(-1)
	return types.ExtractedText{EngineUsed: "counting", Text: "Jane Doe"}, nil
}

// TestParseBatchWorkerLimit 并发度不超过配置的工作者数量
func TestParseBatchWorkerLimit(t *testing.T) {
	counter := &countingExtractor{}
	p := newTestProcessor(t,
		[]ComponentOpt{WithcompTextextractor(counter)},
		[]SettingOpt{WithsetWorkers(2)},
	)

	docs := make([]types.RawDocument, 6)
	for i := range docs {
		docs[i] = types.RawDocument{Filename: fmt.Sprintf("doc-%d.txt", i)}
	}
	results := p.ParseBatch(context.Background(), docs)

	require.Len(t, results, 6)
	for i, r := range results {
		assert.True(t, r.Success, "第 %d 个文档应解析成功", i)
	}
	assert.LessOrEqual(t, counter.peak.Load(), int32(2), "并发提取数不应超过工作者上限")
}
