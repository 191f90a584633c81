package processor

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"resume-parse-go/internal/types"
)

// ParseBatch 并发解析一批文档
// 结果切片与输入一一对应、顺序一致；单个文档的失败绝不中断其余文档，
// 失败被折算成该槽位的 {success:false, error:...}
// 并发度受 Settings.Workers 限制，单文档超出时间预算时只有它自己报超时
func (p *ResumeProcessor) ParseBatch(ctx context.Context, docs []types.RawDocument) []types.BatchItemResult {
	results := make([]types.BatchItemResult, len(docs))
	if len(docs) == 0 {
		return results
	}

	batchID := uuid.NewString()
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ResumeProcessor.ParseBatch", trace.WithAttributes(
		attribute.String("batch.id", batchID),
		attribute.Int("batch.size", len(docs)),
		attribute.Int("batch.workers", p.Settings.Workers),
	))
	defer span.End()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Settings.Workers)

	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			results[i] = p.parseOne(ctx, doc)
			// 永远返回nil：单文档失败不触发errgroup的组级取消
			return nil
		})
	}
	// 所有闭包都返回nil，这里的错误只可能来自上游ctx
	_ = g.Wait()

	var failed int
	for i := range results {
		if !results[i].Success {
			failed++
		}
	}
	span.SetAttributes(attribute.Int("batch.failed", failed))
	p.Settings.Logger.Printf("批量解析完成 [%s]: 共 %d 个文档, 失败 %d 个", batchID, len(docs), failed)

	return results
}

// parseOne 在单文档时间预算内解析一个文档
// 解析跑在子协程里，这里在完成与超时之间二选一；
// 超时后子协程经由ctx感知取消自行退出，结果直接丢弃
func (p *ResumeProcessor) parseOne(ctx context.Context, doc types.RawDocument) types.BatchItemResult {
	docCtx, cancel := context.WithTimeout(ctx, p.Settings.DocTimeout)
	defer cancel()

	type parseOutcome struct {
		resume *types.ParsedResume
		err    error
	}
	done := make(chan parseOutcome, 1)

	go func() {
		resume, err := p.Parse(docCtx, doc)
		done <- parseOutcome{resume: resume, err: err}
	}()

	var outcome parseOutcome
	select {
	case outcome = <-done:
	case <-docCtx.Done():
		outcome = parseOutcome{err: NewExtractionTimeoutError("", doc.Filename, docCtx.Err().Error())}
	}

	if outcome.err != nil {
		// 解析自身也可能把超时包装成别的提取错误，统一归位成超时
		if errors.Is(docCtx.Err(), context.DeadlineExceeded) && !errors.Is(outcome.err, ErrExtractionTimeout) {
			outcome.err = NewExtractionTimeoutError("", doc.Filename, outcome.err.Error())
		}
		return types.BatchItemResult{
			Filename: doc.Filename,
			Success:  false,
			Error:    outcome.err.Error(),
		}
	}

	return types.BatchItemResult{
		Filename: doc.Filename,
		Success:  true,
		Data:     outcome.resume,
	}
}
