package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// TestRecordErrorNilSafe span或err为空时静默返回
func TestRecordErrorNilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordError(nil, errors.New("boom"), ErrorTypeInternal)
		RecordErrorWithInfo(nil, errors.New("boom"), ErrorTypeInternal)
	})

	_, span := otel.Tracer("test").Start(context.Background(), "test")
	defer span.End()
	assert.NotPanics(t, func() {
		RecordError(span, nil, ErrorTypeInternal)
	})
}

// TestRecordErrorWithInfoAttributes 未装SDK时记录错误和附加属性也不应出错
func TestRecordErrorWithInfoAttributes(t *testing.T) {
	_, span := otel.Tracer("test").Start(context.Background(), "test")
	defer span.End()

	assert.NotPanics(t, func() {
		RecordErrorWithInfo(span, errors.New("提取失败"), ErrorTypeExtraction,
			attribute.String("document.filename",
				SafeAttributeValue("document.filename", "jane_doe.pdf", MaxFilenameLength)),
		)
	})
}
