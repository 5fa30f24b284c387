package diag

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaeandersson/modc/internal/merr"
)

func TestReportErrorIncludesCodeAndComponent(t *testing.T) {
	var buf bytes.Buffer
	ReportError(&buf, merr.ClassNotFound("Foo.Bar"))
	out := buf.String()
	assert.Contains(t, out, "LKP001")
	assert.Contains(t, out, "Foo.Bar")
}

func TestReportErrorHandlesPlainError(t *testing.T) {
	var buf bytes.Buffer
	ReportError(&buf, errors.New("boom"))
	assert.Contains(t, buf.String(), "boom")
}

func TestOKAndInfoAndWarnWriteNonEmptyLines(t *testing.T) {
	var buf bytes.Buffer
	OK(&buf, "done %d", 1)
	Info(&buf, "working")
	Warn(&buf, "careful")
	assert.NotEmpty(t, buf.String())
}
