package logx_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"deal_radar/pkg/logx"
)

func TestNewLoggerJSON(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer
	log := logx.NewLogger(&buf, logx.FormatJSON, "warn")

	log.Info("skipped")
	log.Warn("kept", logx.Error(errors.New("boom")))

	rq.NotContains(buf.String(), "skipped")
	rq.Contains(buf.String(), `"msg":"kept"`)
	rq.Contains(buf.String(), "boom")
}

func TestNewLoggerUnknownLevel(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer
	log := logx.NewLogger(&buf, "text", "loud")

	log.Debug("hidden")
	log.Info("shown")

	rq.NotContains(buf.String(), "hidden")
	rq.Contains(buf.String(), "shown")
}
