package logrus_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waabox/auditdeck/internal/log"
	loglogrus "github.com/waabox/auditdeck/internal/log/logrus"
)

func TestLogrusWithValues(t *testing.T) {
	tests := map[string]struct {
		values   log.Kv
		logFn    func(l log.Logger)
		expLevel string
		expMsg   string
	}{
		"Info messages should carry the structured values.": {
			values:   log.Kv{"run": "01HX"},
			logFn:    func(l log.Logger) { l.Infof("run %s started", "01HX") },
			expLevel: "info",
			expMsg:   "run 01HX started",
		},

		"Warning messages should use the warning level.": {
			values:   log.Kv{"run": "01HX"},
			logFn:    func(l log.Logger) { l.Warningf("run cancelled at %d%%", 40) },
			expLevel: "warning",
			expMsg:   "run cancelled at 40%",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			var buf bytes.Buffer
			l := logrus.New()
			l.Out = &buf
			l.SetFormatter(&logrus.JSONFormatter{})

			logger := loglogrus.NewLogrus(logrus.NewEntry(l)).WithValues(test.values)
			test.logFn(logger)

			var got map[string]any
			require.NoError(json.Unmarshal(buf.Bytes(), &got))
			assert.Equal(test.expLevel, got["level"])
			assert.Equal(test.expMsg, got["msg"])
			assert.Equal("01HX", got["run"])
		})
	}
}

func TestNoopDiscards(t *testing.T) {
	l := log.Noop.WithValues(log.Kv{"a": 1})
	assert.Equal(t, log.Noop, l)
}
