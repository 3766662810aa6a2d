package http

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogObserver(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	d := NewDispatcher(
		WithTransport(&fakeTransport{resp: NewResponse(http.StatusOK, nil, []byte("ok"))}),
		WithObserver(NewLogObserver(logger)),
	)

	_, err := d.Send(context.Background(), NewRequestSpecFor("GET", "https://api.example.com/health"))
	require.NoError(t, err)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)

	assert.Equal(t, logrus.DebugLevel, entries[0].Level)
	assert.Equal(t, "sending request", entries[0].Message)
	assert.Equal(t, "GET", entries[0].Data["method"])
	assert.Equal(t, "https://api.example.com/health", entries[0].Data["url"])

	assert.Equal(t, logrus.InfoLevel, entries[1].Level)
	assert.Equal(t, http.StatusOK, entries[1].Data["status"])
	assert.EqualValues(t, 2, entries[1].Data["bytes"])
	assert.Equal(t, entries[0].Data["exchange_id"], entries[1].Data["exchange_id"])
}

func TestLogObserver_Failure(t *testing.T) {
	logger, hook := test.NewNullLogger()

	d := NewDispatcher(
		WithTransport(&fakeTransport{err: errors.New("dial tcp: refused")}),
		WithObserver(NewLogObserver(logger)),
	)

	_, err := d.Send(context.Background(), NewRequestSpecFor("GET", "https://api.example.com/health"))
	require.Error(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "exchange failed", entry.Message)
	assert.Equal(t, err, entry.Data[logrus.ErrorKey])

	hook.Reset()
	d.OnError(func(err error, req *ResolvedRequest, xc *ExchangeContext) {
		xc.FailureHandled = true
	})
	// Acknowledgement happens after the log observer ran, so it still logs an error.
	_, err = d.Send(context.Background(), NewRequestSpecFor("GET", "https://api.example.com/health"))
	require.NoError(t, err)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestLogObserver_NilLoggerUsesStandard(t *testing.T) {
	o := NewLogObserver(nil)
	assert.Same(t, logrus.StandardLogger(), o.logger)
}
