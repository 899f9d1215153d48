package config

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLokiLogger_SendToLoki(t *testing.T) {
	RegisterTestingT(t)

	received := make(chan LokiLogEntry, 1)
	paths := make(chan string, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path

		body, _ := io.ReadAll(r.Body)

		var entry LokiLogEntry
		json.Unmarshal(body, &entry)
		received <- entry

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	logger := newLokiLogger(zap.NewNop(), "todoweb", server.URL)

	logger.SendToLoki(context.Background(), zapcore.InfoLevel, "HTTP Request", []zap.Field{
		zap.String("path", "/"),
		zap.Int("status", 200),
	})

	var entry LokiLogEntry
	Eventually(received, time.Second).Should(Receive(&entry))

	Expect(<-paths).To(Equal("/loki/api/v1/push"))
	Expect(entry.Streams).To(HaveLen(1))
	Expect(entry.Streams[0].Stream).To(HaveKeyWithValue("service", "todoweb"))

	var line map[string]interface{}
	Expect(json.Unmarshal([]byte(entry.Streams[0].Values[0][1]), &line)).To(Succeed())
	Expect(line).To(HaveKeyWithValue("message", "HTTP Request"))
	Expect(line).To(HaveKeyWithValue("path", "/"))
	Expect(line).To(HaveKeyWithValue("status", BeNumerically("==", 200)))
}

func TestNewNopLogger(t *testing.T) {
	logger := NewNopLogger()

	logger.InfoWithTrace(context.Background(), "ignored")
	logger.ErrorWithTrace(context.Background(), "ignored", zap.Error(io.EOF))
}
