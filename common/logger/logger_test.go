package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/usekaneo/kaneo-sub002/common/logger"
)

var _ = Describe("LogFields", func() {
	It("merges newer non-empty values over existing ones", func() {
		ctx := logger.WithLogFields(context.Background(), logger.LogFields{
			WorkspaceID: logger.Ptr(int64(1)),
			Component:   "kaneo.http",
		})
		ctx = logger.WithLogFields(ctx, logger.LogFields{
			TaskID: logger.Ptr(int64(7)),
		})

		fields := logger.GetLogFields(ctx)
		Expect(*fields.WorkspaceID).To(Equal(int64(1)))
		Expect(*fields.TaskID).To(Equal(int64(7)))
		Expect(fields.Component).To(Equal("kaneo.http"))
	})

	It("returns empty fields for a bare context", func() {
		Expect(logger.GetLogFields(context.Background())).To(Equal(logger.LogFields{}))
	})
})

var _ = Describe("TraceHandler", func() {
	It("adds context fields to every record", func() {
		buf := &bytes.Buffer{}
		log := slog.New(logger.NewTraceHandler(slog.NewJSONHandler(buf, nil)))

		ctx := logger.WithLogFields(context.Background(), logger.LogFields{
			TaskID:    logger.Ptr(int64(42)),
			EventType: logger.Ptr("task.created"),
			Component: "kaneo.worker",
		})
		log.InfoContext(ctx, "hello")

		var record map[string]any
		Expect(json.Unmarshal(buf.Bytes(), &record)).To(Succeed())
		Expect(record["task_id"]).To(BeNumerically("==", 42))
		Expect(record["event_type"]).To(Equal("task.created"))
		Expect(record["component"]).To(Equal("kaneo.worker"))
		Expect(record).NotTo(HaveKey("trace_id"))
	})
})

var _ = Describe("Truncate", func() {
	It("keeps short strings and shortens long ones", func() {
		Expect(logger.Truncate("abc", 5)).To(Equal("abc"))
		Expect(logger.Truncate("abcdefgh", 3)).To(Equal("abc..."))
	})
})
