package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/san-kum/cardsearch/internal/config"
	"github.com/san-kum/cardsearch/internal/export"
	"github.com/san-kum/cardsearch/internal/search"
)

var _ = ginkgo.Describe("Server", func() {
	var (
		logBuf  *bytes.Buffer
		handler http.Handler
	)

	ginkgo.BeforeEach(func() {
		logBuf = &bytes.Buffer{}
		logger := slog.New(slog.NewTextHandler(logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		srv, err := New(config.DefaultConfig(), logger)
		gomega.Expect(err).To(gomega.Succeed())
		handler = srv.Handler()
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	decodeDoc := func(rec *httptest.ResponseRecorder) export.Document {
		var doc export.Document
		gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &doc)).To(gomega.Succeed())
		return doc
	}

	ginkgo.It("reports health", func() {
		rec := do(http.MethodGet, "/api/health", "")
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring(`"ok":true`))
	})

	ginkgo.It("simulates the example search", func() {
		rec := do(http.MethodPost, "/api/simulate", `{"cards": "2, 3, 5, 8, 13, 15, 18, 20, 23, 25", "target": 8}`)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(rec.Header().Get("Content-Type")).To(gomega.Equal("application/json"))

		doc := decodeDoc(rec)
		gomega.Expect(doc.Steps).To(gomega.HaveLen(9))
		gomega.Expect(doc.Result.Found).To(gomega.BeTrue())
		gomega.Expect(doc.Result.SearchPath).To(gomega.Equal([]int{13, 3, 5, 8}))
		gomega.Expect(doc.Metrics).To(gomega.HaveKeyWithValue("eliminated", 9.0))
	})

	ginkgo.It("returns not_found for a missing target", func() {
		doc := decodeDoc(do(http.MethodPost, "/api/simulate", `{"cards": "2, 3, 5", "target": 100}`))
		gomega.Expect(doc.Result.Found).To(gomega.BeFalse())
		gomega.Expect(doc.Steps[len(doc.Steps)-1].Action).To(gomega.Equal(search.ActionNotFound))
	})

	ginkgo.It("honours the sequential numbering option", func() {
		doc := decodeDoc(do(http.MethodPost, "/api/simulate", `{"cards": "2, 4", "target": 5, "numbering": "sequential"}`))
		for i, st := range doc.Steps {
			gomega.Expect(st.Number).To(gomega.Equal(i))
		}
	})

	ginkgo.DescribeTable("rejects bad input with 400",
		func(body, fragment string) {
			rec := do(http.MethodPost, "/api/simulate", body)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))

			var resp struct {
				Message string `json:"message"`
			}
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(gomega.Succeed())
			gomega.Expect(resp.Message).To(gomega.ContainSubstring(fragment))
		},
		ginkgo.Entry("descending cards", `{"cards": "5, 2, 3", "target": 2}`, "ascending"),
		ginkgo.Entry("strict malformed token", `{"cards": "1, x", "target": 1, "strict": true}`, "invalid card"),
		ginkgo.Entry("missing target", `{"cards": "1, 2"}`, "target is required"),
		ginkgo.Entry("malformed JSON", `{"cards": `, "invalid request body"),
		ginkgo.Entry("unknown field", `{"cards": "1", "target": 1, "deck": []}`, "invalid request body"),
		ginkgo.Entry("unknown numbering", `{"cards": "1", "target": 1, "numbering": "odd"}`, "numbering"),
	)

	ginkgo.It("rejects oversized bodies with 413", func() {
		body := `{"cards": "` + strings.Repeat("1, ", maxRequestBody/3+1) + `1", "target": 1}`
		rec := do(http.MethodPost, "/api/simulate", body)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusRequestEntityTooLarge))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("request body exceeds"))
	})

	ginkgo.It("serves without a logger", func() {
		srv, err := New(config.DefaultConfig(), nil)
		gomega.Expect(err).To(gomega.Succeed())

		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
	})

	ginkgo.It("lists and runs presets", func() {
		rec := do(http.MethodGet, "/api/presets", "")
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		var presets []PresetInfo
		gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &presets)).To(gomega.Succeed())
		gomega.Expect(presets).To(gomega.HaveLen(len(config.Presets)))

		doc := decodeDoc(do(http.MethodGet, "/api/presets/single", ""))
		gomega.Expect(doc.Result.Found).To(gomega.BeTrue())
		gomega.Expect(doc.Result.TotalComparisons).To(gomega.Equal(1))

		gomega.Expect(do(http.MethodGet, "/api/presets/nope", "").Code).To(gomega.Equal(http.StatusNotFound))
	})

	ginkgo.It("answers unknown routes and methods with JSON errors", func() {
		rec := do(http.MethodGet, "/api/unknown", "")
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNotFound))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring(`"message"`))

		rec = do(http.MethodGet, "/api/simulate", "")
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusMethodNotAllowed))
	})

	ginkgo.It("logs api requests with a truncated body preview", func() {
		do(http.MethodPost, "/api/simulate", `{"cards": "2, 3, 5, 8", "target": 8}`)

		out := logBuf.String()
		gomega.Expect(out).To(gomega.ContainSubstring("POST /api/simulate 200 in"))
		gomega.Expect(out).To(gomega.ContainSubstring("…"))
		gomega.Expect(out).To(gomega.ContainSubstring("status=200"))
		gomega.Expect(out).To(gomega.ContainSubstring("method=POST"))
	})

	ginkgo.It("does not log requests outside /api", func() {
		do(http.MethodGet, "/index.html", "")
		gomega.Expect(logBuf.String()).To(gomega.BeEmpty())
	})

	ginkgo.It("shuts down when the context is canceled", func() {
		cfg := config.DefaultConfig()
		cfg.Server.Addr = "127.0.0.1:0"
		srv, err := New(cfg, slog.New(slog.NewTextHandler(logBuf, nil)))
		gomega.Expect(err).To(gomega.Succeed())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- srv.ListenAndServe(ctx) }()

		time.Sleep(50 * time.Millisecond)
		cancel()
		gomega.Eventually(done, 2*time.Second).Should(gomega.Receive(gomega.BeNil()))
	})
})
