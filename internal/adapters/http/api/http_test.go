package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/gavel/internal/adapters/http/api"
	"github.com/okian/gavel/internal/adapters/repository"
	"github.com/okian/gavel/internal/app"
	"github.com/okian/gavel/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeDeps is a canned pipeline for handler tests.
type fakeDeps struct {
	result model.BatchResult
	err    error
	item   *model.ApprovedItem
}

func (f *fakeDeps) Run(_ context.Context, _ []model.RawInput, _ model.SystemContext) (model.BatchResult, error) {
	return f.result, f.err
}

func (f *fakeDeps) DequeueNext(_ context.Context) (model.ApprovedItem, bool) {
	if f.item == nil {
		return model.ApprovedItem{}, false
	}
	item := *f.item
	f.item = nil
	return item, true
}

func (f *fakeDeps) Stats(_ context.Context) map[string]interface{} {
	return map[string]interface{}{"queueLength": 0}
}

func newMux(deps *fakeDeps, registry api.ModuleRegistry) *http.ServeMux {
	mux := http.NewServeMux()
	server := api.NewServer(deps, registry, deps)
	server.Register(context.Background(), mux)
	return mux
}

func validBatchBody() string {
	payload := map[string]any{
		"inputs": []map[string]any{{
			"id":           "in-1",
			"submitter_id": "sub-1",
			"category":     "bug",
			"content":      "export crashes",
			"sentiment":    -70,
			"urgency":      80,
			"specificity":  90,
			"submitted_at": time.Now().UTC().Format(time.RFC3339),
		}},
		"system": map[string]any{"total_modules": 100, "scarce_tier_modules": 8},
	}
	raw, _ := json.Marshal(payload)
	return string(raw)
}

func TestBatchEndpoint(t *testing.T) {
	Convey("Given the batch endpoint", t, func() {
		deps := &fakeDeps{result: model.BatchResult{
			Summary: model.Summary{TotalInputs: 1, DiscardRate: 1},
		}}
		mux := newMux(deps, repository.NewInMemoryStore())

		Convey("When a valid batch is posted", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/batch", strings.NewReader(validBatchBody()))
			mux.ServeHTTP(rec, req)

			Convey("Then the result comes back as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var result model.BatchResult
				So(json.NewDecoder(rec.Body).Decode(&result), ShouldBeNil)
				So(result.Summary.TotalInputs, ShouldEqual, 1)
			})
		})

		Convey("When the body is not JSON", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/batch", strings.NewReader("not json"))
			mux.ServeHTTP(rec, req)

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the input list is empty", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/batch", strings.NewReader(`{"inputs":[],"system":{}}`))
			mux.ServeHTTP(rec, req)

			Convey("Then validation rejects it before the pipeline runs", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When an input is missing its submitter", func() {
			body := `{"inputs":[{"id":"in-1","category":"bug"}],"system":{}}`
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/batch", strings.NewReader(body))
			mux.ServeHTTP(rec, req)

			Convey("Then validation names the missing field", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "submitter_id")
			})
		})

		Convey("When the pipeline refuses the batch", func() {
			deps.err = app.ErrInvalidBatch
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/batch", strings.NewReader(validBatchBody()))
			mux.ServeHTTP(rec, req)

			Convey("Then the refusal maps to a client error", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the method is wrong", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/batch", nil)
			mux.ServeHTTP(rec, req)

			Convey("Then the route does not answer", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestQueueEndpoint(t *testing.T) {
	Convey("Given the queue drain endpoint", t, func() {
		Convey("When an approved item is waiting", func() {
			deps := &fakeDeps{item: &model.ApprovedItem{
				Proposal: model.Proposal{ID: "prop-1"},
				Order:    1,
			}}
			mux := newMux(deps, repository.NewInMemoryStore())

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/queue/next", nil)
			mux.ServeHTTP(rec, req)

			Convey("Then the item is returned and consumed", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var item model.ApprovedItem
				So(json.NewDecoder(rec.Body).Decode(&item), ShouldBeNil)
				So(item.Proposal.ID, ShouldEqual, "prop-1")

				rec2 := httptest.NewRecorder()
				mux.ServeHTTP(rec2, httptest.NewRequest(http.MethodGet, "/queue/next", nil))
				So(rec2.Code, ShouldEqual, http.StatusNoContent)
			})
		})

		Convey("When the queue is empty", func() {
			mux := newMux(&fakeDeps{}, repository.NewInMemoryStore())

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/queue/next", nil))

			Convey("Then the response is 204", func() {
				So(rec.Code, ShouldEqual, http.StatusNoContent)
			})
		})
	})
}

func TestModulesEndpoint(t *testing.T) {
	Convey("Given the module registry endpoint", t, func() {
		store := repository.NewInMemoryStore()
		mux := newMux(&fakeDeps{}, store)

		Convey("When a module is registered", func() {
			body := `{"user_satisfaction":90,"reuse_rate":80,"failure_rate":10,"outcome_impact":70}`
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/modules/core", strings.NewReader(body))
			mux.ServeHTTP(rec, req)

			Convey("Then the store holds its metrics", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(store.Count(context.Background()), ShouldEqual, 1)

				m, err := store.Resolve(context.Background(), "core")
				So(err, ShouldBeNil)
				So(m.UserSatisfaction, ShouldEqual, 90)
			})

			Convey("And deleting it empties the store", func() {
				rec2 := httptest.NewRecorder()
				mux.ServeHTTP(rec2, httptest.NewRequest(http.MethodDelete, "/modules/core", nil))
				So(rec2.Code, ShouldEqual, http.StatusOK)
				So(store.Count(context.Background()), ShouldEqual, 0)
			})
		})

		Convey("When deleting an unknown module", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/modules/ghost", nil))

			Convey("Then the response is 404", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the module id is missing", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/modules/", strings.NewReader("{}"))
			mux.ServeHTTP(rec, req)

			Convey("Then the request is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestHealthAndStats(t *testing.T) {
	Convey("Given the monitoring endpoints", t, func() {
		mux := newMux(&fakeDeps{}, repository.NewInMemoryStore())

		Convey("When health is probed", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Convey("Then the service reports ok", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "ok")
			})
		})

		Convey("When stats are requested", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Convey("Then the stats map is served as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "queueLength")
			})
		})
	})
}
