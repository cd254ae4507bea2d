package swagger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func serve(mux *http.ServeMux, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(method, path, http.NoBody))
	return w
}

func TestRegister(t *testing.T) {
	convey.Convey("Given the docs routes on a mux", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux)

		convey.Convey("The OpenAPI document is served as YAML", func() {
			w := serve(mux, http.MethodGet, "/openapi.yaml")
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/yaml; charset=utf-8")
			convey.So(w.Body.String(), convey.ShouldStartWith, "openapi: 3")
		})

		convey.Convey("The ReDoc page points at the document", func() {
			w := serve(mux, http.MethodGet, "/api-docs")
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "text/html; charset=utf-8")
			convey.So(w.Body.String(), convey.ShouldContainSubstring, "GoalGuessr API")
			convey.So(w.Body.String(), convey.ShouldContainSubstring, "Redoc.init('/openapi.yaml'")
		})

		convey.Convey("Only GET is routed", func() {
			convey.So(serve(mux, http.MethodPost, "/openapi.yaml").Code, convey.ShouldEqual, http.StatusMethodNotAllowed)
		})

		convey.Convey("Every game route is documented", func() {
			spec := string(OpenAPI)
			for _, path := range []string{
				"/guesses:", "/daily:", "/leaderboard:", "/rank/{player}:",
				"/animations/validate:", "/goals:", "/goals/{id}:", "/goals/{id}/status:", "/stats:",
			} {
				convey.So(spec, convey.ShouldContainSubstring, path)
			}
		})
	})

	convey.Convey("A nil mux panics", t, func() {
		convey.So(func() { Register(context.Background(), nil) }, convey.ShouldPanic)
	})
}
