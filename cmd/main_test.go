package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/goalguessr/internal/config"
	"github.com/okian/goalguessr/internal/domain/animation"
	"github.com/okian/goalguessr/internal/domain/editor"
	"github.com/okian/goalguessr/internal/domain/types"
	"github.com/okian/goalguessr/pkg/logger"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "goal.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSeedCommand(t *testing.T) {
	convey.Convey("Given a database file", t, func() {
		db := filepath.Join(t.TempDir(), "game.db")
		t.Setenv("GOALGUESSR_DATABASE_PATH", db)

		convey.Convey("When seeding twice", func() {
			out, err := execute(t, "seed")
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "seeded 3 goals")

			out, err = execute(t, "seed")
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "seeded 3 goals")

			convey.Convey("Then the file exists", func() {
				_, err := os.Stat(db)
				convey.So(err, convey.ShouldBeNil)
			})
		})
	})
}

func TestValidateCommand(t *testing.T) {
	convey.Convey("Given goal documents", t, func() {
		drafts, err := editor.Classics()
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("A classic goal is valid", func() {
			path := writeJSON(t, types.GoalDocument{Metadata: drafts[0].Metadata, Animation: drafts[0].Animation})
			out, err := execute(t, "validate", path)
			convey.So(err, convey.ShouldBeNil)

			var v animation.Validation
			convey.So(json.Unmarshal([]byte(out), &v), convey.ShouldBeNil)
			convey.So(v.Valid, convey.ShouldBeTrue)
		})

		convey.Convey("A document without an animation is reported", func() {
			path := writeJSON(t, types.GoalDocument{Metadata: drafts[0].Metadata})
			out, err := execute(t, "validate", path)
			convey.So(errors.Is(err, errInvalidDocument), convey.ShouldBeTrue)
			convey.So(out, convey.ShouldContainSubstring, `"valid": false`)
		})

		convey.Convey("A missing file is an error", func() {
			_, err := execute(t, "validate", filepath.Join(t.TempDir(), "nope.json"))
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, errInvalidDocument), convey.ShouldBeFalse)
		})

		convey.Convey("The file argument is required", func() {
			_, err := execute(t, "validate")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestSetup(t *testing.T) {
	convey.Convey("Given a dotenv file", t, func() {
		envFile := filepath.Join(t.TempDir(), ".env")
		convey.So(os.WriteFile(envFile, []byte("GOALGUESSR_ROUNDS_PER_DAY=2\n"), 0o600), convey.ShouldBeNil)
		t.Cleanup(func() { _ = os.Unsetenv("GOALGUESSR_ROUNDS_PER_DAY") })

		convey.Convey("Then its values reach the configuration", func() {
			c := &cli{envFile: envFile}
			cmd := newRootCmd()
			cmd.SetErr(io.Discard)
			cmd.SetContext(context.Background())
			convey.So(c.setup(cmd, nil), convey.ShouldBeNil)
			convey.So(c.cfg.RoundsPerDay, convey.ShouldEqual, 2)
		})
	})

	convey.Convey("Invalid configuration fails before any command runs", t, func() {
		t.Setenv("GOALGUESSR_LOG_FORMAT", "xml")
		_, err := execute(t, "validate", "whatever.json")
		convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
	})
}

func TestServe(t *testing.T) {
	convey.Convey("Given a server on a random port", t, func() {
		cfg := config.New()
		cfg.DatabasePath = ":memory:"
		cfg.WorkerCount = 2
		c := &cli{cfg: cfg}

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		convey.So(err, convey.ShouldBeNil)
		base := "http://" + ln.Addr().String()

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- c.serve(ctx, ln) }()

		client := &http.Client{Timeout: 2 * time.Second}
		get := func(path string) int {
			resp, err := client.Get(base + path)
			if err != nil {
				return 0
			}
			_ = resp.Body.Close()
			return resp.StatusCode
		}

		convey.Reset(cancel)

		convey.Convey("Then the API and docs answer until shutdown", func() {
			convey.So(get("/healthz"), convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api-docs"), convey.ShouldEqual, http.StatusOK)
			convey.So(get("/openapi.yaml"), convey.ShouldEqual, http.StatusOK)
			convey.So(get("/metrics"), convey.ShouldEqual, http.StatusOK)
			convey.So(get("/leaderboard"), convey.ShouldEqual, http.StatusOK)
			convey.So(get("/daily"), convey.ShouldEqual, http.StatusServiceUnavailable)

			cancel()
			select {
			case err := <-done:
				convey.So(err, convey.ShouldBeNil)
			case <-time.After(10 * time.Second):
				t.Fatal("server did not stop")
			}
		})

	})
}
