package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/goalguessr/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars(t)

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			t.Setenv("GOALGUESSR_ADDR", ":8080")
			t.Setenv("GOALGUESSR_QUEUE_SIZE", "500")
			t.Setenv("GOALGUESSR_WORKER_COUNT", "16")
			t.Setenv("GOALGUESSR_ROUNDS_PER_DAY", "5")
			t.Setenv("GOALGUESSR_DATABASE_PATH", ":memory:")
			t.Setenv("GOALGUESSR_LOG_FORMAT", "json")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 500)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.RoundsPerDay, convey.ShouldEqual, 5)
				convey.So(cfg.DatabasePath, convey.ShouldEqual, ":memory:")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			path := writeConfigFile(t, `
# comments are fine
addr: ":9090"
queue_size: 3000
timezone: "Europe/Madrid"
alias_file: "/etc/goalguessr/aliases.yaml"
`)
			t.Setenv("GOALGUESSR_CONFIG", path)
			t.Setenv("GOALGUESSR_ADDR", ":8080")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.QueueSize, convey.ShouldEqual, 3000)
				convey.So(cfg.Timezone, convey.ShouldEqual, "Europe/Madrid")
				convey.So(cfg.AliasFile, convey.ShouldEqual, "/etc/goalguessr/aliases.yaml")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			t.Setenv("GOALGUESSR_CONFIG", writeConfigFile(t, `invalid: yaml: content: [`))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			t.Setenv("GOALGUESSR_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the loaded values fail validation", func() {
			t.Setenv("GOALGUESSR_CONFIG", writeConfigFile(t, "addr: \"\"\n"))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"GOALGUESSR_CONFIG", "GOALGUESSR_ADDR", "GOALGUESSR_QUEUE_SIZE", "GOALGUESSR_WORKER_COUNT",
		"GOALGUESSR_ROUNDS_PER_DAY", "GOALGUESSR_DATABASE_PATH", "GOALGUESSR_LOG_FORMAT",
	} {
		t.Setenv(name, "")
		_ = os.Unsetenv(name)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "goalguessr.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
