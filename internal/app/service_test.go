package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	service "github.com/okian/goalguessr/internal/app"
	"github.com/okian/goalguessr/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

var noon = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return noon }

func newService(opts ...service.Option) *service.Service {
	base := []service.Option{
		service.WithClock(clock),
		service.WithWorkerCount(2),
		service.WithScheduler(false),
	}
	return service.New(append(base, opts...)...)
}

func TestService_Start(t *testing.T) {
	Convey("Given a new service", t, func() {
		ctx := context.Background()
		svc := newService()
		defer svc.Stop(ctx)

		Convey("Before starting it reports not started", func() {
			stats, err := svc.Stats(ctx)
			So(err, ShouldBeNil)
			So(stats.Started, ShouldBeFalse)
			So(stats.Today, ShouldEqual, "2026-10-16")

			_, err = svc.TopN(ctx, 10)
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
		})

		Convey("When starting the service", func() {
			So(svc.Start(ctx), ShouldBeNil)

			Convey("Then it is marked as started", func() {
				stats, err := svc.Stats(ctx)
				So(err, ShouldBeNil)
				So(stats.Started, ShouldBeTrue)
				So(stats.Workers, ShouldEqual, 2)
				So(stats.Players, ShouldEqual, 0)
			})

			Convey("And starting twice is harmless", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And stopping marks it stopped", func() {
				svc.Stop(ctx)
				stats, _ := svc.Stats(ctx)
				So(stats.Started, ShouldBeFalse)
			})
		})

		Convey("When the alias file is missing", func() {
			bad := newService(service.WithAliasFile("/does/not/exist.yaml"))

			Convey("Then Start fails", func() {
				So(bad.Start(ctx), ShouldNotBeNil)
			})
		})
	})
}

func TestService_WithScheduler(t *testing.T) {
	Convey("Given a seeded database and a service with the scheduler on", t, func() {
		ctx := context.Background()
		path := t.TempDir() + "/goalguessr.db"

		seeder := newService(service.WithDatabasePath(path))
		So(seeder.Start(ctx), ShouldBeNil)
		_, err := seeder.Seed(ctx)
		So(err, ShouldBeNil)
		seeder.Stop(ctx)

		svc := newService(service.WithDatabasePath(path), service.WithScheduler(true))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop(ctx)

		Convey("Then today's game exists as soon as it starts", func() {
			view, err := svc.Daily(ctx, "")
			So(err, ShouldBeNil)
			So(view.Date, ShouldEqual, "2026-10-16")
			So(len(view.Rounds), ShouldEqual, 3)
		})
	})
}
