package service_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	service "github.com/okian/textcase/internal/app"
	"github.com/okian/textcase/internal/domain/textcase"
	"github.com/okian/textcase/pkg/logger"
	"github.com/okian/textcase/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

type recordedTransform struct {
	method  string
	outcome string
}

type fakeRecorder struct {
	mu         sync.Mutex
	transforms []recordedTransform
	sizes      []int
}

func (f *fakeRecorder) RecordTransform(method, outcome string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transforms = append(f.transforms, recordedTransform{method: method, outcome: outcome})
}

func (f *fakeRecorder) RecordTransformInput(_ string, size int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sizes = append(f.sizes, size)
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should be usable without a logger", func() {
			So(svc, ShouldNotBeNil)
			res, err := svc.Transform(context.Background(), "uppercase", "ok")
			So(err, ShouldBeNil)
			So(res.Text, ShouldEqual, "OK")
		})
	})
}

func TestService_Transform(t *testing.T) {
	Convey("Given a service with a recording sink", t, func() {
		rec := &fakeRecorder{}
		var buf bytes.Buffer
		log, err := logger.New(logger.WithWriter(&buf), logger.WithLevel(slog.LevelDebug))
		So(err, ShouldBeNil)
		svc := service.New(service.WithLogger(log), service.WithRecorder(rec))
		ctx := context.Background()

		Convey("When uppercasing text", func() {
			res, err := svc.Transform(ctx, "uppercase", "Hello")

			Convey("Then the result is upper case and a success is recorded", func() {
				So(err, ShouldBeNil)
				So(res.Method, ShouldEqual, textcase.Uppercase)
				So(res.Text, ShouldEqual, "HELLO")
				So(rec.transforms, ShouldResemble, []recordedTransform{{"uppercase", metrics.OutcomeSuccess}})
				So(rec.sizes, ShouldResemble, []int{5})
				So(buf.String(), ShouldContainSubstring, "transform applied")
			})
		})

		Convey("When lowercasing text", func() {
			res, err := svc.Transform(ctx, "lowercase", "Hello")

			Convey("Then the result is lower case", func() {
				So(err, ShouldBeNil)
				So(res.Method, ShouldEqual, textcase.Lowercase)
				So(res.Text, ShouldEqual, "hello")
			})
		})

		Convey("When the method is not supported", func() {
			_, err := svc.Transform(ctx, "unsupported", "Hello")

			Convey("Then an invalid method error is returned and recorded", func() {
				So(errors.Is(err, textcase.ErrInvalidMethod), ShouldBeTrue)
				So(rec.transforms, ShouldResemble, []recordedTransform{{"unknown", metrics.OutcomeInvalidMethod}})
				So(rec.sizes, ShouldBeEmpty)
			})
		})

		Convey("When the method is missing and text_input is missing too", func() {
			_, err := svc.Transform(ctx, nil, nil)

			Convey("Then the method is checked first", func() {
				So(errors.Is(err, textcase.ErrInvalidMethod), ShouldBeTrue)
			})
		})

		Convey("When text_input is missing", func() {
			_, err := svc.Transform(ctx, "uppercase", nil)

			Convey("Then a transform failure is returned and recorded", func() {
				So(errors.Is(err, textcase.ErrTransformFailure), ShouldBeTrue)
				So(rec.transforms, ShouldResemble, []recordedTransform{{"uppercase", metrics.OutcomeTransformError}})
			})
		})

		Convey("When text_input is a number", func() {
			_, err := svc.Transform(ctx, "lowercase", 3.0)

			Convey("Then a transform failure is returned", func() {
				So(errors.Is(err, textcase.ErrTransformFailure), ShouldBeTrue)
			})
		})
	})
}

func TestService_Concurrent(t *testing.T) {
	Convey("Given a shared service", t, func() {
		svc := service.New(service.WithRecorder(&fakeRecorder{}))

		Convey("When many goroutines transform at once", func() {
			const n = 64
			results := make([]string, n)
			var wg sync.WaitGroup
			for i := 0; i < n; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					res, err := svc.Transform(context.Background(), "uppercase", "straße")
					if err == nil {
						results[i] = res.Text
					}
				}(i)
			}
			wg.Wait()

			Convey("Then every call sees the same answer", func() {
				for _, r := range results {
					So(r, ShouldEqual, "STRASSE")
				}
			})
		})
	})
}
