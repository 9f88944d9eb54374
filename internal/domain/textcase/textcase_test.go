package textcase_test

import (
	"errors"
	"testing"

	"github.com/okian/textcase/internal/domain/textcase"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseMethod(t *testing.T) {
	Convey("Given method names from a request", t, func() {
		Convey("When the name is a supported method", func() {
			up, errUp := textcase.ParseMethod("uppercase")
			low, errLow := textcase.ParseMethod("lowercase")

			Convey("Then it resolves to the matching variant", func() {
				So(errUp, ShouldBeNil)
				So(up, ShouldEqual, textcase.Uppercase)
				So(errLow, ShouldBeNil)
				So(low, ShouldEqual, textcase.Lowercase)
			})
		})

		Convey("When the name is unknown, differently cased, missing or not a string", func() {
			for _, v := range []any{"unsupported", "UPPERCASE", " uppercase", "", nil, 42.0, true, map[string]any{}} {
				_, err := textcase.ParseMethod(v)
				So(errors.Is(err, textcase.ErrInvalidMethod), ShouldBeTrue)
			}
		})
	})
}

func TestMethod(t *testing.T) {
	Convey("Given the declared methods", t, func() {
		So(textcase.Methods(), ShouldResemble, []textcase.Method{textcase.Uppercase, textcase.Lowercase})

		Convey("Then each has a wire name and is valid", func() {
			So(textcase.Uppercase.String(), ShouldEqual, "uppercase")
			So(textcase.Lowercase.String(), ShouldEqual, "lowercase")
			So(textcase.Uppercase.Valid(), ShouldBeTrue)
			So(textcase.Lowercase.Valid(), ShouldBeTrue)
		})

		Convey("Then the zero value is not a method", func() {
			var m textcase.Method
			So(m.Valid(), ShouldBeFalse)
			So(m.String(), ShouldEqual, "Method(0)")
		})
	})
}

func TestApply(t *testing.T) {
	Convey("Given text to transform", t, func() {
		cases := []struct {
			name  string
			in    string
			upper string
			lower string
		}{
			{"English word", "Hello", "HELLO", "hello"},
			{"Sentence", "Go is fun", "GO IS FUN", "go is fun"},
			{"Mixed case", "HeLlO WoRlD", "HELLO WORLD", "hello world"},
			{"Numbers and symbols", "123!@#abc", "123!@#ABC", "123!@#abc"},
			{"Caseless script", "你好世界", "你好世界", "你好世界"},
			{"Surrounding spaces", "  text  ", "  TEXT  ", "  text  "},
			{"Empty", "", "", ""},
			{"Accented", "Crème Brûlée", "CRÈME BRÛLÉE", "crème brûlée"},
			{"Sharp s expands", "straße", "STRASSE", "straße"},
		}

		for _, tc := range cases {
			Convey("When the input is "+tc.name, func() {
				up, errUp := textcase.Apply(textcase.Uppercase, tc.in)
				low, errLow := textcase.Apply(textcase.Lowercase, tc.in)

				Convey("Then both transforms produce the case-mapped text", func() {
					So(errUp, ShouldBeNil)
					So(up, ShouldEqual, tc.upper)
					So(errLow, ShouldBeNil)
					So(low, ShouldEqual, tc.lower)
				})

				Convey("Then applying a transform twice changes nothing", func() {
					upTwice, _ := textcase.Apply(textcase.Uppercase, up)
					lowTwice, _ := textcase.Apply(textcase.Lowercase, low)
					So(upTwice, ShouldEqual, up)
					So(lowTwice, ShouldEqual, low)
				})
			})
		}
	})
}

func TestApplyFailures(t *testing.T) {
	Convey("Given inputs that are not text", t, func() {
		Convey("When text_input is missing", func() {
			_, err := textcase.Apply(textcase.Uppercase, nil)

			Convey("Then the transform fails without running", func() {
				So(errors.Is(err, textcase.ErrTransformFailure), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "missing")
			})
		})

		Convey("When text_input has another JSON type", func() {
			for _, v := range []any{12.5, false, []any{"a"}, map[string]any{"a": "b"}} {
				_, err := textcase.Apply(textcase.Lowercase, v)
				So(errors.Is(err, textcase.ErrTransformFailure), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "unsupported type")
			}
		})

		Convey("When the method is not a declared variant", func() {
			_, err := textcase.Transform(textcase.Method(99), "abc")

			Convey("Then it is a transform failure", func() {
				So(errors.Is(err, textcase.ErrTransformFailure), ShouldBeTrue)
			})
		})
	})
}
