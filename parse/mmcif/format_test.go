package mmcif

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestFormatPlainValues(t *testing.T) {
	convey.Convey("plain values stay bare tokens", t, func() {
		convey.So(FormatValue("simple"), convey.ShouldEqual, "simple")
		convey.So(FormatValue(42), convey.ShouldEqual, "42")
		convey.So(FormatValue(10.5), convey.ShouldEqual, "10.5")
		convey.So(FormatValue(true), convey.ShouldEqual, "true")
	})
}

func TestFormatNull(t *testing.T) {
	convey.Convey("null is the dot token", t, func() {
		convey.So(FormatValue(nil), convey.ShouldEqual, ".")
	})
}

func TestFormatReservedLooking(t *testing.T) {
	convey.Convey("reserved-looking tokens get double quotes", t, func() {
		convey.So(FormatValue("_tag"), convey.ShouldEqual, `"_tag"`)
		convey.So(FormatValue("[bracketed]"), convey.ShouldEqual, `"[bracketed]"`)
		convey.So(FormatValue("has space"), convey.ShouldEqual, `"has space"`)
	})
}

func TestFormatQuoteBearingValues(t *testing.T) {
	convey.Convey("single quotes force double quoting and vice versa", t, func() {
		convey.So(FormatValue("it's"), convey.ShouldEqual, `"it's"`)
		convey.So(FormatValue("O5'"), convey.ShouldEqual, `"O5'"`)
		convey.So(FormatValue(`she said "hi"`), convey.ShouldEqual, `'she said "hi"'`)
	})
}

func TestFormatMultiline(t *testing.T) {
	convey.Convey("line breaks force the semicolon block form", t, func() {
		convey.So(FormatValue("a\nb"), convey.ShouldEqual, "\n;a\nb\n;\n")

		convey.Convey("even when the text also needed quoting", func() {
			convey.So(FormatValue("it's\nhere"), convey.ShouldEqual, "\n;it's\nhere\n;\n")
			convey.So(FormatValue("_a\nb"), convey.ShouldEqual, "\n;_a\nb\n;\n")
		})
	})
}

func TestFormatMixedQuotes(t *testing.T) {
	convey.Convey("text holding both quote kinds gets the block form without a line break", t, func() {
		convey.So(FormatValue(`both ' and "`), convey.ShouldEqual, "\n;both ' and \"\n;\n")
	})
}

func TestFormatEmptyString(t *testing.T) {
	convey.Convey("an empty value still yields a tokenizable token", t, func() {
		convey.So(FormatValue(""), convey.ShouldEqual, `""`)
	})
}
