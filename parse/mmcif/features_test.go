package mmcif

import (
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestImportDataMap(t *testing.T) {
	convey.Convey("import of a nested data map", t, func() {
		m := map[string]any{
			"DBLK": map[string]any{
				"atom_site": map[string]any{
					"id":    []any{1, 2, 3},
					"label": "C",
				},
			},
		}
		f := NewFile("in-memory")
		f.ImportDataMap(m)

		convey.So(f.DataBlockIDs(), convey.ShouldResemble, []string{"DBLK"})
		b := f.DataBlock("DBLK")
		convey.So(b, convey.ShouldNotBeNil)
		convey.So(b.CategoryIDs(), convey.ShouldResemble, []string{"atom_site"})

		cat := b.Category("atom_site")
		convey.So(cat.IsTable(), convey.ShouldBeTrue)

		id := cat.Item("id")
		convey.So(id.IsColumn(), convey.ShouldBeTrue)
		convey.So(id.Len(), convey.ShouldEqual, 3)

		label := cat.Item("label")
		convey.So(label.IsColumn(), convey.ShouldBeFalse)
		convey.So(label.RawValue(), convey.ShouldEqual, "C")
	})
}

func TestImportSkipsMalformedBranches(t *testing.T) {
	convey.Convey("malformed branches are skipped, the rest imports", t, func() {
		m := map[string]any{
			"B": map[string]any{
				"bad":  "not a mapping",
				"good": map[string]any{"id": "v"},
			},
			"not-a-block": "scalar where a mapping is required",
		}
		f := NewFile("")
		f.ImportDataMap(m)

		convey.So(f.DataBlock("not-a-block"), convey.ShouldBeNil)
		b := f.DataBlock("B")
		convey.So(b, convey.ShouldNotBeNil)
		convey.So(b.Category("bad"), convey.ShouldBeNil)
		convey.So(b.Category("good").Item("id").RawValue(), convey.ShouldEqual, "v")
	})
}

func TestImportEmptyMap(t *testing.T) {
	convey.Convey("an empty map imports nothing", t, func() {
		f := NewFile("")
		f.ImportDataMap(nil)
		f.ImportDataMap(map[string]any{})
		convey.So(f.DataBlockIDs(), convey.ShouldBeEmpty)
	})
}

func TestImportIsDeterministic(t *testing.T) {
	convey.Convey("the same map always builds the same emitted text", t, func() {
		m := map[string]any{
			"B": map[string]any{
				"cell":  map[string]any{"length_a": 10.5, "length_b": 11.5},
				"entry": map[string]any{"id": "B"},
				"atom_site": map[string]any{
					"id":       []any{1, 2},
					"type":     []any{"C", "N"},
					"occupied": []any{true, false},
				},
			},
		}
		render := func() string {
			f := NewFile("")
			f.ImportDataMap(m)
			var sb strings.Builder
			convey.So(Write(&sb, f), convey.ShouldBeNil)
			return sb.String()
		}
		first := render()
		for i := 0; i < 5; i++ {
			convey.So(render(), convey.ShouldEqual, first)
		}
	})
}

func TestImportThenFetchIsIdempotent(t *testing.T) {
	convey.Convey("a repeated import pass reuses the existing tree objects", t, func() {
		m := map[string]any{
			"B": map[string]any{"entry": map[string]any{"id": "X"}},
		}
		f := NewFile("")
		f.ImportDataMap(m)
		b := f.DataBlock("B")
		cat := b.Category("entry")

		f.ImportDataMap(m)
		convey.So(f.DataBlock("B"), convey.ShouldEqual, b)
		convey.So(b.Category("entry"), convey.ShouldEqual, cat)
		convey.So(len(f.DataBlockIDs()), convey.ShouldEqual, 1)

		convey.Convey("though the re-imported scalar promotes to a column", func() {
			it := cat.Item("id")
			convey.So(it.IsColumn(), convey.ShouldBeTrue)
			convey.So(it.RawValue(), convey.ShouldResemble, []any{"X", "X"})
		})
	})
}
