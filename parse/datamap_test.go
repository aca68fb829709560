package parse

import (
	"strings"
	"testing"

	"github.com/dzjyyds666/cifq/parse/mmcif"
	"github.com/smartystreets/goconvey/convey"
)

func TestBuildFileFromYAML(t *testing.T) {
	convey.Convey("YAML data map to CIF text", t, func() {
		src := `
DBLK:
  atom_site:
    group_PDB: [ATOM, ATOM]
    id: [1, 2]
  entry:
    id: TEST
`
		f, err := BuildFile(strings.NewReader(src), "test.yml")
		convey.So(err, convey.ShouldBeNil)
		convey.So(f.Path(), convey.ShouldEqual, "test.yml")

		var sb strings.Builder
		convey.So(mmcif.Write(&sb, f), convey.ShouldBeNil)
		convey.So(sb.String(), convey.ShouldEqual, `data_DBLK
#
loop_
_atom_site.group_PDB
_atom_site.id
ATOM 1
ATOM 2
#
_entry.id TEST
#
`)
	})
}

func TestBuildFileFromJSON(t *testing.T) {
	convey.Convey("JSON input decodes the same way", t, func() {
		src := `{"B": {"cell": {"length_a": 10.5}}}`
		f, err := BuildFile(strings.NewReader(src), "test.json")
		convey.So(err, convey.ShouldBeNil)

		var sb strings.Builder
		convey.So(mmcif.Write(&sb, f), convey.ShouldBeNil)
		convey.So(sb.String(), convey.ShouldContainSubstring, "_cell.length_a 10.5\n")
	})
}

func TestDecodeDataMapRejectsNonMappings(t *testing.T) {
	convey.Convey("top-level input must be a mapping", t, func() {
		_, err := DecodeDataMap(strings.NewReader("- a\n- b\n"))
		convey.So(err, convey.ShouldNotBeNil)
	})
}
