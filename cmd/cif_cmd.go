package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dzjyyds666/cifq/parse"
	"github.com/dzjyyds666/cifq/parse/mmcif"
	"github.com/dzjyyds666/cifq/pkg"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type CifParams struct {
	Find   string `json:"find"`   // datablock or datablock.category to report
	Input  string `json:"input"`  // data map input path (YAML or JSON)
	Output string `json:"output"` // CIF output path, stdout when empty
}

var cifParams *CifParams

var cifCmd = &cobra.Command{
	Use:   "cif",
	Short: "cif build and emit tools",
	Run:   cifRun,
}

func init() {
	cifParams = &CifParams{}
	cifCmd.Flags().StringVarP(&cifParams.Find, "find", "f", "", "datablock[.category] to report instead of emitting")
	cifCmd.Flags().StringVarP(&cifParams.Input, "input", "i", "", "input data map path")
	cifCmd.Flags().StringVarP(&cifParams.Output, "output", "o", "", "output path")
}

func cifRun(cmd *cobra.Command, args []string) {
	if len(cifParams.Input) == 0 {
		fmt.Println("no input file path")
		return
	}
	exist, err := pkg.CheckFileExist(cifParams.Input)
	if err != nil {
		fmt.Println("check file exist error:", err)
		return
	}
	if !exist {
		fmt.Println("input file not exist")
		return
	}

	fd, err := os.Open(cifParams.Input)
	if err != nil {
		fmt.Println("open input error:", err)
		return
	}
	defer fd.Close()

	f, err := parse.BuildFile(fd, cifParams.Input)
	if err != nil {
		fmt.Println("build cif tree error:", err)
		return
	}

	if len(cifParams.Find) > 0 {
		findInTree(f, cifParams.Find)
		return
	}

	var out io.Writer = os.Stdout
	if len(cifParams.Output) > 0 {
		ofd, err := pkg.CreateFile(cifParams.Output)
		if err != nil {
			fmt.Println("create output error:", err)
			return
		}
		defer ofd.Close()
		out = ofd
	}
	if err := mmcif.Write(out, f); err != nil {
		fmt.Println("write cif error:", err)
	}
}

// findInTree reports a datablock or one of its categories by path, in the
// form BLOCK or BLOCK.category.
func findInTree(f *mmcif.File, path string) {
	parts := strings.SplitN(path, ".", 2)
	block := f.DataBlock(parts[0])
	if block == nil {
		fmt.Printf("datablock %q not found\n", parts[0])
		return
	}
	title := color.New(color.FgCyan, color.Bold)
	if len(parts) == 1 {
		title.Printf("data_%s\n", block.ID())
		for _, id := range block.CategoryIDs() {
			fmt.Printf("  _%s\n", id)
		}
		for _, id := range block.SaveFrameIDs() {
			fmt.Printf("  save_%s\n", id)
		}
		return
	}
	cat := block.Category(parts[1])
	if cat == nil {
		fmt.Printf("category %q not found in datablock %q\n", parts[1], block.ID())
		return
	}
	title.Printf("_%s\n", cat.ID())
	for _, it := range cat.Items() {
		shape := "scalar"
		if it.IsColumn() {
			shape = fmt.Sprintf("column[%d]", it.Len())
		}
		fmt.Printf("  %s (%s) = %v\n", color.GreenString(it.ID()), shape, it.FormattedValue())
	}
}
