package mmcif

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Write renders the whole tree as literal CIF text: a data_ header per
// block, plain tag/value lines for scalar categories, loop_ sections for
// looped ones, and save_ ... save_ wrapping for each save frame. Every
// token comes from FormatValue, so the output tokenizes back to the
// stored values.
func Write(w io.Writer, f *File) error {
	bw := bufio.NewWriter(w)
	for _, b := range f.DataBlocks() {
		fmt.Fprintf(bw, "data_%s\n#\n", b.ID())
		for _, c := range b.Categories() {
			if err := writeCategory(bw, c); err != nil {
				return err
			}
		}
		for _, s := range b.SaveFrames() {
			fmt.Fprintf(bw, "save_%s\n#\n", s.ID())
			for _, c := range s.Categories() {
				if err := writeCategory(bw, c); err != nil {
					return err
				}
			}
			fmt.Fprint(bw, "save_\n#\n")
		}
	}
	return bw.Flush()
}

func writeCategory(w *bufio.Writer, c *Category) error {
	items := c.Items()
	if len(items) == 0 {
		return nil
	}

	if !c.IsTable() {
		for _, it := range items {
			tag := "_" + c.ID() + "." + it.ID()
			var v any
			if it.Len() > 0 {
				v = it.RawValue()
			}
			fmt.Fprintf(w, "%-*s %s\n", c.maxTagLen, tag, FormatValue(v))
		}
		fmt.Fprint(w, "#\n")
		return nil
	}

	// Looped category. The model never forces equal column lengths, so
	// the ragged case has to be caught here.
	rows := -1
	for _, it := range items {
		if rows == -1 {
			rows = it.Len()
			continue
		}
		if it.Len() != rows {
			return fmt.Errorf("category %q: ragged loop: item %q has %d values, want %d",
				c.ID(), it.ID(), it.Len(), rows)
		}
	}

	fmt.Fprint(w, "loop_\n")
	for _, it := range items {
		fmt.Fprintf(w, "_%s.%s\n", c.ID(), it.ID())
	}
	toks := make([]string, len(items))
	for r := 0; r < rows; r++ {
		for i, it := range items {
			toks[i] = FormatValue(it.vals[r])
		}
		fmt.Fprintf(w, "%s\n", strings.Join(toks, " "))
	}
	fmt.Fprint(w, "#\n")
	return nil
}
