package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"xdao.co/catid/catid"
	"xdao.co/catid/cidutil"
	"xdao.co/catid/model"
)

func cmdContent(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("content", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var file string
	var asJSON bool
	fs.StringVar(&file, "file", "", "Derive the content id of this file's bytes")
	fs.BoolVar(&asJSON, "json", false, "Print JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if (file == "") == (fs.NArg() == 0) || fs.NArg() > 1 {
		fmt.Fprintln(errOut, "usage: catid content [--json] (<40-hex> | <cid> | --file <path>)")
		return 2
	}

	var id catid.ContentID
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(errOut, "read %s: %v\n", filepath.Base(file), err)
			return 1
		}
		id = cidutil.ContentIDOf(b)
	} else {
		var err error
		id, err = cidutil.ParseContentRef(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(errOut, "invalid content id: %v\n", err)
			return 1
		}
	}

	view := model.NewContentIDView(id)
	if asJSON {
		return writeJSON(out, view)
	}
	fmt.Fprintf(out, "base16\t%s\n", view.Base16)
	fmt.Fprintf(out, "cid\t%s\n", view.CID)
	return 0
}
