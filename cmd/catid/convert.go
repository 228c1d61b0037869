package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"

	"xdao.co/catid/catid"
	"xdao.co/catid/model"
)

func cmdConvert(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(errOut)
	var from, to string
	var asJSON bool
	fs.StringVar(&from, "from", "auto", "Input form: auto, base16, base62, raw-hex")
	fs.StringVar(&to, "to", "all", "Output form: all, base16, base62, raw-hex")
	fs.BoolVar(&asJSON, "json", false, "Print JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: catid convert [--from ...] [--to ...] [--json] <id>")
		return 2
	}

	id, err := parseCatalogID(from, fs.Arg(0))
	if err != nil {
		if asJSON {
			writeJSON(out, map[string]any{"error": model.ErrorFrom(err)})
		}
		fmt.Fprintf(errOut, "invalid id: %v\n", err)
		return 1
	}

	view := model.NewCatalogIDView(id)
	if asJSON {
		if to != "all" {
			fmt.Fprintln(errOut, "--json prints every form; omit --to")
			return 2
		}
		return writeJSON(out, view)
	}
	switch to {
	case "all":
		fmt.Fprintf(out, "base16\t%s\n", view.Base16)
		fmt.Fprintf(out, "base62\t%s\n", view.Base62)
		fmt.Fprintf(out, "raw\t%s\n", view.RawHex)
	case "base16":
		fmt.Fprintln(out, view.Base16)
	case "base62":
		fmt.Fprintln(out, view.Base62)
	case "raw-hex":
		fmt.Fprintln(out, view.RawHex)
	default:
		fmt.Fprintf(errOut, "unknown --to form: %s\n", to)
		return 2
	}
	return 0
}

func parseCatalogID(form, s string) (catid.CatalogID, error) {
	switch form {
	case "auto":
		return catid.Parse(s)
	case "base16":
		return catid.FromBase16(s)
	case "base62":
		return catid.FromBase62(s)
	case "raw-hex":
		b, err := hex.DecodeString(s)
		if err != nil {
			return catid.CatalogID{}, model.NewError(model.ErrInvalidRequest, fmt.Sprintf("raw-hex: %v", err))
		}
		return catid.FromRaw(b)
	default:
		return catid.CatalogID{}, model.NewError(model.ErrInvalidRequest, fmt.Sprintf("unknown --from form: %s", form))
	}
}
