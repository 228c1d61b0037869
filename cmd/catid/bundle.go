package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"xdao.co/catid/catid"
	"xdao.co/catid/cidutil"
	"xdao.co/catid/storage/bundle"
)

// labelFlags collects repeated --label <catalog-id>=<content-id> values.
type labelFlags map[catid.CatalogID]catid.ContentID

func (l labelFlags) String() string { return fmt.Sprintf("%d labels", len(l)) }

func (l labelFlags) Set(v string) error {
	cat, content, ok := strings.Cut(v, "=")
	if !ok {
		return fmt.Errorf("want <catalog-id>=<content-id>, got %q", v)
	}
	c, err := catid.Parse(cat)
	if err != nil {
		return err
	}
	id, err := cidutil.ParseContentRef(content)
	if err != nil {
		return err
	}
	l[c] = id
	return nil
}

func cmdBundle(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "usage: catid bundle <subcommand> ...")
		fmt.Fprintln(errOut, "subcommands: export, import")
		return 2
	}
	switch args[0] {
	case "export":
		return cmdBundleExport(args[1:], out, errOut)
	case "import":
		return cmdBundleImport(args[1:], out, errOut)
	default:
		fmt.Fprintf(errOut, "unknown bundle subcommand: %s\n", args[0])
		return 2
	}
}

func cmdBundleExport(args []string, out io.Writer, errOut io.Writer) int {
	var outPath string
	var noIndex bool
	labels := labelFlags{}
	fs, cas, done, code := newStoreFlagSet("bundle export", args, errOut, func(fs *flag.FlagSet) {
		fs.StringVar(&outPath, "out", "", "Bundle file to write")
		fs.BoolVar(&noIndex, "no-index", false, "Omit index.json")
		fs.Var(labels, "label", "Label <catalog-id>=<content-id> (repeatable)")
	})
	if code >= 0 {
		return code
	}
	defer done()
	if outPath == "" || fs.NArg() == 0 {
		fmt.Fprintln(errOut, "usage: catid bundle export [store flags] --out <tar> [--label <catalog-id>=<content-id> ...] <content-id>...")
		return 2
	}

	ids := make([]catid.ContentID, 0, fs.NArg())
	seen := make(map[catid.ContentID]struct{}, fs.NArg())
	for _, arg := range fs.Args() {
		id, err := cidutil.ParseContentRef(arg)
		if err != nil {
			fmt.Fprintf(errOut, "invalid content id %q: %v\n", arg, err)
			return 1
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	opts := bundle.ExportOptions{IncludeIndex: !noIndex, Labels: labels}
	if err := bundle.Export(f, cas, ids, opts); err != nil {
		_ = f.Close()
		_ = os.Remove(outPath)
		fmt.Fprintln(errOut, err)
		return 1
	}
	if err := f.Close(); err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	_, _ = fmt.Fprintf(out, "exported %d blocks\n", len(ids))
	return 0
}

func cmdBundleImport(args []string, out io.Writer, errOut io.Writer) int {
	var ignoreUnknown bool
	fs, cas, done, code := newStoreFlagSet("bundle import", args, errOut, func(fs *flag.FlagSet) {
		fs.BoolVar(&ignoreUnknown, "ignore-unknown", false, "Skip unknown bundle entries")
	})
	if code >= 0 {
		return code
	}
	defer done()
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: catid bundle import [store flags] [--ignore-unknown] <tar>")
		return 2
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	defer f.Close()

	res, err := bundle.ImportWithOptions(f, cas, bundle.ImportOptions{IgnoreUnknown: ignoreUnknown})
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	for _, id := range res.Blocks {
		_, _ = fmt.Fprintln(out, id.Base16())
	}
	if res.Index != nil {
		for _, l := range res.Index.Labels {
			_, _ = fmt.Fprintf(out, "label\t%s\t%s\n", l.Catalog.Base62(), l.Content.Base16())
		}
	}
	return 0
}
