package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"xdao.co/catid/cidutil"
	"xdao.co/catid/model"
	"xdao.co/catid/storage"
	"xdao.co/catid/storage/casconfig"
	"xdao.co/catid/storage/casregistry"

	_ "xdao.co/catid/storage/grpccas"
	_ "xdao.co/catid/storage/ipfs"
	_ "xdao.co/catid/storage/localfs"
)

type storeFlags struct {
	backend string
	config  string
	prefer  string
}

func (s *storeFlags) add(fs *flag.FlagSet) {
	fs.StringVar(&s.backend, "backend", "localfs", "CAS backend name")
	fs.StringVar(&s.config, "config", "", "Backend config file (.json, .yaml, .yml)")
	fs.StringVar(&s.prefer, "prefer", "", "With --config: backend name or id that receives writes first")
	casregistry.RegisterFlags(fs, casregistry.UsageCLI)
}

func (s *storeFlags) open() (storage.CAS, func() error, error) {
	if s.config != "" {
		cfg, err := casconfig.LoadFile(s.config)
		if err != nil {
			return nil, nil, err
		}
		return cfg.Open(casregistry.UsageCLI, s.prefer)
	}
	return casregistry.Open(s.backend, casregistry.UsageCLI)
}

// newStoreFlagSet parses args and opens the selected store. A non-negative
// code means the command must return it.
func newStoreFlagSet(name string, args []string, errOut io.Writer, extra func(fs *flag.FlagSet)) (*flag.FlagSet, storage.CAS, func(), int) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(errOut)
	var sf storeFlags
	sf.add(fs)
	if extra != nil {
		extra(fs)
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, nil, 2
	}
	cas, closeFn, err := sf.open()
	if err != nil {
		fmt.Fprintln(errOut, err)
		return nil, nil, nil, 1
	}
	done := func() {
		if closeFn != nil {
			_ = closeFn()
		}
	}
	return fs, cas, done, -1
}

func printBackends(w io.Writer) {
	for _, b := range casregistry.List(casregistry.UsageCLI) {
		if b.Description == "" {
			_, _ = fmt.Fprintf(w, "%s\n", b.Name)
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\n", b.Name, b.Description)
	}
}

func cmdPut(args []string, out io.Writer, errOut io.Writer) int {
	var asJSON bool
	fs, cas, done, code := newStoreFlagSet("put", args, errOut, func(fs *flag.FlagSet) {
		fs.BoolVar(&asJSON, "json", false, "Print JSON")
	})
	if code >= 0 {
		return code
	}
	defer done()
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: catid put [store flags] [--json] <file>")
		return 2
	}

	p := fs.Arg(0)
	b, err := os.ReadFile(p)
	if err != nil {
		fmt.Fprintf(errOut, "read %s: %v\n", filepath.Base(p), err)
		return 1
	}
	id, err := cas.Put(b)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if asJSON {
		return writeJSON(out, model.StoreResult{Content: model.NewContentIDView(id), Size: len(b)})
	}
	_, _ = fmt.Fprintln(out, id.Base16())
	return 0
}

func cmdGet(args []string, out io.Writer, errOut io.Writer) int {
	var outPath string
	fs, cas, done, code := newStoreFlagSet("get", args, errOut, func(fs *flag.FlagSet) {
		fs.StringVar(&outPath, "out", "", "Write bytes to this file instead of stdout")
	})
	if code >= 0 {
		return code
	}
	defer done()
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: catid get [store flags] [--out <file>] <content-id>")
		return 2
	}

	id, err := cidutil.ParseContentRef(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "invalid content id: %v\n", err)
		return 1
	}
	b, err := cas.Get(id)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}
	if outPath == "" {
		_, _ = out.Write(b)
		return 0
	}
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		fmt.Fprintf(errOut, "write %s: %v\n", filepath.Base(outPath), err)
		return 1
	}
	return 0
}

func cmdHas(args []string, out io.Writer, errOut io.Writer) int {
	fs, cas, done, code := newStoreFlagSet("has", args, errOut, nil)
	if code >= 0 {
		return code
	}
	defer done()
	if fs.NArg() != 1 {
		fmt.Fprintln(errOut, "usage: catid has [store flags] <content-id>")
		return 2
	}
	id, err := cidutil.ParseContentRef(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(errOut, "invalid content id: %v\n", err)
		return 1
	}
	if !cas.Has(id) {
		_, _ = fmt.Fprintln(out, "absent")
		return 1
	}
	_, _ = fmt.Fprintln(out, "present")
	return 0
}
