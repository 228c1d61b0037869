package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}

	switch args[0] {
	case "convert":
		return cmdConvert(args[1:], out, errOut)
	case "content":
		return cmdContent(args[1:], out, errOut)
	case "put":
		return cmdPut(args[1:], out, errOut)
	case "get":
		return cmdGet(args[1:], out, errOut)
	case "has":
		return cmdHas(args[1:], out, errOut)
	case "bundle":
		return cmdBundle(args[1:], out, errOut)
	case "backends":
		printBackends(out)
		return 0
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "catid: catalog and content identifier tool")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  catid convert [--from auto|base16|base62|raw-hex] [--to all|base16|base62|raw-hex] [--json] <id>")
	fmt.Fprintln(w, "  catid content [--json] (<40-hex> | <cid> | --file <path>)")
	fmt.Fprintln(w, "  catid put [store flags] [--json] <file>")
	fmt.Fprintln(w, "  catid get [store flags] [--out <file>] <content-id>")
	fmt.Fprintln(w, "  catid has [store flags] <content-id>")
	fmt.Fprintln(w, "  catid bundle export [store flags] --out <tar> [--label <catalog-id>=<content-id> ...] <content-id>...")
	fmt.Fprintln(w, "  catid bundle import [store flags] [--ignore-unknown] <tar>")
	fmt.Fprintln(w, "  catid backends")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Store flags:")
	fmt.Fprintln(w, "  --backend <name>     backend to open (default localfs; see 'catid backends')")
	fmt.Fprintln(w, "  --config <file>      multi-backend config (.json, .yaml, .yml); overrides --backend")
	fmt.Fprintln(w, "  --prefer <id>        with --config: backend that receives writes first")
	fmt.Fprintln(w, "  backend flags such as --localfs-dir, --grpc-target, --ipfs-path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - catalog ids: 32 lowercase hex chars or 22 base-62 chars (0-9a-zA-Z)")
	fmt.Fprintln(w, "  - content ids: 40 lowercase hex chars, the sha1 of the stored bytes")
	fmt.Fprintln(w, "  - content ids also accept their CIDv1 (raw + sha1) form")
}
