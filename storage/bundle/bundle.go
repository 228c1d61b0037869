// Package bundle moves stored objects between stores as a deterministic TAR.
//
// Layout:
//
//	blocks/<40-hex content id>   object bytes
//	index.json                   optional, non-authoritative
//
// The index lists every block and may label catalog identifiers with the
// content they resolve to. Import trusts only the bytes: every block is
// re-hashed and must match its file name.
package bundle

import (
	"archive/tar"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"xdao.co/catid/catid"
	"xdao.co/catid/cidutil"
	"xdao.co/catid/storage"
)

// FormatVersion is the current bundle index schema version.
const FormatVersion = 1

var epoch0 = time.Unix(0, 0).UTC()

// ExportOptions controls bundle export behavior.
type ExportOptions struct {
	// Labels maps catalog identifiers to the content they resolve to. Every
	// labelled ContentID must also be exported.
	Labels map[catid.CatalogID]catid.ContentID
	// IncludeIndex controls whether index.json is included.
	IncludeIndex bool
}

// Export writes the objects for ids to w.
//
// Output bytes depend only on the set of ids and their contents: entries are
// sorted, duplicates collapse, and TAR headers are normalized.
func Export(w io.Writer, cas storage.CAS, ids []catid.ContentID, opts ExportOptions) error {
	if cas == nil {
		return fmt.Errorf("bundle: nil CAS")
	}

	uniq := make(map[catid.ContentID]struct{}, len(ids))
	sorted := make([]catid.ContentID, 0, len(ids))
	for _, id := range ids {
		if _, ok := uniq[id]; ok {
			continue
		}
		uniq[id] = struct{}{}
		sorted = append(sorted, id)
	}
	sort.Slice(sorted, func(i, j int) bool { return bytes.Compare(sorted[i][:], sorted[j][:]) < 0 })

	for cat, id := range opts.Labels {
		if _, ok := uniq[id]; !ok {
			return fmt.Errorf("bundle: label %s refers to unexported content %s", cat, id)
		}
	}

	tw := tar.NewWriter(w)
	fail := func(err error) error {
		_ = tw.Close()
		return err
	}

	blocks := make([]IndexBlock, 0, len(sorted))
	for _, id := range sorted {
		b, err := cas.Get(id)
		if err != nil {
			return fail(fmt.Errorf("bundle: get %s: %w", id, err))
		}
		if cidutil.ContentIDOf(b) != id {
			return fail(storage.ErrIDMismatch)
		}
		if err := writeFile(tw, "blocks/"+id.Base16(), b); err != nil {
			return fail(err)
		}
		blocks = append(blocks, IndexBlock{ID: id, CID: cidutil.CID(id).String(), Size: len(b)})
	}

	if opts.IncludeIndex {
		idx := Index{
			Version: FormatVersion,
			Hash:    "sha1",
			Blocks:  blocks,
			Labels:  sortedLabels(opts.Labels),
		}
		b, err := json.Marshal(idx)
		if err != nil {
			return fail(err)
		}
		if err := writeFile(tw, "index.json", append(b, '\n')); err != nil {
			return fail(err)
		}
	}

	return tw.Close()
}

func sortedLabels(m map[catid.CatalogID]catid.ContentID) []Label {
	if len(m) == 0 {
		return nil
	}
	out := make([]Label, 0, len(m))
	for cat, id := range m {
		out = append(out, Label{Catalog: cat, Content: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Catalog.Cmp(out[j].Catalog) < 0 })
	return out
}

// ImportOptions controls bundle import behavior.
type ImportOptions struct {
	// IgnoreUnknown skips unknown TAR entries instead of failing.
	IgnoreUnknown bool
}

// Result reports what Import stored.
type Result struct {
	Blocks []catid.ContentID
	// Index is the parsed index.json, or nil when the bundle has none.
	Index *Index
}

// Import reads a bundle from r and stores all blocks in cas, failing closed
// on unknown entries.
func Import(r io.Reader, cas storage.CAS) (Result, error) {
	return ImportWithOptions(r, cas, ImportOptions{})
}

// ImportWithOptions is Import with explicit options.
func ImportWithOptions(r io.Reader, cas storage.CAS, opts ImportOptions) (Result, error) {
	var res Result
	if cas == nil {
		return res, fmt.Errorf("bundle: nil CAS")
	}

	tr := tar.NewReader(r)
	seen := map[catid.ContentID]struct{}{}

	for {
		h, err := tr.Next()
		if err == io.EOF {
			return res, nil
		}
		if err != nil {
			return res, err
		}
		name := cleanTarPath(h.Name)
		if name == "" {
			return res, fmt.Errorf("bundle: invalid entry path: %q", h.Name)
		}

		if h.Typeflag != tar.TypeReg {
			if opts.IgnoreUnknown {
				continue
			}
			return res, fmt.Errorf("bundle: unexpected tar entry type: %v (%s)", h.Typeflag, name)
		}

		if name == "index.json" {
			var idx Index
			if err := json.NewDecoder(tr).Decode(&idx); err != nil {
				return res, fmt.Errorf("bundle: index.json: %w", err)
			}
			res.Index = &idx
			continue
		}

		if !strings.HasPrefix(name, "blocks/") {
			if opts.IgnoreUnknown {
				continue
			}
			return res, fmt.Errorf("bundle: unknown entry: %s", name)
		}

		id, err := catid.ParseContentID(strings.TrimPrefix(name, "blocks/"))
		if err != nil {
			return res, fmt.Errorf("%w: %s", storage.ErrInvalidID, name)
		}
		if _, ok := seen[id]; ok {
			return res, fmt.Errorf("bundle: duplicate block entry: %s", id)
		}
		seen[id] = struct{}{}

		payload, err := io.ReadAll(tr)
		if err != nil {
			return res, err
		}
		if cidutil.ContentIDOf(payload) != id {
			return res, storage.ErrIDMismatch
		}
		putID, err := cas.Put(payload)
		if err != nil {
			return res, err
		}
		if putID != id {
			return res, storage.ErrIDMismatch
		}
		res.Blocks = append(res.Blocks, id)
	}
}

// Index is the schema of index.json.
type Index struct {
	Version int          `json:"version"`
	Hash    string       `json:"hash"`
	Blocks  []IndexBlock `json:"blocks"`
	Labels  []Label      `json:"labels,omitempty"`
}

// IndexBlock describes one exported block.
type IndexBlock struct {
	ID   catid.ContentID `json:"id"`
	CID  string          `json:"cid"`
	Size int             `json:"size"`
}

// Label ties a catalog identifier to stored content.
type Label struct {
	Catalog catid.CatalogID `json:"catalog"`
	Content catid.ContentID `json:"content"`
}

func writeFile(tw *tar.Writer, name string, content []byte) error {
	hdr := &tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     int64(len(content)),
		ModTime:  epoch0,
		Typeflag: tar.TypeReg,
		Format:   tar.FormatUSTAR,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := tw.Write(content)
	return err
}

func cleanTarPath(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\\", "/")
	name = strings.TrimPrefix(name, "./")
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return ""
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return ""
		}
	}
	return name
}
