package casconfig

import (
	"os"
	"path/filepath"
	"testing"

	"xdao.co/catid/storage"
	"xdao.co/catid/storage/casregistry"

	_ "xdao.co/catid/storage/localfs"
	_ "xdao.co/catid/storage/memory"
)

func TestLoadFile_YAMLAndJSONAgree(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "cas.yaml")
	jsonPath := filepath.Join(dir, "cas.json")
	if err := os.WriteFile(yamlPath, []byte("write_policy: all\nbackends:\n  - name: localfs\n    id: disk\n    config:\n      localfs-dir: /tmp/x\n  - name: memory\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(jsonPath, []byte(`{"write_policy":"all","backends":[{"name":"localfs","id":"disk","config":{"localfs-dir":"/tmp/x"}},{"name":"memory"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	y, err := LoadFile(yamlPath)
	if err != nil {
		t.Fatalf("LoadFile(yaml): %v", err)
	}
	j, err := LoadFile(jsonPath)
	if err != nil {
		t.Fatalf("LoadFile(json): %v", err)
	}
	if y.WritePolicy != "all" || j.WritePolicy != "all" {
		t.Fatalf("write policy: yaml=%q json=%q", y.WritePolicy, j.WritePolicy)
	}
	if len(y.Backends) != 2 || len(j.Backends) != 2 {
		t.Fatalf("backends: yaml=%d json=%d", len(y.Backends), len(j.Backends))
	}
	if y.Backends[0].Config["localfs-dir"] != "/tmp/x" || j.Backends[0].Config["localfs-dir"] != "/tmp/x" {
		t.Fatalf("backend config not decoded")
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]Config{
		"no backends":  {},
		"missing name": {Backends: []BackendConfig{{}}},
		"duplicate id": {Backends: []BackendConfig{{Name: "memory"}, {Name: "localfs", ID: "memory"}}},
		"bad policy":   {WritePolicy: "some", Backends: []BackendConfig{{Name: "memory"}}},
	}
	for name, cfg := range cases {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParseJSON_RejectsUnknownFields(t *testing.T) {
	if _, err := ParseJSON([]byte(`{"backends":[{"name":"memory"}],"extra":1}`)); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestOpen_WritePolicies(t *testing.T) {
	dir := t.TempDir()
	base := []BackendConfig{
		{Name: "memory", ID: "mem"},
		{Name: "localfs", ID: "disk", Config: map[string]string{"localfs-dir": dir}},
	}

	first := Config{Backends: base}
	cas, closeFn, err := first.Open(casregistry.UsageDaemon, "disk")
	if err != nil {
		t.Fatalf("Open(first): %v", err)
	}
	defer closeFn()
	multi, ok := cas.(storage.MultiCAS)
	if !ok {
		t.Fatalf("expected MultiCAS, got %T", cas)
	}
	id, err := multi.Put([]byte("preferred"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !multi.Adapters[0].Has(id) || multi.Adapters[1].Has(id) {
		t.Fatalf("expected write to the preferred backend only")
	}

	all := Config{WritePolicy: "all", Backends: base}
	cas, closeFn2, err := all.Open(casregistry.UsageDaemon, "")
	if err != nil {
		t.Fatalf("Open(all): %v", err)
	}
	defer closeFn2()
	rep, ok := cas.(storage.ReplicatingCAS)
	if !ok {
		t.Fatalf("expected ReplicatingCAS, got %T", cas)
	}
	_, per, err := rep.PutAll([]byte("replicated"))
	if err != nil {
		t.Fatalf("PutAll: %v", err)
	}
	if len(per) != 2 || per["mem"] != per["disk"] {
		t.Fatalf("unexpected per-backend ids: %v", per)
	}

	if _, _, err := first.Open(casregistry.UsageDaemon, "nope"); err == nil {
		t.Fatalf("expected missing preferred backend error")
	}
}

func TestOpen_SingleBackendUnwrapped(t *testing.T) {
	cfg := Config{Backends: []BackendConfig{{Name: "memory"}}}
	cas, closeFn, err := cfg.Open(casregistry.UsageDaemon, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()
	if _, ok := cas.(storage.MultiCAS); ok {
		t.Fatalf("single backend should not be wrapped")
	}
}
