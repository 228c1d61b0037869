package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"xdao.co/catid/cidutil"
	"xdao.co/catid/storage/grpccas"
	"xdao.co/catid/storage/memory"
)

func TestRun_ListBackends(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := run(context.Background(), []string{"--list-backends"}, &out, &errOut); code != 0 {
		t.Fatalf("code %d: %s", code, errOut.String())
	}
	for _, name := range []string{"ipfs", "localfs", "memory"} {
		if !strings.Contains(out.String(), name+"\t") {
			t.Fatalf("missing %s in %q", name, out.String())
		}
	}
	if strings.Contains(out.String(), "grpc\t") {
		t.Fatalf("grpc client backend must not be offered to the daemon")
	}
}

func TestRun_BadFlags(t *testing.T) {
	cases := [][]string{
		{"--log-level", "loud"},
		{"--backend", "nope"},
		{"--backend", "localfs"},
		{"--no-such-flag"},
	}
	for _, args := range cases {
		var out, errOut bytes.Buffer
		if code := run(context.Background(), args, &out, &errOut); code != 2 {
			t.Fatalf("%v: code %d", args, code)
		}
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errOut bytes.Buffer
	code := run(ctx, []string{"--listen", "127.0.0.1:0", "--backend", "memory"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("code %d: %s", code, errOut.String())
	}
	if !strings.Contains(errOut.String(), "msg=listening") || !strings.Contains(errOut.String(), "msg=stopped") {
		t.Fatalf("unexpected log output: %s", errOut.String())
	}
}

func TestRun_Config(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "cas.json")
	body := `{"write_policy":"all","backends":[{"name":"memory"},{"name":"localfs","config":{"localfs-dir":"` + filepath.ToSlash(filepath.Join(dir, "store")) + `"}}]}`
	if err := os.WriteFile(cfg, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errOut bytes.Buffer
	if code := run(ctx, []string{"--listen", "127.0.0.1:0", "--config", cfg}, &out, &errOut); code != 0 {
		t.Fatalf("code %d: %s", code, errOut.String())
	}
}

func TestServe_RoundTripAndGracefulStop(t *testing.T) {
	lis := bufconn.Listen(1024 * 1024)
	ctx, cancel := context.WithCancel(context.Background())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	done := make(chan error, 1)
	go func() { done <- serve(ctx, lis, memory.New(), logger) }()

	cc, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("DialContext: %v", err)
	}
	client := grpccas.NewClient(cc)
	client.Timeout = 2 * time.Second
	defer client.Close()

	id, err := client.Put([]byte("hello"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if id != cidutil.ContentIDOf([]byte("hello")) || !client.Has(id) {
		t.Fatalf("unexpected id %s", id)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not stop")
	}
}
