package ipfs

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"xdao.co/catid/cidutil"
	"xdao.co/catid/storage"
	"xdao.co/catid/storage/testkit"
)

func TestNew_Defaults(t *testing.T) {
	c := New(Options{})
	if c.bin != "ipfs" || c.env != nil {
		t.Fatalf("unexpected defaults: bin=%q env=%v", c.bin, c.env)
	}
	c = New(Options{RepoPath: "/tmp/repo"})
	if got := c.env[len(c.env)-1]; got != "IPFS_PATH=/tmp/repo" {
		t.Fatalf("IPFS_PATH not set, last env entry %q", got)
	}
}

func TestMissingBinary(t *testing.T) {
	c := New(Options{Bin: filepath.Join(t.TempDir(), "no-such-ipfs")})
	if _, err := c.Put([]byte("x")); err == nil {
		t.Fatalf("expected error when the ipfs binary is missing")
	}
	id := cidutil.ContentIDOf([]byte("x"))
	if c.Has(id) {
		t.Fatalf("Has must be false when the ipfs binary is missing")
	}
	if _, err := c.Get(id); err == nil || errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Get: expected an exec error, got %v", err)
	}
}

func TestIsLikelyNotFound(t *testing.T) {
	if !isLikelyNotFound(errors.New("ipfs: Error: block was not found locally (offline)")) {
		t.Fatalf("expected not-found detection")
	}
	if isLikelyNotFound(errors.New("ipfs: permission denied")) || isLikelyNotFound(nil) {
		t.Fatalf("unexpected not-found detection")
	}
}

// TestKubo_Conformance runs against a real Kubo install when one is on PATH.
func TestKubo_Conformance(t *testing.T) {
	bin, err := exec.LookPath("ipfs")
	if err != nil {
		t.Skip("ipfs not on PATH")
	}
	testkit.RunCASConformance(t, func(t *testing.T) storage.CAS {
		repo := t.TempDir()
		cmd := exec.Command(bin, "init", "--profile=test")
		cmd.Env = append(os.Environ(), "IPFS_PATH="+repo)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("ipfs init: %v: %s", err, out)
		}
		return New(Options{Bin: bin, RepoPath: repo})
	})
}
