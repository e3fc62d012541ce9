package tui

import (
	"crypto/ed25519"
	"crypto/rand"
	"strings"
	"testing"

	gossh "golang.org/x/crypto/ssh"
)

func newPublicKey(t *testing.T) gossh.PublicKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}
	key, err := gossh.NewPublicKey(pub)
	if err != nil {
		t.Fatalf("NewPublicKey error: %v", err)
	}
	return key
}

func TestSessionOwner(t *testing.T) {
	alice := newPublicKey(t)
	bob := newPublicKey(t)

	if got := sessionOwner("alice", alice); !strings.HasPrefix(got, "key:SHA256:") {
		t.Errorf("sessionOwner with a key = %q", got)
	}
	if sessionOwner("alice", alice) != sessionOwner("someone-else", alice) {
		t.Error("the same key should own the same saves under any user name")
	}
	if sessionOwner("alice", alice) == sessionOwner("alice", bob) {
		t.Error("different keys should not share saves")
	}
	if got := sessionOwner("alice", nil); got != "user:alice" {
		t.Errorf("keyless sessionOwner = %q, want user:alice", got)
	}
	if sessionOwner("alice", nil) == sessionOwner("bob", nil) {
		t.Error("keyless users should not share saves")
	}
}
