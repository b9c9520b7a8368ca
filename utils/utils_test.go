package utils_test

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fullkomnun/protocols/testutils"
	"github.com/fullkomnun/protocols/utils"
)

func TestBatchDescriptorRoundTrip(t *testing.T) {
	want := &utils.BatchDescriptor{
		RootBefore: big.NewInt(12345),
		RootAfter:  new(big.Int).Lsh(big.NewInt(1), 200),
		Orders:     testutils.SampleRawOrders(1, 100),
	}
	path := filepath.Join(t.TempDir(), "batch.json")
	if err := utils.WriteBatchDescriptor(path, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := utils.ReadBatchDescriptor(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.RootBefore.Cmp(want.RootBefore) != 0 ||
		got.RootAfter.Cmp(want.RootAfter) != 0 {
		t.Errorf("roots did not round-trip: got %s / %s",
			got.RootBefore, got.RootAfter)
	}
	if len(got.Orders) != len(want.Orders) {
		t.Fatalf("got %d orders, want %d", len(got.Orders), len(want.Orders))
	}
	for i := range got.Orders {
		g, w := got.Orders[i], want.Orders[i]
		if g.TokenS != w.TokenS || g.TokenB != w.TokenB ||
			g.AmountS.Cmp(w.AmountS) != 0 || g.AmountB.Cmp(w.AmountB) != 0 ||
			g.OrderID != w.OrderID {
			t.Errorf("order %d did not round-trip: got %+v", i, g)
		}
	}
}

func TestReadBatchDescriptorErrors(t *testing.T) {
	if _, err := utils.ReadBatchDescriptor("no-such-file.json"); err == nil {
		t.Error("missing file: expected error")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := utils.ReadBatchDescriptor(path); err == nil {
		t.Error("malformed file: expected error")
	}
}

func TestShouldReprove(t *testing.T) {
	dir := t.TempDir()
	batch := filepath.Join(dir, "batch.json")
	artifact := filepath.Join(dir, "batch.proof")

	if !utils.ShouldReprove(batch, artifact) {
		t.Error("missing batch file: want true")
	}
	if err := os.WriteFile(batch, []byte("{}"), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !utils.ShouldReprove(batch, artifact) {
		t.Error("missing artifact: want true")
	}
	if err := os.WriteFile(artifact, []byte("proof"), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if utils.ShouldReprove(batch, artifact) {
		t.Error("fresh artifact: want false")
	}

	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(batch, later, later); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !utils.ShouldReprove(batch, artifact) {
		t.Error("stale artifact: want true")
	}
}
