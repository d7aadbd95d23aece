package profile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBaseAddress(t *testing.T) {
	p := Default()

	if got := p.BaseAddress(0); got != 0x60800000 {
		t.Errorf("BaseAddress(0) = 0x%08X, want 0x60800000", got)
	}
	// offset = 1 * 0x8000 * 2
	if got := p.BaseAddress(1); got != 0x60810000 {
		t.Errorf("BaseAddress(1) = 0x%08X, want 0x60810000", got)
	}
	if got := p.BaseAddress(144); got != 0x60800000+144*0x8000*2 {
		t.Errorf("BaseAddress(144) = 0x%08X", got)
	}
}

func TestPortForAddress(t *testing.T) {
	p := Default()

	for _, port := range []int{0, 1, 80, 144} {
		base := p.BaseAddress(port)
		if got, ok := p.PortForAddress(base); !ok || got != port {
			t.Errorf("PortForAddress(0x%08X) = %d, %v; want %d", base, got, ok, port)
		}
		// Mid-block addresses floor back to the same port.
		if got, ok := p.PortForAddress(base + 0x100); !ok || got != port {
			t.Errorf("PortForAddress(0x%08X) = %d, %v; want %d", base+0x100, got, ok, port)
		}
	}

	if _, ok := p.PortForAddress(0x1000); ok {
		t.Error("expected addresses below the register base to be rejected")
	}
	if _, ok := p.PortForAddress(p.BaseAddress(p.MaxPort) + p.PortStride*2); ok {
		t.Error("expected addresses past the last port to be rejected")
	}
}

func TestValidFlitGroup(t *testing.T) {
	p := Default()
	if !p.ValidFlitGroup(32) {
		t.Error("expected 32 to be a group start")
	}
	if p.ValidFlitGroup(33) {
		t.Error("expected 33 not to be a group start")
	}
}

func TestManagerLoadsProfiles(t *testing.T) {
	dir := t.TempDir()
	content := `
name: retimer-64
description: 64-lane retimer
register_base: 0x40000000
port_stride: 0x4000
max_port: 64
flit_port_groups: [0, 16, 32, 48]
`
	if err := os.WriteFile(filepath.Join(dir, "retimer.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	// Built-in default plus the loaded file
	names := m.Names()
	if len(names) != 2 {
		t.Fatalf("expected 2 profiles, got %v", names)
	}

	p, ok := m.Get("retimer-64")
	if !ok {
		t.Fatal("retimer-64 not loaded")
	}
	if p.RegisterBase != 0x40000000 || p.PortStride != 0x4000 {
		t.Errorf("unexpected geometry: base=0x%08X stride=0x%X", p.RegisterBase, p.PortStride)
	}
	if got := p.BaseAddress(1); got != 0x40008000 {
		t.Errorf("BaseAddress(1) = 0x%08X, want 0x40008000", got)
	}

	if err := m.SetActive("retimer-64"); err != nil {
		t.Fatalf("SetActive failed: %v", err)
	}
	if m.Active().Name != "retimer-64" {
		t.Errorf("active = %s", m.Active().Name)
	}

	if err := m.SetActive("nope"); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestManagerRejectsBadProfile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("name: broken\nport_stride: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewManager(dir); err == nil {
		t.Error("expected error for zero-stride profile")
	}
}

func TestManagerMissingDirIsNotAnError(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if m.Active() == nil {
		t.Fatal("expected built-in default profile")
	}
}
