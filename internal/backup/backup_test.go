package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStore(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestCreate_MissingStore(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing.json"))
	if _, err := m.Create(); err == nil {
		t.Fatal("expected error for missing store")
	}
}

func TestCreateAndList(t *testing.T) {
	dir := t.TempDir()
	store := writeStore(t, dir, "flowplan.json", `{"version":1}`)
	m := NewManager(store)

	path, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), BackupFilePrefix) {
		t.Errorf("backup name %q missing prefix", filepath.Base(path))
	}
	if !strings.HasSuffix(path, ".json") {
		t.Errorf("backup %q should keep the store extension", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != `{"version":1}` {
		t.Errorf("backup content = %q", data)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}
	if backups[0].Path != path {
		t.Errorf("List path = %q, want %q", backups[0].Path, path)
	}
	if backups[0].Size == 0 {
		t.Error("backup size should be nonzero")
	}
}

func TestCreate_UniqueNames(t *testing.T) {
	dir := t.TempDir()
	store := writeStore(t, dir, "flowplan.json", `{}`)
	m := NewManager(store)

	// Same-second backups must not clobber each other.
	first, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if first == second {
		t.Errorf("expected distinct backup paths, both %q", first)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("expected 2 backups, got %d", len(backups))
	}
}

func TestList_IgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store := writeStore(t, dir, "flowplan.json", `{}`)
	m := NewManager(store)

	if _, err := m.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}
	writeStore(t, m.BackupDir(), "notes.txt", "not a backup")
	writeStore(t, m.BackupDir(), BackupFilePrefix+"garbage.json", "bad timestamp")

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("expected 1 backup, got %d", len(backups))
	}
}

func TestList_EmptyWithoutDir(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "flowplan.json"))
	backups, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestRestore(t *testing.T) {
	dir := t.TempDir()
	store := writeStore(t, dir, "flowplan.json", `{"state":"good"}`)
	m := NewManager(store)

	backupPath, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Corrupt the live store, then restore.
	writeStore(t, dir, "flowplan.json", `{"state":"bad"}`)
	if err := m.Restore(backupPath); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	data, err := os.ReadFile(store)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != `{"state":"good"}` {
		t.Errorf("restored content = %q", data)
	}

	// The pre-restore state must itself have been backed up.
	backups, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) < 2 {
		t.Errorf("expected pre-restore backup, got %d backups", len(backups))
	}
}

func TestRestore_RejectsEmptyBackup(t *testing.T) {
	dir := t.TempDir()
	store := writeStore(t, dir, "flowplan.json", `{}`)
	m := NewManager(store)

	empty := writeStore(t, dir, "empty.json", "")
	if err := m.Restore(empty); err == nil {
		t.Fatal("expected error restoring empty backup")
	}
}

func TestRotation(t *testing.T) {
	dir := t.TempDir()
	store := writeStore(t, dir, "flowplan.json", `{}`)
	m := NewManager(store)

	for i := 0; i < MaxBackups+3; i++ {
		if _, err := m.Create(); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) > MaxBackups {
		t.Errorf("rotation kept %d backups, limit is %d", len(backups), MaxBackups)
	}
}
