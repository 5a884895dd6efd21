package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissing(t *testing.T) {
	s := NewStore(t.TempDir())
	st, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(st.Views) != 0 {
		t.Errorf("views = %v, want none", st.Views)
	}
	if _, ok := st.Current(); ok {
		t.Error("empty session has no current view")
	}
}

func TestSaveLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".vimnav")
	s := NewStore(dir)
	want := State{
		Views: []View{
			{ID: "a", Location: "index.md", ScrollTop: 4, Back: []string{"about:start"}},
			{ID: "b", Location: "notes/x.md#part"},
		},
		Active: 1,
	}
	if err := s.Save(want); err != nil {
		t.Fatal(err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Views) != 2 || got.Active != 1 {
		t.Fatalf("got %+v", got)
	}
	if got.Views[0].ScrollTop != 4 || got.Views[0].Back[0] != "about:start" {
		t.Errorf("first view = %+v", got.Views[0])
	}
	cur, ok := got.Current()
	if !ok || cur.ID != "b" {
		t.Errorf("Current() = %+v, %v", cur, ok)
	}
	if _, err := os.Stat(filepath.Join(dir, "session.json.tmp")); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}

func TestLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "session.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	st, err := NewStore(dir).Load()
	if err == nil {
		t.Error("corrupt session should fail")
	}
	if len(st.Views) != 0 {
		t.Error("corrupt session should load as empty")
	}
}

func TestCurrentClamps(t *testing.T) {
	st := State{Views: []View{{ID: "a"}, {ID: "b"}}, Active: 7}
	if cur, _ := st.Current(); cur.ID != "b" {
		t.Errorf("Current() = %q, want b", cur.ID)
	}
}
