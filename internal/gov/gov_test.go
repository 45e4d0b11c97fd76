package gov

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	r, err := Load(filepath.Join(t.TempDir(), "governments.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(r.All()) != 0 {
		t.Errorf("units = %d, want 0", len(r.All()))
	}
}

func TestLoadFillsMissingSlugs(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "governments.toml")
	data := `
[[government]]
id = "gov-1111"
name = "Travis County"
type = "county"
state = "TX"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	u, ok := r.Find("travis-county")
	if !ok {
		t.Fatal("Find(travis-county): not found, want slug derived from name")
	}
	if u.ID != "gov-1111" {
		t.Errorf("ID = %q, want gov-1111", u.ID)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "governments.toml")

	r := newRegistry(nil)
	added := r.Add("City of Austin", "city", "TX")
	if err := Save(path, r); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	u, ok := loaded.Find(added.ID)
	if !ok {
		t.Fatalf("Find(%s): not found after reload", added.ID)
	}
	if u.Name != "City of Austin" || u.Slug != "city-of-austin" || u.Type != "city" {
		t.Errorf("unit = %+v", u)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()
	r := newRegistry(nil)
	u := r.Add("Hays County", "county", "TX")

	if id, ok := r.Resolve(u.ID); !ok || id != u.ID {
		t.Errorf("Resolve(id) = (%q, %v)", id, ok)
	}
	if id, ok := r.Resolve("hays-county"); !ok || id != u.ID {
		t.Errorf("Resolve(slug) = (%q, %v)", id, ok)
	}
	if _, ok := r.Resolve("nowhere"); ok {
		t.Error("Resolve(nowhere) ok = true, want false")
	}
}

func TestAddDisambiguatesSlugs(t *testing.T) {
	t.Parallel()
	r := newRegistry(nil)
	first := r.Add("Springfield", "city", "IL")
	second := r.Add("Springfield", "city", "MO")

	if first.Slug != "springfield" {
		t.Errorf("first slug = %q, want springfield", first.Slug)
	}
	if second.Slug == first.Slug {
		t.Errorf("second slug %q collides with first", second.Slug)
	}
	if second.Slug != "springfield-2" {
		t.Errorf("second slug = %q, want springfield-2", second.Slug)
	}
}

func TestAllSortedByName(t *testing.T) {
	t.Parallel()
	r := newRegistry(nil)
	r.Add("Zilker", "district", "TX")
	r.Add("Austin", "city", "TX")

	all := r.All()
	if len(all) != 2 || all[0].Name != "Austin" || all[1].Name != "Zilker" {
		t.Errorf("All() = %+v, want sorted by name", all)
	}
}
