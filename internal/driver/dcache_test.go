package driver

import (
	"path/filepath"
	"testing"

	"ownlint/internal/decl"
)

func openTestCache(t *testing.T) *DiskCache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("ownlint-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	return cache
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache := openTestCache(t)
	key := HashDocument([]byte("types: []"))

	in := DiskPayload{
		Schema: diskCacheSchemaVersion,
		Path:   "decls.yaml",
		Decls: []decl.Decl{
			{
				Name:      "Engine",
				Kind:      decl.KindReference,
				Annotated: true,
				Owns:      []string{"Part"},
				Members:   []decl.Member{{Name: "part", Type: "Part"}},
				Origin:    decl.Origin{Doc: "decls.yaml", Index: 0},
			},
		},
	}
	if err := cache.Put(key, &in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out DiskPayload
	ok, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get reported a miss for a stored key")
	}
	if len(out.Decls) != 1 || out.Decls[0].Name != "Engine" || !out.Decls[0].Annotated {
		t.Fatalf("payload mangled: %+v", out)
	}
	if out.Decls[0].Members[0].Type != "Part" {
		t.Fatalf("member mangled: %+v", out.Decls[0].Members)
	}
}

func TestDiskCacheMissForUnknownKey(t *testing.T) {
	cache := openTestCache(t)
	var out DiskPayload
	ok, err := cache.Get(HashDocument([]byte("never stored")), &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("Get reported a hit for an unknown key")
	}
}

func TestCheckDocumentUsesCache(t *testing.T) {
	cache := openTestCache(t)
	dir := writeDocs(t, map[string]string{"clean.yaml": cleanDoc})
	path := filepath.Join(dir, "clean.yaml")

	first, err := CheckDocument(path, Options{Cache: cache})
	if err != nil {
		t.Fatalf("first CheckDocument: %v", err)
	}
	second, err := CheckDocument(path, Options{Cache: cache})
	if err != nil {
		t.Fatalf("second CheckDocument: %v", err)
	}
	if first.Decls != second.Decls {
		t.Fatalf("cached run saw %d decls, uncached saw %d", second.Decls, first.Decls)
	}
	if second.Bag.Len() != first.Bag.Len() {
		t.Fatal("cached run produced different findings")
	}
}
