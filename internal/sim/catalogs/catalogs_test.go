package catalogs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func TestDefaultCatalogs(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if len(c.Items.Palette) != 16 {
		t.Fatalf("items=%d", len(c.Items.Palette))
	}
	chest, ok := c.Recipes.ByID["chest"]
	if !ok {
		t.Fatalf("missing chest recipe")
	}
	cost := chest.Cost()
	if cost["wood"] != 20 || cost["stone"] != 10 {
		t.Fatalf("chest cost=%v", cost)
	}
	if c.Shop.BuyPrice["corn_seed"] != 200 || c.Shop.SellPrice["wool"] != 30 {
		t.Fatalf("shop prices: %v %v", c.Shop.BuyPrice, c.Shop.SellPrice)
	}
	if c.Items.Digest == "" || c.Recipes.Digest == "" || c.Shop.Digest == "" {
		t.Fatalf("missing digests")
	}
}

func TestLoadFromDirMatchesDefault(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{itemsFile, recipesFile, shopJSON} {
		b, err := defaultFS.ReadFile("defaults/" + name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), b, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	a, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	b, _ := Default()
	if a.Items.Digest != b.Items.Digest || a.Shop.Digest != b.Shop.Digest {
		t.Fatalf("digest mismatch")
	}
}

func defaultFiles(t *testing.T) fstest.MapFS {
	t.Helper()
	m := fstest.MapFS{}
	for _, name := range []string{itemsFile, recipesFile, shopJSON} {
		b, err := defaultFS.ReadFile("defaults/" + name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		m[name] = &fstest.MapFile{Data: b}
	}
	return m
}

func TestSchemaRejectsBadFiles(t *testing.T) {
	cases := map[string]string{
		itemsFile:   `[{"id":"wheat_seed","category":"weapon"}]`,
		recipesFile: `[{"recipe_id":"fence","inputs":[{"item":"wood","count":0}],"outputs":[{"item":"fence","count":1}]}]`,
		shopJSON:    `{"buy":[{"item":"wheat_seed","price":-1}],"sell":[]}`,
	}
	for name, body := range cases {
		m := defaultFiles(t)
		m[name] = &fstest.MapFile{Data: []byte(body)}
		if _, err := LoadFS(m); err == nil {
			t.Fatalf("%s: expected schema error", name)
		}
	}
}

func TestCrossCheckRejectsUnknownRefs(t *testing.T) {
	m := defaultFiles(t)
	m[recipesFile] = &fstest.MapFile{Data: []byte(`[{"recipe_id":"gate","inputs":[{"item":"iron","count":2}],"outputs":[{"item":"fence","count":1}]}]`)}
	_, err := LoadFS(m)
	if err == nil || !strings.Contains(err.Error(), "iron") {
		t.Fatalf("expected unknown item error, got %v", err)
	}

	m = defaultFiles(t)
	m[itemsFile] = &fstest.MapFile{Data: []byte(`[{"id":"wheat_seed","category":"seed"}]`)}
	if _, err := LoadFS(m); err == nil {
		t.Fatalf("expected missing crop items rejected")
	}
}

func TestSuggest(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	if s, ok := c.Suggest("wheat_sed"); !ok || s != "wheat_seed" {
		t.Fatalf("suggest=%q ok=%v", s, ok)
	}
	if s, ok := c.Suggest("Egg"); !ok || s != "egg" {
		t.Fatalf("case-insensitive suggest=%q", s)
	}
	if _, ok := c.Suggest("spaceship"); ok {
		t.Fatalf("expected no suggestion")
	}
	if msg := c.UnknownItemMessage("scarcrow"); !strings.Contains(msg, "did you mean scarecrow") {
		t.Fatalf("msg=%q", msg)
	}
}
