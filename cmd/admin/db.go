package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"harvestvalley.farm/internal/persistence/indexdb"
)

func dbCmd(args []string) {
	fs := flag.NewFlagSet("db", flag.ExitOnError)
	dataDir, farmID := farmPaths(fs)
	dbPath := fs.String("db", "", "sqlite db path (optional)")
	limit := fs.Int("limit", 20, "result limit")
	_ = fs.Parse(args)

	q := "saves"
	if fs.NArg() > 0 {
		q = strings.TrimSpace(fs.Arg(0))
	}
	path := strings.TrimSpace(*dbPath)
	if path == "" {
		path = indexPath(filepath.Join(*dataDir, *farmID))
	}

	r, err := indexdb.OpenReader(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open:", err)
		os.Exit(1)
	}
	defer r.Close()
	ctx := context.Background()

	switch q {
	case "saves":
		saves, err := r.Saves(ctx, *limit)
		if err != nil {
			fmt.Fprintln(os.Stderr, "query:", err)
			os.Exit(1)
		}
		for _, s := range saves {
			printJSON(s)
		}
	case "actions":
		counts, err := r.ActionCounts(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, "query:", err)
			os.Exit(1)
		}
		for _, line := range formatActionCounts(counts) {
			fmt.Println(line)
		}
	case "catalogs":
		for _, name := range []string{"items", "recipes", "shop", "tuning"} {
			d, ok, err := r.CatalogDigest(ctx, name)
			if err != nil {
				fmt.Fprintln(os.Stderr, "query:", err)
				os.Exit(1)
			}
			if !ok {
				d = "-"
			}
			fmt.Printf("%-8s %s\n", name, d)
		}
	default:
		fmt.Fprintln(os.Stderr, "unknown query:", q, "(want saves, actions or catalogs)")
		os.Exit(2)
	}
}

// formatActionCounts renders "TYPE code count" lines sorted by type then code.
// Successful actions are shown with code "ok".
func formatActionCounts(counts map[string]map[string]int) []string {
	var out []string
	for typ, byCode := range counts {
		for code, n := range byCode {
			if code == "" {
				code = "ok"
			}
			out = append(out, fmt.Sprintf("%-12s %-20s %d", typ, code, n))
		}
	}
	sort.Strings(out)
	return out
}
