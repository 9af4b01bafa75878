// Package testutil provides shared assertions and deterministic fixtures for
// registry and navigation tests.
package testutil

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vanderheijden86/algodocs/pkg/registry"
)

var topics = []string{
	"heap-sort", "quick-sort", "merge-sort", "binary-search", "bfs", "dfs",
	"dijkstra", "bellman-ford", "kruskal", "prim", "topological-sort", "union-find",
}

// GeneratorConfig controls descriptor generation.
type GeneratorConfig struct {
	Seed  int64  // Random seed for determinism (0 = 1)
	Count int    // Number of descriptors to generate
	Base  string // Path prefix (default "/docs")
}

// GenerateWindows returns Count descriptors with unique ids, built the way
// the navigation bridge builds them.
func GenerateWindows(cfg GeneratorConfig) []registry.WindowDescriptor {
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	if cfg.Base == "" {
		cfg.Base = "/docs"
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	out := make([]registry.WindowDescriptor, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		topic := topics[rng.Intn(len(topics))]
		path := fmt.Sprintf("%s/%s-%d", cfg.Base, topic, i)
		out = append(out, registry.WindowDescriptor{
			ID:    registry.IDForPath(path),
			Title: titleCase(topic),
			URL:   path,
			Kind:  registry.KindHelp,
		})
	}
	return out
}

func titleCase(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
