// schemactl runs the generation pipeline from the command line: build a
// drug schema, optionally inject it into a page (local file or fetched
// URL), and optionally list sameAs source candidates.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/schemamark/schemamark/internal/config"
	"github.com/schemamark/schemamark/internal/core"
	"github.com/schemamark/schemamark/internal/core/builder"
	"github.com/schemamark/schemamark/internal/core/finder"
	"github.com/schemamark/schemamark/internal/core/injector"
	"github.com/schemamark/schemamark/internal/core/serializer"
	"github.com/schemamark/schemamark/internal/fetch"
)

func main() {
	name := flag.String("name", "", "drug brand name (required)")
	generic := flag.String("generic", "", "generic name")
	description := flag.String("description", "", "drug description")
	manufacturer := flag.String("manufacturer", "", "manufacturer")
	sameAs := flag.String("sameas", "", "comma-separated sameAs URLs")
	pageFile := flag.String("page", "", "HTML file to inject into")
	pageURL := flag.String("url", "", "page URL to fetch and inject into")
	out := flag.String("out", "", "output file for updated HTML (default stdout)")
	policy := flag.String("policy", "replace", "same-type block policy: replace or append")
	findSources := flag.Bool("find", false, "list sameAs source candidates")
	flag.Parse()

	if *name == "" {
		flag.Usage()
		os.Exit(2)
	}

	engine := core.NewEngine(
		finder.New(finder.DefaultCatalog(), nil, nil),
		injector.Policy(*policy),
	)

	in := builder.DrugInput{
		Name:         *name,
		GenericName:  *generic,
		Description:  *description,
		Manufacturer: *manufacturer,
	}
	if *sameAs != "" {
		in.SameAs = strings.Split(*sameAs, ",")
	}

	doc, block, err := engine.GenerateDrug(in)
	if err != nil {
		log.Fatalf("Failed to build schema: %v", err)
	}

	fmt.Printf("Document %s\n%s\n", doc.UUID, serializer.ScriptTag(block))

	if *findSources {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		candidates, err := engine.FindSources(ctx, finder.Query{Name: *name, GenericName: *generic})
		if err != nil {
			log.Fatalf("Failed to find sources: %v", err)
		}
		fmt.Printf("\nFound %d candidate sources:\n", len(candidates))
		for _, cand := range candidates {
			fmt.Printf("  [%s] %s (%s) %s\n", cand.Priority, cand.Name, cand.SiteType, cand.URL)
		}
	}

	if *pageFile == "" && *pageURL == "" {
		return
	}

	var pageHTML string
	if *pageFile != "" {
		data, err := os.ReadFile(*pageFile)
		if err != nil {
			log.Fatalf("Failed to read page: %v", err)
		}
		pageHTML = string(data)
	} else {
		cfg := config.Default()
		fetcher := fetch.New(cfg.FetchTimeout(), cfg.Fetcher.UserAgent, cfg.Fetcher.MaxContentBytes)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout())
		defer cancel()

		pageHTML, err = fetcher.Fetch(ctx, *pageURL)
		if err != nil {
			log.Fatalf("Failed to fetch page: %v", err)
		}
	}

	entity := doc.Entities[0]
	updated, err := engine.InjectEntity(pageHTML, entity)
	if err != nil {
		log.Fatalf("Failed to inject markup: %v", err)
	}

	if *out == "" {
		fmt.Println(updated)
		return
	}
	if err := os.WriteFile(*out, []byte(updated), 0644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	log.Printf("Wrote updated page to %s", *out)
}
