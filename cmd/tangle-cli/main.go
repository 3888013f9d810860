package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/coatless-rpkg/shinytangle"
	"github.com/coatless-rpkg/shinytangle/pkg/render"
	htmlrenderer "github.com/coatless-rpkg/shinytangle/pkg/renderers/html"
	tuirenderer "github.com/coatless-rpkg/shinytangle/pkg/renderers/tui"
)

func main() {
	source := flag.String("source", "doc.yaml", "tangle document path (YAML)")
	rendererName := flag.String("renderer", "html", "renderer to use (html or tui)")
	output := flag.String("output", "", "output file (stdout if empty)")
	endpoint := flag.String("endpoint", "", "update endpoint wired into the page (html only)")
	flag.Parse()

	ctx := context.Background()

	path := strings.TrimSpace(*source)
	if path == "" {
		log.Fatalf("invalid source: %q", *source)
	}

	registry, err := buildRegistry(*endpoint)
	if err != nil {
		log.Fatalf("Failed to set up renderers: %v", err)
	}

	gen := shinytangle.New(shinytangle.WithRegistry(registry))

	page, err := gen.Generate(ctx, shinytangle.Request{
		Source:   path,
		Renderer: *rendererName,
	})
	if err != nil {
		log.Fatalf("Failed to generate page: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, page, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Page written to %s\n", *output)
	} else {
		fmt.Println(string(page))
	}
}

func buildRegistry(endpoint string) (*render.Registry, error) {
	registry := render.NewRegistry()

	var htmlOptions []htmlrenderer.Option
	if endpoint != "" {
		htmlOptions = append(htmlOptions, htmlrenderer.WithUpdateEndpoint(endpoint))
	}
	html, err := htmlrenderer.New(htmlOptions...)
	if err != nil {
		return nil, err
	}
	if err := registry.Register(html); err != nil {
		return nil, err
	}

	tui, err := tuirenderer.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(tui); err != nil {
		return nil, err
	}

	return registry, nil
}
