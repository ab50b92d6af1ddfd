// Package testutil provides shared fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"creativetech.dev/internal/catalog"
)

// CatalogYAML is a five-category, six-project catalog
const CatalogYAML = `
categories:
  - id: ai-gems
    title: AI Gems
  - id: processing-sketches
    title: Processing Sketches
  - id: ai-simulations
    title: AI Simulations
  - id: huggingface-apps
    title: Hugging Face Apps
  - id: audio-max-msp
    title: Audio / Max MSP
projects:
  ai-gems:
    - id: neural-dreamscapes
      title: Neural Dreamscapes
      description: Generative Adversarial Network study creating infinite landscapes from pure noise.
      tags: [Python, TensorFlow]
      category: ai-gems
      featured: true
    - id: latent-space-explorer
      title: Latent Space Explorer
      description: Visualizing high dimensional vectors in 2D space using UMAP and t-SNE algorithms.
      tags: [Python, NumPy]
      category: ai-gems
  processing-sketches:
    - id: recursive-flora
      title: Recursive Flora
      description: Interactive p5.js ecosystem that reacts to mouse movement and audio input density.
      embed_url: https://openprocessing.org/sketch/1/embed/
      embed_type: processing
      tags: [p5.js, JavaScript]
      category: processing-sketches
      featured: true
  ai-simulations:
    - id: city-sim-v2
      title: City Sim v2
      description: Agent based traffic simulation exploring congestion patterns in urban environments.
      live_url: https://example.com/city-sim
      tags: [Unity, "C#", ML Agents]
      category: ai-simulations
      button_type: view
  huggingface-apps:
    - id: sentiment-analyzer
      title: Sentiment Analyzer
      description: Real-time natural language processing app deployed via Spaces.
      embed_url: https://huggingface.co/spaces/example/sentiment/embed
      embed_type: huggingface
      tags: [NLP, Transformers]
      category: huggingface-apps
      button_type: launch
      is_live: true
  audio-max-msp:
    - id: granular-synth
      title: Granular Synth
      description: Max MSP patch for real-time granular synthesis of field recordings.
      embed_type: audio
      tags: [Max MSP, Jitter]
      category: audio-max-msp
      button_type: listen
`

// Catalog parses CatalogYAML
func Catalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse([]byte(CatalogYAML))
	if err != nil {
		t.Fatalf("parse fixture catalog: %v", err)
	}
	return c
}

// Store wraps the fixture catalog in a static store
func Store(t testing.TB) *catalog.Store {
	t.Helper()
	return catalog.NewStaticStore(Catalog(t))
}

// WriteCatalog writes content to catalog.yaml in a temp dir and returns its path
func WriteCatalog(t testing.TB, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}
