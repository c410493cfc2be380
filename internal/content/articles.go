// Package content holds the static reading list shown next to the simulator.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed articles.yaml
var defaultArticles []byte

// FallbackImage replaces an article image that fails to load.
const FallbackImage = "https://placehold.co/600x400/cccccc/ffffff?text=Image+Not+Found"

var ErrInvalidArticle = errors.New("invalid article")

type Article struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	ImageURL    string `yaml:"image_url" json:"image_url"`
	LinkURL     string `yaml:"link_url" json:"link_url"`
}

// Load returns the built-in articles.
func Load() ([]Article, error) {
	return parse(defaultArticles)
}

// LoadFile reads articles from path. An empty path falls back to Load.
func LoadFile(path string) ([]Article, error) {
	if path == "" {
		return Load()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read articles: %w", err)
	}
	return parse(data)
}

func parse(data []byte) ([]Article, error) {
	var articles []Article
	if err := yaml.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("parse articles: %w", err)
	}
	for i, a := range articles {
		if a.Title == "" || a.LinkURL == "" {
			return nil, fmt.Errorf("%w: entry %d needs a title and link_url", ErrInvalidArticle, i)
		}
		if a.ImageURL == "" {
			articles[i].ImageURL = FallbackImage
		}
	}
	return articles, nil
}
