package feedstore

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source is one subscribed feed. ID is the identifier items carry through
// the pipeline and the key used for source-weight lookup; when omitted it
// defaults to the feed URL's host.
type Source struct {
	ID    string `yaml:"id"`
	URL   string `yaml:"url"`
	Title string `yaml:"title,omitempty"`
}

type sourcesDoc struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads the yaml subscription list.
func LoadSources(path string) ([]Source, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	var doc sourcesDoc
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse sources file %s: %w", path, err)
	}
	out := make([]Source, 0, len(doc.Sources))
	for _, s := range doc.Sources {
		s.URL = strings.TrimSpace(s.URL)
		if s.URL == "" {
			continue
		}
		if strings.TrimSpace(s.ID) == "" {
			s.ID = hostOf(s.URL)
		}
		out = append(out, s)
	}
	return out, nil
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}
