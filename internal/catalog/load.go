package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML catalog override from path. Sections missing from the
// file keep their built-in values. An empty path returns Default().
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var override Catalog
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}

	if len(override.Images) > 0 {
		c.Images = override.Images
	}
	if override.Generic.URL != "" {
		c.Generic = override.Generic
	}
	if len(override.Videos) > 0 {
		c.Videos = override.Videos
	}
	c.lowerKeys()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return c, nil
}

// lowerKeys lowercases keywords and triggers, since lookups run on
// normalized input.
func (c *Catalog) lowerKeys() {
	for i := range c.Images {
		c.Images[i].Keyword = strings.ToLower(strings.TrimSpace(c.Images[i].Keyword))
	}
	for i := range c.Videos {
		for j, trig := range c.Videos[i].Triggers {
			c.Videos[i].Triggers[j] = strings.ToLower(strings.TrimSpace(trig))
		}
	}
}

// Validate checks that every entry can produce a usable reply.
func (c *Catalog) Validate() error {
	var errs []error
	for i, img := range c.Images {
		if img.Keyword == "" || img.URL == "" {
			errs = append(errs, fmt.Errorf("image %d: keyword and url are required", i))
		}
	}
	if c.Generic.URL == "" {
		errs = append(errs, errors.New("generic image url is required"))
	}
	seen := make(map[string]struct{}, len(c.Videos))
	for i, v := range c.Videos {
		if v.ID == "" {
			errs = append(errs, fmt.Errorf("video %d: id is required", i))
		} else if _, dup := seen[v.ID]; dup {
			errs = append(errs, fmt.Errorf("video %d: duplicate id %q", i, v.ID))
		}
		seen[v.ID] = struct{}{}
		if len(v.Triggers) == 0 {
			errs = append(errs, fmt.Errorf("video %q: at least one trigger is required", v.ID))
		}
		if v.EmbedURL == "" || v.Reply == "" {
			errs = append(errs, fmt.Errorf("video %q: embed_url and reply are required", v.ID))
		}
	}
	return errors.Join(errs...)
}
