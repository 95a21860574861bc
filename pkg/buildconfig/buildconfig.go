// Package buildconfig reads the part of the front-end build configuration
// that locates the generated symbol sprite.
package buildconfig

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed config.json
var defaults []byte

// Config mirrors the build's config.json. Only fields used to locate
// the sprite are decoded.
type Config struct {
	Dist struct {
		// CSSImg is the distribution directory for stylesheet images.
		// Must end with a path separator; it is concatenated as-is.
		CSSImg string `json:"cssimg"`
	} `json:"dist"`
	Src struct {
		Images struct {
			VectorSprite struct {
				// SymbolName is the sprite file name or glob.
				SymbolName string `json:"symbolName"`
			} `json:"vectorSprite"`
		} `json:"images"`
	} `json:"src"`
}

func decode(data []byte, into *Config) error {
	if err := json.Unmarshal(data, into); err != nil {
		return err
	}

	return nil
}

// Default returns the embedded configuration.
func Default() (*Config, error) {
	result := &Config{}
	if err := decode(defaults, result); err != nil {
		return nil, fmt.Errorf("decoding embedded config: %w", err)
	}

	return result, nil
}

// Load reads the config file at path on top of Default.
// Fields absent from the file keep their default values.
func Load(path string) (*Config, error) {
	result, err := Default()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := decode(data, result); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}

	return result, nil
}

// Pattern returns the sprite location glob.
func (c *Config) Pattern() string {
	return c.Dist.CSSImg + c.Src.Images.VectorSprite.SymbolName
}
