package listing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

const fieldPostedDaysAgo = "postedDaysAgo"

// Item is one undecoded listing as read from a file.
type Item = any

// LoadFile reads listings from a JSON or YAML file holding an array of
// listing objects. The format is picked by extension; anything that is not
// .yaml or .yml is read as JSON.
func LoadFile(path string) (*Listings, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []Item
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &items)
	default:
		err = json.Unmarshal(b, &items)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return Decode(items)
}

// Decode converts generic items into listings. Numbers written as strings
// (for example "postedDaysAgo": "3") are accepted. Every listing must carry
// postedDaysAgo; a zero default would earn the recency bonus.
func Decode(items []Item) (*Listings, error) {
	for i, item := range items {
		if err := requirePostedDaysAgo(item); err != nil {
			return nil, fmt.Errorf("listing #%d: %w", i+1, err)
		}
	}

	var listings []*Listing

	cfg := &mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
		Metadata:         nil,
		Result:           &listings,
		TagName:          "json",
		Squash:           true,
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decoding listings: %w", err)
	}

	for i, l := range listings {
		if l == nil {
			return nil, fmt.Errorf("listing #%d is empty", i)
		}
		if l.ID == "" {
			l.ID = fmt.Sprintf("#%d", i+1)
		}
	}

	return &Listings{Items: listings}, nil
}

func requirePostedDaysAgo(item Item) error {
	fields, ok := item.(map[string]any)
	if !ok {
		// Left for the decoder to reject.
		return nil
	}
	if v, ok := fields[fieldPostedDaysAgo]; !ok || v == nil {
		return fmt.Errorf("%s is required", fieldPostedDaysAgo)
	}
	return nil
}
