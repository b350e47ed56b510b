// Package wordlist provides the blacklist data consumed by the swearjar filter.
//
// Important notice: the embedded default list and the files under 'test_data'
// contain explicit language required to exercise the filter. They are
// technical artifacts only and do not represent the authors' views.
package wordlist

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalidEntry is returned when a list holds something other than a string.
var ErrInvalidEntry = errors.New("invalid word list entry")

//go:embed default.json
var defaultJSON []byte

var defaultList = mustParseJSON(defaultJSON)

// List is a raw blacklist: single words plus entries that are known to span
// several words or carry punctuation.
type List struct {
	Words    []string `json:"words" toml:"words"`
	Specials []string `json:"specials" toml:"specials"`
}

// rawList mirrors List without trusting element types.
type rawList struct {
	Words    []any `json:"words" toml:"words"`
	Specials []any `json:"specials" toml:"specials"`
}

// Default returns a copy of the embedded English word list.
func Default() List {
	return defaultList.Clone()
}

// Clone returns a deep copy of l.
func (l List) Clone() List {
	return List{
		Words:    append([]string(nil), l.Words...),
		Specials: append([]string(nil), l.Specials...),
	}
}

// Len returns the total number of entries.
func (l List) Len() int {
	return len(l.Words) + len(l.Specials)
}

// Load reads a word list from path, choosing the decoder by file extension.
// Files ending in .toml are decoded as TOML, everything else as JSON.
func Load(path string) (List, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return LoadFromTOML(path)
	}
	return LoadFromJSON(path)
}

// LoadFromJSON loads a word list from a JSON file.
func LoadFromJSON(path string) (List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return List{}, err
	}

	return ParseJSON(data)
}

// LoadFromTOML loads a word list from a TOML file.
func LoadFromTOML(path string) (List, error) {
	var raw rawList
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return List{}, err
	}

	return raw.list()
}

// ParseJSON decodes a word list from JSON bytes.
func ParseJSON(data []byte) (List, error) {
	var raw rawList
	if err := json.Unmarshal(data, &raw); err != nil {
		return List{}, err
	}

	return raw.list()
}

// Fetch downloads a JSON word list from url. A nil client means
// http.DefaultClient.
func Fetch(ctx context.Context, client *http.Client, url string) (List, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return List{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return List{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return List{}, fmt.Errorf("failed to fetch word list from %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return List{}, err
	}

	return ParseJSON(data)
}

func (r rawList) list() (List, error) {
	words, err := entries("words", r.Words)
	if err != nil {
		return List{}, err
	}
	specials, err := entries("specials", r.Specials)
	if err != nil {
		return List{}, err
	}

	return List{Words: words, Specials: specials}, nil
}

func entries(field string, values []any) ([]string, error) {
	if values == nil {
		return nil, nil
	}

	out := make([]string, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is %T", ErrInvalidEntry, field, i, v)
		}
		out = append(out, s)
	}

	return out, nil
}

func mustParseJSON(data []byte) List {
	l, err := ParseJSON(data)
	if err != nil {
		panic(fmt.Sprintf("wordlist: embedded default list is malformed: %v", err))
	}
	return l
}
