// Package env seeds the process environment from a dotenv file so DEMO_* settings
// can live next to the binary.
package env

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// DefaultPath is the dotenv file read at startup.
const DefaultPath = ".env"

// Load reads KEY=VALUE lines from path into the environment and returns the keys it set.
// Blank lines, "#" comments and an optional "export " prefix are accepted. Variables
// already present in the environment win over the file. A missing file is not an error.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var set []string
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return set, fmt.Errorf("%s:%d: expected KEY=VALUE", path, n)
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, unquote(strings.TrimSpace(value))); err != nil {
			return set, fmt.Errorf("%s:%d: %w", path, n, err)
		}
		set = append(set, key)
	}
	return set, scanner.Err()
}

func unquote(v string) string {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
		return v[1 : len(v)-1]
	}
	return v
}
