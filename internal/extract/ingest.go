package extract

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/charmap"
)

// ReadFiles loads the raw log files and joins their contents with newlines,
// preserving argument order. Files are read concurrently. Content that is
// not valid UTF-8 is decoded as Latin-1, matching how the lab equipment
// exports its logs. Missing files are skipped with a warning.
func ReadFiles(paths []string) (string, error) {
	contents := make([]string, len(paths))
	var g errgroup.Group

	for i, path := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				if os.IsNotExist(err) {
					log.Warn().Str("path", path).Msg("Input file not found, skipping")
					return nil
				}
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			contents[i] = decode(data)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", err
	}
	return strings.Join(contents, "\n"), nil
}

func decode(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// Latin-1 decoding cannot actually fail, but keep the raw bytes
		// rather than losing the file if it ever does.
		return string(data)
	}
	return string(decoded)
}
