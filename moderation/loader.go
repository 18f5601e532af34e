package moderation

import (
	"bufio"
	"bytes"
	"embed"
	"io/fs"
	"strings"

	"imobiliare/errors"
)

//go:embed words/*
var wordsFolder embed.FS

// BannedData carries the loading result plus metadata for logging.
type BannedData struct {
	Phrases   []string
	Languages []string
}

// LoadBannedPhrases parses the embedded per-language .txt dictionaries
// into a deduplicated phrase list.
func LoadBannedPhrases() (*BannedData, error) {
	entries, err := fs.ReadDir(wordsFolder, "words")
	if err != nil {
		return nil, err
	}

	var languages []string
	unique := make(map[string]struct{})

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		// Track the language based on the filename (e.g. "ro.txt" -> "ro")
		languages = append(languages, strings.TrimSuffix(entry.Name(), ".txt"))

		data, err := wordsFolder.ReadFile("words/" + entry.Name())
		if err != nil {
			return nil, err
		}

		// A scanner handles both \n and \r\n line endings correctly.
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				unique[line] = struct{}{}
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	if len(unique) == 0 {
		return nil, errors.ErrEmptyWords
	}

	phrases := make([]string, 0, len(unique))
	for p := range unique {
		phrases = append(phrases, p)
	}

	return &BannedData{Phrases: phrases, Languages: languages}, nil
}
