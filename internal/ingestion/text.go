package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	spaceRun     = regexp.MustCompile(`\s+`)
	blankLineRun = regexp.MustCompile(`\n\n\n+`)
)

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF → LF) and non-breaking spaces
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, "\u00a0", " ")

	// 2. Clean each line
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	// 3. Collapse blank line runs and trim the whole document
	result := blankLineRun.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	// Markdown headings lose their indentation
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	// PDF and Word exports use glyph bullets; render them as markdown
	for _, glyph := range glyphBullets {
		if rest, ok := strings.CutPrefix(trimmed, glyph); ok {
			trimmed = "- " + strings.TrimLeft(rest, " ")
			break
		}
	}

	// Indentation survives, inner whitespace collapses
	indent := len(line) - len(strings.TrimLeft(line, " \t"))
	content := spaceRun.ReplaceAllString(trimmed, " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + content
	}
	return content
}

var glyphBullets = []string{"• ", "· ", "▪ ", "◦ "}

// ReadDocument reads the file at path, decodes it by extension and returns
// cleaned text with metadata.
func ReadDocument(path string) (string, *Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, &DecodeError{Name: path, Message: "file not found", Cause: err}
		}
		return "", nil, &DecodeError{Name: path, Message: "failed to read file", Cause: err}
	}

	text, format, err := DecodeDocument(filepath.Base(path), data)
	if err != nil {
		return "", nil, err
	}

	cleaned := CleanText(text)
	return cleaned, NewMetadata(cleaned, path, format), nil
}

// WriteOutput writes cleaned text and its metadata next to each other in outDir
// as <name>.cleaned.txt and <name>.meta.json.
func WriteOutput(outDir, name, cleanedText string, metadata *Metadata) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cleanedPath := filepath.Join(outDir, name+".cleaned.txt")
	if err := os.WriteFile(cleanedPath, []byte(cleanedText), 0644); err != nil {
		return fmt.Errorf("failed to write cleaned text file: %w", err)
	}

	metaJSON, err := metadata.ToJSON()
	if err != nil {
		return err
	}
	metaPath := filepath.Join(outDir, name+".meta.json")
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}
