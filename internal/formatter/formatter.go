// package formatter exports catalog search results to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dag10/cshdj-youtube/internal/sources"
)

// ExportToCSV converts search results to CSV format with columns: ID, Title, Artist, Album, Thumbnail, Image
func ExportToCSV(results []sources.SearchResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Thumbnail", "Image"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, result := range results {
		record := []string{
			result.ID,
			result.Title,
			result.Artist,
			result.Album,
			result.ThumbnailURL,
			result.ImageURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts search results to a Markdown listing with optional cover image
func ExportToMarkdown(query string, results []sources.SearchResult, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Search: %s\n\n", query))

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	buf.WriteString(fmt.Sprintf("**Results**: %d\n\n", len(results)))

	buf.WriteString("## Tracks\n\n")
	for i, result := range results {
		artistPart := ""
		if result.Artist != "" {
			artistPart = fmt.Sprintf("%s - ", result.Artist)
		}
		buf.WriteString(fmt.Sprintf("%d. %s[%s](https://www.youtube.com/watch?v=%s)\n",
			i+1, artistPart, result.Title, sources.EncodeTrackID(result.ID)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts search results to plain text format
func ExportToText(query string, results []sources.SearchResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Query: %s\n", query))
	buf.WriteString(fmt.Sprintf("Results: %d\n\n", len(results)))

	for i, result := range results {
		if result.Artist != "" {
			buf.WriteString(fmt.Sprintf("%d. %s - %s (%s)\n", i+1, result.Artist, result.Title, result.ID))
		} else {
			buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, result.Title, result.ID))
		}
	}

	return buf.Bytes(), nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// WriteCSVExport writes search results to a CSV file at the given path.
func WriteCSVExport(results []sources.SearchResult, path string) (string, error) {
	csvData, err := ExportToCSV(results)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(path, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return path, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteMarkdownExport exports search results to Markdown in a dedicated directory.
//
// When the first result carries an image URL its artwork is downloaded as cover.jpg.
// Creates a directory structure: {dir}/README.md and optionally {dir}/cover.jpg
func WriteMarkdownExport(query string, results []sources.SearchResult, outputDir string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = "search_export"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if len(results) > 0 && results[0].ImageURL != "" {
		imageData, err := DownloadImage(results[0].ImageURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to download cover image: %v\n", err)
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := fmt.Sprintf("%s/%s", outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to save cover image: %v\n", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(query, results, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)

	return result, nil
}

// WriteTextExport writes search results as plain text to the given path.
func WriteTextExport(query string, results []sources.SearchResult, path string) (string, error) {
	textData, err := ExportToText(query, results)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return path, nil
}
