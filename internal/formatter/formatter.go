// package formatter provides functions to export the like history and track inbox to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/niprobin/digging/internal/models"
	"github.com/niprobin/digging/internal/shared"
)

// statusString renders a history entry's lifecycle state.
func statusString(active bool) string {
	if active {
		return "liked"
	}
	return "unliked"
}

// HistoryToCSV converts like history entries to CSV format with columns: ID, Type, Title, Artist, URL, Liked At, Status
func HistoryToCSV(entries []models.HistoryEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Type", "Title", "Artist", "URL", "Liked At", "Status"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range entries {
		record := []string{
			entry.ID,
			string(entry.Type),
			entry.Title,
			entry.Subtitle,
			entry.URL,
			entry.LikedAt.Format(time.RFC3339),
			statusString(entry.Active),
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

// HistoryToMarkdown converts like history entries to Markdown format with optional cover image
func HistoryToMarkdown(entries []models.HistoryEntry, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Liked history\n\n")

	if imageFilename != "" {
		buf.WriteString(fmt.Sprintf("![Cover](%s)\n\n", imageFilename))
	}

	active := 0
	for _, entry := range entries {
		if entry.Active {
			active++
		}
	}
	buf.WriteString(fmt.Sprintf("**Entries**: %d (%d liked, %d unliked)\n\n", len(entries), active, len(entries)-active))

	buf.WriteString("## Entries\n\n")
	for i, entry := range entries {
		line := fmt.Sprintf("%d. %s - %s (%s, liked %s)", i+1, entry.Subtitle, entry.Title,
			entry.Type, shared.FormatOrdinalDate(entry.LikedAt))
		if !entry.Active {
			line += " ~unliked~"
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// HistoryToText converts like history entries to plain text format
func HistoryToText(entries []models.HistoryEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Liked history: %d entries\n\n", len(entries)))

	for i, entry := range entries {
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s]\n", i+1, entry.Subtitle, entry.Title, statusString(entry.Active)))
	}

	return buf.Bytes(), nil
}

// TracksToCSV converts track inbox entries to CSV format with columns: ID, Curator, Artist, Title, Added, Spotify URL
func TracksToCSV(tracks []models.TrackEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Curator", "Artist", "Title", "Added", "Spotify URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{
			track.ID,
			track.Curator,
			track.Artist,
			track.Title,
			track.AddedAt.Format("2006-01-02"),
			track.SpotifyURL,
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

// TracksToText converts track inbox entries to plain text format, one line per track
func TracksToText(tracks []models.TrackEntry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Track inbox: %d entries\n\n", len(tracks)))

	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s (via %s, %s)\n", i+1, track.Artist, track.Title,
			track.Curator, shared.FormatRelativeDate(track.AddedAt, time.Now())))
	}

	return buf.Bytes(), nil
}

// DownloadImage fetches the cover image at url and returns the raw bytes.
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty cover image URL")
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download cover image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download cover image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read cover image: %w", err)
	}
	return data, nil
}

// historyMetadata summarizes an exported history set.
type historyMetadata struct {
	GeneratedAt string `json:"generated_at"`
	Total       int    `json:"total"`
	Liked       int    `json:"liked"`
	Unliked     int    `json:"unliked"`
}

// ToMetadataJSON generates a JSON summary of a history export (without the entries)
func ToMetadataJSON(entries []models.HistoryEntry) ([]byte, error) {
	meta := historyMetadata{
		GeneratedAt: time.Now().Format(time.RFC3339),
		Total:       len(entries),
	}
	for _, entry := range entries {
		if entry.Active {
			meta.Liked++
		} else {
			meta.Unliked++
		}
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}
	return data, nil
}

// CSVExportResult contains the paths of files created by WriteHistoryCSV
type CSVExportResult struct {
	EntriesFile  string
	MetadataFile string
}

// WriteHistoryCSV exports the like history to CSV format with an accompanying metadata JSON file.
//
// Defaults to "history" as the base filename & creates {base}_entries.csv and {base}_metadata.json
func WriteHistoryCSV(entries []models.HistoryEntry, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = "history"
	}

	csvData, err := HistoryToCSV(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	entriesFile := baseFilepath + "_entries.csv"
	if err := os.WriteFile(entriesFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		EntriesFile:  entriesFile,
		MetadataFile: metadataFile,
	}, nil
}

// MarkdownExportResult contains information about files created by WriteHistoryMarkdown
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
}

// WriteHistoryMarkdown exports the like history to Markdown format in a dedicated directory.
//
// Directory name defaults to "history".
// The imageURL parameter is optional - if provided, attempts to download a cover image.
// Creates a directory structure: {dir}/README.md and optionally {dir}/cover.jpg
func WriteHistoryMarkdown(entries []models.HistoryEntry, outputDir string, imageURL string) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = "history"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{
		Directory: outputDir,
		Files:     []string{},
	}

	var coverImageFilename string
	if imageURL != "" {
		imageData, err := DownloadImage(imageURL)
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

	mdData, err := HistoryToMarkdown(entries, coverImageFilename)
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

// WriteHistoryText exports the like history to plain text format.
//
// Defaults to "history.txt" as the filename.
func WriteHistoryText(entries []models.HistoryEntry, filepath string) (string, error) {
	if filepath == "" {
		filepath = "history.txt"
	}

	textData, err := HistoryToText(entries)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}

// WriteTracksCSV exports a track list to CSV format.
//
// Defaults to "tracks.csv" as the filename.
func WriteTracksCSV(tracks []models.TrackEntry, filepath string) (string, error) {
	if filepath == "" {
		filepath = "tracks.csv"
	}

	csvData, err := TracksToCSV(tracks)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(filepath, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return filepath, nil
}
