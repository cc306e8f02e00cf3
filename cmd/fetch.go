package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/etnz/pricetrack"
	"github.com/etnz/pricetrack/date"
	"github.com/go-resty/resty/v2"
)

// DefaultExtract is the default location of the daily extracts written by the scraper.
const DefaultExtract = "output_carrefour/carrefour_{date}*.csv"

// extractDecoders maps an extract format to its decoder.
var extractDecoders = map[string]func(io.Reader) ([]pricetrack.ExtractRow, error){
	"csv":     pricetrack.DecodeExtract,
	"catalog": pricetrack.DecodeCatalog,
}

// readExtracts reads all the extract rows of day 'on'.
//
// location is either an http(s) URL or a file pattern. "{date}" is replaced by
// the compact day in both. Files matching the pattern are read in name order
// and their rows concatenated.
func readExtracts(ctx context.Context, location, format string, on date.Date) ([]pricetrack.ExtractRow, error) {
	decode, ok := extractDecoders[format]
	if !ok {
		return nil, fmt.Errorf("unknown extract format %q", format)
	}
	location = strings.ReplaceAll(location, "{date}", on.Compact())

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		body, err := fetchExtract(ctx, location)
		if err != nil {
			return nil, err
		}
		return decode(bytes.NewReader(body))
	}

	files, err := filepath.Glob(location)
	if err != nil {
		return nil, fmt.Errorf("invalid extract pattern %q: %w", location, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no extract found for %s matching %q", on, location)
	}
	slices.Sort(files)

	var rows []pricetrack.ExtractRow
	for _, file := range files {
		fileRows, err := readExtractFile(file, decode)
		if err != nil {
			return nil, err
		}
		slog.Info("read-extract", "name", file, "rows", len(fileRows))
		rows = append(rows, fileRows...)
	}
	return rows, nil
}

func readExtractFile(file string, decode func(io.Reader) ([]pricetrack.ExtractRow, error)) ([]pricetrack.ExtractRow, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", file, err)
	}
	return rows, nil
}

// fetchExtract downloads a remote extract.
func fetchExtract(ctx context.Context, url string) ([]byte, error) {
	client := resty.New()
	client.SetTimeout(60 * time.Second)
	client.SetRetryCount(2)

	resp, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch extract %q: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("cannot fetch extract %q: %s", url, resp.Status())
	}
	slog.Info("fetch-extract", "url", url, "bytes", len(resp.Body()), "duration", resp.Time())
	return resp.Body(), nil
}
