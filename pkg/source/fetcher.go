package source

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/pkg/errors"
)

// StdinMarker is the input name that reads from standard input.
const StdinMarker = "-"

// MaxDocumentBytes caps how much is read from any single input.
const MaxDocumentBytes = 4 << 20

//nolint:gochecknoglobals // Replaced in tests
var stdin io.Reader = os.Stdin

// Fetch retrieves a questionnaire, answer set or check-in document from a file, URL or stdin.
func Fetch(input string) (content []byte, err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	content, err = FetchWithContext(ctx, input)
	return content, err
}

// FetchWithContext retrieves a document with context.
func FetchWithContext(ctx context.Context, input string) (content []byte, err error) {
	if input == StdinMarker {
		content, err = readAll(stdin)
		if err != nil {
			err = errors.Wrap(err, "failed to read document from stdin")
			return content, err
		}
		return content, err
	}

	// Check if input is a URL
	parsedURL, urlErr := url.Parse(input)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		content, err = fetchFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch document from URL: %s", input)
			return content, err
		}
		return content, err
	}

	content, err = fetchFromFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch document from file: %s", input)
		return content, err
	}

	return content, err
}

// fetchFromFile reads a document from disk.
func fetchFromFile(path string) (content []byte, err error) {
	var f *os.File
	f, err = os.Open(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to open file: %s", path)
		return content, err
	}
	defer f.Close()

	content, err = readAll(f)
	return content, err
}

// fetchFromURL retrieves a document over HTTP.
func fetchFromURL(ctx context.Context, urlStr string) (content []byte, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return content, err
	}

	req.Header.Set("User-Agent", "checkin-scorer/1.0")
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return content, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return content, err
	}

	content, err = readAll(resp.Body)
	return content, err
}

// readAll reads a whole document, rejecting blank documents and those over MaxDocumentBytes.
func readAll(r io.Reader) (content []byte, err error) {
	content, err = io.ReadAll(io.LimitReader(r, MaxDocumentBytes+1))
	if err != nil {
		err = errors.Wrap(err, "failed to read document")
		return content, err
	}

	if len(content) > MaxDocumentBytes {
		content = nil
		err = errors.Errorf("document exceeds %d bytes", MaxDocumentBytes)
		return content, err
	}

	if len(bytes.TrimSpace(content)) == 0 {
		err = errors.New("document is empty")
		return content, err
	}

	return content, err
}
