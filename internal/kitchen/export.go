package kitchen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

var (
	ErrExportDisabled    = errors.New("prep sheet export is not configured")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

var exportContentTypes = map[string]string{
	"json":    "application/json",
	"msgpack": "application/x-msgpack",
}

// ExportResult points at an uploaded prep sheet.
type ExportResult struct {
	Key   string `json:"key"`
	URL   string `json:"url"`
	Items int    `json:"items"`
}

// ValidateExportFormat normalizes the requested format; empty means json.
func ValidateExportFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		f = "json"
	}
	if _, ok := exportContentTypes[f]; !ok {
		return "", ErrUnsupportedFormat
	}
	return f, nil
}

func encodePrepSheet(items []PrepItem, format string) ([]byte, error) {
	if items == nil {
		items = []PrepItem{}
	}
	switch format {
	case "msgpack":
		return msgpack.Marshal(items)
	default:
		return json.Marshal(items)
	}
}

// --------------------------------------------------
// Export prep sheet to object storage
// --------------------------------------------------
func (s *Service) Export(ctx context.Context, statuses []string, format string) (*ExportResult, error) {
	if s.storage == nil {
		return nil, ErrExportDisabled
	}

	format, err := ValidateExportFormat(format)
	if err != nil {
		return nil, err
	}

	items, err := s.PrepList(ctx, statuses)
	if err != nil {
		return nil, err
	}

	body, err := encodePrepSheet(items, format)
	if err != nil {
		return nil, fmt.Errorf("encode prep sheet: %w", err)
	}

	key := fmt.Sprintf(
		"kitchen-prep/%s/%s.%s",
		s.now().UTC().Format("2006-01-02"),
		uuid.New().String(),
		format,
	)

	url, err := s.storage.Put(ctx, key, bytes.NewReader(body), exportContentTypes[format])
	if err != nil {
		return nil, fmt.Errorf("upload prep sheet: %w", err)
	}

	s.metrics.PrepExports.WithLabelValues(format).Inc()

	return &ExportResult{Key: key, URL: url, Items: len(items)}, nil
}
