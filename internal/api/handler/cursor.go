package handler

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/cuongbtq/recruitment-be/internal/api/storage"
	"github.com/google/uuid"
)

// DecodeJobOfferCursor parses an opaque page cursor. An empty cursor means the first page.
func DecodeJobOfferCursor(cursorStr string) (*storage.JobOfferCursor, error) {
	if cursorStr == "" {
		return nil, nil
	}

	decoded, err := base64.URLEncoding.DecodeString(cursorStr)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(string(decoded), "|")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid cursor format")
	}

	var createdAt int64
	if _, err := fmt.Sscanf(parts[0], "%d", &createdAt); err != nil {
		return nil, fmt.Errorf("invalid createdAt in cursor: %w", err)
	}

	if _, err := uuid.Parse(parts[1]); err != nil {
		return nil, fmt.Errorf("invalid job_offer_id in cursor: %w", err)
	}

	return &storage.JobOfferCursor{
		CreatedAt:  time.Unix(0, createdAt),
		JobOfferID: parts[1],
	}, nil
}

// EncodeJobOfferCursor renders the position after cursor as an opaque string
func EncodeJobOfferCursor(cursor *storage.JobOfferCursor) string {
	cs := fmt.Sprintf("%d|%s", cursor.CreatedAt.UnixNano(), cursor.JobOfferID)
	return base64.URLEncoding.EncodeToString([]byte(cs))
}
