package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

const DefaultDelay = 300 * time.Millisecond

var pathEscaper = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)

// RecruitSource is the part of the jasoseol client the crawler needs.
type RecruitSource interface {
	ListRecruitIDs(ctx context.Context, searchURL string) ([]string, error)
	RecruitImage(ctx context.Context, id string) (string, error)
}

type Crawler struct {
	source RecruitSource
	delay  time.Duration
}

func New(source RecruitSource, delay time.Duration) *Crawler {
	if delay < 0 {
		delay = 0
	}
	return &Crawler{source: source, delay: delay}
}

// Run visits every recruit listed on searchURL and maps its id to its image
// url. A failing recruit is logged and skipped; only a failing listing or a
// cancelled context stops the run.
func (c *Crawler) Run(ctx context.Context, searchURL string) (map[string]string, error) {
	slog.InfoContext(ctx, "Collecting recruit list", "url", searchURL)
	ids, err := c.source.ListRecruitIDs(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list recruits: %w", err)
	}

	images := make(map[string]string)
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return images, err
		}

		slog.InfoContext(ctx, "Processing recruit", "recruit_id", id, "index", i+1, "total", len(ids))
		imageURL, err := c.source.RecruitImage(ctx, id)
		switch {
		case err != nil:
			slog.ErrorContext(ctx, "Recruit failed", "recruit_id", id, "error", err)
		case imageURL == "":
			slog.WarnContext(ctx, "No image url", "recruit_id", id)
		default:
			images[id] = imageURL
			slog.InfoContext(ctx, "Image url extracted", "recruit_id", id)
		}

		if i < len(ids)-1 && c.delay > 0 {
			select {
			case <-ctx.Done():
				return images, ctx.Err()
			case <-time.After(c.delay):
			}
		}
	}

	return images, nil
}

// Encode renders images as a JSON object with keys in sorted order,
// indented by two spaces.
func Encode(images map[string]string) ([]byte, error) {
	ids := make([]string, 0, len(images))
	for id := range images {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	doc := []byte("{}")
	for _, id := range ids {
		var err error
		doc, err = sjson.SetBytes(doc, pathEscaper.Replace(id), images[id])
		if err != nil {
			return nil, fmt.Errorf("failed to encode recruit %s: %w", id, err)
		}
	}
	return pretty.Pretty(doc), nil
}

func WriteJSON(path string, images map[string]string) error {
	data, err := Encode(images)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
