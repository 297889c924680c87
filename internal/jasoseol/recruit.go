package jasoseol

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/p-shah256/jasoseol/internal/scrape"
	"github.com/p-shah256/jasoseol/pkg/errors"
	"github.com/p-shah256/jasoseol/pkg/logger"
)

// ITSearchQuery filters the search page to the IT duty groups, open postings only.
const ITSearchQuery = "dutyGroupIds=160%2C164%2C165%2C166%2C167%2C168%2C169%2C170%2C171" +
	"%2C172%2C173%2C174%2C175%2C176%2C177%2C178%2C179%2C180%2C181" +
	"%2C182&excludeClosed=true"

func (c *Client) ITSearchURL() string {
	return c.baseURL + "/search?" + ITSearchQuery
}

func (c *Client) RecruitURL(id string) string {
	return c.baseURL + "/recruit/" + url.PathEscape(id)
}

// ListRecruitIDs returns the recruit ids linked from a search page.
func (c *Client) ListRecruitIDs(ctx context.Context, searchURL string) ([]string, error) {
	page, err := c.getPage(ctx, searchURL)
	if err != nil {
		return nil, err
	}
	ids, err := scrape.RecruitIDs(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Collected recruit ids", "count", len(ids))
	return ids, nil
}

// RecruitImage returns the poster image url of a recruit page, or "" when the
// page declares none.
func (c *Client) RecruitImage(ctx context.Context, id string) (string, error) {
	page, err := c.getPage(ctx, c.RecruitURL(id))
	if err != nil {
		return "", err
	}
	blocks, err := scrape.JSONLDBlocks(bytes.NewReader(page))
	if err != nil {
		return "", err
	}
	imageURL, err := scrape.ImageFromJSONLD(blocks)
	if err != nil {
		return "", fmt.Errorf("recruit %s: %w", id, err)
	}
	return imageURL, nil
}

func (c *Client) getPage(ctx context.Context, pageURL string) ([]byte, error) {
	ctx, requestID := logger.EnsureRequestID(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	slog.DebugContext(ctx, "Fetching page", "url", pageURL)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.FromStatus(resp.StatusCode, pageURL).WithRequestID(requestID)
	}

	page, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", pageURL, err)
	}
	return page, nil
}
