package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/scepticulous/lita-github/internal/domain/models"
)

const defaultStatusURL = "https://www.githubstatus.com/api/v2/status.json"

// statusPageResponse is the shape of the statuspage.io summary endpoint.
type statusPageResponse struct {
	Page struct {
		UpdatedAt time.Time `json:"updated_at"`
	} `json:"page"`
	Status struct {
		Indicator   string `json:"indicator"`
		Description string `json:"description"`
	} `json:"status"`
}

// SystemStatus fetches the current platform status from the public status
// page and reduces its indicator to the three levels the bot reports.
func (c *Client) SystemStatus(ctx context.Context) (*models.SystemStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.statusURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building status request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching status page: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status page returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading status page response: %w", err)
	}

	var page statusPageResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decoding status page response: %w", err)
	}

	return &models.SystemStatus{
		Status:    statusLevel(page.Status.Indicator),
		Body:      page.Status.Description,
		CreatedOn: page.Page.UpdatedAt.UTC().Format("2006-01-02 15:04:05 UTC"),
	}, nil
}

func statusLevel(indicator string) string {
	switch indicator {
	case "none":
		return models.StatusGood
	case "minor":
		return models.StatusMinor
	default:
		return models.StatusMajor
	}
}
