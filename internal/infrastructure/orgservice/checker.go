package orgservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/arplanets/livesight-order-service/internal/domain"
)

// HTTPOwnershipChecker resolves live-sight ownership against the org
// service's REST API. The order core only ever asks "does this org own
// this live sight"; everything else about org membership lives upstream.
type HTTPOwnershipChecker struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPOwnershipChecker(baseURL string) *HTTPOwnershipChecker {
	return &HTTPOwnershipChecker{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type liveSightResponse struct {
	LiveSightID string `json:"live_sight_id"`
	OrgID       string `json:"org_id"`
}

func (c *HTTPOwnershipChecker) Verify(ctx context.Context, orgID, liveSightID string) (bool, error) {
	url := fmt.Sprintf("%s/api/v1/live-sights/%s", c.BaseURL, liveSightID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, domain.ErrLiveSightNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return false, fmt.Errorf("org service returned %d", resp.StatusCode)
	}

	var liveSight liveSightResponse
	if err := json.Unmarshal(body, &liveSight); err != nil {
		return false, err
	}

	return liveSight.OrgID == orgID, nil
}
