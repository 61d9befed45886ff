package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/calendar-map-service/internal/domain"
)

// Client fetches calendar events from the configured source API using a
// single paginated list call. Only the location string feeds the geocoding
// core; everything else is passed through for the map UI.
type Client struct {
	baseURL    string
	token      string
	pageSize   int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a calendar source client. token is sent as a bearer
// credential on every request.
func NewClient(baseURL, token string, pageSize int, timeout time.Duration, logger *slog.Logger) *Client {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Client{
		baseURL:  baseURL,
		token:    token,
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// ListEvents retrieves every event in the [from, to] window, following page
// tokens until the source reports no more pages.
func (c *Client) ListEvents(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	var all []domain.Event
	pageToken := ""
	for {
		items, next, err := c.listPage(ctx, from, to, pageToken)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if next == "" {
			return all, nil
		}
		pageToken = next
	}
}

func (c *Client) listPage(ctx context.Context, from, to time.Time, pageToken string) ([]domain.Event, string, error) {
	params := url.Values{
		"timeMin":      {from.Format(time.RFC3339)},
		"timeMax":      {to.Format(time.RFC3339)},
		"maxResults":   {strconv.Itoa(c.pageSize)},
		"singleEvents": {"true"},
		"orderBy":      {"startTime"},
	}
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events?"+params.Encode(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("list events: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, "", fmt.Errorf("calendar API error: status %d: %s", resp.StatusCode, body)
	}

	var page listResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, "", fmt.Errorf("decode events page: %w", err)
	}

	events := make([]domain.Event, 0, len(page.Items))
	for _, item := range page.Items {
		events = append(events, mapItemToEvent(item))
	}
	return events, page.NextPageToken, nil
}

// mapItemToEvent converts a source API item into a domain event.
func mapItemToEvent(item eventItem) domain.Event {
	attendees := make([]string, 0, len(item.Attendees))
	for _, a := range item.Attendees {
		if a.Email != "" {
			attendees = append(attendees, a.Email)
		}
	}

	return domain.Event{
		ID:        item.ID,
		Title:     item.Summary,
		Location:  item.Location,
		Start:     item.Start.DateTime,
		End:       item.End.DateTime,
		Status:    item.Status,
		Attendees: attendees,
	}
}

// Calendar source API response types.

type listResponse struct {
	Items         []eventItem `json:"items"`
	NextPageToken string      `json:"nextPageToken"`
}

type eventItem struct {
	ID        string     `json:"id"`
	Summary   string     `json:"summary"`
	Location  string     `json:"location"`
	Status    string     `json:"status"`
	Start     dateTime   `json:"start"`
	End       dateTime   `json:"end"`
	Attendees []attendee `json:"attendees"`
}

type dateTime struct {
	DateTime time.Time `json:"dateTime"`
}

type attendee struct {
	Email string `json:"email"`
}
