package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"healthdiary/internal/domain"
)

// GetDayByDate looks up the day for a calendar date. Absence is reported as
// a not-found error distinct from transport failures.
func (c *Client) GetDayByDate(ctx context.Context, date string) (*domain.Day, error) {
	var day domain.Day
	path := "/api/v1/days?date=" + url.QueryEscape(date)
	if err := c.get(ctx, path, &day); err != nil {
		return nil, err
	}
	return &day, nil
}

// CreateDay creates the day for a calendar date.
func (c *Client) CreateDay(ctx context.Context, date string) (*domain.Day, error) {
	var day domain.Day
	body := map[string]string{"date": date}
	if err := c.post(ctx, "/api/v1/days", body, &day); err != nil {
		return nil, err
	}
	return &day, nil
}

// UpdateDay sends only the non-nil fields of upd and returns the server's
// merged representation.
func (c *Client) UpdateDay(ctx context.Context, id uint, upd domain.DayUpdate) (*domain.Day, error) {
	var day domain.Day
	if err := c.put(ctx, fmt.Sprintf("/api/v1/days/%d", id), upd, &day); err != nil {
		return nil, err
	}
	return &day, nil
}
