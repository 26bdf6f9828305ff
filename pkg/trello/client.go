package trello

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.trello.com/1"

// Client is a thin wrapper over the Trello REST API. Authentication is the
// key/token query-parameter scheme, sent on every request.
type Client struct {
	http *resty.Client
}

func NewClient(key, token string) *Client {
	http := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(30 * time.Second).
		SetQueryParams(map[string]string{
			"key":   key,
			"token": token,
		})
	return &Client{http: http}
}

// WithBaseURL points the client at a different API root. Used by tests.
func (c *Client) WithBaseURL(url string) *Client {
	c.http.SetBaseURL(url)
	return c
}

// Board is a selectable Trello board.
type Board struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// List is a column on a board; cards reference their list by ID.
type List struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Card is the raw Trello card shape, expanded with members and labels.
type Card struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Due     string `json:"due"`
	IDList  string `json:"idList"`
	URL     string `json:"url"`
	Members []struct {
		FullName string `json:"fullName"`
	} `json:"members"`
	Labels []struct {
		Name string `json:"name"`
	} `json:"labels"`
}

// Boards lists the boards the authenticated member belongs to.
func (c *Client) Boards(ctx context.Context) ([]Board, error) {
	var boards []Board
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&boards).
		Get("/members/me/boards")
	if err != nil {
		return nil, fmt.Errorf("trello: listing boards: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("trello: listing boards: %s", resp.Status())
	}
	return boards, nil
}

// Lists fetches the lists of a board.
func (c *Client) Lists(ctx context.Context, boardID string) ([]List, error) {
	var lists []List
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&lists).
		Get(fmt.Sprintf("/boards/%s/lists", boardID))
	if err != nil {
		return nil, fmt.Errorf("trello: listing lists for board %s: %w", boardID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("trello: listing lists for board %s: %s", boardID, resp.Status())
	}
	return lists, nil
}

// Cards fetches every card on a board, expanded with member names.
func (c *Client) Cards(ctx context.Context, boardID string) ([]Card, error) {
	var cards []Card
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"members":       "true",
			"member_fields": "fullName",
		}).
		SetResult(&cards).
		Get(fmt.Sprintf("/boards/%s/cards", boardID))
	if err != nil {
		return nil, fmt.Errorf("trello: listing cards for board %s: %w", boardID, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("trello: listing cards for board %s: %s", boardID, resp.Status())
	}
	return cards, nil
}
