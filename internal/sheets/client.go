// Package sheets wraps the Google Sheets values API behind a narrow
// range-oriented interface.  Everything above this package works with
// plain string matrices and A1 ranges; the spreadsheet id and the SDK
// plumbing live only here.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// RangeStore is the contract repositories depend on.  ReadRange returns
// the rows of an A1 range as strings, AppendRow appends a single row to
// a table range and UpdateCell overwrites exactly one cell.  Every
// method reports store-level failures as an error; none of them panic.
type RangeStore interface {
	ReadRange(ctx context.Context, a1 string) ([][]string, error)
	AppendRow(ctx context.Context, a1 string, row []any) error
	UpdateCell(ctx context.Context, a1 string, value any) error
}

// Client implements RangeStore on top of a single spreadsheet.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

// NewClient builds a Sheets service from a service-account credentials
// file and binds it to the given spreadsheet.
func NewClient(ctx context.Context, credentialsFile, spreadsheetID string) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// ReadRange fetches the values of an A1 range.  Cells come back from
// the API as interface values; they are flattened to strings so the
// repositories can parse them positionally.  A row may be shorter than
// the range width when trailing cells are empty.
func (c *Client) ReadRange(ctx context.Context, a1 string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, a1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read %s: %w", a1, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendRow appends one row after the last non-empty row of the range.
func (c *Client) AppendRow(ctx context.Context, a1 string, row []any) error {
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{row}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, a1, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: append %s: %w", a1, err)
	}
	return nil
}

// UpdateCell overwrites a single cell addressed by an A1 reference such
// as "bookings!I5".
func (c *Client) UpdateCell(ctx context.Context, a1 string, value any) error {
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{{value}}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, a1, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: update %s: %w", a1, err)
	}
	return nil
}
