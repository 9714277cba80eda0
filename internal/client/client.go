// Package client is a typed HTTP client for the backend API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// APIError is an error response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// Client calls the backend API. The zero value is not usable, use New.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{},
	}
}

func (c *Client) Summary(ctx context.Context) (Summary, error) {
	var summary Summary
	err := c.get(ctx, "/dashboard/summary", &summary)
	return summary, err
}

func (c *Client) Accounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	err := c.get(ctx, "/accounts", &accounts)
	return accounts, err
}

func (c *Client) CreateAccount(ctx context.Context, create AccountCreate) (Account, error) {
	var account Account
	err := c.post(ctx, "/accounts", create, &account)
	return account, err
}

func (c *Client) Cards(ctx context.Context) ([]Card, error) {
	var cards []Card
	err := c.get(ctx, "/cards", &cards)
	return cards, err
}

func (c *Client) CreateCard(ctx context.Context, create CardCreate) (Card, error) {
	var card Card
	err := c.post(ctx, "/cards", create, &card)
	return card, err
}

func (c *Client) DueDates(ctx context.Context) ([]DueDate, error) {
	var dueDates []DueDate
	err := c.get(ctx, "/due-dates/upcoming", &dueDates)
	return dueDates, err
}

// ImportCSV uploads a CSV file as a multipart form.
func (c *Client) ImportCSV(ctx context.Context, file io.Reader, fileName, importType string) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, file)
	if err != nil {
		return err
	}

	err = writer.WriteField("import_type", importType)
	if err != nil {
		return err
	}
	err = writer.WriteField("source_name", fileName)
	if err != nil {
		return err
	}
	err = writer.Close()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/imports/csv", &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req, nil)
}

func (c *Client) CreateRewardRule(ctx context.Context, create RewardRuleCreate) error {
	return c.post(ctx, "/rewards/rules", create, nil)
}

func (c *Client) BestCard(ctx context.Context, category string, amount decimal.Decimal) (Recommendation, error) {
	query := url.Values{}
	query.Set("category", category)
	query.Set("amount", amount.String())

	var recommendation Recommendation
	err := c.get(ctx, "/recommendations/best-card?"+query.Encode(), &recommendation)
	return recommendation, err
}

func (c *Client) PlaidStatus(ctx context.Context) (PlaidStatus, error) {
	var status PlaidStatus
	err := c.get(ctx, "/plaid/status", &status)
	return status, err
}

// LinkToken fetches a short-lived token that authorizes one Link session.
func (c *Client) LinkToken(ctx context.Context) (string, error) {
	var response struct {
		LinkToken string `json:"link_token"`
	}
	err := c.get(ctx, "/plaid/link-token", &response)
	return response.LinkToken, err
}

func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (ExchangeResult, error) {
	request := map[string]string{"public_token": publicToken}

	var result ExchangeResult
	err := c.post(ctx, "/plaid/exchange-token", request, &result)
	return result, err
}

func (c *Client) SyncPlaid(ctx context.Context) (SyncResult, error) {
	var result SyncResult
	err := c.post(ctx, "/plaid/sync", nil, &result)
	return result, err
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

// do executes the request and decodes the response into out. Error
// responses are decoded into an APIError.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiError := &APIError{StatusCode: resp.StatusCode}

		var body struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
			apiError.Message = body.Error
		}

		return apiError
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
