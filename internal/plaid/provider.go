// Package plaid talks to the Plaid API for bank linking and balance sync.
package plaid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// Provider is the part of the Plaid API that the backend consumes.
type Provider interface {
	// CreateLinkToken creates a short-lived token that authorizes one
	// Link session in the browser.
	CreateLinkToken(ctx context.Context) (string, error)

	// ExchangePublicToken trades the public token from a completed Link
	// session for a durable access token.
	ExchangePublicToken(ctx context.Context, publicToken string) (ExchangeResult, error)

	// GetAccounts returns the remote accounts for an access token.
	GetAccounts(ctx context.Context, accessToken string) (AccountsResult, error)
}

type ExchangeResult struct {
	AccessToken string
	ItemID      string
}

type AccountsResult struct {
	InstitutionName string
	Accounts        []RemoteAccount
}

// RemoteAccount is one account as reported by Plaid.
type RemoteAccount struct {
	Name     string
	Type     string
	Balance  decimal.Decimal
	Currency string
}

var environments = map[string]string{
	"sandbox":     "https://sandbox.plaid.com",
	"development": "https://development.plaid.com",
	"production":  "https://production.plaid.com",
}

// Client implements Provider against the Plaid REST API.
type Client struct {
	baseURL  string
	clientID string
	secret   string
	http     *http.Client
}

// NewClient returns a client for the given environment. Unknown
// environments fall back to the sandbox.
func NewClient(clientID, secret, environment string) *Client {
	baseURL, ok := environments[environment]
	if !ok {
		baseURL = environments["sandbox"]
	}

	return &Client{
		baseURL:  baseURL,
		clientID: clientID,
		secret:   secret,
		http:     &http.Client{},
	}
}

func (c *Client) CreateLinkToken(ctx context.Context) (string, error) {
	req := map[string]any{
		"client_name":   "Account Manager",
		"language":      "en",
		"country_codes": []string{"US"},
		"products":      []string{"transactions"},
		"user": map[string]string{
			"client_user_id": "account_manager_user",
		},
	}

	var resp struct {
		LinkToken string `json:"link_token"`
	}
	err := c.post(ctx, "/link/token/create", req, &resp)
	if err != nil {
		return "", err
	}

	return resp.LinkToken, nil
}

func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (ExchangeResult, error) {
	req := map[string]string{
		"public_token": publicToken,
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		ItemID      string `json:"item_id"`
	}
	err := c.post(ctx, "/item/public_token/exchange", req, &resp)
	if err != nil {
		return ExchangeResult{}, err
	}

	return ExchangeResult{
		AccessToken: resp.AccessToken,
		ItemID:      resp.ItemID,
	}, nil
}

func (c *Client) GetAccounts(ctx context.Context, accessToken string) (AccountsResult, error) {
	req := map[string]string{
		"access_token": accessToken,
	}

	var resp struct {
		Accounts []struct {
			Name     string `json:"name"`
			Type     string `json:"type"`
			Balances struct {
				Current         decimal.NullDecimal `json:"current"`
				ISOCurrencyCode string              `json:"iso_currency_code"`
			} `json:"balances"`
		} `json:"accounts"`
		Item struct {
			InstitutionName string `json:"institution_name"`
		} `json:"item"`
	}
	err := c.post(ctx, "/accounts/get", req, &resp)
	if err != nil {
		return AccountsResult{}, err
	}

	result := AccountsResult{
		InstitutionName: resp.Item.InstitutionName,
	}
	if result.InstitutionName == "" {
		result.InstitutionName = "Connected Bank"
	}

	for _, account := range resp.Accounts {
		remote := RemoteAccount{
			Name:     account.Name,
			Type:     account.Type,
			Currency: account.Balances.ISOCurrencyCode,
		}
		if account.Balances.Current.Valid {
			remote.Balance = account.Balances.Current.Decimal
		}
		result.Accounts = append(result.Accounts, remote)
	}

	return result, nil
}

// post sends one JSON request with the credentials injected into the body,
// which is how the Plaid API authenticates.
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload := map[string]any{
		"client_id": c.clientID,
		"secret":    c.secret,
	}

	// Merge the request fields into the payload
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	err = json.Unmarshal(raw, &payload)
	if err != nil {
		return err
	}

	raw, err = json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var plaidErr struct {
			ErrorCode    string `json:"error_code"`
			ErrorMessage string `json:"error_message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&plaidErr)
		if plaidErr.ErrorCode != "" {
			return fmt.Errorf("plaid: %s: %s", plaidErr.ErrorCode, plaidErr.ErrorMessage)
		}
		return fmt.Errorf("plaid: unexpected status %d for %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
