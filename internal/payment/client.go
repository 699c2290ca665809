package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Client talks to a Xendit-style invoice API over HTTP with basic auth on
// the secret key.
type Client struct {
	baseURL   *url.URL
	secretKey string
	http      *http.Client
}

func NewClient(baseURL, secretKey string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid payment base url %q: %w", baseURL, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: u, secretKey: secretKey, http: httpClient}, nil
}

type createInvoiceRequest struct {
	ExternalID  string        `json:"external_id"`
	Description string        `json:"description"`
	Amount      int64         `json:"amount"`
	Currency    string        `json:"currency"`
	Customer    *invoiceBuyer `json:"customer,omitempty"`
	Items       []DraftItem   `json:"items,omitempty"`
}

type invoiceBuyer struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
}

func (c *Client) CreateInvoice(ctx context.Context, d Draft) (Invoice, error) {
	reqBody := createInvoiceRequest{
		ExternalID:  d.ExternalID,
		Description: d.Description,
		Amount:      d.Amount,
		Currency:    d.Currency,
		Items:       d.Items,
	}
	if d.CustomerName != "" {
		reqBody.Customer = &invoiceBuyer{
			Name:  d.CustomerName,
			Email: d.CustomerEmail,
			Phone: d.CustomerPhone,
		}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return Invoice{}, fmt.Errorf("marshal invoice request: %w", err)
	}

	var inv Invoice
	if err := c.do(ctx, http.MethodPost, "/v2/invoices", bytes.NewReader(body), &inv); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

func (c *Client) GetInvoice(ctx context.Context, invoiceID string) (Invoice, error) {
	var inv Invoice
	if err := c.do(ctx, http.MethodGet, "/v2/invoices/"+url.PathEscape(invoiceID), nil, &inv); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

func (c *Client) do(ctx context.Context, method, path string, body *bytes.Reader, out any) error {
	u := c.baseURL.ResolveReference(&url.URL{Path: path})

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, u.String(), body)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, u.String(), nil)
	}
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.secretKey, "")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("payment provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != "" {
			return fmt.Errorf("payment provider: %s (status %d)", apiErr.Message, resp.StatusCode)
		}
		return fmt.Errorf("payment provider: status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
