package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
)

// Login exchanges credentials for a bearer token at the authentication
// endpoint. Credentials go out form-encoded and are never stored locally.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+apiPrefix+"/auth/login/access-token",
		bytes.NewBufferString(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", &APIError{Detail: "Request failed", Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &APIError{Detail: "Request failed", Err: err}
	}
	if res.StatusCode == http.StatusUnauthorized {
		return "", ErrUnauthorized
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", &APIError{Status: res.StatusCode, Detail: errorDetail(data)}
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.AccessToken == "" {
		return "", &APIError{Status: res.StatusCode, Detail: "Malformed token response"}
	}
	return payload.AccessToken, nil
}

// ListRequests fetches all procurement requests
func (c *Client) ListRequests(ctx context.Context, token string) ([]Request, error) {
	var requests []Request
	if err := c.get(ctx, "/requests/", token, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// GetRequest fetches a single request with its quotes and documents
func (c *Client) GetRequest(ctx context.Context, token string, id int64) (*Request, error) {
	var request Request
	if err := c.get(ctx, fmt.Sprintf("/requests/%d", id), token, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// CreateRequest creates a new request. The upstream service assigns the
// initial status; the client makes no assumption about its value.
func (c *Client) CreateRequest(ctx context.Context, token string, in CreateRequestInput) (*Request, error) {
	data, err := c.Call(ctx, http.MethodPost, "/requests/", token, in)
	if err != nil {
		return nil, err
	}
	var request Request
	if err := json.Unmarshal(data, &request); err != nil {
		return nil, fmt.Errorf("failed to decode created request: %w", err)
	}
	return &request, nil
}

// SelectQuote marks a quote as selected for a request
func (c *Client) SelectQuote(ctx context.Context, token string, requestID, quoteID int64) error {
	path := fmt.Sprintf("/requests/%d/select-quote?quote_id=%d", requestID, quoteID)
	_, err := c.Call(ctx, http.MethodPost, path, token, nil)
	return err
}

// UpdateContractDetails sets the contract expiration and adjustment month
func (c *Client) UpdateContractDetails(ctx context.Context, token string, requestID int64, in ContractDetailsInput) error {
	path := fmt.Sprintf("/requests/%d/contract-details", requestID)
	_, err := c.Call(ctx, http.MethodPut, path, token, in)
	return err
}

// CompleteTechnicalAcceptance triggers the terminal-stage transition
func (c *Client) CompleteTechnicalAcceptance(ctx context.Context, token string, requestID int64) error {
	path := fmt.Sprintf("/requests/%d/complete-technical-acceptance", requestID)
	_, err := c.Call(ctx, http.MethodPost, path, token, nil)
	return err
}

// GetTimeline fetches the ordered event log of a request
func (c *Client) GetTimeline(ctx context.Context, token string, requestID int64) ([]TimelineEntry, error) {
	var entries []TimelineEntry
	if err := c.get(ctx, fmt.Sprintf("/requests/%d/timeline", requestID), token, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetNotifications fetches requests needing attention
func (c *Client) GetNotifications(ctx context.Context, token string) ([]Notification, error) {
	var notifications []Notification
	if err := c.get(ctx, "/requests/notifications/upcoming", token, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// ListMachines fetches all machines
func (c *Client) ListMachines(ctx context.Context, token string) ([]Machine, error) {
	var machines []Machine
	if err := c.get(ctx, "/machines/", token, &machines); err != nil {
		return nil, err
	}
	return machines, nil
}

// GetMachine fetches a single machine
func (c *Client) GetMachine(ctx context.Context, token string, id int64) (*Machine, error) {
	var machine Machine
	if err := c.get(ctx, fmt.Sprintf("/machines/%d", id), token, &machine); err != nil {
		return nil, err
	}
	return &machine, nil
}

// CreateMachine registers a new machine
func (c *Client) CreateMachine(ctx context.Context, token string, in CreateMachineInput) (*Machine, error) {
	data, err := c.Call(ctx, http.MethodPost, "/machines/", token, in)
	if err != nil {
		return nil, err
	}
	var machine Machine
	if err := json.Unmarshal(data, &machine); err != nil {
		return nil, fmt.Errorf("failed to decode created machine: %w", err)
	}
	return &machine, nil
}

// ListMaintenance fetches a machine's maintenance history
func (c *Client) ListMaintenance(ctx context.Context, token string, machineID int64) ([]Maintenance, error) {
	var logs []Maintenance
	if err := c.get(ctx, fmt.Sprintf("/machines/%d/maintenance", machineID), token, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// AddMaintenance appends a maintenance log entry
func (c *Client) AddMaintenance(ctx context.Context, token string, machineID int64, in MaintenanceInput) error {
	_, err := c.Call(ctx, http.MethodPost, fmt.Sprintf("/machines/%d/maintenance", machineID), token, in)
	return err
}

// ListPartners fetches all partners
func (c *Client) ListPartners(ctx context.Context, token string) ([]Partner, error) {
	var partners []Partner
	if err := c.get(ctx, "/partners/", token, &partners); err != nil {
		return nil, err
	}
	return partners, nil
}

// DownloadDocument fetches a document's file content
func (c *Client) DownloadDocument(ctx context.Context, token string, documentID int64) (*DocumentFile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s%s/documents/download/%d", c.BaseURL, apiPrefix, documentID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &APIError{Detail: "Request failed", Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &APIError{Detail: "Request failed", Err: err}
	}
	if res.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &APIError{Status: res.StatusCode, Detail: errorDetail(data)}
	}

	return &DocumentFile{
		ContentType: res.Header.Get("Content-Type"),
		Disposition: res.Header.Get("Content-Disposition"),
		Body:        data,
	}, nil
}

// UploadDocument uploads a file for a request as multipart form data. The
// bearer header is attached manually since this bypasses the JSON path.
func (c *Client) UploadDocument(ctx context.Context, token string, requestID int64, docType, filename string, content io.Reader) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("failed to read upload content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	uploadURL := fmt.Sprintf("%s%s/documents/%d/upload?doc_type=%s",
		c.BaseURL, apiPrefix, requestID, url.QueryEscape(docType))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &buf)
	if err != nil {
		return fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return &APIError{Detail: "Upload failed", Err: err}
	}
	defer res.Body.Close()

	data, _ := io.ReadAll(res.Body)
	if res.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &APIError{Status: res.StatusCode, Detail: errorDetail(data)}
	}
	return nil
}
