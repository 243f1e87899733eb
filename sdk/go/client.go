// Package voicesdk is a minimal Go client for the Employee Voice API.
package voicesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is a minimal Employee Voice HTTP API client. Authentication is
// session-cookie based: Login stores the cookie on the client and
// subsequent calls carry it.
type Client struct {
	BaseURL       string
	SessionCookie string
	HTTPClient    *http.Client
	Timeout       time.Duration
}

// New creates a client with sane defaults.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		Timeout: 60 * time.Second,
	}
}

// Employee represents the API employee model (partial).
type Employee struct {
	ID              uint64 `json:"id"`
	EmpNo           string `json:"emp_no"`
	FullName        string `json:"full_name"`
	DesignationID   string `json:"designation_id"`
	DesignationName string `json:"designation_name"`
	DepartmentName  string `json:"department_name"`
	SectionName     string `json:"section_name"`
}

// FormField represents one question on a form.
type FormField struct {
	ID          uint64 `json:"id"`
	FieldType   string `json:"field_type"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
	IsRequired  bool   `json:"is_required"`
	FieldOrder  int    `json:"field_order"`
	Options     string `json:"options"`
	RatingMax   int    `json:"rating_max"`
}

// Form represents the API form model.
type Form struct {
	ID            uint64      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	State         int         `json:"state"`
	StateName     string      `json:"state_name"`
	CreatorID     uint64      `json:"creator_id"`
	ShareCode     string      `json:"share_code"`
	ResponseCount int64       `json:"response_count"`
	Creator       *Employee   `json:"creator,omitempty"`
	Fields        []FormField `json:"fields,omitempty"`
}

// Pagination is the listing metadata block.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// FormList wraps paginated form listings.
type FormList struct {
	Forms      []Form     `json:"forms"`
	Pagination Pagination `json:"pagination"`
}

// Tag represents a responsible-person tag.
type Tag struct {
	ID         uint64    `json:"id"`
	FormID     uint64    `json:"form_id"`
	QuestionID uint64    `json:"question_id"`
	State      int       `json:"state"`
	Tagger     *Employee `json:"tagger,omitempty"`
	Assignee   *Employee `json:"assignee,omitempty"`
}

// TagResult reports the outcome of a tagging call.
type TagResult struct {
	Tagged        []uint64 `json:"tagged"`
	AlreadyTagged []uint64 `json:"already_tagged"`
}

// EmployeeSearchResult is an employee hit with their response count on the
// searched form.
type EmployeeSearchResult struct {
	Employee
	Responsed int64 `json:"responsed"`
}

// Answer is one field's answer in a submission. Checkbox fields use Values.
type Answer struct {
	FieldID uint64   `json:"field_id"`
	Value   string   `json:"value,omitempty"`
	Values  []string `json:"values,omitempty"`
}

// QuickStats is the dashboard headline summary.
type QuickStats struct {
	TotalForms     int64 `json:"total_forms"`
	PendingForms   int64 `json:"pending_forms"`
	PublishedForms int64 `json:"published_forms"`
	RejectedForms  int64 `json:"rejected_forms"`
	CompletedForms int64 `json:"completed_forms"`
	TotalResponses int64 `json:"total_responses"`
}

// APIError wraps non-2xx responses.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d code=%s message=%s", e.StatusCode, e.Code, e.Message)
}

// Login authenticates and stores the session cookie on the client.
func (c *Client) Login(ctx context.Context, empNo, password string) (Employee, error) {
	body := map[string]any{
		"emp_no":   empNo,
		"password": password,
	}
	var resp Employee
	err := c.do(ctx, http.MethodPost, "api/auth/login", body, &resp)
	return resp, err
}

// ListForms returns one page of forms, optionally filtered by state.
func (c *Client) ListForms(ctx context.Context, state *int, page, limit int) (FormList, error) {
	endpoint := fmt.Sprintf("api/forms?page=%d&limit=%d", page, limit)
	if state != nil {
		endpoint += "&state=" + strconv.Itoa(*state)
	}
	var resp FormList
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp, err
}

// GetForm fetches a form's header info.
func (c *Client) GetForm(ctx context.Context, formID uint64) (Form, error) {
	var resp Form
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("api/forms/%d", formID), nil, &resp)
	return resp, err
}

// GetPublicForm resolves a share code to a published form with its fields.
func (c *Client) GetPublicForm(ctx context.Context, shareCode string) (Form, error) {
	var resp Form
	endpoint := "public/forms/" + url.PathEscape(shareCode)
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp, err
}

// SubmitResponse records answers on an employee's behalf.
func (c *Client) SubmitResponse(ctx context.Context, formID, employeeID uint64, answers []Answer) error {
	body := map[string]any{
		"employee_id": employeeID,
		"answers":     answers,
	}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("api/forms/%d/responses", formID), body, nil)
}

// SubmitPublicResponse records the authenticated employee's own answers
// against a share-code form.
func (c *Client) SubmitPublicResponse(ctx context.Context, shareCode string, answers []Answer) error {
	body := map[string]any{
		"answers": answers,
	}
	endpoint := "public/forms/" + url.PathEscape(shareCode) + "/responses"
	return c.do(ctx, http.MethodPost, endpoint, body, nil)
}

// SearchEmployees finds candidate respondents by name or employee number.
func (c *Client) SearchEmployees(ctx context.Context, query string, formID uint64) ([]EmployeeSearchResult, error) {
	endpoint := "api/employees/search?q=" + url.QueryEscape(query)
	if formID != 0 {
		endpoint += fmt.Sprintf("&form_id=%d", formID)
	}
	var resp []EmployeeSearchResult
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp, err
}

// ListTags returns the tag records for a question.
func (c *Client) ListTags(ctx context.Context, formID, questionID uint64) ([]Tag, error) {
	var resp []Tag
	endpoint := fmt.Sprintf("api/forms/%d/questions/%d/tags", formID, questionID)
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp, err
}

// TagEmployees tags responsible persons on a question.
func (c *Client) TagEmployees(ctx context.Context, formID, questionID uint64, assigneeIDs []uint64) (TagResult, error) {
	body := map[string]any{
		"assignee_ids": assigneeIDs,
	}
	var resp TagResult
	endpoint := fmt.Sprintf("api/forms/%d/questions/%d/tags", formID, questionID)
	err := c.do(ctx, http.MethodPost, endpoint, body, &resp)
	return resp, err
}

// UntagEmployee removes a pending tag.
func (c *Client) UntagEmployee(ctx context.Context, formID, questionID, employeeID uint64) error {
	endpoint := fmt.Sprintf("api/forms/%d/questions/%d/tags/%d", formID, questionID, employeeID)
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

// GetQuickStats returns the dashboard headline summary.
func (c *Client) GetQuickStats(ctx context.Context) (QuickStats, error) {
	var resp QuickStats
	err := c.do(ctx, http.MethodGet, "api/dashboard/quick-stats", nil, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	url := c.base() + "/" + strings.TrimLeft(endpoint, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.SessionCookie != "" {
		req.Header.Set("Cookie", c.SessionCookie)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if cookie := resp.Header.Get("Set-Cookie"); cookie != "" {
		if idx := strings.Index(cookie, ";"); idx > 0 {
			cookie = cookie[:idx]
		}
		c.SessionCookie = cookie
	}
	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		b, _ := io.ReadAll(resp.Body)
		var parsed struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(b, &parsed) == nil {
			apiErr.Code = parsed.Code
			apiErr.Message = parsed.Message
		} else {
			apiErr.Message = string(b)
		}
		return apiErr
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) base() string {
	return strings.TrimRight(c.BaseURL, "/")
}
