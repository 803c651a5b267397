package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sendgrid/rest"

	"github.com/trezcool/gradebook/core/attendance"
	"github.com/trezcool/gradebook/core/grade"
	"github.com/trezcool/gradebook/core/student"
)

const (
	studentsEndpoint   = "/api/students"
	studentEndpoint    = "/api/student"
	gradeEndpoint      = "/api/grade"
	attendanceEndpoint = "/api/attendance"

	msgMalformed = "Invalid data format received from API."
)

// envelope wraps every API response.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client talks to the students REST API. All calls go to one base URL.
type Client struct {
	baseURL string
	rest    *rest.Client
}

var (
	_ student.Repository    = (*Client)(nil)
	_ grade.Repository      = (*Client)(nil)
	_ attendance.Repository = (*Client)(nil)
)

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		rest:    &rest.Client{HTTPClient: &http.Client{Timeout: timeout}},
	}
}

// call sends one request and unwraps the envelope. `failMsg` is used when the API reports a
// failure without a message.
func (c *Client) call(ctx context.Context, op string, method rest.Method, path string, query map[string]string, body interface{}, failMsg string) (json.RawMessage, error) {
	req := rest.Request{
		Method:      method,
		BaseURL:     c.baseURL + path,
		Headers:     map[string]string{"Accept": "application/json"},
		QueryParams: query,
	}
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindTransport, Op: op, Message: err.Error(), Err: err}
		}
		req.Headers["Content-Type"] = "application/json"
		req.Body = b
	}

	httpReq, err := rest.BuildRequestObject(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: op, Message: err.Error(), Err: err}
	}
	httpRes, err := c.rest.HTTPClient.Do(httpReq.WithContext(ctx))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: op, Message: err.Error(), Err: err}
	}
	res, err := rest.BuildResponse(httpRes)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: op, StatusCode: httpRes.StatusCode, Message: err.Error(), Err: err}
	}

	var env envelope
	jsonErr := json.Unmarshal([]byte(res.Body), &env)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg := fmt.Sprintf("HTTP error! Status: %d", res.StatusCode)
		if jsonErr == nil && env.Message != "" {
			msg = env.Message
		}
		return nil, &Error{Kind: KindStatus, Op: op, StatusCode: res.StatusCode, Message: msg}
	}
	if jsonErr != nil {
		return nil, &Error{Kind: KindMalformed, Op: op, StatusCode: res.StatusCode, Message: msgMalformed, Err: jsonErr}
	}
	if !env.Success {
		msg := failMsg
		if env.Message != "" {
			msg = env.Message
		}
		return nil, &Error{Kind: KindFailure, Op: op, StatusCode: res.StatusCode, Message: msg}
	}
	return env.Data, nil
}

// decodeObject decodes a non-null JSON object into `dst`.
func decodeObject(op string, data json.RawMessage, dst interface{}, failMsg string) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return &Error{Kind: KindMalformed, Op: op, Message: failMsg}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return &Error{Kind: KindMalformed, Op: op, Message: msgMalformed, Err: err}
	}
	return nil
}

// decodeList decodes a JSON array into `dst`, flattening nested arrays by one level:
// `[[a, b], [c]]` and `[a, b, c]` both decode to `[a, b, c]`. null entries are dropped.
func decodeList(op string, data json.RawMessage, dst interface{}, failMsg string) error {
	var items []json.RawMessage
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return &Error{Kind: KindMalformed, Op: op, Message: failMsg}
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return &Error{Kind: KindMalformed, Op: op, Message: msgMalformed, Err: err}
	}

	flat := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		item = bytes.TrimSpace(item)
		switch {
		case len(item) == 0 || bytes.Equal(item, []byte("null")):
			continue
		case item[0] == '[':
			var inner []json.RawMessage
			if err := json.Unmarshal(item, &inner); err != nil {
				return &Error{Kind: KindMalformed, Op: op, Message: msgMalformed, Err: err}
			}
			for _, in := range inner {
				if !bytes.Equal(bytes.TrimSpace(in), []byte("null")) {
					flat = append(flat, in)
				}
			}
		default:
			flat = append(flat, item)
		}
	}

	b, err := json.Marshal(flat)
	if err != nil {
		return &Error{Kind: KindMalformed, Op: op, Message: msgMalformed, Err: err}
	}
	if err = json.Unmarshal(b, dst); err != nil {
		return &Error{Kind: KindMalformed, Op: op, Message: msgMalformed, Err: err}
	}
	return nil
}

func studentQuery(studentID int) map[string]string {
	return map[string]string{"student_id": strconv.Itoa(studentID)}
}

// Students

func (c *Client) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	const op = "query students"
	data, err := c.call(ctx, op, rest.Get, studentsEndpoint, nil, nil, "Failed to fetch student data.")
	if err != nil {
		return nil, err
	}
	students := make([]student.Student, 0)
	if err = decodeList(op, data, &students, msgMalformed); err != nil {
		return nil, err
	}
	return students, nil
}

func (c *Client) CreateStudent(ctx context.Context, ns student.NewStudent) (student.Student, error) {
	const (
		op      = "create student"
		failMsg = "Failed to add student. Please try again."
	)
	data, err := c.call(ctx, op, rest.Post, studentEndpoint, nil, ns, failMsg)
	if err != nil {
		return student.Student{}, err
	}
	return decodeStudent(op, data, failMsg)
}

func (c *Client) UpdateStudent(ctx context.Context, us student.UpdateStudent) (student.Student, error) {
	const (
		op      = "update student"
		failMsg = "Failed to update student. Please try again."
	)
	data, err := c.call(ctx, op, rest.Put, studentEndpoint, nil, us, failMsg)
	if err != nil {
		return student.Student{}, err
	}
	return decodeStudent(op, data, failMsg)
}

// decodeStudent decodes a saved student, which must carry its identifier.
func decodeStudent(op string, data json.RawMessage, failMsg string) (student.Student, error) {
	var s student.Student
	if err := decodeObject(op, data, &s, failMsg); err != nil {
		return student.Student{}, err
	}
	if s.ID == 0 {
		return student.Student{}, &Error{Kind: KindMalformed, Op: op, Message: failMsg}
	}
	return s, nil
}

// Grades

func (c *Client) QueryLessons(ctx context.Context, studentID int) ([]grade.Lesson, error) {
	const (
		op      = "query lessons"
		failMsg = "Failed to fetch lessons. Please try again."
	)
	data, err := c.call(ctx, op, rest.Get, gradeEndpoint, studentQuery(studentID), nil, failMsg)
	if err != nil {
		return nil, err
	}
	lessons := make([]grade.Lesson, 0)
	if err = decodeList(op, data, &lessons, failMsg); err != nil {
		return nil, err
	}
	return lessons, nil
}

func (c *Client) UpdateGrade(ctx context.Context, upd grade.Update) (grade.Update, error) {
	const (
		op      = "update grade"
		failMsg = "Failed to update grade."
	)
	data, err := c.call(ctx, op, rest.Put, gradeEndpoint, nil, upd, failMsg)
	if err != nil {
		return grade.Update{}, err
	}
	var confirmed grade.Update
	if err = decodeObject(op, data, &confirmed, failMsg); err != nil {
		return grade.Update{}, err
	}
	if confirmed.GradeID == 0 {
		confirmed.GradeID = upd.GradeID
	}
	if confirmed.Grade == "" {
		confirmed.Grade = upd.Grade
	}
	return confirmed, nil
}

// Attendance

func (c *Client) QueryRecords(ctx context.Context, studentID int) ([]attendance.Record, error) {
	const (
		op      = "query attendance"
		failMsg = "Failed to fetch attendance records. Please try again."
	)
	data, err := c.call(ctx, op, rest.Get, attendanceEndpoint, studentQuery(studentID), nil, failMsg)
	if err != nil {
		return nil, err
	}
	records := make([]attendance.Record, 0)
	if err = decodeList(op, data, &records, failMsg); err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateStatus returns the confirmed update. Some API versions omit `data` (or some of its
// fields) on success; the requested values are then taken as confirmed.
func (c *Client) UpdateStatus(ctx context.Context, upd attendance.StatusUpdate) (attendance.StatusUpdate, error) {
	const (
		op      = "update attendance"
		failMsg = "Failed to update attendance status."
	)
	data, err := c.call(ctx, op, rest.Put, attendanceEndpoint, nil, upd, failMsg)
	if err != nil {
		return attendance.StatusUpdate{}, err
	}
	if d := bytes.TrimSpace(data); len(d) == 0 || bytes.Equal(d, []byte("null")) {
		return upd, nil
	}
	var confirmed attendance.StatusUpdate
	if err = decodeObject(op, data, &confirmed, failMsg); err != nil {
		return attendance.StatusUpdate{}, err
	}
	if confirmed.AttendanceID == 0 {
		confirmed.AttendanceID = upd.AttendanceID
	}
	if confirmed.Status == "" {
		confirmed.Status = upd.Status
	}
	return confirmed, nil
}
