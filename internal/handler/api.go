package handler

import (
	"time"

	"github.com/pkordes/tribute-wall/internal/domain"
)

// Wire types for the JSON API. They mirror the schemas in spec/openapi.yaml.

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// SubjectResponse is the page header.
type SubjectResponse struct {
	FullName    string `json:"fullName"`
	Lifespan    string `json:"lifespan"`
	PortraitURL string `json:"portraitUrl"`
}

// Tribute is a tribute as rendered by the API.
type Tribute struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Relationship    string    `json:"relationship"`
	Message         string    `json:"message"`
	Timestamp       int64     `json:"timestamp"`
	PostedAt        time.Time `json:"postedAt"`
	AttachmentType  string    `json:"attachmentType,omitempty"`
	AttachmentValue string    `json:"attachmentValue,omitempty"`
	Seed            bool      `json:"seed"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TributeFeed is the body of GET /tributes.
type TributeFeed struct {
	Data       []Tribute        `json:"data"`
	Pagination Pagination       `json:"pagination"`
	State      domain.FlowState `json:"state"`
}

// CreateTributeRequest is the body of POST /tributes.
// Name and Relationship are ignored when sign-in is required.
type CreateTributeRequest struct {
	Name            string `json:"name"`
	Relationship    string `json:"relationship"`
	Message         string `json:"message"`
	AttachmentType  string `json:"attachmentType,omitempty"`
	AttachmentValue string `json:"attachmentValue,omitempty"`
}

// Notice is the transient confirmation shown after a successful post.
type Notice struct {
	Message        string `json:"message"`
	DismissAfterMs int    `json:"dismissAfterMs"`
}

// CreateTributeResponse is the 201 body of POST /tributes.
type CreateTributeResponse struct {
	Tribute Tribute          `json:"tribute"`
	State   domain.FlowState `json:"state"`
	Notice  Notice           `json:"notice"`
}

// StateResponse reports the current flow state.
type StateResponse struct {
	State domain.FlowState `json:"state"`
}

// SignInRequest is the body of POST /session. The password is never stored.
type SignInRequest struct {
	FullName     string `json:"fullName"`
	Password     string `json:"password"`
	Relationship string `json:"relationship"`
}

// Visitor is a signed-in simulated user.
type Visitor struct {
	FullName     string `json:"fullName"`
	Relationship string `json:"relationship"`
}

// SessionResponse is the body of POST /session and GET /session.
type SessionResponse struct {
	Token   string  `json:"token,omitempty"`
	Visitor Visitor `json:"visitor"`
}

// ExportRow is one row of GET /tributes/export in JSON form.
type ExportRow struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Relationship    string `json:"relationship"`
	Message         string `json:"message"`
	Timestamp       int64  `json:"timestamp"`
	PostedAt        string `json:"postedAt"`
	AttachmentType  string `json:"attachmentType,omitempty"`
	AttachmentValue string `json:"attachmentValue,omitempty"`
	Seed            bool   `json:"seed"`
}
