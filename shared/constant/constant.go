package constant

import "time"

// ContextGuest is the actor recorded for self-service sign ups.
const ContextGuest = "guest"

type contextKey string

const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

// Roles carried in the access token.
const (
	RoleAdmin    = "admin"
	RoleBusiness = "business"
	RoleUser     = "user"
)

// Lifecycle of a business account. Only approved owners have visible lots.
const (
	AccountStatusPending  = "pending"
	AccountStatusApproved = "approved"
	AccountStatusRejected = "rejected"
	AccountStatusBanned   = "banned"
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"

	RequestParamID        = "id"
	RequestParamTable     = "table"
	RequestParamQuery     = "q"
	RequestParamLatitude  = "lat"
	RequestParamLongitude = "lng"
	RequestParamStatus    = "status"
	RequestParamToken     = "token"

	RequestMaxMemory = 10 << 20
)

const (
	DefaultValuePage    = 1
	DefaultValueLimit   = 10
	DefaultValueSortBy  = "created_at"
	DefaultValueSortDir = "DESC"
)

const (
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const DateFormat = time.RFC3339

const (
	OtelHandlerScopeName    = "handler"
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelS3ScopeName         = "s3"
	OtelKafkaScopeName      = "kafka"
	OtelGeocodeScopeName    = "geocode"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderAPIKey             = "X-API-Key"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
)

const (
	ContentTypeJSON   = "application/json"
	ContentTypePDF    = "application/pdf"
	FormProofDocument = "proof_document"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const ServerEnvDevelopment = "development"

const (
	Asterix = "*"
	Empty   = ""
)
