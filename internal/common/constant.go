package common

// AuthorizationHeader carries the admin session token as "Bearer <token>".
const AuthorizationHeader = "Authorization"

// BearerPrefix precedes the token in AuthorizationHeader.
const BearerPrefix = "Bearer "

// RequestIDHeader is echoed back on every HTTP response.
const RequestIDHeader = "X-Request-Id"

// StatusAll is the wildcard status selector of the dashboard filters.
const StatusAll = "all"
