package middleware

// Context keys used to store request metadata.
const (
	ContextKeySubject   = "subject"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
)
