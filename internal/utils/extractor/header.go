package extractor

const (
	RequestID     = "x-request-id"
	XForwardedFor = "x-forwarded-for"
)
