package logx

const (
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldStack           = "stack"
	FieldTraceID         = "trace-id"
	FieldURL             = "url"
	FieldUserID          = "user-id"

	FieldLoop      = "loop"
	FieldCycleID   = "cycle-id"
	FieldQuery     = "query"
	FieldFilter    = "filter"
	FieldItemID    = "item-id"
	FieldBidID     = "bid-id"
	FieldChannelID = "channel-id"
	FieldStatus    = "status"
	FieldPrice     = "price"
	FieldFairPrice = "fair-price"
	FieldScore     = "score"
)
