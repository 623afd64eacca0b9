package i18n

// Error message keys.
const (
	ErrKeyInvalidRequestBody      = "error.invalid_request_body"
	ErrKeyInternalError           = "error.internal_error"
	ErrKeyAPIKeyRequired          = "error.api_key_required"
	ErrKeyInvalidAPIKey           = "error.invalid_api_key"
	ErrKeyRateLimitExceeded       = "error.rate_limit_exceeded"
	ErrKeyTimeout                 = "error.timeout"
	ErrKeyEnumerationTimeout      = "error.enumeration_timeout"
	ErrKeyNoActiveSet             = "error.no_active_set"
	ErrKeyInvalidSetID            = "error.invalid_set_id"
	ErrKeySetNotFound             = "error.set_not_found"
	ErrKeyDenominationStorage     = "error.denomination_storage_unavailable"
	ErrKeyLogStorage              = "error.log_storage_unavailable"
	ErrKeyInvalidStartTime        = "error.invalid_start_time"
	ErrKeyInvalidEndTime          = "error.invalid_end_time"
	ErrKeyNonPositiveDenomination = "error.non_positive_denomination"
	ErrKeyTargetTooLarge          = "error.target_too_large"
)
