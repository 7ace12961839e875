package constants

// OAuthErrorCode is an error value that can reach the callback page,
// either from the provider redirect or from our own checks.
type OAuthErrorCode string

const (
	// Provider errors (Slack redirect ?error=)
	OAuthErrorAccessDenied       OAuthErrorCode = "access_denied"
	OAuthErrorInvalidRequest     OAuthErrorCode = "invalid_request"
	OAuthErrorUnauthorizedClient OAuthErrorCode = "unauthorized_client"
	OAuthErrorInvalidScope       OAuthErrorCode = "invalid_scope"
	OAuthErrorServerError        OAuthErrorCode = "server_error"

	// Internal errors
	OAuthErrorMissingCode    OAuthErrorCode = "missing_code"
	OAuthErrorMissingState   OAuthErrorCode = "missing_state"
	OAuthErrorInvalidState   OAuthErrorCode = "invalid_state"
	OAuthErrorExchangeFailed OAuthErrorCode = "exchange_failed"
	OAuthErrorPopupClosed    OAuthErrorCode = "popup_closed"
)

var oauthErrorMessages = map[OAuthErrorCode]string{
	OAuthErrorAccessDenied:       "You declined the Slack authorization request.",
	OAuthErrorInvalidRequest:     "Slack rejected the authorization request. Please contact support if this persists.",
	OAuthErrorUnauthorizedClient: "This Slack app is not authorized for your workspace.",
	OAuthErrorInvalidScope:       "The requested Slack permissions are not available.",
	OAuthErrorServerError:        "Slack encountered an error. Please try again later.",

	OAuthErrorMissingCode:    "Slack did not return an authorization code. Please try connecting again.",
	OAuthErrorMissingState:   "Security validation failed. Please try connecting again.",
	OAuthErrorInvalidState:   "Security token mismatch. Please restart the connection.",
	OAuthErrorExchangeFailed: "Failed to connect Slack. Please try again.",
	OAuthErrorPopupClosed:    "The Slack window was closed before the connection finished.",
}

// OAuthErrorMessage returns a user-facing message for a code, falling back to a generic one.
func OAuthErrorMessage(code string) string {
	if msg, ok := oauthErrorMessages[OAuthErrorCode(code)]; ok {
		return msg
	}
	return "An unexpected error occurred while connecting Slack. Please try again."
}
