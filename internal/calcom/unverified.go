package calcom

import (
	"github.com/calmcp/calcom-mcp/internal/mcp"
)

// UnverifiedTools returns descriptors for endpoints that are declared but not
// registered: the Stripe integration and phone verification flows have not
// been confirmed working against the live API, so the server keeps them out
// of the advertised tool list until they are.
func UnverifiedTools() []mcp.CatalogTool {
	return []mcp.CatalogTool{
		{
			Name:        "cal_get_stripe_connect_url",
			Description: "Retrieve Stripe Connect URL from Cal.com API for payment setup",
			Method:      "GET",
			Path:        "/stripe/connect",
		},
		{
			Name:        "cal_save_stripe_credentials",
			Description: "Save Stripe credentials in Cal.com after OAuth authorization",
			Method:      "GET",
			Path:        "/stripe/save",
			Params: []mcp.CatalogParam{
				{Name: "state", Type: "string", Description: "OAuth state parameter for security verification", Required: true, In: "query"},
				{Name: "code", Type: "string", Description: "OAuth authorization code from Stripe", Required: true, In: "query"},
			},
		},
		{
			Name:        "cal_check_stripe_connection",
			Description: "Check Stripe connection status in Cal.com",
			Method:      "GET",
			Path:        "/stripe/check",
		},
		{
			Name:        "cal_request_phone_verification_code",
			Description: "Request a phone verification code from Cal.com API.",
			Method:      "POST",
			Path:        "/verified-resources/phones/verification-code/request",
			Params: []mcp.CatalogParam{
				{Name: "phone", Type: "string", Description: "Phone number to verify in E.164 format", Required: true, In: "body"},
			},
		},
		{
			Name:        "cal_verify_phone_code",
			Description: "Verify a phone number with the received verification code.",
			Method:      "POST",
			Path:        "/verified-resources/phones/verification-code/verify",
			Params: []mcp.CatalogParam{
				{Name: "phone", Type: "string", Description: "Phone number to verify in E.164 format", Required: true, In: "body"},
				{Name: "code", Type: "string", Description: "Verification code received via SMS", Required: true, In: "body"},
			},
		},
	}
}
