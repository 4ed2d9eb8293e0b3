package calcom

import (
	"github.com/calmcp/calcom-mcp/internal/mcp"
)

// VerifiedResourceTools returns the descriptors for the Cal.com verified
// resources endpoints (email verification and verified email/phone lookups).
func VerifiedResourceTools() []mcp.CatalogTool {
	return []mcp.CatalogTool{
		{
			Name:        "cal_request_email_verification_code",
			Description: "Request an email verification code from Cal.com API.",
			Method:      "POST",
			Path:        "/verified-resources/emails/verification-code/request",
			Params: []mcp.CatalogParam{
				{Name: "email", Type: "string", Description: "Email address to verify", Required: true, In: "body"},
			},
		},
		{
			Name:        "cal_verify_email_code",
			Description: "Verify an email address with the received verification code.",
			Method:      "POST",
			Path:        "/verified-resources/emails/verification-code/verify",
			Params: []mcp.CatalogParam{
				{Name: "email", Type: "string", Description: "Email address to verify", Required: true, In: "body"},
				{Name: "code", Type: "string", Description: "Verification code received via email", Required: true, In: "body"},
			},
		},
		{
			Name:        "cal_get_verified_emails",
			Description: "Retrieve all verified emails from Cal.com API.",
			Method:      "GET",
			Path:        "/verified-resources/emails",
		},
		{
			Name:        "cal_get_verified_email_by_id",
			Description: "Get a specific verified email by its ID from Cal.com.",
			Method:      "GET",
			Path:        "/verified-resources/emails/{emailId}",
			Params: []mcp.CatalogParam{
				{Name: "emailId", Type: "number", Description: "ID of the verified email to retrieve", Required: true, In: "path"},
			},
		},
		{
			Name:        "cal_get_verified_phones",
			Description: "Retrieve verified phone numbers with pagination support.",
			Method:      "GET",
			Path:        "/verified-resources/phones",
			Params: []mcp.CatalogParam{
				{Name: "take", Type: "number", Description: "Number of records to return (default: 250, max: 250)", In: "query"},
				{Name: "skip", Type: "number", Description: "Number of records to skip for pagination", In: "query"},
			},
		},
		{
			Name:        "cal_get_verified_phone_by_id",
			Description: "Get a specific verified phone number by its ID from Cal.com.",
			Method:      "GET",
			Path:        "/verified-resources/phones/{phoneId}",
			Params: []mcp.CatalogParam{
				{Name: "phoneId", Type: "number", Description: "ID of the verified phone to retrieve", Required: true, In: "path"},
			},
		},
	}
}
