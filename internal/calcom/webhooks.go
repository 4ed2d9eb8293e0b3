package calcom

import (
	"github.com/calmcp/calcom-mcp/internal/mcp"
)

// webhookTriggersDescription lists the trigger events Cal.com accepts. Kept in
// the parameter description so MCP clients see the valid values.
const webhookTriggersDescription = "List of trigger events " +
	"(BOOKING_CREATED, BOOKING_PAYMENT_INITIATED, BOOKING_PAID, BOOKING_RESCHEDULED, " +
	"BOOKING_REQUESTED, BOOKING_CANCELLED, BOOKING_REJECTED, BOOKING_NO_SHOW_UPDATED, " +
	"FORM_SUBMITTED, MEETING_ENDED, MEETING_STARTED, RECORDING_READY, INSTANT_MEETING, " +
	"RECORDING_TRANSCRIPTION_GENERATED, OOO_CREATED, AFTER_HOSTS_CAL_VIDEO_NO_SHOW, " +
	"AFTER_GUESTS_CAL_VIDEO_NO_SHOW, FORM_SUBMITTED_NO_EVENT)"

// WebhookTools returns the descriptors for the Cal.com webhooks endpoints.
func WebhookTools() []mcp.CatalogTool {
	return []mcp.CatalogTool{
		{
			Name:        "cal_get_all_webhooks",
			Description: "Retrieve all webhooks with pagination support from Cal.com API.",
			Method:      "GET",
			Path:        "/webhooks",
			Params: []mcp.CatalogParam{
				{Name: "take", Type: "number", Description: "Number of records to return (default: 250)", In: "query"},
				{Name: "skip", Type: "number", Description: "Number of records to skip for pagination", In: "query"},
			},
		},
		{
			Name:        "cal_create_webhook",
			Description: "Create a new webhook in Cal.com.",
			Method:      "POST",
			Path:        "/webhooks",
			Params: []mcp.CatalogParam{
				{Name: "active", Type: "boolean", Description: "Whether the webhook is active", Required: true, In: "body"},
				{Name: "subscriberUrl", Type: "string", Description: "URL to receive webhook payloads", Required: true, In: "body"},
				{Name: "triggers", Type: "array", Description: webhookTriggersDescription, Required: true, In: "body"},
				{Name: "payloadTemplate", Type: "string", Description: "Custom payload template (JSON string with Liquid variables)", In: "body"},
				{Name: "secret", Type: "string", Description: "Secret for verifying webhooks", In: "body"},
			},
		},
		{
			Name:        "cal_get_webhook",
			Description: "Get a specific webhook by its ID from Cal.com.",
			Method:      "GET",
			Path:        "/webhooks/{webhookId}",
			Params: []mcp.CatalogParam{
				{Name: "webhookId", Type: "string", Description: "ID of the webhook to retrieve", Required: true, In: "path"},
			},
		},
		{
			Name:        "cal_update_webhook",
			Description: "Update an existing webhook in Cal.com.",
			Method:      "PATCH",
			Path:        "/webhooks/{webhookId}",
			Params: []mcp.CatalogParam{
				{Name: "webhookId", Type: "string", Description: "ID of the webhook to update", Required: true, In: "path"},
				{Name: "active", Type: "boolean", Description: "Whether the webhook is active", In: "body"},
				{Name: "subscriberUrl", Type: "string", Description: "New URL to receive webhook payloads", In: "body"},
				{Name: "triggers", Type: "array", Description: "Updated " + webhookTriggersDescription, In: "body"},
				{Name: "payloadTemplate", Type: "string", Description: "Updated payload template (JSON string with Liquid variables)", In: "body"},
				{Name: "secret", Type: "string", Description: "New secret for verifying webhooks", In: "body"},
			},
		},
		{
			Name:        "cal_delete_webhook",
			Description: "Delete a webhook by its ID from Cal.com.",
			Method:      "DELETE",
			Path:        "/webhooks/{webhookId}",
			Params: []mcp.CatalogParam{
				{Name: "webhookId", Type: "string", Description: "ID of the webhook to delete", Required: true, In: "path"},
			},
		},
	}
}
