package calcom

import (
	"github.com/calmcp/calcom-mcp/internal/mcp"
)

// schedulesHeaders returns the static headers every schedules call carries.
func schedulesHeaders() map[string]string {
	return map[string]string{"cal-api-version": schedulesAPIVersion}
}

// ScheduleTools returns the descriptors for the Cal.com schedules endpoints.
func ScheduleTools() []mcp.CatalogTool {
	return []mcp.CatalogTool{
		{
			Name:        "cal_get_all_schedules",
			Description: "Retrieve all schedules from Cal.com API.",
			Method:      "GET",
			Path:        "/schedules",
			Headers:     schedulesHeaders(),
		},
		{
			Name:        "cal_create_a_schedule",
			Description: "Create a new schedule in Cal.com.",
			Method:      "POST",
			Path:        "/schedules",
			Headers:     schedulesHeaders(),
			Params: []mcp.CatalogParam{
				{Name: "name", Type: "string", Description: "Name of the new schedule", Required: true, In: "body"},
				{Name: "timeZone", Type: "string", Description: "Time zone ID (e.g., 'America/New_York')", Required: true, In: "body"},
				{Name: "isDefault", Type: "boolean", Description: "Whether this should be the default schedule", Required: true, In: "body"},
				{Name: "availability", Type: "array", Items: "object", Description: "List of availability blocks with days, startTime and endTime", In: "body"},
				{Name: "overrides", Type: "array", Items: "object", Description: "Date-specific overrides with date, startTime and endTime", In: "body"},
			},
		},
		{
			Name:        "cal_update_a_schedule",
			Description: "Update an existing schedule in Cal.com.",
			Method:      "PATCH",
			Path:        "/schedules/{scheduleId}",
			Headers:     schedulesHeaders(),
			Params: []mcp.CatalogParam{
				{Name: "scheduleId", Type: "number", Description: "ID of the schedule to update", Required: true, In: "path"},
				{Name: "name", Type: "string", Description: "Updated schedule name", In: "body"},
				{Name: "timeZone", Type: "string", Description: "Updated time zone ID (e.g., 'America/New_York')", In: "body"},
				{Name: "isDefault", Type: "boolean", Description: "Whether to make this the default schedule", In: "body"},
				{Name: "availability", Type: "array", Items: "object", Description: "Updated availability blocks with days, startTime and endTime", In: "body"},
				{Name: "overrides", Type: "array", Items: "object", Description: "Updated date overrides with date, startTime and endTime", In: "body"},
			},
		},
		{
			Name:        "cal_get_default_schedule",
			Description: "Get the default schedule from Cal.com.",
			Method:      "GET",
			Path:        "/schedules/default",
			Headers:     schedulesHeaders(),
		},
		{
			Name:        "cal_get_schedule",
			Description: "Get a specific schedule by its ID.",
			Method:      "GET",
			Path:        "/schedules/{scheduleId}",
			Headers:     schedulesHeaders(),
			Params: []mcp.CatalogParam{
				{Name: "scheduleId", Type: "number", Description: "ID of the schedule to retrieve", Required: true, In: "path"},
			},
		},
		{
			Name:        "cal_delete_a_schedule",
			Description: "Delete a schedule by its ID.",
			Method:      "DELETE",
			Path:        "/schedules/{scheduleId}",
			Headers:     schedulesHeaders(),
			Params: []mcp.CatalogParam{
				{Name: "scheduleId", Type: "number", Description: "ID of the schedule to delete", Required: true, In: "path"},
			},
		},
	}
}
