package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	taskdomain "github.com/example/taskboard/domain/task"
	"github.com/example/taskboard/query"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// filterSpecFromQuery builds a FilterSpec from request query params.
//
//	?q=report&status=pending&priority=high,medium&list_id=a,b
//	&created_from=2024-01-01&created_to=2024-02-01
//	&due_today=true&due_this_week=true&overdue=true&high_priority=true
func filterSpecFromQuery(c *fiber.Ctx) query.FilterSpec {
	spec := query.DefaultFilterSpec()

	spec.Query = c.Query("q")
	if status := c.Query("status"); status != "" {
		spec.Status = query.Status(status)
	}
	for _, p := range splitParam(c.Query("priority")) {
		spec.Priorities = append(spec.Priorities, taskdomain.Priority(p))
	}
	spec.ListIDs = splitParam(c.Query("list_id"))
	spec.CreatedFrom = query.ParseDate(c.Query("created_from"))
	spec.CreatedTo = query.ParseDate(c.Query("created_to"))
	spec.Quick = query.QuickFilters{
		DueToday:     c.QueryBool("due_today"),
		DueThisWeek:  c.QueryBool("due_this_week"),
		Overdue:      c.QueryBool("overdue"),
		HighPriority: c.QueryBool("high_priority"),
	}

	return spec
}

// sortSpecFromQuery builds a SortSpec from ?sort= and ?direction=.
// Without a sort key the stored board order is kept.
func sortSpecFromQuery(c *fiber.Ctx) query.SortSpec {
	key := c.Query("sort")
	if key == "" {
		return query.SortSpec{}
	}

	direction := query.SortDirection(c.Query("direction", string(query.SortAsc)))
	if direction != query.SortAsc && direction != query.SortDesc {
		direction = query.SortAsc
	}

	return query.SortSpec{Key: query.SortKey(key), Direction: direction}
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
