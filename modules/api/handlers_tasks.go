package api

import (
	"encoding/json"

	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"

	"github.com/example/taskboard/modules/task"
)

func callTask[Req any, Resp any](h *Handlers, c *fiber.Ctx, service string, req Req, resp *Resp) error {
	return helper.CallRequestReplyService(
		c.UserContext(), h.taskContainer, service,
		json.Marshal, json.Unmarshal, req, resp,
	)
}

// listTasks handles GET /api/v1/tasks with filter/sort query params.
func (h *Handlers) listTasks(c *fiber.Ctx) error {
	req := task.ListTasksRequest{
		UserID: currentUserID(c),
		Filter: filterSpecFromQuery(c),
		Sort:   sortSpecFromQuery(c),
	}

	var resp task.ListTasksResponse
	if err := callTask(h, c, "list-tasks", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}

// createTask handles POST /api/v1/tasks.
func (h *Handlers) createTask(c *fiber.Ctx) error {
	var req task.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.UserID = currentUserID(c)

	var resp task.TaskResponse
	if err := callTask(h, c, "create-task", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// getTask handles GET /api/v1/tasks/:id.
func (h *Handlers) getTask(c *fiber.Ctx) error {
	req := task.GetTaskRequest{UserID: currentUserID(c), TaskID: c.Params("id")}

	var resp task.TaskResponse
	if err := callTask(h, c, "get-task", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}

// updateTask handles PUT /api/v1/tasks/:id.
func (h *Handlers) updateTask(c *fiber.Ctx) error {
	var req task.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.UserID = currentUserID(c)
	req.TaskID = c.Params("id")

	var resp task.TaskResponse
	if err := callTask(h, c, "update-task", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}

// deleteTask handles DELETE /api/v1/tasks/:id.
func (h *Handlers) deleteTask(c *fiber.Ctx) error {
	req := task.DeleteTaskRequest{UserID: currentUserID(c), TaskID: c.Params("id")}

	var resp task.DeleteTaskResponse
	if err := callTask(h, c, "delete-task", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}

// toggleTask handles PATCH /api/v1/tasks/:id/toggle.
func (h *Handlers) toggleTask(c *fiber.Ctx) error {
	req := task.ToggleTaskRequest{UserID: currentUserID(c), TaskID: c.Params("id")}

	var resp task.TaskResponse
	if err := callTask(h, c, "toggle-task", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}

// moveTask handles PATCH /api/v1/tasks/:id/move.
func (h *Handlers) moveTask(c *fiber.Ctx) error {
	var req task.MoveTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.ToListID == "" {
		return badRequest(c, "Target list is required")
	}
	req.UserID = currentUserID(c)
	req.TaskID = c.Params("id")

	var resp task.TaskResponse
	if err := callTask(h, c, "move-task", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}

// duplicateTask handles POST /api/v1/tasks/:id/duplicate.
func (h *Handlers) duplicateTask(c *fiber.Ctx) error {
	req := task.DuplicateTaskRequest{UserID: currentUserID(c), TaskID: c.Params("id")}

	var resp task.TaskResponse
	if err := callTask(h, c, "duplicate-task", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// setTaskPriority handles PATCH /api/v1/tasks/:id/priority.
func (h *Handlers) setTaskPriority(c *fiber.Ctx) error {
	var req task.SetPriorityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.UserID = currentUserID(c)
	req.TaskID = c.Params("id")

	var resp task.TaskResponse
	if err := callTask(h, c, "set-task-priority", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}

// setTaskDeadline handles PATCH /api/v1/tasks/:id/deadline. A null or
// absent deadline clears it.
func (h *Handlers) setTaskDeadline(c *fiber.Ctx) error {
	var req task.SetDeadlineRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.UserID = currentUserID(c)
	req.TaskID = c.Params("id")

	var resp task.TaskResponse
	if err := callTask(h, c, "set-task-deadline", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}

// reorderTasks handles PUT /api/v1/tasks/reorder.
func (h *Handlers) reorderTasks(c *fiber.Ctx) error {
	var req task.ReorderTasksRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.ListID == "" || len(req.OrderedIDs) == 0 {
		return badRequest(c, "List id and ordered ids are required")
	}
	req.UserID = currentUserID(c)

	var resp task.ReorderTasksResponse
	if err := callTask(h, c, "reorder-tasks", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}

// searchTasks handles GET /api/v1/tasks/search?q=.
func (h *Handlers) searchTasks(c *fiber.Ctx) error {
	req := task.SearchTasksRequest{UserID: currentUserID(c), Query: c.Query("q")}

	var resp task.ListTasksResponse
	if err := callTask(h, c, "search-tasks", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}

// tasksDueToday handles GET /api/v1/tasks/due-today.
func (h *Handlers) tasksDueToday(c *fiber.Ctx) error {
	return h.quickFilterRoute(c, "tasks-due-today")
}

// tasksDueThisWeek handles GET /api/v1/tasks/due-this-week.
func (h *Handlers) tasksDueThisWeek(c *fiber.Ctx) error {
	return h.quickFilterRoute(c, "tasks-due-this-week")
}

// tasksOverdue handles GET /api/v1/tasks/overdue.
func (h *Handlers) tasksOverdue(c *fiber.Ctx) error {
	return h.quickFilterRoute(c, "tasks-overdue")
}

func (h *Handlers) quickFilterRoute(c *fiber.Ctx, service string) error {
	req := task.GetTaskRequest{UserID: currentUserID(c)}

	var resp task.ListTasksResponse
	if err := callTask(h, c, service, &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}

// bulkCreateTasks handles POST /api/v1/tasks/bulk.
func (h *Handlers) bulkCreateTasks(c *fiber.Ctx) error {
	var req task.BulkCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.Tasks) == 0 {
		return badRequest(c, "At least one task is required")
	}
	req.UserID = currentUserID(c)

	var resp task.BulkResponse
	if err := callTask(h, c, "bulk-create-tasks", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// bulkCompleteTasks handles POST /api/v1/tasks/bulk/complete.
func (h *Handlers) bulkCompleteTasks(c *fiber.Ctx) error {
	var req task.BulkCompleteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.TaskIDs) == 0 {
		return badRequest(c, "At least one task id is required")
	}
	req.UserID = currentUserID(c)

	var resp task.BulkResponse
	if err := callTask(h, c, "bulk-complete-tasks", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}

// bulkDeleteTasks handles POST /api/v1/tasks/bulk/delete.
func (h *Handlers) bulkDeleteTasks(c *fiber.Ctx) error {
	var req task.BulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.TaskIDs) == 0 {
		return badRequest(c, "At least one task id is required")
	}
	req.UserID = currentUserID(c)

	var resp task.BulkResponse
	if err := callTask(h, c, "bulk-delete-tasks", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}
