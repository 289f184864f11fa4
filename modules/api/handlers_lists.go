package api

import (
	"encoding/json"

	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"

	"github.com/example/taskboard/modules/list"
)

func callList[Req any, Resp any](h *Handlers, c *fiber.Ctx, service string, req Req, resp *Resp) error {
	return helper.CallRequestReplyService(
		c.UserContext(), h.listContainer, service,
		json.Marshal, json.Unmarshal, req, resp,
	)
}

// listLists handles GET /api/v1/lists with filter/sort query params.
func (h *Handlers) listLists(c *fiber.Ctx) error {
	req := list.ListListsRequest{
		UserID:          currentUserID(c),
		IncludeArchived: c.QueryBool("include_archived"),
		Filter:          filterSpecFromQuery(c),
		Sort:            sortSpecFromQuery(c),
	}

	var resp list.ListListsResponse
	if err := callList(h, c, "list-lists", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}

// createList handles POST /api/v1/lists.
func (h *Handlers) createList(c *fiber.Ctx) error {
	var req list.CreateListRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.UserID = currentUserID(c)

	var resp list.ListResponse
	if err := callList(h, c, "create-list", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// getList handles GET /api/v1/lists/:id.
func (h *Handlers) getList(c *fiber.Ctx) error {
	req := list.GetListRequest{UserID: currentUserID(c), ListID: c.Params("id")}

	var resp list.ListResponse
	if err := callList(h, c, "get-list", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}

// updateList handles PUT /api/v1/lists/:id.
func (h *Handlers) updateList(c *fiber.Ctx) error {
	var req list.UpdateListRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.UserID = currentUserID(c)
	req.ListID = c.Params("id")

	var resp list.ListResponse
	if err := callList(h, c, "update-list", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}

// deleteList handles DELETE /api/v1/lists/:id.
func (h *Handlers) deleteList(c *fiber.Ctx) error {
	req := list.DeleteListRequest{UserID: currentUserID(c), ListID: c.Params("id")}

	var resp list.DeleteListResponse
	if err := callList(h, c, "delete-list", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}

// listTasksOfList handles GET /api/v1/lists/:id/tasks.
func (h *Handlers) listTasksOfList(c *fiber.Ctx) error {
	tasks, err := h.taskAdapter.TasksForList(c.UserContext(), currentUserID(c), c.Params("id"))
	if err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(fiber.Map{"tasks": tasks, "total": len(tasks)})
}

// listStats handles GET /api/v1/lists/:id/stats.
func (h *Handlers) listStats(c *fiber.Ctx) error {
	req := list.GetListRequest{UserID: currentUserID(c), ListID: c.Params("id")}

	var resp list.StatsResponse
	if err := callList(h, c, "get-list-stats", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}

// duplicateList handles POST /api/v1/lists/:id/duplicate.
func (h *Handlers) duplicateList(c *fiber.Ctx) error {
	req := list.DuplicateListRequest{UserID: currentUserID(c), ListID: c.Params("id")}

	var resp list.ListResponse
	if err := callList(h, c, "duplicate-list", &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// archiveList handles POST /api/v1/lists/:id/archive.
func (h *Handlers) archiveList(c *fiber.Ctx) error {
	return h.archiveRoute(c, "archive-list")
}

// unarchiveList handles POST /api/v1/lists/:id/unarchive.
func (h *Handlers) unarchiveList(c *fiber.Ctx) error {
	return h.archiveRoute(c, "unarchive-list")
}

func (h *Handlers) archiveRoute(c *fiber.Ctx, service string) error {
	req := list.ArchiveListRequest{UserID: currentUserID(c), ListID: c.Params("id")}

	var resp list.ListResponse
	if err := callList(h, c, service, &req, &resp); err != nil {
		return translateServiceError(c, err)
	}
	return c.JSON(resp)
}
