package api

import (
	"encoding/json"
	"strings"

	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"

	"github.com/example/taskboard/modules/auth"
)

// registerUser handles POST /api/v1/auth/register.
func (h *Handlers) registerUser(c *fiber.Ctx) error {
	var req auth.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	var resp auth.RegisterResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "register",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return translateServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// login handles POST /api/v1/auth/login.
func (h *Handlers) login(c *fiber.Ctx) error {
	var req auth.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required")
	}

	var resp auth.LoginResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "login",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return translateServiceError(c, err)
	}

	return c.JSON(resp)
}

// refresh handles POST /api/v1/auth/refresh.
func (h *Handlers) refresh(c *fiber.Ctx) error {
	var req auth.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.RefreshToken == "" {
		return badRequest(c, "Refresh token is required")
	}

	var resp auth.RefreshResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "refresh-token",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error:   "unauthorized",
			Message: "Invalid or expired refresh token",
		})
	}

	return c.JSON(resp)
}

// logout handles POST /api/v1/auth/logout. The access token to revoke
// comes from the Authorization header.
func (h *Handlers) logout(c *fiber.Ctx) error {
	token := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	req := auth.LogoutRequest{AccessToken: token}

	var resp auth.LogoutResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "logout",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return translateServiceError(c, err)
	}

	return c.JSON(resp)
}

// profile handles GET /api/v1/auth/profile.
func (h *Handlers) profile(c *fiber.Ctx) error {
	req := auth.GetProfileRequest{UserID: currentUserID(c)}

	var resp auth.ProfileResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "get-profile",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return translateServiceError(c, err)
	}

	return c.JSON(resp)
}

// updateProfile handles PUT /api/v1/auth/profile.
func (h *Handlers) updateProfile(c *fiber.Ctx) error {
	var req auth.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	req.UserID = currentUserID(c)

	var resp auth.ProfileResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "update-profile",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return translateServiceError(c, err)
	}

	return c.JSON(resp)
}

// changePassword handles PUT /api/v1/auth/password.
func (h *Handlers) changePassword(c *fiber.Ctx) error {
	var req auth.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return badRequest(c, "Current and new passwords are required")
	}
	req.UserID = currentUserID(c)

	var resp auth.ChangePasswordResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(), h.authContainer, "change-password",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return translateServiceError(c, err)
	}

	return c.JSON(resp)
}
