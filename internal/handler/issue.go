package handler

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sumire/issuetracker/internal/service"
)

// IssueHandler serves the /api/issues/:project endpoints.
type IssueHandler struct {
	issues *service.IssueService
}

// NewIssueHandler creates a new IssueHandler.
func NewIssueHandler(issues *service.IssueService) *IssueHandler {
	return &IssueHandler{issues: issues}
}

// Register mounts the issue routes on g.
func (h *IssueHandler) Register(g *echo.Group) {
	g.POST("/:project", h.Create)
	g.GET("/:project", h.List)
	g.PUT("/:project", h.Update)
	g.DELETE("/:project", h.Delete)
}

// Create stores a new issue and echoes it back.
func (h *IssueHandler) Create(c echo.Context) error {
	var req createIssueRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	issue, err := h.issues.Create(c.Request().Context(), req.toNewIssue())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issue)
}

// List returns the project's issues filtered by the query string.
func (h *IssueHandler) List(c echo.Context) error {
	issues, err := h.issues.List(c.Request().Context(), c.Param("project"), c.QueryParams())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, issues)
}

// Update applies the sent fields to an existing issue.
func (h *IssueHandler) Update(c echo.Context) error {
	var req updateIssueRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	id := string(req.ID)
	if id == "" {
		id = c.QueryParam("_id")
	}

	if err := h.issues.Update(c.Request().Context(), id, req.toPatch()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Result{Result: "successfully updated", ID: id})
}

// Delete removes an issue.
func (h *IssueHandler) Delete(c echo.Context) error {
	var req deleteIssueRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	id := string(req.ID)
	if id == "" {
		var err error
		if id, err = deleteFormID(c); err != nil {
			return err
		}
	}

	if err := h.issues.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, Result{Result: "successfully deleted", ID: id})
}

// net/http only parses form bodies for POST, PUT and PATCH, so echo's
// binder never sees the _id of a form-encoded DELETE.
func deleteFormID(c echo.Context) (string, error) {
	r := c.Request()
	if !strings.HasPrefix(r.Header.Get(echo.HeaderContentType), echo.MIMEApplicationForm) {
		return "", nil
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "read request body").SetInternal(err)
	}
	values, err := url.ParseQuery(string(body))
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("parse form body: %v", err)).SetInternal(err)
	}
	return values.Get("_id"), nil
}
