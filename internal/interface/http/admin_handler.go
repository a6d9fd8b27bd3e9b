package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abdulrafayKhan-10/EventSphere-Management-System/internal/application"
	"github.com/abdulrafayKhan-10/EventSphere-Management-System/pkg/response"
)

// AdminHandler serves the administrative account operations. Routes are
// gated on the Admin role upstream.
type AdminHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.Service, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

// List handles GET /api/users. Every record goes through the same
// scrubbed projection as the self-service reads.
func (h *AdminHandler) List(c *gin.Context) {
	profiles, err := h.Svc.ListAccounts()
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, profiles, "accounts")
}

// Search handles GET /api/users/search?q=&size=.
func (h *AdminHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results")
}

// Delete handles DELETE /api/users/:id.
func (h *AdminHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteAccount(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "User deleted successfully")
}

func (h *AdminHandler) writeError(c *gin.Context, err error) {
	writeServiceError(c, h.Logger, err)
}
