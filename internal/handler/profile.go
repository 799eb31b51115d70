package handler

import (
	"net/http"

	"github.com/OKANLA95/Keziah-Shop/internal/apierror"
	"github.com/OKANLA95/Keziah-Shop/internal/dto"
	"github.com/OKANLA95/Keziah-Shop/internal/infra"
	"github.com/OKANLA95/Keziah-Shop/internal/middleware"
	"github.com/OKANLA95/Keziah-Shop/internal/service"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 5 << 20 // 5 MiB

// ProfileHandler serves the authenticated user's own account and shop profile.
type ProfileHandler struct {
	auth  service.AuthService
	store *infra.FileStore
}

func NewProfileHandler(auth service.AuthService, store *infra.FileStore) *ProfileHandler {
	return &ProfileHandler{auth: auth, store: store}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	user, err := h.auth.Me(c.Request.Context(), claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	claims := middleware.GetClaims(c)
	var req dto.UpdateProfileRequest
	if !bindAndValidate(c, &req) {
		return
	}
	user, err := h.auth.UpdateProfile(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UploadLogo stores the shop logo and records its URL on the profile.
func (h *ProfileHandler) UploadLogo(c *gin.Context) {
	claims := middleware.GetClaims(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("missing file field"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, apierror.New("file too large"))
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("unreadable file"))
		return
	}
	defer f.Close()

	url, err := h.store.Save("shop-logos", fileHeader.Filename, f)
	if err != nil {
		respondError(c, apierror.ErrPersistence)
		return
	}
	user, err := h.auth.SetLogo(c.Request.Context(), claims.UserID, url)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
