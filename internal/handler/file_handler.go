package handler

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"nestcloud/internal/errors"
	"nestcloud/internal/service"
)

// FileHandler handles file endpoints.
type FileHandler struct {
	ingestionService service.IngestionService
	fileService      service.FileService
}

// NewFileHandler creates a new file handler.
func NewFileHandler(ingestionService service.IngestionService, fileService service.FileService) *FileHandler {
	return &FileHandler{
		ingestionService: ingestionService,
		fileService:      fileService,
	}
}

// RenameRequest represents a rename request.
type RenameRequest struct {
	Name string `json:"name" validate:"required"`
}

// userIDFromContext extracts the authenticated user's ID from the JWT set by
// the auth middleware.
func userIDFromContext(c echo.Context) (uint, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return uint(id), nil
}

func fileIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid file ID",
			Code:  "INVALID_FILE_ID",
		})
	}
	return uint(id), nil
}

// List godoc
// @Summary List the authenticated user's files
// @Tags files
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.File
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /files [get]
func (h *FileHandler) List(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	files, err := h.fileService.List(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, files)
}

// Upload godoc
// @Summary Upload a file
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Success 201 {object} model.File
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /files [post]
func (h *FileHandler) Upload(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "please choose a file to upload",
			Code:  "FILE_REQUIRED",
		})
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "failed to read uploaded file",
			Code:  "FILE_UNREADABLE",
		})
	}
	defer src.Close()

	file, err := h.ingestionService.Ingest(c.Request().Context(), src, fh.Filename, userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, file)
}

// Download godoc
// @Summary Download a file's content
// @Tags files
// @Produce octet-stream
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {file} binary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /files/{id}/download [get]
func (h *FileHandler) Download(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	fileID, err := fileIDParam(c)
	if err != nil {
		return err
	}

	file, path, err := h.fileService.Download(c.Request().Context(), userID, fileID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	f, err := os.Open(path)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrFileNotFound)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	defer f.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.DisplayName))
	return c.Stream(http.StatusOK, echo.MIMEOctetStream, f)
}

// Preview godoc
// @Summary Serve a file's thumbnail or category icon
// @Tags files
// @Produce png
// @Produce jpeg
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {file} binary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /files/{id}/preview [get]
func (h *FileHandler) Preview(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	fileID, err := fileIDParam(c)
	if err != nil {
		return err
	}

	path, err := h.fileService.Preview(c.Request().Context(), userID, fileID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.File(path)
}

// Rename godoc
// @Summary Rename a file
// @Tags files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "File ID"
// @Param request body RenameRequest true "New display name"
// @Success 200 {object} model.File
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /files/{id} [patch]
func (h *FileHandler) Rename(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	fileID, err := fileIDParam(c)
	if err != nil {
		return err
	}

	var req RenameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	file, err := h.fileService.Rename(c.Request().Context(), userID, fileID, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, file)
}

// Delete godoc
// @Summary Delete a file
// @Tags files
// @Produce json
// @Security BearerAuth
// @Param id path int true "File ID"
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /files/{id} [delete]
func (h *FileHandler) Delete(c echo.Context) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}
	fileID, err := fileIDParam(c)
	if err != nil {
		return err
	}

	if err := h.fileService.Delete(c.Request().Context(), userID, fileID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "file deleted",
	})
}
