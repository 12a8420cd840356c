package handlers

import (
	stderrors "errors"
	"net/http"

	"finance-tracker/internal/dto"
	"finance-tracker/internal/errors"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// UploadHandler accepts receipt files
type UploadHandler struct {
	uploadService services.UploadServiceInterface
}

func NewUploadHandler(uploadService services.UploadServiceInterface) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// UploadReceipt stores a multipart receipt file and returns its URL
// @Summary Upload receipt
// @Tags Uploads
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Receipt file"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} errors.ErrorResponse "UPLOAD_001"
// @Failure 413 {object} errors.ErrorResponse "UPLOAD_002"
// @Router /api/upload [post]
func (h *UploadHandler) UploadReceipt(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	header, err := c.FormFile("file")
	if err != nil {
		return SendError(c, errors.UploadMissingFile)
	}

	file, err := header.Open()
	if err != nil {
		return SendError(c, errors.UploadMissingFile, errors.WithDetails("file could not be read"))
	}
	defer file.Close()

	url, err := h.uploadService.SaveReceipt(c.Request().Context(), userID, header.Filename, file)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrFileTooLarge):
			return SendError(c, errors.UploadTooLarge)
		case stderrors.Is(err, services.ErrEmptyFile):
			return SendError(c, errors.UploadMissingFile, errors.WithDetails("file is empty"))
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, dto.UploadResponse{FileURL: url})
}
