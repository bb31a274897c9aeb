// ================== internal/features/todos/handler.go ==================
package todos

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xyz-asif/imagetodo/internal/pkg/logger"
	"github.com/xyz-asif/imagetodo/internal/pkg/pagination"
	"github.com/xyz-asif/imagetodo/internal/pkg/response"
	apperrors "github.com/xyz-asif/imagetodo/pkg/errors"
)

type Handler struct {
	store *Store
	form  *Controller
	log   *zap.Logger
}

func NewHandler(store *Store, form *Controller, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: store, form: form, log: log}
}

// List godoc
// @Summary List todos
// @Description Get the todo collection in insertion order. Without page/limit the whole collection is returned.
// @Tags todos
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size (default: 10, max: 100)"
// @Success 200 {object} response.SuccessResponse{data=[]Todo}
// @Router /todos [get]
func (h *Handler) List(c *gin.Context) {
	todos := h.store.List()

	pageStr, limitStr := c.Query("page"), c.Query("limit")
	if pageStr == "" && limitStr == "" {
		response.Success(c, todos)
		return
	}

	req := pagination.FromRequest(pageStr, limitStr)
	p := pagination.New(req.Page, req.Limit, int64(len(todos)))
	start, end := p.Bounds()

	response.Paginated(c, todos[start:end], p.Total, p.Limit, p.Page)
}

// Get godoc
// @Summary Get a todo by ID
// @Tags todos
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} response.SuccessResponse{data=Todo}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /todos/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	todo, found := h.store.Get(id)
	if !found {
		response.NotFound(c, "Todo not found", "TODO_NOT_FOUND")
		return
	}

	response.Success(c, todo)
}

// Image godoc
// @Summary Get a todo's image
// @Description Decodes the stored data URI and returns the raw image bytes
// @Tags todos
// @Produce image/png,image/jpeg,image/gif,image/webp
// @Param id path int true "Todo ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.ErrorResponse
// @Router /todos/{id}/image [get]
func (h *Handler) Image(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	todo, found := h.store.Get(id)
	if !found {
		response.NotFound(c, "Todo not found", "TODO_NOT_FOUND")
		return
	}

	mime, data, err := DecodeImage(todo.Image)
	if err != nil {
		h.log.Error("stored image is not a data URI", zap.Int64("id", id), zap.Error(err))
		response.InternalServerError(c, "Stored image is unreadable", "IMAGE_CORRUPT")
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, mime, data)
}

// ToggleStatus godoc
// @Summary Toggle completion
// @Description Flips isCompleted. An unknown id leaves the collection unchanged and is not an error.
// @Tags todos
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} response.SuccessResponse{data=[]Todo}
// @Failure 500 {object} response.ErrorResponse
// @Router /todos/{id}/status [patch]
func (h *Handler) ToggleStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.store.ToggleStatus(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, h.store.List())
}

// Delete godoc
// @Summary Delete a todo
// @Description Removes the todo. An unknown id leaves the collection unchanged and is not an error.
// @Tags todos
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} response.SuccessResponse{data=[]Todo}
// @Failure 500 {object} response.ErrorResponse
// @Router /todos/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.store.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, h.store.List())
}

// Events godoc
// @Summary Stream collection changes
// @Description Server-sent events; each "todos" event carries the full collection
// @Tags todos
// @Produce text/event-stream
// @Success 200 {array} Todo
// @Router /todos/events [get]
func (h *Handler) Events(c *gin.Context) {
	updates := make(chan []Todo, 1)
	cancel := h.store.Subscribe(func(todos []Todo) {
		offerLatest(updates, todos)
	})
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.SSEvent("todos", h.store.List())
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case todos := <-updates:
			c.SSEvent("todos", todos)
			return true
		}
	})
}

// offerLatest puts v on a one-slot channel, replacing an unread older value.
func offerLatest(ch chan []Todo, v []Todo) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// FormState godoc
// @Summary Get the form state
// @Tags form
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=FormState}
// @Router /form [get]
func (h *Handler) FormState(c *gin.Context) {
	response.Success(c, h.form.State())
}

// Submit godoc
// @Summary Submit the form
// @Description Adds a todo while creating; updates the edited todo while editing
// @Tags form
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param endDate formData string true "End date (YYYY-MM-DD)"
// @Param image formData file false "Image (required when creating)"
// @Success 200 {object} response.SuccessResponse{data=SubmitResult} "Updated"
// @Success 201 {object} response.SuccessResponse{data=SubmitResult} "Added"
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 429 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /form [post]
func (h *Handler) Submit(c *gin.Context) {
	upload, closeUpload, err := uploadFromForm(c, "image")
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer closeUpload()

	in := FormInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		EndDate:     c.PostForm("endDate"),
		Image:       upload,
	}

	result, err := h.form.Submit(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if result.Mode == ModeCreating {
		response.Created(c, result)
		return
	}
	response.Success(c, result)
}

// BeginEdit godoc
// @Summary Edit a todo
// @Description Switches the form to editing the todo, pre-filled with its values. Any unsaved edit is discarded.
// @Tags form
// @Produce json
// @Param id path int true "Todo ID"
// @Success 200 {object} response.SuccessResponse{data=FormState}
// @Failure 404 {object} response.ErrorResponse
// @Router /form/edit/{id} [post]
func (h *Handler) BeginEdit(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	state, err := h.form.BeginEdit(id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, state)
}

// CancelEdit godoc
// @Summary Reset the form
// @Tags form
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=FormState}
// @Router /form/edit [delete]
func (h *Handler) CancelEdit(c *gin.Context) {
	response.Success(c, h.form.Reset())
}

// Preview godoc
// @Summary Preview a chosen image
// @Tags form
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image"
// @Success 200 {object} response.SuccessResponse{data=FormState}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /form/preview [post]
func (h *Handler) Preview(c *gin.Context) {
	upload, closeUpload, err := uploadFromForm(c, "image")
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer closeUpload()

	if upload == nil {
		response.ValidationFields(c, FieldErrors{FieldImage: MsgImageRequired})
		return
	}

	state, err := h.form.Preview(*upload)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, state)
}

// writeError maps domain errors onto the response envelope.
func (h *Handler) writeError(c *gin.Context, err error) {
	var fields FieldErrors
	switch {
	case errors.As(err, &fields):
		response.ValidationFields(c, fields)
	case errors.Is(err, apperrors.ErrEncoding):
		response.EncodingError(c, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		response.NotFound(c, "Todo not found", "TODO_NOT_FOUND")
	case errors.Is(err, apperrors.ErrBadRequest):
		response.BadRequest(c, err.Error(), "INVALID_FORM")
	case errors.Is(err, apperrors.ErrStorage):
		logger.WithRequestID(c.Request.Context(), h.log).Error("storage failure", zap.Error(err))
		response.StorageError(c, "Failed to save todos")
	default:
		logger.WithRequestID(c.Request.Context(), h.log).Error("unexpected error", zap.Error(err))
		response.InternalServerError(c, "Something went wrong")
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid todo ID", "INVALID_ID")
		return 0, false
	}
	return id, true
}

// uploadFromForm returns the file in the named field, or nil when none was
// chosen. The returned func closes the file.
func uploadFromForm(c *gin.Context, field string) (*Upload, func(), error) {
	noop := func() {}

	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, fmt.Errorf("%w: %w", apperrors.ErrBadRequest, err)
	}
	// Browsers send an empty part when the file input is left blank.
	if fh.Filename == "" && fh.Size == 0 {
		return nil, noop, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, fmt.Errorf("%w: open %s: %w", apperrors.ErrEncoding, fh.Filename, err)
	}

	return &Upload{Filename: fh.Filename, Size: fh.Size, Content: f}, func() { f.Close() }, nil
}
