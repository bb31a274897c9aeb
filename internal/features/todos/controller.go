package todos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/xyz-asif/imagetodo/pkg/errors"
)

// FormInput is one submission of the todo form. Image is nil when no file
// was chosen.
type FormInput struct {
	Title       string
	Description string
	EndDate     string
	Image       *Upload
}

// Controller drives the todo form: it validates submissions, encodes the
// chosen image and hands the result to the Store. It holds the form state,
// which is either creating a new todo or editing exactly one existing todo.
type Controller struct {
	mu           sync.Mutex
	store        *Store
	state        FormState
	storedImage  bool
	maxImageSize int64
	log          *zap.Logger
}

func NewController(store *Store, maxImageSize int64, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if maxImageSize <= 0 {
		maxImageSize = DefaultMaxImageSize
	}
	return &Controller{
		store:        store,
		state:        FormState{Mode: ModeCreating},
		maxImageSize: maxImageSize,
		log:          log,
	}
}

// State returns the current form state.
func (c *Controller) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// BeginEdit switches the form to editing the todo with the given id,
// discarding any edit in progress.
func (c *Controller) BeginEdit(id int64) (FormState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	todo, ok := c.store.Get(id)
	if !ok {
		return c.state, fmt.Errorf("%w: todo %d", apperrors.ErrNotFound, id)
	}

	if c.state.Mode == ModeEditing && c.state.EditingID != id {
		c.log.Debug("discarding unsaved edit", zap.Int64("id", c.state.EditingID))
	}

	c.state = FormState{
		Mode:      ModeEditing,
		EditingID: id,
		Values: FormValues{
			Title:       todo.Title,
			Description: todo.Description,
			EndDate:     todo.EndDate,
		},
		ImagePreview: todo.Image,
		Alert:        c.state.Alert,
	}
	c.storedImage = todo.Image != ""
	return c.state, nil
}

// Preview shows a newly chosen file on the form without storing it.
func (c *Controller) Preview(u Upload) (FormState, error) {
	if u.Size > c.maxImageSize {
		return c.State(), FieldErrors{FieldImage: imageSizeMessage(c.maxImageSize)}
	}

	img, err := c.encode(u)
	if err != nil {
		return c.State(), err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ImagePreview = img.DataURI
	return c.state, nil
}

// Reset returns the form to creating mode. The alert survives.
func (c *Controller) Reset() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = FormState{Mode: ModeCreating, Alert: c.state.Alert}
	c.storedImage = false
	return c.state
}

// Submit validates in and, in creating mode, adds a new todo; in editing mode
// it updates the text fields and, if a file was chosen, the image. The image
// is encoded before anything is written, so a failed read leaves the
// collection untouched.
func (c *Controller) Submit(ctx context.Context, in FormInput) (SubmitResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	editing := c.state.Mode == ModeEditing
	fieldErrs := FieldErrors{}
	if err := ValidateForm(in, editing && c.storedImage, c.maxImageSize); err != nil {
		if !errors.As(err, &fieldErrs) {
			return SubmitResult{}, err
		}
	}

	// The file is read even when other fields failed, so its type error is
	// reported with theirs.
	var image string
	if _, failed := fieldErrs[FieldImage]; in.Image != nil && !failed {
		img, err := EncodeImage(*in.Image)
		if err != nil {
			c.log.Warn("image encoding failed", zap.String("file", in.Image.Filename), zap.Error(err))
			return SubmitResult{}, err
		}
		if img.IsImage() {
			image = img.DataURI
		} else {
			fieldErrs[FieldImage] = MsgImageType
		}
	}
	if len(fieldErrs) > 0 {
		return SubmitResult{}, fieldErrs
	}

	fields := TextFields{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		EndDate:     strings.TrimSpace(in.EndDate),
	}

	var (
		todo  Todo
		alert string
	)
	if editing {
		id := c.state.EditingID
		reducers := []Reducer{UpdateReducer(id, fields)}
		if image != "" {
			reducers = append(reducers, UpdateImageReducer(id, image))
		}
		if err := c.store.Apply(ctx, reducers...); err != nil {
			return SubmitResult{}, err
		}

		// A todo deleted while it was being edited leaves Todo zero.
		var ok bool
		if todo, ok = c.store.Get(id); !ok {
			c.log.Info("edited todo no longer exists, nothing updated", zap.Int64("id", id))
		}
		alert = AlertUpdated
	} else {
		todo = Todo{
			ID:          c.store.NextID(),
			Title:       fields.Title,
			Description: fields.Description,
			EndDate:     fields.EndDate,
			Image:       image,
			IsCompleted: false,
		}
		if err := c.store.Add(ctx, todo); err != nil {
			return SubmitResult{}, err
		}
		alert = AlertAdded
	}

	mode := c.state.Mode
	c.state = FormState{Mode: ModeCreating, Alert: alert}
	c.storedImage = false

	c.log.Info("todo submitted", zap.String("mode", string(mode)), zap.Int64("id", todo.ID))

	return SubmitResult{Todo: todo, Mode: mode, Alert: alert, State: c.state}, nil
}

// encode converts u and rejects content that is not an image.
func (c *Controller) encode(u Upload) (EncodedImage, error) {
	img, err := EncodeImage(u)
	if err != nil {
		return EncodedImage{}, err
	}
	if !img.IsImage() {
		return EncodedImage{}, FieldErrors{FieldImage: MsgImageType}
	}
	return img, nil
}
