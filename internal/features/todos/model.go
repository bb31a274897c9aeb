// ================== internal/features/todos/model.go ==================
package todos

// Todo represents a todo item
// @Description Todo item with all its properties
type Todo struct {
	ID          int64  `bson:"id" json:"id" example:"1704067200000"`
	Title       string `bson:"title" json:"title" example:"Buy milk"`
	Description string `bson:"description" json:"description" example:"2%"`
	EndDate     string `bson:"endDate" json:"endDate" example:"2024-01-01"`
	Image       string `bson:"image" json:"image" example:"data:image/png;base64,iVBORw0KGgo="`
	IsCompleted bool   `bson:"isCompleted" json:"isCompleted" example:"false"`
}

// TextFields are the fields replaced by an update. Image and status have
// their own operations.
type TextFields struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	EndDate     string `json:"endDate"`
}

// Mode is the form controller's state.
type Mode string

const (
	ModeCreating Mode = "creating"
	ModeEditing  Mode = "editing"
)

// FormValues are the pre-filled text inputs of the form.
type FormValues struct {
	Title       string `json:"title" example:"Buy milk"`
	Description string `json:"description" example:"2%"`
	EndDate     string `json:"endDate" example:"2024-01-01"`
}

// FormState is the transient UI state owned by the controller
// @Description Current mode of the todo form
type FormState struct {
	Mode         Mode       `json:"mode" example:"creating" enums:"creating,editing"`
	EditingID    int64      `json:"editingId,omitempty" example:"1704067200000"`
	Values       FormValues `json:"values"`
	ImagePreview string     `json:"imagePreview,omitempty"`
	Alert        string     `json:"alert,omitempty" example:"Todo Added Successfully!"`
}

// SubmitResult is returned after a successful submission
// @Description Outcome of a form submission
type SubmitResult struct {
	Todo  Todo      `json:"todo"`
	Mode  Mode      `json:"mode" example:"creating"`
	Alert string    `json:"alert" example:"Todo Added Successfully!"`
	State FormState `json:"state"`
}

const (
	AlertAdded   = "Todo Added Successfully!"
	AlertUpdated = "Todo Updated Successfully!"
)
