package todos

// Reducer is a pure transition from one collection to the next.
type Reducer func([]Todo) []Todo

// IndexOf returns the position of the todo with the given id, or -1.
func IndexOf(todos []Todo, id int64) int {
	for i := range todos {
		if todos[i].ID == id {
			return i
		}
	}
	return -1
}

// Add appends todo. Uniqueness of the id is the caller's responsibility.
func Add(todos []Todo, todo Todo) []Todo {
	next := make([]Todo, len(todos), len(todos)+1)
	copy(next, todos)
	return append(next, todo)
}

// Update replaces title, description and end date of the matching todo.
func Update(todos []Todo, id int64, fields TextFields) []Todo {
	return replace(todos, id, func(t *Todo) {
		t.Title = fields.Title
		t.Description = fields.Description
		t.EndDate = fields.EndDate
	})
}

// UpdateImage replaces only the image of the matching todo.
func UpdateImage(todos []Todo, id int64, image string) []Todo {
	return replace(todos, id, func(t *Todo) {
		t.Image = image
	})
}

// ToggleStatus flips IsCompleted of the matching todo.
func ToggleStatus(todos []Todo, id int64) []Todo {
	return replace(todos, id, func(t *Todo) {
		t.IsCompleted = !t.IsCompleted
	})
}

// Delete removes the matching todo, keeping the order of the rest.
func Delete(todos []Todo, id int64) []Todo {
	i := IndexOf(todos, id)
	if i < 0 {
		return todos
	}
	next := make([]Todo, 0, len(todos)-1)
	next = append(next, todos[:i]...)
	return append(next, todos[i+1:]...)
}

// replace copies the collection and applies fn to the copy of the matching
// todo. A miss returns the input unchanged.
func replace(todos []Todo, id int64, fn func(*Todo)) []Todo {
	i := IndexOf(todos, id)
	if i < 0 {
		return todos
	}
	next := make([]Todo, len(todos))
	copy(next, todos)
	fn(&next[i])
	return next
}

// Reducer constructors, for composing several transitions in one Store.Apply.

func AddReducer(todo Todo) Reducer {
	return func(todos []Todo) []Todo { return Add(todos, todo) }
}

func UpdateReducer(id int64, fields TextFields) Reducer {
	return func(todos []Todo) []Todo { return Update(todos, id, fields) }
}

func UpdateImageReducer(id int64, image string) Reducer {
	return func(todos []Todo) []Todo { return UpdateImage(todos, id, image) }
}

func ToggleStatusReducer(id int64) Reducer {
	return func(todos []Todo) []Todo { return ToggleStatus(todos, id) }
}

func DeleteReducer(id int64) Reducer {
	return func(todos []Todo) []Todo { return Delete(todos, id) }
}
