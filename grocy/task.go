package grocy

import (
	"github.com/five82/pantry/api"
	"github.com/five82/pantry/parse"
)

// TaskCategory groups tasks.
type TaskCategory struct {
	id                  int
	name                string
	description         string
	rowCreatedTimestamp *parse.Time
}

func taskCategoryFromDto(dto *api.TaskCategoryDto) *TaskCategory {
	if dto == nil {
		return nil
	}
	return &TaskCategory{
		id:                  dto.ID,
		name:                dto.Name,
		description:         dto.Description,
		rowCreatedTimestamp: dto.RowCreatedTimestamp,
	}
}

func (c *TaskCategory) ID() int { return c.id }
func (c *TaskCategory) Name() string { return c.name }
func (c *TaskCategory) Description() string { return c.description }
func (c *TaskCategory) RowCreatedTimestamp() *parse.Time { return c.rowCreatedTimestamp }

// Task is a one-off todo item.
type Task struct {
	id               int
	name             string
	description      string
	dueDate          *parse.Time
	done             bool
	doneTimestamp    *parse.Time
	categoryID       *int
	category         *TaskCategory
	assignedToUserID *int
	assignedToUser   *User
	userfields       map[string]any
}

// TaskFromResponse builds a task from its record.
func TaskFromResponse(resp *api.TaskResponse) (*Task, error) {
	if resp == nil {
		return nil, &ShapeError{Model: "task", Shape: "nil task record"}
	}
	return &Task{
		id:               resp.ID,
		name:             resp.Name,
		description:      resp.Description,
		dueDate:          resp.DueDate,
		done:             resp.Done,
		doneTimestamp:    resp.DoneTimestamp,
		categoryID:       resp.CategoryID,
		category:         taskCategoryFromDto(resp.Category),
		assignedToUserID: resp.AssignedToUserID,
		assignedToUser:   optionalUser(resp.AssignedToUser),
		userfields:       resp.Userfields,
	}, nil
}

func (t *Task) ID() int { return t.id }
func (t *Task) Name() string { return t.name }
func (t *Task) Description() string { return t.description }
func (t *Task) DueDate() *parse.Time { return t.dueDate }
func (t *Task) Done() bool { return t.done }
func (t *Task) DoneTimestamp() *parse.Time { return t.doneTimestamp }
func (t *Task) CategoryID() *int { return t.categoryID }
func (t *Task) Category() *TaskCategory { return t.category }
func (t *Task) AssignedToUserID() *int { return t.assignedToUserID }
func (t *Task) AssignedToUser() *User { return t.assignedToUser }
func (t *Task) Userfields() map[string]any { return t.userfields }
