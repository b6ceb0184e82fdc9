package api

import (
	"context"
	"time"
)

// ChoreExecution is the body of a chore execution.
type ChoreExecution struct {
	// TrackedTime defaults to the server's now when nil.
	TrackedTime *time.Time
	DoneBy      *int
	Skipped     bool
}

func (e ChoreExecution) body() map[string]any {
	data := map[string]any{"skipped": e.Skipped}
	if e.TrackedTime != nil {
		data["tracked_time"] = formatTracked(*e.TrackedTime)
	}
	if e.DoneBy != nil {
		data["done_by"] = *e.DoneBy
	}
	return data
}

// formatTracked renders a timestamp with an explicit offset so the server
// never has to guess the zone.
func formatTracked(t time.Time) string {
	return t.Format(time.RFC3339)
}

// Chores lists every chore with its schedule summary.
func (c *Client) Chores(ctx context.Context, filters Filters) ([]CurrentChoreResponse, error) {
	var out []CurrentChoreResponse
	if _, err := c.get(ctx, "chores", filters.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ChoreDetails fetches one chore with its history.
func (c *Client) ChoreDetails(ctx context.Context, choreID int) (*ChoreDetailsResponse, error) {
	var out ChoreDetailsResponse
	ok, err := c.get(ctx, "chores/"+itoa(choreID), nil, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

// ExecuteChore tracks an execution of a chore.
func (c *Client) ExecuteChore(ctx context.Context, choreID int, req ChoreExecution) error {
	_, err := c.post(ctx, "chores/"+itoa(choreID)+"/execute", req.body(), nil)
	return err
}

// Tasks lists tasks.
func (c *Client) Tasks(ctx context.Context, filters Filters) ([]TaskResponse, error) {
	var out []TaskResponse
	if _, err := c.get(ctx, "tasks", filters.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Task fetches one task.
func (c *Client) Task(ctx context.Context, taskID int) (*TaskResponse, error) {
	var out TaskResponse
	ok, err := c.get(ctx, "objects/tasks/"+itoa(taskID), nil, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

// CompleteTask marks a task done at doneTime, or now when doneTime is zero.
func (c *Client) CompleteTask(ctx context.Context, taskID int, doneTime time.Time) error {
	if doneTime.IsZero() {
		doneTime = time.Now()
	}
	body := map[string]any{"done_time": formatTracked(doneTime)}
	_, err := c.post(ctx, "tasks/"+itoa(taskID)+"/complete", body, nil)
	return err
}

// Batteries lists every battery with its charge summary.
func (c *Client) Batteries(ctx context.Context, filters Filters) ([]CurrentBatteryResponse, error) {
	var out []CurrentBatteryResponse
	if _, err := c.get(ctx, "batteries", filters.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BatteryDetails fetches one battery with its charge history.
func (c *Client) BatteryDetails(ctx context.Context, batteryID int) (*BatteryDetailsResponse, error) {
	var out BatteryDetailsResponse
	ok, err := c.get(ctx, "batteries/"+itoa(batteryID), nil, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

// ChargeBattery tracks a charge cycle at trackedTime, or now when zero.
func (c *Client) ChargeBattery(ctx context.Context, batteryID int, trackedTime time.Time) error {
	if trackedTime.IsZero() {
		trackedTime = time.Now()
	}
	body := map[string]any{"tracked_time": formatTracked(trackedTime)}
	_, err := c.post(ctx, "batteries/"+itoa(batteryID)+"/charge", body, nil)
	return err
}
