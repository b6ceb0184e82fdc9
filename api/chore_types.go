package api

import (
	"github.com/five82/pantry/parse"
)

// PeriodType is how a chore's schedule repeats.
type PeriodType string

const (
	PeriodManually       PeriodType = "manually"
	PeriodDynamicRegular PeriodType = "dynamic-regular"
	PeriodDaily          PeriodType = "daily"
	PeriodWeekly         PeriodType = "weekly"
	PeriodMonthly        PeriodType = "monthly"
	PeriodYearly         PeriodType = "yearly"
)

// Valid reports whether p is a known period type.
func (p PeriodType) Valid() bool {
	switch p {
	case PeriodManually, PeriodDynamicRegular, PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// AssignmentType is how a chore picks the next user.
type AssignmentType string

const (
	AssignmentNone                AssignmentType = "no-assignment"
	AssignmentWhoLeastDidFirst    AssignmentType = "who-least-did-first"
	AssignmentRandom              AssignmentType = "random"
	AssignmentInAlphabeticalOrder AssignmentType = "in-alphabetical-order"
)

// Valid reports whether a is a known assignment type.
func (a AssignmentType) Valid() bool {
	switch a {
	case AssignmentNone, AssignmentWhoLeastDidFirst, AssignmentRandom, AssignmentInAlphabeticalOrder:
		return true
	}
	return false
}

// UserDto is a Grocy user account.
type UserDto struct {
	ID          int
	Username    string
	FirstName   string
	LastName    string
	DisplayName string
	Userfields  map[string]any
}

func (u *UserDto) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("user", data)
	if err != nil {
		return err
	}
	*u = UserDto{
		ID:          f.requiredInt("id"),
		Username:    f.str("username"),
		FirstName:   f.str("first_name"),
		LastName:    f.str("last_name"),
		DisplayName: f.str("display_name"),
		Userfields:  f.userfields("userfields"),
	}
	return f.err
}

// CurrentChoreResponse is one entry of GET chores.
type CurrentChoreResponse struct {
	ChoreID                       int
	ChoreName                     string
	LastTrackedTime               *parse.Time
	NextEstimatedExecutionTime    *parse.Time
	TrackDateOnly                 bool
	NextExecutionAssignedToUserID *int
}

func (c *CurrentChoreResponse) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("current chore", data)
	if err != nil {
		return err
	}
	*c = CurrentChoreResponse{
		ChoreID:                       f.requiredInt("chore_id"),
		ChoreName:                     f.str("chore_name"),
		LastTrackedTime:               f.time("last_tracked_time"),
		NextEstimatedExecutionTime:    f.time("next_estimated_execution_time"),
		TrackDateOnly:                 f.boolInt("track_date_only"),
		NextExecutionAssignedToUserID: f.optInt("next_execution_assigned_to_user_id"),
	}
	return f.err
}

// ChoreData is the chore row embedded in chore details.
type ChoreData struct {
	ID                            int
	Name                          string
	Description                   string
	PeriodType                    *PeriodType
	PeriodConfig                  string
	PeriodDays                    *int
	TrackDateOnly                 bool
	Rollover                      bool
	AssignmentType                *AssignmentType
	AssignmentConfig              string
	NextExecutionAssignedToUserID *int
	StartDate                     *parse.Time
	RescheduledDate               *parse.Time
	Active                        bool
	Userfields                    map[string]any
}

func (c *ChoreData) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("chore", data)
	if err != nil {
		return err
	}
	*c = ChoreData{
		ID:                            f.requiredInt("id"),
		Name:                          f.str("name"),
		Description:                   f.str("description"),
		PeriodConfig:                  f.str("period_config"),
		PeriodDays:                    f.optInt("period_days"),
		TrackDateOnly:                 f.boolInt("track_date_only"),
		Rollover:                      f.boolInt("rollover"),
		AssignmentConfig:              f.str("assignment_config"),
		NextExecutionAssignedToUserID: f.optInt("next_execution_assigned_to_user_id"),
		StartDate:                     f.time("start_date"),
		RescheduledDate:               f.time("rescheduled_date"),
		Active:                        !f.has("active") || f.boolInt("active"),
		Userfields:                    f.userfields("userfields"),
	}
	if p := PeriodType(f.str("period_type")); p.Valid() {
		c.PeriodType = &p
	}
	if a := AssignmentType(f.str("assignment_type")); a.Valid() {
		c.AssignmentType = &a
	}
	return f.err
}

// ChoreDetailsResponse is GET chores/{id}.
type ChoreDetailsResponse struct {
	Chore                      ChoreData
	LastTracked                *parse.Time
	NextEstimatedExecutionTime *parse.Time
	TrackCount                 *int
	LastDoneBy                 *UserDto
	NextExecutionAssignedUser  *UserDto
}

func (d *ChoreDetailsResponse) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("chore details", data)
	if err != nil {
		return err
	}
	*d = ChoreDetailsResponse{
		LastTracked:                f.time("last_tracked"),
		NextEstimatedExecutionTime: f.time("next_estimated_execution_time"),
		TrackCount:                 f.optInt("track_count"),
		LastDoneBy:                 nested[UserDto](f, "last_done_by"),
		NextExecutionAssignedUser:  nested[UserDto](f, "next_execution_assigned_user"),
	}
	if !f.decode("chore", &d.Chore) && f.err == nil {
		f.fail("chore", ErrMissing)
	}
	return f.err
}

// TaskCategoryDto is a row of objects/task_categories.
type TaskCategoryDto struct {
	ID                  int
	Name                string
	Description         string
	RowCreatedTimestamp *parse.Time
}

func (c *TaskCategoryDto) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("task category", data)
	if err != nil {
		return err
	}
	*c = TaskCategoryDto{
		ID:                  f.requiredInt("id"),
		Name:                f.str("name"),
		Description:         f.str("description"),
		RowCreatedTimestamp: f.time("row_created_timestamp"),
	}
	return f.err
}

// TaskResponse is one entry of GET tasks.
type TaskResponse struct {
	ID               int
	Name             string
	Description      string
	DueDate          *parse.Time
	Done             bool
	DoneTimestamp    *parse.Time
	CategoryID       *int
	Category         *TaskCategoryDto
	AssignedToUserID *int
	AssignedToUser   *UserDto
	Userfields       map[string]any
}

func (t *TaskResponse) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("task", data)
	if err != nil {
		return err
	}
	*t = TaskResponse{
		ID:               f.requiredInt("id"),
		Name:             f.str("name"),
		Description:      f.str("description"),
		DueDate:          f.time("due_date"),
		Done:             f.boolInt("done"),
		DoneTimestamp:    f.time("done_timestamp"),
		CategoryID:       f.optInt("category_id"),
		Category:         nested[TaskCategoryDto](f, "category"),
		AssignedToUserID: f.optInt("assigned_to_user_id"),
		AssignedToUser:   nested[UserDto](f, "assigned_to_user"),
		Userfields:       f.userfields("userfields"),
	}
	return f.err
}

// CurrentBatteryResponse is one entry of GET batteries.
type CurrentBatteryResponse struct {
	ID                      int
	LastTrackedTime         *parse.Time
	NextEstimatedChargeTime *parse.Time
}

func (b *CurrentBatteryResponse) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("current battery", data)
	if err != nil {
		return err
	}
	*b = CurrentBatteryResponse{
		ID:                      f.requiredInt(f.first("battery_id", "id")),
		LastTrackedTime:         f.time("last_tracked_time"),
		NextEstimatedChargeTime: f.time("next_estimated_charge_time"),
	}
	return f.err
}

// BatteryData is the battery row embedded in battery details.
type BatteryData struct {
	ID                  int
	Name                string
	Description         string
	UsedIn              string
	ChargeIntervalDays  *int
	RowCreatedTimestamp *parse.Time
	Userfields          map[string]any
}

func (b *BatteryData) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("battery", data)
	if err != nil {
		return err
	}
	*b = BatteryData{
		ID:                  f.requiredInt("id"),
		Name:                f.str("name"),
		Description:         f.str("description"),
		UsedIn:              f.str("used_in"),
		ChargeIntervalDays:  f.optInt("charge_interval_days"),
		RowCreatedTimestamp: f.time("row_created_timestamp"),
		Userfields:          f.userfields("userfields"),
	}
	return f.err
}

// BatteryDetailsResponse is GET batteries/{id}.
type BatteryDetailsResponse struct {
	Battery                 BatteryData
	ChargeCyclesCount       *int
	LastCharged             *parse.Time
	LastTrackedTime         *parse.Time
	NextEstimatedChargeTime *parse.Time
}

func (d *BatteryDetailsResponse) UnmarshalJSON(data []byte) error {
	f, err := decodeFields("battery details", data)
	if err != nil {
		return err
	}
	*d = BatteryDetailsResponse{
		ChargeCyclesCount:       f.optInt("charge_cycles_count"),
		LastCharged:             f.time("last_charged"),
		LastTrackedTime:         f.time("last_tracked_time"),
		NextEstimatedChargeTime: f.time("next_estimated_charge_time"),
	}
	if !f.decode("battery", &d.Battery) && f.err == nil {
		f.fail("battery", ErrMissing)
	}
	return f.err
}
