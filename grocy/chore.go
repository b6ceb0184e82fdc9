package grocy

import (
	"context"

	"github.com/five82/pantry/api"
	"github.com/five82/pantry/parse"
)

// ChoreFetcher loads the details of one chore. *api.Client satisfies it.
type ChoreFetcher interface {
	ChoreDetails(ctx context.Context, choreID int) (*api.ChoreDetailsResponse, error)
}

var _ ChoreFetcher = (*api.Client)(nil)

// User is a Grocy user account.
type User struct {
	id          int
	username    string
	firstName   string
	lastName    string
	displayName string
}

// UserFromDto builds a user from its record.
func UserFromDto(dto *api.UserDto) (*User, error) {
	if dto == nil {
		return nil, &ShapeError{Model: "user", Shape: "nil user record"}
	}
	return &User{
		id:          dto.ID,
		username:    dto.Username,
		firstName:   dto.FirstName,
		lastName:    dto.LastName,
		displayName: dto.DisplayName,
	}, nil
}

// optionalUser builds an owned copy of dto, or nil when dto is nil.
func optionalUser(dto *api.UserDto) *User {
	if dto == nil {
		return nil
	}
	u, _ := UserFromDto(dto)
	return u
}

func (u *User) ID() int { return u.id }
func (u *User) Username() string { return u.username }
func (u *User) FirstName() string { return u.firstName }
func (u *User) LastName() string { return u.lastName }
func (u *User) DisplayName() string { return u.displayName }

// Chore is a recurring household chore. Built from the chores list it only
// knows its schedule; FetchDetails fills in the rest.
type Chore struct {
	id                            int
	lastTrackedTime               *parse.Time
	nextEstimatedExecutionTime    *parse.Time
	trackDateOnly                 bool
	nextExecutionAssignedToUserID *int

	detailed                  bool
	name                      string
	description               string
	periodType                *api.PeriodType
	periodConfig              string
	periodDays                *int
	rollover                  *bool
	assignmentType            *api.AssignmentType
	assignmentConfig          string
	active                    *bool
	userfields                map[string]any
	lastDoneBy                *User
	trackCount                *int
	nextExecutionAssignedUser *User
}

// ChoreFromCurrent builds a summary chore from a chores list entry.
func ChoreFromCurrent(entry *api.CurrentChoreResponse) (*Chore, error) {
	if entry == nil {
		return nil, &ShapeError{Model: "chore", Shape: "nil current chore entry"}
	}
	return &Chore{
		id:                            entry.ChoreID,
		name:                          entry.ChoreName,
		lastTrackedTime:               entry.LastTrackedTime,
		nextEstimatedExecutionTime:    entry.NextEstimatedExecutionTime,
		trackDateOnly:                 entry.TrackDateOnly,
		nextExecutionAssignedToUserID: entry.NextExecutionAssignedToUserID,
	}, nil
}

// ChoreFromDetails builds a detailed chore.
func ChoreFromDetails(details *api.ChoreDetailsResponse) (*Chore, error) {
	if details == nil {
		return nil, &ShapeError{Model: "chore", Shape: "nil chore details"}
	}
	c := &Chore{}
	c.applyDetails(details)
	return c, nil
}

func (c *Chore) applyDetails(details *api.ChoreDetailsResponse) {
	data := details.Chore
	c.detailed = true
	c.id = data.ID
	c.name = data.Name
	c.description = data.Description
	c.periodType = data.PeriodType
	c.periodConfig = data.PeriodConfig
	c.periodDays = data.PeriodDays
	c.trackDateOnly = data.TrackDateOnly
	c.rollover = ptr(data.Rollover)
	c.assignmentType = data.AssignmentType
	c.assignmentConfig = data.AssignmentConfig
	c.nextExecutionAssignedToUserID = data.NextExecutionAssignedToUserID
	c.active = ptr(data.Active)
	c.userfields = data.Userfields

	c.lastTrackedTime = details.LastTracked
	c.nextEstimatedExecutionTime = details.NextEstimatedExecutionTime
	c.lastDoneBy = optionalUser(details.LastDoneBy)
	c.trackCount = details.TrackCount
	c.nextExecutionAssignedUser = optionalUser(details.NextExecutionAssignedUser)
}

// FetchDetails replaces c's fields with the chore's current details. Every
// call goes to the server. An empty response leaves c unchanged.
func (c *Chore) FetchDetails(ctx context.Context, fetcher ChoreFetcher) error {
	details, err := fetcher.ChoreDetails(ctx, c.id)
	if err != nil {
		return err
	}
	if details != nil {
		c.applyDetails(details)
	}
	return nil
}

// Detailed reports whether details have been loaded.
func (c *Chore) Detailed() bool { return c.detailed }

func (c *Chore) ID() int { return c.id }
func (c *Chore) Name() string { return c.name }
func (c *Chore) Description() string { return c.description }
func (c *Chore) PeriodType() *api.PeriodType { return c.periodType }
func (c *Chore) PeriodConfig() string { return c.periodConfig }
func (c *Chore) PeriodDays() *int { return c.periodDays }
func (c *Chore) TrackDateOnly() bool { return c.trackDateOnly }
func (c *Chore) Rollover() *bool { return c.rollover }
func (c *Chore) AssignmentType() *api.AssignmentType { return c.assignmentType }
func (c *Chore) AssignmentConfig() string { return c.assignmentConfig }
func (c *Chore) NextExecutionAssignedToUserID() *int { return c.nextExecutionAssignedToUserID }
func (c *Chore) Active() *bool { return c.active }
func (c *Chore) Userfields() map[string]any { return c.userfields }
func (c *Chore) LastTrackedTime() *parse.Time { return c.lastTrackedTime }
func (c *Chore) NextEstimatedExecutionTime() *parse.Time { return c.nextEstimatedExecutionTime }
func (c *Chore) LastDoneBy() *User { return c.lastDoneBy }
func (c *Chore) TrackCount() *int { return c.trackCount }
func (c *Chore) NextExecutionAssignedUser() *User { return c.nextExecutionAssignedUser }
