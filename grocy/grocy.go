package grocy

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/five82/pantry/api"
	"github.com/five82/pantry/parse"
)

// DefaultDueSoonDays is the window Grocy itself uses for "due soon".
const DefaultDueSoonDays = 5

// Grocy is the typed entry point over one Grocy server.
type Grocy struct {
	client      *api.Client
	logger      *zap.Logger
	dueSoonDays int
}

// Option configures a Grocy.
type Option func(*Grocy)

// WithLogger sets the logger. New hands it to the API client as well.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Grocy) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithDueSoonDays sets how far ahead DueProducts looks. Values below 1 let
// the server decide.
func WithDueSoonDays(days int) Option {
	return func(g *Grocy) {
		g.dueSoonDays = days
	}
}

// New connects to the server described by cfg.
func New(cfg api.Config, opts ...Option) (*Grocy, error) {
	g := newGrocy(opts)
	client, err := api.New(cfg, api.WithLogger(g.logger))
	if err != nil {
		return nil, err
	}
	g.client = client
	return g, nil
}

// NewWithClient wraps an existing API client.
func NewWithClient(client *api.Client, opts ...Option) *Grocy {
	g := newGrocy(opts)
	g.client = client
	return g
}

func newGrocy(opts []Option) *Grocy {
	g := &Grocy{logger: zap.NewNop(), dueSoonDays: DefaultDueSoonDays}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Client exposes the underlying API client for endpoints without a typed
// wrapper.
func (g *Grocy) Client() *api.Client {
	return g.client
}

// collect builds one model per record and stops at the first failure.
func collect[R, M any](records []R, build func(*R) (*M, error)) ([]*M, error) {
	out := make([]*M, 0, len(records))
	for i := range records {
		m, err := build(&records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Users lists user accounts.
func (g *Grocy) Users(ctx context.Context, filters api.Filters) ([]*User, error) {
	records, err := g.client.Users(ctx, filters)
	if err != nil {
		return nil, err
	}
	return collect(records, UserFromDto)
}

// User returns one account, or nil when the server has none.
func (g *Grocy) User(ctx context.Context, userID int) (*User, error) {
	dto, err := g.client.User(ctx, userID)
	if err != nil || dto == nil {
		return nil, err
	}
	return UserFromDto(dto)
}

// LastDBChanged reports when the server's database last changed. A naive
// server timestamp is read as local time. It returns the zero time when the
// server sends nothing.
func (g *Grocy) LastDBChanged(ctx context.Context) (time.Time, error) {
	resp, err := g.client.LastDBChanged(ctx)
	if err != nil || resp == nil {
		return time.Time{}, err
	}
	return parse.Localize(resp.ChangedTime).Time, nil
}

// SystemInfo describes the server installation.
func (g *Grocy) SystemInfo(ctx context.Context) (*SystemInfo, error) {
	dto, err := g.client.SystemInfo(ctx)
	if err != nil || dto == nil {
		return nil, err
	}
	return SystemInfoFromDto(dto)
}

// SystemTime reads the server clock.
func (g *Grocy) SystemTime(ctx context.Context) (*SystemTime, error) {
	dto, err := g.client.SystemTime(ctx)
	if err != nil || dto == nil {
		return nil, err
	}
	return SystemTimeFromDto(dto)
}

// SystemConfig reads server settings and feature flags.
func (g *Grocy) SystemConfig(ctx context.Context) (*SystemConfig, error) {
	dto, err := g.client.SystemConfig(ctx)
	if err != nil || dto == nil {
		return nil, err
	}
	return SystemConfigFromDto(dto)
}

// GenericObjects lists rows of any entity.
func (g *Grocy) GenericObjects(ctx context.Context, entity api.EntityType, filters api.Filters) ([]api.Object, error) {
	return g.client.GenericObjects(ctx, entity, filters)
}

// GenericObject fetches one row of any entity.
func (g *Grocy) GenericObject(ctx context.Context, entity api.EntityType, id int) (api.Object, error) {
	return g.client.GenericObject(ctx, entity, id)
}

// AddGeneric creates a row and returns its id.
func (g *Grocy) AddGeneric(ctx context.Context, entity api.EntityType, data any) (int, error) {
	id, err := g.client.AddGeneric(ctx, entity, data)
	if err != nil {
		return 0, err
	}
	g.logger.Debug("generic object created", zap.String("entity", string(entity)), zap.Int("id", id))
	return id, nil
}

// UpdateGeneric changes the given fields of a row.
func (g *Grocy) UpdateGeneric(ctx context.Context, entity api.EntityType, id int, data any) error {
	return g.client.UpdateGeneric(ctx, entity, id, data)
}

// DeleteGeneric removes a row.
func (g *Grocy) DeleteGeneric(ctx context.Context, entity api.EntityType, id int) error {
	return g.client.DeleteGeneric(ctx, entity, id)
}

// Userfields reads the custom fields of a row.
func (g *Grocy) Userfields(ctx context.Context, entity api.EntityType, id int) (api.Object, error) {
	return g.client.Userfields(ctx, entity, id)
}

// SetUserfield writes one custom field of a row.
func (g *Grocy) SetUserfield(ctx context.Context, entity api.EntityType, id int, key string, value any) error {
	if key == "" {
		return fmt.Errorf("userfield key is empty")
	}
	return g.client.SetUserfield(ctx, entity, id, key, value)
}
