package api

import (
	"context"
)

// Users lists user accounts.
func (c *Client) Users(ctx context.Context, filters Filters) ([]UserDto, error) {
	var out []UserDto
	if _, err := c.get(ctx, "users", filters.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// User fetches one user account.
func (c *Client) User(ctx context.Context, userID int) (*UserDto, error) {
	var out UserDto
	ok, err := c.get(ctx, "users/"+itoa(userID), nil, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

// LastDBChanged reports when the Grocy database last changed. Pollers can
// compare it between runs to skip refreshes.
func (c *Client) LastDBChanged(ctx context.Context) (*DBChangedTimeResponse, error) {
	var out DBChangedTimeResponse
	ok, err := c.get(ctx, "system/db-changed-time", nil, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

// SystemInfo reports server and runtime versions.
func (c *Client) SystemInfo(ctx context.Context) (*SystemInfoDto, error) {
	var out SystemInfoDto
	ok, err := c.get(ctx, "system/info", nil, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

// SystemTime reports the server clock.
func (c *Client) SystemTime(ctx context.Context) (*SystemTimeDto, error) {
	var out SystemTimeDto
	ok, err := c.get(ctx, "system/time", nil, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

// SystemConfig reports server settings and feature flags.
func (c *Client) SystemConfig(ctx context.Context) (*SystemConfigDto, error) {
	var out SystemConfigDto
	ok, err := c.get(ctx, "system/config", nil, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}
