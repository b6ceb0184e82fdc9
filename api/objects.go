package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/five82/pantry/parse"
)

// Object is an untyped row of the generic objects API. Numbers are kept as
// json.Number.
type Object map[string]any

func (c *Client) objectPath(entity EntityType) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	if !entity.Valid() {
		return "", fmt.Errorf("invalid entity name %q", entity)
	}
	return "objects/" + url.PathEscape(string(entity)), nil
}

// GenericObjects lists rows of an entity.
func (c *Client) GenericObjects(ctx context.Context, entity EntityType, filters Filters) ([]Object, error) {
	path, err := c.objectPath(entity)
	if err != nil {
		return nil, err
	}
	body, err := c.transport.Get(ctx, path, filters.values())
	if err != nil {
		return nil, err
	}
	var out []Object
	if err := decodeNumbers(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// GenericObject fetches one row of an entity.
func (c *Client) GenericObject(ctx context.Context, entity EntityType, id int) (Object, error) {
	path, err := c.objectPath(entity)
	if err != nil {
		return nil, err
	}
	path += "/" + itoa(id)
	body, err := c.transport.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	var out Object
	if err := decodeNumbers(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// AddGeneric creates a row and returns its id.
func (c *Client) AddGeneric(ctx context.Context, entity EntityType, data any) (int, error) {
	path, err := c.objectPath(entity)
	if err != nil {
		return 0, err
	}
	body, err := c.transport.Post(ctx, path, data)
	if err != nil {
		return 0, err
	}
	var created Object
	if err := decodeNumbers(body, &created); err != nil {
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}
	id, ok := parse.Int(created["created_object_id"])
	if !ok {
		return 0, &ParseError{Record: "created object", Field: "created_object_id", Err: ErrMissing}
	}
	return id, nil
}

// UpdateGeneric replaces fields of a row.
func (c *Client) UpdateGeneric(ctx context.Context, entity EntityType, id int, data any) error {
	path, err := c.objectPath(entity)
	if err != nil {
		return err
	}
	return c.put(ctx, path+"/"+itoa(id), data, ContentJSON)
}

// DeleteGeneric removes a row.
func (c *Client) DeleteGeneric(ctx context.Context, entity EntityType, id int) error {
	path, err := c.objectPath(entity)
	if err != nil {
		return err
	}
	return c.delete(ctx, path+"/"+itoa(id))
}

// Userfields returns the custom field values of one row.
func (c *Client) Userfields(ctx context.Context, entity EntityType, id int) (Object, error) {
	if _, err := c.objectPath(entity); err != nil {
		return nil, err
	}
	path := "userfields/" + url.PathEscape(string(entity)) + "/" + itoa(id)
	body, err := c.transport.Get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	var out Object
	if err := decodeNumbers(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}

// SetUserfield sets one custom field of a row.
func (c *Client) SetUserfield(ctx context.Context, entity EntityType, id int, key string, value any) error {
	if _, err := c.objectPath(entity); err != nil {
		return err
	}
	return c.put(ctx, "userfields/"+url.PathEscape(string(entity))+"/"+itoa(id), map[string]any{key: value}, ContentJSON)
}

func decodeNumbers(body json.RawMessage, dst any) error {
	if len(body) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(dst)
}
