package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/pantry/api"
	"github.com/five82/pantry/internal/output"
)

func parseEntity(value string) (api.EntityType, error) {
	entity := api.EntityType(strings.TrimSpace(value))
	if !entity.Valid() {
		return "", fmt.Errorf("invalid entity %q", value)
	}
	return entity, nil
}

// parseFields decodes a JSON object argument such as '{"name":"Milk"}'.
func parseFields(value string) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(value), &fields); err != nil {
		return nil, fmt.Errorf("fields must be a JSON object: %w", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("fields must not be empty")
	}
	return fields, nil
}

func newGenericCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generic",
		Short: "Read and write any Grocy table through the objects API",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list <entity>",
			Short: "List rows of an entity (use --filter to narrow)",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				entity, err := parseEntity(args[0])
				if err != nil {
					return err
				}
				objects, err := o.grocy.GenericObjects(cmd.Context(), entity, o.apiFilters())
				if err != nil {
					return err
				}
				return o.printer.Print(output.Objects(objects))
			},
		},
		&cobra.Command{
			Use:   "get <entity> <id>",
			Short: "Show one row of an entity",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				entity, err := parseEntity(args[0])
				if err != nil {
					return err
				}
				id, err := parseID("object id", args[1])
				if err != nil {
					return err
				}
				obj, err := o.grocy.GenericObject(cmd.Context(), entity, id)
				if err != nil {
					return err
				}
				return o.printer.Print(output.Object(obj))
			},
		},
		&cobra.Command{
			Use:   "add <entity> <json>",
			Short: "Create a row from a JSON object",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				entity, err := parseEntity(args[0])
				if err != nil {
					return err
				}
				fields, err := parseFields(args[1])
				if err != nil {
					return err
				}
				id, err := o.grocy.AddGeneric(cmd.Context(), entity, fields)
				if err != nil {
					return err
				}
				return o.printer.Done(fmt.Sprintf("Created %s %d.", entity, id), map[string]any{"entity": entity, "id": id})
			},
		},
		&cobra.Command{
			Use:   "update <entity> <id> <json>",
			Short: "Change fields of a row",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				entity, err := parseEntity(args[0])
				if err != nil {
					return err
				}
				id, err := parseID("object id", args[1])
				if err != nil {
					return err
				}
				fields, err := parseFields(args[2])
				if err != nil {
					return err
				}
				if err := o.grocy.UpdateGeneric(cmd.Context(), entity, id, fields); err != nil {
					return err
				}
				return o.printer.Done(fmt.Sprintf("Updated %s %d.", entity, id), map[string]any{"entity": entity, "id": id})
			},
		},
		&cobra.Command{
			Use:   "delete <entity> <id>",
			Short: "Delete a row",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				entity, err := parseEntity(args[0])
				if err != nil {
					return err
				}
				id, err := parseID("object id", args[1])
				if err != nil {
					return err
				}
				if err := o.grocy.DeleteGeneric(cmd.Context(), entity, id); err != nil {
					return err
				}
				return o.printer.Done(fmt.Sprintf("Deleted %s %d.", entity, id), map[string]any{"entity": entity, "id": id})
			},
		},
		newUserfieldsCmd(o),
	)
	return cmd
}

func newUserfieldsCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "userfields <entity> <id>",
		Short: "Show the custom fields of a row",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, err := parseEntity(args[0])
			if err != nil {
				return err
			}
			id, err := parseID("object id", args[1])
			if err != nil {
				return err
			}
			fields, err := o.grocy.Userfields(cmd.Context(), entity, id)
			if err != nil {
				return err
			}
			return o.printer.Print(output.Object(fields))
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <entity> <id> <key> <value>",
		Short: "Set one custom field of a row",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, err := parseEntity(args[0])
			if err != nil {
				return err
			}
			id, err := parseID("object id", args[1])
			if err != nil {
				return err
			}
			if err := o.grocy.SetUserfield(cmd.Context(), entity, id, args[2], args[3]); err != nil {
				return err
			}
			return o.printer.Done(fmt.Sprintf("Set %s on %s %d.", args[2], entity, id),
				map[string]any{"entity": entity, "id": id, "key": args[2]})
		},
	})
	return cmd
}
