package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/pantry/api"
	"github.com/five82/pantry/grocy"
	"github.com/five82/pantry/internal/output"
)

func newChoresCmd(o *rootOptions) *cobra.Command {
	var details bool
	cmd := &cobra.Command{
		Use:   "chores",
		Short: "List chores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			chores, err := o.grocy.Chores(cmd.Context(), details, o.apiFilters())
			if err != nil {
				return err
			}
			return o.printer.Print(output.Chores(chores))
		},
	}
	cmd.Flags().BoolVar(&details, "details", false, "Load each chore's full details")
	return cmd
}

func newChoreCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chore <id>",
		Short: "Show a chore, or track an execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("chore id", args[0])
			if err != nil {
				return err
			}
			chore, err := o.grocy.Chore(cmd.Context(), id)
			if err != nil {
				return err
			}
			if chore == nil {
				return fmt.Errorf("chore %d not found", id)
			}
			return o.printer.Print(output.Chore(chore))
		},
	}

	var (
		at      string
		doneBy  int
		skipped bool
	)
	execute := &cobra.Command{
		Use:   "execute <id>",
		Short: "Track a chore execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("chore id", args[0])
			if err != nil {
				return err
			}
			when, err := parseWhen(at)
			if err != nil {
				return err
			}
			req := api.ChoreExecution{
				DoneBy:  optionalInt(cmd, "done-by", doneBy),
				Skipped: skipped,
			}
			if !when.IsZero() {
				req.TrackedTime = &when
			}
			if err := o.grocy.ExecuteChore(cmd.Context(), id, req); err != nil {
				return err
			}
			verb := "executed"
			if skipped {
				verb = "skipped"
			}
			return o.printer.Done(fmt.Sprintf("Chore %d %s.", id, verb), map[string]any{"chore_id": id, "skipped": skipped})
		},
	}
	execute.Flags().StringVar(&at, "at", "", "Execution time YYYY-MM-DD [HH:MM] (default now)")
	execute.Flags().IntVar(&doneBy, "done-by", 0, "User id who did the chore")
	execute.Flags().BoolVar(&skipped, "skipped", false, "Track the execution as skipped")
	cmd.AddCommand(execute)
	return cmd
}

func newTasksCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks, err := o.grocy.Tasks(cmd.Context(), o.apiFilters())
			if err != nil {
				return err
			}
			return o.printer.Print(output.Tasks(tasks))
		},
	}
}

func newTaskCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task <id>",
		Short: "Show a task, or mark it done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task id", args[0])
			if err != nil {
				return err
			}
			task, err := o.grocy.Task(cmd.Context(), id)
			if err != nil {
				return err
			}
			if task == nil {
				return fmt.Errorf("task %d not found", id)
			}
			return o.printer.Print(output.Tasks([]*grocy.Task{task}))
		},
	}

	var at string
	complete := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task id", args[0])
			if err != nil {
				return err
			}
			when, err := parseWhen(at)
			if err != nil {
				return err
			}
			if err := o.grocy.CompleteTask(cmd.Context(), id, when); err != nil {
				return err
			}
			return o.printer.Done(fmt.Sprintf("Task %d completed.", id), map[string]any{"task_id": id})
		},
	}
	complete.Flags().StringVar(&at, "at", "", "Completion time YYYY-MM-DD [HH:MM] (default now)")
	cmd.AddCommand(complete)
	return cmd
}

func newBatteriesCmd(o *rootOptions) *cobra.Command {
	var details bool
	cmd := &cobra.Command{
		Use:   "batteries",
		Short: "List batteries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			batteries, err := o.grocy.Batteries(cmd.Context(), details, o.apiFilters())
			if err != nil {
				return err
			}
			return o.printer.Print(output.Batteries(batteries))
		},
	}
	cmd.Flags().BoolVar(&details, "details", false, "Load each battery's name and charge history")
	return cmd
}

func newBatteryCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "battery <id>",
		Short: "Show a battery, or track a charge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("battery id", args[0])
			if err != nil {
				return err
			}
			battery, err := o.grocy.Battery(cmd.Context(), id)
			if err != nil {
				return err
			}
			if battery == nil {
				return fmt.Errorf("battery %d not found", id)
			}
			return o.printer.Print(output.Batteries([]*grocy.Battery{battery}))
		},
	}

	var at string
	charge := &cobra.Command{
		Use:   "charge <id>",
		Short: "Track a battery charge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("battery id", args[0])
			if err != nil {
				return err
			}
			when, err := parseWhen(at)
			if err != nil {
				return err
			}
			if err := o.grocy.ChargeBattery(cmd.Context(), id, when); err != nil {
				return err
			}
			return o.printer.Done(fmt.Sprintf("Battery %d charged.", id), map[string]any{"battery_id": id})
		},
	}
	charge.Flags().StringVar(&at, "at", "", "Charge time YYYY-MM-DD [HH:MM] (default now)")
	cmd.AddCommand(charge)
	return cmd
}

func newMealPlanCmd(o *rootOptions) *cobra.Command {
	var details bool
	cmd := &cobra.Command{
		Use:   "mealplan",
		Short: "List meal plan entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := o.grocy.MealPlan(cmd.Context(), details, o.apiFilters())
			if err != nil {
				return err
			}
			return o.printer.Print(output.MealPlan(items))
		},
	}
	cmd.Flags().BoolVar(&details, "details", false, "Load recipes and sections")
	return cmd
}

func newRecipeCmd(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Work with recipes",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "consume <id>",
		Short: "Consume all ingredients of a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("recipe id", args[0])
			if err != nil {
				return err
			}
			if err := o.grocy.ConsumeRecipe(cmd.Context(), id); err != nil {
				return err
			}
			return o.printer.Done(fmt.Sprintf("Recipe %d consumed.", id), map[string]any{"recipe_id": id})
		},
	})
	return cmd
}

func newUsersCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := o.grocy.Users(cmd.Context(), o.apiFilters())
			if err != nil {
				return err
			}
			return o.printer.Print(output.Users(users))
		},
	}
}
