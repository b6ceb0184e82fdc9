// Package cli implements the pantry command line.
//
// # Commands
//
//	stock [--due|--overdue|--expired|--missing] [--details]
//	stock log
//	product <id> | product barcode <code> | product list
//	product add|consume|inventory [<id>] [--barcode <code>]
//	product open <id> | product picture <id> <file>
//	locations | product-groups | units
//	chores [--details] | chore <id> | chore execute <id>
//	tasks | task <id> | task complete <id>
//	batteries [--details] | battery <id> | battery charge <id>
//	shopping list|add|remove|clear|add-missing [--list <id>]
//	mealplan [--details] | recipe consume <id>
//	users
//	system info|time|config|changed
//	generic list|get|add|update|delete|userfields
//	dashboard [--poll 5s]
//
// # Global Flags
//
//	--config    config file (default ~/.config/pantry/config.toml)
//	--env-file  .env file exported before the config is read (default ./.env)
//	--output    table, json or yaml
//	--filter    Grocy query condition, repeatable, for list commands
//
// The root command's PersistentPreRunE loads the configuration, opens the
// log file and builds one grocy.Grocy that every subcommand shares. Help
// never touches the network or the config.
//
// Commands are built by constructors rather than package variables, so
// each Execute starts from fresh flag values.
//
// Write commands print a one-line confirmation in table mode and an object
// in json/yaml mode. Times given with --at are local; an empty --at means
// now.
package cli
