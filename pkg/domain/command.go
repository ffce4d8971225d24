package domain

import "fmt"

// CommandKind is the closed set of per-key routing commands.
type CommandKind int

const (
	CommandAdd CommandKind = iota
	CommandRemove
	CommandActivate
	CommandDeactivate
)

func (k CommandKind) String() string {
	switch k {
	case CommandAdd:
		return "add"
	case CommandRemove:
		return "remove"
	case CommandActivate:
		return "activate"
	case CommandDeactivate:
		return "deactivate"
	default:
		return fmt.Sprintf("command(%d)", int(k))
	}
}

// Command asks the pool to change one element.
type Command struct {
	Kind    CommandKind
	Routing Routing
}

// Add requests the routing to enter the pool. Its nodes are built and attached, not activated.
func Add(r Routing) Command { return Command{Kind: CommandAdd, Routing: r} }

// Remove requests the routing to leave the pool, detaching its nodes.
func Remove(r Routing) Command { return Command{Kind: CommandRemove, Routing: r} }

// Activate requests the routing's views to be put on screen.
func Activate(r Routing) Command { return Command{Kind: CommandActivate, Routing: r} }

// Deactivate requests the routing's views to be taken off screen.
func Deactivate(r Routing) Command { return Command{Kind: CommandDeactivate, Routing: r} }

func (c Command) String() string {
	return c.Kind.String() + "(" + c.Routing.String() + ")"
}

// GlobalCommand acts on every element of the pool at once.
type GlobalCommand int

const (
	globalNone GlobalCommand = iota
	GlobalSleep
	GlobalWakeUp
	GlobalSaveInstanceState
)

func (g GlobalCommand) String() string {
	switch g {
	case GlobalSleep:
		return "sleep"
	case GlobalWakeUp:
		return "wake_up"
	case GlobalSaveInstanceState:
		return "save_instance_state"
	default:
		return "none"
	}
}

// Transaction is the unit of work of the pool: either one global command or an
// ordered batch of per-key commands sharing a TransitionDescriptor.
type Transaction struct {
	Global     GlobalCommand
	Commands   []Command
	Descriptor TransitionDescriptor
}

// Global wraps a global command in a transaction.
func Global(cmd GlobalCommand) Transaction {
	return Transaction{Global: cmd, Descriptor: NoTransition}
}

// Change builds a batch of commands for one navigational change.
func Change(descriptor TransitionDescriptor, commands ...Command) Transaction {
	return Transaction{Commands: commands, Descriptor: descriptor}
}

// IsGlobal reports whether the transaction carries a global command.
func (t Transaction) IsGlobal() bool {
	return t.Global != globalNone
}

// Has reports whether the batch contains a command of kind for key.
func (t Transaction) Has(kind CommandKind, key RoutingKey) bool {
	for _, c := range t.Commands {
		if c.Kind == kind && c.Routing.Key == key {
			return true
		}
	}
	return false
}

func (t Transaction) String() string {
	if t.IsGlobal() {
		return "global(" + t.Global.String() + ")"
	}
	return fmt.Sprintf("change(%s, %v)", t.Descriptor, t.Commands)
}
