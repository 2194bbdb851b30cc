package core

import (
	"errors"
	"sort"
	"sync"

	"axisrig/protocol"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingField   = errors.New("missing command field")
)

// MissingFieldError names the field a command arrived without
type MissingFieldError struct {
	Command string
	Field   string
}

func (e *MissingFieldError) Error() string {
	return e.Command + ": missing field " + e.Field
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// CommandHandler applies a command to the rig. Required fields are checked
// before the handler runs, so it may dereference them.
type CommandHandler func(r *Rig, args protocol.Args) error

// Command is a registered remote command
type Command struct {
	ID      uint16
	Name    string
	Fields  []string // required fields of the data object
	Handler CommandHandler
}

// CommandRegistry maps remote command types to handlers
type CommandRegistry struct {
	mu         sync.RWMutex
	commands   map[uint16]*Command
	nameToID   map[string]uint16
	nextID     uint16
	dictionary string
}

// NewCommandRegistry creates an empty registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[uint16]*Command),
		nameToID: make(map[string]uint16),
	}
}

// Register adds a command and returns its ID. Registering a name twice
// returns the existing ID and keeps the first handler.
func (r *CommandRegistry) Register(name string, fields []string, handler CommandHandler) uint16 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, exists := r.nameToID[name]; exists {
		return id
	}

	id := r.nextID
	r.nextID++
	r.commands[id] = &Command{
		ID:      id,
		Name:    name,
		Fields:  fields,
		Handler: handler,
	}
	r.nameToID[name] = id
	r.rebuildDictionary()
	return id
}

// GetCommand retrieves a command by ID
func (r *CommandRegistry) GetCommand(id uint16) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[id]
	return cmd, ok
}

// Lookup retrieves a command by name
func (r *CommandRegistry) Lookup(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.nameToID[name]
	if !ok {
		return nil, false
	}
	return r.commands[id], true
}

// Count returns the number of registered commands
func (r *CommandRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Names returns the registered command names in sorted order
func (r *CommandRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.nameToID))
	for name := range r.nameToID {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch validates cmd against its registration and runs the handler
func (r *CommandRegistry) Dispatch(rig *Rig, cmd protocol.Command) error {
	c, ok := r.Lookup(cmd.Type)
	if !ok {
		return ErrUnknownCommand
	}
	for _, field := range c.Fields {
		if !cmd.Data.Has(field) {
			return &MissingFieldError{Command: c.Name, Field: field}
		}
	}
	return c.Handler(rig, cmd.Data)
}

// GetDictionary returns one line per command: its name followed by its
// required fields, in registration order.
func (r *CommandRegistry) GetDictionary() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dictionary
}

// rebuildDictionary must be called with the lock held
func (r *CommandRegistry) rebuildDictionary() {
	dict := ""
	for i := uint16(0); i < r.nextID; i++ {
		cmd, ok := r.commands[i]
		if !ok {
			continue
		}
		dict += cmd.Name
		for _, f := range cmd.Fields {
			dict += " " + f
		}
		dict += "\n"
	}
	r.dictionary = dict
}

// RegisterRigCommands registers the remote command surface of the rig
func RegisterRigCommands(reg *CommandRegistry) {
	motor := []string{protocol.FieldMotor}

	reg.Register(protocol.CmdSetTarget, []string{protocol.FieldMotor, protocol.FieldTarget},
		func(r *Rig, a protocol.Args) error {
			return r.SetTarget(*a.Motor, *a.Target)
		})
	reg.Register(protocol.CmdSetAllTargets, []string{protocol.FieldTarget},
		func(r *Rig, a protocol.Args) error {
			r.SetAllTargets(*a.Target)
			return nil
		})
	reg.Register(protocol.CmdCalibrate, motor,
		func(r *Rig, a protocol.Args) error {
			return r.ToggleCalibration(*a.Motor)
		})
	reg.Register(protocol.CmdCalibrateAll, nil,
		func(r *Rig, _ protocol.Args) error {
			r.ToggleAllCalibration()
			return nil
		})
	reg.Register(protocol.CmdFullForward, motor,
		func(r *Rig, a protocol.Args) error {
			return r.ToggleFullDirection(*a.Motor, DirForward)
		})
	reg.Register(protocol.CmdFullBackward, motor,
		func(r *Rig, a protocol.Args) error {
			return r.ToggleFullDirection(*a.Motor, DirBackward)
		})
	reg.Register(protocol.CmdAllFullForward, nil,
		func(r *Rig, _ protocol.Args) error {
			r.ToggleAllFullDirection(DirForward)
			return nil
		})
	reg.Register(protocol.CmdAllFullBackward, nil,
		func(r *Rig, _ protocol.Args) error {
			r.ToggleAllFullDirection(DirBackward)
			return nil
		})
	reg.Register(protocol.CmdEmergencyStop, nil,
		func(r *Rig, _ protocol.Args) error {
			r.EmergencyStop()
			return nil
		})
	reg.Register(protocol.CmdSetServo, []string{protocol.FieldState},
		func(r *Rig, a protocol.Args) error {
			r.SetServo(*a.State)
			return nil
		})
	reg.Register(protocol.CmdGetIP, nil,
		func(r *Rig, _ protocol.Args) error {
			r.Broadcast()
			return nil
		})
}
