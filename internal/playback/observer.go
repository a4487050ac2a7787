package playback

// Command names an engine command for observers and logs.
type Command string

const (
	CmdPlay         Command = "play"
	CmdPause        Command = "pause"
	CmdReset        Command = "reset"
	CmdStepForward  Command = "step_forward"
	CmdStepBackward Command = "step_backward"
	CmdGoToStep     Command = "go_to_step"
	CmdSetSpeed     Command = "set_speed"
	CmdBind         Command = "bind"
	CmdClose        Command = "close"
)

// Observer receives engine events. Implementations must not block; they run
// on the caller's goroutine or on the clock's goroutine.
type Observer interface {
	// OnCommand is called for every accepted command, including no-ops.
	OnCommand(cmd Command)
	// OnTick is called after an auto-advance tick moved the cursor.
	OnTick(s Snapshot)
	// OnStaleTick is called when a tick is dropped because the engine moved
	// on after it was scheduled.
	OnStaleTick()
	// OnChange is called whenever the cursor, animation state, speed or
	// trace changed.
	OnChange(s Snapshot)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Command func(Command)
	Tick    func(Snapshot)
	Stale   func()
	Change  func(Snapshot)
}

func (o ObserverFuncs) OnCommand(cmd Command) {
	if o.Command != nil {
		o.Command(cmd)
	}
}

func (o ObserverFuncs) OnTick(s Snapshot) {
	if o.Tick != nil {
		o.Tick(s)
	}
}

func (o ObserverFuncs) OnStaleTick() {
	if o.Stale != nil {
		o.Stale()
	}
}

func (o ObserverFuncs) OnChange(s Snapshot) {
	if o.Change != nil {
		o.Change(s)
	}
}
