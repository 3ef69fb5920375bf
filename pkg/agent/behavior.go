package agent

// Status is the result of ticking a behavior tree node.
type Status int

const (
	Success Status = iota
	Failure
	Running
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Running:
		return "running"
	}
	return "unknown"
}

// Node is one behavior tree node. The environment is passed per tick and
// must never be retained past the call.
type Node interface {
	Tick(a *Agent, env Environment) Status
}

// Sequence ticks children in order and short-circuits on the first child
// that does not succeed.
type Sequence []Node

// Tick implements Node.
func (s Sequence) Tick(a *Agent, env Environment) Status {
	for _, child := range s {
		if status := child.Tick(a, env); status != Success {
			return status
		}
	}
	return Success
}

// Selector ticks children in order and short-circuits on the first child
// that does not fail.
type Selector []Node

// Tick implements Node.
func (s Selector) Tick(a *Agent, env Environment) Status {
	for _, child := range s {
		if status := child.Tick(a, env); status != Failure {
			return status
		}
	}
	return Failure
}

// Action is a leaf that performs work and reports its outcome.
type Action func(a *Agent, env Environment) Status

// Tick implements Node.
func (f Action) Tick(a *Agent, env Environment) Status {
	return f(a, env)
}

// Condition is a leaf that succeeds iff its predicate holds.
type Condition func(a *Agent, env Environment) bool

// Tick implements Node.
func (f Condition) Tick(a *Agent, env Environment) Status {
	if f(a, env) {
		return Success
	}
	return Failure
}

// heartbeatTree is the default per-tick behavior: drain the inbox, resolve
// a pending dilemma, then execute the chosen action.
func heartbeatTree() Node {
	return Sequence{
		Action((*Agent).processInbox),
		Selector{
			Sequence{
				Condition(func(a *Agent, _ Environment) bool { return a.CurrentDilemma != nil && a.ChosenAction == nil }),
				Action((*Agent).resolveStep),
			},
			Action(succeed),
		},
		Selector{
			Sequence{
				Condition(func(a *Agent, _ Environment) bool { return a.ChosenAction != nil }),
				Action((*Agent).executeStep),
			},
			Action(succeed),
		},
	}
}

func succeed(*Agent, Environment) Status { return Success }
