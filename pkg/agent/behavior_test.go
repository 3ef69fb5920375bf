package agent

import "testing"

func TestSequence_ShortCircuitsOnFailure(t *testing.T) {
	var visited []string
	step := func(name string, result Status) Node {
		return Action(func(*Agent, Environment) Status {
			visited = append(visited, name)
			return result
		})
	}

	tree := Sequence{step("a", Success), step("b", Failure), step("c", Success)}
	if status := tree.Tick(nil, nil); status != Failure {
		t.Errorf("status = %v, want failure", status)
	}
	if len(visited) != 2 {
		t.Errorf("visited %v, want a and b only", visited)
	}
}

func TestSequence_RunningPropagates(t *testing.T) {
	tree := Sequence{
		Action(func(*Agent, Environment) Status { return Running }),
		Action(func(*Agent, Environment) Status { t.Fatal("must not run"); return Success }),
	}
	if status := tree.Tick(nil, nil); status != Running {
		t.Errorf("status = %v, want running", status)
	}
}

func TestSelector_ShortCircuitsOnSuccess(t *testing.T) {
	var visited []string
	step := func(name string, result Status) Node {
		return Action(func(*Agent, Environment) Status {
			visited = append(visited, name)
			return result
		})
	}

	tree := Selector{step("a", Failure), step("b", Success), step("c", Success)}
	if status := tree.Tick(nil, nil); status != Success {
		t.Errorf("status = %v, want success", status)
	}
	if len(visited) != 2 {
		t.Errorf("visited %v, want a and b only", visited)
	}
}

func TestSelector_AllFail(t *testing.T) {
	fail := Action(func(*Agent, Environment) Status { return Failure })
	tree := Selector{fail, fail}
	if status := tree.Tick(nil, nil); status != Failure {
		t.Errorf("status = %v, want failure", status)
	}
}

func TestCondition(t *testing.T) {
	yes := Condition(func(*Agent, Environment) bool { return true })
	no := Condition(func(*Agent, Environment) bool { return false })

	if yes.Tick(nil, nil) != Success {
		t.Error("true condition must succeed")
	}
	if no.Tick(nil, nil) != Failure {
		t.Error("false condition must fail")
	}
}
