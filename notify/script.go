package notify

import (
	"context"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ScriptNotifier runs a Tengo hook with the message bound to `message`.
// The script is compiled once; every notification runs a fresh clone so
// globals never leak between runs.
type ScriptNotifier struct {
	name     string
	compiled *tengo.Compiled
}

func NewScriptNotifier(name string, src []byte) (*ScriptNotifier, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("message", map[string]any{}); err != nil {
		return nil, fmt.Errorf("notify: script %s: %w", name, err)
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("notify: compile %s: %w", name, err)
	}
	return &ScriptNotifier{name: name, compiled: compiled}, nil
}

func (n *ScriptNotifier) Notify(ctx context.Context, msg Message) error {
	_, err := n.run(ctx, msg)
	return err
}

func (n *ScriptNotifier) Name() string {
	return n.name
}

func (n *ScriptNotifier) run(ctx context.Context, msg Message) (*tengo.Compiled, error) {
	run := n.compiled.Clone()
	if err := run.Set("message", msg.Fields()); err != nil {
		return nil, fmt.Errorf("notify: script %s: bind message: %w", n.name, err)
	}
	if err := run.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("notify: script %s: %w", n.name, err)
	}
	return run, nil
}
