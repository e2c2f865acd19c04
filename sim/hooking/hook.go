// Package hooking lets the bring-up code expose what it is doing without
// depending on who is listening. Sequencing phases are reported as tasks,
// register accesses and waits are reported by the packages that perform them.
package hooking

// HookPos names a point in the code where hooks are invoked. Positions are
// compared by pointer, so each one is declared once as a package variable.
type HookPos struct {
	Name string
}

func (p *HookPos) String() string {
	return p.Name
}

// HookCtx is what a hook receives. Domain is the object invoking the hook and
// Item carries the position specific payload, such as a TaskStart or a
// register access.
type HookCtx struct {
	Domain Hookable
	Pos    *HookPos
	Item   any
	Detail any
}

// Hookable is implemented by everything hooks can be attached to: buses,
// clocks and sequencers.
type Hookable interface {
	AcceptHook(hook Hook)
	NumHooks() int
	Hooks() []Hook
}

// Named is implemented by hookable domains that carry a name.
type Named interface {
	Name() string
}

// Hook reacts to a HookCtx.
type Hook interface {
	Func(ctx HookCtx)
}

// HookFunc turns a function into a Hook.
type HookFunc func(ctx HookCtx)

// Func calls f.
func (f HookFunc) Func(ctx HookCtx) {
	f(ctx)
}

// HookableBase is embedded by hookable types. The zero value has no hooks.
type HookableBase struct {
	hooks []Hook
}

// NumHooks returns how many hooks are attached. Callers check it before
// building an expensive payload.
func (h *HookableBase) NumHooks() int {
	return len(h.hooks)
}

// Hooks returns the attached hooks in attach order.
func (h *HookableBase) Hooks() []Hook {
	return h.hooks
}

// AcceptHook attaches a hook. Attaching the same hook value twice panics;
// function hooks are not compared.
func (h *HookableBase) AcceptHook(hook Hook) {
	h.hookMustBeNew(hook)
	h.hooks = append(h.hooks, hook)
}

func (h *HookableBase) hookMustBeNew(hook Hook) {
	if _, ok := hook.(HookFunc); ok {
		return
	}

	for _, attached := range h.hooks {
		if attached == hook {
			panic("hook already attached")
		}
	}
}

// InvokeHook calls every attached hook with ctx, in attach order.
func (h *HookableBase) InvokeHook(ctx HookCtx) {
	for _, hook := range h.hooks {
		hook.Func(ctx)
	}
}
