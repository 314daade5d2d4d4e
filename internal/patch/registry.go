package patch

import (
	"fmt"
	"sync"

	"github.com/hollegjx/mycode-statusline/internal/core/anchor"
	"github.com/hollegjx/mycode-statusline/internal/logger"
)

// Registry holds named patches and hands them out in a requested order.
type Registry struct {
	mu      sync.RWMutex
	patches map[string]Patch
	order   []string // registration order
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		patches: make(map[string]Patch),
	}
}

// Register adds a patch. Names must be non-empty and unique.
func (r *Registry) Register(p Patch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Name()
	if name == "" {
		return fmt.Errorf("patch registration failed: patch name cannot be empty")
	}
	if _, exists := r.patches[name]; exists {
		return fmt.Errorf("patch registration failed: patch named '%s' already registered", name)
	}

	r.patches[name] = p
	r.order = append(r.order, name)
	logger.Debugf("Patch Registry: Registered patch '%s'", name)
	return nil
}

// Get returns a registered patch by name.
func (r *Registry) Get(name string) (Patch, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, exists := r.patches[name]
	return p, exists
}

// Names returns registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Select returns the named patches in the order given. An empty list selects
// everything in registration order.
func (r *Registry) Select(names []string) ([]Patch, error) {
	if len(names) == 0 {
		names = r.Names()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Patch, 0, len(names))
	for _, name := range names {
		p, ok := r.patches[name]
		if !ok {
			return nil, fmt.Errorf("unknown patch '%s'", name)
		}
		out = append(out, p)
	}
	return out, nil
}

// Options parameterises the built-in patches.
type Options struct {
	Verbose           bool
	RefreshIntervalMs int
	// ContextLowMessage is "prefix,suffix"; empty leaves the message alone
	// and keeps the context-low-message patch unregistered.
	ContextLowMessage string
}

// DefaultRegistry registers the built-in patches in default order.
func DefaultRegistry(opts Options) *Registry {
	r := NewRegistry()
	contextLow := ContextLowPatch{}
	var message *ContextLowMessagePatch
	if opts.ContextLowMessage != "" {
		m := ParseMessage(opts.ContextLowMessage)
		message = &m
		// Once the message is rewritten the stock anchor is gone.
		contextLow.Anchors = []anchor.Anchor{anchor.Literal(contextLowAnchor), anchor.Regexp(m.RewrittenPattern())}
	}

	builtins := []Patch{
		VerbosePatch{Value: opts.Verbose},
		contextLow,
		EscInterruptPatch{},
		StatusRefreshPatch{IntervalMs: opts.RefreshIntervalMs},
	}
	if message != nil {
		builtins = append(builtins, *message)
	}
	for _, p := range builtins {
		if err := r.Register(p); err != nil {
			logger.Errorf("Patch Registry: %v", err)
		}
	}
	return r
}
