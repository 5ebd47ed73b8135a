package runtime

import (
	"log/slog"
	"pirate-speak/internal/ast"
	"pirate-speak/internal/span"
	"sort"
)

// ============================================================
// Class registry
// ============================================================

// ClassDefinition is a loaded ship: its fields with their declared types and
// its methods by name.
type ClassDefinition struct {
	Name       string
	Fields     map[string]string // field name -> declared type
	FieldOrder []string
	Methods    map[string]*ast.MethodDecl
	Access     map[string]ast.Access // member name -> recorded access, not enforced
	Span       span.Span
}

// Method looks up a method by name.
func (c *ClassDefinition) Method(name string) (*ast.MethodDecl, bool) {
	m, ok := c.Methods[name]
	return m, ok
}

// MethodNames returns the method names in sorted order.
func (c *ClassDefinition) MethodNames() []string {
	names := make([]string, 0, len(c.Methods))
	for name := range c.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ClassRegistry maps class names to their definitions. It is read-only once
// Load returns, so one registry may serve concurrent invocations.
type ClassRegistry struct {
	classes map[string]*ClassDefinition
	order   []string
}

// NewClassRegistry returns an empty registry.
func NewClassRegistry() *ClassRegistry {
	return &ClassRegistry{classes: make(map[string]*ClassDefinition)}
}

// Lookup returns the class with the given name.
func (r *ClassRegistry) Lookup(name string) (*ClassDefinition, bool) {
	c, ok := r.classes[name]
	return c, ok
}

// Names returns class names in first-declaration order.
func (r *ClassRegistry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of loaded classes.
func (r *ClassRegistry) Len() int {
	return len(r.classes)
}

func (r *ClassRegistry) put(def *ClassDefinition) bool {
	_, replaced := r.classes[def.Name]
	if !replaced {
		r.order = append(r.order, def.Name)
	}
	r.classes[def.Name] = def
	return replaced
}

// ============================================================
// Interpreter
// ============================================================

// Interpreter loads class declarations and invokes their methods. It holds
// only configuration; every Invoke gets its own environments and step
// counter, so an Interpreter is safe for concurrent use.
type Interpreter struct {
	logger   *slog.Logger
	maxSteps int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the logger used for debug tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithMaxSteps bounds the statements and loop iterations a single
// invocation may execute. Zero or less means unbounded.
func WithMaxSteps(n int) Option {
	return func(i *Interpreter) {
		i.maxSteps = n
	}
}

// New creates an interpreter.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Load builds a registry from parsed class declarations. A class or member
// declared twice keeps its last declaration.
func (i *Interpreter) Load(classes []*ast.ClassDecl) *ClassRegistry {
	return i.LoadInto(NewClassRegistry(), classes)
}

// LoadInto adds classes to an existing registry, replacing same-named
// classes. The REPL uses this to accumulate declarations. It must not run
// concurrently with Invoke on the same registry.
func (i *Interpreter) LoadInto(reg *ClassRegistry, classes []*ast.ClassDecl) *ClassRegistry {
	for _, decl := range classes {
		def := &ClassDefinition{
			Name:    decl.Name,
			Fields:  make(map[string]string),
			Methods: make(map[string]*ast.MethodDecl),
			Access:  make(map[string]ast.Access),
			Span:    decl.Span,
		}
		for _, member := range decl.Members {
			name := member.MemberName()
			if _, seen := def.Access[name]; seen {
				i.logger.Debug("member redeclared", "class", decl.Name, "member", name)
			}
			def.Access[name] = member.MemberAccess()

			switch m := member.(type) {
			case *ast.FieldDecl:
				if _, exists := def.Fields[name]; !exists {
					def.FieldOrder = append(def.FieldOrder, name)
				}
				def.Fields[name] = m.Type
			case *ast.MethodDecl:
				def.Methods[name] = m
			}
		}
		if reg.put(def) {
			i.logger.Debug("class redeclared", "class", decl.Name)
		}
		i.logger.Debug("class loaded",
			"class", decl.Name,
			"fields", len(def.Fields),
			"methods", len(def.Methods))
	}
	return reg
}

// Invoke runs className.methodName with positional args. The receiver's
// declared fields start out unset; fields supplies initial values and may
// name fields the class never declared. A method that finishes without
// returning a value yields Unit.
func (i *Interpreter) Invoke(reg *ClassRegistry, className, methodName string, args []Value, fields map[string]Value) (Value, error) {
	class, ok := reg.Lookup(className)
	if !ok {
		return nil, runtimeErr(UnknownClass, span.Span{}, className, "no ship named %q", className)
	}
	method, ok := class.Method(methodName)
	if !ok {
		return nil, runtimeErr(UnknownMethod, class.Span, methodName, "ship %q has no adventure %q", className, methodName)
	}
	if len(args) != len(method.Params) {
		return nil, runtimeErr(ArityMismatch, method.Span, methodName,
			"%s.%s expects %d argument(s), got %d", className, methodName, len(method.Params), len(args))
	}

	for idx, arg := range args {
		if arg == nil {
			return nil, runtimeErr(TypeMismatch, method.Span, method.Params[idx].Name,
				"%s.%s argument %d has no value", className, methodName, idx+1)
		}
	}
	for name, val := range fields {
		if val == nil {
			return nil, runtimeErr(TypeMismatch, class.Span, name, "field %q has no value", name)
		}
	}

	fieldEnv := NewEnvironment(nil)
	for _, name := range class.FieldOrder {
		fieldEnv.Define(name, Unset)
	}
	for name, val := range fields {
		fieldEnv.Define(name, val)
	}

	callEnv := NewEnvironment(fieldEnv)
	for idx, param := range method.Params {
		callEnv.Define(param.Name, args[idx])
	}

	i.logger.Debug("invoke", "class", className, "method", methodName, "args", len(args))

	f := &frame{interp: i, env: callEnv}
	result, err := f.execBlock(method.Body)
	if err != nil {
		i.logger.Debug("invoke failed", "class", className, "method", methodName, "error", err)
		return nil, err
	}
	i.logger.Debug("invoke done", "class", className, "method", methodName, "steps", f.steps)
	if result.Signal == SigReturn && result.Value != nil {
		return result.Value, nil
	}
	return Unit, nil
}

// Evaluate evaluates a single expression in env. Assignments mutate env.
func (i *Interpreter) Evaluate(expr ast.Expr, env *Environment) (Value, error) {
	if env == nil {
		env = NewEnvironment(nil)
	}
	f := &frame{interp: i, env: env}
	return f.evalExpr(expr)
}

var defaultInterpreter = New()

// Load builds a registry with the default interpreter.
func Load(classes []*ast.ClassDecl) *ClassRegistry {
	return defaultInterpreter.Load(classes)
}

// Invoke runs a method with the default interpreter.
func Invoke(reg *ClassRegistry, className, methodName string, args []Value, fields map[string]Value) (Value, error) {
	return defaultInterpreter.Invoke(reg, className, methodName, args, fields)
}
