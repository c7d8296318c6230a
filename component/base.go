package component

// Base carries the scope and container shared by most components
// Embed it and call Init from Mount
type Base struct {
	scope     *Scope
	container *Container
}

// Init binds the base to scope and creates its guarded container
func (b *Base) Init(scope *Scope, name string) *Container {
	b.scope = scope
	b.container = scope.NewContainer(name)
	return b.container
}

// Scope returns the build scope, nil before Mount
func (b *Base) Scope() *Scope { return b.scope }

// Container returns the mounted container, nil before Mount
func (b *Base) Container() *Container { return b.container }

// Commit writes lines to the container
func (b *Base) Commit(lines ...Line) error {
	if b.container == nil {
		return ErrStaleBuild
	}
	return b.container.Commit(lines...)
}

// Teardown detaches the container
func (b *Base) Teardown() {
	if b.container != nil {
		b.container.Detach()
	}
}

// UpdateVisibility is a no-op default
func (b *Base) UpdateVisibility() {}
