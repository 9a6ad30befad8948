// Package form owns the per-form resolution context: it binds exactly one
// schema root for the lifetime of a form instance and answers the two
// queries every rendered input depends on, IsRequired and FieldMetadata.
// Results are memoized per context because the same (schema, path) pair is
// asked again on every re-render. An unbound context degrades to safe
// defaults so standalone widget usage works without any schema at all.
package form

import (
	"errors"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-fieldmeta/pkg/fieldpath"
	"github.com/goliatone/go-fieldmeta/pkg/model"
	"github.com/goliatone/go-fieldmeta/pkg/resolver"
	"github.com/goliatone/go-fieldmeta/pkg/schema"
)

// ErrAlreadyBound is returned when Bind is called on a bound context.
// Swapping schemas in place is not supported; tear the context down and
// create a new one so stale cache entries cannot leak across forms.
var ErrAlreadyBound = errors.New("form: context already bound")

// Option customises a Context.
type Option func(*Context)

// WithDescriptionPolicy scrubs resolved descriptions through the supplied
// bluemonday policy before they reach widgets.
func WithDescriptionPolicy(policy *bluemonday.Policy) Option {
	return func(c *Context) {
		c.policy = policy
	}
}

// WithSanitizedDescriptions scrubs resolved descriptions with the strict
// policy, stripping any embedded markup a schema author slipped in.
func WithSanitizedDescriptions() Option {
	return func(c *Context) {
		c.policy = bluemonday.StrictPolicy()
	}
}

// Context resolves field metadata against the schema bound to one form
// instance. The zero state is Unbound: both queries answer conservative
// defaults (not required, no constraints) without error. Queries are safe
// for concurrent readers once the context is bound.
type Context struct {
	mu     sync.RWMutex
	root   *schema.Node
	cache  map[string]model.FieldMetadata
	policy *bluemonday.Policy
}

// New constructs an unbound Context applying any provided options.
func New(options ...Option) *Context {
	c := &Context{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// NewBound constructs a Context already bound to root. Convenience for the
// common mount-with-schema case.
func NewBound(root *schema.Node, options ...Option) *Context {
	c := New(options...)
	_ = c.Bind(root)
	return c
}

// Bind registers the schema root and transitions the context to Bound. The
// root is treated as immutable from here on. Binding a nil root is a no-op
// that leaves the context unbound.
func (c *Context) Bind(root *schema.Node) error {
	if c == nil || root == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.root != nil {
		return ErrAlreadyBound
	}
	c.root = root
	c.cache = make(map[string]model.FieldMetadata)
	return nil
}

// Release drops the schema and the memoized results, returning the context
// to Unbound. Called at form teardown.
func (c *Context) Release() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.root = nil
	c.cache = nil
}

// Bound reports whether a schema is registered.
func (c *Context) Bound() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.root != nil
}

// IsRequired reports whether the field at path must be provided. Unbound
// contexts and unresolvable paths answer false.
func (c *Context) IsRequired(path string) bool {
	return c.FieldMetadata(path).Required
}

// FieldMetadata returns the metadata record for the field at path. Paths
// that do not map onto the schema shape yield the unresolved default; no
// input causes an error. Repeated calls with the same path return equal
// results and hit the per-context cache.
func (c *Context) FieldMetadata(path string) model.FieldMetadata {
	if c == nil {
		return model.Unresolved()
	}

	c.mu.RLock()
	root := c.root
	if root == nil {
		c.mu.RUnlock()
		return model.Unresolved()
	}
	if cached, ok := c.cache[path]; ok {
		c.mu.RUnlock()
		return cloneMetadata(cached)
	}
	c.mu.RUnlock()

	meta := c.resolve(root, path)

	c.mu.Lock()
	// The context may have been released while resolving; only memoize when
	// still bound to the same root.
	if c.root == root && c.cache != nil {
		c.cache[path] = meta
	}
	c.mu.Unlock()
	return cloneMetadata(meta)
}

func (c *Context) resolve(root *schema.Node, path string) model.FieldMetadata {
	node, ok := resolver.Resolve(root, fieldpath.Parse(path))
	if !ok {
		return model.Unresolved()
	}
	meta := resolver.Extract(node)
	if c.policy != nil && meta.Description != "" {
		meta.Description = strings.TrimSpace(c.policy.Sanitize(meta.Description))
	}
	return meta
}

func cloneMetadata(meta model.FieldMetadata) model.FieldMetadata {
	if len(meta.Enum) > 0 {
		meta.Enum = append([]any(nil), meta.Enum...)
	}
	return meta
}
