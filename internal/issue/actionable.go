// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is a failure the user can act on: the step that
	// failed, the file or tool involved, and what to try next. When Issue
	// is set, the CLI prints the matching catalog entry under --verbose.
	//
	//	return issue.NewErrorContext().
	//		WithOperation("prepare to commit").
	//		WithResource("git").
	//		WithIssue(issue.DirtyWorkingTreeId).
	//		WithSuggestion("Commit or stash your changes first").
	//		Wrap(err).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase completing "failed to …", e.g. "bump version".
		Operation string
		// Resource names the manifest, folder, tool or value involved. Optional.
		Resource string
		// Suggestions are printed as a bullet list below the message.
		Suggestions []string
		// Issue links the failure to a catalog entry. Zero means none.
		Issue Id
		// Cause is the underlying error. Optional.
		Cause error
	}

	// ErrorContext accumulates the fields of an ActionableError. It lets a
	// function set the operation up front and attach the cause and
	// suggestions where the failure happens.
	ErrorContext struct {
		err ActionableError
	}
)

// NewErrorContext starts an empty ErrorContext.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// WrapWithContext is the one-line form for failures that need no
// suggestions. It returns nil for a nil err.
func WrapWithContext(err error, operation, resource string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{Operation: operation, Resource: resource, Cause: err}
}

// Error renders `failed to <operation>[: <resource>][: <cause>]`.
func (e *ActionableError) Error() string {
	parts := make([]string, 0, 3)
	parts = append(parts, "failed to "+e.Operation)
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

// Unwrap exposes Cause to errors.Is and errors.As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders the message for the terminal:
//
//	failed to <operation>: <resource>: <cause>
//
//	  • <suggestion>
//
// With verbose set, every error in the Cause chain follows, numbered.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if e.HasSuggestions() {
		b.WriteString("\n")
		for _, s := range e.Suggestions {
			b.WriteString("\n  • " + s)
		}
	}

	if verbose && e.Cause != nil {
		b.WriteString("\n\nError chain:")
		for depth, err := 1, e.Cause; err != nil; depth, err = depth+1, errors.Unwrap(err) {
			fmt.Fprintf(&b, "\n  %d. %s", depth, err)
		}
	}
	return b.String()
}

// HasSuggestions reports whether any suggestion was attached.
func (e *ActionableError) HasSuggestions() bool {
	return len(e.Suggestions) > 0
}

// IssueOf returns the catalog entry of the outermost ActionableError in
// err's chain that references one.
func IssueOf(err error) (*Issue, bool) {
	var ae *ActionableError
	for errors.As(err, &ae) {
		if ae.Issue != 0 {
			if entry := Get(ae.Issue); entry != nil {
				return entry, true
			}
		}
		err = ae.Cause
	}
	return nil, false
}

// WithOperation sets the step that failed, e.g. "read version".
func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.err.Operation = op
	return c
}

// WithResource sets the file, folder, tool or value involved.
func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.err.Resource = res
	return c
}

// WithSuggestion appends one suggestion.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.err.Suggestions = append(c.err.Suggestions, sug)
	return c
}

// WithSuggestions appends several suggestions.
func (c *ErrorContext) WithSuggestions(sugs ...string) *ErrorContext {
	c.err.Suggestions = append(c.err.Suggestions, sugs...)
	return c
}

// WithIssue links a catalog entry.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.err.Issue = id
	return c
}

// Wrap sets the underlying cause.
func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.err.Cause = err
	return c
}

// Build returns a copy of the accumulated error, or nil when no operation
// was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.err.Operation == "" {
		return nil
	}
	ae := c.err
	ae.Suggestions = append([]string(nil), c.err.Suggestions...)
	return &ae
}

// BuildError is Build for return statements. It returns an untyped nil
// when no operation was set, so `err != nil` checks stay reliable.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
