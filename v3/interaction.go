package v3

import (
	"fmt"
)

// InteractionBuilder configures one request/response pair on a pact under
// construction.
type InteractionBuilder struct {
	pactBuilder *PactBuilder
	interaction *Interaction
}

// Given records the provider state this interaction requires.
func (i *InteractionBuilder) Given(state string) *InteractionBuilder {
	i.interaction.ProviderState = state
	return i
}

// UponReceiving names the interaction, for readable verification output.
func (i *InteractionBuilder) UponReceiving(description string) *InteractionBuilder {
	i.interaction.Description = description
	return i
}

// WithRequest begins configuring the request half of the interaction.
// path may be a plain string or a Pattern (e.g. Term) when the path
// itself needs a matching rule rather than an exact comparison.
func (i *InteractionBuilder) WithRequest(method string, path interface{}) *RequestBuilder {
	req := newRequest()
	req.Method = method
	req.Path = resolveStringField(i.pactBuilder, req.Rules.AddCategory("path"), "", path)
	i.interaction.Request = req
	return &RequestBuilder{ib: i, request: req}
}

// WillRespondWith begins configuring the response half of the interaction.
func (i *InteractionBuilder) WillRespondWith(status int) *ResponseBuilder {
	resp := newResponse()
	resp.Status = status
	i.interaction.Response = resp
	return &ResponseBuilder{ib: i, response: resp}
}

// resolveStringField resolves a path/header/query Pattern to its example
// string, recording the pattern's rule (if it is one) at prefix in cat,
// and recording a construction error on the builder if the resolved
// example isn't actually a string.
func resolveStringField(b *PactBuilder, cat *Category, prefix string, pattern interface{}) string {
	var raw interface{}
	if m, ok := pattern.(Matcher); ok {
		cat.AddRule(prefix, m.Rule(), And)
		raw = ToExample(m)
	} else {
		raw = pattern
	}
	s, ok := raw.(string)
	if !ok {
		b.recordError(newConstructionError(prefix, fmt.Errorf("%w: expected string, got %T", ErrPatternTypeMismatch, raw)))
		return ""
	}
	return s
}
