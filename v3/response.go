package v3

// ResponseBuilder configures the response half of an interaction.
type ResponseBuilder struct {
	ib       *InteractionBuilder
	response *Response
}

// Header sets a response header. value may be a plain string or a Pattern.
func (r *ResponseBuilder) Header(name string, value interface{}) *ResponseBuilder {
	if r.response.Headers == nil {
		r.response.Headers = map[string]string{}
	}
	cat := r.response.Rules.AddCategory("header")
	r.response.Headers[name] = resolveStringField(r.ib.pactBuilder, cat, name, value)
	return r
}

// JSONBody sets the response body from a JsonPattern.
func (r *ResponseBuilder) JSONBody(pattern interface{}) *ResponseBuilder {
	r.response.Body = ToExample(pattern)
	ExtractMatchingRules(pattern, "$", r.response.Rules.AddCategory("body"))
	return r
}

// Body sets the response body to a raw, non-JSON payload with no matching
// rules - for interactions whose content isn't a JsonPattern at all.
func (r *ResponseBuilder) Body(content []byte) *ResponseBuilder {
	r.response.Body = content
	return r
}

// StructBody sets the response body by reflecting over src - a plain Go
// struct (or slice/pointer to one) - via Match, the same way
// RequestBuilder.StructBody does.
func (r *ResponseBuilder) StructBody(src interface{}) *ResponseBuilder {
	return r.JSONBody(Match(src))
}

// AddInteraction continues the chain onto a new interaction on the same pact.
func (r *ResponseBuilder) AddInteraction() *InteractionBuilder {
	return r.ib.pactBuilder.AddInteraction()
}

// Build finishes the pact this interaction belongs to.
func (r *ResponseBuilder) Build() (*Pact, error) {
	return r.ib.pactBuilder.Build()
}
