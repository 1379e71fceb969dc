package v3

// RequestBuilder configures the request half of an interaction. Every
// method mutates the draft request immediately and returns the builder
// for chaining, mirroring the Rust builders' &mut Self convention.
type RequestBuilder struct {
	ib      *InteractionBuilder
	request *Request
}

// Query adds a query parameter. Each value may be a plain value or a
// Pattern.
func (r *RequestBuilder) Query(name string, values ...interface{}) *RequestBuilder {
	if r.request.Query == nil {
		r.request.Query = map[string][]string{}
	}
	cat := r.request.Rules.AddCategory("query")
	strs := make([]string, len(values))
	for idx, v := range values {
		strs[idx] = resolveStringField(r.ib.pactBuilder, cat, name, v)
	}
	r.request.Query[name] = strs
	return r
}

// Header sets a request header. value may be a plain string or a Pattern.
func (r *RequestBuilder) Header(name string, value interface{}) *RequestBuilder {
	if r.request.Headers == nil {
		r.request.Headers = map[string]string{}
	}
	cat := r.request.Rules.AddCategory("header")
	r.request.Headers[name] = resolveStringField(r.ib.pactBuilder, cat, name, value)
	return r
}

// JSONBody sets the request body from a JsonPattern: its literal example
// is computed immediately and its embedded Matcher leaves are recorded as
// body category rules rooted at "$".
func (r *RequestBuilder) JSONBody(pattern interface{}) *RequestBuilder {
	r.request.Body = ToExample(pattern)
	ExtractMatchingRules(pattern, "$", r.request.Rules.AddCategory("body"))
	return r
}

// Body sets the request body to a raw, non-JSON payload with no matching
// rules - for interactions whose content isn't a JsonPattern at all.
func (r *RequestBuilder) Body(content []byte) *RequestBuilder {
	r.request.Body = content
	return r
}

// StructBody sets the request body by reflecting over src - a plain Go
// struct (or slice/pointer to one) - via Match, deriving a JsonPattern
// from its fields and any "pact" struct tags instead of requiring the
// caller to build the pattern by hand.
func (r *RequestBuilder) StructBody(src interface{}) *RequestBuilder {
	return r.JSONBody(Match(src))
}

// WillRespondWith continues the chain onto the response half of the same
// interaction.
func (r *RequestBuilder) WillRespondWith(status int) *ResponseBuilder {
	return r.ib.WillRespondWith(status)
}
