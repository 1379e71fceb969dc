package v3

import (
	"net/url"
	"strings"
)

// Consumer and Provider name the two ends of the contract.
type Consumer struct {
	Name string
}

type Provider struct {
	Name string
}

// Request is one interaction's recorded request: example values plus the
// matching rules a comparator should apply instead of exact equality.
type Request struct {
	Method  string
	Path    string
	Query   map[string][]string
	Headers map[string]string
	Body    interface{}
	Rules   *MatchingRules
}

func newRequest() *Request {
	return &Request{Rules: NewMatchingRules()}
}

// clone returns a deep copy, isolating it from further mutation of the
// builder that produced it.
func (r *Request) clone() *Request {
	out := &Request{Method: r.Method, Path: r.Path, Body: deepCopyJSON(r.Body)}
	if r.Query != nil {
		out.Query = make(map[string][]string, len(r.Query))
		for k, v := range r.Query {
			out.Query[k] = append([]string(nil), v...)
		}
	}
	if r.Headers != nil {
		out.Headers = make(map[string]string, len(r.Headers))
		for k, v := range r.Headers {
			out.Headers[k] = v
		}
	}
	if r.Rules != nil {
		out.Rules = r.Rules.clone()
	}
	return out
}

// ToJSON renders the request in the given spec version's wire shape.
func (r *Request) ToJSON(spec SpecVersion) map[string]interface{} {
	out := map[string]interface{}{
		"method": r.Method,
		"path":   r.Path,
	}
	if len(r.Query) > 0 {
		out["query"] = r.Query
	}
	if len(r.Headers) > 0 {
		out["headers"] = r.Headers
	}
	if r.Body != nil {
		out["body"] = r.Body
	}
	if r.Rules != nil && !r.Rules.IsEmpty() {
		out["matchingRules"] = r.Rules.ToJSON(spec)
	}
	return out
}

// RequestFromJSON tolerantly decodes a request object: missing or
// malformed fields are left at their zero value rather than failing the
// whole document.
func RequestFromJSON(raw interface{}) *Request {
	req := newRequest()
	m, ok := raw.(map[string]interface{})
	if !ok {
		return req
	}
	if s, ok := m["method"].(string); ok {
		req.Method = s
	}
	if s, ok := m["path"].(string); ok {
		req.Path = s
	}
	if q, ok := m["query"]; ok {
		req.Query = parseQuery(q)
	}
	switch h := m["headers"].(type) {
	case map[string]interface{}:
		req.Headers = stringMap(h)
	case map[string]string:
		req.Headers = make(map[string]string, len(h))
		for k, v := range h {
			req.Headers[k] = v
		}
	}
	if b, ok := m["body"]; ok {
		req.Body = b
	}
	if mr, ok := m["matchingRules"]; ok {
		req.Rules = LoadMatchingRules(mr)
	}
	return req
}

// Response is one interaction's recorded response.
type Response struct {
	Status  int
	Headers map[string]string
	Body    interface{}
	Rules   *MatchingRules
}

func newResponse() *Response {
	return &Response{Rules: NewMatchingRules()}
}

// clone returns a deep copy, isolating it from further mutation of the
// builder that produced it.
func (r *Response) clone() *Response {
	out := &Response{Status: r.Status, Body: deepCopyJSON(r.Body)}
	if r.Headers != nil {
		out.Headers = make(map[string]string, len(r.Headers))
		for k, v := range r.Headers {
			out.Headers[k] = v
		}
	}
	if r.Rules != nil {
		out.Rules = r.Rules.clone()
	}
	return out
}

// ToJSON renders the response in the given spec version's wire shape.
func (r *Response) ToJSON(spec SpecVersion) map[string]interface{} {
	out := map[string]interface{}{
		"status": r.Status,
	}
	if len(r.Headers) > 0 {
		out["headers"] = r.Headers
	}
	if r.Body != nil {
		out["body"] = r.Body
	}
	if r.Rules != nil && !r.Rules.IsEmpty() {
		out["matchingRules"] = r.Rules.ToJSON(spec)
	}
	return out
}

// ResponseFromJSON tolerantly decodes a response object.
func ResponseFromJSON(raw interface{}) *Response {
	resp := newResponse()
	m, ok := raw.(map[string]interface{})
	if !ok {
		return resp
	}
	if n, ok := jsonToNum(m["status"]); ok {
		resp.Status = n
	}
	if h, ok := m["headers"].(map[string]interface{}); ok {
		resp.Headers = stringMap(h)
	}
	if b, ok := m["body"]; ok {
		resp.Body = b
	}
	if mr, ok := m["matchingRules"]; ok {
		resp.Rules = LoadMatchingRules(mr)
	}
	return resp
}

// Interaction is one request/response pair the consumer expects the
// provider to honor, optionally preceded by a named provider state.
type Interaction struct {
	Description   string
	ProviderState string
	Request       *Request
	Response      *Response
}

// ToJSON renders the interaction in the given spec version's wire shape.
func (i *Interaction) ToJSON(spec SpecVersion) map[string]interface{} {
	out := map[string]interface{}{"description": i.Description}
	if i.ProviderState != "" {
		out["provider_state"] = i.ProviderState
	}
	if i.Request != nil {
		out["request"] = i.Request.ToJSON(spec)
	}
	if i.Response != nil {
		out["response"] = i.Response.ToJSON(spec)
	}
	return out
}

// clone returns a deep copy, isolating it from further mutation of the
// builder that produced it.
func (i *Interaction) clone() *Interaction {
	out := &Interaction{Description: i.Description, ProviderState: i.ProviderState}
	if i.Request != nil {
		out.Request = i.Request.clone()
	}
	if i.Response != nil {
		out.Response = i.Response.clone()
	}
	return out
}

// InteractionFromJSON tolerantly decodes an interaction object.
func InteractionFromJSON(raw interface{}) *Interaction {
	it := &Interaction{}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return it
	}
	if s, ok := m["description"].(string); ok {
		it.Description = s
	}
	if s, ok := m["provider_state"].(string); ok {
		it.ProviderState = s
	}
	if r, ok := m["request"]; ok {
		it.Request = RequestFromJSON(r)
	}
	if r, ok := m["response"]; ok {
		it.Response = ResponseFromJSON(r)
	}
	return it
}

// Pact is a complete consumer-provider contract: every interaction the
// consumer recorded against a mock provider.
type Pact struct {
	Consumer     Consumer
	Provider     Provider
	Interactions []*Interaction
	Metadata     map[string]interface{}
	SpecVersion  SpecVersion
}

// clone returns a deep copy of the pact, including every interaction, its
// request/response, and their matching-rule stores - so that continuing
// to build on a PactBuilder after Build() can never retroactively mutate
// an already-returned *Pact.
func (p *Pact) clone() *Pact {
	out := &Pact{
		Consumer:    p.Consumer,
		Provider:    p.Provider,
		SpecVersion: p.SpecVersion,
	}
	if p.Metadata != nil {
		meta := make(map[string]interface{}, len(p.Metadata))
		for k, v := range p.Metadata {
			meta[k] = v
		}
		out.Metadata = meta
	}
	if p.Interactions != nil {
		out.Interactions = make([]*Interaction, len(p.Interactions))
		for i, it := range p.Interactions {
			out.Interactions[i] = it.clone()
		}
	}
	return out
}

// deepCopyJSON clones a value built out of the same primitives ToExample
// ever produces (map[string]interface{}, []interface{}, and scalars), so
// a body snapshotted into a built Pact can't be mutated via a reference
// still held by the builder.
func deepCopyJSON(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = deepCopyJSON(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = deepCopyJSON(val)
		}
		return out
	case []byte:
		return append([]byte(nil), t...)
	default:
		return v
	}
}

// ToJSON renders the whole pact document.
func (p *Pact) ToJSON() map[string]interface{} {
	interactions := make([]interface{}, len(p.Interactions))
	for i, it := range p.Interactions {
		interactions[i] = it.ToJSON(p.SpecVersion)
	}
	meta := p.Metadata
	if meta == nil {
		meta = map[string]interface{}{}
	}
	return map[string]interface{}{
		"consumer":     map[string]interface{}{"name": p.Consumer.Name},
		"provider":     map[string]interface{}{"name": p.Provider.Name},
		"interactions": interactions,
		"metadata":     meta,
	}
}

// PactFromJSON tolerantly decodes a whole pact document, auto-detecting
// its spec version from the metadata block.
func PactFromJSON(raw interface{}) *Pact {
	pact := &Pact{Metadata: map[string]interface{}{}}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return pact
	}
	if c, ok := m["consumer"].(map[string]interface{}); ok {
		pact.Consumer.Name, _ = c["name"].(string)
	}
	if pr, ok := m["provider"].(map[string]interface{}); ok {
		pact.Provider.Name, _ = pr["name"].(string)
	}
	if arr, ok := m["interactions"].([]interface{}); ok {
		for _, it := range arr {
			pact.Interactions = append(pact.Interactions, InteractionFromJSON(it))
		}
	}
	if meta, ok := m["metadata"].(map[string]interface{}); ok {
		pact.Metadata = meta
	}
	pact.SpecVersion = specVersionFromMetadata(pact.Metadata)
	return pact
}

// specVersionFromMetadata reads the "pactSpecificationVersion" (V2) or
// nested "pactSpecification.version" (V3) metadata field a real pact
// document carries, defaulting to V3 when neither is present.
func specVersionFromMetadata(meta map[string]interface{}) SpecVersion {
	if v, ok := meta["pactSpecificationVersion"].(string); ok && strings.HasPrefix(v, "2") {
		return V2
	}
	if ps, ok := meta["pactSpecification"].(map[string]interface{}); ok {
		if v, ok := ps["version"].(string); ok && strings.HasPrefix(v, "2") {
			return V2
		}
	}
	return V3
}

// parseQuery accepts either a raw "a=1&b=2" query string (V2) or a
// map[string][]string-shaped object (V3) and normalizes to the latter.
func parseQuery(raw interface{}) map[string][]string {
	switch v := raw.(type) {
	case string:
		values, err := url.ParseQuery(v)
		if err != nil {
			return nil
		}
		return map[string][]string(values)
	case map[string]interface{}:
		out := make(map[string][]string, len(v))
		for k, val := range v {
			switch vv := val.(type) {
			case []interface{}:
				strs := make([]string, len(vv))
				for i, s := range vv {
					strs[i] = jsonToString(s)
				}
				out[k] = strs
			default:
				out[k] = []string{jsonToString(vv)}
			}
		}
		return out
	default:
		return nil
	}
}

// stringMap coerces a decoded JSON object's values to strings.
func stringMap(m map[string]interface{}) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = jsonToString(v)
	}
	return out
}
