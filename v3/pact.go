package v3

// PactBuilder assembles a Pact one interaction at a time. Every setter
// mutates the draft pact immediately; Build snapshots it, returning the
// first construction error recorded along the way instead of the partial
// pact, so a caller can't accidentally publish a broken contract.
type PactBuilder struct {
	pact *Pact
	err  error
}

// NewPactBuilder starts a pact between the named consumer and provider,
// defaulting to the V3 wire format.
func NewPactBuilder(consumer, provider string) *PactBuilder {
	return &PactBuilder{
		pact: &Pact{
			Consumer: Consumer{Name: consumer},
			Provider: Provider{Name: provider},
			Metadata: map[string]interface{}{
				"pactSpecification": map[string]interface{}{"version": "3.0.0"},
			},
			SpecVersion: V3,
		},
	}
}

// Consumer returns the consumer name this builder was created with.
func (b *PactBuilder) Consumer() string { return b.pact.Consumer.Name }

// Provider returns the provider name this builder was created with.
func (b *PactBuilder) Provider() string { return b.pact.Provider.Name }

// UsingSpecVersion switches the wire format the built pact's ToJSON
// serializes to.
func (b *PactBuilder) UsingSpecVersion(v SpecVersion) *PactBuilder {
	b.pact.SpecVersion = v
	if v == V2 {
		b.pact.Metadata["pactSpecificationVersion"] = "2.0.0"
		delete(b.pact.Metadata, "pactSpecification")
	}
	return b
}

// AddInteraction starts a new interaction on this pact.
func (b *PactBuilder) AddInteraction() *InteractionBuilder {
	it := &Interaction{}
	b.pact.Interactions = append(b.pact.Interactions, it)
	return &InteractionBuilder{pactBuilder: b, interaction: it}
}

func (b *PactBuilder) recordError(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build snapshots the assembled pact into an independent copy, or returns
// the first construction error any setter recorded along the way. The
// copy means the builder can keep being mutated afterwards - e.g. to
// produce another variant via AddInteraction - without retroactively
// changing a *Pact a caller already has.
func (b *PactBuilder) Build() (*Pact, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.pact.clone(), nil
}
