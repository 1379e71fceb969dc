package dsl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/pact-foundation/pact-go/internal/plog"
	v3 "github.com/pact-foundation/pact-go/v3"
)

// Broker is a minimal Pact Broker HTTP client: enough to fetch the latest
// pact for a provider (optionally filtered by tag), fetch one consumer's
// pact at a specific version, and publish a built pact. It does not
// attempt HAL link traversal, webhook management, or tag resolution -
// those cross the pact-file I/O boundary this module stays out of.
type Broker struct {
	BaseURL  string
	Username string
	Password string
	Client   *http.Client
}

// NewBroker creates a client pointed at a broker's base URL, with no
// authentication configured.
func NewBroker(baseURL string) *Broker {
	return &Broker{BaseURL: baseURL, Client: http.DefaultClient}
}

// WithAuth attaches HTTP Basic credentials to every request this broker
// client makes.
func (b *Broker) WithAuth(username, password string) *Broker {
	b.Username = username
	b.Password = password
	return b
}

func (b *Broker) newRequest(method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/hal+json")
	req.Header.Set("X-Pact-Request-Id", uuid.New().String())
	if b.Username != "" {
		req.SetBasicAuth(b.Username, b.Password)
	}
	return req, nil
}

func (b *Broker) client() *http.Client {
	if b.Client != nil {
		return b.Client
	}
	return http.DefaultClient
}

// LatestPactsForProvider fetches the HAL document listing the latest
// pacts for a provider, optionally filtered to a single tag. Callers
// that need the HAL `_links`/`pb:pacts` entries get them back verbatim
// as an opaque map; this client doesn't walk them.
func (b *Broker) LatestPactsForProvider(provider, tag string) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/pacts/provider/%s/latest", b.BaseURL, provider)
	if tag != "" {
		url = fmt.Sprintf("%s/%s", url, tag)
	}
	req, err := b.newRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.client().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pact: broker returned %d fetching latest pacts for provider %q", resp.StatusCode, provider)
	}

	var doc map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("pact: broker response for provider %q was not valid JSON: %w", provider, err)
	}
	return doc, nil
}

// FetchPact retrieves one consumer's pact against a provider at a
// specific version and decodes it into this module's Pact type.
func (b *Broker) FetchPact(provider, consumer, version string) (*v3.Pact, error) {
	url := fmt.Sprintf("%s/pacts/provider/%s/consumer/%s/version/%s", b.BaseURL, provider, consumer, version)
	req, err := b.newRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.client().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pact: broker returned %d fetching pact for %s/%s@%s", resp.StatusCode, consumer, provider, version)
	}

	var raw interface{}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("pact: broker response for %s/%s@%s was not valid JSON: %w", consumer, provider, version, err)
	}
	plog.Debugf("broker - decoded pact between %s and %s", consumer, provider)
	return v3.PactFromJSON(raw), nil
}

// Publish PUTs a built pact's JSON to the broker under the given
// consumer application version.
func (b *Broker) Publish(pact *v3.Pact, consumerVersion string) error {
	url := fmt.Sprintf("%s/pacts/provider/%s/consumer/%s/version/%s",
		b.BaseURL, pact.Provider.Name, pact.Consumer.Name, consumerVersion)

	payload, err := json.Marshal(pact.ToJSON())
	if err != nil {
		return fmt.Errorf("pact: could not marshal pact for publishing: %w", err)
	}

	req, err := b.newRequest(http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("pact: broker returned %d publishing pact for %s/%s: %s", resp.StatusCode, pact.Consumer.Name, pact.Provider.Name, body)
	}
	plog.Debugf("broker - published pact between %s and %s", pact.Consumer.Name, pact.Provider.Name)
	return nil
}
