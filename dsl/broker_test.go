package dsl

import (
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const brokerUser = "pactuser"
const brokerPass = "pact"

// checkAuth validates HTTP Basic credentials against the fixed
// broker user/pass this mock expects.
func checkAuth(w http.ResponseWriter, r *http.Request) bool {
	user, pass, ok := r.BasicAuth()
	return ok && user == brokerUser && pass == brokerPass
}

const mockConsumerPact = `{"consumer":{"name":"billy"},"provider":{"name":"bobby"},"interactions":[{"description":"Some name for the test","provider_state":"Some state","request":{"method":"GET","path":"/foobar"},"response":{"status":200,"headers":{"Content-Type":"application/json"}}},{"description":"Some name for the test","provider_state":"Some state2","request":{"method":"GET","path":"/bazbat"},"response":{"status":200,"headers":{},"body":[[{"colour":"red","size":10,"tag":[["jumper","shirt"],["jumper","shirt"]]}]],"matchingRules":{"$.body":{"min":1},"$.body[*].*":{"match":"type"},"$.body[*]":{"min":1},"$.body[*][*].*":{"match":"type"},"$.body[*][*].colour":{"match":"regex","regex":"red|green|blue"},"$.body[*][*].size":{"match":"type"},"$.body[*][*].tag":{"min":2},"$.body[*][*].tag[*].*":{"match":"type"},"$.body[*][*].tag[*][0]":{"match":"type"},"$.body[*][*].tag[*][1]":{"match":"type"}}}}],"metadata":{"pactSpecificationVersion":"2.0.0"}}`

// Pretend to be a Broker for fetching Pacts
func setupMockBroker(auth bool) *httptest.Server {
	mux := http.NewServeMux()
	var authFunc func(inner http.HandlerFunc) http.HandlerFunc

	if auth {
		authFunc = func(inner http.HandlerFunc) http.HandlerFunc {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if checkAuth(w, r) {
					log.Println("[DEBUG] broker - authenticated!")
					inner.ServeHTTP(w, r)
					return
				}

				w.Header().Set("WWW-Authenticate", `Basic realm="Broker Authentication Required"`)
				w.WriteHeader(401)
				w.Write([]byte("401 Unauthorized\n")) // nolint:errcheck
			})
		}
	} else {
		authFunc = func(inner http.HandlerFunc) http.HandlerFunc {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				log.Println("[DEBUG] broker - no authentication")
				inner.ServeHTTP(w, r)
			})
		}
	}

	server := httptest.NewServer(mux)

	// Find latest 'bobby' consumers (no tag)
	mux.HandleFunc("/pacts/provider/bobby/latest", authFunc(func(w http.ResponseWriter, req *http.Request) {
		log.Println("[DEBUG] get pacts for provider 'bobby'")
		fmt.Fprintf(w, `{"_links":{"self":{"href":"%s/pacts/provider/bobby/latest","title":"Latest pact versions for the provider bobby"},"pb:pacts":[{"href":"%s/pacts/provider/bobby/consumer/jessica/version/2.0.0","title":"Pact between jessica (v2.0.0) and bobby","name":"jessica"}]}}`, server.URL, server.URL)
		w.Header().Add("Content-Type", "application/hal+json")
	}))

	// Find 'bobby' consumers for tag 'dev'
	mux.Handle("/pacts/provider/bobby/latest/dev", authFunc(func(w http.ResponseWriter, req *http.Request) {
		log.Println("[DEBUG] get all pacts for provider 'bobby' where the tag 'dev' exists")
		fmt.Fprintf(w, `{"_links":{"self":{"href":"%s/pacts/provider/bobby/latest/dev","title":"Latest pact versions for the provider bobby with tag 'dev'"},"pb:pacts":[{"href":"%s/pacts/provider/loginprovider/consumer/jmarie/version/1.0.1","title":"Pact between billy (v1.0.1) and bobby","name":"billy"}]}}`, server.URL, server.URL)
		w.Header().Add("Content-Type", "application/hal+json")
	}))

	// Broken response
	mux.Handle("/pacts/provider/bobby/latest/broken", authFunc(func(w http.ResponseWriter, req *http.Request) {
		log.Println("[DEBUG] broken broker")
		fmt.Fprintf(w, `broken response`)
		w.Header().Add("Content-Type", "application/hal+json")
	}))

	// 50x response
	mux.Handle("/pacts/provider/broken/latest", authFunc(func(w http.ResponseWriter, req *http.Request) {
		log.Println("[DEBUG] broker 50x response")
		w.WriteHeader(500)
		w.Write([]byte("500 Server Error\n")) // nolint:errcheck
	}))

	// Actual Consumer Pact - any version under this consumer
	mux.Handle("/pacts/provider/loginprovider/consumer/jmarie/version/", authFunc(func(w http.ResponseWriter, req *http.Request) {
		log.Println("[DEBUG] get pact for billy/bobby")
		fmt.Fprint(w, mockConsumerPact)
		w.Header().Add("Content-Type", "application/json")
	}))

	// Publish target
	mux.Handle("/pacts/provider/bobby/consumer/billy/version/", authFunc(func(w http.ResponseWriter, req *http.Request) {
		log.Println("[DEBUG] published pact for billy/bobby")
		w.WriteHeader(http.StatusCreated)
	}))

	return server
}

func TestBroker_LatestPactsForProvider(t *testing.T) {
	server := setupMockBroker(false)
	defer server.Close()

	broker := NewBroker(server.URL)
	doc, err := broker.LatestPactsForProvider("bobby", "")
	assert.NoError(t, err)
	assert.NotNil(t, doc["_links"])
}

func TestBroker_LatestPactsForProviderWithTag(t *testing.T) {
	server := setupMockBroker(false)
	defer server.Close()

	broker := NewBroker(server.URL)
	doc, err := broker.LatestPactsForProvider("bobby", "dev")
	assert.NoError(t, err)
	assert.NotNil(t, doc["_links"])
}

func TestBroker_LatestPactsForProviderRequiresAuth(t *testing.T) {
	server := setupMockBroker(true)
	defer server.Close()

	broker := NewBroker(server.URL)
	_, err := broker.LatestPactsForProvider("bobby", "")
	assert.Error(t, err)

	authed := NewBroker(server.URL).WithAuth(brokerUser, brokerPass)
	doc, err := authed.LatestPactsForProvider("bobby", "")
	assert.NoError(t, err)
	assert.NotNil(t, doc["_links"])
}

func TestBroker_LatestPactsForProviderBrokenResponse(t *testing.T) {
	server := setupMockBroker(false)
	defer server.Close()

	broker := NewBroker(server.URL)
	_, err := broker.LatestPactsForProvider("bobby", "broken")
	assert.Error(t, err)
}

func TestBroker_LatestPactsForProviderServerError(t *testing.T) {
	server := setupMockBroker(false)
	defer server.Close()

	broker := NewBroker(server.URL)
	_, err := broker.LatestPactsForProvider("broken", "")
	assert.Error(t, err)
}

func TestBroker_FetchPact(t *testing.T) {
	server := setupMockBroker(false)
	defer server.Close()

	broker := NewBroker(server.URL)
	pact, err := broker.FetchPact("loginprovider", "jmarie", "1.0.0")
	assert.NoError(t, err)
	assert.Equal(t, "billy", pact.Consumer.Name)
	assert.Equal(t, "bobby", pact.Provider.Name)
	assert.Len(t, pact.Interactions, 2)
}

func TestBroker_Publish(t *testing.T) {
	server := setupMockBroker(false)
	defer server.Close()

	broker := NewBroker(server.URL)
	pact, err := broker.FetchPact("loginprovider", "jmarie", "1.0.0")
	assert.NoError(t, err)

	err = broker.Publish(pact, "1.0.0")
	assert.NoError(t, err)
}
