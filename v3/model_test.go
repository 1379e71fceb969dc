package v3

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockBrokerPact mirrors the fixture served by the broker's mock HTTP
// handlers: a V2 pact between "billy" and "bobby" with a nested-array
// body and several matching rules.
const mockBrokerPact = `{
	"consumer": {"name": "billy"},
	"provider": {"name": "bobby"},
	"interactions": [
		{
			"description": "Some name for the test",
			"provider_state": "Some state",
			"request": {"method": "GET", "path": "/foobar"},
			"response": {"status": 200, "headers": {"Content-Type": "application/json"}}
		},
		{
			"description": "Some name for the test",
			"provider_state": "Some state2",
			"request": {"method": "GET", "path": "/bazbat"},
			"response": {
				"status": 200,
				"headers": {},
				"body": [[{"colour": "red", "size": 10, "tag": [["jumper", "shirt"], ["jumper", "shirt"]]}]],
				"matchingRules": {
					"$.body": {"min": 1},
					"$.body[*].*": {"match": "type"},
					"$.body[*]": {"min": 1},
					"$.body[*][*].*": {"match": "type"},
					"$.body[*][*].colour": {"match": "regex", "regex": "red|green|blue"},
					"$.body[*][*].size": {"match": "type"},
					"$.body[*][*].tag": {"min": 2},
					"$.body[*][*].tag[*].*": {"match": "type"},
					"$.body[*][*].tag[*][0]": {"match": "type"},
					"$.body[*][*].tag[*][1]": {"match": "type"}
				}
			}
		}
	],
	"metadata": {"pactSpecificationVersion": "2.0.0"}
}`

func TestPactFromJSONDecodesMockBrokerFixture(t *testing.T) {
	var doc interface{}
	assert.NoError(t, json.Unmarshal([]byte(mockBrokerPact), &doc))

	pact := PactFromJSON(doc)

	assert.Equal(t, "billy", pact.Consumer.Name)
	assert.Equal(t, "bobby", pact.Provider.Name)
	assert.Equal(t, V2, pact.SpecVersion)
	assert.Len(t, pact.Interactions, 2)

	first := pact.Interactions[0]
	assert.Equal(t, "Some name for the test", first.Description)
	assert.Equal(t, "Some state", first.ProviderState)
	assert.Equal(t, "GET", first.Request.Method)
	assert.Equal(t, "/foobar", first.Request.Path)
	assert.Equal(t, 200, first.Response.Status)
	assert.Equal(t, "application/json", first.Response.Headers["Content-Type"])

	second := pact.Interactions[1]
	rules, ok := second.Response.Rules.RulesForCategory("body")
	assert.True(t, ok)
	rl, ok := rules.RulesFor("$[*][*].colour")
	assert.True(t, ok)
	assert.Equal(t, []MatchingRule{RegexRule("red|green|blue")}, rl.Rules)

	rl, ok = rules.RulesFor("$[*][*].tag")
	assert.True(t, ok)
	assert.Equal(t, []MatchingRule{MinTypeRule(2)}, rl.Rules)
}

func TestRequestToJSONRoundTrip(t *testing.T) {
	req := newRequest()
	req.Method = "POST"
	req.Path = "/things"
	req.Headers = map[string]string{"Content-Type": "application/json"}
	req.Body = map[string]interface{}{"id": float64(1)}
	cat := req.Rules.AddCategory("body")
	cat.AddRule("$.id", TypeRule(), And)

	wire := req.ToJSON(V3)
	reloaded := RequestFromJSON(wire)

	assert.Equal(t, req.Method, reloaded.Method)
	assert.Equal(t, req.Path, reloaded.Path)
	assert.Equal(t, req.Headers, reloaded.Headers)
	assert.Equal(t, req.Body, reloaded.Body)
	body, ok := reloaded.Rules.RulesForCategory("body")
	assert.True(t, ok)
	rl, ok := body.RulesFor("$.id")
	assert.True(t, ok)
	assert.Equal(t, []MatchingRule{TypeRule()}, rl.Rules)
}

func TestResponseToJSONOmitsEmptyFields(t *testing.T) {
	resp := newResponse()
	resp.Status = 204

	wire := resp.ToJSON(V3)
	_, hasHeaders := wire["headers"]
	_, hasBody := wire["body"]
	_, hasRules := wire["matchingRules"]
	assert.False(t, hasHeaders)
	assert.False(t, hasBody)
	assert.False(t, hasRules)
	assert.Equal(t, 204, wire["status"])
}

func TestSpecVersionFromMetadata(t *testing.T) {
	assert.Equal(t, V2, specVersionFromMetadata(map[string]interface{}{"pactSpecificationVersion": "2.0.0"}))
	assert.Equal(t, V3, specVersionFromMetadata(map[string]interface{}{"pactSpecificationVersion": "3.0.0"}))
	assert.Equal(t, V2, specVersionFromMetadata(map[string]interface{}{
		"pactSpecification": map[string]interface{}{"version": "2.0.0"},
	}))
	assert.Equal(t, V3, specVersionFromMetadata(map[string]interface{}{}))
}

func TestParseQueryBothShapes(t *testing.T) {
	v2 := parseQuery("a=1&b=2")
	assert.Equal(t, []string{"1"}, v2["a"])
	assert.Equal(t, []string{"2"}, v2["b"])

	v3 := parseQuery(map[string]interface{}{
		"a": []interface{}{"1", "2"},
		"b": "3",
	})
	assert.Equal(t, []string{"1", "2"}, v3["a"])
	assert.Equal(t, []string{"3"}, v3["b"])
}

func TestPactToJSONThenFromJSON(t *testing.T) {
	pact := &Pact{
		Consumer:    Consumer{Name: "consumer"},
		Provider:    Provider{Name: "provider"},
		SpecVersion: V3,
		Metadata: map[string]interface{}{
			"pactSpecification": map[string]interface{}{"version": "3.0.0"},
		},
	}
	interaction := &Interaction{
		Description: "a request",
		Request:     newRequest(),
		Response:    newResponse(),
	}
	interaction.Request.Method = "GET"
	interaction.Request.Path = "/x"
	interaction.Response.Status = 200
	pact.Interactions = append(pact.Interactions, interaction)

	reloaded := PactFromJSON(pact.ToJSON())
	assert.Equal(t, pact.Consumer, reloaded.Consumer)
	assert.Equal(t, pact.Provider, reloaded.Provider)
	assert.Equal(t, V3, reloaded.SpecVersion)
	assert.Len(t, reloaded.Interactions, 1)
	assert.Equal(t, "a request", reloaded.Interactions[0].Description)
}
