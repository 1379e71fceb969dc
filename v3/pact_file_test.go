package v3

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// buildBody walks a JsonPattern into its example body plus the V2 body
// matching rules that apply to it - the two things every interaction's
// JSON body ultimately needs.
func buildBody(pattern interface{}) (interface{}, map[string]interface{}) {
	cat := newCategory("body")
	ExtractMatchingRules(pattern, "$", cat)
	return ToExample(pattern), cat.toV2JSON()
}

func TestPactFile_like(t *testing.T) {
	body, rules := buildBody(map[string]interface{}{
		"id": Like(127),
	})

	assert.Equal(t, map[string]interface{}{"id": 127}, body)
	assert.Equal(t, map[string]interface{}{
		"$.body.id": ruleValue{"match": "type"},
	}, rules)
}

func TestPactFile_ArrayMinLike(t *testing.T) {
	body, rules := buildBody(map[string]interface{}{
		"users": ArrayMinLike(27, 3),
	})

	example := body.(map[string]interface{})
	users := example["users"].([]interface{})
	assert.Len(t, users, 3)
	assert.Equal(t, 27, users[0])

	assert.Equal(t, map[string]interface{}{
		"$.body.users": ruleValue{"match": "type", "min": 3},
	}, rules)
}

func TestPactFile_ArrayMinLikeWithNested(t *testing.T) {
	body, rules := buildBody(map[string]interface{}{
		"users": ArrayMinLike(map[string]interface{}{
			"user": Regex("someusername", `\s+`),
		}, 3),
	})

	example := body.(map[string]interface{})
	users := example["users"].([]interface{})
	assert.Len(t, users, 3)
	assert.Equal(t, map[string]interface{}{"user": "someusername"}, users[0])

	assert.Equal(t, map[string]interface{}{
		"$.body.users":         ruleValue{"match": "type", "min": 3},
		"$.body.users[*].user": ruleValue{"match": "regex", "regex": `\s+`},
	}, rules)
}
