package framework

import (
	"fmt"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ParseJSONBody parses a response body. The second return value is false if the body is
// empty or is not valid JSON.
func ParseJSONBody(body []byte) (ldvalue.Value, bool) {
	if len(body) == 0 || !json.Valid(body) {
		return ldvalue.Null(), false
	}
	return ldvalue.Parse(body), true
}

// MatchJSONLike checks that actual contains everything in expected. Objects match if every
// property of the expected object is present in the actual object and matches it, ignoring
// any other properties. Arrays match if every expected element matches some element of the
// actual array, in any order. Anything else must be equal.
//
// The returned error describes the first mismatch found, with a path such as "$.errors[0].msg".
func MatchJSONLike(expected, actual ldvalue.Value) error {
	return matchLike("$", expected, actual)
}

func matchLike(path string, expected, actual ldvalue.Value) error {
	switch expected.Type() {
	case ldvalue.ObjectType:
		if actual.Type() != ldvalue.ObjectType {
			return fmt.Errorf("at %s: expected an object but got %s", path, describeValue(actual))
		}
		actualKeys := make(map[string]bool)
		for _, k := range actual.Keys() {
			actualKeys[k] = true
		}
		for _, k := range sortedKeys(expected) {
			keyPath := path + "." + k
			if !actualKeys[k] {
				return fmt.Errorf("at %s: property is missing", keyPath)
			}
			if err := matchLike(keyPath, expected.GetByKey(k), actual.GetByKey(k)); err != nil {
				return err
			}
		}
		return nil

	case ldvalue.ArrayType:
		if actual.Type() != ldvalue.ArrayType {
			return fmt.Errorf("at %s: expected an array but got %s", path, describeValue(actual))
		}
		for i := 0; i < expected.Count(); i++ {
			e := expected.GetByIndex(i)
			found := false
			for j := 0; j < actual.Count(); j++ {
				if matchLike(path+"["+strconv.Itoa(j)+"]", e, actual.GetByIndex(j)) == nil {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("at %s: no element matches %s, array was %s", path, e.JSONString(), actual.JSONString())
			}
		}
		return nil

	default:
		if !expected.Equal(actual) {
			return fmt.Errorf("at %s: expected %s but got %s", path, expected.JSONString(), describeValue(actual))
		}
		return nil
	}
}

// MatchBody checks that a response body is exactly equal to the expected value. If the body
// is JSON, it is compared structurally, so a JSON string body "abc" equals ldvalue.String("abc").
// Otherwise the body text must equal the expected value, which must be a string.
func MatchBody(expected ldvalue.Value, body []byte) error {
	if actual, ok := ParseJSONBody(body); ok {
		if !expected.Equal(actual) {
			return fmt.Errorf("expected body %s but got %s", expected.JSONString(), actual.JSONString())
		}
		return nil
	}
	if expected.Type() != ldvalue.StringType {
		return fmt.Errorf("expected JSON body %s but got non-JSON body %q", expected.JSONString(), string(body))
	}
	if expected.StringValue() != string(body) {
		return fmt.Errorf("expected body %q but got %q", expected.StringValue(), string(body))
	}
	return nil
}

func sortedKeys(v ldvalue.Value) []string {
	keys := append([]string(nil), v.Keys()...)
	sort.Strings(keys)
	return keys
}

func describeValue(v ldvalue.Value) string {
	return fmt.Sprintf("%s %s", v.Type(), v.JSONString())
}
