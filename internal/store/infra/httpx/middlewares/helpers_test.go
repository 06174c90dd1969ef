package middlewares_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func jsonField(t *testing.T, body []byte, key string) string {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	return string(m[key])
}
