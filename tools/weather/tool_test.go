package weather

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoke(t *testing.T) {
	tool := New("")
	assert.Equal(t, "weather", tool.Name())
	out, err := tool.Invoke(context.Background(), " Paris ")
	require.NoError(t, err)
	assert.Equal(t, "Weather tool is available but requires API configuration for location: Paris. Use web_search for current weather information instead.", out)

	out, err = tool.Invoke(context.Background(), "")
	require.NoError(t, err)
	assert.Contains(t, out, "an unspecified location")
}
