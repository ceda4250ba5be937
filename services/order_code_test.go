package services

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCodePattern = regexp.MustCompile(`^ORD-[A-Z0-9]+-[A-Z0-9]{4}$`)

func TestNewOrderCode_Format(t *testing.T) {
	for i := 0; i < 200; i++ {
		code := NewOrderCode()
		assert.Regexp(t, orderCodePattern, code)
	}
}

func TestOrderCodeAt_EncodesMillis(t *testing.T) {
	at := time.UnixMilli(1_768_000_000_123)
	code := orderCodeAt(at)

	parts := strings.Split(code, "-")
	require.Len(t, parts, 3)
	millis, err := strconv.ParseInt(strings.ToLower(parts[1]), 36, 64)
	require.NoError(t, err)
	assert.Equal(t, at.UnixMilli(), millis)
}
