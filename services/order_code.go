package services

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderCode returns "ORD-" + base36(unix millis) + "-" + four random
// base36 characters, upper-cased.
func NewOrderCode() string {
	return orderCodeAt(time.Now())
}

func orderCodeAt(t time.Time) string {
	var b strings.Builder
	b.WriteString("ORD-")
	b.WriteString(strings.ToUpper(strconv.FormatInt(t.UnixMilli(), 36)))
	b.WriteByte('-')
	for i := 0; i < 4; i++ {
		b.WriteByte(base36[rand.IntN(len(base36))])
	}
	return b.String()
}
