package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDelayUntil(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 20*time.Hour, delayUntil(now, "20:00:00", "UTC"))
	assert.Equal(t, 9*time.Hour+30*time.Minute, delayUntil(now, "09:30:00", "UTC"))

	// 已过点立即投递
	late := time.Date(2024, 3, 10, 21, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Duration(0), delayUntil(late, "20:00:00", "UTC"))

	// 东京 20:00 等于 UTC 11:00
	assert.Equal(t, 11*time.Hour, delayUntil(now, "20:00:00", "Asia/Tokyo"))

	// 未知时区回退 UTC
	assert.Equal(t, 20*time.Hour, delayUntil(now, "20:00:00", "Mars/Olympus"))
}
