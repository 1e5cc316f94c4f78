// Package dateint 提供 YYYYMMDD 整数日期键的编解码。
// 按天分组和相等比较都走整数，避免时间戳字符串在时区上的歧义。
package dateint

import (
	"fmt"
	"time"
)

// 合法整数日期的范围，年份必须是 4 位
const (
	minDateInt = 1000_01_01
	maxDateInt = 9999_12_31
)

// FromDate 把日期的本地日历字段编码为 YYYYMMDD 整数。
// 不做任何时区转换，取的是 t 所在 Location 的年月日。
func FromDate(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

// ToDate 把 YYYYMMDD 整数还原为 loc 时区的当天零点。
// loc 为 nil 时使用 time.Local。
// 非法的年份位数或越界的月/日直接报错，绝不静默截断。
func ToDate(n int, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	if n < minDateInt || n > maxDateInt {
		return time.Time{}, fmt.Errorf("dateint: %d is not a valid YYYYMMDD value", n)
	}

	year := n / 10000
	month := n / 100 % 100
	day := n % 100

	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("dateint: %d has invalid month %02d", n, month)
	}
	if day < 1 || day > daysIn(year, time.Month(month)) {
		return time.Time{}, fmt.Errorf("dateint: %d has invalid day %02d", n, day)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc), nil
}

// Today 返回 now 所在日历日的整数键。
func Today(now time.Time) int {
	return FromDate(now)
}

func daysIn(year int, month time.Month) int {
	// 下个月的第 0 天即本月最后一天
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
