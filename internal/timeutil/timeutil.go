package timeutil

import "time"

// 部门约定统一使用北京时间（UTC+8）记录业务时间
var beijing = time.FixedZone("CST", 8*3600)

// NowBeijing 获取北京时间当前时刻
func NowBeijing() time.Time {
	return time.Now().In(beijing)
}

// NowBeijingStr 获取北京时间字符串，格式 YYYY-MM-DD HH:MM:SS
func NowBeijingStr() string {
	return NowBeijing().Format("2006-01-02 15:04:05")
}

// NowBeijingISO 获取北京时间 ISO 字符串
func NowBeijingISO() string {
	return NowBeijing().Format(time.RFC3339)
}
