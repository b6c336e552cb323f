package utils

const FormatTime_specific = "2006-01-02 15:04:05"

// IsDigits 搜索词是否为纯数字(是的话额外做题号精确匹配)
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
