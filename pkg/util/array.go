package util

// Inarray 检查字符串是否在切片中
func Inarray(arr []string, v string) bool {
	for _, item := range arr {
		if item == v {
			return true
		}
	}
	return false
}
