package util

import (
	"fmt"
	"strings"
)

// 条目地址格式为 "root:/a/b/c:"，冒号之间是扁平化的条目名称。
// 前缀带 "/*" 后缀表示列出该路径下一层的子条目。

const addressPrefix = "root:"

// ParseAddress 将 "root:/a/b/c:" 形式的地址解析为扁平名称。
// 返回名称与是否为一层通配查询。不带 root: 前缀的输入按原样作为名称处理。
func ParseAddress(addr string) (name string, wildcard bool, err error) {
	name = addr
	if strings.HasPrefix(addr, addressPrefix) {
		if !strings.HasSuffix(addr, ":") {
			return "", false, fmt.Errorf("malformed item address: %q", addr)
		}
		name = strings.TrimSuffix(strings.TrimPrefix(addr, addressPrefix), ":")
		name = strings.TrimPrefix(name, "/")
	}
	if strings.HasSuffix(name, "/*") {
		return strings.TrimSuffix(name, "/*"), true, nil
	}
	if name == "*" {
		return "", true, nil
	}
	return name, false, nil
}

// FormatAddress 将扁平名称还原为 "root:/a/b/c:" 形式的地址
func FormatAddress(name string) string {
	return addressPrefix + "/" + name + ":"
}

// IsTopLevelName 判断名称是否为顶层条目（不含路径分隔符）
func IsTopLevelName(name string) bool {
	return name != "" && !strings.Contains(name, "/")
}

// ChildDepthOK 判断 name 是否为 prefix 的下一层子条目
func ChildDepthOK(prefix, name string) bool {
	if prefix == "" {
		return IsTopLevelName(name)
	}
	if !strings.HasPrefix(name, prefix+"/") {
		return false
	}
	rest := name[len(prefix)+1:]
	return rest != "" && !strings.Contains(rest, "/")
}
