package convert

import (
	"github.com/jinzhu/copier"
)

// StructAssign 把 src 中与 dst 同名的字段值复制到 dst
// 可互相转换的类型（如 timex.Time 与 time.Time、枚举与 int）会自动转换
func StructAssign(src any, dst any) any {
	copier.Copy(dst, src)
	return dst
}
