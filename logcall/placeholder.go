package logcall

import "strings"

// --- 占位符矫正 (Placeholder Correction) ---
//
// 规范占位符为 %s。两类错误写法：花括号对 {}，以及 % 后接固定集合
// 中的转换字母。%% 是合法转义：单趟扫描遇到即整体跳过，因此既不会
// 被误改也不会被计数。

// CanonicalMarker 规范占位符。
const CanonicalMarker = "%s"

// conversionLetters 十进制/浮点/整数/八进制/布尔/十六进制大小写/
// 科学计数大小写/通用格式大小写。
const conversionLetters = "dfiobxXeEgG"

// HasIncorrect 文本中是否存在错误占位符。
func HasIncorrect(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] == '%' && i+1 < len(text) {
			next := text[i+1]
			if next == '%' {
				i++
				continue
			}
			if strings.IndexByte(conversionLetters, next) >= 0 {
				return true
			}
		}
		if text[i] == '{' && i+1 < len(text) && text[i+1] == '}' {
			return true
		}
	}
	return false
}

// Correct 将全部错误占位符替换为规范占位符，纯文本替换，幂等。
func Correct(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == '%' && i+1 < len(text) {
			next := text[i+1]
			if next == '%' {
				sb.WriteString("%%")
				i++
				continue
			}
			if strings.IndexByte(conversionLetters, next) >= 0 {
				sb.WriteString(CanonicalMarker)
				i++
				continue
			}
		}
		if text[i] == '{' && i+1 < len(text) && text[i+1] == '}' {
			sb.WriteString(CanonicalMarker)
			i++
			continue
		}
		sb.WriteByte(text[i])
	}
	return sb.String()
}

// Count 统计规范占位符个数，%% 转义整体跳过。
func Count(text string) int {
	count := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '%' || i+1 >= len(text) {
			continue
		}
		switch text[i+1] {
		case '%':
			i++
		case 's':
			count++
			i++
		}
	}
	return count
}
