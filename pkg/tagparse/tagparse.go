package tagparse

import (
	"strings"
)

// Parse 解析标签输入文本，返回去重后的标签名列表
//
// 输入不含逗号时按空白分隔；含逗号时按逗号分隔，
// 标签名可以用双引号包裹（内部的双引号连写两个表示）。
// 每个标签名去掉首尾空白，空名称被丢弃，重复名称保留首次出现的顺序。
// 对任意输入都不会失败：未闭合的引号按字面内容处理。
func Parse(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var names []string
	if strings.Contains(raw, ",") {
		names = splitComma(raw)
	} else {
		names = strings.Fields(raw)
	}

	return dedup(names)
}

// Join 将标签名列表重组为规范的逗号分隔文本
//
// 名称中含有逗号或双引号时会用双引号包裹（内部双引号连写两个），
// 保证 Parse(Join(names)) 能还原出相同的标签名列表。
func Join(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		if strings.ContainsAny(name, `,"`) {
			name = `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
		}
		quoted = append(quoted, name)
	}
	return strings.Join(quoted, ", ")
}

// splitComma 按逗号分隔标签文本，处理双引号包裹的名称
func splitComma(raw string) []string {
	var (
		names    []string
		field    strings.Builder
		inQuotes bool
	)
	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case inQuotes && c == '"':
			// 连写的两个双引号表示一个字面双引号
			if i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
				continue
			}
			inQuotes = false
		case !inQuotes && c == '"':
			inQuotes = true
		case !inQuotes && c == ',':
			names = append(names, field.String())
			field.Reset()
		default:
			field.WriteRune(c)
		}
	}
	// 未闭合的引号：已累积的内容按字面处理
	names = append(names, field.String())
	return names
}

// dedup 去掉首尾空白、丢弃空名称、按首次出现顺序去重
func dedup(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}
