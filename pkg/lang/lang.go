package lang

import (
	"errors"
	"fmt"
)

// ErrUnknownLanguage 无法识别的语言编码或名称
var ErrUnknownLanguage = errors.New("unknown language")

// Choice 一种语言的枚举项
type Choice struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// 语言编码表
// 编码一旦分配就不能改变（已持久化到存储层）
var (
	En   = Choice{ID: 1, Name: "en"}
	EnGB = Choice{ID: 2, Name: "en_gb"}
	Pl   = Choice{ID: 3, Name: "pl"}
	De   = Choice{ID: 4, Name: "de"}
	Fr   = Choice{ID: 5, Name: "fr"}
	Es   = Choice{ID: 6, Name: "es"}
	It   = Choice{ID: 7, Name: "it"}
	Ja   = Choice{ID: 8, Name: "ja"}
	ZhCN = Choice{ID: 9, Name: "zh_cn"}
	Ru   = Choice{ID: 10, Name: "ru"}
)

// Choices 所有已知语言，按编码排序
var Choices = []Choice{En, EnGB, Pl, De, Fr, Es, It, Ja, ZhCN, Ru}

var (
	byCode = make(map[int]Choice, len(Choices))
	byName = make(map[string]Choice, len(Choices))
)

func init() {
	for _, c := range Choices {
		byCode[c.ID] = c
		byName[c.Name] = c
	}
}

// FromCode 按整数编码查找语言
func FromCode(code int) (Choice, error) {
	c, ok := byCode[code]
	if !ok {
		return Choice{}, fmt.Errorf("%w: code %d", ErrUnknownLanguage, code)
	}
	return c, nil
}

// FromName 按名称查找语言
func FromName(name string) (Choice, error) {
	c, ok := byName[name]
	if !ok {
		return Choice{}, fmt.Errorf("%w: name %q", ErrUnknownLanguage, name)
	}
	return c, nil
}

// Resolve 将任意形式的语言值解析为整数编码
//
// 接受整数编码、Choice 或语言名称字符串。
// 其他类型或无法识别的值返回 ErrUnknownLanguage。
func Resolve(v any) (int, error) {
	switch lv := v.(type) {
	case int:
		if _, err := FromCode(lv); err != nil {
			return 0, err
		}
		return lv, nil
	case float64:
		// JSON 数字解码为 float64
		code := int(lv)
		if float64(code) != lv {
			return 0, fmt.Errorf("%w: non-integer code %v", ErrUnknownLanguage, lv)
		}
		if _, err := FromCode(code); err != nil {
			return 0, err
		}
		return code, nil
	case Choice:
		if _, err := FromCode(lv.ID); err != nil {
			return 0, err
		}
		return lv.ID, nil
	case string:
		c, err := FromName(lv)
		if err != nil {
			return 0, err
		}
		return c.ID, nil
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrUnknownLanguage, v)
	}
}
