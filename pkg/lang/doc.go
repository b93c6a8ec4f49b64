// Package lang 提供标签语言的枚举和解析
//
// 每种语言由一个稳定的整数编码和一个名称组成（Choice）。
// 存储层只保存整数编码；API 层可以用编码或名称表示语言。
//
// 使用示例：
//
//	// 按编码解析
//	choice, err := lang.FromCode(3)
//	// choice: {3 pl}
//
//	// 按名称解析
//	choice, err = lang.FromName("pl")
//
//	// 解析任意形式的语言值（int / Choice / string 名称）
//	code, err := lang.Resolve("en_gb")
//	// code: 2
//
// 无法识别的语言返回 ErrUnknownLanguage。
package lang
