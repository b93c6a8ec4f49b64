// Package tagparse 提供标签输入文本的解析和规范化
//
// 用户输入的标签文本支持两种分隔方式：
//   - 输入中不含逗号时，按空白分隔（空格分隔的标签，不支持转义）
//   - 输入中含有逗号时，按逗号分隔；标签名可以用双引号包裹，
//     以便在名称中包含逗号、空格或字面双引号（双引号通过连写两个表示）
//
// 解析结果中每个标签名都会去掉首尾空白，空名称被丢弃，
// 重复名称只保留第一次出现的位置。
//
// 使用示例：
//
//	// 空格分隔
//	names := tagparse.Parse("red blue green")
//	// names: ["red", "blue", "green"]
//
//	// 逗号分隔 + 引号转义
//	names = tagparse.Parse(`"co za asy", wtf`)
//	// names: ["co za asy", "wtf"]
//
//	// 规范化重组（逗号连接，必要时加引号）
//	text := tagparse.Join(names)
//	// text: `co za asy, wtf`
//
// Parse 永远不会返回错误：未闭合的引号按字面内容处理，
// 因为输入来自用户，解析必须对任意文本保持健壮。
package tagparse
