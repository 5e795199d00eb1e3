package java

// --- Java 内置类型表 ---
//
// 默认隐式导入的 java.lang 核心类与常用类型；异常类附带父链，
// 供可赋值性判定使用。未命中的简单名保持原样（匹配端容忍简单名）。

type builtinType struct {
	QN     string
	Supers []string
}

var throwableChain = []string{"java.lang.Throwable"}
var exceptionChain = []string{"java.lang.Exception", "java.lang.Throwable"}
var runtimeChain = []string{"java.lang.RuntimeException", "java.lang.Exception", "java.lang.Throwable"}

var builtinTable = map[string]builtinType{
	// === java.lang 核心类 ===
	"String":        {QN: "java.lang.String", Supers: []string{"java.lang.CharSequence", "java.lang.Object"}},
	"Object":        {QN: "java.lang.Object"},
	"System":        {QN: "java.lang.System"},
	"Integer":       {QN: "java.lang.Integer", Supers: []string{"java.lang.Number"}},
	"Long":          {QN: "java.lang.Long", Supers: []string{"java.lang.Number"}},
	"Double":        {QN: "java.lang.Double", Supers: []string{"java.lang.Number"}},
	"Float":         {QN: "java.lang.Float", Supers: []string{"java.lang.Number"}},
	"Boolean":       {QN: "java.lang.Boolean"},
	"Character":     {QN: "java.lang.Character"},
	"Number":        {QN: "java.lang.Number"},
	"StringBuilder": {QN: "java.lang.StringBuilder", Supers: []string{"java.lang.CharSequence"}},
	"StringBuffer":  {QN: "java.lang.StringBuffer", Supers: []string{"java.lang.CharSequence"}},
	"CharSequence":  {QN: "java.lang.CharSequence"},
	"Thread":        {QN: "java.lang.Thread"},
	"Class":         {QN: "java.lang.Class"},

	// === 异常体系 (父链用于可赋值性判定) ===
	"Throwable":                     {QN: "java.lang.Throwable"},
	"Exception":                     {QN: "java.lang.Exception", Supers: throwableChain},
	"Error":                         {QN: "java.lang.Error", Supers: throwableChain},
	"RuntimeException":              {QN: "java.lang.RuntimeException", Supers: exceptionChain},
	"NullPointerException":          {QN: "java.lang.NullPointerException", Supers: runtimeChain},
	"IllegalArgumentException":      {QN: "java.lang.IllegalArgumentException", Supers: runtimeChain},
	"IllegalStateException":         {QN: "java.lang.IllegalStateException", Supers: runtimeChain},
	"IndexOutOfBoundsException":     {QN: "java.lang.IndexOutOfBoundsException", Supers: runtimeChain},
	"UnsupportedOperationException": {QN: "java.lang.UnsupportedOperationException", Supers: runtimeChain},
	"IOException":                   {QN: "java.io.IOException", Supers: exceptionChain},
	"FileNotFoundException":         {QN: "java.io.FileNotFoundException", Supers: append([]string{"java.io.IOException"}, exceptionChain...)},
	"InterruptedException":          {QN: "java.lang.InterruptedException", Supers: exceptionChain},
	"SQLException":                  {QN: "java.sql.SQLException", Supers: exceptionChain},

	// === java.util 高频类型 ===
	"List":      {QN: "java.util.List"},
	"ArrayList": {QN: "java.util.ArrayList", Supers: []string{"java.util.List"}},
	"Map":       {QN: "java.util.Map"},
	"HashMap":   {QN: "java.util.HashMap", Supers: []string{"java.util.Map"}},
	"Set":       {QN: "java.util.Set"},
	"Optional":  {QN: "java.util.Optional"},
	"Objects":   {QN: "java.util.Objects"},
	"UUID":      {QN: "java.util.UUID"},
}

var primitiveTypes = map[string]bool{
	"int": true, "long": true, "short": true, "byte": true,
	"char": true, "boolean": true, "float": true, "double": true, "void": true,
}
