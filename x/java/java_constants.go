package java

// 语法树节点 Kind 常量，保持字符串统一
const (
	nodePackageDecl   = "package_declaration"
	nodeImportDecl    = "import_declaration"
	nodeClassDecl     = "class_declaration"
	nodeFieldDecl     = "field_declaration"
	nodeMethodDecl    = "method_declaration"
	nodeCtorDecl      = "constructor_declaration"
	nodeLocalVarDecl  = "local_variable_declaration"
	nodeModifiers     = "modifiers"
	nodeMarkerAnno    = "marker_annotation"
	nodeAnno          = "annotation"
	nodeLineComment   = "line_comment"
	nodeBlockComment  = "block_comment"
	nodeClassBody     = "class_body"
	nodeBlock         = "block"
	nodeTryStmt       = "try_statement"
	nodeTryWithRes    = "try_with_resources_statement"
	nodeCatchClause   = "catch_clause"
	nodeCatchParam    = "catch_formal_parameter"
	nodeThrowStmt     = "throw_statement"
	nodeExprStmt      = "expression_statement"
	nodeReturnStmt    = "return_statement"
	nodeMethodInvoke  = "method_invocation"
	nodeMethodRef     = "method_reference"
	nodeNewInstance   = "object_creation_expression"
	nodeBinaryExpr    = "binary_expression"
	nodeParenExpr     = "parenthesized_expression"
	nodeFieldAccess   = "field_access"
	nodeIdentifier    = "identifier"
	nodeFormalParams  = "formal_parameters"
	nodeFormalParam   = "formal_parameter"
	nodeSpreadParam   = "spread_parameter"
	nodeScopedIdent   = "scoped_identifier"
)

// 字面量节点 Kind -> 静态类型
var literalTypeTable = map[string]string{
	"string_literal":                 "java.lang.String",
	"character_literal":              "char",
	"decimal_integer_literal":        "int",
	"hex_integer_literal":            "int",
	"octal_integer_literal":          "int",
	"binary_integer_literal":         "int",
	"decimal_floating_point_literal": "double",
	"true":                           "boolean",
	"false":                          "boolean",
	"null_literal":                   "null",
}
