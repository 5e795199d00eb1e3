package model

// --- 语法树节点类型 (Tree Node Kinds) ---

// NodeKind 是约定树中节点类型的字符串常量。
// 封闭集合：各组件通过 switch 穷举匹配，避免运行时类型测试链。
type NodeKind string

const (
	KindClassDecl       NodeKind = "CLASS_DECL"        // 类声明
	KindMethodDecl      NodeKind = "METHOD_DECL"       // 方法/构造器声明
	KindFieldDecl       NodeKind = "FIELD_DECL"        // 字段声明
	KindTryStmt         NodeKind = "TRY_STMT"          // try 语句
	KindCatchClause     NodeKind = "CATCH_CLAUSE"      // catch 子句
	KindThrowStmt       NodeKind = "THROW_STMT"        // throw 语句
	KindNewInstanceExpr NodeKind = "NEW_INSTANCE_EXPR" // 对象构造表达式
	KindCallExpr        NodeKind = "CALL_EXPR"         // 方法调用
	KindBinaryExpr      NodeKind = "BINARY_EXPR"       // 二元表达式
	KindLiteral         NodeKind = "LITERAL"           // 字面量
	KindIdentifier      NodeKind = "IDENTIFIER"        // 标识符
	KindMemberAccess    NodeKind = "MEMBER_ACCESS"     // 成员访问 (a.b)
	KindMethodRef       NodeKind = "METHOD_REF"        // 方法引用 (a::b)
	KindBlock           NodeKind = "BLOCK"             // 普通语句块 (不参与约定判定)
)

// Location 描述节点在源码中的位置
type Location struct {
	FilePath    string `json:"FilePath"`
	StartLine   int    `json:"StartLine"`
	EndLine     int    `json:"EndLine"`
	StartColumn int    `json:"StartColumn"`
	EndColumn   int    `json:"EndColumn"`
}

// Comment 一条前导注释。Text 保留原始文本（含 // 或 /* */ 定界符），
// 渲染归一化交由消费方的 render 函数处理。
type Comment struct {
	Text string `json:"Text"`
	Line int    `json:"Line,omitempty"`
}

// Annotation 声明上的前导注解。注解自身可携带前导注释：
// 人工书写的指令常被首个注解"吞掉"，定位器需要回查这里。
type Annotation struct {
	Name            string     `json:"Name"`
	LeadingComments []*Comment `json:"LeadingComments,omitempty"`
}

// TreeNode 约定树节点。单结构体 + Kind 标签的封闭变体：
// 不同 Kind 只使用其相关字段，其余保持零值。
type TreeNode struct {
	ID   int64    `json:"ID"`
	Kind NodeKind `json:"Kind"`

	// Name 按 Kind 取义：声明的简单名 / 标识符文本 / 被调方法名。
	// FieldDecl 取首个声明的字段名。
	Name string `json:"Name,omitempty"`

	LeadingComments []*Comment    `json:"LeadingComments,omitempty"`
	Annotations     []*Annotation `json:"Annotations,omitempty"`

	// BodyComments 仅 ClassDecl：类体起始处的注释（第三个附着点）。
	BodyComments []*Comment `json:"BodyComments,omitempty"`

	// Children 容器成员：类成员、方法/块语句、try 的块与 catch 子句。
	Children []*TreeNode `json:"Children,omitempty"`

	Receiver *TreeNode   `json:"Receiver,omitempty"` // CallExpr / MemberAccess / MethodRef
	Args     []*TreeNode `json:"Args,omitempty"`     // CallExpr / NewInstanceExpr

	Left  *TreeNode `json:"Left,omitempty"`  // BinaryExpr
	Right *TreeNode `json:"Right,omitempty"` // BinaryExpr
	Op    string    `json:"Op,omitempty"`    // BinaryExpr 运算符

	Value string `json:"Value,omitempty"` // Literal 原文 (字符串字面量含引号)

	// Type 表达式的静态类型，孤立片段分析时可为 nil（视作"不匹配"）。
	Type *TypeRef `json:"Type,omitempty"`

	// Prefix 原始前导空白，重写参数时保持排版稳定。
	Prefix string `json:"Prefix,omitempty"`

	Location *Location `json:"Location,omitempty"`
}

// Clone 返回浅拷贝，切片字段复制一层。访问返回替换节点而非原地修改，
// 因此重写前必须先 Clone。
func (n *TreeNode) Clone() *TreeNode {
	c := *n
	c.LeadingComments = append([]*Comment(nil), n.LeadingComments...)
	c.Annotations = append([]*Annotation(nil), n.Annotations...)
	c.BodyComments = append([]*Comment(nil), n.BodyComments...)
	c.Children = append([]*TreeNode(nil), n.Children...)
	c.Args = append([]*TreeNode(nil), n.Args...)
	return &c
}

// Label 返回人类可读标签，用于日志与报告。
func (n *TreeNode) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return string(n.Kind)
}

// Line 返回起始行号，位置缺失时返回 0。
func (n *TreeNode) Line() int {
	if n.Location == nil {
		return 0
	}
	return n.Location.StartLine
}
