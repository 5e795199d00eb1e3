package java

import (
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/CodMac/log-lens/model"
)

// treeBuilder 把 tree-sitter 语法树转换为约定树，并做轻量类型绑定：
// 字面量 -> java.lang 类型；字段/局部变量 -> 声明类型经 import 消解；
// 本文件声明的类贡献父链。消解不到的表达式类型保持 nil。
type treeBuilder struct {
	src      []byte
	filePath string
	pkg      string
	imports  map[string]string      // 简单名 -> QN
	classes  map[string]*localClass // 本文件声明的类
	scopes   []map[string]*model.TypeRef
	nextID   int64
}

type localClass struct {
	name       string
	superNames []string // 父类/接口原始名
}

func newTreeBuilder(filePath string, src []byte) *treeBuilder {
	return &treeBuilder{
		src:      src,
		filePath: filePath,
		imports:  make(map[string]string),
		classes:  make(map[string]*localClass),
	}
}

// ==========================================
// 1. 核心生命周期 (Core Workflow)
// ==========================================

func (b *treeBuilder) build(root *sitter.Node) *model.TreeNode {
	// 第一步：预扫描包名、导入与本文件类的继承信息
	b.prescan(root)

	// 第二步：构建约定树
	file := b.newNode(model.KindBlock, root)
	file.Name = filepath.Base(b.filePath)

	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(uint(i))
		if child != nil && child.Kind() == nodeClassDecl {
			file.Children = append(file.Children, b.buildClass(child))
		}
	}
	return file
}

func (b *treeBuilder) prescan(n *sitter.Node) {
	switch n.Kind() {
	case nodePackageDecl:
		if ident := b.findNamedChildOfType(n, nodeScopedIdent); ident != nil {
			b.pkg = b.nodeText(ident)
		} else if ident := b.findNamedChildOfType(n, nodeIdentifier); ident != nil {
			b.pkg = b.nodeText(ident)
		}
	case nodeImportDecl:
		b.handleImport(n)
	case nodeClassDecl:
		b.prescanClass(n)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(uint(i)); child != nil {
			b.prescan(child)
		}
	}
}

func (b *treeBuilder) handleImport(n *sitter.Node) {
	// 通配导入与静态导入无法建立简单名映射，跳过
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(uint(i)); child != nil {
			if kind := child.Kind(); kind == "asterisk" || kind == "static" {
				return
			}
		}
	}
	ident := b.findNamedChildOfType(n, nodeScopedIdent)
	if ident == nil {
		return
	}
	qn := b.nodeText(ident)
	b.imports[model.SimpleName(qn)] = qn
}

func (b *treeBuilder) prescanClass(n *sitter.Node) {
	name := b.nodeText(n.ChildByFieldName("name"))
	if name == "" {
		return
	}
	lc := &localClass{name: name}
	if sc := n.ChildByFieldName("superclass"); sc != nil {
		for i := 0; i < int(sc.NamedChildCount()); i++ {
			lc.superNames = append(lc.superNames, cleanTypeName(b.nodeText(sc.NamedChild(uint(i)))))
		}
	}
	if itf := n.ChildByFieldName("interfaces"); itf != nil {
		for i := 0; i < int(itf.NamedChildCount()); i++ {
			child := itf.NamedChild(uint(i))
			if child.Kind() == "type_list" {
				for j := 0; j < int(child.NamedChildCount()); j++ {
					lc.superNames = append(lc.superNames, cleanTypeName(b.nodeText(child.NamedChild(uint(j)))))
				}
			}
		}
	}
	b.classes[name] = lc
}

// ==========================================
// 2. 声明构建 (Declarations)
// ==========================================

func (b *treeBuilder) buildClass(n *sitter.Node) *model.TreeNode {
	cls := b.newNode(model.KindClassDecl, n)
	cls.Name = b.nodeText(n.ChildByFieldName("name"))
	cls.LeadingComments = b.leadingComments(n)
	cls.Annotations = b.collectAnnotations(n)
	cls.Type = b.resolveType(cls.Name)

	body := n.ChildByFieldName("body")
	if body == nil {
		return cls
	}
	cls.BodyComments = b.bodyLeadingComments(body)

	// 字段类型先行注册，成员方法内可引用声明顺序靠后的字段
	b.pushScope()
	defer b.popScope()
	b.prescanFields(body)

	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))
		if child == nil {
			continue
		}
		switch child.Kind() {
		case nodeFieldDecl:
			cls.Children = append(cls.Children, b.buildField(child))
		case nodeMethodDecl, nodeCtorDecl:
			cls.Children = append(cls.Children, b.buildMethod(child))
		case nodeClassDecl:
			cls.Children = append(cls.Children, b.buildClass(child))
		}
	}
	return cls
}

func (b *treeBuilder) prescanFields(body *sitter.Node) {
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))
		if child == nil || child.Kind() != nodeFieldDecl {
			continue
		}
		fieldType := b.resolveType(b.nodeText(child.ChildByFieldName("type")))
		for j := 0; j < int(child.NamedChildCount()); j++ {
			decl := child.NamedChild(uint(j))
			if decl.Kind() == "variable_declarator" {
				if name := decl.ChildByFieldName("name"); name != nil {
					b.bindVar(b.nodeText(name), fieldType)
				}
			}
		}
	}
}

func (b *treeBuilder) buildField(n *sitter.Node) *model.TreeNode {
	field := b.newNode(model.KindFieldDecl, n)
	field.LeadingComments = b.leadingComments(n)
	field.Annotations = b.collectAnnotations(n)
	field.Type = b.resolveType(b.nodeText(n.ChildByFieldName("type")))

	for i := 0; i < int(n.NamedChildCount()); i++ {
		decl := n.NamedChild(uint(i))
		if decl.Kind() != "variable_declarator" {
			continue
		}
		if field.Name == "" {
			field.Name = b.nodeText(decl.ChildByFieldName("name"))
		}
		if value := decl.ChildByFieldName("value"); value != nil {
			if expr := b.buildExpr(value); expr != nil {
				field.Children = append(field.Children, expr)
			}
		}
	}
	return field
}

func (b *treeBuilder) buildMethod(n *sitter.Node) *model.TreeNode {
	method := b.newNode(model.KindMethodDecl, n)
	method.Name = b.nodeText(n.ChildByFieldName("name"))
	method.LeadingComments = b.leadingComments(n)
	method.Annotations = b.collectAnnotations(n)

	b.pushScope()
	defer b.popScope()

	if params := n.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			p := params.NamedChild(uint(i))
			if p.Kind() != nodeFormalParam && p.Kind() != nodeSpreadParam {
				continue
			}
			pType := b.resolveType(b.nodeText(p.ChildByFieldName("type")))
			if name := p.ChildByFieldName("name"); name != nil {
				b.bindVar(b.nodeText(name), pType)
			}
		}
	}

	if body := n.ChildByFieldName("body"); body != nil {
		method.Children = b.buildStatements(body)
	}
	return method
}

// ==========================================
// 3. 语句构建 (Statements)
// ==========================================

func (b *treeBuilder) buildStatements(block *sitter.Node) []*model.TreeNode {
	var out []*model.TreeNode
	for i := 0; i < int(block.NamedChildCount()); i++ {
		out = append(out, b.buildStatement(block.NamedChild(uint(i)))...)
	}
	return out
}

func (b *treeBuilder) buildStatement(n *sitter.Node) []*model.TreeNode {
	switch n.Kind() {
	case nodeLocalVarDecl:
		return b.buildLocalVar(n)

	case nodeExprStmt:
		expr := b.buildExpr(n.NamedChild(0))
		if expr == nil {
			return nil
		}
		expr.LeadingComments = append(b.leadingComments(n), expr.LeadingComments...)
		return []*model.TreeNode{expr}

	case nodeTryStmt, nodeTryWithRes:
		return []*model.TreeNode{b.buildTry(n)}

	case nodeThrowStmt:
		throw := b.newNode(model.KindThrowStmt, n)
		throw.LeadingComments = b.leadingComments(n)
		if expr := b.buildExpr(n.NamedChild(0)); expr != nil {
			throw.Children = append(throw.Children, expr)
		}
		return []*model.TreeNode{throw}

	case nodeBlock:
		blk := b.newNode(model.KindBlock, n)
		blk.Children = b.buildStatements(n)
		return []*model.TreeNode{blk}

	case nodeMethodInvoke, nodeNewInstance:
		if expr := b.buildExpr(n); expr != nil {
			return []*model.TreeNode{expr}
		}
		return nil

	default:
		// 其余控制流语句：收拢内部语句，保持祖先链完整
		var inner []*model.TreeNode
		for i := 0; i < int(n.NamedChildCount()); i++ {
			inner = append(inner, b.buildStatement(n.NamedChild(uint(i)))...)
		}
		if len(inner) == 0 {
			return nil
		}
		blk := b.newNode(model.KindBlock, n)
		blk.Children = inner
		return []*model.TreeNode{blk}
	}
}

func (b *treeBuilder) buildLocalVar(n *sitter.Node) []*model.TreeNode {
	varType := b.resolveType(b.nodeText(n.ChildByFieldName("type")))
	var out []*model.TreeNode
	comments := b.leadingComments(n)

	for i := 0; i < int(n.NamedChildCount()); i++ {
		decl := n.NamedChild(uint(i))
		if decl.Kind() != "variable_declarator" {
			continue
		}
		if name := decl.ChildByFieldName("name"); name != nil {
			b.bindVar(b.nodeText(name), varType)
		}
		if value := decl.ChildByFieldName("value"); value != nil {
			if expr := b.buildExpr(value); expr != nil {
				expr.LeadingComments = append(comments, expr.LeadingComments...)
				comments = nil
				out = append(out, expr)
			}
		}
	}
	return out
}

func (b *treeBuilder) buildTry(n *sitter.Node) *model.TreeNode {
	try := b.newNode(model.KindTryStmt, n)
	try.LeadingComments = b.leadingComments(n)

	if body := n.ChildByFieldName("body"); body != nil {
		blk := b.newNode(model.KindBlock, body)
		blk.Children = b.buildStatements(body)
		try.Children = append(try.Children, blk)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(uint(i))
		if child != nil && child.Kind() == nodeCatchClause {
			try.Children = append(try.Children, b.buildCatch(child))
		}
	}
	return try
}

func (b *treeBuilder) buildCatch(n *sitter.Node) *model.TreeNode {
	catch := b.newNode(model.KindCatchClause, n)
	catch.LeadingComments = b.leadingComments(n)

	b.pushScope()
	defer b.popScope()

	if param := b.findNamedChildOfType(n, nodeCatchParam); param != nil {
		// 多异常捕获 (A | B e) 取首个备选类型
		var rawType string
		for i := 0; i < int(param.NamedChildCount()); i++ {
			child := param.NamedChild(uint(i))
			if child.Kind() == "catch_type" {
				rawType = strings.TrimSpace(strings.Split(b.nodeText(child), "|")[0])
			}
		}
		if name := param.ChildByFieldName("name"); name != nil {
			b.bindVar(b.nodeText(name), b.resolveType(rawType))
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		catch.Children = b.buildStatements(body)
	}
	return catch
}

// ==========================================
// 4. 表达式构建 (Expressions)
// ==========================================

func (b *treeBuilder) buildExpr(n *sitter.Node) *model.TreeNode {
	if n == nil {
		return nil
	}

	switch kind := n.Kind(); kind {
	case nodeMethodInvoke:
		call := b.newNode(model.KindCallExpr, n)
		call.Name = b.nodeText(n.ChildByFieldName("name"))
		call.Receiver = b.buildExpr(n.ChildByFieldName("object"))
		call.Args = b.buildArgs(n.ChildByFieldName("arguments"))
		return call

	case nodeMethodRef:
		ref := b.newNode(model.KindMethodRef, n)
		ref.Receiver = b.buildExpr(n.NamedChild(0))
		if count := n.NamedChildCount(); count > 1 {
			ref.Name = b.nodeText(n.NamedChild(count - 1))
		}
		return ref

	case nodeNewInstance:
		inst := b.newNode(model.KindNewInstanceExpr, n)
		rawType := cleanTypeName(b.nodeText(n.ChildByFieldName("type")))
		inst.Name = rawType
		inst.Type = b.resolveType(rawType)
		inst.Args = b.buildArgs(n.ChildByFieldName("arguments"))
		inst.LeadingComments = b.leadingComments(n)
		return inst

	case nodeBinaryExpr:
		bin := b.newNode(model.KindBinaryExpr, n)
		bin.Left = b.buildExpr(n.ChildByFieldName("left"))
		bin.Right = b.buildExpr(n.ChildByFieldName("right"))
		bin.Op = b.nodeText(n.ChildByFieldName("operator"))
		// 任一侧为字符串的 + 表达式整体是字符串
		if bin.Op == "+" && (b.isStringTyped(bin.Left) || b.isStringTyped(bin.Right)) {
			bin.Type = &model.TypeRef{QualifiedName: "java.lang.String"}
		}
		return bin

	case nodeParenExpr:
		return b.buildExpr(n.NamedChild(0))

	case nodeFieldAccess:
		access := b.newNode(model.KindMemberAccess, n)
		access.Receiver = b.buildExpr(n.ChildByFieldName("object"))
		access.Name = b.nodeText(n.ChildByFieldName("field"))
		return access

	case nodeIdentifier:
		ident := b.newNode(model.KindIdentifier, n)
		ident.Name = b.nodeText(n)
		ident.Type = b.lookupVar(ident.Name)
		return ident

	default:
		if qn, ok := literalTypeTable[kind]; ok {
			lit := b.newNode(model.KindLiteral, n)
			lit.Value = b.nodeText(n)
			if qn != "null" {
				lit.Type = b.resolveType(qn)
			}
			return lit
		}
		// 未建模的表达式按不透明标识符处理，类型缺失即"不匹配"
		leaf := b.newNode(model.KindIdentifier, n)
		leaf.Name = b.nodeText(n)
		return leaf
	}
}

func (b *treeBuilder) buildArgs(args *sitter.Node) []*model.TreeNode {
	if args == nil {
		return nil
	}
	var out []*model.TreeNode
	for i := 0; i < int(args.NamedChildCount()); i++ {
		argNode := args.NamedChild(uint(i))
		arg := b.buildExpr(argNode)
		if arg == nil {
			continue
		}
		arg.Prefix = b.prefixOf(argNode)
		out = append(out, arg)
	}
	return out
}

// ==========================================
// 5. 注释与注解 (Comments & Annotations)
// ==========================================

// leadingComments 收集声明/语句前紧邻的整行注释。
// 与更前一个节点同行的注释是行尾注释，归属存在歧义，不向下附着
// （保留的已知限制，不猜测"正确"归属）。
func (b *treeBuilder) leadingComments(n *sitter.Node) []*model.Comment {
	var out []*model.Comment
	for prev := n.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		kind := prev.Kind()
		if kind != nodeLineComment && kind != nodeBlockComment {
			break
		}
		if pp := prev.PrevSibling(); pp != nil && pp.EndPosition().Row == prev.StartPosition().Row {
			break
		}
		out = append([]*model.Comment{b.comment(prev)}, out...)
	}
	return out
}

// bodyLeadingComments 类体起始处（首个成员之前）的注释。
func (b *treeBuilder) bodyLeadingComments(body *sitter.Node) []*model.Comment {
	var out []*model.Comment
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(uint(i))
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "{":
			continue
		case nodeLineComment, nodeBlockComment:
			out = append(out, b.comment(child))
		default:
			return out
		}
	}
	return out
}

// collectAnnotations 提取 modifiers 中的注解及其前导注释。
// 落在注解之间的注释附着到下一个注解；注解之后的游离注释回挂到
// 首个注解上（救回被注解吞掉的人工指令）。
func (b *treeBuilder) collectAnnotations(n *sitter.Node) []*model.Annotation {
	mods := b.findNamedChildOfType(n, nodeModifiers)
	if mods == nil {
		return nil
	}

	var annos []*model.Annotation
	var pending []*model.Comment
	for i := 0; i < int(mods.ChildCount()); i++ {
		child := mods.Child(uint(i))
		if child == nil {
			continue
		}
		switch child.Kind() {
		case nodeLineComment, nodeBlockComment:
			pending = append(pending, b.comment(child))
		case nodeMarkerAnno, nodeAnno:
			anno := &model.Annotation{
				Name:            b.nodeText(child.ChildByFieldName("name")),
				LeadingComments: pending,
			}
			pending = nil
			annos = append(annos, anno)
		}
	}
	if len(pending) > 0 && len(annos) > 0 {
		annos[0].LeadingComments = append(annos[0].LeadingComments, pending...)
	}
	return annos
}

func (b *treeBuilder) comment(n *sitter.Node) *model.Comment {
	return &model.Comment{Text: b.nodeText(n), Line: int(n.StartPosition().Row) + 1}
}

// ==========================================
// 6. 类型消解与工具 (Type Resolution & Utilities)
// ==========================================

func (b *treeBuilder) resolveType(raw string) *model.TypeRef {
	name := cleanTypeName(raw)
	if name == "" {
		return nil
	}
	if primitiveTypes[name] {
		return &model.TypeRef{QualifiedName: name}
	}
	if lc, ok := b.classes[name]; ok {
		return &model.TypeRef{
			QualifiedName: b.qualify(name),
			Supers:        b.resolveSupers(lc, map[string]bool{name: true}),
		}
	}
	if bt, ok := builtinTable[name]; ok {
		return &model.TypeRef{QualifiedName: bt.QN, Supers: bt.Supers}
	}
	if qn, ok := b.imports[name]; ok {
		return &model.TypeRef{QualifiedName: qn}
	}
	// 消解不到：保留原名，匹配端容忍简单名
	return &model.TypeRef{QualifiedName: name}
}

func (b *treeBuilder) resolveSupers(lc *localClass, seen map[string]bool) []string {
	var out []string
	for _, raw := range lc.superNames {
		name := cleanTypeName(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		if parent, ok := b.classes[name]; ok {
			out = append(out, b.qualify(name))
			out = append(out, b.resolveSupers(parent, seen)...)
			continue
		}
		if bt, ok := builtinTable[name]; ok {
			out = append(out, bt.QN)
			out = append(out, bt.Supers...)
			continue
		}
		if qn, ok := b.imports[name]; ok {
			out = append(out, qn)
			continue
		}
		out = append(out, name)
	}
	return out
}

func (b *treeBuilder) qualify(name string) string {
	if b.pkg == "" {
		return name
	}
	return b.pkg + "." + name
}

func (b *treeBuilder) isStringTyped(n *model.TreeNode) bool {
	return n != nil && n.Type.Is("java.lang.String")
}

func (b *treeBuilder) pushScope() {
	b.scopes = append(b.scopes, make(map[string]*model.TypeRef))
}

func (b *treeBuilder) popScope() {
	b.scopes = b.scopes[:len(b.scopes)-1]
}

func (b *treeBuilder) bindVar(name string, t *model.TypeRef) {
	if name == "" || t == nil || len(b.scopes) == 0 {
		return
	}
	b.scopes[len(b.scopes)-1][name] = t
}

func (b *treeBuilder) lookupVar(name string) *model.TypeRef {
	for i := len(b.scopes) - 1; i >= 0; i-- {
		if t, ok := b.scopes[i][name]; ok {
			return t
		}
	}
	return nil
}

func (b *treeBuilder) newNode(kind model.NodeKind, n *sitter.Node) *model.TreeNode {
	b.nextID++
	node := &model.TreeNode{ID: b.nextID, Kind: kind}
	if n != nil {
		node.Location = &model.Location{
			FilePath:    b.filePath,
			StartLine:   int(n.StartPosition().Row) + 1,
			EndLine:     int(n.EndPosition().Row) + 1,
			StartColumn: int(n.StartPosition().Column),
			EndColumn:   int(n.EndPosition().Column),
		}
	}
	return node
}

func (b *treeBuilder) nodeText(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.Utf8Text(b.src))
}

func (b *treeBuilder) findNamedChildOfType(n *sitter.Node, kind string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(uint(i))
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// prefixOf 取参数节点前的行内空白，重写时保持排版稳定。
func (b *treeBuilder) prefixOf(n *sitter.Node) string {
	start := int(n.StartByte())
	i := start
	for i > 0 && (b.src[i-1] == ' ' || b.src[i-1] == '\t') {
		i--
	}
	return string(b.src[i:start])
}

// cleanTypeName 去除泛型实参、数组与可变参数记号。
func cleanTypeName(raw string) string {
	name := strings.TrimSpace(raw)
	if idx := strings.Index(name, "<"); idx >= 0 {
		name = name[:idx]
	}
	name = strings.TrimSuffix(name, "...")
	name = strings.ReplaceAll(name, "[]", "")
	return strings.TrimSpace(name)
}
