package scan

import (
	"errors"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// pythonExtractor parses a single Python source file and pulls out its import
// list and the first declared base of every class definition.
type pythonExtractor struct {
	lang *sitter.Language
}

func newPythonExtractor() *pythonExtractor {
	return &pythonExtractor{
		lang: sitter.NewLanguage(tree_sitter_python.Language()),
	}
}

var errParse = errors.New("parse failed")

type fileFacts struct {
	Imports []string
	Classes map[string]string // class name -> first base
}

// ExtractFile returns errParse for files whose syntax tree contains errors.
// Callers skip those files and keep scanning.
func (e *pythonExtractor) ExtractFile(source []byte) (*fileFacts, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(e.lang)

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, errParse
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, errParse
	}

	facts := &fileFacts{Classes: make(map[string]string)}
	e.walk(root, source, facts)
	return facts, nil
}

func (e *pythonExtractor) walk(node *sitter.Node, source []byte, facts *fileFacts) {
	switch node.Kind() {
	case "import_statement":
		e.extractImport(node, source, facts)
	case "import_from_statement":
		e.extractFromImport(node, source, facts)
	case "class_definition":
		e.extractClass(node, source, facts)
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		e.walk(node.Child(i), source, facts)
	}
}

// extractImport handles "import X[.Y]" and "import a, b as c". The full dotted
// name is recorded as written.
func (e *pythonExtractor) extractImport(node *sitter.Node, source []byte, facts *fileFacts) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		switch child.Kind() {
		case "dotted_name", "identifier":
			facts.Imports = append(facts.Imports, e.getText(child, source))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				facts.Imports = append(facts.Imports, e.getText(name, source))
			}
		}
	}
}

// extractFromImport handles "from X import ..." and "from . import ...". The
// module name is recorded without any leading dots; a bare relative import
// ("from . import x") has no module name and is skipped.
func (e *pythonExtractor) extractFromImport(node *sitter.Node, source []byte, facts *fileFacts) {
	moduleNode := node.ChildByFieldName("module_name")
	if moduleNode == nil {
		return
	}

	module := e.getText(moduleNode, source)
	if moduleNode.Kind() == "relative_import" {
		module = strings.TrimLeft(module, ".")
	}
	if module == "" {
		return
	}

	facts.Imports = append(facts.Imports, module)
}

// extractClass records the first declared base only. Attribute bases keep just
// the trailing component; anything else is kept as written.
func (e *pythonExtractor) extractClass(node *sitter.Node, source []byte, facts *fileFacts) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}

	supers := node.ChildByFieldName("superclasses")
	if supers == nil {
		return
	}

	base := ""
	for i := uint(0); i < supers.ChildCount(); i++ {
		child := supers.Child(i)
		switch child.Kind() {
		case "(", ")", ",", "comment", "keyword_argument", "dictionary_splat":
			continue
		}
		base = e.baseName(child, source)
		break
	}
	if base == "" {
		return
	}

	facts.Classes[e.getText(nameNode, source)] = base
}

func (e *pythonExtractor) baseName(node *sitter.Node, source []byte) string {
	switch node.Kind() {
	case "identifier":
		return e.getText(node, source)
	case "attribute":
		if attr := node.ChildByFieldName("attribute"); attr != nil {
			return e.getText(attr, source)
		}
	}
	return e.getText(node, source)
}

func (e *pythonExtractor) getText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
