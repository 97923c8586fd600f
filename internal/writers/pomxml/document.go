package pomxml

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/Materials-Data-Science-and-Informatics/somesy-sub000/pkg/somesy/document"
)

// xmlDocument adapts an etree XML tree to the document.Document
// interface, rooted at the <project> element. Comments and elements
// somesy does not touch are preserved.
type xmlDocument struct {
	tree *etree.Document
	root *etree.Element
}

var _ document.Document = (*xmlDocument)(nil)

func newXMLDocument() *xmlDocument {
	tree := etree.NewDocument()
	tree.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := tree.CreateElement("project")
	root.CreateAttr("xmlns", "http://maven.apache.org/POM/4.0.0")
	return &xmlDocument{tree: tree, root: root}
}

func loadXMLDocument(data []byte) (*xmlDocument, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(data); err != nil {
		return nil, err
	}
	root := tree.Root()
	if root == nil || root.Tag != "project" {
		return nil, fmt.Errorf("root element must be <project>")
	}
	return &xmlDocument{tree: tree, root: root}, nil
}

func (d *xmlDocument) Get(path []string) (interface{}, bool) {
	el := d.root
	for _, seg := range path {
		el = el.SelectElement(seg)
		if el == nil {
			return nil, false
		}
	}
	return elementToValue(el), true
}

func (d *xmlDocument) Set(path []string, value interface{}) {
	if len(path) == 0 {
		return
	}
	el := d.root
	for _, seg := range path {
		next := el.SelectElement(seg)
		if next == nil {
			next = el.CreateElement(seg)
		}
		el = next
	}
	setElementValue(el, value)
}

func (d *xmlDocument) Delete(path []string) {
	if len(path) == 0 {
		return
	}
	el := d.root
	for _, seg := range path[:len(path)-1] {
		el = el.SelectElement(seg)
		if el == nil {
			return
		}
	}
	if child := el.SelectElement(path[len(path)-1]); child != nil {
		el.RemoveChild(child)
	}
}

func (d *xmlDocument) Encode() ([]byte, error) {
	d.tree.Indent(2)
	return d.tree.WriteToBytes()
}

// elementToValue converts an element to the document value vocabulary:
// a list when all children share one tag (a POM container like
// <developers>), a mapping when children differ, a string otherwise.
func elementToValue(el *etree.Element) interface{} {
	children := el.ChildElements()
	if len(children) == 0 {
		return strings.TrimSpace(el.Text())
	}
	if isContainer(el) {
		out := make([]interface{}, 0, len(children))
		for _, c := range children {
			out = append(out, elementToValue(c))
		}
		return out
	}
	m := document.NewMap()
	for _, c := range children {
		m.Set(c.Tag, elementToValue(c))
	}
	return m
}

func isContainer(el *etree.Element) bool {
	children := el.ChildElements()
	if len(children) == 0 {
		return false
	}
	for _, c := range children {
		if c.Tag+"s" != el.Tag {
			return false
		}
	}
	return true
}

func setElementValue(el *etree.Element, value interface{}) {
	switch t := value.(type) {
	case string:
		el.SetText(t)
	case []interface{}:
		itemTag := strings.TrimSuffix(el.Tag, "s")
		for _, c := range el.ChildElements() {
			el.RemoveChild(c)
		}
		for _, item := range t {
			setElementValue(el.CreateElement(itemTag), item)
		}
	case *document.Map:
		for _, c := range el.ChildElements() {
			el.RemoveChild(c)
		}
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			setElementValue(el.CreateElement(pair.Key), pair.Value)
		}
	}
}
