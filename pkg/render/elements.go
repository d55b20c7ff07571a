package render

// voidElements have no closing tag.
var voidElements = map[string]bool{
	"area":  true,
	"base":  true,
	"br":    true,
	"col":   true,
	"embed": true,
	"hr":    true,
	"img":   true,
	"input": true,
	"link":  true,
	"meta":  true,
	"wbr":   true,
}

func isVoidElement(tag string) bool {
	return voidElements[tag]
}

// inlineElements don't get newlines in pretty-printed output.
var inlineElements = map[string]bool{
	"a":      true,
	"b":      true,
	"code":   true,
	"em":     true,
	"i":      true,
	"small":  true,
	"span":   true,
	"strong": true,
	"title":  true,
}

func isInlineElement(tag string) bool {
	return inlineElements[tag]
}

// booleanAttrs are rendered as a bare attribute name when true.
var booleanAttrs = map[string]bool{
	"async":    true,
	"defer":    true,
	"disabled": true,
	"hidden":   true,
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}
