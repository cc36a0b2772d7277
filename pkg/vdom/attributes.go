package vdom

import "strings"

// attr creates an attribute with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Global attributes

func ID(id string) Attr             { return attr("id", id) }
func Class(classes ...string) Attr  { return attr("class", strings.Join(classes, " ")) }
func Data(key, value string) Attr   { return attr("data-"+key, value) }
func Role(role string) Attr         { return attr("role", role) }
func Lang(lang string) Attr         { return attr("lang", lang) }
func TitleAttr(title string) Attr   { return attr("title", title) }
func AriaLabel(label string) Attr   { return attr("aria-label", label) }
func AriaHidden(hidden bool) Attr   { return attr("aria-hidden", hidden) }
func AriaLabelledBy(id string) Attr { return attr("aria-labelledby", id) }
func AriaCurrent(value string) Attr { return attr("aria-current", value) }
func AriaLive(mode string) Attr     { return attr("aria-live", mode) }
func AriaBusy(busy bool) Attr       { return attr("aria-busy", busy) }

// Link and document attributes

func Href(url string) Attr        { return attr("href", url) }
func Rel(rel string) Attr         { return attr("rel", rel) }
func Charset(charset string) Attr { return attr("charset", charset) }
func Name(name string) Attr       { return attr("name", name) }
func Content(content string) Attr { return attr("content", content) }
func Src(url string) Attr         { return attr("src", url) }
func Defer() Attr                 { return attr("defer", true) }
