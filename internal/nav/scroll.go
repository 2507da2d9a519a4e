// Package nav implements in-page anchor navigation: which links are handled
// and where the viewport should land under the fixed header.
package nav

import (
	"bytes"
	"strings"
	"text/template"
)

// DefaultHeaderOffset is the height of the fixed page header in pixels.
const DefaultHeaderOffset = 80

// Layout reports the document offset of an element by id.
type Layout interface {
	OffsetTop(id string) (top int, ok bool)
}

// LayoutMap is a Layout backed by a map of element id to offset.
type LayoutMap map[string]int

func (m LayoutMap) OffsetTop(id string) (int, bool) {
	top, ok := m[id]
	return top, ok
}

// Intercepts reports whether a click on a link with href is taken over by
// smooth scrolling: in-page anchors only, the bare "#" excluded.
func Intercepts(href string) bool {
	return strings.HasPrefix(href, "#") && href != "#"
}

// ScrollTarget returns the viewport position for href. ok is false when the
// link is not an in-page anchor or the target element does not exist; the
// default jump is still suppressed for every intercepted link.
func ScrollTarget(href string, layout Layout, headerOffset int) (top int, ok bool) {
	if !Intercepts(href) {
		return 0, false
	}
	elemTop, found := layout.OffsetTop(strings.TrimPrefix(href, "#"))
	if !found {
		return 0, false
	}
	return elemTop - headerOffset, true
}

var scriptTmpl = template.Must(template.New("scroll").Parse(`document.addEventListener("DOMContentLoaded", function () {
    var headerOffset = {{.HeaderOffset}};
    document.querySelectorAll('a[href^="#"]').forEach(function (anchor) {
        anchor.addEventListener("click", function (e) {
            e.preventDefault();
            var href = this.getAttribute("href");
            if (href === "#") {
                return;
            }
            var target = document.getElementById(href.slice(1));
            if (target) {
                window.scrollTo({ top: target.offsetTop - headerOffset, behavior: "smooth" });
            }
        });
    });
});
`))

// Script returns the browser script applying ScrollTarget's rule with the
// given header offset.
func Script(headerOffset int) ([]byte, error) {
	var buf bytes.Buffer
	if err := scriptTmpl.Execute(&buf, struct{ HeaderOffset int }{headerOffset}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
