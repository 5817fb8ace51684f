package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-docgen/pkg/vars"
)

var (
	logoImagePattern   = regexp.MustCompile(`<img[^>]*?data-logo-var\s*=\s*"\{([\w.]+)\}"[^>]*?/?>`)
	logoSrcPattern     = regexp.MustCompile(`\s*src\s*=\s*"[^"]*"`)
	logoVarAttrPattern = regexp.MustCompile(`\s*data-logo-var\s*=\s*"[^"]*"`)
)

// Logos resolves `<img data-logo-var="{ecole_logo}">` images. A non-empty
// bag value becomes the image source; without one the image is dropped so
// documents never show a broken logo box.
func Logos(doc string, bag vars.Bag) string {
	return logoImagePattern.ReplaceAllStringFunc(doc, func(match string) string {
		name := logoImagePattern.FindStringSubmatch(match)[1]
		value, ok := vars.Lookup(bag, name)
		if !ok || value == nil {
			return ""
		}
		src := strings.TrimSpace(vars.Stringify(value))
		if src == "" {
			return ""
		}

		tag := logoSrcPattern.ReplaceAllString(match, "")
		tag = logoVarAttrPattern.ReplaceAllString(tag, "")
		return strings.Replace(tag, "<img", fmt.Sprintf(`<img src="%s"`, src), 1)
	})
}
