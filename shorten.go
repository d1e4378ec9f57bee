package apidoc

import "regexp"

var (
	qualifierRe = regexp.MustCompile(`[\w~-][\w./~-]*\.`)
	enclosingRe = regexp.MustCompile(`\w+\$`)
)

// ShortenTypeName strips package qualifiers, import paths included, and
// enclosing-type qualifiers from a type name, keeping simple names and type
// arguments:
//
//	ShortenTypeName("model.Page[github.com/acme/model.Item]") // "Page[Item]"
//	ShortenTypeName("map[string][]*model.User")               // "map[string][]*User"
func ShortenTypeName(name string) string {
	return enclosingRe.ReplaceAllString(qualifierRe.ReplaceAllString(name, ""), "")
}

func displayName(t Type) string {
	if t == nil {
		return voidName
	}
	return ShortenTypeName(t.String())
}

const voidName = "void"
