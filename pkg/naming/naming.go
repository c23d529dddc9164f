// Package naming builds the identifiers a plugin hands to its host: admin notice
// ids, asset handles, REST namespaces and service names. Every identifier is a
// root token derived from an Owner, followed by caller supplied tokens, passed
// through Sanitize.
package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Namer builds names rooted at Owner.
type Namer struct {
	Owner Owner
	// DefaultRoot roots names of an Unowned Owner.
	DefaultRoot string
}

// Root returns the sanitized root token.
func (n Namer) Root() string { return Sanitize(n.Owner.Root(n.DefaultRoot)) }

// Name joins the root, discriminator and extra tokens with "-" and sanitizes the
// result. Empty tokens are skipped.
func (n Namer) Name(discriminator string, extra ...string) string {
	tokens := append([]string{n.Owner.Root(n.DefaultRoot), discriminator}, extra...)
	return Sanitize(join("-", tokens...))
}

// AdminNotice returns the id of an admin notice.
func (n Namer) AdminNotice(id string, extra ...string) string {
	return n.Name("notice", append([]string{id}, extra...)...)
}

// AssetHandle returns the handle a script or style is registered under.
func (n Namer) AssetHandle(handle string, extra ...string) string {
	return n.Name(handle, extra...)
}

// ServiceName returns the name a service is registered under in a registry.
func (n Namer) ServiceName(name string, extra ...string) string {
	return n.Name(name, extra...)
}

// RESTNamespace returns a REST namespace such as "my-plugin/v1". Each token is
// sanitized on its own and the results are joined with "/".
func (n Namer) RESTNamespace(version string, extra ...string) string {
	tokens := append([]string{n.Owner.Root(n.DefaultRoot), version}, extra...)
	for i, t := range tokens {
		tokens[i] = Sanitize(t)
	}
	return join("/", tokens...)
}

var separators = strings.NewReplacer(" ", "-", "/", "-", `\`, "-")

// Sanitize normalizes s to an identifier-safe form: spaces, forward slashes and
// backslashes become "-", diacritics are stripped, the result is lowercased and
// reduced to [a-z0-9_-], runs of "-" collapse to one and leading or trailing
// "-" are trimmed.
func Sanitize(s string) string {
	s = separators.Replace(s)
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(stripMarks, s); err == nil {
		s = stripped
	}
	s = strings.ToLower(s)
	var b strings.Builder
	dash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			dash = false
		case r == '-' && !dash:
			b.WriteRune(r)
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func join(sep string, tokens ...string) string {
	nonEmpty := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != "" {
			nonEmpty = append(nonEmpty, t)
		}
	}
	return strings.Join(nonEmpty, sep)
}
