package naming

// OwnerKind enumerates the ways a name can be rooted.
type OwnerKind uint8

const (
	// Unowned names are rooted at the Namer's DefaultRoot.
	Unowned OwnerKind = iota
	// Plugin names are rooted at the plugin slug.
	Plugin
	// Component names are rooted at the plugin slug followed by the component
	// name.
	Component
)

// Owner identifies what a name belongs to. Construct it with PluginOwner,
// ComponentOwner or NoOwner.
type Owner struct {
	Kind      OwnerKind
	Slug      string
	Component string
}

func PluginOwner(slug string) Owner { return Owner{Kind: Plugin, Slug: slug} }

func ComponentOwner(slug, component string) Owner {
	return Owner{Kind: Component, Slug: slug, Component: component}
}

func NoOwner() Owner { return Owner{Kind: Unowned} }

// Root returns the unsanitized root token of the owner.
func (o Owner) Root(defaultRoot string) string {
	switch o.Kind {
	case Plugin:
		return o.Slug
	case Component:
		return join("-", o.Slug, o.Component)
	default:
		return defaultRoot
	}
}
