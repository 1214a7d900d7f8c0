// SPDX-License-Identifier: MPL-2.0

package dependencies

const (
	// Prod is `dependencies` (npm calls it "prod").
	Prod Kind = iota
	// Dev is `devDependencies`.
	Dev
	// Peer is `peerDependencies`.
	Peer
	// Optional is `optionalDependencies`.
	Optional
)

// Kind is a package.json dependency section.
type Kind int

// Kinds lists every section in the order they are rolled.
func Kinds() []Kind {
	return []Kind{Prod, Dev, Peer, Optional}
}

// Field returns the package.json field name.
func (k Kind) Field() string {
	switch k {
	case Dev:
		return "devDependencies"
	case Peer:
		return "peerDependencies"
	case Optional:
		return "optionalDependencies"
	default:
		return "dependencies"
	}
}

// NpmFlag returns the `npm install` flag saving into the section.
func (k Kind) NpmFlag() string {
	switch k {
	case Dev:
		return "--save-dev"
	case Peer:
		return "--save-peer"
	case Optional:
		return "--save-optional"
	default:
		return "--save"
	}
}

// BunFlag returns the `bun add` flag saving into the section. Prod has none.
func (k Kind) BunFlag() string {
	switch k {
	case Dev:
		return "--dev"
	case Peer:
		return "--peer"
	case Optional:
		return "--optional"
	default:
		return ""
	}
}

func (k Kind) String() string { return k.Field() }
