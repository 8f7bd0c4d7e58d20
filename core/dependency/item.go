package dependency

import (
	"fmt"
	"slices"
	"strings"
)

// Format is the packaging format of a dependency.
type Format string

const (
	FormatESM Format = "esm"
	FormatCJS Format = "cjs"
	FormatJS  Format = "js"
)

// IsSupported reports whether the loader knows how to handle the format.
func (f Format) IsSupported() bool {
	switch f {
	case FormatESM, FormatCJS, FormatJS:
		return true
	default:
		return false
	}
}

// ImportType selects the resolution mechanism of a dependency.
type ImportType string

const (
	// ImportTypeImport resolves asynchronously.
	ImportTypeImport ImportType = "import"
	// ImportTypeRequire resolves synchronously.
	ImportTypeRequire ImportType = "require"
)

// BasePathType names the base path convention a libpath is resolved against.
type BasePathType string

const (
	BasePathZhiTheme   BasePathType = "ZhiTheme"
	BasePathAppearance BasePathType = "Appearance"
	BasePathData       BasePathType = "Data"
	BasePathAbsolute   BasePathType = "Absolute"
	BasePathRemote     BasePathType = "Remote"
)

// Runtime identifies the environment the host application runs in.
type Runtime string

const (
	RuntimeSiyuanMainWin   Runtime = "Siyuan_MainWin"
	RuntimeSiyuanBrowser   Runtime = "Siyuan_Browser"
	RuntimeSiyuanNewWin    Runtime = "Siyuan_NewWin"
	RuntimeSiyuanWidget    Runtime = "Siyuan_Widget"
	RuntimeChromeExtension Runtime = "Chrome_Extension"
	RuntimeNode            Runtime = "Node"
)

// Item describes one dependency to load. The libpath is fixed at construction.
type Item struct {
	libpath    string
	Format     Format
	ImportType ImportType
	BaseType   BasePathType
	RunAs      []Runtime
}

// NewItem creates a dependency descriptor.
func NewItem(libpath string, format Format, importType ImportType, baseType BasePathType, runAs ...Runtime) Item {
	return Item{
		libpath:    libpath,
		Format:     format,
		ImportType: importType,
		BaseType:   baseType,
		RunAs:      slices.Clone(runAs),
	}
}

// Libpath returns the identifier of the library.
func (i Item) Libpath() string {
	return i.libpath
}

// CanRunAs reports whether the item may be loaded in the given runtime.
func (i Item) CanRunAs(rt Runtime) bool {
	return slices.Contains(i.RunAs, rt)
}

// Key identifies the item within a single bootstrap pass.
func (i Item) Key() string {
	return string(i.ImportType) + ":" + string(i.BaseType) + ":" + i.libpath
}

func (i Item) String() string {
	runAs := make([]string, len(i.RunAs))
	for n, rt := range i.RunAs {
		runAs[n] = string(rt)
	}
	return fmt.Sprintf("%s (%s, %s, %s, [%s])", i.libpath, i.Format, i.ImportType, i.BaseType, strings.Join(runAs, ","))
}
