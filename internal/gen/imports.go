package gen

import (
	"fmt"
	"go/types"
	"sort"

	"fmtargs-generator/internal/common"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet assigns file-local names to the packages referenced by the
// generated code.
type importSet struct {
	self   string            // path of the package being generated into
	byPath map[string]string // import path -> local name
	taken  map[string]bool   // local names in use, including package-scope identifiers
}

func newImportSet(self string, scope []string) *importSet {
	s := &importSet{
		self:   self,
		byPath: make(map[string]string),
		taken:  make(map[string]bool, len(scope)),
	}

	for _, name := range scope {
		s.taken[name] = true
	}

	return s
}

// add registers pkgPath under its default name, or a numbered variant if the
// name is already taken, and returns the local name.
func (s *importSet) add(pkgPath, name string) string {
	if local, ok := s.byPath[pkgPath]; ok {
		return local
	}

	local := name
	for i := 2; s.taken[local]; i++ {
		local = fmt.Sprintf("%s%d", name, i)
	}

	s.byPath[pkgPath] = local
	s.taken[local] = true

	return local
}

// qualifier is a types.Qualifier that records every package it sees.
func (s *importSet) qualifier(p *types.Package) string {
	if p == nil || p.Path() == s.self {
		return ""
	}

	return s.add(p.Path(), p.Name())
}

// typeString renders t as it must be spelled in the generated file.
func (s *importSet) typeString(t types.Type) string {
	return types.TypeString(t, s.qualifier)
}

// specs returns the import specs sorted by path. An alias is written only when
// the local name differs from the name implied by the path.
func (s *importSet) specs() []importSpec {
	out := make([]importSpec, 0, len(s.byPath))

	for path, local := range s.byPath {
		spec := importSpec{Path: path}
		if local != common.PkgAlias(path) {
			spec.Alias = local
		}

		out = append(out, spec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})

	return out
}
