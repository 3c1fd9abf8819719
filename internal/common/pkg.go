package common

import "path"

// PkgAlias returns the default package name (last element of path) for a
// package path. Returns empty string if pkgPath is empty.
// Major-version suffixes are skipped, so "example.com/lib/v2" yields "lib".
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	base := path.Base(pkgPath)
	if isMajorSuffix(base) && path.Dir(pkgPath) != "." {
		return path.Base(path.Dir(pkgPath))
	}

	return base
}

func isMajorSuffix(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}

	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}
