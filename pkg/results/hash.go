package results

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"tellus-hq/tellus/pkg/interp/ast"
)

// HashPropertyData computes a canonical SHA-256 hash over an interpretation
// name and a property-data record. The encoding is order-independent:
// property names are sorted before hashing, so two maps with equal contents
// always hash equally.
func HashPropertyData(interpretation string, data ast.PropertyData) string {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(interpretation)
	b.WriteByte('\n')
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(canonicalValue(data[name]))
		b.WriteByte('\n')
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// canonicalValue renders a property value into an unambiguous text form.
// The kind prefix keeps the number 1 and the string "1" distinct.
func canonicalValue(v ast.PropertyValue) string {
	if num, ok := v.Float(); ok {
		return "n:" + strconv.FormatFloat(num, 'g', -1, 64)
	}
	if text, ok := v.String(); ok {
		return "s:" + fmt.Sprintf("%q", text)
	}
	return "null"
}
