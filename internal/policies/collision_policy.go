package policies

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

const (
	CollisionMerge  = "merge"
	CollisionRename = "rename"
)

// RenameOnCollision returns the name a colliding element from another
// document is stored under: name + "_" + stem, or, when that is also taken,
// name + "_" + stem + "_" + n for the smallest free n >= 2.
func RenameOnCollision(name string, stem string, taken func(string) bool) (string, error) {
	stem = strings.TrimSpace(stem)
	if stem == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("cannot rename %q without a source stem", name))
	}
	candidate := name + "_" + stem
	if !taken(candidate) {
		return candidate, nil
	}
	for n := 2; ; n++ {
		numbered := fmt.Sprintf("%s_%d", candidate, n)
		if !taken(numbered) {
			return numbered, nil
		}
	}
}
