// Package ordered defines the vocabulary shared by the ordered
// key/value containers in this module. The containers themselves live
// in the bst, avl and llrb packages; each keeps its keys in ascending
// order and holds every key at most once.
//
// None of the containers are safe for concurrent use. Callers must
// serialize access to a tree, and must not mutate a tree while
// iterating over it.
package ordered // import "jsouthworth.net/go/ordered"
