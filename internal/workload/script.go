// Package workload describes sequences of map operations, loads them
// from YAML scripts or generates them, and runs them against the tree
// variants.
package workload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Kind names an operation.
type Kind string

// Operation kinds.
const (
	Insert    Kind = "insert"
	Delete    Kind = "delete"
	Search    Kind = "search"
	DeleteMin Kind = "deletemin"
	DeleteMax Kind = "deletemax"
)

// Sentinel script errors.
var (
	ErrUnknownOp = errors.New("unknown operation")
	ErrEmpty     = errors.New("script has no operations")
)

// Op is a single step of a workload. Key is ignored by DeleteMin and
// DeleteMax; Value is only used by Insert.
type Op struct {
	Kind  Kind   `yaml:"op"`
	Key   int    `yaml:"key,omitempty"`
	Value string `yaml:"value,omitempty"`
}

// Script is a named list of operations.
type Script struct {
	Name string `yaml:"name"`
	Ops  []Op   `yaml:"ops"`
}

// LoadScript reads a YAML script from path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// ParseScript decodes and checks a YAML script. Unknown fields are
// rejected so that typos do not silently turn into zero keys.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(&s)
	switch {
	case errors.Is(err, io.EOF):
		return nil, ErrEmpty
	case err != nil:
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(s.Ops) == 0 {
		return nil, ErrEmpty
	}
	for i, op := range s.Ops {
		switch op.Kind {
		case Insert, Delete, Search, DeleteMin, DeleteMax:
		default:
			return nil, fmt.Errorf("op %d: %w: %q", i, ErrUnknownOp, op.Kind)
		}
	}
	return &s, nil
}

// Marshal encodes the script as YAML.
func (s *Script) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Params drive Generate.
type Params struct {
	Keys        int
	Seed        int64
	Order       string
	DeleteRatio float64
}

// Generate builds a script that inserts Keys distinct keys in the
// requested order, searches every one of them, and then deletes a
// DeleteRatio share of them in random order. One delete of an absent
// key is appended whenever anything is deleted. A negative key count
// is treated as zero.
func Generate(p Params) *Script {
	p.Keys = max(p.Keys, 0)
	r := rand.New(rand.NewSource(p.Seed))
	keys := make([]int, p.Keys)
	for i := range keys {
		keys[i] = i
	}
	switch p.Order {
	case "descending":
		for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	case "ascending":
	default:
		r.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	}

	s := &Script{
		Name: fmt.Sprintf("%s-%d", orderName(p.Order), p.Keys),
		Ops:  make([]Op, 0, 2*p.Keys),
	}
	for _, k := range keys {
		s.Ops = append(s.Ops, Op{Kind: Insert, Key: k, Value: strconv.Itoa(k)})
	}
	for k := range p.Keys {
		s.Ops = append(s.Ops, Op{Kind: Search, Key: k})
	}

	victims := r.Perm(p.Keys)[:int(p.DeleteRatio*float64(p.Keys))]
	for _, k := range victims {
		s.Ops = append(s.Ops, Op{Kind: Delete, Key: k})
	}
	if len(victims) > 0 {
		s.Ops = append(s.Ops, Op{Kind: Delete, Key: p.Keys})
	}
	return s
}

func orderName(order string) string {
	if order == "" {
		return "random"
	}
	return order
}
