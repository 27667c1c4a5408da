// Package abi defines the lightweight ABI description emitted for an Alkanes contract: the contract
// name plus the list of opcodes its entry point dispatches on. The JSON field names and their order
// are a stable contract relied upon by downstream tooling (explorers, SDK generators).
package abi

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// DefaultContractName describes the sentinel contract name reported when no responder trait
// implementation could be located in the analyzed source.
const DefaultContractName = "UnknownContract"

// MethodNamePrefix describes the prefix used when synthesizing a method name from its opcode.
const MethodNamePrefix = "method_"

// Method represents a single dispatchable operation extracted from a contract's entry point.
type Method struct {
	// Name is the synthesized method name, derived from the opcode (e.g. "method_77"). The source
	// format carries no human-readable names for dispatch arms.
	Name string `json:"name"`

	// Opcode is the unsigned integer literal the contract's dispatch match handles for this method.
	Opcode uint64 `json:"opcode"`

	// Inputs describes the method's input types. The source format encodes no type information for
	// dispatch arms, so this is always empty, but is serialized for forward compatibility.
	Inputs []string `json:"inputs"`

	// Outputs describes the method's output types. Always empty, same as Inputs.
	Outputs []string `json:"outputs"`
}

// NewMethod creates a Method for the provided opcode with a synthesized name and empty input/output
// lists. The lists are non-nil so they serialize as empty JSON arrays rather than null.
func NewMethod(opcode uint64) Method {
	return Method{
		Name:    fmt.Sprintf("%s%d", MethodNamePrefix, opcode),
		Opcode:  opcode,
		Inputs:  []string{},
		Outputs: []string{},
	}
}

// ContractABI represents the full extraction result for one contract source file.
type ContractABI struct {
	// Name is the contract name, taken from the implementing type of the responder trait
	// implementation, or DefaultContractName if none was found.
	Name string `json:"name"`

	// Methods describes the extracted methods in their order of appearance in source. Duplicate
	// opcodes are not deduplicated.
	Methods []Method `json:"methods"`
}

// NewContractABI creates an empty ContractABI carrying the default contract name. The method list is
// non-nil so an empty result still serializes as a well-formed JSON array.
func NewContractABI() *ContractABI {
	return &ContractABI{
		Name:    DefaultContractName,
		Methods: []Method{},
	}
}

// AddMethod appends a method for the provided opcode, preserving insertion order.
func (a *ContractABI) AddMethod(opcode uint64) {
	a.Methods = append(a.Methods, NewMethod(opcode))
}

// Render serializes the ContractABI to JSON. If compact is false, the output is pretty-printed with
// two-space indentation. Returns the serialized bytes, or an error if one occurs.
func (a *ContractABI) Render(compact bool) ([]byte, error) {
	var (
		b   []byte
		err error
	)
	if compact {
		b, err = json.Marshal(a)
	} else {
		b, err = json.MarshalIndent(a, "", "  ")
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}
