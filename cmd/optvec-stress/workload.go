package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type opKind int

const (
	opPush opKind = iota
	opRemove
	opPop
	opSet
	numOps
)

func (k opKind) String() string {
	switch k {
	case opPush:
		return "push"
	case opRemove:
		return "remove"
	case opPop:
		return "pop"
	case opSet:
		return "set"
	default:
		return fmt.Sprintf("op(%d)", int(k))
	}
}

// Workload weights the operations the stress loop draws from. A weight of
// zero disables that operation.
type Workload struct {
	Push        int `yaml:"push" json:"push"`
	Remove      int `yaml:"remove" json:"remove"`
	Pop         int `yaml:"pop" json:"pop"`
	Set         int `yaml:"set" json:"set"`
	VerifyEvery int `yaml:"verify_every" json:"verify_every"`
}

// DefaultWorkload returns a push-leaning mix that keeps the free stack busy.
func DefaultWorkload() Workload {
	return Workload{
		Push:        5,
		Remove:      3,
		Pop:         1,
		Set:         1,
		VerifyEvery: 1000,
	}
}

// LoadWorkload reads a YAML workload file. Fields missing from the file keep
// their default values.
func LoadWorkload(path string) (Workload, error) {
	w := DefaultWorkload()

	data, err := os.ReadFile(path)
	if err != nil {
		return w, fmt.Errorf("read workload: %w", err)
	}
	if err := yaml.Unmarshal(data, &w); err != nil {
		return w, fmt.Errorf("parse workload %s: %w", path, err)
	}
	return w, w.Validate()
}

func (w Workload) weights() [numOps]int {
	return [numOps]int{w.Push, w.Remove, w.Pop, w.Set}
}

func (w Workload) total() int {
	sum := 0
	for _, n := range w.weights() {
		sum += n
	}
	return sum
}

// Validate rejects negative weights, a zero push weight and a non-positive
// verify interval.
func (w Workload) Validate() error {
	for k, n := range w.weights() {
		if n < 0 {
			return fmt.Errorf("workload: %s weight must not be negative, got %d", opKind(k), n)
		}
	}
	if w.Push == 0 {
		return errors.New("workload: push weight must be positive")
	}
	if w.VerifyEvery <= 0 {
		return fmt.Errorf("workload: verify_every must be positive, got %d", w.VerifyEvery)
	}
	return nil
}

// pick maps r, drawn uniformly from [0, total), to an operation.
func (w Workload) pick(r int) opKind {
	for k, n := range w.weights() {
		if r < n {
			return opKind(k)
		}
		r -= n
	}
	return opPush
}
