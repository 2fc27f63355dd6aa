package evaluate

import "fmt"

// ConfigError reports a precondition failure in the evaluator's shared
// inputs; Run returns it when the corpus is empty.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "config error: " + e.Msg }

// UnknownTermError reports a query term not found in the ontology after
// alias canonicalization.
type UnknownTermError struct {
	Term string
}

func (e *UnknownTermError) Error() string { return fmt.Sprintf("unknown term: %s", e.Term) }

// InconsistentInputsError reports observed/excluded term overlap. A
// genotype map referencing a gene unknown to the gene index is not reported
// through this error: Run logs it and goes on.
type InconsistentInputsError struct {
	Msg string
}

func (e *InconsistentInputsError) Error() string { return "inconsistent inputs: " + e.Msg }
