package cli

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quartzdb/dtype/internal/array"
	"github.com/quartzdb/dtype/internal/cast"
	"github.com/quartzdb/dtype/internal/dtype"
	"github.com/quartzdb/dtype/internal/infer"
)

// Plan defines a batch of cast steps loaded from YAML.
// Plans exercise the engine against recorded inputs: each step names
// the values to coerce, the target type, and optionally the error the
// cast is expected to fail with.
type Plan struct {
	// Name uniquely identifies this plan.
	Name string `yaml:"name"`

	// Description explains what this plan exercises.
	Description string `yaml:"description,omitempty"`

	// Steps contains the casts to run, in order.
	Steps []PlanStep `yaml:"steps"`
}

// PlanStep is a single cast in a plan.
type PlanStep struct {
	// Name labels the step in output. Defaults to the step index.
	Name string `yaml:"name,omitempty"`

	// Values are the input elements. YAML scalars map to engine
	// values directly; null entries become missing values.
	Values []interface{} `yaml:"values"`

	// From optionally fixes the input type. When omitted the input
	// type is inferred from the values.
	From string `yaml:"from,omitempty"`

	// To is the target type.
	To string `yaml:"to"`

	// Copy forces a fresh output buffer even for identity casts.
	Copy bool `yaml:"copy,omitempty"`

	// SkipNulls leaves null elements unconverted when stringifying.
	SkipNulls bool `yaml:"skip_nulls,omitempty"`

	// Strict runs integer targets through lossless validation, which
	// rejects truncation and unsigned wrap instead of coercing.
	Strict bool `yaml:"strict,omitempty"`

	// ExpectError names the error code this step must fail with
	// (e.g. "PRECISION_LOSS"). The step fails if the cast succeeds.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// StepResult is the outcome of one plan step.
type StepResult struct {
	Name   string   `json:"name"`
	From   string   `json:"from"`
	To     string   `json:"to"`
	Ok     bool     `json:"ok"`
	Values []string `json:"values,omitempty"`
	Error  string   `json:"error,omitempty"`
	Code   string   `json:"code,omitempty"`
}

// PlanResult is the outcome of a whole plan run.
type PlanResult struct {
	Name    string       `json:"name"`
	Passed  int          `json:"passed"`
	Failed  int          `json:"failed"`
	Results []StepResult `json:"results"`
}

// LoadPlan reads and parses a plan YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}
	return ParsePlan(data)
}

// ParsePlan parses plan YAML bytes.
func ParsePlan(data []byte) (*Plan, error) {
	// Parse YAML with strict field validation (catches typos like "step:" vs "steps:")
	var plan Plan
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validatePlan(&plan); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	return &plan, nil
}

// validatePlan checks that required fields are present and valid.
func validatePlan(p *Plan) error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}

	if len(p.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range p.Steps {
		if step.To == "" {
			return fmt.Errorf("step %d: to is required", i)
		}
		if _, err := dtype.Parse(step.To); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if step.From != "" {
			if _, err := dtype.Parse(step.From); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		}
	}

	return nil
}

// RunPlan executes every step and collects results. Step failures do
// not abort the run.
func RunPlan(plan *Plan) *PlanResult {
	result := &PlanResult{Name: plan.Name}
	for i, step := range plan.Steps {
		r := runStep(i, step)
		if r.Ok {
			result.Passed++
		} else {
			result.Failed++
		}
		result.Results = append(result.Results, r)
	}
	return result
}

func runStep(index int, step PlanStep) StepResult {
	name := step.Name
	if name == "" {
		name = fmt.Sprintf("step-%d", index)
	}

	target, err := dtype.Parse(step.To)
	if err != nil {
		return stepError(name, "", step.To, step.ExpectError, err)
	}

	input, err := stepInput(step)
	if err != nil {
		return stepError(name, "", step.To, step.ExpectError, err)
	}

	out, err := stepCast(input, target, step)
	if err != nil {
		return stepError(name, input.Desc().String(), step.To, step.ExpectError, err)
	}
	if step.ExpectError != "" {
		return StepResult{
			Name:  name,
			From:  input.Desc().String(),
			To:    step.To,
			Error: fmt.Sprintf("expected error %s, cast succeeded", step.ExpectError),
		}
	}

	rendered := make([]string, out.Len())
	for i := range rendered {
		rendered[i] = dtype.FormatScalar(out.At(i))
	}
	return StepResult{
		Name:   name,
		From:   input.Desc().String(),
		To:     out.Desc().String(),
		Ok:     true,
		Values: rendered,
	}
}

// stepInput builds the input array: an object array of the raw values,
// narrowed to the declared or inferred input type.
func stepInput(step PlanStep) (*array.TypedArray, error) {
	raw := array.NewObjects(step.Values)

	var from dtype.Descriptor
	if step.From != "" {
		d, err := dtype.Parse(step.From)
		if err != nil {
			return nil, err
		}
		from = d
	} else {
		d, err := infer.FromArray(step.Values)
		if err != nil {
			return nil, err
		}
		from = d
	}

	if from.IsObject() {
		return raw, nil
	}
	return cast.Array(raw, from, cast.Options{})
}

func stepCast(input *array.TypedArray, target dtype.Descriptor, step PlanStep) (*array.TypedArray, error) {
	if step.Strict && (target.Kind == dtype.KindInt || target.Kind == dtype.KindUint) {
		return cast.ToInteger(input, target, step.Copy)
	}
	return cast.Array(input, target, cast.Options{Copy: step.Copy, SkipNulls: step.SkipNulls})
}

func stepError(name, from, to, expect string, err error) StepResult {
	code := errorCode(err)
	if expect != "" && code == expect {
		return StepResult{Name: name, From: from, To: to, Ok: true, Code: code, Error: err.Error()}
	}
	return StepResult{Name: name, From: from, To: to, Code: code, Error: err.Error()}
}
