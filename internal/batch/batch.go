// Package batch evaluates many member checks in one call.
package batch

import (
	"fmt"

	"github.com/stevepenney/LBDesign/internal/engine/calc"
)

type Input struct {
	Items []calc.Input `json:"items"`
}

type Result struct {
	Results []calc.Result `json:"results"`
}

// Calculate runs every item through the engine. The first invalid item
// fails the whole batch: the engine never returns partial results.
func Calculate(in Input) (Result, error) {
	if len(in.Items) == 0 {
		return Result{}, fmt.Errorf("no items")
	}
	out := Result{Results: make([]calc.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := calc.Evaluate(item)
		if err != nil {
			return Result{}, fmt.Errorf("item %d: %w", i+1, err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
