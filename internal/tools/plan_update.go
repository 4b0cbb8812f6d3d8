// Package tools provides the eino tools the research agent can call.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/dohr-michael/fathom/internal/plan"
)

// UpdatePlanTool lets the agent create and maintain its research todo list.
// It is the producer side of the plan store: every call is one merge batch.
type UpdatePlanTool struct {
	store *plan.Store
}

// NewUpdatePlanTool creates the update_research_plan tool over store.
func NewUpdatePlanTool(store *plan.Store) *UpdatePlanTool {
	return &UpdatePlanTool{store: store}
}

type updatePlanInput struct {
	Todos       []plan.Delta `json:"todos"`
	Explanation string       `json:"explanation"`
}

// Info returns the tool info for Eino registration.
func (t *UpdatePlanTool) Info(_ context.Context) (*schema.ToolInfo, error) {
	return &schema.ToolInfo{
		Name: "update_research_plan",
		Desc: "Create and manage the structured TODO list for the research session. " +
			"When updating existing TODOs, provide only the fields to change — the tool merges with existing data.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"todos": {
				Type:     schema.Array,
				Desc:     "TODO items to create or update. New items need id and content; updates need id plus the changed fields.",
				Required: true,
				ElemInfo: &schema.ParameterInfo{
					Type: schema.Object,
					SubParams: map[string]*schema.ParameterInfo{
						"id": {
							Type:     schema.String,
							Desc:     "Unique stable identifier, e.g. 'step-1'",
							Required: true,
						},
						"status": {
							Type: schema.String,
							Desc: "Item status; defaults to 'pending' for new items",
							Enum: []string{"pending", "in_progress", "completed"},
						},
						"content": {
							Type: schema.String,
							Desc: "Description of the task; required when creating an item",
						},
					},
				},
			},
			"explanation": {
				Type: schema.String,
				Desc: "Short description of this change, e.g. 'Creating initial plan' or 'Completed step 1'",
			},
		}),
	}, nil
}

// InvokableRun merges the batch into the plan document. Validation problems
// are returned as tool output so the model can correct itself; storage
// failures are real errors and abort the call.
func (t *UpdatePlanTool) InvokableRun(_ context.Context, argumentsInJSON string, _ ...tool.Option) (string, error) {
	var input updatePlanInput
	if err := json.Unmarshal([]byte(argumentsInJSON), &input); err != nil {
		return "", fmt.Errorf("update_research_plan: parse input: %w", err)
	}

	doc, err := t.store.Merge(input.Todos, input.Explanation)
	if err != nil {
		var verr *plan.ValidationError
		if errors.As(err, &verr) {
			return "Cannot update research plan: " + verr.Reason, nil
		}
		return "", fmt.Errorf("update_research_plan: %w", err)
	}

	return mergeSummary(doc, input.Explanation), nil
}

func mergeSummary(doc *plan.Document, explanation string) string {
	counts := doc.CountByStatus()
	parts := make([]string, 0, 3)
	for _, status := range []plan.Status{plan.StatusInProgress, plan.StatusPending, plan.StatusCompleted} {
		if counts[status] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[status], status))
		}
	}

	var sb strings.Builder
	sb.WriteString("Research plan updated successfully.")
	if explanation != "" {
		sb.WriteString(" " + explanation)
	}
	fmt.Fprintf(&sb, "\nTotal TODOs: %d (%s)", len(doc.Todos), strings.Join(parts, ", "))
	return sb.String()
}
